// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// GPU-backed Device implementations are constructed from a DeviceHandle
// supplied by the host (the compositor owns the GPU device; the stage
// never creates one of its own). The software device ignores it.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, keeping the
// package compatible with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// TextureDescriptor describes parameters for creating a texture.
type TextureDescriptor struct {
	// Label is an optional debug label for the texture.
	Label string

	// Width is the texture width in pixels.
	Width uint32

	// Height is the texture height in pixels.
	Height uint32

	// MipLevelCount is the number of mipmap levels. Use 1 for no mipmaps.
	MipLevelCount uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat
}

// Texture represents a device-owned texture resource.
//
// Textures are exclusively owned by their creator; Destroy releases the
// backing resources and must be called exactly once.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() uint32

	// Height returns the texture height in pixels.
	Height() uint32

	// MipLevelCount returns the number of mip levels.
	MipLevelCount() uint32

	// Format returns the texture pixel format.
	Format() gputypes.TextureFormat

	// Destroy releases the resources associated with this texture.
	Destroy()
}

// Device creates the resources the transform stage renders with.
type Device interface {
	// NewTarget creates an off-screen render target. The backing
	// texture is allocated lazily on the first Begin and reallocated
	// when Begin is called with a different resolution.
	NewTarget(label string) Target

	// NewTexture creates a texture with the given descriptor.
	NewTexture(desc TextureDescriptor) (Texture, error)

	// NewVertexBuffer creates a vertex buffer with the given number of
	// vertices, all initially zero.
	NewVertexBuffer(vertexCount int) VertexBuffer

	// BuildMipmaps rebuilds the full mip chain of dst from the base
	// level of src. dst must have been created with a mip level count
	// covering its dimensions; src and dst may differ in size.
	BuildMipmaps(src, dst Texture) error

	// DefaultEffect returns the passthrough effect used when the host
	// does not supply one.
	DefaultEffect() Effect
}
