package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	types "github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/transform3d/render"
)

// renderUsage is the usage set for stage-owned textures: sampled in
// the transform pass, rendered to in capture/composite, copied for mip
// generation.
const renderUsage = types.TextureUsageCopySrc |
	types.TextureUsageCopyDst |
	types.TextureUsageTextureBinding |
	types.TextureUsageRenderAttachment

// texture wraps a hal.Texture as a render.Texture.
type texture struct {
	halTexture hal.Texture
	device     hal.Device
	desc       render.TextureDescriptor
	destroyed  bool
}

// createTexture allocates a HAL texture for the descriptor.
func createTexture(device hal.Device, desc render.TextureDescriptor, usage types.TextureUsage) (*texture, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("wgpu: texture %q: %w", desc.Label, render.ErrZeroTargetSize)
	}
	levels := desc.MipLevelCount
	if levels == 0 {
		levels = 1
	}

	halTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: levels,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        convertFormat(desc.Format),
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %q: %w", desc.Label, err)
	}

	t := &texture{halTexture: halTex, device: device, desc: desc}
	t.desc.MipLevelCount = levels
	return t, nil
}

// Width returns the texture width in pixels.
func (t *texture) Width() uint32 { return t.desc.Width }

// Height returns the texture height in pixels.
func (t *texture) Height() uint32 { return t.desc.Height }

// MipLevelCount returns the number of mip levels.
func (t *texture) MipLevelCount() uint32 { return t.desc.MipLevelCount }

// Format returns the texture pixel format.
func (t *texture) Format() gputypes.TextureFormat { return t.desc.Format }

// Destroy releases the HAL texture. Safe to call once.
func (t *texture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.device.DestroyTexture(t.halTexture)
	t.halTexture = nil
}

// Ensure texture implements render.Texture.
var _ render.Texture = (*texture)(nil)

// convertFormat maps the abstraction's gputypes format onto the HAL
// types format. The stage only allocates RGBA surfaces; anything else
// falls back to RGBA8.
func convertFormat(f gputypes.TextureFormat) types.TextureFormat {
	switch f {
	case gputypes.TextureFormatBGRA8Unorm:
		return types.TextureFormatBGRA8Unorm
	case gputypes.TextureFormatR8Unorm:
		return types.TextureFormatR8Unorm
	default:
		return types.TextureFormatRGBA8Unorm
	}
}

// target is the wgpu render target. Begin reallocates the backing
// texture when the bound resolution changes; the draw path is pending
// render pass support.
type target struct {
	dev      *Device
	label    string
	tex      *texture
	passOpen bool
}

// Begin binds the target at the given resolution and opens a pass.
func (t *target) Begin(width, height uint32) (render.Pass, error) {
	if t.dev.closed {
		return nil, ErrDeviceClosed
	}
	if t.passOpen {
		return nil, render.ErrPassActive
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("wgpu: target %q: %w", t.label, render.ErrZeroTargetSize)
	}

	if t.tex == nil || t.tex.Width() != width || t.tex.Height() != height {
		tex, err := createTexture(t.dev.device, render.TextureDescriptor{
			Label:  t.label,
			Width:  width,
			Height: height,
			Format: gputypes.TextureFormatRGBA8Unorm,
		}, renderUsage)
		if err != nil {
			return nil, err
		}
		// New texture first, then release the old one.
		if t.tex != nil {
			t.tex.Destroy()
		}
		t.tex = tex
	}

	t.passOpen = true
	return &pass{target: t}, nil
}

// Texture returns the texture produced by the most recently ended pass.
func (t *target) Texture() render.Texture {
	if t.tex == nil || t.passOpen {
		return nil
	}
	return t.tex
}

// Destroy releases the target and its backing texture.
func (t *target) Destroy() {
	if t.tex != nil {
		t.tex.Destroy()
		t.tex = nil
	}
}

// Ensure target implements render.Target.
var _ render.Target = (*target)(nil)
