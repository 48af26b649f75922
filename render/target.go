// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/transform3d/math3"
)

// Target errors.
var (
	// ErrZeroTargetSize is returned when Begin is called with a zero dimension.
	ErrZeroTargetSize = errors.New("render: target size must be non-zero")

	// ErrPassActive is returned when Begin is called while a pass is open.
	ErrPassActive = errors.New("render: previous pass not ended")
)

// Target is an off-screen render destination that binds at a requested
// resolution. The backing texture is reallocated when the requested
// resolution changes between passes.
type Target interface {
	// Begin binds the target at the given resolution and opens a pass.
	// The pass must be ended before the next Begin.
	Begin(width, height uint32) (Pass, error)

	// Texture returns the texture produced by the most recently ended
	// pass, or nil if the target has never completed a pass.
	Texture() Texture

	// Destroy releases the target and its backing texture.
	Destroy()
}

// Pass is an open rendering pass on a Target. Draw calls honor the
// projection and blend state set on the pass; state does not persist
// across passes.
type Pass interface {
	// SetProjection replaces the pass projection matrix.
	SetProjection(m math3.Mat4)

	// Translate post-applies a view translation to the projection, so
	// geometry is moved by v before being projected.
	Translate(v math3.Vec3)

	// SetBlend replaces the pass blend state.
	SetBlend(b BlendState)

	// Clear clears the bound surface to transparent black, color and
	// depth both.
	Clear()

	// DrawTriangleStrip draws the vertex buffer as a triangle strip,
	// sampling the effect's "image" texture parameter.
	DrawTriangleStrip(vb VertexBuffer, effect Effect) error

	// DrawSprite draws the effect's "image" texture parameter as a 2D
	// sprite covering the rectangle (0,0)-(width,height) in the
	// pass's projected coordinate space.
	DrawSprite(effect Effect, width, height uint32) error

	// End completes the pass and publishes the result to the target.
	End() error
}

// BlendFactor selects a blending coefficient.
type BlendFactor uint8

// Blend factors.
const (
	BlendOne BlendFactor = iota
	BlendZero
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

// BlendState describes how fragments combine with the destination.
// When Enabled is false fragments overwrite the destination, including
// the alpha channel.
type BlendState struct {
	Enabled  bool
	ColorSrc BlendFactor
	ColorDst BlendFactor
	AlphaSrc BlendFactor
	AlphaDst BlendFactor
}

// BlendOverwrite writes source color and alpha untouched. The factor
// fields record the source-alpha passthrough the fixed-function path
// would use were blending enabled.
var BlendOverwrite = BlendState{
	Enabled:  false,
	ColorSrc: BlendOne,
	ColorDst: BlendZero,
	AlphaSrc: BlendSrcAlpha,
	AlphaDst: BlendZero,
}

// BlendSourceOver composites premultiplied source over destination.
var BlendSourceOver = BlendState{
	Enabled:  true,
	ColorSrc: BlendOne,
	ColorDst: BlendOneMinusSrcAlpha,
	AlphaSrc: BlendOne,
	AlphaDst: BlendOneMinusSrcAlpha,
}
