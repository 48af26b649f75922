package wgpu

import (
	"github.com/gogpu/transform3d/math3"
	"github.com/gogpu/transform3d/render"
)

// pass records per-pass state for the wgpu target. Draw encoding is
// pending render pass support; state recording is complete so the draw
// path can be dropped in without touching callers.
type pass struct {
	target *target
	proj   math3.Mat4
	blend  render.BlendState
	clear  bool
	ended  bool
}

// SetProjection replaces the pass projection matrix.
func (p *pass) SetProjection(m math3.Mat4) {
	p.proj = m
}

// Translate post-applies a view translation to the projection.
func (p *pass) Translate(v math3.Vec3) {
	p.proj = p.proj.Mul(math3.Translation(v))
}

// SetBlend replaces the pass blend state.
func (p *pass) SetBlend(b render.BlendState) {
	p.blend = b
}

// Clear schedules a clear to transparent black as the pass's load op.
func (p *pass) Clear() {
	p.clear = true
}

// DrawTriangleStrip draws the buffer as a textured triangle strip.
//
// TODO(render-pass): encode the strip draw with the quad shader once
// hal render pass wiring lands.
func (p *pass) DrawTriangleStrip(vb render.VertexBuffer, effect render.Effect) error {
	return ErrNotImplemented
}

// DrawSprite draws the effect's image parameter as a 2D sprite.
//
// TODO(render-pass): encode the sprite blit once hal render pass
// wiring lands.
func (p *pass) DrawSprite(effect render.Effect, width, height uint32) error {
	return ErrNotImplemented
}

// End completes the pass and publishes the result to the target.
func (p *pass) End() error {
	if p.ended {
		return nil
	}
	p.ended = true
	p.target.passOpen = false
	return nil
}

// Ensure pass implements render.Pass.
var _ render.Pass = (*pass)(nil)
