// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/transform3d/math3"
)

// Software device errors.
var (
	// ErrForeignTexture is returned when a texture or buffer from
	// another device is passed to the software device.
	ErrForeignTexture = errors.New("render: resource was not created by the software device")

	// ErrNoImageBound is returned when a draw call runs without an
	// image parameter bound on the effect.
	ErrNoImageBound = errors.New("render: effect has no image texture bound")

	// ErrVertexCount is returned when a strip draw gets a buffer whose
	// length is not a multiple the strip can consume.
	ErrVertexCount = errors.New("render: triangle strip needs at least 3 vertices")
)

// SoftwareDevice is the CPU implementation of Device. It rasterizes
// into image.RGBA buffers and needs no GPU at all, which makes it the
// reference backend for tests and for hosts without a usable adapter.
type SoftwareDevice struct{}

// NewSoftwareDevice creates a software rendering device.
func NewSoftwareDevice() *SoftwareDevice {
	return &SoftwareDevice{}
}

// NewTarget creates an off-screen software render target.
func (d *SoftwareDevice) NewTarget(label string) Target {
	return &softwareTarget{label: label}
}

// NewTexture creates a software texture with the given descriptor.
func (d *SoftwareDevice) NewTexture(desc TextureDescriptor) (Texture, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("render: texture %q: %w", desc.Label, ErrZeroTargetSize)
	}
	levels := desc.MipLevelCount
	if levels == 0 {
		levels = 1
	}
	t := &SoftwareTexture{label: desc.Label, format: desc.Format}
	w, h := int(desc.Width), int(desc.Height)
	for i := uint32(0); i < levels; i++ {
		t.levels = append(t.levels, image.NewRGBA(image.Rect(0, 0, w, h)))
		w = max(1, w/2)
		h = max(1, h/2)
	}
	return t, nil
}

// NewTextureFromImage wraps an image as a single-level software
// texture. The pixels are copied.
func (d *SoftwareDevice) NewTextureFromImage(label string, img image.Image) *SoftwareTexture {
	b := img.Bounds()
	level := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(level, level.Bounds(), img, b.Min, draw.Src)
	return &SoftwareTexture{
		label:  label,
		format: gputypes.TextureFormatRGBA8Unorm,
		levels: []*image.RGBA{level},
	}
}

// NewVertexBuffer creates a CPU vertex buffer.
func (d *SoftwareDevice) NewVertexBuffer(vertexCount int) VertexBuffer {
	return &softwareBuffer{verts: make([]Vertex, vertexCount)}
}

// BuildMipmaps rebuilds the full mip chain of dst from the base level
// of src. The base level is rescaled when src and dst differ in size;
// each further level is a half-size reduction of the previous one.
func (d *SoftwareDevice) BuildMipmaps(src, dst Texture) error {
	s, ok := src.(*SoftwareTexture)
	if !ok {
		return ErrForeignTexture
	}
	t, ok := dst.(*SoftwareTexture)
	if !ok {
		return ErrForeignTexture
	}
	base := s.levels[0]
	for i, level := range t.levels {
		from := base
		if i > 0 {
			from = t.levels[i-1]
		}
		if from.Bounds() == level.Bounds() {
			copy(level.Pix, from.Pix)
			continue
		}
		xdraw.ApproxBiLinear.Scale(level, level.Bounds(), from, from.Bounds(), draw.Src, nil)
	}
	return nil
}

// DefaultEffect returns a passthrough effect.
func (d *SoftwareDevice) DefaultEffect() Effect {
	return NewPassthroughEffect()
}

// Ensure SoftwareDevice implements Device.
var _ Device = (*SoftwareDevice)(nil)

// SoftwareTexture is a CPU texture: one image.RGBA per mip level.
type SoftwareTexture struct {
	label  string
	format gputypes.TextureFormat
	levels []*image.RGBA
}

// Width returns the base level width in pixels.
func (t *SoftwareTexture) Width() uint32 {
	return uint32(t.levels[0].Bounds().Dx())
}

// Height returns the base level height in pixels.
func (t *SoftwareTexture) Height() uint32 {
	return uint32(t.levels[0].Bounds().Dy())
}

// MipLevelCount returns the number of mip levels.
func (t *SoftwareTexture) MipLevelCount() uint32 {
	return uint32(len(t.levels))
}

// Format returns the texture pixel format.
func (t *SoftwareTexture) Format() gputypes.TextureFormat {
	return t.format
}

// Destroy drops the pixel buffers.
func (t *SoftwareTexture) Destroy() {
	t.levels = nil
}

// Level returns the image backing mip level n, or nil if out of range.
// Level 0 is the base image.
func (t *SoftwareTexture) Level(n int) *image.RGBA {
	if n < 0 || n >= len(t.levels) {
		return nil
	}
	return t.levels[n]
}

// Image returns the base level image. It shares memory with the
// texture; hosts use it to read the composited result back.
func (t *SoftwareTexture) Image() *image.RGBA {
	return t.levels[0]
}

// Ensure SoftwareTexture implements Texture.
var _ Texture = (*SoftwareTexture)(nil)

// softwareBuffer is the CPU vertex buffer. Upload is a no-op since the
// rasterizer reads the CPU copy directly.
type softwareBuffer struct {
	verts []Vertex
}

func (b *softwareBuffer) Len() int         { return len(b.verts) }
func (b *softwareBuffer) At(i int) *Vertex { return &b.verts[i] }
func (b *softwareBuffer) Upload() error    { return nil }
func (b *softwareBuffer) Destroy()         { b.verts = nil }

// Ensure softwareBuffer implements VertexBuffer.
var _ VertexBuffer = (*softwareBuffer)(nil)

// softwareTarget renders into an owned SoftwareTexture, reallocating it
// when the bound resolution changes.
type softwareTarget struct {
	label    string
	tex      *SoftwareTexture
	passOpen bool
}

// Begin binds the target at the given resolution and opens a pass.
func (t *softwareTarget) Begin(width, height uint32) (Pass, error) {
	if t.passOpen {
		return nil, ErrPassActive
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("render: target %q: %w", t.label, ErrZeroTargetSize)
	}
	if t.tex == nil || t.tex.Width() != width || t.tex.Height() != height {
		t.tex = &SoftwareTexture{
			label:  t.label,
			format: gputypes.TextureFormatRGBA8Unorm,
			levels: []*image.RGBA{image.NewRGBA(image.Rect(0, 0, int(width), int(height)))},
		}
	}
	t.passOpen = true
	return &softwarePass{
		target: t,
		dst:    t.tex.levels[0],
		proj:   math3.Identity(),
		blend:  BlendOverwrite,
	}, nil
}

// Texture returns the texture produced by the most recently ended pass.
func (t *softwareTarget) Texture() Texture {
	if t.tex == nil || t.passOpen {
		return nil
	}
	return t.tex
}

// Destroy releases the target and its backing texture.
func (t *softwareTarget) Destroy() {
	if t.tex != nil {
		t.tex.Destroy()
		t.tex = nil
	}
}

// Ensure softwareTarget implements Target.
var _ Target = (*softwareTarget)(nil)

// softwarePass rasterizes into the target's base level.
type softwarePass struct {
	target *softwareTarget
	dst    *image.RGBA
	proj   math3.Mat4
	blend  BlendState
	ended  bool
}

// SetProjection replaces the pass projection matrix.
func (p *softwarePass) SetProjection(m math3.Mat4) {
	p.proj = m
}

// Translate post-applies a view translation to the projection.
func (p *softwarePass) Translate(v math3.Vec3) {
	p.proj = p.proj.Mul(math3.Translation(v))
}

// SetBlend replaces the pass blend state.
func (p *softwarePass) SetBlend(b BlendState) {
	p.blend = b
}

// Clear clears the bound surface to transparent black.
func (p *softwarePass) Clear() {
	clear(p.dst.Pix)
}

// DrawTriangleStrip rasterizes the buffer as a triangle strip with
// perspective-correct texturing from the effect's image parameter.
func (p *softwarePass) DrawTriangleStrip(vb VertexBuffer, effect Effect) error {
	buf, ok := vb.(*softwareBuffer)
	if !ok {
		return ErrForeignTexture
	}
	if len(buf.verts) < 3 {
		return ErrVertexCount
	}
	tex, err := p.imageParam(effect)
	if err != nil {
		return err
	}
	return drawStrip(p.dst, p.proj, buf.verts, tex, p.blend)
}

// DrawSprite draws the effect's image parameter as a 2D sprite covering
// (0,0)-(width,height) in the pass's projected coordinate space.
func (p *softwarePass) DrawSprite(effect Effect, width, height uint32) error {
	tex, err := p.imageParam(effect)
	if err != nil {
		return err
	}

	// Project the sprite rectangle corners to pixels. Sprite passes use
	// an axis-aligned orthographic projection, so two corners suffice.
	dw := float32(p.dst.Bounds().Dx())
	dh := float32(p.dst.Bounds().Dy())
	c0 := p.proj.TransformPoint(math3.Vec3{})
	c1 := p.proj.TransformPoint(math3.V3(float32(width), float32(height), 0))
	x0 := int((c0.X + 1) * 0.5 * dw)
	y0 := int((1 - c0.Y) * 0.5 * dh)
	x1 := int((c1.X + 1) * 0.5 * dw)
	y1 := int((1 - c1.Y) * 0.5 * dh)
	rect := image.Rect(x0, y0, x1, y1)

	op := draw.Src
	if p.blend.Enabled {
		op = draw.Over
	}
	src := tex.levels[0]
	if rect == src.Bounds() {
		draw.Draw(p.dst, rect, src, image.Point{}, op)
		return nil
	}
	xdraw.ApproxBiLinear.Scale(p.dst, rect, src, src.Bounds(), op, nil)
	return nil
}

// End completes the pass and publishes the result to the target.
func (p *softwarePass) End() error {
	if p.ended {
		return nil
	}
	p.ended = true
	p.target.passOpen = false
	return nil
}

func (p *softwarePass) imageParam(effect Effect) (*SoftwareTexture, error) {
	if effect == nil {
		return nil, ErrNoImageBound
	}
	bound := effect.Texture(EffectParamImage)
	if bound == nil {
		return nil, ErrNoImageBound
	}
	tex, ok := bound.(*SoftwareTexture)
	if !ok {
		return nil, ErrForeignTexture
	}
	return tex, nil
}

// Ensure softwarePass implements Pass.
var _ Pass = (*softwarePass)(nil)
