// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/gogpu/transform3d/math3"
)

// screenVertex is a projected vertex ready for rasterization. UVs are
// stored divided by w so interpolation stays perspective-correct.
type screenVertex struct {
	x, y   float32
	invW   float32
	uOverW float32
	vOverW float32
}

// drawStrip projects the vertices and rasterizes the strip triangle by
// triangle. Vertices with w <= 0 lie behind the camera; the whole draw
// is dropped rather than clipped, matching the stage's skip-on-trouble
// policy for degenerate camera setups.
func drawStrip(dst *image.RGBA, proj math3.Mat4, verts []Vertex, tex *SoftwareTexture, blend BlendState) error {
	dw := float32(dst.Bounds().Dx())
	dh := float32(dst.Bounds().Dy())

	projected := make([]screenVertex, len(verts))
	for i, v := range verts {
		x, y, _, w := proj.TransformVec4(v.Position.X, v.Position.Y, v.Position.Z, 1)
		if w <= 0 {
			return nil
		}
		invW := 1 / w
		projected[i] = screenVertex{
			x:      (x*invW + 1) * 0.5 * dw,
			y:      (1 - y*invW) * 0.5 * dh,
			invW:   invW,
			uOverW: v.UV[0] * invW,
			vOverW: v.UV[1] * invW,
		}
	}

	for i := 0; i+2 < len(projected); i++ {
		// Strip winding alternates; swap every odd triangle so edge
		// orientation stays consistent.
		a, b, c := projected[i], projected[i+1], projected[i+2]
		if i%2 == 1 {
			b, c = c, b
		}
		fillTriangle(dst, a, b, c, tex, blend)
	}
	return nil
}

// fillTriangle rasterizes one textured triangle with barycentric
// coordinates and perspective-correct UV interpolation.
func fillTriangle(dst *image.RGBA, a, b, c screenVertex, tex *SoftwareTexture, blend BlendState) {
	area := edge(a, b, c.x, c.y)
	if area == 0 {
		return
	}
	sign := float32(1)
	if area < 0 {
		sign = -1
	}

	level := tex.Level(mipLevelFor(a, b, c, tex, area))

	minX := max(0, int(math32.Floor(min(a.x, min(b.x, c.x)))))
	maxX := min(dst.Bounds().Dx()-1, int(math32.Ceil(max(a.x, max(b.x, c.x)))))
	minY := max(0, int(math32.Floor(min(a.y, min(b.y, c.y)))))
	maxY := min(dst.Bounds().Dy()-1, int(math32.Ceil(max(a.y, max(b.y, c.y)))))

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			cx := float32(px) + 0.5
			cy := float32(py) + 0.5
			w0 := edge(b, c, cx, cy) * sign
			w1 := edge(c, a, cx, cy) * sign
			w2 := edge(a, b, cx, cy) * sign
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			inv := 1 / (area * sign)
			w0 *= inv
			w1 *= inv
			w2 *= inv

			invW := w0*a.invW + w1*b.invW + w2*c.invW
			if invW <= 0 {
				continue
			}
			u := (w0*a.uOverW + w1*b.uOverW + w2*c.uOverW) / invW
			v := (w0*a.vOverW + w1*b.vOverW + w2*c.vOverW) / invW

			r, g, bb, al := sampleBilinear(level, u, v)
			writePixel(dst, px, py, r, g, bb, al, blend)
		}
	}
}

// edge computes the signed area of the parallelogram spanned by the
// edge a->b and the point (px, py).
func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// mipLevelFor picks a mip level from the texel-to-pixel density of the
// triangle. Single-level textures always return 0.
func mipLevelFor(a, b, c screenVertex, tex *SoftwareTexture, area float32) int {
	levels := int(tex.MipLevelCount())
	if levels <= 1 {
		return 0
	}
	tw := float32(tex.Width())
	th := float32(tex.Height())

	// Recover plain UVs well enough for a footprint estimate; the
	// level choice only needs to be in the right neighborhood.
	au, av := a.uOverW/a.invW, a.vOverW/a.invW
	bu, bv := b.uOverW/b.invW, b.vOverW/b.invW
	cu, cv := c.uOverW/c.invW, c.vOverW/c.invW
	uvArea := math32.Abs((bu-au)*(cv-av)-(bv-av)*(cu-au)) * tw * th
	pixArea := math32.Abs(area)
	if pixArea == 0 || uvArea == 0 {
		return 0
	}

	level := int(math32.Floor(0.5 * math32.Log2(uvArea/pixArea)))
	if level < 0 {
		return 0
	}
	if level >= levels {
		return levels - 1
	}
	return level
}

// sampleBilinear samples the image at normalized coordinates with
// bilinear filtering and edge clamping.
func sampleBilinear(img *image.RGBA, u, v float32) (r, g, b, a uint8) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	fx := u*float32(w) - 0.5
	fy := v*float32(h) - 0.5
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := texel(img, x0, y0, w, h)
	c10 := texel(img, x0+1, y0, w, h)
	c01 := texel(img, x0, y0+1, w, h)
	c11 := texel(img, x0+1, y0+1, w, h)

	var out [4]uint8
	for i := 0; i < 4; i++ {
		top := float32(c00[i]) + (float32(c10[i])-float32(c00[i]))*tx
		bot := float32(c01[i]) + (float32(c11[i])-float32(c01[i]))*tx
		out[i] = uint8(top + (bot-top)*ty + 0.5)
	}
	return out[0], out[1], out[2], out[3]
}

// texel reads one clamped texel as an RGBA quadruple.
func texel(img *image.RGBA, x, y, w, h int) [4]uint8 {
	x = min(max(x, 0), w-1)
	y = min(max(y, 0), h-1)
	i := img.PixOffset(x, y)
	return [4]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

// writePixel stores a fragment honoring the blend state. Disabled
// blending overwrites color and alpha; enabled blending composites
// premultiplied source over destination.
func writePixel(dst *image.RGBA, x, y int, r, g, b, a uint8, blend BlendState) {
	i := dst.PixOffset(x, y)
	if !blend.Enabled {
		dst.Pix[i] = r
		dst.Pix[i+1] = g
		dst.Pix[i+2] = b
		dst.Pix[i+3] = a
		return
	}
	ia := uint32(255 - a)
	dst.Pix[i] = uint8(uint32(r) + uint32(dst.Pix[i])*ia/255)
	dst.Pix[i+1] = uint8(uint32(g) + uint32(dst.Pix[i+1])*ia/255)
	dst.Pix[i+2] = uint8(uint32(b) + uint32(dst.Pix[i+2])*ia/255)
	dst.Pix[i+3] = uint8(uint32(a) + uint32(dst.Pix[i+3])*ia/255)
}
