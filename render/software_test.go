// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

// solidImage builds an RGBA image filled with one color.
func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestSoftwareDeviceNewTexture(t *testing.T) {
	dev := NewSoftwareDevice()

	tests := []struct {
		name       string
		desc       TextureDescriptor
		wantLevels uint32
		wantErr    error
	}{
		{
			name:       "single level",
			desc:       TextureDescriptor{Label: "t", Width: 64, Height: 32},
			wantLevels: 1,
		},
		{
			name:       "full chain",
			desc:       TextureDescriptor{Label: "t", Width: 16, Height: 16, MipLevelCount: 5},
			wantLevels: 5,
		},
		{
			name:    "zero width",
			desc:    TextureDescriptor{Label: "t", Width: 0, Height: 32},
			wantErr: ErrZeroTargetSize,
		},
		{
			name:    "zero height",
			desc:    TextureDescriptor{Label: "t", Width: 32, Height: 0},
			wantErr: ErrZeroTargetSize,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex, err := dev.NewTexture(tt.desc)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewTexture error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTexture: %v", err)
			}
			if got := tex.MipLevelCount(); got != tt.wantLevels {
				t.Errorf("MipLevelCount = %d, want %d", got, tt.wantLevels)
			}
			if tex.Width() != tt.desc.Width || tex.Height() != tt.desc.Height {
				t.Errorf("size = %dx%d, want %dx%d", tex.Width(), tex.Height(), tt.desc.Width, tt.desc.Height)
			}
		})
	}
}

func TestSoftwareTextureMipDimensions(t *testing.T) {
	dev := NewSoftwareDevice()
	tex, err := dev.NewTexture(TextureDescriptor{Label: "t", Width: 16, Height: 4, MipLevelCount: 5})
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	st := tex.(*SoftwareTexture)

	want := [][2]int{{16, 4}, {8, 2}, {4, 1}, {2, 1}, {1, 1}}
	for i, dims := range want {
		level := st.Level(i)
		if level == nil {
			t.Fatalf("Level(%d) = nil", i)
		}
		if level.Bounds().Dx() != dims[0] || level.Bounds().Dy() != dims[1] {
			t.Errorf("level %d = %dx%d, want %dx%d",
				i, level.Bounds().Dx(), level.Bounds().Dy(), dims[0], dims[1])
		}
	}
	if st.Level(5) != nil {
		t.Error("Level(5) should be nil")
	}
	if st.Level(-1) != nil {
		t.Error("Level(-1) should be nil")
	}
}

func TestSoftwareTargetPassLifecycle(t *testing.T) {
	dev := NewSoftwareDevice()
	target := dev.NewTarget("test")

	if target.Texture() != nil {
		t.Error("fresh target should have no texture")
	}

	pass, err := target.Begin(32, 16)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if target.Texture() != nil {
		t.Error("texture must be hidden while a pass is open")
	}
	if _, err := target.Begin(32, 16); !errors.Is(err, ErrPassActive) {
		t.Errorf("nested Begin error = %v, want ErrPassActive", err)
	}
	if err := pass.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	tex := target.Texture()
	if tex == nil {
		t.Fatal("ended pass should publish a texture")
	}
	if tex.Width() != 32 || tex.Height() != 16 {
		t.Errorf("texture = %dx%d, want 32x16", tex.Width(), tex.Height())
	}

	if _, err := target.Begin(0, 16); !errors.Is(err, ErrZeroTargetSize) {
		t.Errorf("zero-size Begin error = %v, want ErrZeroTargetSize", err)
	}
}

func TestSoftwareTargetReallocatesOnResize(t *testing.T) {
	dev := NewSoftwareDevice()
	target := dev.NewTarget("test")

	pass, err := target.Begin(32, 16)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	pass.End()
	first := target.Texture()

	// Same resolution keeps the backing texture.
	pass, err = target.Begin(32, 16)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	pass.End()
	if target.Texture() != first {
		t.Error("same-size Begin should reuse the texture")
	}

	// New resolution reallocates.
	pass, err = target.Begin(64, 16)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	pass.End()
	second := target.Texture()
	if second == first {
		t.Error("resized Begin should reallocate the texture")
	}
	if second.Width() != 64 || second.Height() != 16 {
		t.Errorf("texture = %dx%d, want 64x16", second.Width(), second.Height())
	}
}

func TestBuildMipmaps(t *testing.T) {
	dev := NewSoftwareDevice()
	red := color.RGBA{R: 255, A: 255}

	src := dev.NewTextureFromImage("src", solidImage(8, 8, red))
	dst, err := dev.NewTexture(TextureDescriptor{Label: "dst", Width: 8, Height: 8, MipLevelCount: 4})
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}

	if err := dev.BuildMipmaps(src, dst); err != nil {
		t.Fatalf("BuildMipmaps: %v", err)
	}

	st := dst.(*SoftwareTexture)
	for i := 0; i < 4; i++ {
		level := st.Level(i)
		px := level.RGBAAt(0, 0)
		if px != red {
			t.Errorf("level %d pixel = %+v, want %+v", i, px, red)
		}
	}
	if st.Level(3).Bounds().Dx() != 1 || st.Level(3).Bounds().Dy() != 1 {
		t.Errorf("last level = %v, want 1x1", st.Level(3).Bounds())
	}
}

func TestBuildMipmapsRescalesBase(t *testing.T) {
	dev := NewSoftwareDevice()
	green := color.RGBA{G: 255, A: 255}

	// Source is not a power of two; the destination base level differs
	// in size and must be rescaled, not copied.
	src := dev.NewTextureFromImage("src", solidImage(6, 6, green))
	dst, err := dev.NewTexture(TextureDescriptor{Label: "dst", Width: 8, Height: 8, MipLevelCount: 2})
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	if err := dev.BuildMipmaps(src, dst); err != nil {
		t.Fatalf("BuildMipmaps: %v", err)
	}
	if px := dst.(*SoftwareTexture).Level(0).RGBAAt(4, 4); px != green {
		t.Errorf("rescaled base pixel = %+v, want %+v", px, green)
	}
}

func TestPassthroughEffect(t *testing.T) {
	dev := NewSoftwareDevice()
	effect := NewPassthroughEffect()

	if effect.Texture(EffectParamImage) != nil {
		t.Error("fresh effect should have no image bound")
	}

	tex := dev.NewTextureFromImage("t", solidImage(2, 2, color.RGBA{A: 255}))
	effect.SetTexture(EffectParamImage, tex)
	if effect.Texture(EffectParamImage) != tex {
		t.Error("bound texture not returned")
	}

	effect.SetTexture(EffectParamImage, nil)
	if effect.Texture(EffectParamImage) != nil {
		t.Error("nil bind should unbind the parameter")
	}
}

func TestDrawSpriteCopiesImage(t *testing.T) {
	dev := NewSoftwareDevice()
	target := dev.NewTarget("test")
	blue := color.RGBA{B: 255, A: 255}

	effect := dev.DefaultEffect()
	effect.SetTexture(EffectParamImage, dev.NewTextureFromImage("src", solidImage(16, 8, blue)))

	pass, err := target.Begin(16, 8)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	pass.SetProjection(orthoPixels(16, 8))
	pass.SetBlend(BlendOverwrite)
	pass.Clear()
	if err := pass.DrawSprite(effect, 16, 8); err != nil {
		t.Fatalf("DrawSprite: %v", err)
	}
	if err := pass.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	img := target.Texture().(*SoftwareTexture).Image()
	for _, pt := range []image.Point{{0, 0}, {15, 0}, {0, 7}, {15, 7}, {8, 4}} {
		if px := img.RGBAAt(pt.X, pt.Y); px != blue {
			t.Errorf("pixel %v = %+v, want %+v", pt, px, blue)
		}
	}
}

func TestDrawErrorsWithoutImage(t *testing.T) {
	dev := NewSoftwareDevice()
	target := dev.NewTarget("test")

	pass, err := target.Begin(8, 8)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	defer pass.End()

	if err := pass.DrawSprite(NewPassthroughEffect(), 8, 8); !errors.Is(err, ErrNoImageBound) {
		t.Errorf("DrawSprite error = %v, want ErrNoImageBound", err)
	}
	if err := pass.DrawSprite(nil, 8, 8); !errors.Is(err, ErrNoImageBound) {
		t.Errorf("DrawSprite(nil) error = %v, want ErrNoImageBound", err)
	}

	vb := dev.NewVertexBuffer(4)
	if err := pass.DrawTriangleStrip(vb, NewPassthroughEffect()); !errors.Is(err, ErrNoImageBound) {
		t.Errorf("DrawTriangleStrip error = %v, want ErrNoImageBound", err)
	}
}

func TestDrawTriangleStripRejectsShortBuffer(t *testing.T) {
	dev := NewSoftwareDevice()
	target := dev.NewTarget("test")

	effect := dev.DefaultEffect()
	effect.SetTexture(EffectParamImage, dev.NewTextureFromImage("src", solidImage(2, 2, color.RGBA{A: 255})))

	pass, err := target.Begin(8, 8)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	defer pass.End()

	vb := dev.NewVertexBuffer(2)
	if err := pass.DrawTriangleStrip(vb, effect); !errors.Is(err, ErrVertexCount) {
		t.Errorf("DrawTriangleStrip error = %v, want ErrVertexCount", err)
	}
}

func TestNewTextureFromImageCopiesPixels(t *testing.T) {
	dev := NewSoftwareDevice()
	src := solidImage(4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	tex := dev.NewTextureFromImage("t", src)

	src.SetRGBA(0, 0, color.RGBA{A: 255})
	if px := tex.Image().RGBAAt(0, 0); px.R != 10 {
		t.Errorf("texture shares memory with source image, pixel = %+v", px)
	}
	if tex.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v, want RGBA8Unorm", tex.Format())
	}
}
