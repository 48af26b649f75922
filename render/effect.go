// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// EffectParamImage is the texture parameter every drawing effect
// exposes: the image being sampled.
const EffectParamImage = "image"

// Effect is a shading program with named texture parameters. The stage
// binds the texture to draw under EffectParamImage and issues the draw
// through the pass; hosts may pass their own effect to recolor or
// post-process the composite.
type Effect interface {
	// SetTexture binds a texture to the named parameter. A nil texture
	// unbinds the parameter.
	SetTexture(name string, tex Texture)

	// Texture returns the texture bound to the named parameter, or nil.
	Texture(name string) Texture
}

// PassthroughEffect is the default Effect: it samples its image
// parameter unmodified. Both the software device and the wgpu backend
// accept it.
type PassthroughEffect struct {
	textures map[string]Texture
}

// NewPassthroughEffect creates an effect that draws its image parameter
// unmodified.
func NewPassthroughEffect() *PassthroughEffect {
	return &PassthroughEffect{textures: make(map[string]Texture)}
}

// SetTexture binds a texture to the named parameter.
func (e *PassthroughEffect) SetTexture(name string, tex Texture) {
	if tex == nil {
		delete(e.textures, name)
		return
	}
	e.textures[name] = tex
}

// Texture returns the texture bound to the named parameter, or nil.
func (e *PassthroughEffect) Texture(name string) Texture {
	return e.textures[name]
}

// Ensure PassthroughEffect implements Effect.
var _ Effect = (*PassthroughEffect)(nil)
