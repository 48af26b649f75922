package transform3d

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/transform3d/math3"
	"github.com/gogpu/transform3d/render"
)

// Near and far clip planes, reciprocal powers of two to maximize
// floating-point depth precision across the working range.
const (
	farZ  float32 = 2097152 // 2^21
	nearZ float32 = 1 / farZ
)

// Outcome reports what a Render call did with the frame.
type Outcome int

// Render outcomes.
const (
	// Drawn means the transformed layer was composited into the
	// destination.
	Drawn Outcome = iota

	// Skipped means the frame was left alone: the upstream layer was
	// not ready or a resource could not be acquired. The host passes
	// the layer through unfiltered and the stage retries next tick.
	Skipped
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	if o == Drawn {
		return "Drawn"
	}
	return "Skipped"
}

// Source is the upstream layer the stage transforms.
//
// Size is sampled once per tick and drives aspect ratio and cache
// sizing. Capture draws the layer's current frame into the pass the
// stage has prepared (projection and blending already set); it returns
// false when the upstream is not ready, which skips the frame.
type Source interface {
	Size() (width, height uint32)
	Capture(pass render.Pass) bool
}

// Stage is one 3D transform stage instance. It exclusively owns its
// GPU resources (two render targets, the mipmap texture, the vertex
// buffer) and is driven frame-synchronously by the host: one Tick per
// output frame, then one or more Render calls.
//
// Stage is not safe for concurrent use.
type Stage struct {
	dev    render.Device
	source Source

	params     Parameters
	srcSize    Extent
	updateMesh bool

	vb           render.VertexBuffer
	cacheTarget  render.Target
	sourceTarget render.Target
	mipTexture   render.Texture

	// Per-tick work-avoidance flags, reset at tick start. They let
	// repeated Render calls within one tick reuse the first call's
	// passes; they provide no cross-goroutine synchronization.
	cacheRendered  bool
	mipmapRendered bool
	sourceRendered bool
}

// New creates a transform stage rendering through dev and capturing
// from source. Defaults are registered on the settings snapshot before
// the initial Update; a nil settings yields the default transform.
// Hosts with persisted settings call Migrate before New.
func New(dev render.Device, source Source, settings *Settings) *Stage {
	if settings == nil {
		settings = NewSettings()
	}
	Defaults(settings)

	s := &Stage{
		dev:          dev,
		source:       source,
		vb:           dev.NewVertexBuffer(4),
		cacheTarget:  dev.NewTarget("transform3d: capture"),
		sourceTarget: dev.NewTarget("transform3d: transform"),
	}
	s.Update(settings)
	return s
}

// Update replaces the parameters from a settings snapshot and marks
// the mesh dirty. It always marks dirty, even for identical settings;
// the rebuild happens on the next Tick.
func (s *Stage) Update(settings *Settings) {
	s.params = ParseParameters(settings)
	s.updateMesh = true
}

// Parameters returns the current parsed parameters.
func (s *Stage) Parameters() Parameters {
	return s.params
}

// Destroy releases all GPU resources owned by the stage.
func (s *Stage) Destroy() {
	if s.vb != nil {
		s.vb.Destroy()
		s.vb = nil
	}
	if s.cacheTarget != nil {
		s.cacheTarget.Destroy()
		s.cacheTarget = nil
	}
	if s.sourceTarget != nil {
		s.sourceTarget.Destroy()
		s.sourceTarget = nil
	}
	if s.mipTexture != nil {
		s.mipTexture.Destroy()
		s.mipTexture = nil
	}
}

// Tick refreshes size-dependent state once per output frame: it
// samples the source extent, rebuilds the mesh if parameters or extent
// changed, and resets the per-tick render flags. The delta parameter
// is accepted for host scheduling compatibility and unused.
func (s *Stage) Tick(_ float32) {
	var width, height uint32
	if s.source != nil {
		width, height = s.source.Size()
	}

	// Each axis is checked independently; a width-only change still
	// forces a rebuild.
	if width != s.srcSize.Width {
		s.updateMesh = true
	} else if height != s.srcSize.Height {
		s.updateMesh = true
	}

	if s.updateMesh {
		s.srcSize = Extent{Width: width, Height: height}
		if err := buildMesh(s.vb, s.params, s.srcSize); err != nil {
			Logger().Warn("transform3d: mesh rebuild failed", "err", err)
		}
		s.updateMesh = false
	}

	s.cacheRendered = false
	s.mipmapRendered = false
	s.sourceRendered = false
}

// Render runs the capture, mipmap, transform and composite passes and
// draws the transformed layer into dst. A nil effect uses the device's
// passthrough effect for the composite.
//
// Transient trouble (upstream not ready, missing texture, zero-sized
// source) returns Skipped rather than an error; no partial state is
// kept and the next tick retries from the capture.
func (s *Stage) Render(dst render.Target, effect render.Effect) Outcome {
	if s.source == nil || dst == nil {
		return Skipped
	}
	baseWidth, baseHeight := s.source.Size()
	if baseWidth == 0 || baseHeight == 0 {
		return Skipped
	}

	defaultEffect := s.dev.DefaultEffect()
	if effect == nil {
		effect = defaultEffect
	}

	native := Extent{Width: baseWidth, Height: baseHeight}
	cache := cacheResolution(native, s.params.Mipmapping)

	if !s.capture(native, cache) {
		return Skipped
	}
	cacheTex := s.cacheTarget.Texture()
	if cacheTex == nil {
		return Skipped
	}

	if s.params.Mipmapping {
		if !s.buildMipmapChain(cacheTex, cache) {
			return Skipped
		}
	}

	if !s.transform(native, cacheTex, defaultEffect) {
		return Skipped
	}
	sourceTex := s.sourceTarget.Texture()
	if sourceTex == nil {
		return Skipped
	}

	return s.composite(dst, native, sourceTex, effect)
}

// capture renders the upstream layer into the capture surface at the
// cache resolution, once per tick.
func (s *Stage) capture(native, cache Extent) bool {
	if s.cacheRendered {
		return true
	}

	pass, err := s.cacheTarget.Begin(cache.Width, cache.Height)
	if err != nil {
		Logger().Warn("transform3d: capture bind failed", "err", err)
		return false
	}
	pass.SetProjection(math3.Ortho(0, float32(native.Width), 0, float32(native.Height), -1, 1))
	pass.SetBlend(render.BlendOverwrite)
	pass.Clear()

	ok := s.source.Capture(pass)
	if err := pass.End(); err != nil {
		Logger().Warn("transform3d: capture pass failed", "err", err)
		return false
	}
	if !ok {
		return false
	}

	s.cacheRendered = true
	return true
}

// buildMipmapChain (re)allocates the mipmap texture when the cache
// resolution changed and rebuilds the full chain from the capture.
// The chain is rebuilt every tick while enabled since the capture
// itself is refreshed every tick.
func (s *Stage) buildMipmapChain(cacheTex render.Texture, cache Extent) bool {
	if s.mipmapRendered {
		return true
	}

	if s.mipTexture == nil || s.mipTexture.Width() != cache.Width || s.mipTexture.Height() != cache.Height {
		tex, err := s.dev.NewTexture(render.TextureDescriptor{
			Label:         "transform3d: mipmap chain",
			Width:         cache.Width,
			Height:        cache.Height,
			MipLevelCount: mipLevelCount(cache),
			Format:        gputypes.TextureFormatRGBA8Unorm,
		})
		if err != nil {
			Logger().Warn("transform3d: mipmap texture allocation failed", "err", err)
			return false
		}
		// The old texture is released only after the replacement is
		// confirmed valid.
		if s.mipTexture != nil {
			s.mipTexture.Destroy()
		}
		s.mipTexture = tex
		Logger().Debug("transform3d: mipmap texture reallocated",
			"width", cache.Width, "height", cache.Height, "levels", mipLevelCount(cache))
	}

	if err := s.dev.BuildMipmaps(cacheTex, s.mipTexture); err != nil {
		Logger().Warn("transform3d: mipmap rebuild failed", "err", err)
		return false
	}

	s.mipmapRendered = true
	return true
}

// transform projects the quad through the camera into an intermediate
// surface at native resolution, once per tick.
func (s *Stage) transform(native Extent, cacheTex render.Texture, defaultEffect render.Effect) bool {
	if s.sourceRendered {
		return true
	}

	pass, err := s.sourceTarget.Begin(native.Width, native.Height)
	if err != nil {
		Logger().Warn("transform3d: transform bind failed", "err", err)
		return false
	}

	if s.params.CameraMode == CameraOrthographic {
		pass.SetProjection(math3.Ortho(-1, 1, -1, 1, -farZ, farZ))
	} else {
		aspect := float32(native.Width) / float32(native.Height)
		pass.SetProjection(math3.Perspective(s.params.FieldOfView, aspect, nearZ, farZ))
		pass.Translate(math3.V3(0, 0, -1))
	}
	pass.SetBlend(render.BlendOverwrite)
	pass.Clear()

	sampled := cacheTex
	if s.params.Mipmapping && s.mipmapRendered && s.mipTexture != nil {
		sampled = s.mipTexture
	}
	defaultEffect.SetTexture(render.EffectParamImage, sampled)

	drawErr := pass.DrawTriangleStrip(s.vb, defaultEffect)
	if err := pass.End(); err != nil {
		Logger().Warn("transform3d: transform pass failed", "err", err)
		return false
	}
	if drawErr != nil {
		Logger().Warn("transform3d: quad draw failed", "err", drawErr)
		return false
	}

	s.sourceRendered = true
	return true
}

// composite draws the transformed surface as a 2D sprite into the
// destination. This runs on every Render call; the destination may
// differ per downstream consumer.
func (s *Stage) composite(dst render.Target, native Extent, sourceTex render.Texture, effect render.Effect) Outcome {
	pass, err := dst.Begin(native.Width, native.Height)
	if err != nil {
		Logger().Warn("transform3d: composite bind failed", "err", err)
		return Skipped
	}
	pass.SetProjection(math3.Ortho(0, float32(native.Width), 0, float32(native.Height), -1, 1))
	pass.SetBlend(render.BlendSourceOver)

	effect.SetTexture(render.EffectParamImage, sourceTex)
	drawErr := pass.DrawSprite(effect, native.Width, native.Height)
	if err := pass.End(); err != nil {
		Logger().Warn("transform3d: composite pass failed", "err", err)
		return Skipped
	}
	if drawErr != nil {
		Logger().Warn("transform3d: composite draw failed", "err", drawErr)
		return Skipped
	}
	return Drawn
}
