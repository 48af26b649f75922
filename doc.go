// Package transform3d implements a real-time 3D transform stage for a
// single video layer inside a compositing pipeline.
//
// # Overview
//
// The stage captures an upstream layer into an off-screen surface,
// optionally pre-filters it through a power-of-two mipmap chain,
// positions it as a textured quad in 3D space (position, rotation with
// a configurable axis order, non-uniform scale, shear), projects it
// through an orthographic or perspective camera, and composites the
// result back to a 2D surface at the layer's native resolution.
//
// The host drives the stage frame-synchronously: one Tick per output
// frame to refresh size-dependent state, then one or more Render calls.
// Repeated Render calls within a tick reuse the work of the first.
//
//	dev := render.NewSoftwareDevice()
//	settings := transform3d.NewSettings()
//	transform3d.Defaults(settings)
//	settings.SetInt(transform3d.KeyCameraMode, int64(transform3d.CameraPerspective))
//	settings.SetDouble(transform3d.KeyRotationY, 30)
//
//	stage := transform3d.New(dev, source, settings)
//	defer stage.Destroy()
//
//	out := dev.NewTarget("out")
//	for eachFrame {
//	    stage.Tick(delta)
//	    if stage.Render(out, nil) == transform3d.Skipped {
//	        // upstream not ready; pass the layer through unfiltered
//	    }
//	}
//
// GPU resources come from a render.Device: the software implementation
// in the render package, or the wgpu-backed one in backend/wgpu.
package transform3d
