// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the GPU abstraction consumed by the transform
// stage: devices, render targets that bind at a requested resolution,
// textures with mip level counts, a small fixed-layout vertex buffer,
// and effects with named texture parameters.
//
// # Key Principle
//
// The transform stage RECEIVES its GPU resources from a Device, it does
// not talk to a graphics API directly. This keeps the per-frame pipeline
// independent of the backend: the same stage code runs against the
// software device and against backend/wgpu.
//
// # Implementations
//
//   - SoftwareDevice: complete CPU implementation rendering into
//     image.RGBA buffers; the reference backend, used by tests and
//     GPU-less hosts.
//   - backend/wgpu: GPU implementation on gogpu/wgpu.
//
// All implementations share the same screen convention: NDC +1 is the
// top of the screen, matching math3.Ortho and math3.Perspective.
//
// # Thread Safety
//
// Devices and their resources are NOT thread-safe. Each device should
// be used from a single goroutine, matching the frame-synchronous model
// of the transform stage.
package render
