// Package wgpu provides a GPU implementation of the render abstraction
// using gogpu/wgpu.
//
// Device, queue, texture and shader plumbing is live: the package opens
// a HAL device (or shares one from a gpucontext provider), allocates
// mip-mapped textures, and compiles the quad shader from WGSL to
// SPIR-V through gogpu/naga.
//
// The draw path (render pass encoding for the triangle strip and the
// sprite composite) is not wired yet and returns ErrNotImplemented;
// hosts fall back to render.SoftwareDevice until wgpu render pass
// support is complete.
package wgpu
