// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/transform3d/math3"

// ColorOpaqueWhite is the packed RGBA color 0xAABBGGRR for fully opaque
// white. The transform stage only moves geometry, it never tints, so
// every vertex it emits carries this color.
const ColorOpaqueWhite uint32 = 0xFFFFFFFF

// Vertex is the fixed vertex layout of the quad pipeline: a position,
// a packed RGBA color and one set of texture coordinates.
type Vertex struct {
	Position math3.Vec3
	Color    uint32
	UV       [2]float32
}

// VertexBuffer holds a fixed number of vertices with CPU-side mutable
// access and an explicit upload step.
type VertexBuffer interface {
	// Len returns the number of vertices.
	Len() int

	// At returns mutable access to vertex i. The pointer stays valid
	// until the buffer is destroyed.
	At(i int) *Vertex

	// Upload flushes CPU-side writes to the device copy. Call it after
	// mutating vertices and before drawing.
	Upload() error

	// Destroy releases the buffer.
	Destroy()
}
