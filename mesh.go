package transform3d

import (
	"github.com/gogpu/transform3d/math3"
	"github.com/gogpu/transform3d/render"
)

// Extent is a source resolution in pixels.
type Extent struct {
	Width  uint32
	Height uint32
}

// clamped returns the extent with zero axes raised to 1, so aspect and
// mesh math never divide by zero.
func (e Extent) clamped() Extent {
	if e.Width == 0 {
		e.Width = 1
	}
	if e.Height == 0 {
		e.Height = 1
	}
	return e
}

// meshMatrix composes the three axis rotations in the parameter's
// rotation order, then the translation. With column-vector convention
// the first-listed axis is applied to the quad first.
func meshMatrix(p Parameters) math3.Mat4 {
	m := math3.Identity()
	for _, axis := range p.RotationOrder.Axes() {
		m = math3.RotationAxisAngle(axis.Vec(), p.component(axis)).Mul(m)
	}
	return math3.Translation(p.Position).Mul(m)
}

// baseCorners returns the four untransformed quad corners with their
// UVs. Shear offsets the bottom and top edges in opposite directions,
// turning the rectangle into a parallelogram before rotation and
// translation apply.
func baseCorners(p Parameters, aspect float32) [4]render.Vertex {
	px := aspect * p.Scale.X
	py := p.Scale.Y
	sx := p.Shear.X
	sy := p.Shear.Y
	return [4]render.Vertex{
		{Position: math3.V3(-px+sx, -py-sy, 0), Color: render.ColorOpaqueWhite, UV: [2]float32{0, 0}},
		{Position: math3.V3(px+sx, -py+sy, 0), Color: render.ColorOpaqueWhite, UV: [2]float32{1, 0}},
		{Position: math3.V3(-px-sx, py-sy, 0), Color: render.ColorOpaqueWhite, UV: [2]float32{0, 1}},
		{Position: math3.V3(px-sx, py+sy, 0), Color: render.ColorOpaqueWhite, UV: [2]float32{1, 1}},
	}
}

// buildMesh recomputes and uploads the quad for the given parameters
// and source extent. The orthographic camera normalizes to a unit
// square, so its aspect is forced to 1 regardless of the source.
func buildMesh(vb render.VertexBuffer, p Parameters, extent Extent) error {
	extent = extent.clamped()
	aspect := float32(extent.Width) / float32(extent.Height)
	if p.CameraMode == CameraOrthographic {
		aspect = 1
	}

	m := meshMatrix(p)
	for i, corner := range baseCorners(p, aspect) {
		vtx := vb.At(i)
		vtx.Color = corner.Color
		vtx.UV = corner.UV
		vtx.Position = m.TransformPoint(corner.Position)
	}
	return vb.Upload()
}
