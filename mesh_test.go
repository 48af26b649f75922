package transform3d

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/gogpu/transform3d/math3"
	"github.com/gogpu/transform3d/render"
)

const epsilon = 1e-5

func approxEq(a, b float32) bool {
	return math32.Abs(a-b) <= epsilon
}

func vecApproxEq(a, b math3.Vec3) bool {
	return approxEq(a.X, b.X) && approxEq(a.Y, b.Y) && approxEq(a.Z, b.Z)
}

func defaultParameters() Parameters {
	s := NewSettings()
	Defaults(s)
	return ParseParameters(s)
}

func buildQuad(t *testing.T, p Parameters, extent Extent) []render.Vertex {
	t.Helper()
	dev := render.NewSoftwareDevice()
	vb := dev.NewVertexBuffer(4)
	if err := buildMesh(vb, p, extent); err != nil {
		t.Fatalf("buildMesh: %v", err)
	}
	out := make([]render.Vertex, 4)
	for i := range out {
		out[i] = *vb.At(i)
	}
	return out
}

// The default transform must produce the unit quad: corners at (+-1, +-1)
// with UVs 0,0 at the top-left screen corner.
func TestBuildMeshDefaults(t *testing.T) {
	verts := buildQuad(t, defaultParameters(), Extent{Width: 800, Height: 600})

	want := []struct {
		pos math3.Vec3
		uv  [2]float32
	}{
		{math3.V3(-1, -1, 0), [2]float32{0, 0}},
		{math3.V3(1, -1, 0), [2]float32{1, 0}},
		{math3.V3(-1, 1, 0), [2]float32{0, 1}},
		{math3.V3(1, 1, 0), [2]float32{1, 1}},
	}
	for i, w := range want {
		if !vecApproxEq(verts[i].Position, w.pos) {
			t.Errorf("corner %d position = %+v, want %+v", i, verts[i].Position, w.pos)
		}
		if verts[i].UV != w.uv {
			t.Errorf("corner %d UV = %v, want %v", i, verts[i].UV, w.uv)
		}
		if verts[i].Color != render.ColorOpaqueWhite {
			t.Errorf("corner %d color = %#x, want opaque white", i, verts[i].Color)
		}
	}
}

// The orthographic camera normalizes to a unit square, so the source
// aspect ratio must not leak into the mesh.
func TestBuildMeshOrthographicIgnoresAspect(t *testing.T) {
	p := defaultParameters()
	wide := buildQuad(t, p, Extent{Width: 1920, Height: 1080})
	narrow := buildQuad(t, p, Extent{Width: 640, Height: 480})
	for i := range wide {
		if !vecApproxEq(wide[i].Position, narrow[i].Position) {
			t.Errorf("corner %d differs across aspects: %+v vs %+v",
				i, wide[i].Position, narrow[i].Position)
		}
	}
}

// The perspective camera keeps the source aspect, widening the quad for
// landscape sources.
func TestBuildMeshPerspectiveKeepsAspect(t *testing.T) {
	p := defaultParameters()
	p.CameraMode = CameraPerspective
	verts := buildQuad(t, p, Extent{Width: 200, Height: 100})
	if !approxEq(verts[0].Position.X, -2) || !approxEq(verts[1].Position.X, 2) {
		t.Errorf("2:1 quad spans [%v, %v], want [-2, 2]",
			verts[0].Position.X, verts[1].Position.X)
	}
	if !approxEq(verts[0].Position.Y, -1) {
		t.Errorf("quad height half-extent = %v, want 1", verts[0].Position.Y)
	}
}

func TestBuildMeshScaleAndPosition(t *testing.T) {
	p := defaultParameters()
	p.Scale = math3.V3(0.5, 2, 1)
	p.Position = math3.V3(0.25, -0.5, 3)
	verts := buildQuad(t, p, Extent{Width: 100, Height: 100})

	if !vecApproxEq(verts[0].Position, math3.V3(-0.25, -2.5, 3)) {
		t.Errorf("corner 0 = %+v, want {-0.25 -2.5 3}", verts[0].Position)
	}
	if !vecApproxEq(verts[3].Position, math3.V3(0.75, 1.5, 3)) {
		t.Errorf("corner 3 = %+v, want {0.75 1.5 3}", verts[3].Position)
	}
}

// Shear moves the bottom and top edges in opposite directions.
func TestBuildMeshShear(t *testing.T) {
	p := defaultParameters()
	p.Shear = math3.V3(0.25, 0, 0)
	verts := buildQuad(t, p, Extent{Width: 100, Height: 100})

	want := []math3.Vec3{
		math3.V3(-0.75, -1, 0),
		math3.V3(1.25, -1, 0),
		math3.V3(-1.25, 1, 0),
		math3.V3(0.75, 1, 0),
	}
	for i := range want {
		if !vecApproxEq(verts[i].Position, want[i]) {
			t.Errorf("corner %d = %+v, want %+v", i, verts[i].Position, want[i])
		}
	}
}

// Rotations about different axes do not commute, so the configured
// order must change the result.
func TestBuildMeshRotationOrderMatters(t *testing.T) {
	p := defaultParameters()
	p.Rotation = math3.V3(math32.Pi/2, math32.Pi/2, 0)

	p.RotationOrder = OrderXYZ
	xyz := buildQuad(t, p, Extent{Width: 100, Height: 100})
	p.RotationOrder = OrderYXZ
	yxz := buildQuad(t, p, Extent{Width: 100, Height: 100})

	same := true
	for i := range xyz {
		if !vecApproxEq(xyz[i].Position, yxz[i].Position) {
			same = false
		}
	}
	if same {
		t.Error("XYZ and YXZ orders produced identical meshes for a two-axis rotation")
	}
}

// A 90 degree Z rotation maps each corner onto a quarter-turned spot.
func TestBuildMeshRotationZ(t *testing.T) {
	p := defaultParameters()
	p.Rotation = math3.V3(0, 0, math32.Pi/2)
	verts := buildQuad(t, p, Extent{Width: 100, Height: 100})

	// (x, y) -> (-y, x)
	if !vecApproxEq(verts[0].Position, math3.V3(1, -1, 0)) {
		t.Errorf("corner 0 = %+v, want {1 -1 0}", verts[0].Position)
	}
	if !vecApproxEq(verts[3].Position, math3.V3(-1, 1, 0)) {
		t.Errorf("corner 3 = %+v, want {-1 1 0}", verts[3].Position)
	}
}

// Rotation order composition must match the explicit matrix product of
// the individual axis rotations for all six orders.
func TestMeshMatrixMatchesExplicitProduct(t *testing.T) {
	p := defaultParameters()
	p.Rotation = math3.V3(0.3, -0.7, 1.1)
	p.Position = math3.V3(1, 2, 3)

	rx := math3.RotationAxisAngle(math3.UnitX, p.Rotation.X)
	ry := math3.RotationAxisAngle(math3.UnitY, p.Rotation.Y)
	rz := math3.RotationAxisAngle(math3.UnitZ, p.Rotation.Z)
	tr := math3.Translation(p.Position)

	// With column vectors the first-applied rotation sits rightmost.
	products := map[RotationOrder]math3.Mat4{
		OrderXYZ: tr.Mul(rz).Mul(ry).Mul(rx),
		OrderXZY: tr.Mul(ry).Mul(rz).Mul(rx),
		OrderYXZ: tr.Mul(rz).Mul(rx).Mul(ry),
		OrderYZX: tr.Mul(rx).Mul(rz).Mul(ry),
		OrderZXY: tr.Mul(ry).Mul(rx).Mul(rz),
		OrderZYX: tr.Mul(rx).Mul(ry).Mul(rz),
	}

	probe := math3.V3(0.5, -0.25, 0.125)
	for order, want := range products {
		p.RotationOrder = order
		got := meshMatrix(p).TransformPoint(probe)
		ref := want.TransformPoint(probe)
		if !vecApproxEq(got, ref) {
			t.Errorf("order %v: meshMatrix point %+v, explicit product %+v", order, got, ref)
		}
	}
}

func TestExtentClamped(t *testing.T) {
	tests := []struct {
		in   Extent
		want Extent
	}{
		{Extent{0, 0}, Extent{1, 1}},
		{Extent{0, 7}, Extent{1, 7}},
		{Extent{7, 0}, Extent{7, 1}},
		{Extent{3, 4}, Extent{3, 4}},
	}
	for _, tt := range tests {
		if got := tt.in.clamped(); got != tt.want {
			t.Errorf("clamped(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
