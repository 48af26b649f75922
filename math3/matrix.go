package math3

import "github.com/chewxy/math32"

// Mat4 represents a 4x4 transformation matrix in row-major storage
// with column-vector convention: applying the matrix to a point
// computes M*p, so the last column holds the translation.
type Mat4 [4][4]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a matrix translating by v.
func Translation(v Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, v.X},
		{0, 1, 0, v.Y},
		{0, 0, 1, v.Z},
		{0, 0, 0, 1},
	}
}

// RotationAxisAngle returns a rotation of angle radians about the given
// axis. The axis is normalized first; a zero axis yields the identity.
func RotationAxisAngle(axis Vec3, angle float32) Mat4 {
	a := axis.Normalize()
	if a == (Vec3{}) {
		return Identity()
	}
	s := math32.Sin(angle)
	c := math32.Cos(angle)
	t := 1 - c
	return Mat4{
		{t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y, 0},
		{t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X, 0},
		{t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c, 0},
		{0, 0, 0, 1},
	}
}

// Ortho returns an orthographic projection mapping x in [left, right]
// to [-1, 1] and y in [top, bottom] to [1, -1], so NDC +1 is the top of
// the screen. Depth maps [near, far] to [-1, 1].
func Ortho(left, right, top, bottom, near, far float32) Mat4 {
	return Mat4{
		{2 / (right - left), 0, 0, -(right + left) / (right - left)},
		{0, -2 / (bottom - top), 0, (bottom + top) / (bottom - top)},
		{0, 0, 2 / (far - near), -(far + near) / (far - near)},
		{0, 0, 0, 1},
	}
}

// Perspective returns a perspective projection with the given vertical
// field of view in degrees. The camera looks down -Z; the y axis is
// flipped to match the package's y-down screen convention, so geometry
// with negative y projects to the top of the screen.
func Perspective(fovyDeg, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovyDeg*(math32.Pi/180)/2)
	return Mat4{
		{f / aspect, 0, 0, 0},
		{0, -f, 0, 0},
		{0, 0, (far + near) / (near - far), 2 * far * near / (near - far)},
		{0, 0, -1, 0},
	}
}

// Mul returns m*other. With column-vector convention this applies
// other first, then m.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[r][k] * other[k][c]
			}
			out[r][c] = sum
		}
	}
	return out
}

// TransformPoint applies the matrix to a point with an implicit w of 1
// and performs the perspective divide. Affine matrices leave w at 1, so
// the divide is a no-op for them.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x, y, z, w := m.TransformVec4(p.X, p.Y, p.Z, 1)
	if w != 0 && w != 1 {
		return Vec3{X: x / w, Y: y / w, Z: z / w}
	}
	return Vec3{X: x, Y: y, Z: z}
}

// TransformVec4 applies the matrix to a homogeneous coordinate without
// dividing by w. Rasterizers use this to keep w for perspective-correct
// interpolation.
func (m Mat4) TransformVec4(x, y, z, w float32) (ox, oy, oz, ow float32) {
	ox = m[0][0]*x + m[0][1]*y + m[0][2]*z + m[0][3]*w
	oy = m[1][0]*x + m[1][1]*y + m[1][2]*z + m[1][3]*w
	oz = m[2][0]*x + m[2][1]*y + m[2][2]*z + m[2][3]*w
	ow = m[3][0]*x + m[3][1]*y + m[3][2]*z + m[3][3]*w
	return ox, oy, oz, ow
}
