package transform3d

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/transform3d/math3"
)

// CameraMode selects the projection model.
type CameraMode int64

// Camera modes.
const (
	// CameraOrthographic projects the quad into a unit square
	// regardless of source aspect ratio; depth is ignored.
	CameraOrthographic CameraMode = iota

	// CameraPerspective projects through a pinhole camera with a
	// configurable field of view.
	CameraPerspective
)

// String returns a human-readable name for the mode.
func (m CameraMode) String() string {
	switch m {
	case CameraOrthographic:
		return "Orthographic"
	case CameraPerspective:
		return "Perspective"
	default:
		return fmt.Sprintf("CameraMode(%d)", int64(m))
	}
}

// Axis identifies one of the three rotation axes.
type Axis uint8

// Rotation axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Vec returns the unit vector for the axis.
func (a Axis) Vec() math3.Vec3 {
	switch a {
	case AxisX:
		return math3.UnitX
	case AxisY:
		return math3.UnitY
	default:
		return math3.UnitZ
	}
}

// RotationOrder is the sequence in which the three axis rotations are
// composed. Rotations do not commute, so each of the six permutations
// yields a different net orientation.
type RotationOrder int64

// Rotation orders. The name lists the axes in application order: the
// first-listed axis rotation is applied to the quad first.
const (
	OrderXYZ RotationOrder = iota
	OrderXZY
	OrderYXZ
	OrderYZX
	OrderZXY
	OrderZYX
)

// rotationOrderAxes carries each order's application sequence as data,
// so the mesh builder loops instead of branching per order.
var rotationOrderAxes = [...][3]Axis{
	OrderXYZ: {AxisX, AxisY, AxisZ},
	OrderXZY: {AxisX, AxisZ, AxisY},
	OrderYXZ: {AxisY, AxisX, AxisZ},
	OrderYZX: {AxisY, AxisZ, AxisX},
	OrderZXY: {AxisZ, AxisX, AxisY},
	OrderZYX: {AxisZ, AxisY, AxisX},
}

// Axes returns the application sequence of the order. Unknown values
// fall back to OrderZXY, the default order.
func (o RotationOrder) Axes() [3]Axis {
	if o < 0 || int(o) >= len(rotationOrderAxes) {
		return rotationOrderAxes[OrderZXY]
	}
	return rotationOrderAxes[o]
}

// String returns the axis sequence, e.g. "ZXY".
func (o RotationOrder) String() string {
	names := [...]string{"XYZ", "XZY", "YXZ", "YZX", "ZXY", "ZYX"}
	if o < 0 || int(o) >= len(names) {
		return fmt.Sprintf("RotationOrder(%d)", int64(o))
	}
	return names[o]
}

// Parameters is the parsed transform configuration in render-facing
// units: ratios instead of percent, radians instead of degrees. It is
// replaced wholesale on every settings update, never partially mutated
// mid-frame.
type Parameters struct {
	CameraMode    CameraMode
	FieldOfView   float32 // degrees, perspective only
	Position      math3.Vec3
	Rotation      math3.Vec3 // radians
	RotationOrder RotationOrder
	Scale         math3.Vec3 // Z fixed at 1
	Shear         math3.Vec3 // Z fixed at 0
	Mipmapping    bool
}

// ParseParameters converts a settings snapshot into Parameters,
// dividing percent values by 100 and converting degrees to radians.
func ParseParameters(s *Settings) Parameters {
	return Parameters{
		CameraMode:  CameraMode(s.Int(KeyCameraMode)),
		FieldOfView: float32(s.Double(KeyCameraFieldOfView)),
		Position: math3.V3(
			float32(s.Double(KeyPositionX)/100),
			float32(s.Double(KeyPositionY)/100),
			float32(s.Double(KeyPositionZ)/100),
		),
		Rotation: math3.V3(
			float32(s.Double(KeyRotationX)/180)*math32.Pi,
			float32(s.Double(KeyRotationY)/180)*math32.Pi,
			float32(s.Double(KeyRotationZ)/180)*math32.Pi,
		),
		RotationOrder: RotationOrder(s.Int(KeyRotationOrder)),
		Scale: math3.V3(
			float32(s.Double(KeyScaleX)/100),
			float32(s.Double(KeyScaleY)/100),
			1,
		),
		Shear: math3.V3(
			float32(s.Double(KeyShearX)/100),
			float32(s.Double(KeyShearY)/100),
			0,
		),
		Mipmapping: s.Bool(KeyMipmapping),
	}
}

// component returns the rotation angle for an axis.
func (p Parameters) component(a Axis) float32 {
	switch a {
	case AxisX:
		return p.Rotation.X
	case AxisY:
		return p.Rotation.Y
	default:
		return p.Rotation.Z
	}
}

// Defaults registers the stage's default values on the settings
// snapshot: orthographic camera, 90 degree field of view, centered and
// unrotated, ZXY order, 100% scale, no shear, mipmapping off.
// User-supplied values are unaffected.
func Defaults(s *Settings) {
	s.SetDefaultInt(KeyCameraMode, int64(CameraOrthographic))
	s.SetDefaultDouble(KeyCameraFieldOfView, 90)
	s.SetDefaultDouble(KeyPositionX, 0)
	s.SetDefaultDouble(KeyPositionY, 0)
	s.SetDefaultDouble(KeyPositionZ, 0)
	s.SetDefaultDouble(KeyRotationX, 0)
	s.SetDefaultDouble(KeyRotationY, 0)
	s.SetDefaultDouble(KeyRotationZ, 0)
	s.SetDefaultInt(KeyRotationOrder, int64(OrderZXY))
	s.SetDefaultDouble(KeyScaleX, 100)
	s.SetDefaultDouble(KeyScaleY, 100)
	s.SetDefaultDouble(KeyShearX, 0)
	s.SetDefaultDouble(KeyShearY, 0)
	s.SetDefaultBool(KeyMipmapping, false)
}
