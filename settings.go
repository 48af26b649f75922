package transform3d

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// Persisted configuration keys, one per parameter. The host stores
// these per stage instance; Migrate maps legacy key names onto them.
const (
	KeyCameraMode        = "Camera.Mode"
	KeyCameraFieldOfView = "Camera.FieldOfView"
	KeyPositionX         = "Position.X"
	KeyPositionY         = "Position.Y"
	KeyPositionZ         = "Position.Z"
	KeyRotationX         = "Rotation.X"
	KeyRotationY         = "Rotation.Y"
	KeyRotationZ         = "Rotation.Z"
	KeyRotationOrder     = "Rotation.Order"
	KeyScaleX            = "Scale.X"
	KeyScaleY            = "Scale.Y"
	KeyShearX            = "Shear.X"
	KeyShearY            = "Shear.Y"
	KeyMipmapping        = "Mipmapping"
)

// Settings is a flat key-value configuration snapshot. It mirrors the
// host's settings contract: a key may carry a user-supplied value, a
// default registered by the stage, or nothing. Getters fall back from
// user value to default to the zero value.
//
// Settings is not safe for concurrent use; the host hands the stage a
// snapshot per update, never mid-frame.
type Settings struct {
	values   map[string]any
	defaults map[string]any
}

// NewSettings creates an empty settings snapshot.
func NewSettings() *Settings {
	return &Settings{
		values:   make(map[string]any),
		defaults: make(map[string]any),
	}
}

// SetDouble stores a user-supplied float value.
func (s *Settings) SetDouble(key string, v float64) { s.values[key] = v }

// SetInt stores a user-supplied integer value.
func (s *Settings) SetInt(key string, v int64) { s.values[key] = v }

// SetBool stores a user-supplied boolean value.
func (s *Settings) SetBool(key string, v bool) { s.values[key] = v }

// SetDefaultDouble registers the default float for a key. Defaults are
// reported by the getters but do not count as user values.
func (s *Settings) SetDefaultDouble(key string, v float64) { s.defaults[key] = v }

// SetDefaultInt registers the default integer for a key.
func (s *Settings) SetDefaultInt(key string, v int64) { s.defaults[key] = v }

// SetDefaultBool registers the default boolean for a key.
func (s *Settings) SetDefaultBool(key string, v bool) { s.defaults[key] = v }

// HasUserValue reports whether the key carries a user-supplied value,
// as opposed to only a default or nothing at all.
func (s *Settings) HasUserValue(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Unset removes the user-supplied value for a key. The default, if
// any, shows through again.
func (s *Settings) Unset(key string) {
	delete(s.values, key)
}

// Double returns the float value for a key: the user value if set,
// else the default, else 0. Integer-typed values are widened so a
// snapshot loaded from disk reads back the same way it was written.
func (s *Settings) Double(key string) float64 {
	v, ok := s.values[key]
	if !ok {
		v, ok = s.defaults[key]
		if !ok {
			return 0
		}
	}
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

// Int returns the integer value for a key with the same fallback rules
// as Double.
func (s *Settings) Int(key string) int64 {
	v, ok := s.values[key]
	if !ok {
		v, ok = s.defaults[key]
		if !ok {
			return 0
		}
	}
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

// Bool returns the boolean value for a key with the same fallback
// rules as Double.
func (s *Settings) Bool(key string) bool {
	v, ok := s.values[key]
	if !ok {
		v, ok = s.defaults[key]
		if !ok {
			return false
		}
	}
	b, _ := v.(bool)
	return b
}

// raw returns the user value without type coercion. Migrate uses it to
// move values between keys unmodified.
func (s *Settings) raw(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// setRaw stores a value without type coercion.
func (s *Settings) setRaw(key string, v any) {
	s.values[key] = v
}

// Save writes the user-supplied values as TOML. Defaults are not
// persisted; they are re-registered by the stage on load.
func (s *Settings) Save(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s.values); err != nil {
		return fmt.Errorf("transform3d: encode settings: %w", err)
	}
	return nil
}

// Load replaces the user-supplied values with the TOML document read
// from r. Registered defaults are kept.
func (s *Settings) Load(r io.Reader) error {
	values := make(map[string]any)
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return fmt.Errorf("transform3d: decode settings: %w", err)
	}
	s.values = values
	return nil
}
