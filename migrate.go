package transform3d

// Version packs a release number into a uint64 for migration gating,
// 16 bits per component: major.minor.patch.tweak.
type Version uint64

// MakeVersion packs the four release components into a Version.
func MakeVersion(major, minor, patch, tweak uint16) Version {
	return Version(major)<<48 | Version(minor)<<32 | Version(patch)<<16 | Version(tweak)
}

// versionUpdateMask drops the tweak component: migrations only compare
// against major.minor.patch.
const versionUpdateMask = ^Version(0xFFFF)

// legacyKeyPrefix is the key namespace used before the 0.11 schema.
const legacyKeyPrefix = "Filter.Transform."

// legacyKeys maps current key names to their pre-0.11 counterparts.
var legacyKeys = map[string]string{
	KeyCameraMode:        legacyKeyPrefix + "Camera",
	KeyCameraFieldOfView: legacyKeyPrefix + "Camera.FieldOfView",
	KeyPositionX:         legacyKeyPrefix + "Position.X",
	KeyPositionY:         legacyKeyPrefix + "Position.Y",
	KeyPositionZ:         legacyKeyPrefix + "Position.Z",
	KeyRotationX:         legacyKeyPrefix + "Rotation.X",
	KeyRotationY:         legacyKeyPrefix + "Rotation.Y",
	KeyRotationZ:         legacyKeyPrefix + "Rotation.Z",
	KeyRotationOrder:     legacyKeyPrefix + "Rotation.Order",
	KeyScaleX:            legacyKeyPrefix + "Scale.X",
	KeyScaleY:            legacyKeyPrefix + "Scale.Y",
	KeyShearX:            legacyKeyPrefix + "Shear.X",
	KeyShearY:            legacyKeyPrefix + "Shear.Y",
	KeyMipmapping:        legacyKeyPrefix + "Mipmapping",
}

// Migrate renames legacy parameter keys in the settings snapshot to
// their current names, gated by the version the snapshot was written
// with. Values are moved unmodified; a key that already has a
// user-supplied value under the current name is never overwritten.
//
// Migrate is idempotent: running it on already-migrated (or empty)
// settings is a no-op. Hosts call it once before the first Update.
func Migrate(s *Settings, version Version) {
	version &= versionUpdateMask

	if version < MakeVersion(0, 11, 0, 0) {
		for current, legacy := range legacyKeys {
			v, ok := s.raw(legacy)
			if !ok {
				continue
			}
			if !s.HasUserValue(current) {
				s.setRaw(current, v)
			}
			s.Unset(legacy)
		}
	}
}
