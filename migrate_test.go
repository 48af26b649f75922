package transform3d

import "testing"

func TestMakeVersion(t *testing.T) {
	tests := []struct {
		name string
		a, b Version
		less bool
	}{
		{"minor ordering", MakeVersion(0, 10, 0, 0), MakeVersion(0, 11, 0, 0), true},
		{"major beats minor", MakeVersion(1, 0, 0, 0), MakeVersion(0, 99, 0, 0), false},
		{"patch ordering", MakeVersion(0, 11, 0, 0), MakeVersion(0, 11, 1, 0), true},
		{"equal", MakeVersion(2, 3, 4, 5), MakeVersion(2, 3, 4, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a < tt.b; got != tt.less {
				t.Errorf("%#x < %#x = %v, want %v", uint64(tt.a), uint64(tt.b), got, tt.less)
			}
		})
	}
}

func TestMigrateRenamesLegacyKeys(t *testing.T) {
	s := NewSettings()
	s.SetDouble("Filter.Transform.Rotation.Z", 45)
	s.SetInt("Filter.Transform.Camera", 1)
	s.SetBool("Filter.Transform.Mipmapping", true)

	Migrate(s, MakeVersion(0, 10, 0, 0))

	if got := s.Double(KeyRotationZ); got != 45 {
		t.Errorf("RotationZ = %v, want 45", got)
	}
	if got := s.Int(KeyCameraMode); got != 1 {
		t.Errorf("CameraMode = %v, want 1", got)
	}
	if !s.Bool(KeyMipmapping) {
		t.Error("Mipmapping not migrated")
	}
	for _, legacy := range []string{
		"Filter.Transform.Rotation.Z",
		"Filter.Transform.Camera",
		"Filter.Transform.Mipmapping",
	} {
		if s.HasUserValue(legacy) {
			t.Errorf("legacy key %q survived migration", legacy)
		}
	}
}

func TestMigrateKeepsCurrentValue(t *testing.T) {
	s := NewSettings()
	s.SetDouble(KeyRotationZ, 90)
	s.SetDouble("Filter.Transform.Rotation.Z", 45)

	Migrate(s, MakeVersion(0, 10, 0, 0))

	if got := s.Double(KeyRotationZ); got != 90 {
		t.Errorf("RotationZ = %v, want existing 90", got)
	}
	if s.HasUserValue("Filter.Transform.Rotation.Z") {
		t.Error("legacy key should be removed even when not copied")
	}
}

func TestMigrateGatedByVersion(t *testing.T) {
	s := NewSettings()
	s.SetDouble("Filter.Transform.Rotation.Z", 45)

	// Snapshots written at or after 0.11 already use current names;
	// nothing is touched. The tweak component is ignored for gating.
	Migrate(s, MakeVersion(0, 11, 0, 99))

	if s.HasUserValue(KeyRotationZ) {
		t.Error("post-0.11 snapshot must not be migrated")
	}
	if !s.HasUserValue("Filter.Transform.Rotation.Z") {
		t.Error("post-0.11 migration should leave keys untouched")
	}

	// A pre-0.11 tweak release still migrates.
	Migrate(s, MakeVersion(0, 10, 99, 7))
	if got := s.Double(KeyRotationZ); got != 45 {
		t.Errorf("RotationZ = %v, want 45", got)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	s := NewSettings()
	s.SetDouble("Filter.Transform.Rotation.Z", 45)

	Migrate(s, MakeVersion(0, 10, 0, 0))
	s.SetDouble(KeyRotationZ, 60)
	Migrate(s, MakeVersion(0, 10, 0, 0))

	if got := s.Double(KeyRotationZ); got != 60 {
		t.Errorf("RotationZ = %v, want 60 after second migration", got)
	}

	// Empty settings are a no-op.
	empty := NewSettings()
	Migrate(empty, MakeVersion(0, 1, 0, 0))
	if empty.HasUserValue(KeyRotationZ) {
		t.Error("migrating empty settings invented values")
	}
}
