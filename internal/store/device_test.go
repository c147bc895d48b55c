// ABOUTME: Tests for the device identifier
// ABOUTME: Verifies get-or-create behavior and stability across calls and logout

package store

import "testing"

func TestDeviceID_Stable(t *testing.T) {
	dir := t.TempDir()

	first, err := DeviceID(dir)
	if err != nil {
		t.Fatalf("DeviceID: %v", err)
	}
	if first == "" {
		t.Fatal("Expected non-empty device id")
	}

	second, err := DeviceID(dir)
	if err != nil {
		t.Fatalf("DeviceID (second): %v", err)
	}
	if first != second {
		t.Errorf("Expected stable device id, got %s then %s", first, second)
	}
}

func TestDeviceID_SurvivesLogout(t *testing.T) {
	dir := t.TempDir()

	id, err := DeviceID(dir)
	if err != nil {
		t.Fatalf("DeviceID: %v", err)
	}

	s, _ := OpenSession(dir)
	s.Complete(Session{Token: "t", UserID: "u"})
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	after, err := DeviceID(dir)
	if err != nil {
		t.Fatalf("DeviceID (after logout): %v", err)
	}
	if after != id {
		t.Errorf("Expected device id to survive logout, got %s then %s", id, after)
	}
}

func TestDeviceID_DistinctPerInstallation(t *testing.T) {
	a, err := DeviceID(t.TempDir())
	if err != nil {
		t.Fatalf("DeviceID: %v", err)
	}
	b, err := DeviceID(t.TempDir())
	if err != nil {
		t.Fatalf("DeviceID: %v", err)
	}
	if a == b {
		t.Error("Expected distinct ids for distinct installations")
	}
}
