// ABOUTME: Tests for the persisted current-owner marker file
// ABOUTME: Uses a temp XDG data dir so no real state is touched
package session

import (
	"testing"
)

func TestCurrentOwnerRoundTrip(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	owner, err := LoadCurrentOwner()
	if err != nil {
		t.Fatalf("LoadCurrentOwner() error = %v", err)
	}
	if owner != "" {
		t.Errorf("expected no owner before save, got %q", owner)
	}

	if err := SaveCurrentOwner("user_abc"); err != nil {
		t.Fatalf("SaveCurrentOwner() error = %v", err)
	}

	owner, err = LoadCurrentOwner()
	if err != nil {
		t.Fatalf("LoadCurrentOwner() error = %v", err)
	}
	if owner != "user_abc" {
		t.Errorf("expected user_abc, got %q", owner)
	}

	if err := ClearCurrentOwner(); err != nil {
		t.Fatalf("ClearCurrentOwner() error = %v", err)
	}

	owner, err = LoadCurrentOwner()
	if err != nil {
		t.Fatalf("LoadCurrentOwner() after clear error = %v", err)
	}
	if owner != "" {
		t.Errorf("expected no owner after clear, got %q", owner)
	}
}

func TestSaveCurrentOwnerRejectsEmpty(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	if err := SaveCurrentOwner(""); err == nil {
		t.Fatal("expected error for empty owner ID")
	}
}

func TestClearCurrentOwnerMissingIsNoError(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	if err := ClearCurrentOwner(); err != nil {
		t.Fatalf("ClearCurrentOwner() on missing file error = %v", err)
	}
}
