// ABOUTME: Tests for login/logout owner marker handling
// ABOUTME: Uses a temp XDG data dir so no real session state is touched

package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/harper/wellness-standalone/internal/session"
)

func TestLogoutWhenNotSignedIn(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cmd := NewLogoutCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)

	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("logout error = %v", err)
	}
	if !strings.Contains(output.String(), "Not signed in") {
		t.Errorf("expected 'Not signed in', got %q", output.String())
	}
}

func TestLogoutClearsOwner(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	if err := session.SaveCurrentOwner("user_abc"); err != nil {
		t.Fatalf("SaveCurrentOwner() error = %v", err)
	}

	cmd := NewLogoutCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)

	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("logout error = %v", err)
	}
	if !strings.Contains(output.String(), "Signed out user_abc") {
		t.Errorf("expected sign-out message, got %q", output.String())
	}

	owner, err := session.LoadCurrentOwner()
	if err != nil {
		t.Fatalf("LoadCurrentOwner() error = %v", err)
	}
	if owner != "" {
		t.Errorf("owner marker should be cleared, got %q", owner)
	}
}

func TestLoginRejectsOwnerSwitch(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	if err := session.SaveCurrentOwner("user_abc"); err != nil {
		t.Fatalf("SaveCurrentOwner() error = %v", err)
	}

	cmd := NewLoginCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)

	err := cmd.RunE(cmd, []string{"user_xyz"})
	if err == nil {
		t.Fatal("expected error when another owner is signed in")
	}
	if !strings.Contains(err.Error(), "logout") {
		t.Errorf("error should point at logout, got %v", err)
	}
}
