// ABOUTME: Tests for database lifecycle and per-owner partitioning
// ABOUTME: Verifies owner scoping, file layout, and cross-owner isolation
package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/wellness-standalone/internal/models"
)

func TestOpenInMemory(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.Path() != ":memory:" {
		t.Errorf("Path() = %v, want :memory:", db.Path())
	}
}

func TestOpenForOwner(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	db, err := OpenForOwner("u1")
	if err != nil {
		t.Fatalf("OpenForOwner() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.OwnerID() != "u1" {
		t.Errorf("OwnerID() = %v, want u1", db.OwnerID())
	}
	if filepath.Base(db.Path()) != "u1.db" {
		t.Errorf("Path() = %v, want a u1.db file", db.Path())
	}
}

func TestOpenForOwner_Invalid(t *testing.T) {
	if _, err := OpenForOwner(""); err == nil {
		t.Error("expected error for empty owner")
	}
	if _, err := OpenForOwner("../evil"); err == nil {
		t.Error("expected error for owner with path separators")
	}
}

// Writing under owner A then opening owner B's store must never surface A's
// rows. The databases are physically separate files.
func TestOwnerIsolation(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dbA, err := OpenForOwner("userA")
	if err != nil {
		t.Fatalf("OpenForOwner(userA) error = %v", err)
	}

	at := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)
	water, err := models.NewWaterEvent("userA", 750, at)
	if err != nil {
		t.Fatalf("NewWaterEvent() error = %v", err)
	}
	if err := NewWaterStore(dbA).Save(water, false); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	steps, err := models.NewStepEvent("userA", 5000, at)
	if err != nil {
		t.Fatalf("NewStepEvent() error = %v", err)
	}
	if err := NewStepStore(dbA).Save(steps, false); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := dbA.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	dbB, err := OpenForOwner("userB")
	if err != nil {
		t.Fatalf("OpenForOwner(userB) error = %v", err)
	}
	defer func() { _ = dbB.Close() }()

	if dbA.Path() == dbB.Path() {
		t.Fatal("owners share a database file")
	}

	got, err := NewWaterStore(dbB).GetByID(water.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Errorf("userB store returned userA's record: %+v", got)
	}

	events, err := NewWaterStore(dbB).ListByDateRange("userA", "2024-01-01", "2024-01-01")
	if err != nil {
		t.Fatalf("ListByDateRange() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("userB store listed %d of userA's events", len(events))
	}
}
