// ABOUTME: Step event storage operations for SQLite
// ABOUTME: Same append-only and pending-sync shape as water events
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/harper/wellness-standalone/internal/models"
)

// StepStore handles step event persistence
type StepStore struct {
	db *DB
}

// NewStepStore creates a new StepStore
func NewStepStore(db *DB) *StepStore {
	return &StepStore{db: db}
}

// Save inserts a step event; idempotent on ID for safe re-sync
func (s *StepStore) Save(ev *models.StepEvent, pending bool) error {
	_, err := s.db.Exec(`
		INSERT INTO step_events (id, owner_id, steps, occurred_at, date, pending)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			pending = excluded.pending
	`, ev.ID, ev.OwnerID, ev.Steps, ev.OccurredAt, ev.Date, boolToInt(pending))
	if err != nil {
		return fmt.Errorf("failed to save step event: %w", err)
	}
	return nil
}

// GetByID retrieves a step event by ID, or nil if not found
func (s *StepStore) GetByID(id string) (*models.StepEvent, error) {
	var ev models.StepEvent
	err := s.db.QueryRow(`
		SELECT id, owner_id, steps, occurred_at, date
		FROM step_events
		WHERE id = ?
	`, id).Scan(&ev.ID, &ev.OwnerID, &ev.Steps, &ev.OccurredAt, &ev.Date)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// ListByDate returns all step events for (owner, date)
func (s *StepStore) ListByDate(ownerID, date string) ([]*models.StepEvent, error) {
	return s.list(`
		SELECT id, owner_id, steps, occurred_at, date
		FROM step_events
		WHERE owner_id = ? AND date = ?
		ORDER BY occurred_at
	`, ownerID, date)
}

// ListByDateRange returns all step events for owner with from <= date <= to
func (s *StepStore) ListByDateRange(ownerID, from, to string) ([]*models.StepEvent, error) {
	return s.list(`
		SELECT id, owner_id, steps, occurred_at, date
		FROM step_events
		WHERE owner_id = ? AND date >= ? AND date <= ?
		ORDER BY occurred_at
	`, ownerID, from, to)
}

// ListPending returns events not yet confirmed remote, oldest first
func (s *StepStore) ListPending(ownerID string) ([]*models.StepEvent, error) {
	return s.list(`
		SELECT id, owner_id, steps, occurred_at, date
		FROM step_events
		WHERE owner_id = ? AND pending = 1
		ORDER BY occurred_at
	`, ownerID)
}

// MarkSynced clears the pending marker after a confirmed remote write
func (s *StepStore) MarkSynced(id string) error {
	_, err := s.db.Exec(`UPDATE step_events SET pending = 0 WHERE id = ?`, id)
	return err
}

// DeleteAllForOwner removes every step event belonging to ownerID
func (s *StepStore) DeleteAllForOwner(ownerID string) error {
	_, err := s.db.Exec(`DELETE FROM step_events WHERE owner_id = ?`, ownerID)
	return err
}

func (s *StepStore) list(query string, args ...interface{}) ([]*models.StepEvent, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.StepEvent
	for rows.Next() {
		var ev models.StepEvent
		if err := rows.Scan(&ev.ID, &ev.OwnerID, &ev.Steps, &ev.OccurredAt, &ev.Date); err != nil {
			return nil, err
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}
