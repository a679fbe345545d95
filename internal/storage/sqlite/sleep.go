// ABOUTME: Sleep session storage operations for SQLite
// ABOUTME: Stores start/end, derived duration and optional quality rating
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harper/wellness-standalone/internal/models"
)

// SleepStore handles sleep event persistence
type SleepStore struct {
	db *DB
}

// NewSleepStore creates a new SleepStore
func NewSleepStore(db *DB) *SleepStore {
	return &SleepStore{db: db}
}

// Save inserts a sleep session; idempotent on ID for safe re-sync
func (s *SleepStore) Save(ev *models.SleepEvent, pending bool) error {
	_, err := s.db.Exec(`
		INSERT INTO sleep_events (id, owner_id, sleep_start, sleep_end, duration_hours, quality_rating, occurred_at, date, pending)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			pending = excluded.pending
	`, ev.ID, ev.OwnerID, nullTime(ev.SleepStart), nullTime(ev.SleepEnd),
		ev.DurationHours, ev.QualityRating, ev.OccurredAt, ev.Date, boolToInt(pending))
	if err != nil {
		return fmt.Errorf("failed to save sleep event: %w", err)
	}
	return nil
}

// GetByID retrieves a sleep session by ID, or nil if not found
func (s *SleepStore) GetByID(id string) (*models.SleepEvent, error) {
	var (
		ev         models.SleepEvent
		start, end sql.NullTime
	)
	err := s.db.QueryRow(`
		SELECT id, owner_id, sleep_start, sleep_end, duration_hours, quality_rating, occurred_at, date
		FROM sleep_events
		WHERE id = ?
	`, id).Scan(&ev.ID, &ev.OwnerID, &start, &end, &ev.DurationHours,
		&ev.QualityRating, &ev.OccurredAt, &ev.Date)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if start.Valid {
		ev.SleepStart = start.Time
	}
	if end.Valid {
		ev.SleepEnd = end.Time
	}
	return &ev, nil
}

// ListByDate returns all sleep sessions for (owner, date)
func (s *SleepStore) ListByDate(ownerID, date string) ([]*models.SleepEvent, error) {
	return s.list(`
		SELECT id, owner_id, sleep_start, sleep_end, duration_hours, quality_rating, occurred_at, date
		FROM sleep_events
		WHERE owner_id = ? AND date = ?
		ORDER BY occurred_at
	`, ownerID, date)
}

// ListByDateRange returns all sleep sessions for owner with from <= date <= to
func (s *SleepStore) ListByDateRange(ownerID, from, to string) ([]*models.SleepEvent, error) {
	return s.list(`
		SELECT id, owner_id, sleep_start, sleep_end, duration_hours, quality_rating, occurred_at, date
		FROM sleep_events
		WHERE owner_id = ? AND date >= ? AND date <= ?
		ORDER BY occurred_at
	`, ownerID, from, to)
}

// ListPending returns sessions not yet confirmed remote, oldest first
func (s *SleepStore) ListPending(ownerID string) ([]*models.SleepEvent, error) {
	return s.list(`
		SELECT id, owner_id, sleep_start, sleep_end, duration_hours, quality_rating, occurred_at, date
		FROM sleep_events
		WHERE owner_id = ? AND pending = 1
		ORDER BY occurred_at
	`, ownerID)
}

// MarkSynced clears the pending marker after a confirmed remote write
func (s *SleepStore) MarkSynced(id string) error {
	_, err := s.db.Exec(`UPDATE sleep_events SET pending = 0 WHERE id = ?`, id)
	return err
}

// DeleteAllForOwner removes every sleep session belonging to ownerID
func (s *SleepStore) DeleteAllForOwner(ownerID string) error {
	_, err := s.db.Exec(`DELETE FROM sleep_events WHERE owner_id = ?`, ownerID)
	return err
}

func (s *SleepStore) list(query string, args ...interface{}) ([]*models.SleepEvent, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.SleepEvent
	for rows.Next() {
		var (
			ev         models.SleepEvent
			start, end sql.NullTime
		)
		if err := rows.Scan(&ev.ID, &ev.OwnerID, &start, &end, &ev.DurationHours,
			&ev.QualityRating, &ev.OccurredAt, &ev.Date); err != nil {
			return nil, err
		}
		if start.Valid {
			ev.SleepStart = start.Time
		}
		if end.Valid {
			ev.SleepEnd = end.Time
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
