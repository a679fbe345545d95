// ABOUTME: Water event storage operations for SQLite
// ABOUTME: Append-only inserts plus pending-sync bookkeeping
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/harper/wellness-standalone/internal/models"
)

// WaterStore handles water event persistence
type WaterStore struct {
	db *DB
}

// NewWaterStore creates a new WaterStore
func NewWaterStore(db *DB) *WaterStore {
	return &WaterStore{db: db}
}

// Save inserts a water event. pending marks whether the remote write is
// still outstanding. Saving an existing ID is an idempotent upsert so
// re-synced records never duplicate.
func (s *WaterStore) Save(ev *models.WaterEvent, pending bool) error {
	_, err := s.db.Exec(`
		INSERT INTO water_events (id, owner_id, amount_ml, occurred_at, date, pending)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			pending = excluded.pending
	`, ev.ID, ev.OwnerID, ev.AmountMl, ev.OccurredAt, ev.Date, boolToInt(pending))
	if err != nil {
		return fmt.Errorf("failed to save water event: %w", err)
	}
	return nil
}

// GetByID retrieves a water event by ID, or nil if not found
func (s *WaterStore) GetByID(id string) (*models.WaterEvent, error) {
	var ev models.WaterEvent
	err := s.db.QueryRow(`
		SELECT id, owner_id, amount_ml, occurred_at, date
		FROM water_events
		WHERE id = ?
	`, id).Scan(&ev.ID, &ev.OwnerID, &ev.AmountMl, &ev.OccurredAt, &ev.Date)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// ListByDate returns all water events for (owner, date)
func (s *WaterStore) ListByDate(ownerID, date string) ([]*models.WaterEvent, error) {
	return s.list(`
		SELECT id, owner_id, amount_ml, occurred_at, date
		FROM water_events
		WHERE owner_id = ? AND date = ?
		ORDER BY occurred_at
	`, ownerID, date)
}

// ListByDateRange returns all water events for owner with from <= date <= to
func (s *WaterStore) ListByDateRange(ownerID, from, to string) ([]*models.WaterEvent, error) {
	return s.list(`
		SELECT id, owner_id, amount_ml, occurred_at, date
		FROM water_events
		WHERE owner_id = ? AND date >= ? AND date <= ?
		ORDER BY occurred_at
	`, ownerID, from, to)
}

// ListPending returns events not yet confirmed remote, oldest first
func (s *WaterStore) ListPending(ownerID string) ([]*models.WaterEvent, error) {
	return s.list(`
		SELECT id, owner_id, amount_ml, occurred_at, date
		FROM water_events
		WHERE owner_id = ? AND pending = 1
		ORDER BY occurred_at
	`, ownerID)
}

// MarkSynced clears the pending marker after a confirmed remote write
func (s *WaterStore) MarkSynced(id string) error {
	_, err := s.db.Exec(`UPDATE water_events SET pending = 0 WHERE id = ?`, id)
	return err
}

// DeleteAllForOwner removes every water event belonging to ownerID
func (s *WaterStore) DeleteAllForOwner(ownerID string) error {
	_, err := s.db.Exec(`DELETE FROM water_events WHERE owner_id = ?`, ownerID)
	return err
}

func (s *WaterStore) list(query string, args ...interface{}) ([]*models.WaterEvent, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.WaterEvent
	for rows.Next() {
		var ev models.WaterEvent
		if err := rows.Scan(&ev.ID, &ev.OwnerID, &ev.AmountMl, &ev.OccurredAt, &ev.Date); err != nil {
			return nil, err
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
