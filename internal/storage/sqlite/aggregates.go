// ABOUTME: Daily aggregate storage operations for SQLite
// ABOUTME: Upsert semantics keyed by (owner, date); never duplicated
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/harper/wellness-standalone/internal/models"
)

// AggregateStore handles daily aggregate persistence
type AggregateStore struct {
	db *DB
}

// NewAggregateStore creates a new AggregateStore
func NewAggregateStore(db *DB) *AggregateStore {
	return &AggregateStore{db: db}
}

// Upsert writes the aggregate for (owner, date), overwriting any prior row.
// created_at is preserved across overwrites.
func (s *AggregateStore) Upsert(agg *models.DailyAggregate, pending bool) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_aggregates
			(owner_id, date, total_water_ml, total_steps, total_sleep_hours, wellness_score, created_at, updated_at, pending)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id, date) DO UPDATE SET
			total_water_ml = excluded.total_water_ml,
			total_steps = excluded.total_steps,
			total_sleep_hours = excluded.total_sleep_hours,
			wellness_score = excluded.wellness_score,
			updated_at = excluded.updated_at,
			pending = excluded.pending
	`, agg.OwnerID, agg.Date, agg.TotalWaterMl, agg.TotalSteps, agg.TotalSleepHours,
		agg.WellnessScore, agg.CreatedAt, agg.UpdatedAt, boolToInt(pending))
	if err != nil {
		return fmt.Errorf("failed to upsert aggregate: %w", err)
	}
	return nil
}

// GetByDate retrieves the aggregate for (owner, date), or nil if not found
func (s *AggregateStore) GetByDate(ownerID, date string) (*models.DailyAggregate, error) {
	var agg models.DailyAggregate
	err := s.db.QueryRow(`
		SELECT owner_id, date, total_water_ml, total_steps, total_sleep_hours, wellness_score, created_at, updated_at
		FROM daily_aggregates
		WHERE owner_id = ? AND date = ?
	`, ownerID, date).Scan(&agg.OwnerID, &agg.Date, &agg.TotalWaterMl, &agg.TotalSteps,
		&agg.TotalSleepHours, &agg.WellnessScore, &agg.CreatedAt, &agg.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// ListByDateRange returns aggregates for owner with from <= date <= to, sorted by date
func (s *AggregateStore) ListByDateRange(ownerID, from, to string) ([]*models.DailyAggregate, error) {
	rows, err := s.db.Query(`
		SELECT owner_id, date, total_water_ml, total_steps, total_sleep_hours, wellness_score, created_at, updated_at
		FROM daily_aggregates
		WHERE owner_id = ? AND date >= ? AND date <= ?
		ORDER BY date
	`, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aggs []*models.DailyAggregate
	for rows.Next() {
		var agg models.DailyAggregate
		if err := rows.Scan(&agg.OwnerID, &agg.Date, &agg.TotalWaterMl, &agg.TotalSteps,
			&agg.TotalSleepHours, &agg.WellnessScore, &agg.CreatedAt, &agg.UpdatedAt); err != nil {
			return nil, err
		}
		aggs = append(aggs, &agg)
	}
	return aggs, rows.Err()
}

// ListPendingDates returns the dates of aggregates not yet confirmed remote
func (s *AggregateStore) ListPendingDates(ownerID string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT date FROM daily_aggregates
		WHERE owner_id = ? AND pending = 1
		ORDER BY date
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// MarkSynced clears the pending marker for (owner, date)
func (s *AggregateStore) MarkSynced(ownerID, date string) error {
	_, err := s.db.Exec(`UPDATE daily_aggregates SET pending = 0 WHERE owner_id = ? AND date = ?`, ownerID, date)
	return err
}

// DeleteAllForOwner removes every aggregate belonging to ownerID
func (s *AggregateStore) DeleteAllForOwner(ownerID string) error {
	_, err := s.db.Exec(`DELETE FROM daily_aggregates WHERE owner_id = ?`, ownerID)
	return err
}
