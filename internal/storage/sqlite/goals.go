// ABOUTME: Goals storage operations for SQLite
// ABOUTME: Exactly one live row per owner, overwritten on edit
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/harper/wellness-standalone/internal/models"
)

// GoalsStore handles goals persistence
type GoalsStore struct {
	db *DB
}

// NewGoalsStore creates a new GoalsStore
func NewGoalsStore(db *DB) *GoalsStore {
	return &GoalsStore{db: db}
}

// Upsert writes the owner's goals, overwriting any prior row
func (s *GoalsStore) Upsert(g *models.Goals, pending bool) error {
	_, err := s.db.Exec(`
		INSERT INTO goals
			(owner_id, daily_steps_target, daily_water_target_ml, daily_sleep_target_hours, weekly_exercise_minutes_target, pending)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			daily_steps_target = excluded.daily_steps_target,
			daily_water_target_ml = excluded.daily_water_target_ml,
			daily_sleep_target_hours = excluded.daily_sleep_target_hours,
			weekly_exercise_minutes_target = excluded.weekly_exercise_minutes_target,
			pending = excluded.pending
	`, g.OwnerID, g.DailyStepsTarget, g.DailyWaterTargetMl, g.DailySleepTargetHours,
		g.WeeklyExerciseMinutesTarget, boolToInt(pending))
	if err != nil {
		return fmt.Errorf("failed to upsert goals: %w", err)
	}
	return nil
}

// Get retrieves the owner's goals, or nil if never set
func (s *GoalsStore) Get(ownerID string) (*models.Goals, error) {
	var g models.Goals
	err := s.db.QueryRow(`
		SELECT owner_id, daily_steps_target, daily_water_target_ml, daily_sleep_target_hours, weekly_exercise_minutes_target
		FROM goals
		WHERE owner_id = ?
	`, ownerID).Scan(&g.OwnerID, &g.DailyStepsTarget, &g.DailyWaterTargetMl,
		&g.DailySleepTargetHours, &g.WeeklyExerciseMinutesTarget)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// IsPending reports whether the owner's goals row awaits a remote write
func (s *GoalsStore) IsPending(ownerID string) (bool, error) {
	var pending int
	err := s.db.QueryRow(`SELECT pending FROM goals WHERE owner_id = ?`, ownerID).Scan(&pending)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return pending == 1, nil
}

// MarkSynced clears the pending marker for the owner's goals
func (s *GoalsStore) MarkSynced(ownerID string) error {
	_, err := s.db.Exec(`UPDATE goals SET pending = 0 WHERE owner_id = ?`, ownerID)
	return err
}

// DeleteAllForOwner removes the owner's goals row
func (s *GoalsStore) DeleteAllForOwner(ownerID string) error {
	_, err := s.db.Exec(`DELETE FROM goals WHERE owner_id = ?`, ownerID)
	return err
}
