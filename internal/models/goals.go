// ABOUTME: Goals holds each owner's daily wellness targets
// ABOUTME: Exactly one live row per owner, created with defaults at first use
package models

// Default daily targets
const (
	DefaultStepsTarget           = 10000
	DefaultWaterTargetMl         = 2000
	DefaultSleepTargetHours      = 8.0
	DefaultWeeklyExerciseMinutes = 150
)

// Goals are the per-owner targets the wellness score is computed against
type Goals struct {
	OwnerID                     string  `json:"owner_id"`
	DailyStepsTarget            int     `json:"daily_steps_target"`
	DailyWaterTargetMl          int     `json:"daily_water_target_ml"`
	DailySleepTargetHours       float64 `json:"daily_sleep_target_hours"`
	WeeklyExerciseMinutesTarget int     `json:"weekly_exercise_minutes_target"`
}

// DefaultGoals returns the targets an owner gets before any explicit edit
func DefaultGoals(ownerID string) *Goals {
	return &Goals{
		OwnerID:                     ownerID,
		DailyStepsTarget:            DefaultStepsTarget,
		DailyWaterTargetMl:          DefaultWaterTargetMl,
		DailySleepTargetHours:       DefaultSleepTargetHours,
		WeeklyExerciseMinutesTarget: DefaultWeeklyExerciseMinutes,
	}
}

// Validate rejects non-positive targets
func (g *Goals) Validate() error {
	if g.OwnerID == "" {
		return validationErr("owner_id", "must not be empty")
	}
	if g.DailyStepsTarget <= 0 {
		return validationErr("daily_steps_target", "must be positive, got %d", g.DailyStepsTarget)
	}
	if g.DailyWaterTargetMl <= 0 {
		return validationErr("daily_water_target_ml", "must be positive, got %d", g.DailyWaterTargetMl)
	}
	if g.DailySleepTargetHours <= 0 {
		return validationErr("daily_sleep_target_hours", "must be positive, got %v", g.DailySleepTargetHours)
	}
	if g.WeeklyExerciseMinutesTarget <= 0 {
		return validationErr("weekly_exercise_minutes_target", "must be positive, got %d", g.WeeklyExerciseMinutesTarget)
	}
	return nil
}
