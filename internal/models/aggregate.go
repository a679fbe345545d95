// ABOUTME: DailyAggregate is the derived per-day summary of raw wellness events
// ABOUTME: A recomputable cache keyed by (owner, date), upserted on every write
package models

import "time"

// DailyAggregate holds a day's totals and composite wellness score.
// It is a deterministic function of the day's events plus goals and
// may always be recomputed and overwritten.
type DailyAggregate struct {
	OwnerID         string    `json:"owner_id"`
	Date            string    `json:"date"`
	TotalWaterMl    int       `json:"total_water_ml"`
	TotalSteps      int       `json:"total_steps"`
	TotalSleepHours float64   `json:"total_sleep_hours"`
	WellnessScore   int       `json:"wellness_score"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ZeroAggregate returns the aggregate for a day with no logged activity.
// A missing day is valid data, not an error.
func ZeroAggregate(ownerID, date string) *DailyAggregate {
	return &DailyAggregate{OwnerID: ownerID, Date: date}
}
