// ABOUTME: SleepEvent represents one logged sleep session
// ABOUTME: Duration may be supplied or derived from the start/end pair
package models

import "time"

// Quality rating bounds; 0 means unrated
const (
	QualityUnrated = 0
	QualityMax     = 5
)

// SleepEvent is one logged sleep session
type SleepEvent struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	SleepStart    time.Time `json:"sleep_start"`
	SleepEnd      time.Time `json:"sleep_end"`
	DurationHours float64   `json:"duration_hours"`
	QualityRating int       `json:"quality_rating"`
	OccurredAt    time.Time `json:"occurred_at"`
	Date          string    `json:"date"`
}

// NewSleepEvent validates and constructs a sleep session for the given owner.
// If durationHours is zero it is derived from the start/end pair.
func NewSleepEvent(ownerID string, start, end time.Time, durationHours float64, quality int, at time.Time) (*SleepEvent, error) {
	if ownerID == "" {
		return nil, validationErr("owner_id", "must not be empty")
	}
	if durationHours == 0 && !start.IsZero() && !end.IsZero() {
		durationHours = end.Sub(start).Hours()
	}
	if durationHours < 0 {
		return nil, validationErr("duration_hours", "must not be negative, got %v", durationHours)
	}
	if quality < QualityUnrated || quality > QualityMax {
		return nil, validationErr("quality_rating", "must be 0-5, got %d", quality)
	}
	return &SleepEvent{
		ID:            NewRecordID("sleep", at),
		OwnerID:       ownerID,
		SleepStart:    start,
		SleepEnd:      end,
		DurationHours: durationHours,
		QualityRating: quality,
		OccurredAt:    at,
		Date:          DateOf(at),
	}, nil
}
