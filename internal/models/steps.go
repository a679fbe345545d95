// ABOUTME: StepEvent represents a batch of steps reported by the user or a device
// ABOUTME: Append-only; external fitness providers go through the same constructor
package models

import "time"

// StepEvent is one reported step count
type StepEvent struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Steps      int       `json:"steps"`
	OccurredAt time.Time `json:"occurred_at"`
	Date       string    `json:"date"`
}

// NewStepEvent validates and constructs a step event for the given owner
func NewStepEvent(ownerID string, steps int, at time.Time) (*StepEvent, error) {
	if ownerID == "" {
		return nil, validationErr("owner_id", "must not be empty")
	}
	if steps <= 0 {
		return nil, validationErr("steps", "must be positive, got %d", steps)
	}
	return &StepEvent{
		ID:         NewRecordID("steps", at),
		OwnerID:    ownerID,
		Steps:      steps,
		OccurredAt: at,
		Date:       DateOf(at),
	}, nil
}
