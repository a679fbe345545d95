// ABOUTME: WaterEvent represents a single logged water intake
// ABOUTME: Append-only; deleted only by full owner reset
package models

import "time"

// WaterEvent is one logged drink in milliliters
type WaterEvent struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	AmountMl   int       `json:"amount_ml"`
	OccurredAt time.Time `json:"occurred_at"`
	Date       string    `json:"date"`
}

// NewWaterEvent validates and constructs a water event for the given owner
func NewWaterEvent(ownerID string, amountMl int, at time.Time) (*WaterEvent, error) {
	if ownerID == "" {
		return nil, validationErr("owner_id", "must not be empty")
	}
	if amountMl <= 0 {
		return nil, validationErr("amount_ml", "must be positive, got %d", amountMl)
	}
	return &WaterEvent{
		ID:         NewRecordID("water", at),
		OwnerID:    ownerID,
		AmountMl:   amountMl,
		OccurredAt: at,
		Date:       DateOf(at),
	}, nil
}
