// ABOUTME: Calendar-day helpers shared by all wellness records
// ABOUTME: Days are ISO-8601 dates in the local timezone
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used everywhere a record carries a date
const DateLayout = "2006-01-02"

// DateOf truncates a timestamp to its local calendar day
func DateOf(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// ValidateDate checks that s is a well-formed calendar date
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return validationErr("date", "%q is not a calendar date", s)
	}
	return nil
}

// NewRecordID builds a sortable unique record ID like water_20240101_080000_ab12cd34
func NewRecordID(kind string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s", kind, at.Format("20060102_150405"), uuid.New().String()[:8])
}
