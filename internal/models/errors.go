// ABOUTME: Validation error type shared by all record constructors
// ABOUTME: Rejected before any I/O, never retried
package models

import "fmt"

// ValidationError reports a record field that failed construction checks
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
