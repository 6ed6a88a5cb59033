package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNoSnapshot       = errors.New("no device snapshot available yet")
	ErrInvalidDateRange = errors.New("start_date must not be after end_date")
)

// ParseError reports a single malformed event or employee record. Records
// failing with a ParseError are rejected individually; the rest of the
// batch is unaffected.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("parse %s %q: invalid value", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
