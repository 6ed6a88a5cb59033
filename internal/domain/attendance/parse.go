package attendance

import (
	"time"
)

// Wire shapes as delivered by the device proxy. Timestamps arrive either as
// RFC 3339 strings or as timezone-naive local timestamps, depending on the
// proxy's source (ZK protocol reader vs. exported file).
type EmployeeRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

type EventRecord struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Timestamp  string `json:"timestamp"`
	Type       string `json:"type"`
	DeviceID   string `json:"deviceId"`
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05", // naive device clock, assumed local
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a wire timestamp. Naive layouts are interpreted in
// the viewer's local time, matching the device's local clock assumption.
func ParseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, &ParseError{Field: "timestamp", Value: value}
	}
	for _, layout := range timestampLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339 {
			t, err = time.Parse(layout, value)
		} else {
			t, err = time.ParseInLocation(layout, value, time.Local)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Field: "timestamp", Value: value}
}

// ParseEvent converts a wire event into a domain event. A malformed
// timestamp, unknown type or missing required field yields a *ParseError.
func ParseEvent(rec EventRecord) (AttendanceEvent, error) {
	if rec.EmployeeID == "" {
		return AttendanceEvent{}, &ParseError{Field: "employeeId", Value: rec.EmployeeID}
	}
	eventType := EventType(rec.Type)
	if !eventType.Valid() {
		return AttendanceEvent{}, &ParseError{Field: "type", Value: rec.Type}
	}
	ts, err := ParseTimestamp(rec.Timestamp)
	if err != nil {
		return AttendanceEvent{}, err
	}
	return AttendanceEvent{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Timestamp:  ts,
		Type:       eventType,
		DeviceID:   rec.DeviceID,
	}, nil
}

// ParseEmployee converts a wire employee into a domain employee.
func ParseEmployee(rec EmployeeRecord) (Employee, error) {
	if rec.ID == "" {
		return Employee{}, &ParseError{Field: "id", Value: rec.ID}
	}
	name := rec.Name
	if name == "" {
		name = "User " + rec.ID
	}
	return Employee{
		ID:         rec.ID,
		Name:       name,
		Department: rec.Department,
		Position:   rec.Position,
	}, nil
}
