package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	rec := EventRecord{
		ID:         "REC-1-0-IN",
		EmployeeID: "1",
		Timestamp:  "2026-01-05T08:15:00",
		Type:       "check-in",
		DeviceID:   "uFace800-Main",
	}

	ev, err := ParseEvent(rec)
	require.NoError(t, err)
	assert.Equal(t, "1", ev.EmployeeID)
	assert.Equal(t, EventCheckIn, ev.Type)
	assert.Equal(t, "2026-01-05", DayKey(ev.Timestamp))
	assert.Equal(t, 8, ev.Timestamp.Hour())
}

func TestParseEvent_RFC3339(t *testing.T) {
	rec := EventRecord{
		ID:         "REC-1-0-OUT",
		EmployeeID: "1",
		Timestamp:  "2026-01-05T16:30:00Z",
		Type:       "check-out",
	}

	ev, err := ParseEvent(rec)
	require.NoError(t, err)
	assert.Equal(t, EventCheckOut, ev.Type)
	assert.True(t, ev.Timestamp.Equal(time.Date(2026, 1, 5, 16, 30, 0, 0, time.UTC)))
}

func TestParseEvent_Malformed(t *testing.T) {
	cases := []struct {
		name string
		rec  EventRecord
	}{
		{"bad timestamp", EventRecord{EmployeeID: "1", Timestamp: "yesterday", Type: "check-in"}},
		{"empty timestamp", EventRecord{EmployeeID: "1", Type: "check-in"}},
		{"missing employee", EventRecord{Timestamp: "2026-01-05T08:00:00", Type: "check-in"}},
		{"unknown type", EventRecord{EmployeeID: "1", Timestamp: "2026-01-05T08:00:00", Type: "break"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseEvent(c.rec)
			require.Error(t, err)
			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseEmployee(t *testing.T) {
	emp, err := ParseEmployee(EmployeeRecord{ID: "7", Name: "Ahmed Ali", Department: "Engineering"})
	require.NoError(t, err)
	assert.Equal(t, "Ahmed Ali", emp.Name)

	// Nameless device users get a placeholder display name.
	emp, err = ParseEmployee(EmployeeRecord{ID: "9"})
	require.NoError(t, err)
	assert.Equal(t, "User 9", emp.Name)

	_, err = ParseEmployee(EmployeeRecord{Name: "No ID"})
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2026-01", MonthKey("2026-01-05"))
	assert.Equal(t, "x", MonthKey("x"))
}
