package attendance

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Clock is a time-of-day threshold (local clock).
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses an "HH:MM" threshold string.
func ParseClock(value string) (Clock, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("invalid clock value %q, expected HH:MM", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("invalid clock hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("invalid clock minute in %q", value)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Before reports whether the clock threshold falls strictly before the
// time-of-day of t, i.e. whether t is late relative to the threshold.
// Seconds count: a check-in one second past the threshold is late.
func (c Clock) Before(t time.Time) bool {
	threshold := c.Hour*3600 + c.Minute*60
	actual := t.Hour()*3600 + t.Minute()*60 + t.Second()
	return actual > threshold
}

// TieBreak decides which event wins when a day sees multiple check-ins or
// check-outs.
type TieBreak string

const (
	// TieBreakLastProcessed keeps whichever event is processed last,
	// regardless of its timestamp. This mirrors the terminal's stream
	// behavior and is the default.
	TieBreakLastProcessed TieBreak = "last-processed"

	// TieBreakEarliestLatest keeps the earliest check-in and the latest
	// check-out by timestamp.
	TieBreakEarliestLatest TieBreak = "earliest-in-latest-out"
)

// Options configure an aggregation pass. The late threshold is shared by
// every consumer (dashboard queries and persistence sync) so the derived
// status can never diverge between them.
type Options struct {
	LateAfter Clock
	TieBreak  TieBreak
}

// DefaultOptions matches the terminal's factory configuration.
func DefaultOptions() Options {
	return Options{
		LateAfter: Clock{Hour: 8, Minute: 0},
		TieBreak:  TieBreakLastProcessed,
	}
}

// Filter restricts events before aggregation. A nil bound leaves that side
// of the date range open; both bounds are inclusive calendar days.
type Filter struct {
	EmployeeID string
	StartDate  *time.Time
	EndDate    *time.Time
}

func (f Filter) matches(ev AttendanceEvent) bool {
	if f.EmployeeID != "" && ev.EmployeeID != f.EmployeeID {
		return false
	}
	day := DayKey(ev.Timestamp)
	if f.StartDate != nil && day < DayKey(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && day > DayKey(*f.EndDate) {
		return false
	}
	return true
}

// AggregateDaily groups events into at most one DailyAttendance per distinct
// calendar day, sorted by date descending. Events are processed strictly in
// input order; reordering would change which event wins a tie under the
// last-processed policy.
func AggregateDaily(events []AttendanceEvent, filter Filter, opts Options) []DailyAttendance {
	byDay := make(map[string]*DailyAttendance)
	var order []string

	for _, ev := range events {
		if !filter.matches(ev) {
			continue
		}
		day := DayKey(ev.Timestamp)
		entry, ok := byDay[day]
		if !ok {
			entry = &DailyAttendance{Date: day, Status: StatusAbsent}
			byDay[day] = entry
			order = append(order, day)
		}

		switch ev.Type {
		case EventCheckIn:
			if takesCheckIn(entry, ev, opts.TieBreak) {
				entry.CheckIn = &ev
			}
			entry.Status = checkInStatus(entry.CheckIn.Timestamp, opts.LateAfter)
		case EventCheckOut:
			if takesCheckOut(entry, ev, opts.TieBreak) {
				entry.CheckOut = &ev
			}
		}

		// Recomputed from the entry's current pair on every insert, so a
		// later replacement of either side updates the hours as well.
		if entry.CheckIn != nil && entry.CheckOut != nil {
			hours := roundHours(entry.CheckOut.Timestamp.Sub(entry.CheckIn.Timestamp))
			entry.HoursWorked = &hours
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(order)))
	result := make([]DailyAttendance, 0, len(order))
	for _, day := range order {
		result = append(result, *byDay[day])
	}
	return result
}

func takesCheckIn(entry *DailyAttendance, ev AttendanceEvent, policy TieBreak) bool {
	if entry.CheckIn == nil {
		return true
	}
	if policy == TieBreakEarliestLatest {
		return ev.Timestamp.Before(entry.CheckIn.Timestamp)
	}
	return true
}

func takesCheckOut(entry *DailyAttendance, ev AttendanceEvent, policy TieBreak) bool {
	if entry.CheckOut == nil {
		return true
	}
	if policy == TieBreakEarliestLatest {
		return ev.Timestamp.After(entry.CheckOut.Timestamp)
	}
	return true
}

func checkInStatus(checkIn time.Time, lateAfter Clock) DayStatus {
	if lateAfter.Before(checkIn) {
		return StatusLate
	}
	return StatusPresent
}

// roundHours converts a span to hours with two decimals. Negative spans
// (check-out recorded before check-in) pass through unclamped; callers that
// persist them log the anomaly but keep the value.
func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

// PartitionByEmployee splits events per employee, preserving the relative
// order within each partition.
func PartitionByEmployee(events []AttendanceEvent) (map[string][]AttendanceEvent, []string) {
	partitions := make(map[string][]AttendanceEvent)
	var order []string
	for _, ev := range events {
		if _, ok := partitions[ev.EmployeeID]; !ok {
			order = append(order, ev.EmployeeID)
		}
		partitions[ev.EmployeeID] = append(partitions[ev.EmployeeID], ev)
	}
	return partitions, order
}
