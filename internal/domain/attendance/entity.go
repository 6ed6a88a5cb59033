package attendance

import (
	"time"
)

// EventType is the kind of clock event reported by the terminal.
type EventType string

const (
	EventCheckIn  EventType = "check-in"
	EventCheckOut EventType = "check-out"
)

func (t EventType) Valid() bool {
	return t == EventCheckIn || t == EventCheckOut
}

// DayStatus is the derived status of a single attendance day.
type DayStatus string

const (
	StatusPresent DayStatus = "present"
	StatusLate    DayStatus = "late"
	StatusAbsent  DayStatus = "absent"
)

type Employee struct {
	ID         string
	Name       string
	Department string
	Position   string
}

// AttendanceEvent is one immutable clock punch read from the terminal.
type AttendanceEvent struct {
	ID         string
	EmployeeID string
	Timestamp  time.Time
	Type       EventType
	DeviceID   string
}

// DailyAttendance is the derived per-employee, per-day summary. It is
// rebuilt in memory on every aggregation pass and never persisted as-is.
type DailyAttendance struct {
	Date        string // YYYY-MM-DD, local calendar day
	CheckIn     *AttendanceEvent
	CheckOut    *AttendanceEvent
	Status      DayStatus
	HoursWorked *float64
}

type AttendanceStats struct {
	TotalDays    int
	PresentDays  int
	LateDays     int
	AbsentDays   int
	TotalHours   float64
	AverageHours float64
}

// DashboardStats are the headline numbers shown on the dashboard landing page.
type DashboardStats struct {
	TotalEmployees int
	PresentToday   int
	LateArrivals   int
	Absent         int
}

// SyncMetadata is the singleton record overwritten at the end of every sync run.
type SyncMetadata struct {
	Timestamp    time.Time
	RecordsCount int
	Year         int
}

// EmployeeProfile is the persisted employee document, keyed by the
// name-derived document key. DeviceUserID remains the stable identifier;
// the name-derived key exists for store-layout compatibility.
type EmployeeProfile struct {
	DocKey       string
	FullName     string
	DeviceUserID string
	Department   string
	Position     string
	JoinDate     time.Time
	LastSyncedAt time.Time
}

// Record is the persisted per-day attendance document under
// employees/{employeeKey}/attendance/{yearMonth}/records/{recordKey}.
type Record struct {
	EmployeeKey string
	YearMonth   string // YYYY-MM
	RecordKey   string // YYYY-MM-DD_<check-in unix millis>
	Date        time.Time
	CheckIn     time.Time
	CheckOut    *time.Time
	WorkHours   float64
	Status      DayStatus
	DeviceID    string
	SyncedAt    time.Time
}

const dayLayout = "2006-01-02"

// DayKey truncates a timestamp to its local calendar day.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// MonthKey returns the YYYY-MM prefix of a day key.
func MonthKey(dayKey string) string {
	if len(dayKey) < 7 {
		return dayKey
	}
	return dayKey[:7]
}
