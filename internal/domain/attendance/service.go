package attendance

import (
	"context"
)

// AttendanceService defines the dashboard's read-only queries. All of them
// aggregate over the most recent device snapshot on demand; nothing here
// touches the persistence store.
type AttendanceService interface {
	// ListEmployees returns the employees of the latest snapshot.
	ListEmployees(ctx context.Context) ([]Employee, error)

	// GetDailyAttendance aggregates one employee's events into per-day
	// entries, optionally restricted to an inclusive date range.
	GetDailyAttendance(ctx context.Context, employeeID string, query RangeQuery) ([]DailyAttendance, error)

	// GetStats summarizes the employee's daily entries over the range.
	GetStats(ctx context.Context, employeeID string, query RangeQuery) (AttendanceStats, error)

	// GetDashboardStats computes today's headline numbers.
	GetDashboardStats(ctx context.Context) (DashboardStats, error)
}
