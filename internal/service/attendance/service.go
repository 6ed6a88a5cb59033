package attendance

import (
	"context"
	"sync"
	"time"

	"github.com/hudoor/hudoor-backend-go/internal/domain/attendance"
	"github.com/hudoor/hudoor-backend-go/internal/domain/device"
)

// AttendanceServiceImpl serves the dashboard's read-only queries from the
// most recent device snapshot. The snapshot is replaced wholesale after a
// successful fetch; a failed sync never clears previously served data.
type AttendanceServiceImpl struct {
	opts attendance.Options

	mu       sync.RWMutex
	snapshot *device.Snapshot
}

func NewAttendanceService(opts attendance.Options) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{opts: opts}
}

// Publish replaces the current snapshot. Called by the sync service after
// every successful device fetch.
func (a *AttendanceServiceImpl) Publish(snapshot device.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snapshot = &snapshot
}

func (a *AttendanceServiceImpl) current() (device.Snapshot, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.snapshot == nil {
		return device.Snapshot{}, attendance.ErrNoSnapshot
	}
	return *a.snapshot, nil
}

// ListEmployees implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListEmployees(ctx context.Context) ([]attendance.Employee, error) {
	snapshot, err := a.current()
	if err != nil {
		return nil, err
	}
	return snapshot.Employees, nil
}

// GetDailyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDailyAttendance(ctx context.Context, employeeID string, query attendance.RangeQuery) ([]attendance.DailyAttendance, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := a.current()
	if err != nil {
		return nil, err
	}

	if _, err := findEmployee(snapshot.Employees, employeeID); err != nil {
		return nil, err
	}

	start, end, err := query.Bounds()
	if err != nil {
		return nil, err
	}

	entries := attendance.AggregateDaily(snapshot.Records, attendance.Filter{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
	}, a.opts)
	return entries, nil
}

// GetStats implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetStats(ctx context.Context, employeeID string, query attendance.RangeQuery) (attendance.AttendanceStats, error) {
	entries, err := a.GetDailyAttendance(ctx, employeeID, query)
	if err != nil {
		return attendance.AttendanceStats{}, err
	}
	return attendance.Summarize(entries), nil
}

// GetDashboardStats implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDashboardStats(ctx context.Context) (attendance.DashboardStats, error) {
	snapshot, err := a.current()
	if err != nil {
		return attendance.DashboardStats{}, err
	}
	today := time.Now()
	return attendance.SummarizeToday(snapshot.Employees, snapshot.Records, today, a.opts), nil
}

func findEmployee(employees []attendance.Employee, id string) (attendance.Employee, error) {
	for _, emp := range employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return attendance.Employee{}, attendance.ErrEmployeeNotFound
}
