package attendance

import (
	"time"

	"github.com/hudoor/hudoor-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// RangeQuery is the optional inclusive date range accepted by the
// attendance and stats endpoints (YYYY-MM-DD, both bounds inclusive).
type RangeQuery struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (q *RangeQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.StartDate != "" && !validator.IsValidDate(q.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be formatted as YYYY-MM-DD",
		})
	}

	if q.EndDate != "" && !validator.IsValidDate(q.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be formatted as YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	if q.StartDate != "" && q.EndDate != "" && q.StartDate > q.EndDate {
		return ErrInvalidDateRange
	}

	return nil
}

// Bounds returns the parsed range; a missing bound stays nil (open).
func (q *RangeQuery) Bounds() (start, end *time.Time, err error) {
	if q.StartDate != "" {
		t, perr := time.ParseInLocation(dayLayout, q.StartDate, time.Local)
		if perr != nil {
			return nil, nil, &ParseError{Field: "start_date", Value: q.StartDate, Err: perr}
		}
		start = &t
	}
	if q.EndDate != "" {
		t, perr := time.ParseInLocation(dayLayout, q.EndDate, time.Local)
		if perr != nil {
			return nil, nil, &ParseError{Field: "end_date", Value: q.EndDate, Err: perr}
		}
		end = &t
	}
	return start, end, nil
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

type EventResponse struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	DeviceID  string `json:"deviceId"`
}

type DailyAttendanceResponse struct {
	Date        string         `json:"date"`
	CheckIn     *EventResponse `json:"checkIn,omitempty"`
	CheckOut    *EventResponse `json:"checkOut,omitempty"`
	Status      DayStatus      `json:"status"`
	HoursWorked *float64       `json:"hoursWorked,omitempty"`
}

type StatsResponse struct {
	TotalDays    int     `json:"totalDays"`
	PresentDays  int     `json:"presentDays"`
	LateDays     int     `json:"lateDays"`
	AbsentDays   int     `json:"absentDays"`
	TotalHours   float64 `json:"totalHours"`
	AverageHours float64 `json:"averageHours"`
}

type DashboardStatsResponse struct {
	TotalEmployees int `json:"totalEmployees"`
	PresentToday   int `json:"presentToday"`
	LateArrivals   int `json:"lateArrivals"`
	Absent         int `json:"absent"`
}

func NewEmployeeResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         emp.ID,
		Name:       emp.Name,
		Department: emp.Department,
		Position:   emp.Position,
	}
}

func newEventResponse(ev *AttendanceEvent) *EventResponse {
	if ev == nil {
		return nil
	}
	return &EventResponse{
		ID:        ev.ID,
		Timestamp: ev.Timestamp.Format(time.RFC3339),
		Type:      string(ev.Type),
		DeviceID:  ev.DeviceID,
	}
}

func NewDailyAttendanceResponse(entry DailyAttendance) DailyAttendanceResponse {
	return DailyAttendanceResponse{
		Date:        entry.Date,
		CheckIn:     newEventResponse(entry.CheckIn),
		CheckOut:    newEventResponse(entry.CheckOut),
		Status:      entry.Status,
		HoursWorked: entry.HoursWorked,
	}
}

func NewStatsResponse(stats AttendanceStats) StatsResponse {
	return StatsResponse{
		TotalDays:    stats.TotalDays,
		PresentDays:  stats.PresentDays,
		LateDays:     stats.LateDays,
		AbsentDays:   stats.AbsentDays,
		TotalHours:   stats.TotalHours,
		AverageHours: stats.AverageHours,
	}
}

func NewDashboardStatsResponse(stats DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		TotalEmployees: stats.TotalEmployees,
		PresentToday:   stats.PresentToday,
		LateArrivals:   stats.LateArrivals,
		Absent:         stats.Absent,
	}
}
