package attendance

import (
	"math"
	"time"
)

// Summarize reduces a daily attendance sequence to headline counts. It is a
// pure function: the same input always yields the same stats.
func Summarize(entries []DailyAttendance) AttendanceStats {
	stats := AttendanceStats{TotalDays: len(entries)}
	for _, entry := range entries {
		switch entry.Status {
		case StatusPresent:
			stats.PresentDays++
		case StatusLate:
			stats.LateDays++
		case StatusAbsent:
			// A day with a check-out but no check-in.
			stats.AbsentDays++
		}
		if entry.HoursWorked != nil {
			stats.TotalHours += *entry.HoursWorked
		}
	}
	stats.TotalHours = math.Round(stats.TotalHours*100) / 100
	if stats.TotalDays > 0 {
		stats.AverageHours = math.Round(stats.TotalHours/float64(stats.TotalDays)*100) / 100
	}
	return stats
}

// SummarizeToday computes the dashboard headline for a single calendar day.
// Employees with no event today count as absent.
func SummarizeToday(employees []Employee, events []AttendanceEvent, today time.Time, opts Options) DashboardStats {
	stats := DashboardStats{TotalEmployees: len(employees)}
	for _, emp := range employees {
		entries := AggregateDaily(events, Filter{
			EmployeeID: emp.ID,
			StartDate:  &today,
			EndDate:    &today,
		}, opts)
		if len(entries) == 0 {
			stats.Absent++
			continue
		}
		switch entries[0].Status {
		case StatusLate:
			stats.LateArrivals++
			stats.PresentToday++
		case StatusPresent:
			stats.PresentToday++
		default:
			stats.Absent++
		}
	}
	return stats
}
