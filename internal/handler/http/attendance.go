package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hudoor/hudoor-backend-go/internal/domain/attendance"
	"github.com/hudoor/hudoor-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployeeAttendance(w http.ResponseWriter, r *http.Request)
	GetEmployeeStats(w http.ResponseWriter, r *http.Request)
	GetDashboardStats(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// ListEmployees implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.attendanceService.ListEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]attendance.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		result = append(result, attendance.NewEmployeeResponse(emp))
	}
	response.Success(w, result)
}

// GetEmployeeAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	query := rangeQueryFromRequest(r)

	entries, err := h.attendanceService.GetDailyAttendance(r.Context(), employeeID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]attendance.DailyAttendanceResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, attendance.NewDailyAttendanceResponse(entry))
	}
	response.Success(w, result)
}

// GetEmployeeStats implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetEmployeeStats(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	query := rangeQueryFromRequest(r)

	stats, err := h.attendanceService.GetStats(r.Context(), employeeID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewStatsResponse(stats))
}

// GetDashboardStats implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.attendanceService.GetDashboardStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewDashboardStatsResponse(stats))
}

func rangeQueryFromRequest(r *http.Request) attendance.RangeQuery {
	return attendance.RangeQuery{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
}
