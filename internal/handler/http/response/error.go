package response

import (
	"errors"
	"net/http"

	"github.com/hudoor/hudoor-backend-go/internal/domain/attendance"
	"github.com/hudoor/hudoor-backend-go/internal/domain/auth"
	"github.com/hudoor/hudoor-backend-go/internal/domain/device"
	syncdomain "github.com/hudoor/hudoor-backend-go/internal/domain/sync"
	"github.com/hudoor/hudoor-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Individually malformed records (bad timestamp, bad date parameter)
	var parseErr *attendance.ParseError
	if errors.As(err, &parseErr) {
		BadRequest(w, parseErr.Error(), nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, attendance.ErrNoSnapshot):
		NotFound(w, "No device data synced yet")
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Sync domain errors
	case errors.Is(err, syncdomain.ErrSyncInProgress):
		Conflict(w, "A sync run is already in progress")

	// Device source errors
	case errors.Is(err, device.ErrUnreachable),
		errors.Is(err, device.ErrNotRunning),
		errors.Is(err, device.ErrSyncFailed),
		errors.Is(err, device.ErrBadResponse):
		ServiceUnavailable(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
