package http

import (
	"net/http"

	"github.com/hudoor/hudoor-backend-go/internal/domain/device"
	"github.com/hudoor/hudoor-backend-go/internal/handler/http/response"
)

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	reader device.Reader
	mode   string
}

func NewHealthHandler(reader device.Reader, mode string) HealthHandler {
	return &healthHandlerImpl{reader: reader, mode: mode}
}

// Health implements HealthHandler. The device probe carries its own short
// timeout; any failure reports the source as not running, but the API
// itself still answers 200 so the dashboard can display the state.
func (h *healthHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	deviceStatus := "running"
	if err := h.reader.Health(r.Context()); err != nil {
		deviceStatus = "not-running"
	}

	response.Success(w, map[string]string{
		"status": "running",
		"device": deviceStatus,
		"mode":   h.mode,
	})
}
