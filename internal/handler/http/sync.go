package http

import (
	"net/http"

	syncdomain "github.com/hudoor/hudoor-backend-go/internal/domain/sync"
	"github.com/hudoor/hudoor-backend-go/internal/handler/http/response"
)

type SyncHandler interface {
	Trigger(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

type syncHandlerImpl struct {
	syncService syncdomain.SyncService
}

func NewSyncHandler(syncService syncdomain.SyncService) SyncHandler {
	return &syncHandlerImpl{syncService: syncService}
}

// Trigger implements SyncHandler. The run executes synchronously; the
// caller gets the full result when it finishes.
func (h *syncHandlerImpl) Trigger(w http.ResponseWriter, r *http.Request) {
	result, err := h.syncService.Run(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sync completed", result)
}

// Status implements SyncHandler.
func (h *syncHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.syncService.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}
