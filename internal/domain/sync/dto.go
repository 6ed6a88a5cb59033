package sync

import (
	"time"

	"github.com/hudoor/hudoor-backend-go/internal/domain/attendance"
)

// RunResult summarizes one sync run. Skips are already-persisted records;
// failures are records whose existence check or write failed and were left
// out of the synced count.
type RunResult struct {
	RunID          string    `json:"runId"`
	Employees      int       `json:"employees"`
	EventsFetched  int       `json:"eventsFetched"`
	RecordsSynced  int       `json:"recordsSynced"`
	RecordsSkipped int       `json:"recordsSkipped"`
	Failures       int       `json:"failures"`
	StartedAt      time.Time `json:"startedAt"`
	FinishedAt     time.Time `json:"finishedAt"`
}

type Status struct {
	Running  bool              `json:"running"`
	LastRun  *RunResult        `json:"lastRun,omitempty"`
	LastSync *LastSyncResponse `json:"lastSync,omitempty"`
}

type LastSyncResponse struct {
	Timestamp    time.Time `json:"timestamp"`
	RecordsCount int       `json:"recordsCount"`
	Year         int       `json:"year"`
}

func NewLastSyncResponse(meta *attendance.SyncMetadata) *LastSyncResponse {
	if meta == nil {
		return nil
	}
	return &LastSyncResponse{
		Timestamp:    meta.Timestamp,
		RecordsCount: meta.RecordsCount,
		Year:         meta.Year,
	}
}
