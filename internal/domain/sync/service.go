package sync

import (
	"context"
)

// SyncService runs and reports on device-to-store sync runs.
type SyncService interface {
	// Run executes one full sync: fetch from the device, sync employees,
	// then sync attendance, then overwrite the sync metadata. Employees
	// always complete before attendance starts because attendance grouping
	// depends on the identifier-to-name mapping built during employee sync.
	// At most one run may be active at a time.
	Run(ctx context.Context) (RunResult, error)

	// Status reports whether a run is active, the last run's result and
	// the persisted last-sync metadata.
	Status(ctx context.Context) (Status, error)
}
