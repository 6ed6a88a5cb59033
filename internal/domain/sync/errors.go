package sync

import "errors"

// Sync domain errors
var (
	ErrSyncInProgress = errors.New("a sync run is already in progress")
)
