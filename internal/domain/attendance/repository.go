package attendance

import (
	"context"
)

// AttendanceRepository defines the document-store surface used by the sync
// service: employees/{employeeKey}, their attendance subtree and the
// sync-metadata singleton.
type AttendanceRepository interface {
	// UpsertEmployeeProfile writes a profile with merge semantics: the
	// original join date survives later syncs.
	UpsertEmployeeProfile(ctx context.Context, profile EmployeeProfile) error

	// ListEmployeeProfiles returns every synced profile.
	ListEmployeeProfiles(ctx context.Context) ([]EmployeeProfile, error)

	// RecordExists reports whether a record is already persisted under the
	// given dedup key.
	RecordExists(ctx context.Context, employeeKey, yearMonth, recordKey string) (bool, error)

	// CreateRecord persists an attendance record. Creating a key that
	// already exists is a no-op, so the check-then-write sequence stays
	// safe under concurrent writers.
	CreateRecord(ctx context.Context, record Record) error

	// ListRecords returns the records of one employee for one month.
	ListRecords(ctx context.Context, employeeKey, yearMonth string) ([]Record, error)

	// PutSyncMetadata overwrites the sync-metadata/last-sync singleton.
	PutSyncMetadata(ctx context.Context, meta SyncMetadata) error

	// GetSyncMetadata returns the last sync run's metadata, or nil when no
	// sync has completed yet.
	GetSyncMetadata(ctx context.Context) (*SyncMetadata, error)
}
