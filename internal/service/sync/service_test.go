package sync

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hudoor/hudoor-backend-go/internal/domain/attendance"
	"github.com/hudoor/hudoor-backend-go/internal/domain/device"
	syncdomain "github.com/hudoor/hudoor-backend-go/internal/domain/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository is an in-memory attendance store with injectable
// per-record failures.
type fakeRepository struct {
	profiles    map[string]attendance.EmployeeProfile
	records     map[string]attendance.Record
	metadata    *attendance.SyncMetadata
	failKeys    map[string]bool
	profileErrs map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		profiles:    make(map[string]attendance.EmployeeProfile),
		records:     make(map[string]attendance.Record),
		failKeys:    make(map[string]bool),
		profileErrs: make(map[string]bool),
	}
}

func recordPath(employeeKey, yearMonth, recordKey string) string {
	return fmt.Sprintf("employees/%s/attendance/%s/records/%s", employeeKey, yearMonth, recordKey)
}

func (f *fakeRepository) UpsertEmployeeProfile(ctx context.Context, profile attendance.EmployeeProfile) error {
	if f.profileErrs[profile.DeviceUserID] {
		return errors.New("profile write refused")
	}
	if existing, ok := f.profiles[profile.DocKey]; ok {
		profile.JoinDate = existing.JoinDate
	}
	f.profiles[profile.DocKey] = profile
	return nil
}

func (f *fakeRepository) ListEmployeeProfiles(ctx context.Context) ([]attendance.EmployeeProfile, error) {
	var profiles []attendance.EmployeeProfile
	for _, p := range f.profiles {
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (f *fakeRepository) RecordExists(ctx context.Context, employeeKey, yearMonth, recordKey string) (bool, error) {
	path := recordPath(employeeKey, yearMonth, recordKey)
	if f.failKeys[path] {
		return false, errors.New("store unavailable for this record")
	}
	_, ok := f.records[path]
	return ok, nil
}

func (f *fakeRepository) CreateRecord(ctx context.Context, record attendance.Record) error {
	path := recordPath(record.EmployeeKey, record.YearMonth, record.RecordKey)
	if f.failKeys[path] {
		return errors.New("store unavailable for this record")
	}
	if _, ok := f.records[path]; ok {
		return nil
	}
	f.records[path] = record
	return nil
}

func (f *fakeRepository) ListRecords(ctx context.Context, employeeKey, yearMonth string) ([]attendance.Record, error) {
	var records []attendance.Record
	for _, rec := range f.records {
		if rec.EmployeeKey == employeeKey && rec.YearMonth == yearMonth {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (f *fakeRepository) PutSyncMetadata(ctx context.Context, meta attendance.SyncMetadata) error {
	f.metadata = &meta
	return nil
}

func (f *fakeRepository) GetSyncMetadata(ctx context.Context) (*attendance.SyncMetadata, error) {
	return f.metadata, nil
}

type fakeReader struct {
	snapshot device.Snapshot
	err      error
}

func (f *fakeReader) Fetch(ctx context.Context) (device.Snapshot, error) {
	if f.err != nil {
		return device.Snapshot{}, f.err
	}
	return f.snapshot, nil
}

func (f *fakeReader) Health(ctx context.Context) error {
	return f.err
}

type fakeSink struct {
	published []device.Snapshot
}

func (f *fakeSink) Publish(snapshot device.Snapshot) {
	f.published = append(f.published, snapshot)
}

func ts(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func testSnapshot() device.Snapshot {
	return device.Snapshot{
		Employees: []attendance.Employee{
			{ID: "1", Name: "Ahmed Ali", Department: "Engineering", Position: "Engineer"},
			{ID: "2", Name: "Sara Mohammed", Department: "HR", Position: "HR Manager"},
		},
		Records: []attendance.AttendanceEvent{
			{ID: "a", EmployeeID: "1", Timestamp: ts("2026-01-05T08:15:00"), Type: attendance.EventCheckIn, DeviceID: "uFace800-Main"},
			{ID: "b", EmployeeID: "1", Timestamp: ts("2026-01-05T16:30:00"), Type: attendance.EventCheckOut, DeviceID: "uFace800-Main"},
			{ID: "c", EmployeeID: "2", Timestamp: ts("2026-01-05T07:45:00"), Type: attendance.EventCheckIn, DeviceID: "uFace800-Main"},
			// Pre-cutoff event, dropped by the year filter.
			{ID: "d", EmployeeID: "1", Timestamp: ts("2025-12-31T08:00:00"), Type: attendance.EventCheckIn, DeviceID: "uFace800-Main"},
		},
		FetchedAt: time.Now(),
	}
}

func newTestService(reader device.Reader, repo attendance.AttendanceRepository, sink SnapshotSink) *SyncServiceImpl {
	return NewSyncService(reader, repo, sink, attendance.DefaultOptions(), 2026)
}

func TestRun_SyncsRecordsAndMetadata(t *testing.T) {
	repo := newFakeRepository()
	sink := &fakeSink{}
	svc := newTestService(&fakeReader{snapshot: testSnapshot()}, repo, sink)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Employees)
	assert.Equal(t, 4, result.EventsFetched)
	assert.Equal(t, 2, result.RecordsSynced)
	assert.Equal(t, 0, result.RecordsSkipped)
	assert.Equal(t, 0, result.Failures)
	assert.NotEmpty(t, result.RunID)
	assert.Len(t, sink.published, 1)

	// Persisted record content for Ahmed's late day.
	key := fmt.Sprintf("2026-01-05_%d", ts("2026-01-05T08:15:00").UnixMilli())
	records, err := repo.ListRecords(context.Background(), "Ahmed_Ali", "2026-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, key, records[0].RecordKey)
	assert.Equal(t, attendance.StatusLate, records[0].Status)
	assert.Equal(t, 8.25, records[0].WorkHours)
	require.NotNil(t, records[0].CheckOut)

	// Sara has no check-out; her record persists with a nil check-out.
	records, err = repo.ListRecords(context.Background(), "Sara_Mohammed", "2026-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].CheckOut)
	assert.Equal(t, attendance.StatusPresent, records[0].Status)

	require.NotNil(t, repo.metadata)
	assert.Equal(t, 2, repo.metadata.RecordsCount)
	assert.Equal(t, 2026, repo.metadata.Year)
}

func TestRun_SecondRunIsDeduplicated(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(&fakeReader{snapshot: testSnapshot()}, repo, &fakeSink{})

	first, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.RecordsSynced)

	second, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.RecordsSynced)
	assert.Equal(t, 2, second.RecordsSkipped)

	// Same number of stored records as after a single run.
	assert.Len(t, repo.records, 2)
	// Metadata reflects only the second run's synced count.
	assert.Equal(t, 0, repo.metadata.RecordsCount)
}

func TestRun_PerRecordFailureDoesNotAbortRun(t *testing.T) {
	repo := newFakeRepository()
	key := fmt.Sprintf("2026-01-05_%d", ts("2026-01-05T08:15:00").UnixMilli())
	repo.failKeys[recordPath("Ahmed_Ali", "2026-01", key)] = true

	svc := newTestService(&fakeReader{snapshot: testSnapshot()}, repo, &fakeSink{})
	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.RecordsSynced)
	assert.Equal(t, 1, result.Failures)
	// The failed record is excluded from the metadata count.
	assert.Equal(t, 1, repo.metadata.RecordsCount)
}

func TestRun_ProfileFailureStillSyncsAttendance(t *testing.T) {
	repo := newFakeRepository()
	repo.profileErrs["1"] = true

	svc := newTestService(&fakeReader{snapshot: testSnapshot()}, repo, &fakeSink{})
	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failures)
	// The name mapping was still built, so Ahmed's attendance syncs under
	// his name, not the Unknown placeholder.
	records, _ := repo.ListRecords(context.Background(), "Ahmed_Ali", "2026-01")
	assert.Len(t, records, 1)
}

func TestRun_UnmappedEmployeeFallsBackToPlaceholder(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.Employees = snapshot.Employees[:1] // drop Sara's profile

	repo := newFakeRepository()
	svc := newTestService(&fakeReader{snapshot: snapshot}, repo, &fakeSink{})
	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	records, _ := repo.ListRecords(context.Background(), "Unknown_2", "2026-01")
	assert.Len(t, records, 1)
}

func TestRun_FetchFailurePropagates(t *testing.T) {
	repo := newFakeRepository()
	sink := &fakeSink{}
	svc := newTestService(&fakeReader{err: device.ErrUnreachable}, repo, sink)

	_, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, device.ErrUnreachable)
	// Nothing published, nothing persisted.
	assert.Empty(t, sink.published)
	assert.Nil(t, repo.metadata)

	// The running flag cleared on the failure path.
	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Running)
	require.NotNil(t, status.LastRun)
}

func TestRun_ConcurrentRunRejected(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(&fakeReader{snapshot: testSnapshot()}, repo, &fakeSink{})

	svc.mu.Lock()
	svc.running = true
	svc.mu.Unlock()

	_, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, syncdomain.ErrSyncInProgress)
}

func TestStatus_ReportsLastSyncMetadata(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(&fakeReader{snapshot: testSnapshot()}, repo, &fakeSink{})

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Nil(t, status.LastSync)

	_, err = svc.Run(context.Background())
	require.NoError(t, err)

	status, err = svc.Status(context.Background())
	require.NoError(t, err)
	require.NotNil(t, status.LastSync)
	assert.Equal(t, 2, status.LastSync.RecordsCount)
	require.NotNil(t, status.LastRun)
	assert.Equal(t, 2, status.LastRun.RecordsSynced)
}
