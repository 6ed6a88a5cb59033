package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hudoor/hudoor-backend-go/internal/domain/attendance"
	"github.com/hudoor/hudoor-backend-go/internal/domain/device"
	syncdomain "github.com/hudoor/hudoor-backend-go/internal/domain/sync"
	"github.com/hudoor/hudoor-backend-go/internal/pkg/docid"
)

// SnapshotSink receives the freshly fetched snapshot so the dashboard
// queries always see what the last successful sync saw.
type SnapshotSink interface {
	Publish(snapshot device.Snapshot)
}

type SyncServiceImpl struct {
	reader    device.Reader
	repo      attendance.AttendanceRepository
	sink      SnapshotSink
	opts      attendance.Options
	startYear int

	mu      sync.Mutex
	running bool
	lastRun *syncdomain.RunResult
}

func NewSyncService(reader device.Reader, repo attendance.AttendanceRepository, sink SnapshotSink, opts attendance.Options, startYear int) *SyncServiceImpl {
	return &SyncServiceImpl{
		reader:    reader,
		repo:      repo,
		sink:      sink,
		opts:      opts,
		startYear: startYear,
	}
}

// Run implements sync.SyncService.
func (s *SyncServiceImpl) Run(ctx context.Context) (syncdomain.RunResult, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return syncdomain.RunResult{}, syncdomain.ErrSyncInProgress
	}
	s.running = true
	s.mu.Unlock()

	// The running flag clears on success and failure alike; the dashboard's
	// syncing indicator depends on that.
	result := syncdomain.RunResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	defer func() {
		result.FinishedAt = time.Now()
		s.mu.Lock()
		s.running = false
		s.lastRun = &result
		s.mu.Unlock()
	}()

	log := slog.With("run_id", result.RunID)
	log.Info("sync run starting")

	snapshot, err := s.reader.Fetch(ctx)
	if err != nil {
		log.Error("device fetch failed", "error", err)
		return result, fmt.Errorf("fetch device snapshot: %w", err)
	}
	result.Employees = len(snapshot.Employees)
	result.EventsFetched = len(snapshot.Records)
	s.sink.Publish(snapshot)

	// Employees must finish before attendance starts: grouping depends on
	// the identifier-to-name mapping built here. The mapping lives for
	// exactly one run and is threaded through as a parameter.
	nameByDeviceID := s.syncEmployees(ctx, log, snapshot.Employees, &result)

	s.syncAttendance(ctx, log, snapshot.Records, nameByDeviceID, &result)

	meta := attendance.SyncMetadata{
		Timestamp:    time.Now(),
		RecordsCount: result.RecordsSynced,
		Year:         s.startYear,
	}
	if err := s.repo.PutSyncMetadata(ctx, meta); err != nil {
		log.Error("sync metadata write failed", "error", err)
		return result, fmt.Errorf("put sync metadata: %w", err)
	}

	log.Info("sync run finished",
		"employees", result.Employees,
		"synced", result.RecordsSynced,
		"skipped", result.RecordsSkipped,
		"failures", result.Failures,
	)
	return result, nil
}

func (s *SyncServiceImpl) syncEmployees(ctx context.Context, log *slog.Logger, employees []attendance.Employee, result *syncdomain.RunResult) map[string]string {
	nameByDeviceID := make(map[string]string, len(employees))
	now := time.Now()

	for _, emp := range employees {
		nameByDeviceID[emp.ID] = emp.Name

		profile := attendance.EmployeeProfile{
			DocKey:       docid.FromName(emp.Name),
			FullName:     emp.Name,
			DeviceUserID: emp.ID,
			Department:   orDefault(emp.Department, "Not Specified"),
			Position:     orDefault(emp.Position, "Staff"),
			JoinDate:     now,
			LastSyncedAt: now,
		}
		if err := s.repo.UpsertEmployeeProfile(ctx, profile); err != nil {
			// Attendance for this employee still syncs under the mapped
			// name; only the profile write is lost this run.
			log.Warn("employee profile sync failed", "employee_id", emp.ID, "error", err)
			result.Failures++
		}
	}

	return nameByDeviceID
}

func (s *SyncServiceImpl) syncAttendance(ctx context.Context, log *slog.Logger, events []attendance.AttendanceEvent, nameByDeviceID map[string]string, result *syncdomain.RunResult) {
	filtered := make([]attendance.AttendanceEvent, 0, len(events))
	for _, ev := range events {
		if ev.Timestamp.Year() >= s.startYear {
			filtered = append(filtered, ev)
		}
	}

	partitions, order := attendance.PartitionByEmployee(filtered)

	for _, employeeID := range order {
		name, ok := nameByDeviceID[employeeID]
		if !ok {
			name = fmt.Sprintf("Unknown_%s", employeeID)
		}
		employeeKey := docid.FromName(name)

		days := attendance.AggregateDaily(partitions[employeeID], attendance.Filter{}, s.opts)
		for _, day := range days {
			if day.CheckIn == nil {
				continue
			}
			s.syncDay(ctx, log, employeeKey, day, result)
		}
	}
}

// syncDay persists a single (employee, date) record. Failures here are
// isolated: they are logged, counted and excluded from the synced total,
// and the run moves on to the next record.
func (s *SyncServiceImpl) syncDay(ctx context.Context, log *slog.Logger, employeeKey string, day attendance.DailyAttendance, result *syncdomain.RunResult) {
	recordKey := fmt.Sprintf("%s_%d", day.Date, day.CheckIn.Timestamp.UnixMilli())
	yearMonth := attendance.MonthKey(day.Date)

	exists, err := s.repo.RecordExists(ctx, employeeKey, yearMonth, recordKey)
	if err != nil {
		log.Warn("record existence check failed", "employee_key", employeeKey, "record_key", recordKey, "error", err)
		result.Failures++
		return
	}
	if exists {
		log.Debug("skipping already-synced record", "employee_key", employeeKey, "date", day.Date)
		result.RecordsSkipped++
		return
	}

	var workHours float64
	var checkOut *time.Time
	if day.CheckOut != nil {
		ts := day.CheckOut.Timestamp
		checkOut = &ts
	}
	if day.HoursWorked != nil {
		workHours = *day.HoursWorked
		if workHours < 0 {
			// Checkout recorded before check-in. Persisted unclamped so
			// the anomaly stays visible in reports.
			log.Warn("negative work hours", "employee_key", employeeKey, "date", day.Date, "hours", workHours)
		}
	}

	record := attendance.Record{
		EmployeeKey: employeeKey,
		YearMonth:   yearMonth,
		RecordKey:   recordKey,
		Date:        day.CheckIn.Timestamp,
		CheckIn:     day.CheckIn.Timestamp,
		CheckOut:    checkOut,
		WorkHours:   workHours,
		Status:      day.Status,
		DeviceID:    day.CheckIn.DeviceID,
		SyncedAt:    time.Now(),
	}
	if err := s.repo.CreateRecord(ctx, record); err != nil {
		log.Warn("record write failed", "employee_key", employeeKey, "record_key", recordKey, "error", err)
		result.Failures++
		return
	}
	result.RecordsSynced++
}

// Status implements sync.SyncService.
func (s *SyncServiceImpl) Status(ctx context.Context) (syncdomain.Status, error) {
	s.mu.Lock()
	status := syncdomain.Status{
		Running: s.running,
		LastRun: s.lastRun,
	}
	s.mu.Unlock()

	meta, err := s.repo.GetSyncMetadata(ctx)
	if err != nil {
		return syncdomain.Status{}, fmt.Errorf("get sync metadata: %w", err)
	}
	status.LastSync = syncdomain.NewLastSyncResponse(meta)
	return status, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
