package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hudoor/hudoor-backend-go/internal/domain/attendance"
	"github.com/hudoor/hudoor-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// attendanceRepository maps the store's document hierarchy
// (employees/{key}, employees/{key}/attendance/{yearMonth}/records/{recordKey},
// sync-metadata/last-sync) onto three relational tables.
type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// UpsertEmployeeProfile implements attendance.AttendanceRepository. Merge
// semantics: the first-seen join date is preserved across re-syncs.
func (r *attendanceRepository) UpsertEmployeeProfile(ctx context.Context, profile attendance.EmployeeProfile) error {
	query := `
		INSERT INTO employee_profiles (
			doc_key, full_name, device_user_id, department, position, join_date, last_synced_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (doc_key) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			device_user_id = EXCLUDED.device_user_id,
			department = EXCLUDED.department,
			position = EXCLUDED.position,
			last_synced_at = EXCLUDED.last_synced_at
	`

	_, err := r.db.Exec(ctx, query,
		profile.DocKey,
		profile.FullName,
		profile.DeviceUserID,
		profile.Department,
		profile.Position,
		profile.JoinDate,
		profile.LastSyncedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert employee profile: %w", err)
	}
	return nil
}

// ListEmployeeProfiles implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListEmployeeProfiles(ctx context.Context) ([]attendance.EmployeeProfile, error) {
	query := `
		SELECT doc_key, full_name, device_user_id, department, position, join_date, last_synced_at
		FROM employee_profiles
		ORDER BY full_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee profiles: %w", err)
	}
	defer rows.Close()

	var profiles []attendance.EmployeeProfile
	for rows.Next() {
		var p attendance.EmployeeProfile
		if err := rows.Scan(&p.DocKey, &p.FullName, &p.DeviceUserID, &p.Department, &p.Position, &p.JoinDate, &p.LastSyncedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// RecordExists implements attendance.AttendanceRepository.
func (r *attendanceRepository) RecordExists(ctx context.Context, employeeKey, yearMonth, recordKey string) (bool, error) {
	query := `
		SELECT 1
		FROM attendance_records
		WHERE employee_key = $1 AND year_month = $2 AND record_key = $3
	`

	var one int
	err := r.db.QueryRow(ctx, query, employeeKey, yearMonth, recordKey).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check record existence: %w", err)
	}
	return true, nil
}

// CreateRecord implements attendance.AttendanceRepository. The primary key
// makes the insert an atomic conditional write: a concurrent run that
// already persisted this key turns ours into a no-op instead of a duplicate.
func (r *attendanceRepository) CreateRecord(ctx context.Context, record attendance.Record) error {
	query := `
		INSERT INTO attendance_records (
			employee_key, year_month, record_key,
			date, check_in, check_out, work_hours, status, device_id, synced_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_key, year_month, record_key) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		record.EmployeeKey,
		record.YearMonth,
		record.RecordKey,
		record.Date,
		record.CheckIn,
		record.CheckOut,
		record.WorkHours,
		record.Status,
		record.DeviceID,
		record.SyncedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	return nil
}

// ListRecords implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListRecords(ctx context.Context, employeeKey, yearMonth string) ([]attendance.Record, error) {
	query := `
		SELECT employee_key, year_month, record_key,
			   date, check_in, check_out, work_hours, status, device_id, synced_at
		FROM attendance_records
		WHERE employee_key = $1 AND year_month = $2
		ORDER BY date DESC
	`

	rows, err := r.db.Query(ctx, query, employeeKey, yearMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.EmployeeKey, &rec.YearMonth, &rec.RecordKey,
			&rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.WorkHours, &rec.Status, &rec.DeviceID, &rec.SyncedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// PutSyncMetadata implements attendance.AttendanceRepository. The singleton
// row is overwritten on every run.
func (r *attendanceRepository) PutSyncMetadata(ctx context.Context, meta attendance.SyncMetadata) error {
	query := `
		INSERT INTO sync_metadata (id, timestamp, records_count, year)
		VALUES ('last-sync', $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			timestamp = EXCLUDED.timestamp,
			records_count = EXCLUDED.records_count,
			year = EXCLUDED.year
	`

	_, err := r.db.Exec(ctx, query, meta.Timestamp, meta.RecordsCount, meta.Year)
	if err != nil {
		return fmt.Errorf("failed to put sync metadata: %w", err)
	}
	return nil
}

// GetSyncMetadata implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetSyncMetadata(ctx context.Context) (*attendance.SyncMetadata, error) {
	query := `
		SELECT timestamp, records_count, year
		FROM sync_metadata
		WHERE id = 'last-sync'
	`

	var meta attendance.SyncMetadata
	err := r.db.QueryRow(ctx, query).Scan(&meta.Timestamp, &meta.RecordsCount, &meta.Year)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sync metadata: %w", err)
	}
	return &meta, nil
}
