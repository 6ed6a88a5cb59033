package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/hudoor/hudoor-backend-go/internal/pkg/database"
)

// newTestDatabase connects to the test database and ensures the schema
// exists. Tests are skipped when TEST_DATABASE_URL is not set.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping repository tests")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(db.Close)

	ctx := context.Background()
	schema := []string{
		`CREATE TABLE IF NOT EXISTS employee_profiles (
			doc_key TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			device_user_id TEXT NOT NULL,
			department TEXT NOT NULL DEFAULT '',
			position TEXT NOT NULL DEFAULT '',
			join_date TIMESTAMPTZ NOT NULL,
			last_synced_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_employee_profiles_device_user_id
			ON employee_profiles (device_user_id)`,
		`CREATE TABLE IF NOT EXISTS attendance_records (
			employee_key TEXT NOT NULL,
			year_month TEXT NOT NULL,
			record_key TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			check_in TIMESTAMPTZ NOT NULL,
			check_out TIMESTAMPTZ,
			work_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			device_id TEXT NOT NULL DEFAULT '',
			synced_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (employee_key, year_month, record_key)
		)`,
		`CREATE TABLE IF NOT EXISTS sync_metadata (
			id TEXT PRIMARY KEY,
			timestamp TIMESTAMPTZ NOT NULL,
			records_count INT NOT NULL,
			year INT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			t.Fatalf("failed to create schema: %v", err)
		}
	}

	return db
}

func truncateTables(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()
	for _, table := range []string{"employee_profiles", "attendance_records", "sync_metadata"} {
		if _, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}
