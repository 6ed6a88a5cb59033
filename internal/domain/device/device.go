package device

import (
	"context"
	"time"

	"github.com/hudoor/hudoor-backend-go/internal/domain/attendance"
)

// Snapshot is one full read of the terminal: every employee and every clock
// event the source delivered, already parsed.
type Snapshot struct {
	Employees []attendance.Employee
	Records   []attendance.AttendanceEvent
	FetchedAt time.Time
}

// Reader fetches data from the biometric terminal, or from whatever stands
// in for it (a local proxy, a file export, a mock generator). The reader is
// strictly read-only against the device.
type Reader interface {
	// Fetch returns a complete snapshot or fails as a whole. Individual
	// malformed records are dropped, not fatal.
	Fetch(ctx context.Context) (Snapshot, error)

	// Health probes the source. Any failure, including timeout, means the
	// source is not running.
	Health(ctx context.Context) error
}
