package devicereader

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hudoor/hudoor-backend-go/internal/domain/attendance"
	"github.com/hudoor/hudoor-backend-go/internal/domain/device"
)

// MockReader generates a plausible month of clock events for a small staff.
// It stands in for the real terminal protocol, which this system does not
// implement.
type MockReader struct {
	startYear int
	rng       *rand.Rand
}

func NewMockReader(startYear int, seed int64) *MockReader {
	return &MockReader{
		startYear: startYear,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

var mockEmployees = []attendance.Employee{
	{ID: "1", Name: "Ahmed Ali", Department: "Engineering", Position: "Engineer"},
	{ID: "2", Name: "Sara Mohammed", Department: "HR", Position: "HR Manager"},
	{ID: "3", Name: "Omar Hassan", Department: "Sales", Position: "Sales Rep"},
}

const mockDeviceID = "uFace800-Main"

func (m *MockReader) Fetch(ctx context.Context) (device.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return device.Snapshot{}, err
	}

	snapshot := device.Snapshot{
		Employees: append([]attendance.Employee(nil), mockEmployees...),
		FetchedAt: time.Now(),
	}

	base := time.Date(m.startYear, time.January, 1, 0, 0, 0, 0, time.Local)
	for _, emp := range mockEmployees {
		for day := 0; day < 30; day++ {
			// Roughly one missed day in ten.
			if m.rng.Float64() <= 0.1 {
				continue
			}
			date := base.AddDate(0, 0, day)

			checkIn := time.Date(date.Year(), date.Month(), date.Day(),
				7+m.rng.Intn(2), m.rng.Intn(60), 0, 0, time.Local)
			snapshot.Records = append(snapshot.Records, attendance.AttendanceEvent{
				ID:         fmt.Sprintf("REC-%s-%d-IN", emp.ID, day),
				EmployeeID: emp.ID,
				Timestamp:  checkIn,
				Type:       attendance.EventCheckIn,
				DeviceID:   mockDeviceID,
			})

			checkOut := time.Date(date.Year(), date.Month(), date.Day(),
				16+m.rng.Intn(2), m.rng.Intn(60), 0, 0, time.Local)
			snapshot.Records = append(snapshot.Records, attendance.AttendanceEvent{
				ID:         fmt.Sprintf("REC-%s-%d-OUT", emp.ID, day),
				EmployeeID: emp.ID,
				Timestamp:  checkOut,
				Type:       attendance.EventCheckOut,
				DeviceID:   mockDeviceID,
			})
		}
	}

	return snapshot, nil
}

// Health always succeeds: the mock has nothing to probe.
func (m *MockReader) Health(ctx context.Context) error {
	return ctx.Err()
}
