// Package devicereader provides the concrete device.Reader implementations:
// an HTTP client for the local read-only proxy and a mock generator used
// when no proxy is configured.
package devicereader

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hudoor/hudoor-backend-go/internal/domain/attendance"
	"github.com/hudoor/hudoor-backend-go/internal/domain/device"
)

// ProxyClient reads snapshots from the local proxy that speaks the actual
// terminal protocol. The proxy exposes GET /api/sync and GET /api/health.
type ProxyClient struct {
	baseURL       string
	client        *http.Client
	healthTimeout time.Duration
}

func NewProxyClient(baseURL string, fetchTimeout, healthTimeout time.Duration) *ProxyClient {
	return &ProxyClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		client:        &http.Client{Timeout: fetchTimeout},
		healthTimeout: healthTimeout,
	}
}

type syncPayload struct {
	Success   bool                        `json:"success"`
	Error     string                      `json:"error,omitempty"`
	Employees []attendance.EmployeeRecord `json:"employees"`
	Records   []attendance.EventRecord    `json:"records"`
	Timestamp string                      `json:"timestamp"`
}

type healthPayload struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Mode    string `json:"mode"`
}

// Fetch retrieves and parses a full snapshot. Transport failures and
// whole-payload errors fail the fetch; individually malformed employee or
// event records are logged and dropped.
func (c *ProxyClient) Fetch(ctx context.Context) (device.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/sync", nil)
	if err != nil {
		return device.Snapshot{}, fmt.Errorf("build sync request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return device.Snapshot{}, fmt.Errorf("%w: %v", device.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	var payload syncPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return device.Snapshot{}, fmt.Errorf("%w: %v", device.ErrBadResponse, err)
	}

	if resp.StatusCode != http.StatusOK || !payload.Success {
		msg := payload.Error
		if msg == "" {
			msg = resp.Status
		}
		return device.Snapshot{}, fmt.Errorf("%w: %s", device.ErrSyncFailed, msg)
	}

	snapshot := device.Snapshot{FetchedAt: time.Now()}

	for _, rec := range payload.Employees {
		emp, err := attendance.ParseEmployee(rec)
		if err != nil {
			slog.Warn("dropping malformed employee record", "error", err)
			continue
		}
		snapshot.Employees = append(snapshot.Employees, emp)
	}

	for _, rec := range payload.Records {
		ev, err := attendance.ParseEvent(rec)
		if err != nil {
			slog.Warn("dropping malformed attendance record", "record_id", rec.ID, "error", err)
			continue
		}
		snapshot.Records = append(snapshot.Records, ev)
	}

	return snapshot, nil
}

// Health probes the proxy with its own short timeout. Any failure, timeout
// included, reports the source as not running.
func (c *ProxyClient) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", device.ErrNotRunning, err)
	}
	defer resp.Body.Close()

	var payload healthPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("%w: %v", device.ErrNotRunning, err)
	}
	if resp.StatusCode != http.StatusOK || !payload.Success {
		return device.ErrNotRunning
	}
	return nil
}
