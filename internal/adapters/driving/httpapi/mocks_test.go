package httpapi

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// call records one drive service invocation.
type call struct {
	method string
	args   []any
}

// mockDriveService is a mock implementation of driving.DriveService.
type mockDriveService struct {
	mu      sync.Mutex
	calls   []call
	payload domain.Payload
	err     error
	rec     *domain.Recommendation
}

func newMockDrives(payload domain.Payload) *mockDriveService {
	return &mockDriveService{payload: payload}
}

func (m *mockDriveService) result(method string, args ...any) (*domain.InvocationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call{method: method, args: args})
	if m.err != nil {
		return nil, m.err
	}
	return &domain.InvocationResult{ID: "inv-1", Payload: m.payload}, nil
}

func (m *mockDriveService) Calls() []call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]call, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *mockDriveService) Invoke(_ context.Context, c domain.Capability, values []string) (*domain.InvocationResult, error) {
	return m.result("Invoke", c, values)
}

func (m *mockDriveService) Detect(_ context.Context) (*domain.InvocationResult, error) {
	return m.result("Detect")
}

func (m *mockDriveService) Scan(_ context.Context, driveName string) (*domain.InvocationResult, error) {
	return m.result("Scan", driveName)
}

func (m *mockDriveService) Repair(_ context.Context, driveName string, dryRun bool) (*domain.InvocationResult, error) {
	return m.result("Repair", driveName, dryRun)
}

func (m *mockDriveService) Clone(_ context.Context, req domain.CloneRequest) (*domain.InvocationResult, error) {
	return m.result("Clone", req)
}

func (m *mockDriveService) Partition(_ context.Context, req domain.PartitionRequest) (*domain.InvocationResult, error) {
	return m.result("Partition", req)
}

func (m *mockDriveService) Logs(_ context.Context) (*domain.InvocationResult, error) {
	return m.result("Logs")
}

func (m *mockDriveService) Health(_ context.Context, driveName string) (*domain.InvocationResult, error) {
	return m.result("Health", driveName)
}

func (m *mockDriveService) Recommend(_ context.Context, metrics domain.DriveRecord) (*domain.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call{method: "Recommend", args: []any{metrics}})
	if m.err != nil {
		return nil, m.err
	}
	return m.rec, nil
}

// mockHistory is a mock implementation of driving.HistoryService.
type mockHistory struct {
	records []domain.InvocationRecord
	limit   int
	err     error
}

func (m *mockHistory) Recent(_ context.Context, limit int) ([]domain.InvocationRecord, error) {
	m.limit = limit
	return m.records, m.err
}

// mockDetailedHealth is a mock implementation of driving.DetailedHealthService.
type mockDetailedHealth struct {
	doc string
	err error
}

func (m *mockDetailedHealth) DetailedHealth(_ context.Context) (*domain.InvocationResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.InvocationResult{Payload: domain.DocumentPayload(json.RawMessage(m.doc))}, nil
}

// mockStatus is a mock StatusReporter.
type mockStatus struct {
	status  map[string]string
	healthy bool
}

func (m *mockStatus) Status() map[string]string { return m.status }
func (m *mockStatus) Healthy() bool             { return m.healthy }

func drivesPayload() domain.Payload {
	return domain.ListPayload([]json.RawMessage{
		json.RawMessage(`{"driveName":"sda","overallHealth":95}`),
		json.RawMessage(`{"driveName":"sdb","overallHealth":70}`),
	})
}

// countingInvoker is a driven.ProcessInvoker that counts calls and prints
// an empty JSON object.
type countingInvoker struct {
	mu    sync.Mutex
	calls int
}

func (c *countingInvoker) Invoke(_ context.Context, _ domain.InvocationRequest) (*domain.ProcessOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return &domain.ProcessOutput{Stdout: "{}"}, nil
}

func (c *countingInvoker) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
