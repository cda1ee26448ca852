package mcp

import (
	"context"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// mockDriveService is a mock implementation of driving.DriveService.
type mockDriveService struct {
	result  *domain.InvocationResult
	rec     *domain.Recommendation
	err     error
	drive   string
	dryRun  bool
	metrics domain.DriveRecord
	logs    bool
}

func (m *mockDriveService) Invoke(_ context.Context, _ domain.Capability, _ []string) (*domain.InvocationResult, error) {
	return m.result, m.err
}

func (m *mockDriveService) Detect(_ context.Context) (*domain.InvocationResult, error) {
	return m.result, m.err
}

func (m *mockDriveService) Scan(_ context.Context, driveName string) (*domain.InvocationResult, error) {
	m.drive = driveName
	return m.result, m.err
}

func (m *mockDriveService) Repair(_ context.Context, driveName string, dryRun bool) (*domain.InvocationResult, error) {
	m.drive = driveName
	m.dryRun = dryRun
	return m.result, m.err
}

func (m *mockDriveService) Clone(_ context.Context, _ domain.CloneRequest) (*domain.InvocationResult, error) {
	return m.result, m.err
}

func (m *mockDriveService) Partition(_ context.Context, _ domain.PartitionRequest) (*domain.InvocationResult, error) {
	return m.result, m.err
}

func (m *mockDriveService) Logs(_ context.Context) (*domain.InvocationResult, error) {
	m.logs = true
	return m.result, m.err
}

func (m *mockDriveService) Health(_ context.Context, driveName string) (*domain.InvocationResult, error) {
	m.drive = driveName
	return m.result, m.err
}

func (m *mockDriveService) Recommend(_ context.Context, metrics domain.DriveRecord) (*domain.Recommendation, error) {
	m.metrics = metrics
	return m.rec, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records []domain.InvocationRecord
	err     error
}

func (m *mockHistoryService) Recent(_ context.Context, _ int) ([]domain.InvocationRecord, error) {
	return m.records, m.err
}
