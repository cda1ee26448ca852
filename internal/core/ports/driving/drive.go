package driving

import (
	"context"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// DriveService exposes one operation per capability. Every method validates
// its input before any process is launched; validation failures wrap
// domain.ErrInvalidInput.
type DriveService interface {
	// Invoke runs a capability with positional values in registry order.
	// It serves operators who address modules directly.
	Invoke(ctx context.Context, capability domain.Capability, values []string) (*domain.InvocationResult, error)

	// Detect lists the attached drives.
	Detect(ctx context.Context) (*domain.InvocationResult, error)

	// Scan scans one drive.
	Scan(ctx context.Context, driveName string) (*domain.InvocationResult, error)

	// Repair repairs one drive, simulated when dryRun is set.
	Repair(ctx context.Context, driveName string, dryRun bool) (*domain.InvocationResult, error)

	// Clone copies source onto destination.
	Clone(ctx context.Context, req domain.CloneRequest) (*domain.InvocationResult, error)

	// Partition creates and formats a partition.
	Partition(ctx context.Context, req domain.PartitionRequest) (*domain.InvocationResult, error)

	// Logs returns the operation log kept by the executable.
	Logs(ctx context.Context) (*domain.InvocationResult, error)

	// Health returns the health record of one drive.
	Health(ctx context.Context, driveName string) (*domain.InvocationResult, error)

	// Recommend evaluates the recommendation contract for one drive.
	Recommend(ctx context.Context, metrics domain.DriveRecord) (*domain.Recommendation, error)
}

// DetailedHealthService runs the standalone detailed-health executable.
type DetailedHealthService interface {
	// DetailedHealth returns the single document the executable reports.
	// A missing or unparseable document is an error, never an empty result.
	DetailedHealth(ctx context.Context) (*domain.InvocationResult, error)
}

// HistoryService reads invocation history.
type HistoryService interface {
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.InvocationRecord, error)
}
