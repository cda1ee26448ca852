package driven

import (
	"context"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// InvocationStore persists invocation history.
type InvocationStore interface {
	// Record stores one invocation outcome.
	Record(ctx context.Context, record *domain.InvocationRecord) error

	// List returns the most recent records, newest first.
	List(ctx context.Context, limit int) ([]domain.InvocationRecord, error)

	// Prune removes records beyond the most recent 'keep'.
	Prune(ctx context.Context, keep int) error
}
