package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
)

// Ensure InvocationStore implements the interface.
var _ driven.InvocationStore = (*InvocationStore)(nil)

// InvocationStore is an in-memory implementation of driven.InvocationStore.
// Records are kept in insertion order.
type InvocationStore struct {
	mu      sync.RWMutex
	records []domain.InvocationRecord
}

// NewInvocationStore creates a new in-memory invocation store.
func NewInvocationStore() *InvocationStore {
	return &InvocationStore{}
}

// Record stores a copy of record.
func (s *InvocationStore) Record(_ context.Context, record *domain.InvocationRecord) error {
	if record == nil || record.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *record
	copied.Args = append([]string(nil), record.Args...)
	s.records = append(s.records, copied)
	return nil
}

// List returns up to limit records, newest first. A limit of zero or less
// returns every record.
func (s *InvocationStore) List(_ context.Context, limit int) ([]domain.InvocationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]domain.InvocationRecord, 0, n)
	for i := len(s.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

// Prune keeps only the most recent keep records.
func (s *InvocationStore) Prune(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	if len(s.records) > keep {
		s.records = append([]domain.InvocationRecord(nil), s.records[len(s.records)-keep:]...)
	}
	return nil
}
