package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
	"github.com/custodia-labs/drivegate/internal/core/ports/driving"
)

// DefaultHistoryLimit is used when a caller asks for zero or fewer records.
const DefaultHistoryLimit = 50

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads recorded invocations.
type HistoryService struct {
	store driven.InvocationStore
}

// NewHistoryService creates a history service. A nil store yields an
// always-empty history.
func NewHistoryService(store driven.InvocationStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to limit records, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.InvocationRecord, error) {
	if s.store == nil {
		return []domain.InvocationRecord{}, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	records, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list invocations: %w", err)
	}
	return records, nil
}
