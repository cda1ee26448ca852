package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
	"github.com/custodia-labs/drivegate/internal/core/ports/driving"
)

// Ensure DetailedHealthService implements the interface.
var _ driving.DetailedHealthService = (*DetailedHealthService)(nil)

// DetailedHealthService runs the standalone detailed-health executable.
// The invoker is expected to run it without flags or arguments and the
// normaliser to require a single document.
type DetailedHealthService struct {
	invoker    driven.ProcessInvoker
	normaliser driven.OutputNormaliser
}

// NewDetailedHealthService creates the service.
func NewDetailedHealthService(invoker driven.ProcessInvoker, normaliser driven.OutputNormaliser) *DetailedHealthService {
	return &DetailedHealthService{invoker: invoker, normaliser: normaliser}
}

// DetailedHealth returns the document reported by the executable.
func (s *DetailedHealthService) DetailedHealth(ctx context.Context) (*domain.InvocationResult, error) {
	req := domain.InvocationRequest{Capability: domain.CapabilityHealth, Module: domain.ModuleHealth}

	out, err := s.invoker.Invoke(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("detailed health: %w", err)
	}

	outcome, err := s.normaliser.Normalise(out.Stdout)
	if err != nil {
		return nil, fmt.Errorf("detailed health: %w", err)
	}
	if outcome.Payload.Kind() != domain.PayloadDocument {
		return nil, fmt.Errorf("detailed health: %w: no JSON document in output", domain.ErrOutputParse)
	}

	return &domain.InvocationResult{
		ID:        uuid.NewString(),
		Request:   req,
		ExitCode:  out.ExitCode,
		Stdout:    out.Stdout,
		Stderr:    out.Stderr,
		Payload:   outcome.Payload,
		ParseMode: outcome.Mode,
		StartedAt: out.Started,
		Duration:  out.Duration,
	}, nil
}
