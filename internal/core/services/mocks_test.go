package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
)

// --- Mock implementations for service testing ---

// mockInvoker implements driven.ProcessInvoker for testing.
type mockInvoker struct {
	mu      sync.Mutex
	calls   []domain.InvocationRequest
	respond func(req domain.InvocationRequest) (*domain.ProcessOutput, error)
}

var _ driven.ProcessInvoker = (*mockInvoker)(nil)

// newMockInvoker returns an invoker that always prints stdout.
func newMockInvoker(stdout string) *mockInvoker {
	return &mockInvoker{
		respond: func(domain.InvocationRequest) (*domain.ProcessOutput, error) {
			return &domain.ProcessOutput{Stdout: stdout}, nil
		},
	}
}

// newFailingInvoker returns an invoker that always fails with err.
func newFailingInvoker(err error) *mockInvoker {
	return &mockInvoker{
		respond: func(domain.InvocationRequest) (*domain.ProcessOutput, error) {
			return &domain.ProcessOutput{ExitCode: 1, Stderr: "boom"}, err
		},
	}
}

func (m *mockInvoker) Invoke(_ context.Context, req domain.InvocationRequest) (*domain.ProcessOutput, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	return m.respond(req)
}

func (m *mockInvoker) Calls() []domain.InvocationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.InvocationRequest(nil), m.calls...)
}

// failingStore implements driven.InvocationStore and rejects every write.
type failingStore struct{}

var _ driven.InvocationStore = failingStore{}

func (failingStore) Record(context.Context, *domain.InvocationRecord) error {
	return errors.New("disk full")
}

func (failingStore) List(context.Context, int) ([]domain.InvocationRecord, error) {
	return nil, errors.New("disk full")
}

func (failingStore) Prune(context.Context, int) error {
	return errors.New("disk full")
}

// stubRecommender implements driven.Recommender with a fixed answer.
type stubRecommender struct {
	text string
}

func (s stubRecommender) Recommend(context.Context, domain.DriveRecord) (string, error) {
	return s.text, nil
}

// executionError builds the error the process adapter returns for a
// nonzero exit.
func executionError(module domain.ModuleName) error {
	return &domain.InvocationError{
		Kind:     domain.ErrProcessExecution,
		Module:   module,
		ExitCode: 1,
		Stderr:   "boom",
	}
}
