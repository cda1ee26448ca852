package driven

import (
	"context"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// ProcessInvoker runs the managed executable to completion.
//
// Implementations must classify the outcome in this order:
//  1. launch failure: domain.ErrProcessLaunch
//  2. nonzero exit code: domain.ErrProcessExecution (regardless of stdout)
//  3. empty or whitespace-only stdout: domain.ErrEmptyOutput
//
// Failures are returned as *domain.InvocationError carrying stderr.
// The returned output is non-nil whenever the child ran.
type ProcessInvoker interface {
	Invoke(ctx context.Context, req domain.InvocationRequest) (*domain.ProcessOutput, error)
}
