package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
	"github.com/custodia-labs/drivegate/internal/logger"
)

// waitDelay bounds how long Run waits for output pipes after the child is
// killed or has exited, so a grandchild holding stdout cannot stall the caller.
const waitDelay = 2 * time.Second

// Ensure Invoker implements the interface.
var _ driven.ProcessInvoker = (*Invoker)(nil)

// Config describes one executable.
type Config struct {
	// Executable is the path to the program. Relative paths are resolved
	// against the current directory when the invoker is created.
	Executable string

	// WorkDir is the child's working directory.
	WorkDir string

	// Timeout kills a child that runs longer. Zero means no bound.
	Timeout time.Duration

	// Bare runs the executable with no flags or arguments.
	Bare bool

	// RatePerSecond limits invocation starts. Zero means unlimited.
	RatePerSecond float64

	// Burst is the limiter bucket size (minimum 1).
	Burst int
}

// Invoker runs an executable synchronously and captures its output.
// It holds no per-call state and is safe for concurrent use.
type Invoker struct {
	cfg     Config
	limiter *rate.Limiter
}

// New creates an invoker.
func New(cfg Config) *Invoker {
	if cfg.Executable != "" && !filepath.IsAbs(cfg.Executable) {
		if abs, err := filepath.Abs(cfg.Executable); err == nil {
			cfg.Executable = abs
		}
	}

	inv := &Invoker{cfg: cfg}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		inv.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return inv
}

// Executable returns the resolved executable path.
func (i *Invoker) Executable() string {
	return i.cfg.Executable
}

// Invoke runs the executable for req and classifies the result.
func (i *Invoker) Invoke(ctx context.Context, req domain.InvocationRequest) (*domain.ProcessOutput, error) {
	if i.limiter != nil {
		if err := i.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for invocation slot: %w", err)
		}
	}

	var argv []string
	if !i.cfg.Bare {
		argv = req.Argv()
	}

	execCtx := ctx
	if i.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, i.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(execCtx, i.cfg.Executable, argv...)
	cmd.Dir = i.cfg.WorkDir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Executing: %s %v (dir=%s, timeout=%s)", i.cfg.Executable, argv, i.cfg.WorkDir, i.cfg.Timeout)

	started := time.Now()
	runErr := cmd.Run()

	out := &domain.ProcessOutput{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
		Started:  started,
		Duration: time.Since(started),
	}
	if cmd.ProcessState != nil {
		out.ExitCode = cmd.ProcessState.ExitCode()
	}

	// The child exited cleanly but something it spawned kept stdout open.
	// What was written before the pipes were closed is the result.
	if errors.Is(runErr, exec.ErrWaitDelay) && out.ExitCode == 0 && execCtx.Err() == nil {
		logger.Warn("%s exited but a background process held its output open for %s; pipes closed",
			req.Module, waitDelay)
		runErr = nil
	}

	if err := i.classify(ctx, execCtx, req.Module, out, runErr); err != nil {
		logger.Debug("Invocation of %s failed after %s: %v", req.Module, out.Duration, err)
		return out, err
	}

	logger.Debug("Invocation of %s completed: exit=0, duration=%s, stdout=%d bytes",
		req.Module, out.Duration, len(out.Stdout))
	return out, nil
}

// classify applies the failure order: launch, timeout, exit code, empty output.
func (i *Invoker) classify(
	parent, execCtx context.Context,
	module domain.ModuleName,
	out *domain.ProcessOutput,
	runErr error,
) error {
	if runErr != nil {
		if parent.Err() != nil {
			return fmt.Errorf("invocation of %s cancelled: %w", module, parent.Err())
		}
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			return &domain.InvocationError{
				Kind:     domain.ErrInvocationTimeout,
				Module:   module,
				ExitCode: out.ExitCode,
				Stderr:   out.Stderr,
				Err:      fmt.Errorf("killed after %s", i.cfg.Timeout),
			}
		}

		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return &domain.InvocationError{
				Kind:     domain.ErrProcessExecution,
				Module:   module,
				ExitCode: exitErr.ExitCode(),
				Stderr:   out.Stderr,
			}
		}

		return &domain.InvocationError{
			Kind:     domain.ErrProcessLaunch,
			Module:   module,
			ExitCode: -1,
			Stderr:   out.Stderr,
			Err:      runErr,
		}
	}

	if strings.TrimSpace(out.Stdout) == "" {
		return &domain.InvocationError{
			Kind:   domain.ErrEmptyOutput,
			Module: module,
			Stderr: out.Stderr,
		}
	}

	return nil
}
