package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a malformed request. It is raised before any
	// process is launched.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownCapability indicates a capability outside the closed set.
	ErrUnknownCapability = errors.New("unknown capability")

	// Invocation Errors.

	// ErrProcessLaunch indicates the executable is missing or not runnable.
	ErrProcessLaunch = errors.New("process launch failed")

	// ErrProcessExecution indicates the executable exited with a nonzero code.
	ErrProcessExecution = errors.New("process execution failed")

	// ErrEmptyOutput indicates a zero exit code with nothing on stdout.
	ErrEmptyOutput = errors.New("process produced no output")

	// ErrInvocationTimeout indicates the executable did not finish in time
	// and was killed.
	ErrInvocationTimeout = errors.New("process invocation timed out")

	// Parse Errors.

	// ErrOutputParse indicates a document-required parse found no JSON.
	ErrOutputParse = errors.New("output parse failed")

	// ErrNoMatch is returned by a parser strategy that does not apply to the
	// given output. It is not a failure; the next strategy is tried.
	ErrNoMatch = errors.New("no match")
)

// InvocationError describes a failed process invocation.
// Kind is one of the invocation sentinels above and is matched by errors.Is.
type InvocationError struct {
	Kind     error
	Module   ModuleName
	ExitCode int
	Stderr   string
	Err      error
}

// Error returns a human-readable message that includes stderr when present.
func (e *InvocationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Module != "" {
		fmt.Fprintf(&b, " (module %s)", e.Module)
	}
	if errors.Is(e.Kind, ErrProcessExecution) {
		fmt.Fprintf(&b, ": exit code %d", e.ExitCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		fmt.Fprintf(&b, ". STDERR: %s", stderr)
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *InvocationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ValidationError describes a rejected request field.
type ValidationError struct {
	Field  string
	Reason string
}

// Error returns the field and reason.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap ties every validation failure to ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// IsValidation reports whether err was raised before any invocation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrUnknownCapability)
}
