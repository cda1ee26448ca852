package domain

import (
	"time"
)

// Fixed flags that precede every module invocation.
const (
	FlagJSON     = "--json"
	FlagModuleEq = "--module="
)

// InvocationRequest is one call into the managed executable.
// Args are positional; their order is part of the module contract.
type InvocationRequest struct {
	// Capability is the gateway operation this request serves.
	Capability Capability

	// Module is the value of the --module flag.
	Module ModuleName

	// Args are the ordered positional arguments.
	Args []string
}

// Argv returns the full argument vector: --json --module=<name> [args...].
func (r InvocationRequest) Argv() []string {
	argv := make([]string, 0, len(r.Args)+2)
	argv = append(argv, FlagJSON, FlagModuleEq+r.Module.String())
	return append(argv, r.Args...)
}

// ProcessOutput is what the invoker captured from a completed child.
type ProcessOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Started  time.Time
	Duration time.Duration
}

// ParseMode tags which strategy produced a payload.
type ParseMode string

// Parse modes.
const (
	ParseModeStrict         ParseMode = "strict"
	ParseModeLineHeuristic  ParseMode = "line-heuristic"
	ParseModeBraceHeuristic ParseMode = "brace-heuristic"
	ParseModeNone           ParseMode = "none"
)

// String returns the string representation.
func (m ParseMode) String() string {
	return string(m)
}

// ParseOutcome is the result of running a parser over raw stdout.
type ParseOutcome struct {
	Payload Payload
	Mode    ParseMode

	// Skipped counts lines the line heuristic could not parse. It is
	// diagnostic only and never changes the accepted records.
	Skipped int
}

// InvocationResult is a successful invocation with its normalised payload.
// It is built once per invocation and never mutated.
type InvocationResult struct {
	ID        string
	Request   InvocationRequest
	ExitCode  int
	Stdout    string
	Stderr    string
	Payload   Payload
	ParseMode ParseMode
	Skipped   int
	StartedAt time.Time
	Duration  time.Duration
}

// Success reports whether the child exited cleanly.
func (r *InvocationResult) Success() bool {
	return r.ExitCode == 0
}

// InvocationRecord is the persisted history entry for one invocation,
// successful or not.
type InvocationRecord struct {
	ID         string        `json:"id"`
	Capability Capability    `json:"capability"`
	Module     ModuleName    `json:"module"`
	Args       []string      `json:"args"`
	ExitCode   int           `json:"exitCode"`
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
	ParseMode  ParseMode     `json:"parseMode,omitempty"`
	Skipped    int           `json:"skippedLines"`
	StartedAt  time.Time     `json:"startedAt"`
	Duration   time.Duration `json:"durationNs"`
}
