package domain

import (
	"errors"
	"fmt"
	"time"
)

// RecommendationBackend selects who evaluates the recommendation contract.
type RecommendationBackend string

// Recommendation backends.
const (
	// RecommendationModule forwards to the executable's ai module.
	RecommendationModule RecommendationBackend = "module"

	// RecommendationBuiltin evaluates the rules in process.
	RecommendationBuiltin RecommendationBackend = "builtin"
)

// IsValid returns true if the backend is recognised.
func (b RecommendationBackend) IsValid() bool {
	return b == RecommendationModule || b == RecommendationBuiltin
}

// String returns the string representation.
func (b RecommendationBackend) String() string {
	return string(b)
}

// DefaultListHeader starts the drive listing in free-text output.
const DefaultListHeader = "Detected Drives:"

// GatewaySettings is the explicit configuration injected at startup.
type GatewaySettings struct {
	Executable     ExecutableSettings
	DetailedHealth DetailedHealthSettings
	Invocation     InvocationSettings
	API            APISettings
	Stream         StreamSettings
	Recommendation RecommendationSettings
	History        HistorySettings
	Parser         ParserSettings
}

// ExecutableSettings locates the drive-management executable.
type ExecutableSettings struct {
	// Path to the executable.
	Path string

	// WorkDir is the working directory for every invocation.
	WorkDir string
}

// DetailedHealthSettings locates the detailed-health executable and the
// listener that serves it.
type DetailedHealthSettings struct {
	Enabled bool
	Path    string
	WorkDir string
	Addr    string
}

// InvocationSettings bounds each invocation.
type InvocationSettings struct {
	// Timeout kills a child that runs longer. Zero disables the bound.
	Timeout time.Duration

	// RatePerSecond limits invocation starts. Zero means unlimited.
	RatePerSecond float64

	// Burst is the limiter bucket size.
	Burst int
}

// APISettings configures the HTTP listener.
type APISettings struct {
	Addr string
}

// StreamSettings configures the push streams.
type StreamSettings struct {
	HeartbeatInterval time.Duration
	DrivesInterval    time.Duration
	HealthInterval    time.Duration

	// QueueSize bounds pending pushes per session; the oldest is dropped.
	QueueSize int

	// WriteTimeout bounds a single transport write.
	WriteTimeout time.Duration
}

// RecommendationSettings selects the recommendation backend.
type RecommendationSettings struct {
	Backend RecommendationBackend
}

// HistorySettings configures invocation history retention.
type HistorySettings struct {
	Enabled bool
	Keep    int
}

// ParserSettings configures the output normaliser.
type ParserSettings struct {
	ListHeader string
}

// DefaultGatewaySettings returns the defaults used when no value is configured.
func DefaultGatewaySettings() GatewaySettings {
	return GatewaySettings{
		Executable: ExecutableSettings{
			Path:    "backend/build/hard_drive_manager",
			WorkDir: ".",
		},
		DetailedHealth: DetailedHealthSettings{
			Enabled: true,
			Path:    "backend/build/health_monitor_full",
			WorkDir: "backend/build",
			Addr:    "127.0.0.1:8001",
		},
		Invocation: InvocationSettings{
			Timeout: 60 * time.Second,
			Burst:   1,
		},
		API: APISettings{
			Addr: ":8000",
		},
		Stream: StreamSettings{
			HeartbeatInterval: 5 * time.Second,
			DrivesInterval:    10 * time.Second,
			HealthInterval:    10 * time.Second,
			QueueSize:         8,
			WriteTimeout:      10 * time.Second,
		},
		Recommendation: RecommendationSettings{
			Backend: RecommendationModule,
		},
		History: HistorySettings{
			Enabled: true,
			Keep:    500,
		},
		Parser: ParserSettings{
			ListHeader: DefaultListHeader,
		},
	}
}

// Validate checks structural constraints. Filesystem checks on the
// executables are done by the process adapter.
func (s *GatewaySettings) Validate() error {
	var errs []error
	if s.Executable.Path == "" {
		errs = append(errs, errors.New("executable.path is required"))
	}
	if s.DetailedHealth.Enabled && s.DetailedHealth.Path == "" {
		errs = append(errs, errors.New("detailed_health.path is required when enabled"))
	}
	if s.Invocation.Timeout < 0 {
		errs = append(errs, errors.New("invocation.timeout must not be negative"))
	}
	if s.Invocation.RatePerSecond < 0 {
		errs = append(errs, errors.New("invocation.rate_per_second must not be negative"))
	}
	if s.Stream.HeartbeatInterval <= 0 || s.Stream.DrivesInterval <= 0 || s.Stream.HealthInterval <= 0 {
		errs = append(errs, errors.New("stream intervals must be positive"))
	}
	if s.Stream.QueueSize < 1 {
		errs = append(errs, errors.New("stream.queue_size must be at least 1"))
	}
	if !s.Recommendation.Backend.IsValid() {
		errs = append(errs, fmt.Errorf("recommendation.backend %q is not one of module, builtin", s.Recommendation.Backend))
	}
	if s.Parser.ListHeader == "" {
		errs = append(errs, errors.New("parser.list_header is required"))
	}
	return errors.Join(errs...)
}
