package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
	"github.com/custodia-labs/drivegate/internal/core/ports/driving"
	"github.com/custodia-labs/drivegate/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyExecutablePath     = "executable.path"
	keyExecutableWorkDir  = "executable.workdir"
	keyDetailedEnabled    = "detailed_health.enabled"
	keyDetailedPath       = "detailed_health.path"
	keyDetailedWorkDir    = "detailed_health.workdir"
	keyDetailedAddr       = "detailed_health.addr"
	keyInvocationTimeout  = "invocation.timeout"
	keyInvocationRate     = "invocation.rate_per_second"
	keyInvocationBurst    = "invocation.burst"
	keyAPIAddr            = "api.addr"
	keyStreamHeartbeat    = "stream.heartbeat_interval"
	keyStreamDrives       = "stream.drives_interval"
	keyStreamHealth       = "stream.health_interval"
	keyStreamQueueSize    = "stream.queue_size"
	keyStreamWriteTimeout = "stream.write_timeout"
	keyRecommendBackend   = "recommendation.backend"
	keyHistoryEnabled     = "history.enabled"
	keyHistoryKeep        = "history.keep"
	keyParserListHeader   = "parser.list_header"
)

// SettingsService maps the flat config store onto GatewaySettings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Missing or malformed keys fall back to
// their defaults.
func (s *SettingsService) Get() (*domain.GatewaySettings, error) {
	d := domain.DefaultGatewaySettings()

	settings := &domain.GatewaySettings{
		Executable: domain.ExecutableSettings{
			Path:    s.getString(keyExecutablePath, d.Executable.Path),
			WorkDir: s.getString(keyExecutableWorkDir, d.Executable.WorkDir),
		},
		DetailedHealth: domain.DetailedHealthSettings{
			Enabled: s.getBool(keyDetailedEnabled, d.DetailedHealth.Enabled),
			Path:    s.getString(keyDetailedPath, d.DetailedHealth.Path),
			WorkDir: s.getString(keyDetailedWorkDir, d.DetailedHealth.WorkDir),
			Addr:    s.getString(keyDetailedAddr, d.DetailedHealth.Addr),
		},
		Invocation: domain.InvocationSettings{
			Timeout:       s.getDuration(keyInvocationTimeout, d.Invocation.Timeout),
			RatePerSecond: s.getFloat(keyInvocationRate, d.Invocation.RatePerSecond),
			Burst:         s.getInt(keyInvocationBurst, d.Invocation.Burst),
		},
		API: domain.APISettings{
			Addr: s.getString(keyAPIAddr, d.API.Addr),
		},
		Stream: domain.StreamSettings{
			HeartbeatInterval: s.getDuration(keyStreamHeartbeat, d.Stream.HeartbeatInterval),
			DrivesInterval:    s.getDuration(keyStreamDrives, d.Stream.DrivesInterval),
			HealthInterval:    s.getDuration(keyStreamHealth, d.Stream.HealthInterval),
			QueueSize:         s.getInt(keyStreamQueueSize, d.Stream.QueueSize),
			WriteTimeout:      s.getDuration(keyStreamWriteTimeout, d.Stream.WriteTimeout),
		},
		Recommendation: domain.RecommendationSettings{
			Backend: s.getBackend(d.Recommendation.Backend),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, d.History.Enabled),
			Keep:    s.getInt(keyHistoryKeep, d.History.Keep),
		},
		Parser: domain.ParserSettings{
			ListHeader: s.getString(keyParserListHeader, d.Parser.ListHeader),
		},
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.GatewaySettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyExecutablePath, settings.Executable.Path},
		{keyExecutableWorkDir, settings.Executable.WorkDir},
		{keyDetailedEnabled, settings.DetailedHealth.Enabled},
		{keyDetailedPath, settings.DetailedHealth.Path},
		{keyDetailedWorkDir, settings.DetailedHealth.WorkDir},
		{keyDetailedAddr, settings.DetailedHealth.Addr},
		{keyInvocationTimeout, settings.Invocation.Timeout.String()},
		{keyInvocationRate, settings.Invocation.RatePerSecond},
		{keyInvocationBurst, settings.Invocation.Burst},
		{keyAPIAddr, settings.API.Addr},
		{keyStreamHeartbeat, settings.Stream.HeartbeatInterval.String()},
		{keyStreamDrives, settings.Stream.DrivesInterval.String()},
		{keyStreamHealth, settings.Stream.HealthInterval.String()},
		{keyStreamQueueSize, settings.Stream.QueueSize},
		{keyStreamWriteTimeout, settings.Stream.WriteTimeout.String()},
		{keyRecommendBackend, settings.Recommendation.Backend.String()},
		{keyHistoryEnabled, settings.History.Enabled},
		{keyHistoryKeep, settings.History.Keep},
		{keyParserListHeader, settings.Parser.ListHeader},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.GatewaySettings {
	return domain.DefaultGatewaySettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.GetFloat(key)
	if !ok {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	d, ok := s.configStore.GetDuration(key)
	if !ok {
		logger.Warn("ignoring %s: not a duration", key)
		return defaultVal
	}
	return d
}

func (s *SettingsService) getBackend(defaultVal domain.RecommendationBackend) domain.RecommendationBackend {
	val := s.configStore.GetString(keyRecommendBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.RecommendationBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
