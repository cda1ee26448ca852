// Command drivegate is the HTTP, websocket and MCP gateway to the
// drive-management executable.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/drivegate/internal/adapters/driven/config/file"
	"github.com/custodia-labs/drivegate/internal/adapters/driven/process"
	"github.com/custodia-labs/drivegate/internal/adapters/driven/recommender/rules"
	"github.com/custodia-labs/drivegate/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/drivegate/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/drivegate/internal/adapters/driving/cli"
	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
	"github.com/custodia-labs/drivegate/internal/core/services"
	"github.com/custodia-labs/drivegate/internal/logger"
	"github.com/custodia-labs/drivegate/internal/normalisers"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Watcher target names, as reported by GET /status.
const (
	targetDriveManager   = "drive_manager"
	targetDetailedHealth = "detailed_health"
)

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap wires the driven adapters into the core services.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		logger.Warn("configuration: %v", err)
	}

	invoker := process.New(process.Config{
		Executable:    settings.Executable.Path,
		WorkDir:       settings.Executable.WorkDir,
		Timeout:       settings.Invocation.Timeout,
		RatePerSecond: settings.Invocation.RatePerSecond,
		Burst:         settings.Invocation.Burst,
	})

	history, closeHistory, err := openHistory(opts, settings.History)
	if err != nil {
		return nil, err
	}

	gatewayOpts := []services.GatewayOption{}
	if history != nil {
		gatewayOpts = append(gatewayOpts, services.WithHistory(history, settings.History.Keep))
	}
	if settings.Recommendation.Backend == domain.RecommendationBuiltin {
		gatewayOpts = append(gatewayOpts, services.WithRecommender(rules.New()))
	}

	registry := services.NewDefaultModuleRegistry()
	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("module registry: %w", err)
	}

	gateway := services.NewGateway(
		registry,
		invoker,
		normalisers.NewGatewayChain(settings.Parser.ListHeader),
		gatewayOpts...,
	)

	targets := map[string]string{targetDriveManager: settings.Executable.Path}
	s := &cli.Services{
		Drives:   gateway,
		History:  services.NewHistoryService(history),
		Streams:  services.NewPublisher(gateway),
		Settings: settingsService,
		Gateway:  *settings,
		Close:    closeHistory,
	}

	if settings.DetailedHealth.Enabled {
		detailed := process.New(process.Config{
			Executable: settings.DetailedHealth.Path,
			WorkDir:    settings.DetailedHealth.WorkDir,
			Timeout:    settings.Invocation.Timeout,
			Bare:       true,
		})
		s.DetailedHealth = services.NewDetailedHealthService(detailed, normalisers.NewDocumentChain())
		targets[targetDetailedHealth] = settings.DetailedHealth.Path
	}
	s.Watcher = process.NewWatcher(targets)

	return s, nil
}

// openHistory returns the invocation store selected by settings and flags.
// A nil store disables history.
func openHistory(opts cli.Options, cfg domain.HistorySettings) (driven.InvocationStore, func() error, error) {
	noop := func() error { return nil }

	switch {
	case !cfg.Enabled:
		return nil, noop, nil
	case opts.Ephemeral:
		return memory.NewInvocationStore(), noop, nil
	}

	dataDir := ""
	if opts.ConfigDir != "" {
		dataDir = filepath.Join(opts.ConfigDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history: %w", err)
	}
	logger.Debug("invocation history at %s", store.Path())
	return store.InvocationStore(), store.Close, nil
}
