// Package cli provides the cobra commands of the drivegate binary.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driving"
	"github.com/custodia-labs/drivegate/internal/logger"
)

// annotationNoServices marks commands that run without bootstrapping.
const annotationNoServices = "drivegate/no-services"

var version = "dev"

// Persistent flags.
var (
	configDir string
	verbose   bool
	logFormat string
	ephemeral bool
)

// Watcher reports and tracks executable availability.
type Watcher interface {
	Status() map[string]string
	Healthy() bool
	Run(ctx context.Context) error
}

// Services are the driving ports and settings the commands use.
type Services struct {
	Drives         driving.DriveService
	DetailedHealth driving.DetailedHealthService
	History        driving.HistoryService
	Streams        driving.StreamPublisher
	Settings       driving.SettingsService
	Watcher        Watcher

	// Gateway is the validated configuration the services were built from.
	Gateway domain.GatewaySettings

	// Close releases storage. May be nil.
	Close func() error
}

// Options are the flag values a Bootstrap receives.
type Options struct {
	ConfigDir string
	Ephemeral bool
}

// Bootstrap builds the services once flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var (
	bootstrap Bootstrap
	services  *Services
)

// SetBootstrap installs the function that wires services.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "drivegate",
	Short: "Gateway to the drive-management executable",
	Long: `drivegate exposes the drive-management executable over HTTP, websockets
and MCP. Every operation runs one module of the executable with a fixed
argument order and returns its JSON output unchanged.

Settings are read from config.toml in the config directory
(default ~/.drivegate).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.drivegate)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&logFormat, "log-format", logger.FormatConsole, "log format: console or json")
	flags.BoolVar(&ephemeral, "ephemeral", false, "keep invocation history in memory only")
}

// setup configures logging and builds services unless a test or an earlier
// command already did.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetFormat(logFormat)

	if cmd.Annotations[annotationNoServices] == "true" || services != nil || bootstrap == nil {
		return nil
	}

	s, err := bootstrap(Options{ConfigDir: configDir, Ephemeral: ephemeral})
	if err != nil {
		return fmt.Errorf("starting drivegate: %w", err)
	}
	services = s
	return nil
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	defer func() {
		if services != nil && services.Close != nil {
			if err := services.Close(); err != nil {
				logger.Warn("closing services: %v", err)
			}
		}
		logger.Sync() //nolint:errcheck
	}()
	return rootCmd.ExecuteContext(ctx)
}

// errNotConfigured is returned when a command runs without its service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}

func driveService() (driving.DriveService, error) {
	if services == nil || services.Drives == nil {
		return nil, errNotConfigured("drive")
	}
	return services.Drives, nil
}
