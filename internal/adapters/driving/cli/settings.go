package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage gateway settings",
	Long: `View, validate and initialise the settings in config.toml.

Keys missing from the file fall back to their defaults.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check settings and the configured executables",
	RunE:  runSettingsValidate,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current settings to config.toml",
	Long: `Write every setting, including defaults, to config.toml so it can be
edited by hand.`,
	RunE: runSettingsInit,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	rootCmd.AddCommand(settingsCmd)
}

func settingsService() (*domain.GatewaySettings, error) {
	if services == nil || services.Settings == nil {
		return nil, errors.New("settings service not configured")
	}
	settings, err := services.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	settings, err := settingsService()
	if err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Executable]")
	cmd.Printf("  Path: %s\n", settings.Executable.Path)
	cmd.Printf("  Working directory: %s\n", settings.Executable.WorkDir)
	cmd.Println()

	cmd.Println("[Detailed Health]")
	if settings.DetailedHealth.Enabled {
		cmd.Printf("  Enabled: yes\n")
		cmd.Printf("  Path: %s\n", settings.DetailedHealth.Path)
		cmd.Printf("  Working directory: %s\n", settings.DetailedHealth.WorkDir)
		cmd.Printf("  Listen: %s\n", settings.DetailedHealth.Addr)
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Println()

	cmd.Println("[Invocation]")
	cmd.Printf("  Timeout: %s\n", durationOrOff(settings.Invocation.Timeout.String(), settings.Invocation.Timeout == 0))
	if settings.Invocation.RatePerSecond > 0 {
		cmd.Printf("  Rate: %g/s (burst %d)\n", settings.Invocation.RatePerSecond, settings.Invocation.Burst)
	} else {
		cmd.Printf("  Rate: unlimited\n")
	}
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Listen: %s\n", settings.API.Addr)
	cmd.Println()

	cmd.Println("[Stream]")
	cmd.Printf("  Heartbeat: %s\n", settings.Stream.HeartbeatInterval)
	cmd.Printf("  Drives: %s\n", settings.Stream.DrivesInterval)
	cmd.Printf("  Health: %s\n", settings.Stream.HealthInterval)
	cmd.Printf("  Queue size: %d\n", settings.Stream.QueueSize)
	cmd.Printf("  Write timeout: %s\n", settings.Stream.WriteTimeout)
	cmd.Println()

	cmd.Println("[Recommendation]")
	cmd.Printf("  Backend: %s\n", settings.Recommendation.Backend)
	cmd.Println()

	cmd.Println("[History]")
	if settings.History.Enabled {
		cmd.Printf("  Enabled: yes\n")
		cmd.Printf("  Keep: %d\n", settings.History.Keep)
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Println()

	cmd.Println("[Parser]")
	cmd.Printf("  List header: %q\n", settings.Parser.ListHeader)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'drivegate settings validate' after fixing config.toml.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	settings, err := settingsService()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if services.Watcher != nil {
		status := services.Watcher.Status()
		names := make([]string, 0, len(status))
		for name := range status {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cmd.Printf("  %s: %s\n", name, status[name])
		}
		if !services.Watcher.Healthy() {
			return errors.New("invalid configuration: executables are not runnable")
		}
	}

	cmd.Println("Configuration is valid.")
	return nil
}

func runSettingsInit(cmd *cobra.Command, _ []string) error {
	settings, err := settingsService()
	if err != nil {
		return err
	}
	if err := services.Settings.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Settings written.")
	return nil
}

func durationOrOff(d string, off bool) string {
	if off {
		return "off"
	}
	return d
}
