package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivegate/internal/adapters/driving/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch drive health in the terminal",
	Long: `Launch a live terminal view of the attached drives.

The drive list refreshes on the drives stream interval. Drives below the
health threshold are shown in red, hot drives in yellow.

Controls:
  ↑/k, ↓/j - Select drive
  Enter    - Show health record
  r        - Refresh now
  Esc      - Close health record
  ?        - Toggle help
  q        - Quit`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("interval", 0, "refresh interval (default: stream.drives_interval)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in watch: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	drives, err := driveService()
	if err != nil {
		return err
	}

	interval, err := cmd.Flags().GetDuration("interval")
	if err != nil {
		return fmt.Errorf("getting interval flag: %w", err)
	}
	if interval <= 0 {
		interval = services.Gateway.Stream.DrivesInterval
	}

	app, err := tui.NewApp(&tui.Ports{Drives: drives}, interval)
	if err != nil {
		return fmt.Errorf("failed to create watch view: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch error: %w", err)
	}

	return nil
}
