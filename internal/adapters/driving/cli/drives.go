package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivegate/internal/adapters/driving/tui"
	"github.com/custodia-labs/drivegate/internal/core/domain"
)

var drivesCmd = &cobra.Command{
	Use:   "drives",
	Short: "List attached drives",
	Long: `Run the detect module and list the attached drives.

Prints a table on a terminal and the detect payload as JSON otherwise.`,
	Args: cobra.NoArgs,
	RunE: runDrives,
}

var healthCmd = &cobra.Command{
	Use:   "health <drive>",
	Short: "Show the health record of a drive",
	Args:  cobra.ExactArgs(1),
	RunE:  runHealth,
}

var detailedHealthCmd = &cobra.Command{
	Use:   "detailed-health",
	Short: "Run the detailed health monitor",
	Long: `Run the standalone detailed-health executable and print the single
document it reports.`,
	Args: cobra.NoArgs,
	RunE: runDetailedHealth,
}

func init() {
	drivesCmd.Flags().Bool("json", false, "print JSON even on a terminal")
	healthCmd.Flags().Bool("json", false, "print compact JSON even on a terminal")
	detailedHealthCmd.Flags().Bool("json", false, "print compact JSON even on a terminal")
	rootCmd.AddCommand(drivesCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(detailedHealthCmd)
}

func runDrives(cmd *cobra.Command, _ []string) error {
	drives, err := driveService()
	if err != nil {
		return err
	}
	forceJSON, _ := cmd.Flags().GetBool("json") //nolint:errcheck // flag is registered above

	result, err := drives.Detect(cmd.Context())
	if err != nil {
		return fmt.Errorf("detecting drives: %w", err)
	}
	if wantJSON(cmd, forceJSON) {
		return printResult(cmd, result, forceJSON)
	}

	records, err := tui.DecodeDrives(result.Payload)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		cmd.Println("No drives detected.")
		return nil
	}
	cmd.Println(drivesTable(records))
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	drives, err := driveService()
	if err != nil {
		return err
	}
	forceJSON, _ := cmd.Flags().GetBool("json") //nolint:errcheck // flag is registered above

	result, err := drives.Health(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("drive health: %w", err)
	}
	if wantJSON(cmd, forceJSON) || result.Payload.Kind() != domain.PayloadDocument {
		return printResult(cmd, result, forceJSON)
	}

	var record domain.DriveRecord
	if err := result.Payload.Decode(&record); err != nil || record.DriveName == "" {
		return printResult(cmd, result, forceJSON)
	}
	cmd.Println(drivesTable([]domain.DriveRecord{record}))
	return nil
}

func runDetailedHealth(cmd *cobra.Command, _ []string) error {
	if services == nil || services.DetailedHealth == nil {
		return errNotConfigured("detailed health")
	}
	forceJSON, _ := cmd.Flags().GetBool("json") //nolint:errcheck // flag is registered above

	result, err := services.DetailedHealth.DetailedHealth(cmd.Context())
	if err != nil {
		return fmt.Errorf("detailed health: %w", err)
	}
	return printResult(cmd, result, forceJSON)
}
