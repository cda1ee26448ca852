package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend an action for a drive",
	Long: `Evaluate the recommendation for one drive's metrics.

Health below 80 recommends replacement; otherwise a temperature above 50
recommends an immediate backup.

Example:
  drivegate recommend --drive sda --temperature 55 --read-errors 0 \
    --write-errors 0 --health 90 --smart OK`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	f := recommendCmd.Flags()
	f.String("drive", "", "drive name")
	f.Float64("temperature", 0, "temperature in degrees Celsius")
	f.Int("read-errors", 0, "read error count")
	f.Int("write-errors", 0, "write error count")
	f.Float64("health", 0, "overall health percentage")
	f.String("smart", "", "SMART status")
	f.Bool("json", false, "print JSON even on a terminal")
	for _, name := range []string{"drive", "temperature", "read-errors", "write-errors", "health", "smart"} {
		_ = recommendCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	drives, err := driveService()
	if err != nil {
		return err
	}

	metrics, forceJSON, err := metricsFromFlags(cmd)
	if err != nil {
		return fmt.Errorf("reading flags: %w", err)
	}

	rec, err := drives.Recommend(cmd.Context(), metrics)
	if err != nil {
		return fmt.Errorf("recommendation: %w", err)
	}
	if wantJSON(cmd, forceJSON) {
		return printJSON(cmd, rec, true)
	}
	cmd.Println(rec.Text)
	return nil
}

func metricsFromFlags(cmd *cobra.Command) (domain.DriveRecord, bool, error) {
	f := cmd.Flags()
	var (
		m         domain.DriveRecord
		forceJSON bool
		errs      [7]error
	)
	m.DriveName, errs[0] = f.GetString("drive")
	m.Temperature, errs[1] = f.GetFloat64("temperature")
	m.ReadErrorCount, errs[2] = f.GetInt("read-errors")
	m.WriteErrorCount, errs[3] = f.GetInt("write-errors")
	m.OverallHealth, errs[4] = f.GetFloat64("health")
	m.SmartStatus, errs[5] = f.GetString("smart")
	forceJSON, errs[6] = f.GetBool("json")
	return m, forceJSON, errors.Join(errs[:]...)
}
