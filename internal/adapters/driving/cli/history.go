package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent module invocations",
	Long: `Show the most recent module invocations, newest first, including
failures with their error.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of invocations to show (0 = service default)")
	historyCmd.Flags().Bool("json", false, "print JSON even on a terminal")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if services == nil || services.History == nil {
		return errNotConfigured("history")
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("getting limit flag: %w", err)
	}
	if limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", limit)
	}
	forceJSON, _ := cmd.Flags().GetBool("json") //nolint:errcheck // flag is registered above

	records, err := services.History.Recent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("listing invocations: %w", err)
	}
	if wantJSON(cmd, forceJSON) {
		return printJSON(cmd, records, forceJSON)
	}
	if len(records) == 0 {
		cmd.Println("No invocations recorded.")
		return nil
	}
	cmd.Println(historyTable(records))
	return nil
}
