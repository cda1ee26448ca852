package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <capability> [values...]",
	Short: "Run a capability directly",
	Long: `Run one capability with positional values in the order the module
expects them. Values are validated exactly as they are for the HTTP API.

Capabilities and their values:
  detect
  scan <drive>
  repair <drive> <live|dry_run>
  clone <source> <destination> <live|dry_run>
  partition <drive> <size> <fat32|ntfs|ext4> <live|dry_run>
  recommendation <metrics JSON document>
  logs
  health <drive>

Examples:
  drivegate invoke scan sda
  drivegate invoke repair sda dry_run`,
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: capabilityNames(),
	RunE:      runInvoke,
}

func init() {
	invokeCmd.Flags().Bool("json", false, "print compact JSON even on a terminal")
	rootCmd.AddCommand(invokeCmd)
}

func capabilityNames() []string {
	all := domain.AllCapabilities()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.String()
	}
	return names
}

func runInvoke(cmd *cobra.Command, args []string) error {
	drives, err := driveService()
	if err != nil {
		return err
	}
	forceJSON, _ := cmd.Flags().GetBool("json") //nolint:errcheck // flag is registered above

	capability := domain.Capability(strings.ToLower(args[0]))
	if !capability.IsValid() {
		return fmt.Errorf("unknown capability %q (want one of %s)", args[0], strings.Join(capabilityNames(), ", "))
	}

	result, err := drives.Invoke(cmd.Context(), capability, args[1:])
	if err != nil {
		return fmt.Errorf("%s: %w", capability, err)
	}
	return printResult(cmd, result, forceJSON)
}
