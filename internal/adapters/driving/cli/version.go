package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the drivegate version",
	Args:  cobra.NoArgs,
	// Printing the version must work without a config directory.
	Annotations: map[string]string{annotationNoServices: "true"},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("drivegate version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
