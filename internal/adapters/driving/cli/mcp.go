package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivegate/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose drive tools to AI assistants",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP tool server on its own",
	Long: `Run the Model Context Protocol server without the HTTP API.

Tools: detect_drives, scan_drive, drive_health, read_logs, repair_drive
(dry run unless dry_run is false) and recommend. Resources: drivegate://invocations
and drivegate://drives/{driveName}/health.

Without --addr the server speaks JSON-RPC over stdio, which is what
desktop assistants launch:

  {"mcpServers": {"drivegate": {"command": "drivegate", "args": ["mcp", "serve"]}}}

With --addr it serves the streamable HTTP transport instead. 'drivegate
serve' mounts the same transport at /mcp.`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().String("addr", "", "HTTP listen address, e.g. :8090 (empty = stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// newMCPServer builds the tool server over the bootstrapped services.
func newMCPServer() (*mcp.Server, error) {
	drives, err := driveService()
	if err != nil {
		return nil, err
	}
	return mcp.NewServer(&mcp.Ports{
		Drives:  drives,
		History: services.History,
	})
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}

	server, err := newMCPServer()
	if err != nil {
		return err
	}

	if addr == "" {
		return server.Run(cmd.Context())
	}
	// stdout stays clean for piping; the address goes to stderr.
	fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on %s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
