package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/drivegate/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/drivegate/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the drive gateway.

Serves the HTTP routes, the websocket streams and the MCP tools (at /mcp)
on the API address. When detailed health is enabled, a second listener
serves GET /detailed-health. The executable watcher runs alongside and
reports through GET /status.

Stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "API listen address (default: api.addr)")
	serveCmd.Flags().String("detailed-addr", "", "detailed-health listen address (default: detailed_health.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	drives, err := driveService()
	if err != nil {
		return err
	}
	if services.Streams == nil {
		return errNotConfigured("stream")
	}
	if err := services.Gateway.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if services.Watcher != nil && !services.Watcher.Healthy() {
		for name, status := range services.Watcher.Status() {
			if status != "ok" {
				logger.Warn("executable %s unavailable: %s", name, status)
			}
		}
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}
	if addr == "" {
		addr = services.Gateway.API.Addr
	}
	detailedAddr, err := cmd.Flags().GetString("detailed-addr")
	if err != nil {
		return fmt.Errorf("getting detailed-addr flag: %w", err)
	}
	if detailedAddr == "" {
		detailedAddr = services.Gateway.DetailedHealth.Addr
	}

	ports := &httpapi.Ports{
		Drives:  drives,
		Streams: services.Streams,
		History: services.History,
	}
	if services.Watcher != nil {
		ports.Status = services.Watcher
	}
	api, err := httpapi.NewServer(ports, services.Gateway.Stream)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	mcpServer, err := newMCPServer()
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpServer.Handler())
	mux.Handle("/", api.Handler())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("API listening on %s", addr)
		return httpapi.Serve(ctx, addr, mux)
	})

	if services.Gateway.DetailedHealth.Enabled && services.DetailedHealth != nil {
		detailed, err := httpapi.NewDetailedHealthHandler(services.DetailedHealth)
		if err != nil {
			return fmt.Errorf("creating detailed-health server: %w", err)
		}
		g.Go(func() error {
			logger.Info("detailed health listening on %s", detailedAddr)
			return httpapi.Serve(ctx, detailedAddr, detailed)
		})
	}

	if services.Watcher != nil {
		g.Go(func() error {
			return services.Watcher.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("drivegate stopped")
	return nil
}
