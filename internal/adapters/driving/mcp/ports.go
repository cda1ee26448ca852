package mcp

import (
	"github.com/custodia-labs/drivegate/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Drives runs the drive capabilities.
	Drives driving.DriveService

	// History reads recorded invocations. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Drives == nil {
		return ErrMissingDriveService
	}
	return nil
}
