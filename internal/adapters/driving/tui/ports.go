// Package tui provides the live drive watcher for drivegate.
// It implements a driving adapter over the same drive service the HTTP API uses.
package tui

import (
	"github.com/custodia-labs/drivegate/internal/core/ports/driving"
)

// Ports aggregates the driving ports the watcher needs.
type Ports struct {
	// Drives lists drives and reads per-drive health.
	Drives driving.DriveService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Drives == nil {
		return ErrMissingDriveService
	}
	return nil
}
