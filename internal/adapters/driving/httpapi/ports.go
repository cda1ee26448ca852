package httpapi

import (
	"github.com/custodia-labs/drivegate/internal/core/ports/driving"
)

// StatusReporter reports whether the managed executables are runnable.
type StatusReporter interface {
	Status() map[string]string
	Healthy() bool
}

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	// Drives runs the capabilities.
	Drives driving.DriveService

	// Streams runs websocket sessions.
	Streams driving.StreamPublisher

	// History is optional; without it /invocations returns an empty list.
	History driving.HistoryService

	// Status is optional; without it /status reports no executables.
	Status StatusReporter
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Drives == nil {
		return ErrMissingDriveService
	}
	if p.Streams == nil {
		return ErrMissingStreamPublisher
	}
	return nil
}
