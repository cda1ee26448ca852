// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"time"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// DrivesLoaded carries the result of a detect invocation.
type DrivesLoaded struct {
	Drives []domain.DriveRecord
	At     time.Time
	Err    error
}

// HealthLoaded carries the health record of one drive, indented for display.
type HealthLoaded struct {
	Drive  string
	Record string
	Err    error
}

// PollDue is sent when the next automatic refresh should start.
type PollDue struct {
	// Seq identifies the poll chain so stale timers are ignored.
	Seq int
}
