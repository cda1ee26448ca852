package driving

import (
	"context"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// StreamSink is the transport side of a streaming session, supplied by the
// adapter that accepted the connection.
type StreamSink interface {
	// Send pushes one message. An error means the transport is closed or
	// broken and the session must end.
	Send(ctx context.Context, message []byte) error
}

// TickFunc produces the message for one streaming tick.
type TickFunc func(ctx context.Context) ([]byte, error)

// StreamPublisher runs the polling loop of a streaming session.
type StreamPublisher interface {
	// Run pushes tick results to sink every session.Interval until ctx is
	// cancelled or the sink reports a transport error. Tick failures are
	// pushed inline and never end the loop.
	Run(ctx context.Context, session *domain.StreamSession, tick TickFunc, sink StreamSink) error

	// Heartbeat returns the tick of the heartbeat-only stream.
	Heartbeat() TickFunc

	// Drives returns the tick of the drive listing stream.
	Drives() TickFunc

	// Health returns the tick of the per-drive health stream.
	Health(driveName string) TickFunc
}
