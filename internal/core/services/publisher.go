package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driving"
	"github.com/custodia-labs/drivegate/internal/logger"
)

// Ensure Publisher implements the interface.
var _ driving.StreamPublisher = (*Publisher)(nil)

// Publisher runs one polling loop per streaming session.
// Sessions share nothing but the drive service.
type Publisher struct {
	drives driving.DriveService
}

// NewPublisher creates a publisher over drives.
func NewPublisher(drives driving.DriveService) *Publisher {
	return &Publisher{drives: drives}
}

// Run pushes tick results to sink until ctx is cancelled or sink fails.
// The first push happens immediately; each later push follows the previous
// one by session.Interval. Cancellation is not an error.
func (p *Publisher) Run(
	ctx context.Context,
	session *domain.StreamSession,
	tick driving.TickFunc,
	sink driving.StreamSink,
) error {
	defer session.Close()

	logger.Debug("stream %s (%s) opened, interval %s", session.ID, session.Kind, session.Interval)
	defer func() {
		logger.Debug("stream %s closed after %d pushes, %d failed ticks", session.ID, session.Pushes, session.Failures)
	}()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		message, err := tick(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			session.Failures++
			logger.Warn("stream %s tick failed: %v", session.ID, err)
			message = ErrorMessage(err)
		}

		if err := sink.Send(ctx, message); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("stream %s: %w", session.ID, err)
		}
		session.Pushes++
		session.LastPayload = message

		timer.Reset(session.Interval)
	}
}

// Heartbeat returns a tick that always yields the heartbeat literal.
func (p *Publisher) Heartbeat() driving.TickFunc {
	return func(context.Context) ([]byte, error) {
		return []byte(domain.HeartbeatMessage), nil
	}
}

// Drives returns a tick that pushes the current detection result.
func (p *Publisher) Drives() driving.TickFunc {
	return func(ctx context.Context) ([]byte, error) {
		result, err := p.drives.Detect(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result.Payload)
	}
}

// Health returns a tick that pushes the health record of one drive.
func (p *Publisher) Health(driveName string) driving.TickFunc {
	return func(ctx context.Context) ([]byte, error) {
		result, err := p.drives.Health(ctx, driveName)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result.Payload)
	}
}

// ErrorMessage encodes err as the inline error payload of a stream.
func ErrorMessage(err error) []byte {
	data, mErr := json.Marshal(domain.StreamError{Error: err.Error()})
	if mErr != nil {
		return []byte(`{"error":"internal error"}`)
	}
	return data
}
