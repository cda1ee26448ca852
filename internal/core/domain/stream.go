package domain

import "time"

// StreamKind identifies what a streaming session pushes.
type StreamKind string

// Stream kinds.
const (
	StreamHeartbeat StreamKind = "heartbeat"
	StreamDrives    StreamKind = "drives"
	StreamHealth    StreamKind = "health"
)

// HeartbeatMessage is the literal pushed by the heartbeat stream.
const HeartbeatMessage = "Heartbeat: update from backend"

// StreamSession is one connected client receiving periodic pushes.
// It is owned by a single publisher loop and is not safe for concurrent use.
type StreamSession struct {
	// ID identifies the connection.
	ID string

	// Kind is the stream variant.
	Kind StreamKind

	// Target is the drive name for health streams.
	Target string

	// Interval is the fixed delay between pushes.
	Interval time.Duration

	// OpenedAt is when the connection was accepted.
	OpenedAt time.Time

	// ClosedAt is zero while the session is open.
	ClosedAt time.Time

	// LastPayload is the most recent message pushed.
	LastPayload []byte

	// Pushes counts messages handed to the transport.
	Pushes int

	// Failures counts ticks that produced an inline error payload.
	Failures int
}

// NewStreamSession creates an open session.
func NewStreamSession(id string, kind StreamKind, target string, interval time.Duration) *StreamSession {
	return &StreamSession{
		ID:       id,
		Kind:     kind,
		Target:   target,
		Interval: interval,
		OpenedAt: time.Now(),
	}
}

// Open reports whether the session has not been closed.
func (s *StreamSession) Open() bool {
	return s.ClosedAt.IsZero()
}

// Close marks the session closed. Closing twice keeps the first time.
func (s *StreamSession) Close() {
	if s.ClosedAt.IsZero() {
		s.ClosedAt = time.Now()
	}
}

// StreamError is the inline payload substituted for a failed tick.
type StreamError struct {
	Error string `json:"error"`
}
