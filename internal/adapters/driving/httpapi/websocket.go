package httpapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driving"
	"github.com/custodia-labs/drivegate/internal/logger"
)

// ErrSinkClosed is returned by Send once the connection has gone away.
var ErrSinkClosed = errors.New("websocket closed")

// closeGrace bounds the close handshake write.
const closeGrace = time.Second

func (s *Server) handleHeartbeatStream(w http.ResponseWriter, r *http.Request) {
	s.serveStream(w, r, domain.StreamHeartbeat, "", s.stream.HeartbeatInterval, s.ports.Streams.Heartbeat())
}

func (s *Server) handleDrivesStream(w http.ResponseWriter, r *http.Request) {
	s.serveStream(w, r, domain.StreamDrives, "", s.stream.DrivesInterval, s.ports.Streams.Drives())
}

func (s *Server) handleHealthStream(w http.ResponseWriter, r *http.Request) {
	drive := r.PathValue("driveName")
	s.serveStream(w, r, domain.StreamHealth, drive, s.stream.HealthInterval, s.ports.Streams.Health(drive))
}

// serveStream upgrades the connection and runs one publisher session on it
// until the client disconnects or the server shuts down.
func (s *Server) serveStream(
	w http.ResponseWriter,
	r *http.Request,
	kind domain.StreamKind,
	target string,
	interval time.Duration,
	tick driving.TickFunc,
) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied with an HTTP error.
		logger.Debug("websocket upgrade failed: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sink := newSocketSink(conn, s.stream.QueueSize, s.stream.WriteTimeout)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		sink.readLoop(cancel)
	}()
	go func() {
		defer wg.Done()
		sink.writeLoop(ctx)
	}()

	session := domain.NewStreamSession(uuid.NewString(), kind, target, interval)
	if err := s.ports.Streams.Run(ctx, session, tick, sink); err != nil {
		logger.Debug("%v", err)
	}

	cancel()
	sink.close()
	wg.Wait()
}

// socketSink delivers stream messages to one websocket connection.
// Send never blocks on the network: messages go into a bounded queue and the
// oldest is dropped when the client cannot keep up.
type socketSink struct {
	conn         *websocket.Conn
	queue        chan []byte
	writeTimeout time.Duration
	done         chan struct{}

	mu      sync.Mutex
	err     error
	dropped int
}

// Ensure socketSink implements the interface.
var _ driving.StreamSink = (*socketSink)(nil)

func newSocketSink(conn *websocket.Conn, queueSize int, writeTimeout time.Duration) *socketSink {
	if queueSize < 1 {
		queueSize = 1
	}
	return &socketSink{
		conn:         conn,
		queue:        make(chan []byte, queueSize),
		writeTimeout: writeTimeout,
		done:         make(chan struct{}),
	}
}

// Send enqueues message. It fails once the writer has stopped.
// Only one goroutine may call Send.
func (s *socketSink) Send(_ context.Context, message []byte) error {
	select {
	case <-s.done:
		return s.failure()
	default:
	}

	for {
		select {
		case s.queue <- message:
			return nil
		default:
		}
		select {
		case <-s.queue:
			s.mu.Lock()
			s.dropped++
			s.mu.Unlock()
			logger.Debug("websocket queue full, dropped oldest message")
		default:
		}
	}
}

// Dropped returns how many queued messages were discarded.
func (s *socketSink) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

func (s *socketSink) failure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	return ErrSinkClosed
}

// writeLoop is the only writer of data frames.
func (s *socketSink) writeLoop(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-s.queue:
			if s.writeTimeout > 0 {
				s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)) //nolint:errcheck
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.mu.Lock()
				s.err = err
				s.mu.Unlock()
				return
			}
		}
	}
}

// readLoop discards client frames and cancels the session when the client
// goes away.
func (s *socketSink) readLoop(cancel context.CancelFunc) {
	defer cancel()
	s.conn.SetReadLimit(4096)
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// close sends a close frame and releases the connection, which also ends
// readLoop.
func (s *socketSink) close() {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGrace)) //nolint:errcheck
	s.conn.Close()
}
