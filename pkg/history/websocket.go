package history

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/strada-dev/strada/pkg/reactive"
)

// wsInbound is a location report from the browser client (initial load,
// back/forward traversal).
type wsInbound struct {
	Path  string `json:"path"`
	State any    `json:"state,omitempty"`
}

// wsOutbound is a committed change pushed to the browser client.
type wsOutbound struct {
	Op     string `json:"op"` // "push", "replace", or "go"
	Path   string `json:"path,omitempty"`
	State  any    `json:"state,omitempty"`
	Scroll bool   `json:"scroll,omitempty"`
	Delta  int    `json:"delta,omitempty"`
}

// WebSocketSource drives a browser's history over a WebSocket connection.
// The client reports location changes (popstate, initial load); the engine
// pushes committed changes back as push/replace operations. Relative
// traversal is forwarded to the client's history.
type WebSocketSource struct {
	conn   *websocket.Conn
	logger *slog.Logger

	// writeMu serializes writes; the connection allows one writer.
	writeMu sync.Mutex

	current *reactive.Signal[LocationChange]
}

// NewWebSocketSource wraps an established connection. initialPath seeds the
// reactive location until the client reports one. logger may be nil.
func NewWebSocketSource(conn *websocket.Conn, initialPath string, logger *slog.Logger) *WebSocketSource {
	if logger == nil {
		logger = slog.Default()
	}
	if initialPath == "" {
		initialPath = "/"
	}
	return &WebSocketSource{
		conn:    conn,
		logger:  logger,
		current: reactive.NewSignal(LocationChange{Value: initialPath}),
	}
}

// Location returns the client's current location. Reactive read.
func (s *WebSocketSource) Location() LocationChange {
	return s.current.Get()
}

// SetLocation pushes a committed change to the client.
func (s *WebSocketSource) SetLocation(change LocationChange) {
	op := "push"
	if change.Replace {
		op = "replace"
	}
	s.write(wsOutbound{
		Op:     op,
		Path:   change.Value,
		State:  change.State,
		Scroll: change.Scroll,
	})
}

// Go forwards relative traversal to the client's history.
// Implements the Goer capability.
func (s *WebSocketSource) Go(delta int) {
	s.write(wsOutbound{Op: "go", Delta: delta})
}

// Run reads client location reports until the context is canceled or the
// connection fails. Call it from the goroutine that owns the engine, or
// marshal updates onto it: the signal write triggers reconciliation.
func (s *WebSocketSource) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var msg wsInbound
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		if msg.Path == "" {
			continue
		}
		s.current.Set(LocationChange{Value: msg.Path, State: msg.State})
	}
}

func (s *WebSocketSource) write(msg wsOutbound) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Warn("history write failed", "op", msg.Op, "err", err)
	}
}

var _ Source = (*WebSocketSource)(nil)
var _ Goer = (*WebSocketSource)(nil)
