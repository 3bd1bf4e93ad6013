// ABOUTME: WebSocket transport for Hubline hub connections
// ABOUTME: Handles dialing, serialized writes, and the inbound read loop
package transport

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Config holds transport configuration
type Config struct {
	// Addr is the hub address (host:port).
	Addr string

	// Path is the WebSocket endpoint path. Defaults to /api/websocket.
	Path string

	// Logger receives read-loop diagnostics. Defaults to a no-op logger.
	Logger zerolog.Logger
}

// WebSocket is a hub connection over a single WebSocket. Inbound text
// frames are delivered to the registered handler from one goroutine,
// in arrival order.
type WebSocket struct {
	conn *websocket.Conn
	log  zerolog.Logger

	writeMu sync.Mutex

	handlerMu sync.RWMutex
	handler   func(data []byte)

	closeOnce sync.Once
	closed    chan struct{}
}

// Dial connects to the hub at addr and starts the read loop.
func Dial(ctx context.Context, config Config) (*WebSocket, error) {
	if config.Path == "" {
		config.Path = "/api/websocket"
	}

	u := url.URL{Scheme: "ws", Host: config.Addr, Path: config.Path}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.String(), err)
	}

	t := &WebSocket{
		conn:   conn,
		log:    config.Logger,
		closed: make(chan struct{}),
	}
	go t.readLoop()
	return t, nil
}

// SetInboundHandler registers the callback for inbound text frames.
// Frames arriving before a handler is registered are dropped.
func (t *WebSocket) SetInboundHandler(handler func(data []byte)) {
	t.handlerMu.Lock()
	t.handler = handler
	t.handlerMu.Unlock()
}

// Send writes one text frame. Writes are serialized: the websocket
// connection allows only one concurrent writer.
func (t *WebSocket) Send(ctx context.Context, data []byte) error {
	select {
	case <-t.closed:
		return fmt.Errorf("send: connection closed")
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		_ = t.conn.SetWriteDeadline(deadline)
	} else {
		_ = t.conn.SetWriteDeadline(time.Time{})
	}
	if err := t.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Disconnect closes the connection and stops the read loop. Safe to
// call more than once.
func (t *WebSocket) Disconnect() error {
	t.closeOnce.Do(func() {
		close(t.closed)
		if err := t.conn.Close(); err != nil {
			t.log.Debug().Err(err).Msg("close connection")
		}
	})
	return nil
}

// readLoop reads frames until the connection drops and feeds them to
// the handler one at a time.
func (t *WebSocket) readLoop() {
	defer func() { _ = t.Disconnect() }()

	for {
		messageType, data, err := t.conn.ReadMessage()
		if err != nil {
			select {
			case <-t.closed:
			default:
				t.log.Warn().Err(err).Msg("read error")
			}
			return
		}

		if messageType != websocket.TextMessage {
			t.log.Debug().Int("message_type", messageType).Msg("ignoring non-text frame")
			continue
		}

		t.handlerMu.RLock()
		handler := t.handler
		t.handlerMu.RUnlock()

		if handler == nil {
			t.log.Debug().Msg("dropping frame: no inbound handler registered")
			continue
		}
		handler(data)
	}
}
