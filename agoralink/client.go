package agoralink

import (
	"context"
	"errors"
	"io"
	"net/url"
	"sync"

	"github.com/Aishwaryagunjal6/agoralink-sdk-go/agoralink/internal"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Client is the event bus adapter: a bidirectional channel of named
// events between this participant and the AgoraLink server.
type Client struct {
	cfg        Config
	logger     Logger
	conn       *internal.Conn
	rawConn    *websocket.Conn
	clientID   string
	writeCh    chan Inbound
	dispatcher Dispatcher

	mu        sync.Mutex
	connected bool
	cancel    context.CancelFunc
}

// NewClient constructs a client with the provided config.
// Use DefaultConfig() as a starting point and modify as needed.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:      cfg,
		logger:   noopLogger{},
		clientID: uuid.NewString(),
		writeCh:  make(chan Inbound, 16),
	}
}

// SetLogger overrides logger (optional).
func (c *Client) SetLogger(l Logger) {
	if l == nil {
		return
	}
	c.logger = l
}

// ClientID returns the id this connection announces in its hello frame.
func (c *Client) ClientID() string { return c.clientID }

// OnMessageReceived registers the callback for "message received" events.
func (c *Client) OnMessageReceived(fn func(Message)) { c.dispatcher.SetOnMessageReceived(fn) }

// OnUsersInRoom registers the callback for full presence snapshots.
func (c *Client) OnUsersInRoom(fn func([]User)) { c.dispatcher.SetOnUsersInRoom(fn) }

// OnUserJoined registers the callback for "user joined" events.
func (c *Client) OnUserJoined(fn func(User)) { c.dispatcher.SetOnUserJoined(fn) }

// OnUserLeft registers the callback for "user left" events.
func (c *Client) OnUserLeft(fn func(string)) { c.dispatcher.SetOnUserLeft(fn) }

// OnNotification registers the callback for "notification" events.
func (c *Client) OnNotification(fn func(Notification)) { c.dispatcher.SetOnNotification(fn) }

// OnUserTyping registers the callback for "user typing" events.
func (c *Client) OnUserTyping(fn func(TypingEvent)) { c.dispatcher.SetOnUserTyping(fn) }

// OnUserStopTyping registers the callback for "user stop typing" events.
func (c *Client) OnUserStopTyping(fn func(TypingEvent)) { c.dispatcher.SetOnUserStopTyping(fn) }

// OnError registers the callback for transport and decode errors.
func (c *Client) OnError(fn func(error)) { c.dispatcher.SetOnError(fn) }

// ResetHandlers drops all event callbacks, keeping the error callback.
func (c *Client) ResetHandlers() { c.dispatcher.Reset() }

// Connect dials the server, sends hello, and starts internal loops.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return NewError(ErrorConnection, "already connected")
	}
	c.mu.Unlock()

	if c.cfg.SocketURL == "" {
		return NewError(ErrorBadRequest, "empty socket URL")
	}
	u, err := url.Parse(c.cfg.SocketURL)
	if err != nil {
		return WrapError(ErrorBadRequest, "invalid socket URL", err)
	}

	dialCtx := ctx
	if c.cfg.HandshakeTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.cfg.HandshakeTimeout)
		defer cancel()
	}

	ws, _, err := websocket.Dial(dialCtx, u.String(), nil)
	if err != nil {
		return WrapError(ErrorConnection, "dial failed", err)
	}

	c.rawConn = ws
	c.conn = internal.NewConn(ws, c.cfg.ReadTimeout, c.cfg.WriteTimeout)

	hello := Inbound{
		Type: frameHello,
		Data: HelloPayload{
			Protocol: ProtocolVersion,
			Token:    c.cfg.Token,
			Username: c.cfg.Username,
			ClientID: c.clientID,
		},
	}
	if err := c.conn.Write(ctx, hello); err != nil {
		_ = c.conn.Close(websocket.StatusInternalError, "handshake error")
		return WrapError(ErrorConnection, "hello failed", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()

	go c.readLoop(runCtx)
	go c.writeLoop(runCtx)
	return nil
}

// Emit publishes a named event to the server. Delivery is best-effort:
// the frame is queued and written asynchronously.
func (c *Client) Emit(ctx context.Context, event string, data any) error {
	return c.send(ctx, Inbound{Type: frameEvent, Event: event, Data: data})
}

// Close shuts down the client and closes the websocket.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.connected = false
	c.mu.Unlock()
	if c.conn != nil {
		return c.conn.Close(websocket.StatusNormalClosure, "client close")
	}
	return nil
}

func (c *Client) send(ctx context.Context, in Inbound) error {
	c.mu.Lock()
	connected := c.connected
	c.mu.Unlock()
	if !connected {
		return NewError(ErrorNotConnected, "not connected")
	}

	select {
	case c.writeCh <- in:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) readLoop(ctx context.Context) {
	for {
		var out Outbound
		if err := c.conn.Read(ctx, &out); err != nil {
			if isExpectedDisconnect(ctx, err) {
				return
			}
			c.dispatcher.Dispatch(Outbound{Type: frameError, Error: &Error{Code: "read_error", Msg: err.Error()}})
			c.logger.Warn("read loop exit", map[string]any{"error": err.Error()})
			return
		}
		c.dispatcher.Dispatch(out)
	}
}

func (c *Client) writeLoop(ctx context.Context) {
	for {
		select {
		case in := <-c.writeCh:
			if err := c.conn.Write(ctx, in); err != nil {
				c.dispatcher.Dispatch(Outbound{Type: frameError, Error: &Error{Code: "write_error", Msg: err.Error()}})
				c.logger.Warn("write loop exit", map[string]any{"error": err.Error()})
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func isExpectedDisconnect(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if ctx != nil && ctx.Err() != nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	default:
		return false
	}
}
