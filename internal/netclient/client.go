// Package netclient connects to a spectator stream and forwards its frames
// to a bubbletea program.
package netclient

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"github.com/hersh/tetrigo/internal/protocol"
	"github.com/hersh/tetrigo/internal/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 16384
)

// ConnectedMsg is sent when the stream assigns this viewer its ID.
type ConnectedMsg struct {
	ViewerID string
}

// FrameMsg carries one frame from the stream.
type FrameMsg struct {
	Frame session.Frame
}

// DisconnectedMsg is sent when the websocket connection is lost.
type DisconnectedMsg struct {
	Err error
}

// Sender is the part of *tea.Program the client needs.
type Sender interface {
	Send(tea.Msg)
}

// Client is a read-only connection to a spectator stream.
type Client struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	program Sender
	logger  *slog.Logger
	done    chan struct{}
	closed  bool
}

// New creates a Client connected to the given stream URL.
func New(streamURL string, logger *slog.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(streamURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", streamURL, err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		conn:   conn,
		logger: logger,
		done:   make(chan struct{}),
	}, nil
}

// SetProgram sets the receiver of the client's messages.
func (c *Client) SetProgram(p Sender) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.program = p
}

// Start launches the read and ping pumps.
func (c *Client) Start() {
	go c.pingPump()
	go c.readPump()
}

// Close shuts down the connection. It is safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
}

func (c *Client) send(msg tea.Msg) {
	c.mu.Lock()
	p := c.program
	c.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// readPump decodes stream messages and forwards them to the program.
func (c *Client) readPump() {
	var readErr error
	defer func() {
		c.send(DisconnectedMsg{Err: readErr})
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	c.conn.SetPingHandler(func(data string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return c.conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("stream read", slog.Any("error", err))
				readErr = err
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var env protocol.RawEnvelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.logger.Warn("stream unmarshal", slog.Any("error", err))
			continue
		}

		switch env.Type {
		case protocol.MsgWelcome:
			var payload protocol.WelcomePayload
			if json.Unmarshal(env.Payload, &payload) == nil {
				c.send(ConnectedMsg{ViewerID: payload.ViewerID})
			}
		case protocol.MsgFrame:
			f, err := protocol.DecodeFrame(message)
			if err != nil {
				c.logger.Warn("stream frame", slog.Any("error", err))
				continue
			}
			c.send(FrameMsg{Frame: f})
		default:
			c.logger.Debug("unknown message type", slog.String("type", string(env.Type)))
		}
	}
}

// pingPump keeps the connection alive until Close.
func (c *Client) pingPump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			if c.closed {
				c.mu.Unlock()
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.mu.Unlock()
			if err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
