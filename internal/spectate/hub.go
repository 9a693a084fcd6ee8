// Package spectate streams session frames to read-only websocket viewers.
package spectate

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/hersh/tetrigo/internal/protocol"
	"github.com/hersh/tetrigo/internal/session"
)

const (
	DefaultInterval = 100 * time.Millisecond

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type viewer struct {
	id     string
	conn   *websocket.Conn
	sendCh chan []byte
}

// writePump sends messages from sendCh to the websocket and keeps the
// connection alive with pings. It returns when sendCh is closed.
func (v *viewer) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		v.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-v.sendCh:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				v.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := v.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards anything the viewer sends and returns once the
// connection is gone.
func (v *viewer) readPump() error {
	v.conn.SetReadLimit(maxMessageSize)
	v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		v.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			return err
		}
	}
}

// Hub is a session.Renderer that fans frames out to websocket viewers. Frames
// are coalesced and broadcast at most once per interval by Run.
type Hub struct {
	interval time.Duration
	logger   *slog.Logger

	mu      sync.RWMutex
	viewers map[string]*viewer
	pending *session.Frame
	latest  []byte
}

// NewHub creates a hub. A non-positive interval selects DefaultInterval.
func NewHub(interval time.Duration, logger *slog.Logger) *Hub {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Hub{
		interval: interval,
		logger:   logger,
		viewers:  make(map[string]*viewer),
	}
}

// Render records f as the frame to send on the next broadcast.
func (h *Hub) Render(f session.Frame) {
	h.mu.Lock()
	h.pending = &f
	h.mu.Unlock()
}

// Run broadcasts the most recent frame every interval until ctx is done,
// then disconnects every viewer.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.flush()
		}
	}
}

func (h *Hub) flush() {
	h.mu.Lock()
	f := h.pending
	h.pending = nil
	h.mu.Unlock()
	if f == nil {
		return
	}

	data, err := protocol.EncodeFrame(*f)
	if err != nil {
		h.logger.Error("encode frame", slog.Any("error", err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for _, v := range h.viewers {
		h.queue(v, data)
	}
}

// queue must be called with h.mu held.
func (h *Hub) queue(v *viewer, data []byte) {
	select {
	case v.sendCh <- data:
	default:
		h.logger.Debug("viewer too slow, dropping frame", slog.String("viewer", v.id))
	}
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// Handler serves the websocket endpoint on /ws and a health check on
// /health.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// ServeWS upgrades the request and streams frames until the viewer leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade", slog.Any("error", err))
		return
	}

	v := &viewer{
		id:     uuid.NewString(),
		conn:   conn,
		sendCh: make(chan []byte, sendBuffer),
	}
	welcome, err := json.Marshal(protocol.Envelope{
		Type:    protocol.MsgWelcome,
		Payload: protocol.WelcomePayload{ViewerID: v.id},
	})
	if err != nil {
		h.logger.Error("encode welcome", slog.Any("error", err))
		conn.Close()
		return
	}

	h.mu.Lock()
	h.viewers[v.id] = v
	h.queue(v, welcome)
	if h.latest != nil {
		h.queue(v, h.latest)
	}
	h.mu.Unlock()
	h.logger.Info("viewer connected", slog.String("viewer", v.id), slog.String("remote", r.RemoteAddr))

	go v.writePump()
	err = v.readPump()
	if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		h.logger.Warn("viewer read", slog.String("viewer", v.id), slog.Any("error", err))
	}

	h.remove(v.id)
	h.logger.Info("viewer disconnected", slog.String("viewer", v.id))
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.viewers[id]; ok {
		delete(h.viewers, id)
		close(v.sendCh)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, v := range h.viewers {
		delete(h.viewers, id)
		close(v.sendCh)
	}
}
