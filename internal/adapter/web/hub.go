package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/moodviz/moodviz/internal/domain"
	"github.com/moodviz/moodviz/internal/ports"
	"github.com/moodviz/moodviz/internal/render"
	"github.com/moodviz/moodviz/internal/scene"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 54 * time.Second
	clientBuffer = 4
)

// Hub is a drawing surface that streams frames to websocket viewers as PNG.
//
// Present only records the latest frame; encoding happens on the Run
// goroutine at the stream rate, so the animation loop never waits on the
// network.
type Hub struct {
	logger   *slog.Logger
	width    int
	height   int
	interval time.Duration
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  *scene.Frame
	dirty   bool
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub for a width×height canvas streaming at most fps
// frames per second.
func NewHub(logger *slog.Logger, width, height, fps int) *Hub {
	if fps <= 0 {
		fps = 15
	}
	return &Hub{
		logger:   logger.With(slog.String("component", "hub")),
		width:    width,
		height:   height,
		interval: time.Second / time.Duration(fps),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Size implements ports.Surface.
func (h *Hub) Size() (int, int) {
	return h.width, h.height
}

// Present implements ports.Surface.
func (h *Hub) Present(frame *scene.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = frame
	h.dirty = true
}

// Latest returns the most recently presented frame.
func (h *Hub) Latest() (*scene.Frame, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		return nil, domain.ErrNoFrame
	}
	return h.latest, nil
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run encodes and broadcasts new frames until ctx is cancelled, then
// disconnects every viewer.
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
	if !h.dirty || len(h.clients) == 0 {
		h.mu.Unlock()
		return
	}
	frame := h.latest
	h.dirty = false
	h.mu.Unlock()

	data, err := render.PNG(frame)
	if err != nil {
		h.logger.Warn("frame encode failed", slog.Any("error", err))
		return
	}
	h.broadcast(data)
}

// broadcast queues data for every viewer, dropping viewers that fell behind.
func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Debug("dropping slow viewer", slog.String("remote", c.conn.RemoteAddr().String()))
			h.removeLocked(c)
		}
	}
}

// ServeHTTP upgrades the request and registers a viewer.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	// A new viewer gets the current frame on the next flush.
	h.dirty = h.latest != nil
	h.mu.Unlock()

	h.logger.Debug("viewer connected", slog.String("remote", conn.RemoteAddr().String()))

	go c.writePump()
	go c.readPump()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked closes c.send exactly once; writePump then closes the socket.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// readPump drains control frames so pongs and closes are processed.
func (c *client) readPump() {
	defer func() {
		c.hub.remove(c)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var _ ports.Surface = (*Hub)(nil)
