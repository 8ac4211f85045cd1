package globe

import (
	"context"
	"errors"
	"name-locator-service/internal/platform/logger"
	"name-locator-service/internal/ports"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ErrNoClients is returned by WriteText when no globe is connected.
var ErrNoClients = errors.New("globe: no connected clients")

const (
	bufSize      = 1024
	sendBuffer   = 16
	queueBuffer  = 64
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = (pongWait * 9) / 10
)

type outbound struct {
	payload []byte
	points  bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans renderer commands out to every connected globe over WebSocket.
// It implements ports.Renderer and ports.ClipboardSink. Commands are queued
// and never block the caller; a full queue drops the command.
//
// Newly connected clients receive the latest point set first.
type Hub struct {
	upgrader websocket.Upgrader

	register   chan *client
	unregister chan *client
	queue      chan outbound
	done       chan struct{}

	clients atomic.Int64
}

var (
	_ ports.Renderer      = (*Hub)(nil)
	_ ports.ClipboardSink = (*Hub)(nil)
)

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  bufSize,
			WriteBufferSize: bufSize,
			// Globe pages may be served from a different origin than the API.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		register:   make(chan *client),
		unregister: make(chan *client),
		queue:      make(chan outbound, queueBuffer),
		done:       make(chan struct{}),
	}
}

// Run dispatches queued commands until ctx is done, then closes every
// client connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	clients := make(map[*client]struct{})
	lastPoints := encode(newPointsMessage(nil))

	drop := func(c *client) {
		if _, ok := clients[c]; !ok {
			return
		}
		delete(clients, c)
		close(c.send)
		h.clients.Store(int64(len(clients)))
	}

	for {
		select {
		case <-ctx.Done():
			for c := range clients {
				drop(c)
			}
			return

		case c := <-h.register:
			clients[c] = struct{}{}
			h.clients.Store(int64(len(clients)))
			c.send <- lastPoints

		case c := <-h.unregister:
			drop(c)

		case msg := <-h.queue:
			if msg.points {
				lastPoints = msg.payload
			}
			for c := range clients {
				select {
				case c.send <- msg.payload:
				default:
					logger.Log.Warn("globe client too slow, dropping connection",
						zap.String("remote", c.conn.RemoteAddr().String()))
					drop(c)
				}
			}
		}
	}
}

// ClientCount returns the number of connected globes.
func (h *Hub) ClientCount() int {
	return int(h.clients.Load())
}

func (h *Hub) SetPoints(points []ports.GlobePoint) {
	h.enqueue(outbound{payload: encode(newPointsMessage(points)), points: true})
}

func (h *Hub) FocusCamera(lat, lng, altitude float64, duration time.Duration) {
	h.enqueue(outbound{payload: encode(newFocusMessage(lat, lng, altitude, duration))})
}

func (h *Hub) CaptureFrame(filename string) {
	h.enqueue(outbound{payload: encode(CaptureMessage{Type: TypeCapture, Filename: filename})})
}

// WriteText forwards text to the connected globes, which copy it to the
// browser clipboard. It fails when nobody is connected to receive it.
func (h *Hub) WriteText(text string) error {
	if h.ClientCount() == 0 {
		return ErrNoClients
	}
	if !h.enqueue(outbound{payload: encode(ClipboardMessage{Type: TypeClipboard, Text: text})}) {
		return errors.New("globe: command queue full")
	}
	return nil
}

func (h *Hub) enqueue(msg outbound) bool {
	select {
	case h.queue <- msg:
		return true
	default:
		logger.Log.Warn("globe command queue full, dropping command")
		return false
	}
}

// ServeHTTP upgrades the request to a WebSocket and streams commands to it
// until either side closes the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response.
		logger.Log.Warn("globe upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	logger.Log.Info("globe connected", zap.String("remote", conn.RemoteAddr().String()))

	go c.writeLoop()
	c.readLoop()

	select {
	case h.unregister <- c:
	case <-h.done:
	}
	logger.Log.Info("globe disconnected", zap.String("remote", conn.RemoteAddr().String()))
}

// readLoop discards inbound frames; it exists to process control frames
// and to notice when the peer goes away.
func (c *client) readLoop() {
	defer c.conn.Close()

	c.conn.SetReadLimit(bufSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Log.Debug("globe read failed", zap.Error(err))
			}
			return
		}
	}
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer c.conn.Close()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
