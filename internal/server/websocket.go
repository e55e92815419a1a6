package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/conneroisu/livedoc/internal/logging"
	"github.com/conneroisu/livedoc/internal/validation"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Send pings to peer with this period.
	pingPeriod = 30 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Messages queued per client before it is dropped as too slow.
	sendBuffer = 16
)

// Client represents a live reload connection.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// Hub tracks the live reload connections and fans messages out to them.
type Hub struct {
	clients map[*Client]struct{}
	origins []string
	logger  logging.Logger
	closed  bool
	mutex   sync.RWMutex
}

// NewHub returns a hub accepting connections whose Origin host matches one
// of the patterns, such as "localhost:*".
func NewHub(origins []string, logger logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		origins: origins,
		logger:  logger.WithComponent("websocket"),
	}
}

// ServeHTTP upgrades the request to a live reload connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.checkOrigin(r) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		h.logger.Warn(r.Context(), err, "websocket upgrade failed")
		return
	}
	conn.SetReadLimit(maxMessageSize)

	client := &Client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		hub:  h,
	}
	if !h.register(client) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	go client.writePump()
	go client.readPump()
}

// checkOrigin requires an http(s) Origin whose host is the request host
// or matches an allowed pattern.
func (h *Hub) checkOrigin(r *http.Request) bool {
	if err := validation.ValidateOrigin(r.Header.Get("Origin"), r.Host, h.origins); err != nil {
		h.logger.Debug(r.Context(), "rejected websocket origin", "error", err.Error())
		return false
	}
	return true
}

func (h *Hub) register(c *Client) bool {
	h.mutex.Lock()
	if h.closed {
		h.mutex.Unlock()
		return false
	}
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mutex.Unlock()

	h.logger.Debug(context.Background(), "client connected", "clients", count)
	return true
}

func (h *Hub) unregister(c *Client) {
	h.mutex.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mutex.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	count := len(h.clients)
	h.mutex.Unlock()

	h.logger.Debug(context.Background(), "client disconnected", "clients", count)
}

// Broadcast queues message for every client and returns how many received
// it. Clients whose queue is full are disconnected.
func (h *Hub) Broadcast(message []byte) int {
	var slow []*Client
	sent := 0

	h.mutex.RLock()
	for client := range h.clients {
		select {
		case client.send <- message:
			sent++
		default:
			slow = append(slow, client)
		}
	}
	h.mutex.RUnlock()

	for _, client := range slow {
		h.unregister(client)
	}
	return sent
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mutex.Lock()
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
		clients = append(clients, client)
	}
	h.mutex.Unlock()

	for _, client := range clients {
		client.conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
}

// readPump drains the connection so control frames are processed. Pages
// never send data; any read error ends the client.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		if _, _, err := c.conn.Read(context.Background()); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				c.hub.logger.Debug(context.Background(), "websocket read ended", "error", err.Error())
			}
			return
		}
	}
}

// writePump delivers queued messages and keeps the connection alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				c.hub.logger.Debug(context.Background(), "websocket write failed", "error", err.Error())
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
