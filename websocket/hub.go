// Package websocket pushes the simulated price-tick feed to browser
// clients over a WebSocket connection, mirroring the SSE stream for UIs
// that prefer a socket.
package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 25 * time.Second

	// Slow consumers past this backlog get dropped.
	clientBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Demo app serves a public dashboard; same CORS posture as the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans messages out to all connected WebSocket clients.
type Hub struct {
	clients map[*client]bool
	mu      sync.RWMutex
	done    chan struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]bool),
		done:    make(chan struct{}),
	}
}

// ServeHTTP upgrades the request and registers the client
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("⚠️  WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()
	log.Printf("WebSocket client connected. Total: %d", total)

	go h.writeLoop(c)
	go h.readLoop(c)
}

// Broadcast sends an event with payload to every connected client
func (h *Hub) Broadcast(event string, payload interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"payload": payload,
	})
	if err != nil {
		log.Printf("Error marshalling websocket message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// Buffer full: the write loop will lag, not us.
		}
	}
}

// Stop disconnects every client
func (h *Hub) Stop() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		c.conn.Close()
		delete(h.clients, c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		c.conn.Close()
		log.Printf("WebSocket client disconnected. Total: %d", len(h.clients))
	}
}

// readLoop drains client frames; the feed is push-only, so anything the
// client sends is discarded, but the read pump is what notices closes.
func (h *Hub) readLoop(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
