// Package hub fans live session state (reps, phase, feedback) out to
// every websocket viewer. One goroutine owns the client set; callers
// interact through channels so broadcasting never blocks the sender.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/fitvision/go-fitcoach/internal/log"
)

// Hub owns a set of websocket clients and replicates each broadcast
// payload to all of them. Create with New and start with Run.
type Hub struct {
	name string

	clients   map[*Client]struct{}
	broadcast chan []byte

	register   chan *Client
	unregister chan *Client

	mu      sync.RWMutex // guards clients for reads outside the Run goroutine
	running bool
}

// New creates a hub; name tags its log lines.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes registrations and broadcasts until the process exits.
// Call it in its own goroutine.
func (h *Hub) Run() {
	h.running = true
	for {
		select {
		case c := <-h.register:
			h.add(c)
		case c := <-h.unregister:
			h.drop(c)
		case msg := <-h.broadcast:
			h.fanOut(msg)
		}
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	log.Debug("client connected", "hub", h.name, "total", n)
}

func (h *Hub) drop(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	log.Debug("client disconnected", "hub", h.name, "remaining", n)
}

// fanOut queues msg on every client. A client whose buffer is full is
// evicted on the spot rather than allowed to stall the loop.
func (h *Hub) fanOut(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			close(c.send)
			delete(h.clients, c)
			log.Warn("dropped slow client", "hub", h.name)
		}
	}
}

// Broadcast queues raw bytes for delivery to every client. Drops the
// payload if the hub itself is backed up; live state is superseded by
// the next update anyway.
func (h *Hub) Broadcast(data []byte) {
	select {
	case h.broadcast <- data:
	default:
		log.Warn("broadcast channel full, dropping message", "hub", h.name)
	}
}

// BroadcastJSON marshals v and broadcasts the result.
func (h *Hub) BroadcastJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(data)
	return nil
}

// ClientCount reports how many clients are connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// IsRunning reports whether Run has started.
func (h *Hub) IsRunning() bool {
	return h.running
}
