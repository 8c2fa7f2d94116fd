package ws

import (
	"log"
	"sync"
)

// Client is one open live connection with a resolved identity. Messages
// queued on its send channel are written to the socket by a single
// writer goroutine, so a client observes events in publish order.
type Client struct {
	UserID   uint
	Username string

	send   chan []byte
	hub    *Hub
	mu     sync.Mutex
	closed bool
}

func NewClient(userID uint, username string, buffer int) *Client {
	return &Client{
		UserID:   userID,
		Username: username,
		send:     make(chan []byte, buffer),
	}
}

// Receive exposes the client's outbound queue to its writer goroutine.
func (c *Client) Receive() <-chan []byte {
	return c.send
}

// trySend queues data without blocking. Returns false when the client is
// closed or its buffer is full; the caller treats either as an isolated
// delivery failure.
func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Close marks the client closed, closes its queue and removes it from
// the hub. Idempotent.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()
	if c.hub != nil {
		c.hub.Unregister(c)
	}
}

// Hub tracks the set of open clients and fans published events out to
// them. It is constructed once and handed to whoever needs to publish;
// nothing else mutates the client set.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	h.clients[c] = struct{}{}
}

// Unregister removes a client; removing an already-removed client is a no-op.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) snapshot() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	return clients
}

// Publish delivers the event to every client open at the moment of the
// call. Delivery is best effort: a client that cannot accept the frame
// is skipped, and clients registered after Publish returns never see it.
// Publish never blocks on a slow client and never returns an error to
// the caller.
func (h *Hub) Publish(ev Event) {
	data, err := Encode(ev)
	if err != nil {
		log.Printf("[ws] encode %s: %v", ev.Tag(), err)
		return
	}
	for _, c := range h.snapshot() {
		if !c.trySend(data) {
			log.Printf("[ws] dropped %s for user %d", ev.Tag(), c.UserID)
		}
	}
}
