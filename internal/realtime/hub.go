package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/velore/contactbook/internal/platform/logger"
)

type Client struct {
	ID       uuid.UUID
	Outbound chan Event
	done     chan struct{}
}

func (c *Client) Done() <-chan struct{} { return c.done }

// Hub fans contact events out to connected SSE clients.
type Hub struct {
	mu      sync.RWMutex
	log     *logger.Logger
	clients map[*Client]bool
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:     log.With("component", "Hub"),
		clients: make(map[*Client]bool),
	}
}

func (h *Hub) Register() *Client {
	client := &Client{
		ID:       uuid.New(),
		Outbound: make(chan Event, 16),
		done:     make(chan struct{}),
	}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	h.log.Debug("SSE client registered", "clientID", client.ID)
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.done)
	}
	h.mu.Unlock()

	h.log.Debug("SSE client unregistered", "clientID", client.ID)
}

// Broadcast delivers ev to every connected client. Slow clients drop events
// rather than block the caller.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Outbound <- ev:
		default:
			h.log.Warn("SSE client slow, dropping event", "clientID", client.ID, "kind", ev.Kind)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
