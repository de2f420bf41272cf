package ws

import (
	"context"
	"log"
	"sync"

	"skill-insight/internal/platform/metrics"

	"github.com/google/uuid"
)

type outbound struct {
	learnerID uuid.UUID
	message   []byte
}

// Hub tracks live connections per learner. A learner may hold several
// connections; messages go to every connection of one learner only.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	total      int
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		broadcast:  make(chan outbound, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

// Run serves registrations and deliveries until ctx is done, then closes
// every remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.add(client)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case out := <-h.broadcast:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[out.learnerID]))
			for c := range h.clients[out.learnerID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- out.message:
				default:
					h.remove(client)
				}
			}

			h.logf("WS deliver | learner_id=%s clients=%d", out.learnerID, len(targets))
		}
	}
}

func (h *Hub) add(client *Client) {
	h.mutex.Lock()
	set, ok := h.clients[client.learnerID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.learnerID] = set
	}
	if _, exists := set[client]; !exists {
		set[client] = struct{}{}
		h.total++
	}
	total := h.total
	h.mutex.Unlock()

	metrics.SetWSClients(total)
	h.logf("WS connected | learner_id=%s total_clients=%d", client.learnerID, total)
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	set := h.clients[client.learnerID]
	if _, ok := set[client]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.clients, client.learnerID)
		}
		close(client.send)
		h.total--
	}
	total := h.total
	h.mutex.Unlock()

	metrics.SetWSClients(total)
	h.logf("WS disconnected | learner_id=%s total_clients=%d", client.learnerID, total)
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	for id, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, id)
	}
	h.total = 0
	h.mutex.Unlock()
	metrics.SetWSClients(0)
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// SendTo queues a message for every connection of the learner. It never
// blocks; a full queue drops the message.
func (h *Hub) SendTo(learnerID uuid.UUID, message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- outbound{learnerID: learnerID, message: message}:
	default:
		h.logf("WS deliver dropped | reason=buffer_full learner_id=%s", learnerID)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.total
}

func (h *Hub) LearnerClientCount(learnerID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[learnerID])
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
