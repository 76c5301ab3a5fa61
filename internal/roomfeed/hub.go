package roomfeed

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/splitroom/backend/internal/common/logger"
	"github.com/splitroom/backend/internal/observability/metrics"
)

// Hub fans committed room events out to subscribed websocket clients,
// grouped per room. It holds no ledger state; a slow client is dropped
// rather than allowed to block publishing.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[int64]map[*Client]struct{}
	closed  bool
	log     *logger.Logger
	nowFunc func() time.Time
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		rooms:   make(map[int64]map[*Client]struct{}),
		log:     log,
		nowFunc: time.Now,
	}
}

func (h *Hub) Subscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(c.send)
		return
	}

	clients, ok := h.rooms[c.roomID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.rooms[c.roomID] = clients
	}
	clients[c] = struct{}{}
	metrics.FeedConnections.Inc()
}

func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[c.roomID]
	if !ok {
		return
	}
	if _, subscribed := clients[c]; !subscribed {
		return
	}

	delete(clients, c)
	if len(clients) == 0 {
		delete(h.rooms, c.roomID)
	}
	close(c.send)
	metrics.FeedConnections.Dec()
}

func (h *Hub) Publish(roomID int64, event Event) {
	event.RoomID = roomID
	if event.At.IsZero() {
		event.At = h.nowFunc()
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.log.Errorf("room feed: failed to marshal event type=%s room_id=%d: %v", event.Type, roomID, err)
		return
	}

	metrics.FeedEventsPublished.WithLabelValues(string(event.Type)).Inc()

	h.mu.RLock()
	var stale []*Client
	for c := range h.rooms[roomID] {
		select {
		case c.send <- data:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.log.Warnf("room feed: dropping slow client room_id=%d user_id=%s", roomID, c.userID)
		h.Unsubscribe(c)
	}
}

// Shutdown closes every client connection and rejects new subscribers.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for roomID, clients := range h.rooms {
		for c := range clients {
			close(c.send)
			metrics.FeedConnections.Dec()
		}
		delete(h.rooms, roomID)
	}
}
