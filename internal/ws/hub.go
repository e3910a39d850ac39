package ws

import (
	"context"
	"encoding/json"
	"sync"

	pkglogger "github.com/drovic/drovic-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisPubSubChannel = "drovic:session-events"

// Event is pushed to every socket of a page session
type Event struct {
	Type    string      `json:"type"` // "notice.show", "notice.hide", "download.progress"
	Payload interface{} `json:"payload"`
}

// Hub routes events to the sockets of one page session
type Hub struct {
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *targetedEvent
	disconnect chan string

	mu          sync.RWMutex
	redisClient *redis.Client
	instanceID  string
	ctx         context.Context
	cancel      context.CancelFunc
}

type targetedEvent struct {
	SessionID string
	Event     *Event
}

// NewHub creates a new Hub. redisClient may be nil.
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *targetedEvent, 256),
		disconnect:  make(chan string, 16),
		redisClient: redisClient,
		instanceID:  uuid.NewString(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
		close(client.send)
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	if h.redisClient != nil {
		go h.subscribeRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.sessionID] == nil {
				h.clients[client.sessionID] = make(map[*Client]bool)
			}
			h.clients[client.sessionID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case sid := <-h.disconnect:
			h.mu.Lock()
			for client := range h.clients[sid] {
				h.remove(client)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Event)
			if err != nil {
				pkglogger.GetLogger().Error().Err(err).Str("type", msg.Event.Type).Msg("encode ws event")
				continue
			}
			h.mu.Lock()
			for client := range h.clients[msg.SessionID] {
				select {
				case client.send <- data:
				default:
					h.remove(client)
				}
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			h.mu.Lock()
			for _, clients := range h.clients {
				for client := range clients {
					h.remove(client)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// remove must be called with mu held
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.sessionID)
	}
}

// SendToSession delivers an event locally and publishes it for other instances
func (h *Hub) SendToSession(sessionID string, event *Event) {
	select {
	case h.broadcast <- &targetedEvent{SessionID: sessionID, Event: event}:
	case <-h.ctx.Done():
		return
	}

	if h.redisClient != nil {
		raw, err := json.Marshal(event)
		if err != nil {
			return
		}
		data, err := json.Marshal(&redisMessage{Origin: h.instanceID, SessionID: sessionID, Event: raw})
		if err == nil {
			h.redisClient.Publish(h.ctx, redisPubSubChannel, data) //nolint:errcheck
		}
	}
}

// Disconnect closes every socket of a session
func (h *Hub) Disconnect(sessionID string) {
	select {
	case h.disconnect <- sessionID:
	case <-h.ctx.Done():
	}
}

// ClientCount returns the number of sockets attached to a session
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

type redisMessage struct {
	Origin    string          `json:"origin"`
	SessionID string          `json:"session_id"`
	Event     json.RawMessage `json:"event"`
}

// subscribeRedis relays events published by other instances
func (h *Hub) subscribeRedis() {
	pubsub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var rm redisMessage
			if err := json.Unmarshal([]byte(msg.Payload), &rm); err != nil || rm.Origin == h.instanceID {
				continue
			}
			var ev Event
			if err := json.Unmarshal(rm.Event, &ev); err != nil {
				continue
			}
			select {
			case h.broadcast <- &targetedEvent{SessionID: rm.SessionID, Event: &ev}:
			case <-h.ctx.Done():
				return
			}
		case <-h.ctx.Done():
			return
		}
	}
}

// Stop shuts down the hub and closes every socket
func (h *Hub) Stop() {
	h.cancel()
}
