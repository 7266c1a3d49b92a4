package notification

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/carehome/carehome-api/internal/pkg/metrics"
)

const recordChannelPrefix = "notify:record:"

// Client is one websocket connection watching a record
type Client struct {
	RecordID uuid.UUID
	Conn     *websocket.Conn
	Send     chan []byte
}

// Hub pushes notifications to websocket clients grouped by record.
// With Redis, events go through pub/sub so every instance delivers to its own clients.
type Hub struct {
	clients map[uuid.UUID]map[*Client]bool
	mu      sync.RWMutex

	redis  *redis.Client
	pubsub *redis.PubSub

	register   chan *Client
	unregister chan *Client

	ctx    context.Context
	cancel context.CancelFunc

	metrics *metrics.Metrics
}

func NewHub(redisClient *redis.Client, m *metrics.Metrics) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		redis:      redisClient,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
		metrics:    m,
	}
	if redisClient != nil {
		h.pubsub = redisClient.PSubscribe(ctx, recordChannelPrefix+"*")
	}
	return h
}

// Run processes registrations until Shutdown (call in goroutine)
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runRedisSubscriber()
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.RecordID] == nil {
				h.clients[c.RecordID] = make(map[*Client]bool)
			}
			h.clients[c.RecordID][c] = true
			n := h.countLocked()
			h.mu.Unlock()
			h.metrics.SetWebsocketClients(n)
			log.Debug().Str("record_id", c.RecordID.String()).Msg("Notification client connected")

		case c := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.clients[c.RecordID]; ok {
				if set[c] {
					delete(set, c)
					close(c.Send)
				}
				if len(set) == 0 {
					delete(h.clients, c.RecordID)
				}
			}
			n := h.countLocked()
			h.mu.Unlock()
			h.metrics.SetWebsocketClients(n)
			log.Debug().Str("record_id", c.RecordID.String()).Msg("Notification client disconnected")
		}
	}
}

func (h *Hub) runRedisSubscriber() {
	ch := h.pubsub.Channel()
	for {
		select {
		case <-h.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			recordID, err := uuid.Parse(strings.TrimPrefix(msg.Channel, recordChannelPrefix))
			if err != nil {
				continue
			}
			h.broadcastLocal(recordID, []byte(msg.Payload))
		}
	}
}

// Register adds a client. It is a no-op after Shutdown.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.ctx.Done():
	}
}

// Unregister removes a client and closes its Send channel
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
	}
}

// Notify publishes n to every client watching n.RecordID
func (h *Hub) Notify(ctx context.Context, n Notification) {
	h.publish(ctx, Event{Type: EventNotification, RecordID: n.RecordID, Notification: &n})
}

// RecordUpdated tells local clients the record changed and should be reloaded.
// Record updates already fan out through Redis, so this never republishes.
func (h *Hub) RecordUpdated(recordID uuid.UUID) {
	data, err := json.Marshal(Event{Type: EventRecordUpdated, RecordID: recordID})
	if err != nil {
		return
	}
	h.broadcastLocal(recordID, data)
}

func (h *Hub) publish(ctx context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal notification event")
		return
	}

	if h.redis == nil {
		h.broadcastLocal(event.RecordID, data)
		return
	}

	channel := recordChannelPrefix + event.RecordID.String()
	if err := h.redis.Publish(ctx, channel, data).Err(); err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("Redis publish failed")
		h.broadcastLocal(event.RecordID, data)
	}
}

func (h *Hub) broadcastLocal(recordID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[recordID] {
		select {
		case c.Send <- data:
		default:
			log.Warn().Str("record_id", recordID.String()).Msg("Notification send buffer full")
		}
	}
}

// ClientCount returns the number of local clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.countLocked()
}

func (h *Hub) countLocked() int {
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

// Shutdown stops Run and closes the Redis subscription
func (h *Hub) Shutdown() {
	h.cancel()
	if h.pubsub != nil {
		_ = h.pubsub.Close()
	}
}
