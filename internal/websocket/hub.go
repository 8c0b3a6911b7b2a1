package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"restaurant-chatbot-be/internal/pkg/logger"
	"restaurant-chatbot-be/pkg/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClusterChannel carries feed messages between instances.
const ClusterChannel = "staff_feed_events"

// FeedMessage is what a staff dashboard receives for every restaurant event.
type FeedMessage struct {
	Type       string                 `json:"type"`
	EventID    string                 `json:"event_id"`
	Event      string                 `json:"event"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type clusterEnvelope struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

type Hub struct {
	// Connected dashboards by connection id.
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	// done is closed when Run returns, so pumps never block on a dead hub.
	done chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out. Nil on a single instance.
	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// Run serves register/unregister requests until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	var wg sync.WaitGroup
	if h.rdb != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.subscribeToRedis(ctx)
		}()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Staff client registered", map[string]interface{}{
				"client_id": client.ID,
				"staff_id":  client.StaffID,
			})

		case client := <-h.unregister:
			h.remove(client)

		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				close(client.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			wg.Wait()
			return
		}
	}
}

// Register blocks until the hub accepts the client. It reports false if the hub stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister is safe to call more than once and after the hub stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a restaurant event to every dashboard on every instance.
func (h *Hub) Broadcast(event events.Event) {
	data, err := json.Marshal(FeedMessage{
		Type:       "restaurant_event",
		EventID:    event.EventID(),
		Event:      event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode feed message", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliver(data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterEnvelope{Origin: h.instanceID, Message: data})
		if err := h.rdb.Publish(context.Background(), ClusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Cluster publish failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

// deliver writes to local clients. A client whose buffer is full is dropped.
func (h *Hub) deliver(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping client", map[string]interface{}{"client_id": id})
			close(client.Send)
			delete(h.clients, id)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[client.ID]; ok && current == client {
		close(client.Send)
		delete(h.clients, client.ID)
		h.logger.Info("Hub", "Staff client unregistered", map[string]interface{}{"client_id": client.ID})
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env clusterEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				h.logger.Warn("Hub", "Cluster message parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if env.Origin == h.instanceID {
				continue
			}
			h.deliver(env.Message)
		}
	}
}
