package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans summit activity out to websocket watchers of a peak. Redis
// pub/sub bridges hubs running in different instances.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	PeakID string
	Send   chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(peakID string) *Client {
	client := &Client{
		PeakID: peakID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[peakID] == nil {
		h.clients[peakID] = map[*Client]struct{}{}
	}
	h.clients[peakID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if peakClients, ok := h.clients[client.PeakID]; ok {
		delete(peakClients, client)
		if len(peakClients) == 0 {
			delete(h.clients, client.PeakID)
		}
	}
	close(client.Send)
}

func (h *Hub) Broadcast(peakID string, payload []byte) {
	h.deliver(peakID, payload)

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(peakID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

// deliver fans payload out to the peak's local clients. The read lock is
// held across the whole loop: Unregister closes Send under the write lock,
// so a send can never hit a just-closed channel, and the map cannot mutate
// mid-iteration. Sends are non-blocking, so the lock is never held long.
func (h *Hub) deliver(peakID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[peakID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "peaks:*:activity")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliver(peakIDFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func redisChannel(peakID string) string {
	return "peaks:" + peakID + ":activity"
}

func peakIDFromChannel(ch string) string {
	// peaks:{peak}:activity
	const prefix = "peaks:"
	const suffix = ":activity"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
