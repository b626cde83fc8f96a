package stream

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("peak-1")
	defer hub.Unregister(client)

	payload := []byte(`{"type":"summit"}`)
	hub.Broadcast("peak-1", payload)

	select {
	case msg := <-client.Send:
		if string(msg) != `{"type":"summit"}` {
			t.Fatalf("unexpected message")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for message")
	}
}

func TestHubBroadcastOtherPeak(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("peak-1")
	defer hub.Unregister(client)

	hub.Broadcast("peak-2", []byte("ping"))

	select {
	case <-client.Send:
		t.Fatalf("unexpected cross-peak delivery")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubHelpers(t *testing.T) {
	ch := redisChannel("abc")
	if ch != "peaks:abc:activity" {
		t.Fatalf("unexpected channel %q", ch)
	}
	if peakIDFromChannel(ch) != "abc" {
		t.Fatalf("unexpected peak id")
	}
	if peakIDFromChannel("bad") != "" {
		t.Fatalf("expected empty peak id")
	}
}

func TestUnregisterCloses(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("peak-2")
	hub.Unregister(client)
	_, ok := <-client.Send
	if ok {
		t.Fatalf("expected channel closed")
	}
}

func TestHubRedisBroadcastAndSubscribe(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	hub := NewHub(client)
	ws := hub.Register("peak-redis")
	defer hub.Unregister(ws)

	hub.Broadcast("peak-redis", []byte("ping"))

	select {
	case msg := <-ws.Send:
		if string(msg) != "ping" {
			t.Fatalf("unexpected message")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for broadcast")
	}

	// a publish from another instance reaches local watchers via pub/sub
	otherPeak := hub.Register("other-peak")
	defer hub.Unregister(otherPeak)

	time.Sleep(20 * time.Millisecond)
	if err := client.Publish(context.Background(), "peaks:other-peak:activity", "pong").Err(); err != nil {
		t.Fatalf("publish error: %v", err)
	}

	select {
	case msg := <-otherPeak.Send:
		if string(msg) != "pong" {
			t.Fatalf("unexpected message from redis")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for redis message")
	}
}

func TestHubConcurrentBroadcastAndChurn(t *testing.T) {
	hub := NewHub(nil)

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					hub.Broadcast("peak-churn", []byte("ping"))
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		client := hub.Register("peak-churn")
		go func() {
			for range client.Send {
			}
		}()
		hub.Unregister(client)
	}

	close(done)
	wg.Wait()
}

func TestHubRedisPublishError(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	server.Close()
	defer client.Close()

	hub := NewHub(client)
	clientNode := hub.Register("peak-bad")
	defer hub.Unregister(clientNode)

	hub.Broadcast("peak-bad", []byte("ping"))
}
