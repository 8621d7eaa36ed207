package wsmanager

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(id string) *Client {
	return NewClient(id, NewMockConn())
}

func TestManager_RegisterClient(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	manager.Register(newTestClient("client-1"))
	waitForCount(t, manager, 1)

	stats := manager.GetStats()
	assert.Equal(t, int64(1), stats.CurrentConnections)
	assert.Equal(t, int64(1), stats.TotalConnections)
	assert.Equal(t, int64(1), stats.MaxConnections)
}

func TestManager_UnregisterClient(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	client := newTestClient("client-1")
	manager.Register(client)
	waitForCount(t, manager, 1)

	manager.Unregister(client)
	waitForCount(t, manager, 0)

	// Unregister signalled teardown through done, ending any write pump.
	select {
	case <-client.Done():
	default:
		t.Fatal("done channel not closed after unregister")
	}

	// A second unregister of the same client is a no-op.
	manager.Unregister(client)
	waitForCount(t, manager, 0)
}

func TestManager_Broadcast(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	client1 := newTestClient("client-1")
	client2 := newTestClient("client-2")
	manager.Register(client1)
	manager.Register(client2)
	waitForCount(t, manager, 2)

	payload := []byte("broadcast message")
	manager.Broadcast(payload)

	for _, client := range []*Client{client1, client2} {
		select {
		case msg := <-client.Send:
			assert.Equal(t, websocket.TextMessage, msg.Type)
			assert.Equal(t, payload, msg.Data)
		case <-time.After(time.Second):
			t.Fatalf("client %s did not receive broadcast", client.ID)
		}
	}
}

func TestManager_BroadcastDropsStalledClient(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	stalled := newTestClient("stalled")
	// Fill the send buffer so the next broadcast cannot be queued.
	for i := 0; i < cap(stalled.Send); i++ {
		stalled.Send <- Message{Type: websocket.TextMessage, Data: []byte("x")}
	}

	manager.Register(stalled)
	waitForCount(t, manager, 1)

	manager.Broadcast([]byte("overflow"))
	waitForCount(t, manager, 0)
}

// A read pump may still be enqueueing when a broadcast drops its client.
// Enqueue must refuse the frame instead of panicking on a dead client.
func TestManager_EnqueueAfterBroadcastDrop(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	stalled := newTestClient("stalled")
	for i := 0; i < cap(stalled.Send); i++ {
		stalled.Send <- Message{Type: websocket.TextMessage, Data: []byte("x")}
	}

	manager.Register(stalled)
	waitForCount(t, manager, 1)

	manager.Broadcast([]byte("overflow"))
	waitForCount(t, manager, 0)

	// The next inbound frame arrives after the drop.
	assert.NotPanics(t, func() {
		assert.False(t, stalled.Enqueue(Message{Type: websocket.TextMessage, Data: []byte("late frame")}))
	})
}

func TestClient_EnqueueAfterUnregister(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	client := newTestClient("client-1")
	manager.Register(client)
	waitForCount(t, manager, 1)

	assert.True(t, client.Enqueue(Message{Type: websocket.TextMessage, Data: []byte("before")}))

	manager.Unregister(client)
	waitForCount(t, manager, 0)

	assert.False(t, client.Enqueue(Message{Type: websocket.TextMessage, Data: []byte("after")}))
}

// Enqueue stays safe while the manager tears the client down concurrently.
func TestClient_EnqueueConcurrentWithUnregister(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	client := newTestClient("client-1")
	manager.Register(client)
	waitForCount(t, manager, 1)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				client.Enqueue(Message{Type: websocket.TextMessage, Data: []byte("m")})
			}
		}
	}()

	manager.Unregister(client)
	waitForCount(t, manager, 0)

	close(stop)
	wg.Wait()

	assert.False(t, client.Enqueue(Message{Type: websocket.TextMessage, Data: []byte("late")}))
}

func TestManager_MaxConnectionsHighWater(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	clients := make([]*Client, 3)
	for i := range clients {
		clients[i] = newTestClient(fmt.Sprintf("client-%d", i))
		manager.Register(clients[i])
	}
	waitForCount(t, manager, 3)

	manager.Unregister(clients[0])
	manager.Unregister(clients[1])
	waitForCount(t, manager, 1)

	stats := manager.GetStats()
	assert.Equal(t, int64(1), stats.CurrentConnections)
	assert.Equal(t, int64(3), stats.MaxConnections)
	assert.Equal(t, int64(3), stats.TotalConnections)
}

func TestManager_ConcurrentOperations(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	const clientCount = 100

	var wg sync.WaitGroup
	clients := make([]*Client, clientCount)
	for i := 0; i < clientCount; i++ {
		clients[i] = newTestClient(fmt.Sprintf("client-%d", i))
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			manager.Register(c)
		}(clients[i])
	}
	wg.Wait()
	waitForCount(t, manager, clientCount)

	for _, c := range clients {
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			manager.Unregister(c)
		}(c)
	}
	wg.Wait()
	waitForCount(t, manager, 0)
}

func TestManager_OperationsAfterClose(t *testing.T) {
	manager := NewManager(nil)
	manager.Close()

	// None of these may block once the run loop is gone.
	done := make(chan struct{})
	go func() {
		defer close(done)
		manager.Register(newTestClient("late"))
		manager.Broadcast([]byte("late"))
		manager.Close()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("manager operations blocked after Close")
	}
}

func waitForCount(t *testing.T, m *Manager, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.GetClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count never reached %d, got %d", want, m.GetClientCount())
}
