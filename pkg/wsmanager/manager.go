// Package wsmanager tracks open connections: registration, stats, and the
// admin broadcast path. Frame handling lives with the connection's own
// pumps; the manager never reads from a connection.
package wsmanager

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Stats is a point-in-time snapshot of the connection counters.
type Stats struct {
	TotalConnections   int64 `json:"total_connections"`
	CurrentConnections int64 `json:"current_connections"`
	MaxConnections     int64 `json:"max_connections"`
}

type Manager struct {
	logger *zap.Logger

	clients    map[string]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	closeOnce  sync.Once
	mu         sync.RWMutex

	stats Stats
}

func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		logger:     logger,
		clients:    make(map[string]*Client),
		broadcast:  make(chan []byte, 1024),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}

	go m.run()

	return m
}

func (m *Manager) run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-m.register:
			m.handleRegister(client)

		case client := <-m.unregister:
			m.handleUnregister(client)

		case message := <-m.broadcast:
			m.handleBroadcast(message)

		case <-ticker.C:
			stats := m.GetStats()
			m.logger.Debug("connection stats",
				zap.Int64("current", stats.CurrentConnections),
				zap.Int64("max", stats.MaxConnections),
				zap.Int64("total", stats.TotalConnections),
			)

		case <-m.done:
			return
		}
	}
}

func (m *Manager) handleRegister(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clients[client.ID] = client

	m.stats.TotalConnections++
	m.stats.CurrentConnections++
	if m.stats.CurrentConnections > m.stats.MaxConnections {
		m.stats.MaxConnections = m.stats.CurrentConnections
	}

	m.logger.Info("client registered",
		zap.String("client_id", client.ID),
		zap.Int64("current", m.stats.CurrentConnections),
	)
}

func (m *Manager) handleUnregister(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, exists := m.clients[client.ID]; exists {
		// Signal teardown through done rather than closing Send: the
		// read pump may still be enqueueing on its own goroutine.
		close(c.done)
		delete(m.clients, client.ID)
		m.stats.CurrentConnections--

		m.logger.Info("client unregistered",
			zap.String("client_id", client.ID),
			zap.Int64("remaining", m.stats.CurrentConnections),
		)
	}
}

func (m *Manager) handleBroadcast(message []byte) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, client := range m.clients {
		if !client.Enqueue(Message{Type: websocket.TextMessage, Data: message}) {
			// Buffer full means the client stopped draining; drop it.
			m.logger.Warn("send buffer full, dropping client", zap.String("client_id", client.ID))
			go m.Unregister(client)
		}
	}
}

// Register hands the client to the manager goroutine.
func (m *Manager) Register(client *Client) {
	select {
	case m.register <- client:
	case <-m.done:
	}
}

// Unregister removes the client and closes its done channel, ending its
// write pump. Safe to call for a client that was already removed.
func (m *Manager) Unregister(client *Client) {
	select {
	case m.unregister <- client:
	case <-m.done:
	}
}

// Broadcast queues a server-originated text message to every open client.
func (m *Manager) Broadcast(message []byte) {
	select {
	case m.broadcast <- message:
	case <-m.done:
	}
}

// Close stops the manager goroutine. Open clients are left to their own
// pumps; their sockets close when the HTTP server shuts down.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
}

func (m *Manager) GetClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}
