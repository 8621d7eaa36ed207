package wsmanager

import (
	"errors"
	"net"
	"sync"
	"time"
)

// ErrMockClosed is returned by mock reads and writes after Close.
var ErrMockClosed = errors.New("mock connection closed")

// MockConn is an in-memory Conn for tests. Frames pushed with PushIncoming
// are returned by ReadMessage in order; frames written by the code under
// test are recorded and can be read back with Written.
type MockConn struct {
	mu       sync.Mutex
	incoming chan Message
	written  []Message
	closed   bool

	pongHandler func(string) error
	readLimit   int64
}

func NewMockConn() *MockConn {
	return &MockConn{
		incoming: make(chan Message, 64),
	}
}

// PushIncoming makes one frame available to ReadMessage.
func (m *MockConn) PushIncoming(messageType int, data []byte) {
	m.incoming <- Message{Type: messageType, Data: data}
}

// CloseRead makes the next ReadMessage return an error, like a peer drop.
func (m *MockConn) CloseRead() {
	close(m.incoming)
}

func (m *MockConn) ReadMessage() (int, []byte, error) {
	msg, ok := <-m.incoming
	if !ok {
		return 0, nil, ErrMockClosed
	}
	return msg.Type, msg.Data, nil
}

func (m *MockConn) WriteMessage(messageType int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrMockClosed
	}
	m.written = append(m.written, Message{Type: messageType, Data: append([]byte(nil), data...)})
	return nil
}

func (m *MockConn) WriteControl(messageType int, data []byte, _ time.Time) error {
	return m.WriteMessage(messageType, data)
}

// Written returns a copy of every frame written so far.
func (m *MockConn) Written() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.written))
	copy(out, m.written)
	return out
}

func (m *MockConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockConn) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *MockConn) SetReadDeadline(time.Time) error  { return nil }
func (m *MockConn) SetWriteDeadline(time.Time) error { return nil }

func (m *MockConn) SetReadLimit(limit int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readLimit = limit
}

func (m *MockConn) SetPongHandler(h func(string) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pongHandler = h
}

func (m *MockConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}
}
