package wsmanager

import (
	"time"
)

// Message is one outbound frame queued on a client's Send channel.
type Message struct {
	Type int
	Data []byte
}

// Client is one accepted connection. The write pump is the only reader of
// Send. The channel itself is never closed: the read pump may be enqueueing
// at any moment, so teardown is signalled through done instead, which the
// manager closes on unregister.
type Client struct {
	ID          string
	Conn        Conn
	Send        chan Message
	IP          string
	ConnectedAt time.Time

	done chan struct{}
}

func NewClient(id string, conn Conn) *Client {
	return &Client{
		ID:          id,
		Conn:        conn,
		Send:        make(chan Message, 256),
		ConnectedAt: time.Now(),
		done:        make(chan struct{}),
	}
}

// Done is closed when the client has been unregistered. The write pump
// selects on it to shut down; after it closes, Enqueue reports false.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Enqueue queues one outbound frame without blocking. It reports false when
// the client has been unregistered or its buffer is full, leaving the drop
// decision to the caller. Safe to call concurrently with unregistration.
func (c *Client) Enqueue(msg Message) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.Send <- msg:
		return true
	case <-c.done:
		return false
	default:
		return false
	}
}
