package wsmanager

import (
	"net"
	"time"
)

// Conn is the subset of *websocket.Conn the server touches. Keeping it an
// interface lets tests drive the pumps with an in-memory fake.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error

	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(appData string) error)

	RemoteAddr() net.Addr
}
