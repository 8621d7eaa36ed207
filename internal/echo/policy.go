// Package echo holds the per-frame dispatch policy: given one received data
// frame, decide whether a response goes back and what it carries. Close,
// ping and pong frames never reach the policy; they are handled at the
// transport layer by the connection loop.
package echo

import (
	"github.com/gorilla/websocket"

	"echokit/internal/config"
)

// Policy decides the outgoing action for each received data frame.
type Policy struct {
	prefix     []byte
	dropBinary bool
}

// NewPolicy builds a policy from the echo config section.
func NewPolicy(cfg config.EchoConfig) *Policy {
	return &Policy{
		prefix:     []byte(cfg.Prefix),
		dropBinary: cfg.DropBinary,
	}
}

// Apply maps one received frame to its response. The returned bool is false
// when no response should be written (unknown frame kinds, or binary frames
// under drop_binary). The input slice is never aliased into the response of
// a transformed frame, so callers may reuse their read buffer.
func (p *Policy) Apply(messageType int, payload []byte) (int, []byte, bool) {
	switch messageType {
	case websocket.TextMessage:
		if len(p.prefix) == 0 {
			return websocket.TextMessage, payload, true
		}
		out := make([]byte, 0, len(p.prefix)+len(payload))
		out = append(out, p.prefix...)
		out = append(out, payload...)
		return websocket.TextMessage, out, true
	case websocket.BinaryMessage:
		if p.dropBinary {
			return 0, nil, false
		}
		return websocket.BinaryMessage, payload, true
	default:
		return 0, nil, false
	}
}

// Name describes the active text behaviour, for the health endpoint.
func (p *Policy) Name() string {
	if len(p.prefix) == 0 {
		return "verbatim"
	}
	return "prefix"
}
