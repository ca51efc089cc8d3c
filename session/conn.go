package session

import "encoding/json"

// Conn is the transport seen from the hub. Implementations must be safe
// to call from the hub goroutine while the transport reads elsewhere.
type Conn interface {
	Send([]byte) error
	Close() error
}

// Connect: issued once after the websocket upgrade.
type Connect struct {
	ID   string
	Conn Conn
}

// Disconnect: issued when the transport read loop exits.
type Disconnect struct {
	ID string
}

// ClientEvent: one decoded envelope from a client.
type ClientEvent struct {
	ConnID  string
	Name    string
	Payload json.RawMessage
}

// matchDeadline: posted by a match's auto-end timer.
type matchDeadline struct {
	MatchID string
}
