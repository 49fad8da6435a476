// Package server connects players to game sessions: a local console, raw
// TCP line connections and WebSocket connections. Every connection plays
// its own independent session.
package server

import (
	"errors"
	"io"
	"net"

	"github.com/gorilla/websocket"
)

// Client abstracts the line-oriented connection a session talks through.
type Client interface {
	// ReadLine blocks until a complete line is received (without newline).
	ReadLine() (string, error)

	// WriteLine sends one block of game output. Streams append a newline,
	// WebSocket sends it as a single message.
	WriteLine(message string) error

	// Close closes the connection.
	Close() error

	// RemoteAddr returns the client's address for logging.
	RemoteAddr() string
}

// isDisconnect reports whether err only means the other side went away.
func isDisconnect(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived)
}
