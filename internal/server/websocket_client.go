package server

import (
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocketClient wraps a WebSocket connection for browser-based play.
type WebSocketClient struct {
	conn    *websocket.Conn
	pending []string   // lines left over from a multi-line message
	mu      sync.Mutex // protects pending
	writeMu sync.Mutex // gorilla allows one concurrent writer
}

// NewWebSocketClient creates a new WebSocketClient from a WebSocket connection.
func NewWebSocketClient(conn *websocket.Conn) *WebSocketClient {
	return &WebSocketClient{conn: conn}
}

// ReadLine returns the next non-blank line. A message holding several
// lines is split and its lines are returned one at a time.
func (c *WebSocketClient) ReadLine() (string, error) {
	for {
		if line, ok := c.nextPending(); ok {
			return line, nil
		}

		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}

		var lines []string
		for _, line := range strings.Split(string(message), "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}

		c.mu.Lock()
		c.pending = append(c.pending, lines...)
		c.mu.Unlock()
	}
}

func (c *WebSocketClient) nextPending() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return "", false
	}
	line := c.pending[0]
	c.pending = c.pending[1:]
	return line, true
}

// WriteLine sends message as one text frame.
func (c *WebSocketClient) WriteLine(message string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, []byte(message))
}

// Close sends a close frame and closes the connection.
func (c *WebSocketClient) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.conn.Close()
}

// RemoteAddr returns the remote address as a string.
func (c *WebSocketClient) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
