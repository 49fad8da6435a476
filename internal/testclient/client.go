// Package testclient drives a castaway TCP server the way a player would,
// for integration tests.
package testclient

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

// Prompt is stripped from received lines.
const Prompt = "> "

// TestClient is a player connection to the line server.
type TestClient struct {
	Name     string
	conn     net.Conn
	reader   *bufio.Reader
	writer   *bufio.Writer
	messages []string
	mu       sync.Mutex
	done     chan struct{}
	closed   sync.Once
}

// Dial connects without answering the name question.
func Dial(address string) (*TestClient, error) {
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	client := &TestClient{
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
		done:   make(chan struct{}),
	}
	go client.readMessages()
	return client, nil
}

// Join connects, answers the name question with name and waits for the
// welcome text.
func Join(address, name string, timeout time.Duration) (*TestClient, error) {
	client, err := Dial(address)
	if err != nil {
		return nil, err
	}
	client.Name = name

	if !client.WaitForMessage("name", timeout) {
		client.Close()
		return nil, fmt.Errorf("no name prompt from %s", address)
	}
	if err := client.SendCommand(name); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to send name: %w", err)
	}
	if !client.WaitForMessage("Welcome", timeout) {
		client.Close()
		return nil, fmt.Errorf("no welcome from %s", address)
	}
	return client, nil
}

// readMessages collects lines until the connection ends.
func (c *TestClient) readMessages() {
	for {
		select {
		case <-c.done:
			return
		default:
		}
		line, err := c.reader.ReadString('\n')
		for strings.HasPrefix(line, Prompt) {
			line = strings.TrimPrefix(line, Prompt)
		}
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			c.mu.Lock()
			c.messages = append(c.messages, line)
			c.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// SendCommand sends one command line.
func (c *TestClient) SendCommand(cmd string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.writer.WriteString(cmd + "\n"); err != nil {
		return err
	}
	return c.writer.Flush()
}

// Messages returns a copy of every line received so far.
func (c *TestClient) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]string, len(c.messages))
	copy(result, c.messages)
	return result
}

// ClearMessages forgets the lines received so far.
func (c *TestClient) ClearMessages() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}

// HasMessage reports whether any received line contains text.
func (c *TestClient) HasMessage(text string) bool {
	for _, msg := range c.Messages() {
		if strings.Contains(msg, text) {
			return true
		}
	}
	return false
}

// WaitForMessage polls until a line containing text arrives or timeout passes.
func (c *TestClient) WaitForMessage(text string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if c.HasMessage(text) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(20 * time.Millisecond)
	}
}

// Transcript joins the received lines, for failure messages.
func (c *TestClient) Transcript() string {
	return strings.Join(c.Messages(), "\n")
}

// Close closes the connection.
func (c *TestClient) Close() error {
	var err error
	c.closed.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}
