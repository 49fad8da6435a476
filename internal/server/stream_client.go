package server

import (
	"bufio"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/muesli/reflow/wordwrap"
)

// DefaultPrompt is shown before every command is read.
const DefaultPrompt = "> "

// StreamClient speaks plain text lines over a byte stream: the local
// terminal or a raw TCP connection.
type StreamClient struct {
	scanner *bufio.Scanner
	writer  *bufio.Writer
	closer  io.Closer
	addr    string
	prompt  string
	width   int
	mu      sync.Mutex // serializes writes
}

// NewConsoleClient reads from in and writes to out. Output is wrapped at
// width columns when width > 0.
func NewConsoleClient(in io.Reader, out io.Writer, width int) *StreamClient {
	return &StreamClient{
		scanner: bufio.NewScanner(in),
		writer:  bufio.NewWriter(out),
		addr:    "console",
		prompt:  DefaultPrompt,
		width:   width,
	}
}

// NewTCPClient wraps a raw TCP connection.
func NewTCPClient(conn net.Conn) *StreamClient {
	return &StreamClient{
		scanner: bufio.NewScanner(conn),
		writer:  bufio.NewWriter(conn),
		closer:  conn,
		addr:    conn.RemoteAddr().String(),
		prompt:  DefaultPrompt,
		width:   80,
	}
}

// SetPrompt replaces the prompt; an empty prompt disables it.
func (c *StreamClient) SetPrompt(prompt string) {
	c.prompt = prompt
}

// ReadLine shows the prompt and reads a line. It returns io.EOF once the
// stream ends.
func (c *StreamClient) ReadLine() (string, error) {
	if c.prompt != "" {
		if err := c.write(c.prompt); err != nil {
			return "", err
		}
	}
	if c.scanner.Scan() {
		return strings.TrimRight(c.scanner.Text(), "\r"), nil
	}
	if err := c.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// WriteLine writes message followed by a newline.
func (c *StreamClient) WriteLine(message string) error {
	if c.width > 0 {
		message = wordwrap.String(message, c.width)
	}
	return c.write(message + "\n")
}

func (c *StreamClient) write(s string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.writer.WriteString(s); err != nil {
		return err
	}
	return c.writer.Flush()
}

// Close closes the underlying connection, if any.
func (c *StreamClient) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// RemoteAddr returns the remote address, or "console".
func (c *StreamClient) RemoteAddr() string {
	return c.addr
}
