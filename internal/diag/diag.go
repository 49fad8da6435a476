// Package diag implements the toggleable debug channel players can turn on
// with the debug command. Records emitted while it is muted are buffered and
// replayed when it is enabled again.
package diag

import (
	"github.com/lawnchairsociety/castaway/internal/logger"
)

// DefaultBufferSize is the number of muted records kept for replay.
const DefaultBufferSize = 256

// Channel is a per-session diagnostics service.
type Channel struct {
	enabled bool
	size    int
	buf     []string
	dropped int
	sink    func(string)
}

// New creates a channel. A size of zero or less selects DefaultBufferSize.
func New(enabled bool, size int) *Channel {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Channel{enabled: enabled, size: size}
}

// SetSink sets where records are surfaced while the channel is enabled.
func (c *Channel) SetSink(sink func(string)) {
	c.sink = sink
}

// Enabled reports whether records are surfaced immediately.
func (c *Channel) Enabled() bool {
	return c.enabled
}

// Emit records msg. When enabled it is surfaced right away; otherwise it is
// buffered, evicting the oldest record when the buffer is full.
func (c *Channel) Emit(msg string) {
	logger.Debug("diagnostic", "record", msg)

	if c.enabled && c.sink != nil {
		c.sink(msg)
		return
	}
	if len(c.buf) == c.size {
		c.buf = c.buf[1:]
		c.dropped++
	}
	c.buf = append(c.buf, msg)
}

// Toggle flips the channel. When it turns on, the buffered records are
// returned in emission order and the buffer is cleared.
func (c *Channel) Toggle() (enabled bool, replay []string) {
	if c.enabled {
		c.enabled = false
		return false, nil
	}
	c.enabled = true
	return true, c.Drain()
}

// Drain returns and clears the buffered records.
func (c *Channel) Drain() []string {
	out := c.buf
	c.buf = nil
	if c.dropped > 0 {
		logger.Debug("diagnostic records evicted before replay", "count", c.dropped)
		c.dropped = 0
	}
	return out
}

// Pending returns the number of buffered records.
func (c *Channel) Pending() int {
	return len(c.buf)
}
