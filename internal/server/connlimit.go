package server

import (
	"errors"
	"net"
	"sync"

	"github.com/lawnchairsociety/castaway/internal/config"
)

var (
	// ErrServerFull is returned when every session slot is taken.
	ErrServerFull = errors.New("too many players are on the island right now")
	// ErrTooManyFromIP is returned when one address holds too many sessions.
	ErrTooManyFromIP = errors.New("too many sessions from your address")
)

// ConnLimiter hands out session slots per IP and in total.
type ConnLimiter struct {
	mu       sync.Mutex
	perIP    map[string]int
	total    int
	maxPerIP int
	maxTotal int
}

// NewConnLimiter creates a limiter. Zero limits mean unlimited.
func NewConnLimiter(cfg config.ConnectionsConfig) *ConnLimiter {
	return &ConnLimiter{
		perIP:    make(map[string]int),
		maxPerIP: cfg.MaxPerIP,
		maxTotal: cfg.MaxTotal,
	}
}

// Acquire takes a slot for ip or explains why it cannot.
func (c *ConnLimiter) Acquire(ip string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxTotal > 0 && c.total >= c.maxTotal {
		return ErrServerFull
	}
	if c.maxPerIP > 0 && c.perIP[ip] >= c.maxPerIP {
		return ErrTooManyFromIP
	}
	c.perIP[ip]++
	c.total++
	return nil
}

// Release returns a slot taken by Acquire.
func (c *ConnLimiter) Release(ip string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n := c.perIP[ip]; n > 1 {
		c.perIP[ip] = n - 1
	} else if n == 1 {
		delete(c.perIP, ip)
	}
	if c.total > 0 {
		c.total--
	}
}

// Stats returns the number of held slots and distinct addresses.
func (c *ConnLimiter) Stats() (total, addresses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total, len(c.perIP)
}

// extractIP strips the port from an ip:port address.
func extractIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
