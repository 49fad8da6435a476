package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/lawnchairsociety/castaway/internal/config"
)

// CommandThrottle counts commands per IP in a fixed window and locks out
// addresses that exceed it. Repeat offenders get doubled lockouts.
type CommandThrottle struct {
	mu          sync.Mutex
	entries     map[string]*throttleEntry
	maxCommands int
	window      time.Duration
	lockout     time.Duration
	maxLockout  time.Duration
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

type throttleEntry struct {
	windowStart  time.Time
	count        int
	lockedUntil  time.Time
	lockoutCount int
}

// NewCommandThrottle returns nil when cfg.MaxCommands is 0; a nil throttle
// allows everything.
func NewCommandThrottle(cfg config.RateLimitConfig) *CommandThrottle {
	if cfg.MaxCommands <= 0 {
		return nil
	}
	t := &CommandThrottle{
		entries:     make(map[string]*throttleEntry),
		maxCommands: cfg.MaxCommands,
		window:      time.Duration(cfg.WindowSeconds) * time.Second,
		lockout:     time.Duration(cfg.LockoutSeconds) * time.Second,
		maxLockout:  time.Duration(cfg.MaxLockoutSeconds) * time.Second,
		now:         time.Now,
		stop:        make(chan struct{}),
	}
	if t.window <= 0 {
		t.window = 5 * time.Second
	}
	if t.lockout <= 0 {
		t.lockout = 10 * time.Second
	}
	if t.maxLockout < t.lockout {
		t.maxLockout = t.lockout
	}

	go t.cleanupLoop(5 * time.Minute)
	return t
}

// Stop ends the cleanup goroutine.
func (t *CommandThrottle) Stop() {
	if t == nil {
		return
	}
	t.stopOnce.Do(func() { close(t.stop) })
}

// Allow records one command from ip. When the address is locked out it
// returns false and the time left.
func (t *CommandThrottle) Allow(ip string) (bool, time.Duration) {
	if t == nil {
		return true, 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	e, ok := t.entries[ip]
	if !ok {
		e = &throttleEntry{windowStart: now}
		t.entries[ip] = e
	}

	if now.Before(e.lockedUntil) {
		return false, e.lockedUntil.Sub(now)
	}
	if now.Sub(e.windowStart) >= t.window {
		e.windowStart = now
		e.count = 0
	}

	e.count++
	if e.count <= t.maxCommands {
		return true, 0
	}

	e.lockoutCount++
	d := t.lockout
	for i := 1; i < e.lockoutCount && d < t.maxLockout; i++ {
		d *= 2
	}
	if d > t.maxLockout {
		d = t.maxLockout
	}
	e.lockedUntil = now.Add(d)
	e.count = 0
	e.windowStart = e.lockedUntil
	return false, d
}

func (t *CommandThrottle) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			t.cleanup()
		}
	}
}

// cleanup forgets addresses that have been quiet for ten minutes.
func (t *CommandThrottle) cleanup() {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-10 * time.Minute)
	for ip, e := range t.entries {
		if e.lockedUntil.Before(cutoff) && e.windowStart.Before(cutoff) {
			delete(t.entries, ip)
		}
	}
}

// throttledClient drops lines from a client whose address is locked out.
type throttledClient struct {
	Client
	ip       string
	throttle *CommandThrottle
}

func (c *throttledClient) ReadLine() (string, error) {
	for {
		line, err := c.Client.ReadLine()
		if err != nil {
			return "", err
		}
		ok, wait := c.throttle.Allow(c.ip)
		if ok {
			return line, nil
		}
		msg := fmt.Sprintf("You are sending commands too quickly. Wait %s.", wait.Round(time.Second))
		if err := c.Client.WriteLine(msg); err != nil {
			return "", err
		}
	}
}
