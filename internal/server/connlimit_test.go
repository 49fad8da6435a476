package server

import (
	"testing"

	"github.com/lawnchairsociety/castaway/internal/config"
)

func TestConnLimiter_PerIPLimit(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 2, MaxTotal: 100})

	for i := 0; i < 2; i++ {
		if err := limiter.Acquire("192.168.1.1"); err != nil {
			t.Errorf("connection %d should be allowed, got %v", i, err)
		}
	}
	if err := limiter.Acquire("192.168.1.1"); err != ErrTooManyFromIP {
		t.Errorf("Expected ErrTooManyFromIP, got %v", err)
	}
	if err := limiter.Acquire("192.168.1.2"); err != nil {
		t.Errorf("connection from a different IP should be allowed, got %v", err)
	}

	limiter.Release("192.168.1.1")
	if err := limiter.Acquire("192.168.1.1"); err != nil {
		t.Errorf("connection should be allowed after release, got %v", err)
	}
}

func TestConnLimiter_TotalLimit(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 10, MaxTotal: 3})

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		if err := limiter.Acquire(ip); err != nil {
			t.Errorf("connection from %s should be allowed, got %v", ip, err)
		}
	}
	if err := limiter.Acquire("10.0.0.4"); err != ErrServerFull {
		t.Errorf("Expected ErrServerFull, got %v", err)
	}

	limiter.Release("10.0.0.1")
	if err := limiter.Acquire("10.0.0.4"); err != nil {
		t.Errorf("connection should be allowed after release, got %v", err)
	}
}

func TestConnLimiter_Unlimited(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{})

	for i := 0; i < 100; i++ {
		if err := limiter.Acquire("192.168.1.1"); err != nil {
			t.Fatalf("connection %d should be allowed when unlimited, got %v", i, err)
		}
	}
}

func TestConnLimiter_Stats(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 10, MaxTotal: 100})

	limiter.Acquire("192.168.1.1")
	limiter.Acquire("192.168.1.1")
	limiter.Acquire("192.168.1.2")

	total, addresses := limiter.Stats()
	if total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}
	if addresses != 2 {
		t.Errorf("Expected 2 addresses, got %d", addresses)
	}

	limiter.Release("192.168.1.2")
	limiter.Release("192.168.1.2") // extra release is ignored
	total, addresses = limiter.Stats()
	if total != 2 || addresses != 1 {
		t.Errorf("Expected 2 slots on 1 address, got %d on %d", total, addresses)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"192.168.1.1:12345", "192.168.1.1"},
		{"[::1]:12345", "::1"},
		{"localhost:4000", "localhost"},
		{"192.168.1.1", "192.168.1.1"},
	}

	for _, tt := range tests {
		if result := extractIP(tt.input); result != tt.expected {
			t.Errorf("extractIP(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}
