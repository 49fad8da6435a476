package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/castaway/internal/journal"
	"github.com/lawnchairsociety/castaway/internal/logger"
	"github.com/lawnchairsociety/castaway/internal/namefilter"
)

// Config holds the settings of a castaway process.
type Config struct {
	Game        GameConfig        `yaml:"game"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Journal     JournalConfig     `yaml:"journal"`
	WebSocket   WebSocketConfig   `yaml:"websocket"`
	Connections ConnectionsConfig `yaml:"connections"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	NameFilter  namefilter.Config `yaml:"name_filter"`
}

// GameConfig points at the content files and tunes a session.
type GameConfig struct {
	WorldFile  string `yaml:"world_file"`
	QuestsFile string `yaml:"quests_file"`
	TextFile   string `yaml:"text_file"`

	// PlayerName is used when the presentation layer does not ask for one.
	PlayerName string `yaml:"player_name"`

	// Capacity is the starting carrying capacity in kg.
	Capacity float64 `yaml:"capacity"`

	// Seed for character wandering. 0 picks a time-based seed.
	Seed int64 `yaml:"seed"`

	// Wander lets movable characters roam after each player move.
	Wander bool `yaml:"wander"`
}

// DiagnosticsConfig controls the debug channel.
type DiagnosticsConfig struct {
	// Enabled surfaces debug records from the first turn.
	Enabled bool `yaml:"enabled"`

	// BufferSize is the number of muted records kept for replay.
	BufferSize int `yaml:"buffer_size"`
}

// JournalConfig enables the SQL event journal.
type JournalConfig struct {
	Enabled        bool `yaml:"enabled"`
	journal.Config `yaml:",inline"`
}

// ConnectionsConfig holds connection limit settings for the websocket server.
type ConnectionsConfig struct {
	// MaxPerIP is the maximum concurrent sessions from a single IP address.
	// 0 means unlimited.
	MaxPerIP int `yaml:"max_per_ip"`

	// MaxTotal is the maximum total concurrent sessions. 0 means unlimited.
	MaxTotal int `yaml:"max_total"`
}

// RateLimitConfig throttles remote clients that send commands faster than
// a person types.
type RateLimitConfig struct {
	// MaxCommands allowed per IP inside one window. 0 disables throttling.
	MaxCommands int `yaml:"max_commands"`

	WindowSeconds int `yaml:"window_seconds"`

	// LockoutSeconds is the first lockout; it doubles on every repeat
	// offense up to MaxLockoutSeconds.
	LockoutSeconds    int `yaml:"lockout_seconds"`
	MaxLockoutSeconds int `yaml:"max_lockout_seconds"`
}

// WebSocketConfig holds WebSocket-specific settings.
type WebSocketConfig struct {
	// AllowedOrigins is a list of origins allowed to connect via WebSocket.
	// Empty list enforces same-origin policy.
	// Use "*" to allow all origins.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`

	// TrustedProxies lists reverse proxy IPs or CIDR ranges whose
	// X-Forwarded-For and X-Real-IP headers are believed. Empty means the
	// connection address is always used.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// DefaultConfig returns a Config that plays the bundled island.
func DefaultConfig() *Config {
	return &Config{
		Game: GameConfig{
			WorldFile:  "data/world.yaml",
			QuestsFile: "data/quests.yaml",
			TextFile:   "data/text.yaml",
			PlayerName: "Captain",
			Capacity:   5,
			Wander:     true,
		},
		Diagnostics: DiagnosticsConfig{
			BufferSize: 256,
		},
		Journal: JournalConfig{
			Config: journal.DefaultConfig("data/journal.db"),
		},
		WebSocket: WebSocketConfig{
			AllowedOrigins: []string{}, // Same-origin only by default
			MaxMessageSize: 4096,
		},
		Connections: ConnectionsConfig{
			MaxPerIP: 3,
			MaxTotal: 50,
		},
		RateLimit: RateLimitConfig{
			MaxCommands:       20,
			WindowSeconds:     5,
			LockoutSeconds:    10,
			MaxLockoutSeconds: 300,
		},
		NameFilter: namefilter.Config{
			Enabled:     true,
			BannedWords: []string{"admin", "moderator"},
		},
	}
}

// LoadEnv loads KEY=value pairs from .env files into the environment.
// Variables already set are left alone; missing files are ignored.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logger.Warning("Failed to load env file", "file", f, "error", err)
		}
	}
}

// LoadConfig loads configuration from a YAML file and applies environment
// overrides. If the file doesn't exist, defaults are used.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return config, err
		}
	} else if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	applyEnv(config)
	return config, nil
}

// applyEnv overrides settings from CASTAWAY_* environment variables.
func applyEnv(c *Config) {
	if v, ok := envBool("CASTAWAY_DEBUG"); ok {
		c.Diagnostics.Enabled = v
	}
	if v := os.Getenv("CASTAWAY_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Game.Seed = seed
		} else {
			logger.Warning("Ignoring invalid CASTAWAY_SEED", "value", v)
		}
	}
	if v := os.Getenv("CASTAWAY_PLAYER"); v != "" {
		c.Game.PlayerName = v
	}
	if v := os.Getenv("CASTAWAY_JOURNAL_DRIVER"); v != "" {
		c.Journal.Enabled = true
		c.Journal.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("CASTAWAY_JOURNAL_DSN"); v != "" {
		if c.Journal.Driver == string(journal.DialectPostgres) {
			c.Journal.Postgres.DSN = v
		} else {
			c.Journal.SQLitePath = v
		}
	}
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true, true
	default:
		return false, true
	}
}

// IsOriginAllowed checks if the given origin is allowed based on the config.
// Returns true if:
// - AllowedOrigins contains "*" (allow all)
// - AllowedOrigins contains the exact origin
// - AllowedOrigins is empty and origin matches the request host (same-origin)
func (c *WebSocketConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// isSameOrigin checks if the origin matches the request host.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // No origin header means a non-browser client
	}

	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
