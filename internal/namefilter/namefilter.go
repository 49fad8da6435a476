// Package namefilter decides which player names are acceptable.
package namefilter

import (
	"errors"
	"strings"

	"github.com/lawnchairsociety/castaway/internal/names"
)

var (
	// ErrNameNotAllowed is returned for banned or reserved names.
	ErrNameNotAllowed = errors.New("that name is not allowed")
	// ErrBannedWord is returned when a name contains a banned word.
	ErrBannedWord = errors.New("that name contains a word that is not allowed")
)

// Config holds the name filter configuration
type Config struct {
	Enabled     bool     `yaml:"enabled"`
	BannedWords []string `yaml:"banned_words"` // partial match
	BannedNames []string `yaml:"banned_names"` // exact match
}

// NameFilter checks names case-insensitively. A nil *NameFilter allows
// every name.
type NameFilter struct {
	enabled     bool
	bannedWords []string
	bannedNames map[string]bool
}

// New creates a NameFilter from cfg. A nil cfg disables filtering.
func New(cfg *Config) *NameFilter {
	nf := &NameFilter{bannedNames: make(map[string]bool)}
	if cfg == nil {
		return nf
	}
	nf.enabled = cfg.Enabled
	for _, word := range cfg.BannedWords {
		if k := names.Key(word); k != "" {
			nf.bannedWords = append(nf.bannedWords, k)
		}
	}
	nf.Reserve(cfg.BannedNames...)
	return nf
}

// Reserve bans exact names, such as the island's own characters.
func (nf *NameFilter) Reserve(reserved ...string) {
	for _, name := range reserved {
		if k := names.Key(name); k != "" {
			nf.bannedNames[k] = true
		}
	}
}

// Check returns nil when name may be used.
func (nf *NameFilter) Check(name string) error {
	if nf == nil || !nf.enabled {
		return nil
	}

	key := names.Key(name)
	if nf.bannedNames[key] {
		return ErrNameNotAllowed
	}
	for _, word := range nf.bannedWords {
		if strings.Contains(key, word) {
			return ErrBannedWord
		}
	}
	return nil
}

// IsEnabled returns whether the filter is enabled
func (nf *NameFilter) IsEnabled() bool {
	return nf != nil && nf.enabled
}
