// Package text provides loading and lookup for externalized text blocks.
package text

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// TextData represents the structure of the text.yaml file.
type TextData struct {
	Welcome WelcomeText `yaml:"welcome"`
	Session SessionText `yaml:"session"`
	Prompts PromptText  `yaml:"prompts"`
	Help    HelpText    `yaml:"help"`
}

// WelcomeText contains the opening screen.
type WelcomeText struct {
	Banner   string `yaml:"banner"`
	Greeting string `yaml:"greeting"` // %s is the player name
}

// SessionText contains the lines that start and end a session.
type SessionText struct {
	Farewell string `yaml:"farewell"` // %s is the player name
	Restart  string `yaml:"restart"`
	Victory  string `yaml:"victory"`
	Defeat   string `yaml:"defeat"`
}

// PromptText contains replies to yes/no when nothing is pending.
type PromptText struct {
	NothingToConfirm string `yaml:"nothing_to_confirm"`
	NothingToRefuse  string `yaml:"nothing_to_refuse"`
}

// HelpText frames the command list.
type HelpText struct {
	Header string `yaml:"header"`
	Footer string `yaml:"footer"`
}

// defaults are used for every block the file leaves empty.
var defaults = TextData{
	Welcome: WelcomeText{
		Greeting: "Welcome %s to this adventure game!\nType 'help' if you need help.",
	},
	Session: SessionText{
		Farewell: "Thank you %s for playing. See you soon!",
		Restart:  "Restarting the game...",
		Victory:  "You have won!",
		Defeat:   "GAME OVER",
	},
	Prompts: PromptText{
		NothingToConfirm: "There is nothing to confirm here.",
		NothingToRefuse:  "There is nothing to refuse here.",
	},
	Help: HelpText{
		Header: "Available commands:",
	},
}

// Text provides text lookup functionality.
type Text struct {
	data *TextData
	mu   sync.RWMutex
}

// Default returns a catalog holding only the built-in texts.
func Default() *Text {
	data := defaults
	return &Text{data: &data}
}

// Load loads text data from a YAML file.
func Load(path string) (*Text, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}

	var textData TextData
	if err := yaml.Unmarshal(data, &textData); err != nil {
		return nil, fmt.Errorf("failed to parse text file: %w", err)
	}

	return &Text{data: &textData}, nil
}

func pick(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// GetWelcome returns the banner (if any) followed by the greeting for name.
func (t *Text) GetWelcome(name string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	greeting := fmt.Sprintf(pick(t.data.Welcome.Greeting, defaults.Welcome.Greeting), name)
	if banner := strings.TrimSpace(t.data.Welcome.Banner); banner != "" {
		return banner + "\n\n" + greeting
	}
	return greeting
}

// GetFarewell returns the goodbye line for name.
func (t *Text) GetFarewell(name string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return fmt.Sprintf(pick(t.data.Session.Farewell, defaults.Session.Farewell), name)
}

// GetRestart returns the line printed before a restart.
func (t *Text) GetRestart() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return pick(t.data.Session.Restart, defaults.Session.Restart)
}

// GetVictory returns the closing line of a won game.
func (t *Text) GetVictory() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return pick(t.data.Session.Victory, defaults.Session.Victory)
}

// GetDefeat returns the closing line of a lost game.
func (t *Text) GetDefeat() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return pick(t.data.Session.Defeat, defaults.Session.Defeat)
}

// GetNothingToConfirm is the reply to yes when no question is pending.
func (t *Text) GetNothingToConfirm() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return pick(t.data.Prompts.NothingToConfirm, defaults.Prompts.NothingToConfirm)
}

// GetNothingToRefuse is the reply to no when no question is pending.
func (t *Text) GetNothingToRefuse() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return pick(t.data.Prompts.NothingToRefuse, defaults.Prompts.NothingToRefuse)
}

// GetHelpHeader returns the line above the command list.
func (t *Text) GetHelpHeader() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return pick(t.data.Help.Header, defaults.Help.Header)
}

// GetHelpFooter returns the line below the command list, possibly empty.
func (t *Text) GetHelpFooter() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return strings.TrimSpace(t.data.Help.Footer)
}
