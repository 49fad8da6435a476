package server

import (
	"errors"
	"strings"
	"unicode"

	"github.com/lawnchairsociety/castaway/internal/game"
	"github.com/lawnchairsociety/castaway/internal/logger"
	"github.com/lawnchairsociety/castaway/internal/namefilter"
)

// MaxNameLength caps player names read from a client.
const MaxNameLength = 24

// NamePrompt asks a new player for a name.
const NamePrompt = "Enter your name:"

const maxNameAttempts = 3

// ErrNoValidName is returned when a client keeps offering rejected names.
var ErrNoValidName = errors.New("no acceptable name given")

// AskName asks the client for a player name. Blank answers select
// fallback; names the filter rejects are asked for again.
func AskName(client Client, fallback string, filter *namefilter.NameFilter) (string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		if err := client.WriteLine(NamePrompt); err != nil {
			return "", err
		}
		line, err := client.ReadLine()
		if err != nil {
			return "", err
		}
		name := cleanName(line)
		if name == "" {
			return fallback, nil
		}
		if err := filter.Check(name); err != nil {
			if err := client.WriteLine(capitalize(err.Error()) + ". Choose another name."); err != nil {
				return "", err
			}
			continue
		}
		return name, nil
	}
	return "", ErrNoValidName
}

// cleanName drops control characters, collapses blanks and truncates.
func cleanName(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > MaxNameLength {
		s = strings.TrimSpace(string(runes[:MaxNameLength]))
	}
	return s
}

// RunSession plays s over client until the game ends or the client goes
// away. The session is closed on return so its outcome reaches the journal.
// A client that simply disconnects is not an error.
func RunSession(client Client, s *game.Session) error {
	defer func() {
		if err := s.Close(); err != nil {
			logger.Warning("Failed to close session", "session", s.ID(), "error", err)
		}
	}()

	if err := client.WriteLine(strings.TrimRight(s.Start(), "\n")); err != nil {
		return ignoreDisconnect(err)
	}

	for !s.Finished() {
		line, err := client.ReadLine()
		if err != nil {
			return ignoreDisconnect(err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		out := strings.TrimRight(s.Process(line), "\n")
		if out == "" {
			continue
		}
		if err := client.WriteLine(out); err != nil {
			return ignoreDisconnect(err)
		}
	}
	return nil
}

func ignoreDisconnect(err error) error {
	if isDisconnect(err) {
		return nil
	}
	return err
}
