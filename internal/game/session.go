// Package game runs one player's session: it owns the world and the player,
// feeds command lines to the dispatcher and collects the resulting text.
package game

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/lawnchairsociety/castaway/internal/command"
	"github.com/lawnchairsociety/castaway/internal/diag"
	"github.com/lawnchairsociety/castaway/internal/journal"
	"github.com/lawnchairsociety/castaway/internal/logger"
	"github.com/lawnchairsociety/castaway/internal/player"
	"github.com/lawnchairsociety/castaway/internal/quest"
	"github.com/lawnchairsociety/castaway/internal/text"
	"github.com/lawnchairsociety/castaway/internal/world"
)

// OutcomeAbandoned is recorded for sessions closed before they ended.
const OutcomeAbandoned command.Outcome = "abandoned"

// Options tune a session.
type Options struct {
	PlayerName     string
	Capacity       float64 // 0 selects player.DefaultCapacity
	Seed           int64   // 0 selects a time-based seed
	Wander         bool
	Debug          bool // surface diagnostics from the first turn
	DiagBufferSize int

	// Journal, when set, receives every command and progress event.
	Journal *journal.Journal
}

// Session is a single game. It is not safe for concurrent use; each
// connection gets its own.
type Session struct {
	id       string
	content  *world.Content
	quests   *quest.Registry
	text     *text.Text
	opts     Options
	registry *command.Registry
	diag     *diag.Channel
	rng      *rand.Rand
	log      *slog.Logger

	ctx      *command.Context
	manager  *quest.Manager
	recorder *journal.SessionRecorder
	out      bytes.Buffer

	finished bool
	outcome  command.Outcome
}

// NewSession builds a fresh world from content and places the player in it.
// quests and txt may be nil.
func NewSession(content *world.Content, quests *quest.Registry, txt *text.Text, opts Options) (*Session, error) {
	if quests == nil {
		quests = quest.NewRegistry()
	}
	if txt == nil {
		txt = text.Default()
	}
	if opts.Capacity <= 0 {
		opts.Capacity = player.DefaultCapacity
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		content:  content,
		quests:   quests,
		text:     txt,
		opts:     opts,
		registry: command.NewDefaultRegistry(),
		diag:     diag.New(opts.Debug, opts.DiagBufferSize),
		rng:      rand.New(rand.NewSource(seed)),
	}
	s.diag.SetSink(func(msg string) {
		s.out.WriteString(msg + "\n")
	})

	if opts.Journal != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rec, err := opts.Journal.StartSession(ctx, opts.PlayerName)
		cancel()
		if err != nil {
			logger.Warning("Journal unavailable, playing without it", "error", err)
		} else {
			s.recorder = rec
			s.id = rec.ID()
		}
	}
	if s.id == "" {
		s.id = uuid.New().String()
	}
	s.log = logger.With("session", s.id)

	if err := s.reset(); err != nil {
		return nil, err
	}
	s.log.Info("Session started", "player", s.ctx.Player.Name, "seed", seed)
	return s, nil
}

// reset builds a new world, player and quest log.
func (s *Session) reset() error {
	w, err := s.content.Build()
	if err != nil {
		return fmt.Errorf("failed to build world: %w", err)
	}
	p, err := player.NewPlayer(s.opts.PlayerName, w.Start, s.opts.Capacity)
	if err != nil {
		return err
	}

	s.manager = quest.NewManager(s.quests, s)
	var tracker quest.Tracker = s.manager
	if s.recorder != nil {
		tracker = quest.Fanout{s.manager, s.recorder}
	}

	s.ctx = &command.Context{
		World:      w,
		Player:     p,
		Registry:   s.registry,
		Diag:       s.diag,
		Tracker:    tracker,
		Quests:     s.manager,
		Text:       s.text,
		Rand:       s.rng,
		Wander:     s.opts.Wander,
		Controller: s,
		Out:        &s.out,
	}
	s.finished = false
	s.outcome = ""
	return nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Player returns the current player.
func (s *Session) Player() *player.Player {
	return s.ctx.Player
}

// World returns the current world.
func (s *Session) World() *world.World {
	return s.ctx.World
}

// Quests returns the current quest log.
func (s *Session) Quests() *quest.Manager {
	return s.manager
}

// Diagnostics returns the session's debug channel.
func (s *Session) Diagnostics() *diag.Channel {
	return s.diag
}

// Finished reports whether the session has ended.
func (s *Session) Finished() bool {
	return s.finished
}

// Outcome returns how the session ended, or "" while it runs.
func (s *Session) Outcome() command.Outcome {
	return s.outcome
}

// Start returns the welcome text and the first room description.
func (s *Session) Start() string {
	return s.opening()
}

func (s *Session) opening() string {
	return s.text.GetWelcome(s.ctx.Player.Name) + "\n" + s.ctx.World.Start.Describe()
}

// Process runs one command line and returns everything it printed. Lines
// arriving after the session ended are ignored.
func (s *Session) Process(line string) string {
	if s.finished {
		return ""
	}
	s.out.Reset()

	if s.recorder != nil {
		if err := s.recorder.RecordCommand(line); err != nil {
			s.log.Warn("Failed to journal command", "error", err)
		}
	}

	if err := s.registry.Dispatch(s.ctx, line); err != nil {
		s.log.Debug("Command failed", "line", line, "error", err)
		s.out.WriteString(err.Error() + "\n")
	}
	return s.out.String()
}

// End implements command.Controller.
func (s *Session) End(outcome command.Outcome) {
	s.finished = true
	s.outcome = outcome
	s.log.Info("Session ended", "outcome", outcome, "summary", s.ctx.Player.Stats.Summary())
}

// Restart implements command.Controller.
func (s *Session) Restart() (string, error) {
	if err := s.reset(); err != nil {
		return "", err
	}
	if s.recorder != nil {
		if err := s.recorder.RecordCommand("restart"); err != nil {
			s.log.Warn("Failed to journal restart", "error", err)
		}
	}
	s.log.Info("Session restarted")
	return s.opening(), nil
}

// Close stores the outcome and statistics in the journal. It is safe to
// call more than once.
func (s *Session) Close() error {
	if s.recorder == nil {
		return nil
	}
	outcome := s.outcome
	if outcome == "" {
		outcome = OutcomeAbandoned
	}
	err := s.recorder.End(string(outcome), s.summaryJSON())
	s.recorder = nil
	if tracker, ok := s.ctx.Tracker.(quest.Fanout); ok {
		s.ctx.Tracker = tracker[0]
	}
	return err
}

func (s *Session) summaryJSON() string {
	summary := struct {
		Player  string          `json:"player"`
		Rewards []string        `json:"rewards"`
		Stats   json.RawMessage `json:"stats"`
		Quests  json.RawMessage `json:"quests"`
	}{
		Player:  s.ctx.Player.Name,
		Rewards: s.ctx.Player.Rewards(),
		Stats:   json.RawMessage(s.ctx.Player.Stats.ToJSON()),
		Quests:  json.RawMessage(s.manager.Log().ToJSON()),
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return "{}"
	}
	return string(data)
}
