package game

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnchairsociety/castaway/internal/command"
	"github.com/lawnchairsociety/castaway/internal/journal"
	"github.com/lawnchairsociety/castaway/internal/quest"
	"github.com/lawnchairsociety/castaway/internal/text"
	"github.com/lawnchairsociety/castaway/internal/world"
)

const smallWorld = `
start: beach
rooms:
  - id: beach
    name: Beach
    description: a beach.
    exits: { N: forest }
    items: [rock, shell]
  - id: forest
    name: Forest
    description: a forest.
items:
  rock:
    name: rock
    description: a big rock
    weight: 6
  shell:
    name: shell
    description: a shell
    weight: 0.5
`

func newSmallSession(t *testing.T) *Session {
	t.Helper()
	content, err := world.ParseContent([]byte(smallWorld))
	require.NoError(t, err)
	s, err := NewSession(content, nil, nil, Options{PlayerName: "Tester", Seed: 1})
	require.NoError(t, err)
	return s
}

func loadIsland(t *testing.T) (*world.Content, *quest.Registry, *text.Text) {
	t.Helper()
	content, err := world.LoadContent(filepath.Join("..", "..", "data", "world.yaml"))
	require.NoError(t, err)
	reg := quest.NewRegistry()
	require.NoError(t, reg.LoadFromYAML(filepath.Join("..", "..", "data", "quests.yaml")))
	txt, err := text.Load(filepath.Join("..", "..", "data", "text.yaml"))
	require.NoError(t, err)
	return content, reg, txt
}

func TestStartShowsWelcomeAndRoom(t *testing.T) {
	s := newSmallSession(t)
	opening := s.Start()
	assert.Contains(t, opening, "Welcome Tester")
	assert.Contains(t, opening, "You are in a beach.")
	assert.Contains(t, opening, "Exits: N")
	assert.NotEmpty(t, s.ID())
}

func TestOneWayPassageScenario(t *testing.T) {
	s := newSmallSession(t)

	s.Process("go N")
	assert.Equal(t, "forest", s.Player().CurrentRoom.ID)

	out := s.Process("back")
	assert.Contains(t, out, "one way")
	assert.Equal(t, "forest", s.Player().CurrentRoom.ID)
	require.Len(t, s.Player().History(), 1)
	assert.Equal(t, "beach", s.Player().History()[0].ID)
}

func TestOverCapacityScenario(t *testing.T) {
	s := newSmallSession(t)

	out := s.Process("take rock")
	assert.Contains(t, out, "You cannot carry 'rock'")
	assert.Equal(t, 0, s.Player().Inventory.Len())
	assert.True(t, s.World().GetRoom("beach").Items.Has("rock"))
}

func TestCapacityNeverExceeded(t *testing.T) {
	s := newSmallSession(t)
	for _, line := range []string{"take shell", "take rock", "drop shell", "take rock", "take shell"} {
		s.Process(line)
		assert.LessOrEqual(t, s.Player().Inventory.Weight(), s.Player().Capacity(), "after %q", line)
	}
}

func TestUnknownCommandLeavesStateAlone(t *testing.T) {
	s := newSmallSession(t)
	out := s.Process("jump")
	assert.Contains(t, out, "Command 'jump' not recognized")
	assert.Equal(t, "beach", s.Player().CurrentRoom.ID)
	assert.False(t, s.Finished())
}

func TestQuitEndsSession(t *testing.T) {
	s := newSmallSession(t)
	out := s.Process("quit")
	assert.Contains(t, out, "Thank you Tester for playing")
	assert.True(t, s.Finished())
	assert.Equal(t, command.OutcomeQuit, s.Outcome())
	assert.Empty(t, s.Process("look"), "no turn after the session ended")
}

func TestRestartRebuildsWorld(t *testing.T) {
	s := newSmallSession(t)
	s.Process("take shell")
	s.Process("go N")
	oldWorld := s.World()

	out := s.Process("restart")
	assert.Contains(t, out, "Restarting the game...")
	assert.Contains(t, out, "Welcome Tester")
	assert.NotSame(t, oldWorld, s.World())
	assert.Equal(t, "beach", s.Player().CurrentRoom.ID)
	assert.Equal(t, 0, s.Player().Inventory.Len())
	assert.True(t, s.World().GetRoom("beach").Items.Has("shell"))
	assert.Empty(t, s.Player().History())
}

func TestDebugEnabledSurfacesWanderRecords(t *testing.T) {
	content, reg, txt := loadIsland(t)
	s, err := NewSession(content, reg, txt, Options{PlayerName: "Tester", Seed: 7, Wander: true, Debug: true})
	require.NoError(t, err)

	out := s.Process("go O")
	assert.Contains(t, out, "DEBUG: Jacob")
}

func TestDebugMutedBuffersRecords(t *testing.T) {
	content, reg, txt := loadIsland(t)
	s, err := NewSession(content, reg, txt, Options{PlayerName: "Tester", Seed: 7, Wander: true})
	require.NoError(t, err)

	out := s.Process("go O")
	assert.NotContains(t, out, "DEBUG:")
	assert.Equal(t, 1, s.Diagnostics().Pending())

	out = s.Process("debug")
	assert.Contains(t, out, "DEBUG: ON")
	assert.Contains(t, out, "DEBUG: Jacob")
	assert.Equal(t, 0, s.Diagnostics().Pending())
}

func TestForestIsDeadly(t *testing.T) {
	content, reg, txt := loadIsland(t)
	s, err := NewSession(content, reg, txt, Options{PlayerName: "Tester", Seed: 1})
	require.NoError(t, err)

	out := s.Process("go north")
	assert.Contains(t, out, "The forest never lets anyone out.")
	assert.Contains(t, out, "GAME OVER")
	assert.True(t, s.Finished())
	assert.Equal(t, command.OutcomeDefeat, s.Outcome())
}

// TestIslandWalkthrough plays the bundled island from start to victory.
func TestIslandWalkthrough(t *testing.T) {
	content, reg, txt := loadIsland(t)
	s, err := NewSession(content, reg, txt, Options{PlayerName: "Captain", Seed: 1})
	require.NoError(t, err)

	s.Process("talk Jacob")
	s.Process("go O")
	out := s.Process("go N")
	assert.Contains(t, out, "Quest completed: First steps")
	assert.Contains(t, out, "You received: Medium backpack")
	assert.Equal(t, 10.0, s.Player().Capacity())

	s.Process("take bananas")
	s.Process("go N")
	s.Process("go U")
	out = s.Process("give bananas")
	assert.Contains(t, out, "You give 'bananas' to Monkeys.")
	assert.Contains(t, out, "Quest completed: Monkey business")
	assert.Equal(t, 20.0, s.Player().Capacity())

	s.Process("take treasure")
	s.Process("go S")
	s.Process("go D")
	s.Process("go S")
	out = s.Process("take anchor")
	assert.Contains(t, out, "Quest completed: Homeward")
	assert.Contains(t, out, "You obtain the beamer! It will always bring you back to Beach.")
	assert.Equal(t, []string{"Medium backpack", "Large backpack", "Beamer"}, s.Player().Rewards())

	out = s.Process("charge")
	assert.Contains(t, out, "already programmed")

	out = s.Process("fire")
	assert.Contains(t, out, "Jacob seems to want to talk")
	assert.Equal(t, "beach", s.Player().CurrentRoom.ID)

	out = s.Process("talk jacob")
	assert.Contains(t, out, "Are you ready to set sail again?")

	out = s.Process("no")
	assert.Contains(t, out, "come back to me")
	assert.False(t, s.Finished())

	s.Process("talk jacob")
	out = s.Process("yes")
	assert.Contains(t, out, "You raise the anchor")
	assert.True(t, s.Finished())
	assert.Equal(t, command.OutcomeVictory, s.Outcome())
}

// TestBananasGivenBeforeFirstSteps feeds the monkeys before Monkey business
// unlocks. The early gift still counts and the island stays winnable.
func TestBananasGivenBeforeFirstSteps(t *testing.T) {
	content, reg, txt := loadIsland(t)
	s, err := NewSession(content, reg, txt, Options{PlayerName: "Captain", Seed: 1})
	require.NoError(t, err)

	s.Process("go O")
	s.Process("go N")
	s.Process("take bananas")
	s.Process("go N")
	s.Process("go U")
	out := s.Process("give bananas")
	assert.Contains(t, out, "Monkeys say: 'Thank you, you may now continue your adventure.'")
	assert.NotContains(t, out, "Quest completed")
	p, _ := s.Quests().Log().Get("monkey_business")
	assert.Equal(t, quest.StatusLocked, p.Status)

	s.Process("go S")
	s.Process("go D")
	s.Process("go S")
	s.Process("go E")
	out = s.Process("talk Jacob")
	assert.Contains(t, out, "Quest completed: First steps")
	assert.Contains(t, out, "Quest completed: Monkey business")
	assert.Equal(t, 20.0, s.Player().Capacity())
	p, _ = s.Quests().Log().Get("homeward")
	assert.Equal(t, quest.StatusActive, p.Status)

	s.Process("go O")
	s.Process("take anchor")
	s.Process("go N")
	s.Process("go N")
	s.Process("go U")
	out = s.Process("take treasure")
	assert.Contains(t, out, "Quest completed: Homeward")

	out = s.Process("fire")
	assert.Contains(t, out, "Jacob seems to want to talk")
	s.Process("talk jacob")
	s.Process("yes")
	assert.True(t, s.Finished())
	assert.Equal(t, command.OutcomeVictory, s.Outcome())
}

func TestJournalRecordsSession(t *testing.T) {
	j, err := journal.Open(journal.DefaultConfig(filepath.Join(t.TempDir(), "journal.db")))
	require.NoError(t, err)
	defer j.Close()

	content, err := world.ParseContent([]byte(smallWorld))
	require.NoError(t, err)
	s, err := NewSession(content, nil, nil, Options{PlayerName: "Tester", Seed: 1, Journal: j})
	require.NoError(t, err)

	s.Process("take shell")
	s.Process("go N")
	s.Process("quit")
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	events, err := j.Events(context.Background(), s.ID())
	require.NoError(t, err)

	var kinds []string
	for _, e := range events {
		kinds = append(kinds, e.Kind+":"+e.Subject)
	}
	assert.Equal(t, []string{
		"command:take shell",
		"take:shell",
		"command:go N",
		"visit:forest",
		"command:quit",
	}, kinds)

	outcome, err := j.Outcome(context.Background(), s.ID())
	require.NoError(t, err)
	assert.Equal(t, "quit", outcome)
}
