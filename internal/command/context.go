package command

import (
	"fmt"
	"io"

	"github.com/lawnchairsociety/castaway/internal/diag"
	"github.com/lawnchairsociety/castaway/internal/logger"
	"github.com/lawnchairsociety/castaway/internal/npc"
	"github.com/lawnchairsociety/castaway/internal/player"
	"github.com/lawnchairsociety/castaway/internal/quest"
	"github.com/lawnchairsociety/castaway/internal/text"
	"github.com/lawnchairsociety/castaway/internal/world"
)

// Outcome is how a session ended.
type Outcome string

const (
	OutcomeQuit    Outcome = "quit"
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
)

// Controller is the part of the session handlers cannot do themselves.
type Controller interface {
	// End marks the session finished.
	End(outcome Outcome)
	// Restart rebuilds the world and the player and returns the opening text.
	Restart() (string, error)
}

// Context is the state a handler works on. Tracker and Quests may be nil.
type Context struct {
	World      *world.World
	Player     *player.Player
	Registry   *Registry
	Diag       *diag.Channel
	Tracker    quest.Tracker
	Quests     *quest.Manager
	Text       *text.Text
	Rand       npc.Rand
	Wander     bool
	Controller Controller
	Out        io.Writer
}

// Say writes a line of output.
func (ctx *Context) Say(s string) {
	fmt.Fprintln(ctx.Out, s)
}

// Sayf writes a formatted line of output.
func (ctx *Context) Sayf(format string, args ...any) {
	fmt.Fprintf(ctx.Out, format+"\n", args...)
}

// notify tells the tracker about an action. Failures are logged and
// otherwise ignored; the action has already happened.
func (ctx *Context) notify(kind quest.ActionKind, subject string) {
	if ctx.Tracker == nil {
		return
	}
	if err := ctx.Tracker.RecordAction(kind, subject); err != nil {
		logger.Warning("Quest notification failed", "kind", kind, "subject", subject, "error", err)
	}
}

func (ctx *Context) notifyArrival(room *world.Room) {
	if ctx.Tracker == nil {
		return
	}
	if err := ctx.Tracker.RecordArrival(room.ID); err != nil {
		logger.Warning("Arrival notification failed", "room", room.ID, "error", err)
	}
}

// wander gives every character a chance to move.
func (ctx *Context) wander() {
	if !ctx.Wander || ctx.Rand == nil {
		return
	}
	for _, n := range ctx.World.NPCs() {
		n.Wander(ctx.Player.CurrentRoom, ctx.Rand, ctx.Diag)
	}
}
