package command

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/castaway/internal/items"
	"github.com/lawnchairsociety/castaway/internal/player"
	"github.com/lawnchairsociety/castaway/internal/quest"
)

// ErrUnknownDestination is returned when a teleporter points at a room that
// does not exist in the current world.
var ErrUnknownDestination = errors.New("unknown teleport destination")

func executeCharge(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}

	t, err := ctx.Player.Teleporter()
	if err != nil {
		return fail(err, "You don't have a teleporter!")
	}
	if err := t.Charge(ctx.Player.CurrentRoom.ID); err != nil {
		if errors.Is(err, items.ErrFixedDestination) {
			return fail(err, "This %s is already programmed for a fixed destination.", t.Name)
		}
		return err
	}

	ctx.Sayf("The %s is charged!", t.Name)
	ctx.notify(quest.ActionCharge, t.Name)
	return nil
}

// executeFire teleports the player to the teleporter's destination. The
// history is left alone. Arriving in the finale room starts the closing scene.
func executeFire(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}

	t, err := ctx.Player.Teleporter()
	if err != nil {
		return fail(err, "You don't have a teleporter!")
	}
	dest := t.Destination()
	if dest == "" {
		return fail(player.ErrNotCharged, "The %s is not charged!", t.Name)
	}
	room := ctx.World.GetRoom(dest)
	if room == nil {
		return fail(fmt.Errorf("%w: %s", ErrUnknownDestination, dest), "The %s hums, but nothing happens.", t.Name)
	}

	ctx.Player.Teleport(room)
	if hazard(ctx, room) {
		return nil
	}

	if !startFinale(ctx) {
		ctx.Say("You are teleported!")
	}
	ctx.Say(room.Describe())
	ctx.notify(quest.ActionUse, t.Name)
	ctx.notifyArrival(room)
	return nil
}

// startFinale arms the closing scene if the player stands in the finale
// room. The finale character is fetched from wherever it wandered.
func startFinale(ctx *Context) bool {
	f := ctx.World.Finale
	room := ctx.Player.CurrentRoom
	if f == nil || room.ID != f.Room {
		return false
	}

	n, ok := ctx.World.FindNPCByID(f.Character)
	if !ok {
		return false
	}
	if n.Location() != room {
		n.MoveTo(room)
	}
	n.SetDialogue(f.Prompt)

	ctx.Player.FinaleArmed = true
	ctx.Player.AwaitingAnswer = false
	if f.Arrival != "" {
		ctx.Say(f.Arrival)
	}
	return true
}
