package command

import (
	"errors"
	"strings"

	"github.com/lawnchairsociety/castaway/internal/player"
	"github.com/lawnchairsociety/castaway/internal/world"
)

// executeGo normalizes the direction, checks it against the directions the
// world uses, then moves the player.
func executeGo(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}

	token := strings.TrimSpace(cmd.Arg(0))
	d, ok := world.ParseDirection(token)
	if !ok || !ctx.World.IsUsedDirection(d) {
		return fail(ErrInvalidDirection, "Invalid direction '%s'. Valid directions: %s",
			token, world.JoinDirections(ctx.World.UsedDirections()))
	}

	room, err := ctx.Player.Move(d)
	if err != nil {
		if errors.Is(err, world.ErrNoExit) {
			return fail(err, "There is no way '%s'!\n   Available exits: %s",
				d, world.JoinDirections(ctx.Player.CurrentRoom.OpenExits()))
		}
		return err
	}

	if !arrive(ctx, room) {
		return nil
	}
	ctx.wander()
	return nil
}

// executeBack returns to the previous location if a passage leads there.
func executeBack(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}

	room, err := ctx.Player.Back()
	switch {
	case errors.Is(err, player.ErrEmptyHistory):
		return fail(err, "You have no previous location. You are at the starting point.")
	case errors.Is(err, player.ErrIrreversible):
		return fail(err, "You cannot turn back! This passage only goes one way.")
	case err != nil:
		return err
	}

	if !arrive(ctx, room) {
		return nil
	}
	ctx.wander()
	return nil
}

// arrive prints what the player finds after walking into room and reports
// whether the session goes on.
func arrive(ctx *Context, room *world.Room) bool {
	if hazard(ctx, room) {
		return false
	}
	ctx.Say(room.Describe())
	if history := ctx.Player.HistoryText(); history != "" {
		ctx.Say(history)
	}
	ctx.notifyArrival(room)
	return true
}

// hazard ends the session when room is deadly.
func hazard(ctx *Context, room *world.Room) bool {
	if room.Hazard == nil {
		return false
	}
	ctx.Say(room.Hazard.Message)
	ctx.Say(ctx.Text.GetDefeat())
	ctx.Controller.End(OutcomeDefeat)
	return true
}
