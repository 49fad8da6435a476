package command

import (
	"github.com/lawnchairsociety/castaway/internal/quest"
	"github.com/lawnchairsociety/castaway/internal/world"
)

func executeTalk(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}

	name := cmd.Arg(0)
	room := ctx.Player.CurrentRoom
	n, ok := room.FindNPC(name)
	if !ok {
		if len(room.NPCs()) == 0 {
			return fail(world.ErrCharacterNotFound, "%s is not here.\n   There is nobody to talk to here.", name)
		}
		return fail(world.ErrCharacterNotFound, "%s is not here.\n   Characters present: %s", name, listOr(room.NPCNames(), ""))
	}

	ctx.Say(n.Speak())
	ctx.Player.Stats.RecordConversation(n.Name)

	if f := ctx.World.Finale; f != nil && ctx.Player.FinaleArmed && n.ID == f.Character && room.ID == f.Room {
		ctx.Player.AwaitingAnswer = true
	}

	ctx.notify(quest.ActionTalk, n.Name)
	return nil
}

// finalePending reports whether the finale question is waiting for an answer.
func finalePending(ctx *Context) bool {
	f := ctx.World.Finale
	p := ctx.Player
	return f != nil && p.FinaleArmed && p.AwaitingAnswer && p.CurrentRoom.ID == f.Room
}

func executeYes(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}
	if !finalePending(ctx) {
		ctx.Say(ctx.Text.GetNothingToConfirm())
		return nil
	}

	if accept := ctx.World.Finale.Accept; accept != "" {
		ctx.Say(accept)
	}
	ctx.Say(ctx.Text.GetVictory())
	ctx.Controller.End(OutcomeVictory)
	return nil
}

func executeNo(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}
	if !finalePending(ctx) {
		ctx.Say(ctx.Text.GetNothingToRefuse())
		return nil
	}

	if decline := ctx.World.Finale.Decline; decline != "" {
		ctx.Say(decline)
	}
	ctx.Player.AwaitingAnswer = false
	return nil
}
