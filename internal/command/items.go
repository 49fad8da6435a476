package command

import (
	"errors"
	"strings"

	"github.com/lawnchairsociety/castaway/internal/items"
	"github.com/lawnchairsociety/castaway/internal/npc"
	"github.com/lawnchairsociety/castaway/internal/quest"
	"github.com/lawnchairsociety/castaway/internal/world"
)

func listOr(names []string, none string) string {
	if len(names) == 0 {
		return none
	}
	return strings.Join(names, ", ")
}

func executeTake(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}

	name := cmd.Arg(0)
	room := ctx.Player.CurrentRoom
	inv := ctx.Player.Inventory

	item, err := ctx.Player.Take(name)
	switch {
	case errors.Is(err, items.ErrItemNotFound):
		return fail(err, "There is no '%s' here.\n   Available items: %s", name, listOr(room.Items.Names(), "none"))
	case errors.Is(err, items.ErrOverCapacity):
		wanted, _ := room.Items.Find(name)
		return fail(err, "You cannot carry '%s'.\n   Current weight: %.1f kg / %g kg\n   Item weight: %.1f kg\n   Remaining capacity: %.1f kg",
			wanted.Name, inv.Weight(), inv.Capacity(), wanted.Weight, inv.Remaining())
	case err != nil:
		return err
	}

	ctx.Sayf("You took '%s'.\n   Current weight: %.1f kg / %g kg", item.Name, inv.Weight(), inv.Capacity())
	ctx.notify(quest.ActionTake, item.Name)
	return nil
}

func executeDrop(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}

	name := cmd.Arg(0)
	item, err := ctx.Player.Drop(name)
	if errors.Is(err, items.ErrItemNotFound) {
		return fail(err, "You don't have '%s' in your inventory.\n   Inventory: %s",
			name, listOr(ctx.Player.Inventory.Names(), "empty"))
	} else if err != nil {
		return err
	}

	ctx.Sayf("You dropped '%s'.", item.Name)
	reactToDrop(ctx, ctx.Player.CurrentRoom, item)
	return nil
}

// reactToDrop lets the first character that accepts dropped gifts of this
// item pick it up.
func reactToDrop(ctx *Context, room *world.Room, item *items.Item) {
	for _, n := range room.NPCs() {
		r, ok := n.ReactionTo(item.Name)
		if !ok || !r.AcceptDropped {
			continue
		}
		if _, err := items.Transfer(room.Items, n.Holdings, item.Name); err != nil {
			continue
		}
		ctx.Sayf("The %s you dropped is snatched up by %s!", item.Name, n.Name)
		applyReaction(ctx, n, r)
		ctx.notify(quest.ActionGive, item.Name)
		return
	}
}

func applyReaction(ctx *Context, n *npc.NPC, r npc.Reaction) {
	if r.Reply != "" {
		ctx.Say(n.Say(r.Reply))
	}
	if len(r.Dialogue) > 0 {
		n.SetDialogue(r.Dialogue...)
	}
}

func executeCheck(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}
	ctx.Say(ctx.Player.InventoryText())
	return nil
}

// executeGive hands an item to the first character in the room.
func executeGive(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}

	name := cmd.Arg(0)
	if !ctx.Player.Inventory.Has(name) {
		return fail(items.ErrItemNotFound, "You don't have '%s' in your inventory.", name)
	}
	present := ctx.Player.CurrentRoom.NPCs()
	if len(present) == 0 {
		return fail(world.ErrCharacterNotFound, "There is nobody here to give that to.")
	}
	target := present[0]

	item, err := ctx.Player.Give(name, target.Holdings)
	if err != nil {
		return fail(err, "%s cannot take the %s.", target.Name, name)
	}

	ctx.Sayf("You give '%s' to %s.", item.Name, target.Name)
	if r, ok := target.ReactionTo(item.Name); ok {
		applyReaction(ctx, target, r)
	}
	ctx.notify(quest.ActionGive, item.Name)
	return nil
}
