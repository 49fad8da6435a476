package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lawnchairsociety/castaway/internal/quest"
)

// executeLook describes the room and, unlike the summary shown on arrival,
// the items lying in it.
func executeLook(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}

	room := ctx.Player.CurrentRoom
	ctx.Say(room.Describe())
	if room.Items.Len() == 0 {
		ctx.Say("There are no items here.")
	} else {
		ctx.Sayf("You see the following items:\n%s", room.Items.Describe())
	}
	return nil
}

func executeHelp(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(ctx.Text.GetHelpHeader())
	for _, def := range ctx.Registry.All() {
		fmt.Fprintf(&sb, "\n\t- %s : %s", def.Usage, def.Description)
	}
	if footer := ctx.Text.GetHelpFooter(); footer != "" {
		sb.WriteString("\n" + footer)
	}
	ctx.Say(sb.String())
	return nil
}

func executeQuests(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}
	if ctx.Quests == nil {
		ctx.Say("No quests are available.")
		return nil
	}
	ctx.Say(ctx.Quests.Overview())
	return nil
}

// executeQuest shows one quest. The title may span several words.
func executeQuest(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}
	if ctx.Quests == nil {
		ctx.Say("No quests are available.")
		return nil
	}

	title := strings.Join(cmd.Args, " ")
	details, err := ctx.Quests.Details(title)
	if errors.Is(err, quest.ErrQuestNotFound) {
		return fail(err, "Unknown quest '%s'. Type 'quests' to list them.", title)
	} else if err != nil {
		return err
	}
	ctx.Say(details)
	return nil
}

func executeRewards(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}

	rewards := ctx.Player.Rewards()
	if len(rewards) == 0 {
		ctx.Say("You have not earned any rewards yet.")
		return nil
	}
	lines := []string{"Rewards earned:"}
	for i, r := range rewards {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, r))
	}
	ctx.Say(strings.Join(lines, "\n"))
	return nil
}

// executeDebug toggles the diagnostic channel. Turning it on replays what
// was recorded while it was off.
func executeDebug(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}

	on, replay := ctx.Diag.Toggle()
	if !on {
		ctx.Say("DEBUG: OFF")
		return nil
	}
	ctx.Say("DEBUG: ON")
	if len(replay) > 0 {
		ctx.Say("--- Recorded DEBUG messages ---")
		ctx.Say(strings.Join(replay, "\n"))
	}
	return nil
}
