package command

func executeQuit(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}
	ctx.Say(ctx.Text.GetFarewell(ctx.Player.Name))
	ctx.Controller.End(OutcomeQuit)
	return nil
}

// executeRestart throws the current world and player away and starts over
// from the loaded content.
func executeRestart(ctx *Context, cmd *Command) error {
	if err := cmd.CheckArity(); err != nil {
		return err
	}
	ctx.Say(ctx.Text.GetRestart())
	opening, err := ctx.Controller.Restart()
	if err != nil {
		return err
	}
	ctx.Say(opening)
	return nil
}
