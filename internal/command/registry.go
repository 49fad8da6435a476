package command

import (
	"fmt"

	"github.com/lawnchairsociety/castaway/internal/names"
)

// Handler executes a command. A returned error is reported to the player
// and means the turn changed nothing.
type Handler func(ctx *Context, cmd *Command) error

// Definition describes a single verb.
type Definition struct {
	Name        string
	Usage       string
	Description string
	Args        int  // expected argument count
	Variadic    bool // Args is a minimum rather than an exact count
	Handler     Handler
}

// Registry maps verbs to their definitions. Lookups are case-insensitive;
// help lists verbs in registration order.
type Registry struct {
	byName  map[string]*Definition
	ordered []*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Definition)}
}

// Define registers a verb. It panics on a missing handler or a duplicate
// name, both of which are programming errors.
func (r *Registry) Define(def Definition) {
	if def.Handler == nil {
		panic("command: handler must not be nil")
	}
	key := names.Key(def.Name)
	if key == "" {
		panic("command: command must have a name")
	}
	if _, exists := r.byName[key]; exists {
		panic(fmt.Sprintf("command: duplicate registration for %q", def.Name))
	}
	if def.Usage == "" {
		def.Usage = def.Name
	}
	d := def
	r.byName[key] = &d
	r.ordered = append(r.ordered, &d)
}

// Lookup finds a verb.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	d, ok := r.byName[names.Key(name)]
	return d, ok
}

// All returns the definitions in registration order.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Dispatch parses line, looks up its verb and runs the handler. A blank
// line is a no-op. Unknown verbs never reach a handler.
func (r *Registry) Dispatch(ctx *Context, line string) error {
	cmd := ParseCommand(line)
	if cmd == nil {
		return nil
	}

	def, ok := r.Lookup(cmd.Name)
	if !ok {
		return fail(ErrUnknownCommand, "Command '%s' not recognized. Type 'help' to see the available commands.", cmd.Name)
	}

	cmd.Expected = def.Args
	cmd.Variadic = def.Variadic
	cmd.Usage = def.Usage
	return def.Handler(ctx, cmd)
}

// NewDefaultRegistry returns a registry holding every game verb.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Define(Definition{Name: "help", Description: "show this help", Handler: executeHelp})
	r.Define(Definition{Name: "quit", Description: "quit the game", Handler: executeQuit})
	r.Define(Definition{Name: "go", Usage: "go <direction>", Args: 1,
		Description: "move in a direction (N, E, S, O, U, D)", Handler: executeGo})
	r.Define(Definition{Name: "back", Description: "return to the previous location", Handler: executeBack})
	r.Define(Definition{Name: "look", Description: "examine the current location", Handler: executeLook})
	r.Define(Definition{Name: "take", Usage: "take <item>", Args: 1,
		Description: "pick up an item", Handler: executeTake})
	r.Define(Definition{Name: "drop", Usage: "drop <item>", Args: 1,
		Description: "drop an item", Handler: executeDrop})
	r.Define(Definition{Name: "check", Description: "show your inventory", Handler: executeCheck})
	r.Define(Definition{Name: "talk", Usage: "talk <character>", Args: 1,
		Description: "talk to a character", Handler: executeTalk})
	r.Define(Definition{Name: "give", Usage: "give <item>", Args: 1,
		Description: "give an item to the character here", Handler: executeGive})
	r.Define(Definition{Name: "charge", Description: "charge your teleporter with this location", Handler: executeCharge})
	r.Define(Definition{Name: "fire", Description: "fire your teleporter", Handler: executeFire})
	r.Define(Definition{Name: "yes", Description: "answer yes to a question", Handler: executeYes})
	r.Define(Definition{Name: "no", Description: "answer no to a question", Handler: executeNo})
	r.Define(Definition{Name: "quests", Description: "list the quests", Handler: executeQuests})
	r.Define(Definition{Name: "quest", Usage: "quest <title>", Args: 1, Variadic: true,
		Description: "show the details of a quest", Handler: executeQuest})
	r.Define(Definition{Name: "rewards", Description: "list your rewards", Handler: executeRewards})
	r.Define(Definition{Name: "debug", Description: "toggle debug messages", Handler: executeDebug})
	r.Define(Definition{Name: "restart", Description: "start the game over", Handler: executeRestart})
	return r
}
