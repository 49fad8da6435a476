// Package command parses player input and dispatches it to the verb
// handlers that act on the world and the player.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lawnchairsociety/castaway/internal/names"
)

var (
	// ErrUnknownCommand is returned for a verb that is not registered.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrArityMismatch is returned when a verb gets the wrong number of arguments.
	ErrArityMismatch = errors.New("wrong number of arguments")
	// ErrInvalidDirection is returned for a direction that is not recognized
	// or not used anywhere in the world.
	ErrInvalidDirection = errors.New("invalid direction")
)

// Failure is a handler error carrying the text shown to the player.
// It unwraps to the sentinel describing the failure.
type Failure struct {
	Err error
	Msg string
}

func (f *Failure) Error() string { return f.Msg }
func (f *Failure) Unwrap() error { return f.Err }

func fail(err error, format string, args ...any) error {
	return &Failure{Err: err, Msg: fmt.Sprintf(format, args...)}
}

// Command represents a parsed command line
type Command struct {
	Name  string   // the verb as typed
	Args  []string // tokens after the verb
	Words []string // every token, verb first
	Raw   string

	// Set by the dispatcher from the verb's definition.
	Expected int
	Variadic bool
	Usage    string
}

// ParseCommand splits input on whitespace. It returns nil for a blank line.
func ParseCommand(input string) *Command {
	words := strings.Fields(input)
	if len(words) == 0 {
		return nil
	}
	return &Command{
		Name:  words[0],
		Args:  words[1:],
		Words: words,
		Raw:   strings.TrimSpace(input),
	}
}

// Arg returns the i-th argument or "".
func (c *Command) Arg(i int) string {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return ""
}

// CheckArity validates the argument count against the definition. The
// message depends on whether the verb takes none, one or several arguments.
func (c *Command) CheckArity() error {
	n := len(c.Args)
	verb := names.Key(c.Name)

	if c.Variadic {
		if n >= c.Expected {
			return nil
		}
		return fail(ErrArityMismatch, "Error: the command '%s' needs at least %d parameter(s).\n   Usage: %s",
			verb, c.Expected, c.Usage)
	}
	if n == c.Expected {
		return nil
	}

	switch c.Expected {
	case 0:
		return fail(ErrArityMismatch, "Error: the command '%s' takes no parameter.\n   Usage: %s",
			verb, c.Usage)
	case 1:
		return fail(ErrArityMismatch, "Error: the command '%s' needs exactly 1 parameter.\n   Usage: %s",
			verb, c.Usage)
	default:
		return fail(ErrArityMismatch, "Error: the command '%s' needs exactly %d parameters (got %d).\n   Usage: %s",
			verb, c.Expected, n, c.Usage)
	}
}
