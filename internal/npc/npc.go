package npc

import (
	"fmt"

	"github.com/lawnchairsociety/castaway/internal/items"
	"github.com/lawnchairsociety/castaway/internal/names"
)

// Location is the part of a room a character needs: identity, the rooms its
// exits lead to, and the roster it appears in.
type Location interface {
	GetID() string
	GetName() string
	Neighbors() []Location
	AddNPC(n *NPC)
	RemoveNPC(n *NPC)
}

// Rand is the random source used for wandering. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Diagnostics receives debug records about character behaviour.
type Diagnostics interface {
	Emit(msg string)
}

// Reaction is how a character responds to being handed a specific item.
type Reaction struct {
	Reply         string   // spoken once when the item is received
	Dialogue      []string // replaces the character's dialogue
	AcceptDropped bool     // also reacts when the item is dropped nearby
}

// NPC represents a non-player character
type NPC struct {
	ID          string
	Name        string
	Description Text
	Dialogue    Lines
	CanMove     bool
	Verb        string              // speech verb; "says" when empty
	Holdings    *items.Collection   // items handed to the character
	Reactions   map[string]Reaction // keyed by folded item name
	location    Location
}

// NewNPC creates a new NPC with the given properties
func NewNPC(id, name string, description Text, dialogue Lines, canMove bool) *NPC {
	return &NPC{
		ID:          id,
		Name:        name,
		Description: description,
		Dialogue:    dialogue,
		CanMove:     canMove,
		Holdings:    items.NewCollection(),
		Reactions:   make(map[string]Reaction),
	}
}

// GetName returns the NPC's name
func (n *NPC) GetName() string {
	return n.Name
}

// Location returns the room the NPC is in, or nil before placement.
func (n *NPC) Location() Location {
	return n.location
}

// PlaceIn sets the back-reference and adds the NPC to loc's roster. It is
// used for initial placement; MoveTo handles relocation.
func (n *NPC) PlaceIn(loc Location) {
	n.location = loc
	loc.AddNPC(n)
}

// MoveTo relocates the NPC, updating both rosters and the back-reference.
func (n *NPC) MoveTo(loc Location) {
	if n.location != nil {
		n.location.RemoveNPC(n)
	}
	n.location = loc
	loc.AddNPC(n)
}

// DescriptionHere returns the description for the NPC's current location.
func (n *NPC) DescriptionHere() string {
	return n.Description.For(n.locationID())
}

// String returns "Name : description".
func (n *NPC) String() string {
	return fmt.Sprintf("%s : %s", n.Name, n.DescriptionHere())
}

// Speak returns the NPC's next line and rotates it to the back of the queue.
func (n *NPC) Speak() string {
	line, ok := n.Dialogue.Next(n.locationID())
	if !ok {
		return fmt.Sprintf("%s has nothing more to say.", n.Name)
	}
	return n.Say(line)
}

// Say renders line as spoken by the NPC, e.g. "Monkeys say: 'Ook!'".
func (n *NPC) Say(line string) string {
	verb := n.Verb
	if verb == "" {
		verb = "says"
	}
	return fmt.Sprintf("%s %s: '%s'", n.Name, verb, line)
}

// SetDialogue replaces the dialogue with a flat queue.
func (n *NPC) SetDialogue(lines ...string) {
	n.Dialogue = FlatLines(lines...)
}

// AddReaction registers a reaction to receiving the named item.
func (n *NPC) AddReaction(itemName string, r Reaction) {
	n.Reactions[names.Key(itemName)] = r
}

// ReactionTo returns the NPC's reaction to the named item, if any.
func (n *NPC) ReactionTo(itemName string) (Reaction, bool) {
	r, ok := n.Reactions[names.Key(itemName)]
	return r, ok
}

// Wander gives the NPC a chance to move to a neighbouring room. It does
// nothing when the NPC cannot move or shares a room with the player.
// Otherwise it stays with probability one half, and moves to a uniformly
// chosen exit otherwise. It reports whether the NPC moved.
func (n *NPC) Wander(playerLoc Location, rng Rand, diag Diagnostics) bool {
	if !n.CanMove || n.location == nil {
		return false
	}
	if playerLoc != nil && playerLoc == n.location {
		return false
	}

	if rng.Intn(2) == 0 {
		diag.Emit(fmt.Sprintf("DEBUG: %s decides to stay put.", n.Name))
		return false
	}

	exits := n.location.Neighbors()
	if len(exits) == 0 {
		diag.Emit(fmt.Sprintf("DEBUG: %s cannot move (no exits).", n.Name))
		return false
	}

	from := n.location
	to := exits[rng.Intn(len(exits))]
	n.MoveTo(to)
	diag.Emit(fmt.Sprintf("DEBUG: %s moves from '%s' to '%s'.", n.Name, from.GetName(), to.GetName()))
	return true
}

func (n *NPC) locationID() string {
	if n.location == nil {
		return ""
	}
	return n.location.GetID()
}
