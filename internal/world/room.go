package world

import (
	"fmt"
	"strings"

	"github.com/lawnchairsociety/castaway/internal/items"
	"github.com/lawnchairsociety/castaway/internal/names"
	"github.com/lawnchairsociety/castaway/internal/npc"
)

// Hazard marks a room whose entry ends the game.
type Hazard struct {
	Message string
}

type Room struct {
	ID          string
	Name        string
	Description string
	Image       string // optional visual asset reference
	Hazard      *Hazard
	Items       *items.Collection
	exits       [numDirections]*Room
	npcs        []*npc.NPC
}

func NewRoom(id, name, description string) *Room {
	return &Room{
		ID:          id,
		Name:        name,
		Description: description,
		Items:       items.NewCollection(),
	}
}

// SetExit points the exit in direction d at room; nil removes the exit.
func (r *Room) SetExit(d Direction, room *Room) {
	r.exits[d] = room
}

// Exit returns the room in direction d, or nil when there is no exit.
func (r *Room) Exit(d Direction) *Room {
	return r.exits[d]
}

// Exits returns the full exit mapping. All six directions are present;
// absent exits map to nil.
func (r *Room) Exits() map[Direction]*Room {
	m := make(map[Direction]*Room, numDirections)
	for _, d := range Directions {
		m[d] = r.exits[d]
	}
	return m
}

// OpenExits returns the directions that lead somewhere, in display order.
func (r *Room) OpenExits() []Direction {
	var open []Direction
	for _, d := range Directions {
		if r.exits[d] != nil {
			open = append(open, d)
		}
	}
	return open
}

// LeadsTo reports whether any exit of r reaches target.
func (r *Room) LeadsTo(target *Room) bool {
	for _, dest := range r.exits {
		if dest == target && dest != nil {
			return true
		}
	}
	return false
}

func (r *Room) GetID() string {
	return r.ID
}

func (r *Room) GetName() string {
	return r.Name
}

// Neighbors returns the rooms behind open exits, in display order.
func (r *Room) Neighbors() []npc.Location {
	var rooms []npc.Location
	for _, d := range Directions {
		if dest := r.exits[d]; dest != nil {
			rooms = append(rooms, dest)
		}
	}
	return rooms
}

// AddNPC adds an NPC to this room
func (r *Room) AddNPC(n *npc.NPC) {
	r.npcs = append(r.npcs, n)
}

// RemoveNPC removes an NPC from this room
func (r *Room) RemoveNPC(n *npc.NPC) {
	for i, roomNPC := range r.npcs {
		if roomNPC == n {
			r.npcs = append(r.npcs[:i], r.npcs[i+1:]...)
			return
		}
	}
}

// FindNPC finds an NPC in the room by name (case-insensitive)
func (r *Room) FindNPC(name string) (*npc.NPC, bool) {
	key := names.Key(name)
	for _, n := range r.npcs {
		if names.Key(n.GetName()) == key {
			return n, true
		}
	}
	return nil, false
}

// NPCs returns a copy of the NPCs list in arrival order
func (r *Room) NPCs() []*npc.NPC {
	out := make([]*npc.NPC, len(r.npcs))
	copy(out, r.npcs)
	return out
}

// NPCNames returns the names of the NPCs present
func (r *Room) NPCNames() []string {
	out := make([]string, len(r.npcs))
	for i, n := range r.npcs {
		out[i] = n.GetName()
	}
	return out
}

// Describe renders the room summary: the description, the open exits and
// the characters present. Items are left to the look command.
func (r *Room) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nYou are in %s\n", r.Description)

	if open := r.OpenExits(); len(open) > 0 {
		fmt.Fprintf(&sb, "Exits: %s\n", JoinDirections(open))
	}

	if len(r.npcs) > 0 {
		sb.WriteString("\nYou see:\n")
		for _, n := range r.npcs {
			fmt.Fprintf(&sb, "    - %s\n", n)
		}
	}

	return sb.String()
}
