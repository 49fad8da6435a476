package world

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/castaway/internal/npc"
)

var (
	// ErrNoExit is returned when a room has no exit in the requested direction.
	ErrNoExit = errors.New("no exit in that direction")
	// ErrCharacterNotFound is returned when no character with the name is present.
	ErrCharacterNotFound = errors.New("character not found")
)

// World is the room graph plus the characters living in it.
type World struct {
	Rooms  map[string]*Room
	order  []string
	npcs   []*npc.NPC
	Start  *Room
	Finale *Finale
}

// Finale describes the closing scene: firing a teleporter into Room makes
// the named character ask Prompt; answering yes wins the game.
type Finale struct {
	Room      string // room id
	Character string // character id
	Arrival   string // narration when the player arrives
	Prompt    string
	Accept    string
	Decline   string
}

func NewWorld() *World {
	return &World{Rooms: make(map[string]*Room)}
}

// AddRoom registers a room. Rooms keep their registration order.
func (w *World) AddRoom(room *Room) error {
	if _, exists := w.Rooms[room.ID]; exists {
		return fmt.Errorf("duplicate room id %q", room.ID)
	}
	w.Rooms[room.ID] = room
	w.order = append(w.order, room.ID)
	return nil
}

func (w *World) GetRoom(id string) *Room {
	return w.Rooms[id]
}

// AllRooms returns the rooms in registration order.
func (w *World) AllRooms() []*Room {
	rooms := make([]*Room, 0, len(w.order))
	for _, id := range w.order {
		rooms = append(rooms, w.Rooms[id])
	}
	return rooms
}

// AddNPC places a character in room and registers it with the world.
func (w *World) AddNPC(n *npc.NPC, room *Room) {
	n.PlaceIn(room)
	w.npcs = append(w.npcs, n)
}

// NPCs returns every character in registration order.
func (w *World) NPCs() []*npc.NPC {
	out := make([]*npc.NPC, len(w.npcs))
	copy(out, w.npcs)
	return out
}

// FindNPCByID returns the character with the given id.
func (w *World) FindNPCByID(id string) (*npc.NPC, bool) {
	for _, n := range w.npcs {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// UsedDirections returns every direction used by at least one exit in the
// world, in display order.
func (w *World) UsedDirections() []Direction {
	var used [numDirections]bool
	for _, room := range w.Rooms {
		for _, d := range room.OpenExits() {
			used[d] = true
		}
	}
	var dirs []Direction
	for _, d := range Directions {
		if used[d] {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// IsUsedDirection reports whether any room has an exit in direction d.
func (w *World) IsUsedDirection(d Direction) bool {
	for _, used := range w.UsedDirections() {
		if used == d {
			return true
		}
	}
	return false
}

// Validate checks that every exit points at a registered room and that the
// start room is set.
func (w *World) Validate() error {
	if w.Start == nil {
		return errors.New("no start room")
	}
	for _, room := range w.AllRooms() {
		for _, d := range room.OpenExits() {
			dest := room.Exit(d)
			if w.Rooms[dest.ID] != dest {
				return fmt.Errorf("room %q: exit %s leads outside the world", room.ID, d)
			}
		}
	}
	return nil
}
