package player

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lawnchairsociety/castaway/internal/items"
	"github.com/lawnchairsociety/castaway/internal/world"
)

// DefaultCapacity is the starting carrying capacity in kg.
const DefaultCapacity = 5

var (
	// ErrEmptyHistory is returned by Back when no room has been visited yet.
	ErrEmptyHistory = errors.New("no previous room")
	// ErrIrreversible is returned by Back when the current room has no exit
	// leading to the previous one.
	ErrIrreversible = errors.New("passage is one-way")
	// ErrNoTeleporter is returned when the inventory holds no teleporter.
	ErrNoTeleporter = errors.New("no teleporter in inventory")
	// ErrNotCharged is returned when firing a teleporter with no destination.
	ErrNotCharged = errors.New("teleporter is not charged")
)

// Player is the single adventurer of a session.
type Player struct {
	Name        string
	CurrentRoom *world.Room
	Inventory   *items.Collection
	Stats       *Statistics

	// FinaleArmed is set once the closing scene has started.
	FinaleArmed bool
	// AwaitingAnswer is set while a yes/no question is pending.
	AwaitingAnswer bool

	history []*world.Room
	rewards []string
}

// NewPlayer creates a player standing in start.
func NewPlayer(name string, start *world.Room, capacity float64) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("player name must not be empty")
	}
	if start == nil {
		return nil, errors.New("player needs a start room")
	}
	p := &Player{
		Name:        name,
		CurrentRoom: start,
		Inventory:   items.NewLimitedCollection(capacity),
		Stats:       NewStatistics(),
	}
	p.Stats.RecordEntry(start.ID)
	return p, nil
}

// GetName returns the player's name
func (p *Player) GetName() string {
	return p.Name
}

// Move walks through the exit in direction d. The room left behind is
// pushed on the history.
func (p *Player) Move(d world.Direction) (*world.Room, error) {
	next := p.CurrentRoom.Exit(d)
	if next == nil {
		return nil, fmt.Errorf("%w: %s (available: %s)", world.ErrNoExit, d, world.JoinDirections(p.CurrentRoom.OpenExits()))
	}
	p.history = append(p.history, p.CurrentRoom)
	p.CurrentRoom = next
	p.Stats.Moves++
	p.Stats.RecordEntry(next.ID)
	return next, nil
}

// Back returns to the most recently left room, provided the current room has
// an exit leading there. On error the history is unchanged.
func (p *Player) Back() (*world.Room, error) {
	if len(p.history) == 0 {
		return nil, ErrEmptyHistory
	}
	previous := p.history[len(p.history)-1]
	if !p.CurrentRoom.LeadsTo(previous) {
		return nil, ErrIrreversible
	}
	p.history = p.history[:len(p.history)-1]
	p.CurrentRoom = previous
	p.Stats.Backtracks++
	p.Stats.RecordEntry(previous.ID)
	return previous, nil
}

// Teleport relocates the player without touching the history.
func (p *Player) Teleport(room *world.Room) {
	p.CurrentRoom = room
	p.Stats.Teleports++
	p.Stats.RecordEntry(room.ID)
}

// History returns the visited rooms, oldest first.
func (p *Player) History() []*world.Room {
	out := make([]*world.Room, len(p.history))
	copy(out, p.history)
	return out
}

// HistoryText lists the visited rooms, or "" when there are none.
func (p *Player) HistoryText() string {
	if len(p.history) == 0 {
		return ""
	}
	lines := []string{"You have already visited:"}
	for _, room := range p.history {
		lines = append(lines, "    - "+room.Description)
	}
	return strings.Join(lines, "\n")
}

// Take moves the named item from the current room into the inventory.
func (p *Player) Take(name string) (*items.Item, error) {
	item, err := items.Transfer(p.CurrentRoom.Items, p.Inventory, name)
	if err != nil {
		return nil, err
	}
	p.Stats.ItemsTaken++
	return item, nil
}

// Drop moves the named item from the inventory into the current room.
func (p *Player) Drop(name string) (*items.Item, error) {
	item, err := items.Transfer(p.Inventory, p.CurrentRoom.Items, name)
	if err != nil {
		return nil, err
	}
	p.Stats.ItemsDropped++
	return item, nil
}

// Give moves the named item from the inventory into dst.
func (p *Player) Give(name string, dst *items.Collection) (*items.Item, error) {
	item, err := items.Transfer(p.Inventory, dst, name)
	if err != nil {
		return nil, err
	}
	p.Stats.ItemsGiven++
	return item, nil
}

// Capacity returns the carrying capacity in kg.
func (p *Player) Capacity() float64 {
	return p.Inventory.Capacity()
}

// AddCapacity raises (or lowers) the carrying capacity.
func (p *Player) AddCapacity(delta float64) {
	p.Inventory.SetCapacity(p.Inventory.Capacity() + delta)
}

// Grant puts item in the inventory regardless of weight, replacing any item
// with the same name.
func (p *Player) Grant(item *items.Item) {
	if p.Inventory.Has(item.Name) {
		_, _ = p.Inventory.Remove(item.Name)
	}
	capacity := p.Inventory.Capacity()
	if !p.Inventory.CanHold(item) {
		// Rewards are never refused; lift the limit for the insert only.
		p.Inventory.SetCapacity(p.Inventory.Weight() + item.Weight)
	}
	_ = p.Inventory.Add(item)
	p.Inventory.SetCapacity(capacity)
}

// Teleporter returns the first teleporter in the inventory.
func (p *Player) Teleporter() (*items.Item, error) {
	for _, item := range p.Inventory.Items() {
		if item.Teleporter {
			return item, nil
		}
	}
	return nil, ErrNoTeleporter
}

// AddReward appends a reward to the ledger.
func (p *Player) AddReward(name string) {
	p.rewards = append(p.rewards, name)
}

// Rewards returns the reward ledger in the order rewards were earned.
func (p *Player) Rewards() []string {
	out := make([]string, len(p.rewards))
	copy(out, p.rewards)
	return out
}

// InventoryText describes the inventory with weight and remaining capacity.
func (p *Player) InventoryText() string {
	if p.Inventory.Len() == 0 {
		return fmt.Sprintf("Your inventory is empty. (Capacity: %g kg)", p.Capacity())
	}
	return fmt.Sprintf("You are carrying:\n%s\n\nWeight: %.1f kg / %g kg (Remaining: %.1f kg)",
		p.Inventory.Describe(), p.Inventory.Weight(), p.Capacity(), p.Inventory.Remaining())
}
