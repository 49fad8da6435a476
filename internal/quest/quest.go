package quest

import (
	"github.com/lawnchairsociety/castaway/internal/items"
	"github.com/lawnchairsociety/castaway/internal/names"
)

// ActionKind identifies a progress-relevant player action
type ActionKind string

const (
	ActionTake   ActionKind = "take"   // Picked up an item
	ActionGive   ActionKind = "give"   // Handed an item to a character
	ActionTalk   ActionKind = "talk"   // Spoke to a character
	ActionVisit  ActionKind = "visit"  // Arrived in a room
	ActionUse    ActionKind = "use"    // Fired a teleporter
	ActionCharge ActionKind = "charge" // Charged a teleporter
)

// Objective is a single step of a quest
type Objective struct {
	Kind        ActionKind
	Target      string // item name, character name or room id
	Description string
}

// Matches reports whether an action completes the objective.
func (o Objective) Matches(kind ActionKind, subject string) bool {
	return o.Kind == kind && names.Equal(o.Target, subject)
}

// Reward is granted when a quest completes
type Reward struct {
	Name          string
	CapacityBonus float64               // kg added to the carrying capacity
	ItemID        string                // id of the granted item, if any
	Item          *items.ItemDefinition // granted item, if any
}

// Quest represents a quest definition
type Quest struct {
	ID          string
	Title       string
	Description string
	Objectives  []Objective
	Rewards     []Reward
	Prereqs     []string // quest ids that must be completed first
}

// HasPrereqs returns true if quest has prerequisite quests
func (q *Quest) HasPrereqs() bool {
	return len(q.Prereqs) > 0
}
