package npc

import (
	"fmt"

	"github.com/lawnchairsociety/castaway/internal/logger"
)

// ReactionDefinition is a gift reaction from a content file.
type ReactionDefinition struct {
	Reply         string   `yaml:"reply"`
	Dialogue      []string `yaml:"dialogue"`
	AcceptDropped bool     `yaml:"accept_dropped"`
}

// NPCDefinition represents a character definition from a content file
type NPCDefinition struct {
	Name        string                        `yaml:"name"`
	Description Text                          `yaml:"description"`
	Dialogue    Lines                         `yaml:"dialogue"`
	CanMove     *bool                         `yaml:"can_move"` // defaults to true
	Verb        string                        `yaml:"verb"`     // e.g. "say" for a group
	Location    string                        `yaml:"location"` // room id of the starting room
	Gifts       map[string]ReactionDefinition `yaml:"gifts"`    // keyed by item name
}

// Validate checks the definition for missing required fields.
func (d NPCDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("missing name")
	}
	if d.Location == "" {
		return fmt.Errorf("missing location")
	}
	return nil
}

// Instantiate creates a fresh, unplaced NPC from the definition. Dialogue
// queues are copied so each instance rotates independently.
func (d NPCDefinition) Instantiate(id string) *NPC {
	canMove := true
	if d.CanMove != nil {
		canMove = *d.CanMove
	}

	n := NewNPC(id, d.Name, d.Description, d.Dialogue.Clone(), canMove)
	n.Verb = d.Verb
	for itemName, r := range d.Gifts {
		if r.Reply == "" && len(r.Dialogue) == 0 {
			logger.Warning("Gift reaction has no effect", "npc", id, "item", itemName)
		}
		n.AddReaction(itemName, Reaction{
			Reply:         r.Reply,
			Dialogue:      append([]string(nil), r.Dialogue...),
			AcceptDropped: r.AcceptDropped,
		})
	}
	return n
}
