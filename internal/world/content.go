package world

import (
	"fmt"
	"os"

	"github.com/lawnchairsociety/castaway/internal/items"
	"github.com/lawnchairsociety/castaway/internal/npc"
	"gopkg.in/yaml.v3"
)

// RoomDefinition represents a room from the world file
type RoomDefinition struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Image       string            `yaml:"image,omitempty"`
	Exits       map[string]string `yaml:"exits"` // direction -> room id
	Items       []string          `yaml:"items"` // item ids placed here
	Hazard      string            `yaml:"hazard,omitempty"`
}

// CharacterDefinition is an NPC definition with its id.
type CharacterDefinition struct {
	ID                string `yaml:"id"`
	npc.NPCDefinition `yaml:",inline"`
}

// FinaleDefinition represents the closing scene from the world file
type FinaleDefinition struct {
	Room      string `yaml:"room"`
	Character string `yaml:"character"`
	Arrival   string `yaml:"arrival"`
	Prompt    string `yaml:"prompt"`
	Accept    string `yaml:"accept"`
	Decline   string `yaml:"decline"`
}

// Content is the static world description loaded once at startup. Build
// turns it into a fresh World as often as needed.
type Content struct {
	Start      string                          `yaml:"start"`
	Rooms      []RoomDefinition                `yaml:"rooms"`
	Items      map[string]items.ItemDefinition `yaml:"items"`
	Characters []CharacterDefinition           `yaml:"characters"`
	Finale     *FinaleDefinition               `yaml:"finale,omitempty"`
}

// LoadContent reads and validates a world file.
func LoadContent(filename string) (*Content, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}
	return ParseContent(data)
}

// ParseContent parses and validates world YAML.
func ParseContent(data []byte) (*Content, error) {
	var content Content
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("failed to parse world YAML: %w", err)
	}
	if _, err := content.Build(); err != nil {
		return nil, fmt.Errorf("invalid world: %w", err)
	}
	return &content, nil
}

// ItemDefinition returns the definition of the item with the given id.
func (c *Content) ItemDefinition(id string) (items.ItemDefinition, bool) {
	def, ok := c.Items[id]
	return def, ok
}

// Build creates a new World from the content. Each call returns
// independent rooms, items and characters.
func (c *Content) Build() (*World, error) {
	w := NewWorld()

	for _, def := range c.Rooms {
		if def.ID == "" {
			return nil, fmt.Errorf("room without id")
		}
		room := NewRoom(def.ID, def.Name, def.Description)
		room.Image = def.Image
		if def.Hazard != "" {
			room.Hazard = &Hazard{Message: def.Hazard}
		}
		if err := w.AddRoom(room); err != nil {
			return nil, err
		}
	}

	placed := make(map[string]string)
	for _, def := range c.Rooms {
		room := w.Rooms[def.ID]
		for dirName, destID := range def.Exits {
			d, ok := ParseDirection(dirName)
			if !ok {
				return nil, fmt.Errorf("room %q: unknown direction %q", def.ID, dirName)
			}
			dest := w.Rooms[destID]
			if dest == nil {
				return nil, fmt.Errorf("room %q: exit %s leads to unknown room %q", def.ID, d, destID)
			}
			if room.Exit(d) != nil {
				return nil, fmt.Errorf("room %q: exit %s defined twice", def.ID, d)
			}
			room.SetExit(d, dest)
		}

		for _, itemID := range def.Items {
			itemDef, ok := c.Items[itemID]
			if !ok {
				return nil, fmt.Errorf("room %q: unknown item %q", def.ID, itemID)
			}
			if other, dup := placed[itemID]; dup {
				return nil, fmt.Errorf("item %q placed in both %q and %q", itemID, other, def.ID)
			}
			if err := itemDef.Validate(); err != nil {
				return nil, fmt.Errorf("item %q: %w", itemID, err)
			}
			if err := room.Items.Add(itemDef.Instantiate(itemID)); err != nil {
				return nil, fmt.Errorf("room %q: %w", def.ID, err)
			}
			placed[itemID] = def.ID
		}
	}

	for _, def := range c.Characters {
		if def.ID == "" {
			return nil, fmt.Errorf("character without id")
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("character %q: %w", def.ID, err)
		}
		room := w.Rooms[def.Location]
		if room == nil {
			return nil, fmt.Errorf("character %q: unknown location %q", def.ID, def.Location)
		}
		if _, dup := w.FindNPCByID(def.ID); dup {
			return nil, fmt.Errorf("duplicate character id %q", def.ID)
		}
		w.AddNPC(def.Instantiate(def.ID), room)
	}

	w.Start = w.Rooms[c.Start]
	if w.Start == nil {
		return nil, fmt.Errorf("unknown start room %q", c.Start)
	}

	if f := c.Finale; f != nil {
		if w.Rooms[f.Room] == nil {
			return nil, fmt.Errorf("finale: unknown room %q", f.Room)
		}
		if _, ok := w.FindNPCByID(f.Character); !ok {
			return nil, fmt.Errorf("finale: unknown character %q", f.Character)
		}
		w.Finale = &Finale{
			Room:      f.Room,
			Character: f.Character,
			Arrival:   f.Arrival,
			Prompt:    f.Prompt,
			Accept:    f.Accept,
			Decline:   f.Decline,
		}
	}

	return w, w.Validate()
}
