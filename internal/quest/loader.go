package quest

import (
	"fmt"
	"os"

	"github.com/lawnchairsociety/castaway/internal/items"
	"gopkg.in/yaml.v3"
)

// ObjectiveYAML for YAML parsing
type ObjectiveYAML struct {
	Kind        string `yaml:"kind"`   // take, give, talk, visit, use, charge
	Target      string `yaml:"target"` // item name, character name or room id
	Description string `yaml:"description"`
}

// RewardYAML for YAML parsing
type RewardYAML struct {
	Name          string                `yaml:"name"`
	CapacityBonus float64               `yaml:"capacity_bonus"`
	ItemID        string                `yaml:"item_id"`
	Item          *items.ItemDefinition `yaml:"item"`
}

// QuestDefinition for YAML parsing
type QuestDefinition struct {
	ID          string          `yaml:"id"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Objectives  []ObjectiveYAML `yaml:"objectives"`
	Rewards     []RewardYAML    `yaml:"rewards"`
	Prereqs     []string        `yaml:"prereqs"`
}

// QuestsConfig represents the quests.yaml structure
type QuestsConfig struct {
	Quests []QuestDefinition `yaml:"quests"`
}

// LoadQuestsFromYAML loads quest definitions from YAML file
func LoadQuestsFromYAML(filename string) (*QuestsConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read quests file: %w", err)
	}
	return ParseQuests(data)
}

// ParseQuests parses quest definitions from YAML
func ParseQuests(data []byte) (*QuestsConfig, error) {
	var config QuestsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse quests YAML: %w", err)
	}
	return &config, nil
}

func createQuestFromDefinition(def QuestDefinition) (*Quest, error) {
	if def.ID == "" || def.Title == "" {
		return nil, fmt.Errorf("quest needs an id and a title")
	}
	q := &Quest{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Prereqs:     def.Prereqs,
	}
	for _, o := range def.Objectives {
		kind, err := parseActionKind(o.Kind)
		if err != nil {
			return nil, fmt.Errorf("quest %q: %w", def.ID, err)
		}
		q.Objectives = append(q.Objectives, Objective{Kind: kind, Target: o.Target, Description: o.Description})
	}
	if len(q.Objectives) == 0 {
		return nil, fmt.Errorf("quest %q has no objectives", def.ID)
	}
	for _, r := range def.Rewards {
		if r.Name == "" {
			return nil, fmt.Errorf("quest %q: reward without a name", def.ID)
		}
		if r.Item != nil {
			if err := r.Item.Validate(); err != nil {
				return nil, fmt.Errorf("quest %q: reward %q: %w", def.ID, r.Name, err)
			}
		}
		itemID := r.ItemID
		if itemID == "" && r.Item != nil {
			itemID = r.Item.Name
		}
		q.Rewards = append(q.Rewards, Reward{
			Name:          r.Name,
			CapacityBonus: r.CapacityBonus,
			ItemID:        itemID,
			Item:          r.Item,
		})
	}
	return q, nil
}

func parseActionKind(s string) (ActionKind, error) {
	switch ActionKind(s) {
	case ActionTake, ActionGive, ActionTalk, ActionVisit, ActionUse, ActionCharge:
		return ActionKind(s), nil
	default:
		return "", fmt.Errorf("unknown objective kind %q", s)
	}
}
