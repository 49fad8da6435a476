package quest

import (
	"fmt"

	"github.com/lawnchairsociety/castaway/internal/names"
)

// Registry holds all loaded quest definitions in file order
type Registry struct {
	quests []*Quest
	byID   map[string]*Quest
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Quest)}
}

// LoadFromConfig populates the registry from a QuestsConfig
func (r *Registry) LoadFromConfig(config *QuestsConfig) error {
	r.quests = nil
	r.byID = make(map[string]*Quest)

	for _, def := range config.Quests {
		q, err := createQuestFromDefinition(def)
		if err != nil {
			return err
		}
		if _, dup := r.byID[q.ID]; dup {
			return fmt.Errorf("duplicate quest id %q", q.ID)
		}
		r.quests = append(r.quests, q)
		r.byID[q.ID] = q
	}

	for _, q := range r.quests {
		for _, pre := range q.Prereqs {
			if _, ok := r.byID[pre]; !ok {
				return fmt.Errorf("quest %q: unknown prerequisite %q", q.ID, pre)
			}
		}
	}
	return nil
}

// LoadFromYAML loads quests from a file
func (r *Registry) LoadFromYAML(filename string) error {
	config, err := LoadQuestsFromYAML(filename)
	if err != nil {
		return err
	}
	return r.LoadFromConfig(config)
}

// GetQuest returns a quest by ID
func (r *Registry) GetQuest(id string) (*Quest, bool) {
	q, ok := r.byID[id]
	return q, ok
}

// FindByTitle returns the quest whose title or id matches (case-insensitive)
func (r *Registry) FindByTitle(title string) (*Quest, bool) {
	for _, q := range r.quests {
		if names.Equal(q.Title, title) || names.Equal(q.ID, title) {
			return q, true
		}
	}
	return nil, false
}

// All returns every quest in file order
func (r *Registry) All() []*Quest {
	out := make([]*Quest, len(r.quests))
	copy(out, r.quests)
	return out
}

// Count returns the number of quests
func (r *Registry) Count() int {
	return len(r.quests)
}
