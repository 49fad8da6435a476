package items

import "fmt"

// ItemDefinition is an item entry of the world content file
type ItemDefinition struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Weight      float64 `yaml:"weight"`
	Teleporter  bool    `yaml:"teleporter,omitempty"`
	Destination string  `yaml:"destination,omitempty"` // fixed teleport destination (room id)
}

// Validate checks the definition for values an Item cannot hold.
func (d ItemDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("missing name")
	}
	if d.Weight < 0 {
		return fmt.Errorf("negative weight %g", d.Weight)
	}
	if d.Destination != "" && !d.Teleporter {
		return fmt.Errorf("destination set on a non-teleporter")
	}
	return nil
}

// Instantiate creates a fresh Item from the definition.
func (d ItemDefinition) Instantiate(id string) *Item {
	return &Item{
		ID:               id,
		Name:             d.Name,
		Description:      d.Description,
		Weight:           d.Weight,
		Teleporter:       d.Teleporter,
		FixedDestination: d.Destination,
	}
}
