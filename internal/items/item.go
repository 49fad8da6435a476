package items

import (
	"errors"
	"fmt"
)

// ErrFixedDestination is returned when charging a teleporter whose
// destination cannot be reprogrammed.
var ErrFixedDestination = errors.New("teleporter destination is fixed")

// Item represents an object that can lie in a room or be carried.
type Item struct {
	ID          string // Key from the content file (e.g., "beamer")
	Name        string
	Description string
	Weight      float64

	// Teleporter items can be charged with a location and fired to return there.
	Teleporter bool
	// FixedDestination, when set, is the only location the teleporter reaches.
	FixedDestination string
	// SavedLocation is the location recorded by the last charge.
	SavedLocation string
}

// NewItem creates a new item with the given properties
func NewItem(name, description string, weight float64) *Item {
	return &Item{
		ID:          name,
		Name:        name,
		Description: description,
		Weight:      weight,
	}
}

// Destination returns where firing the item leads, or "" if it is not charged.
func (i *Item) Destination() string {
	if i.FixedDestination != "" {
		return i.FixedDestination
	}
	return i.SavedLocation
}

// Charge records location as the teleport destination.
func (i *Item) Charge(location string) error {
	if !i.Teleporter {
		return fmt.Errorf("%s is not a teleporter", i.Name)
	}
	if i.FixedDestination != "" {
		return ErrFixedDestination
	}
	i.SavedLocation = location
	return nil
}

// String returns "name : description (weight kg)".
func (i *Item) String() string {
	return fmt.Sprintf("%s : %s (%g kg)", i.Name, i.Description, i.Weight)
}
