package items

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lawnchairsociety/castaway/internal/names"
)

var (
	// ErrItemNotFound is returned when no item in a collection has the name.
	ErrItemNotFound = errors.New("item not found")
	// ErrOverCapacity is returned when adding an item would exceed the weight limit.
	ErrOverCapacity = errors.New("over capacity")
	// ErrDuplicateItem is returned when a collection already holds an item with the name.
	ErrDuplicateItem = errors.New("duplicate item name")
)

// Collection is a name-keyed set of items in insertion order. A limited
// collection also enforces a maximum total weight.
type Collection struct {
	order    []string
	byKey    map[string]*Item
	capacity float64
	limited  bool
}

// NewCollection creates a collection without a weight limit.
func NewCollection() *Collection {
	return &Collection{byKey: make(map[string]*Item)}
}

// NewLimitedCollection creates a collection that holds at most capacity kg.
func NewLimitedCollection(capacity float64) *Collection {
	c := NewCollection()
	c.capacity = capacity
	c.limited = true
	return c
}

// Add inserts an item, keyed by its name.
func (c *Collection) Add(item *Item) error {
	key := names.Key(item.Name)
	if _, exists := c.byKey[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateItem, item.Name)
	}
	if !c.CanHold(item) {
		return fmt.Errorf("%w: %s weighs %g kg, %g kg left", ErrOverCapacity, item.Name, item.Weight, c.Remaining())
	}
	c.byKey[key] = item
	c.order = append(c.order, key)
	return nil
}

// Remove takes the named item out of the collection (case-insensitive).
func (c *Collection) Remove(name string) (*Item, error) {
	key := names.Key(name)
	item, ok := c.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, name)
	}
	delete(c.byKey, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return item, nil
}

// Find looks an item up by name (case-insensitive).
func (c *Collection) Find(name string) (*Item, bool) {
	item, ok := c.byKey[names.Key(name)]
	return item, ok
}

// Has reports whether the named item is present.
func (c *Collection) Has(name string) bool {
	_, ok := c.Find(name)
	return ok
}

// Items returns the items in insertion order.
func (c *Collection) Items() []*Item {
	result := make([]*Item, 0, len(c.order))
	for _, key := range c.order {
		result = append(result, c.byKey[key])
	}
	return result
}

// Names returns the canonical item names in insertion order.
func (c *Collection) Names() []string {
	result := make([]string, 0, len(c.order))
	for _, key := range c.order {
		result = append(result, c.byKey[key].Name)
	}
	return result
}

// Len returns the number of items.
func (c *Collection) Len() int {
	return len(c.order)
}

// Weight returns the total weight of all items
func (c *Collection) Weight() float64 {
	total := 0.0
	for _, key := range c.order {
		total += c.byKey[key].Weight
	}
	return total
}

// Limited reports whether the collection enforces a weight limit.
func (c *Collection) Limited() bool {
	return c.limited
}

// Capacity returns the weight limit, or 0 for an unlimited collection.
func (c *Collection) Capacity() float64 {
	return c.capacity
}

// SetCapacity changes the weight limit. Items already held are kept even
// if the new limit is lower; further additions are rejected until there is room.
func (c *Collection) SetCapacity(capacity float64) {
	c.capacity = capacity
	c.limited = true
}

// Remaining returns how many kg can still be added.
func (c *Collection) Remaining() float64 {
	if !c.limited {
		return 0
	}
	left := c.capacity - c.Weight()
	if left < 0 {
		return 0
	}
	return left
}

// CanHold reports whether item fits under the weight limit.
func (c *Collection) CanHold(item *Item) bool {
	return !c.limited || c.Weight()+item.Weight <= c.capacity
}

// Transfer moves the named item from src to dst. On error neither
// collection is changed.
func Transfer(src, dst *Collection, name string) (*Item, error) {
	item, ok := src.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, name)
	}
	if dst.Has(item.Name) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateItem, item.Name)
	}
	if !dst.CanHold(item) {
		return nil, fmt.Errorf("%w: %s weighs %g kg, %g kg left", ErrOverCapacity, item.Name, item.Weight, dst.Remaining())
	}
	if _, err := src.Remove(item.Name); err != nil {
		return nil, err
	}
	if err := dst.Add(item); err != nil {
		// Unreachable after the checks above; put the item back regardless.
		_ = src.Add(item)
		return nil, err
	}
	return item, nil
}

// Describe lists the items one per line with a leading indent.
func (c *Collection) Describe() string {
	lines := make([]string, 0, c.Len())
	for _, item := range c.Items() {
		lines = append(lines, "    - "+item.String())
	}
	return strings.Join(lines, "\n")
}
