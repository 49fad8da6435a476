package items

import (
	"errors"
	"testing"
)

// Helper function to create a test item
func newTestItem(name string, weight float64) *Item {
	return NewItem(name, "Test item: "+name, weight)
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	c := NewCollection()
	c.Add(newTestItem("rope", 1))
	c.Add(newTestItem("bananes", 0.5))
	c.Add(newTestItem("Rock", 6))

	got := c.Names()
	want := []string{"rope", "bananes", "Rock"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d names, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected name %d to be '%s', got '%s'", i, want[i], got[i])
		}
	}
}

func TestAddRejectsDuplicateName(t *testing.T) {
	c := NewCollection()
	c.Add(newTestItem("rope", 1))

	err := c.Add(newTestItem("ROPE", 2))
	if !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("Expected ErrDuplicateItem, got %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 item, got %d", c.Len())
	}
}

func TestFindIsCaseInsensitive(t *testing.T) {
	c := NewCollection()
	rock := newTestItem("Rock", 6)
	c.Add(rock)

	found, ok := c.Find("rOCK")
	if !ok {
		t.Fatal("Expected to find 'rOCK'")
	}
	if found != rock {
		t.Error("Expected the stored item to be returned")
	}
	if found.Name != "Rock" {
		t.Errorf("Expected canonical name 'Rock', got '%s'", found.Name)
	}
}

func TestRemove(t *testing.T) {
	c := NewCollection()
	c.Add(newTestItem("rope", 1))
	c.Add(newTestItem("bread", 0.5))

	removed, err := c.Remove("BREAD")
	if err != nil {
		t.Fatalf("Expected to remove 'BREAD', got %v", err)
	}
	if removed.Name != "bread" {
		t.Errorf("Expected removed item to be 'bread', got '%s'", removed.Name)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 item remaining, got %d", c.Len())
	}

	_, err = c.Remove("bread")
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}
}

func TestWeightAndRemaining(t *testing.T) {
	c := NewLimitedCollection(5)
	c.Add(newTestItem("rope", 1))
	c.Add(newTestItem("bread", 0.5))

	if c.Weight() != 1.5 {
		t.Errorf("Expected weight 1.5, got %g", c.Weight())
	}
	if c.Remaining() != 3.5 {
		t.Errorf("Expected 3.5 kg remaining, got %g", c.Remaining())
	}
}

func TestLimitedCollectionRejectsOverweight(t *testing.T) {
	c := NewLimitedCollection(5)

	err := c.Add(newTestItem("Rock", 6))
	if !errors.Is(err, ErrOverCapacity) {
		t.Errorf("Expected ErrOverCapacity, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty collection, got %d items", c.Len())
	}

	// Exactly at the limit is allowed.
	if err := c.Add(newTestItem("log", 5)); err != nil {
		t.Errorf("Expected 5 kg item to fit in 5 kg capacity, got %v", err)
	}
}

func TestSetCapacity(t *testing.T) {
	c := NewLimitedCollection(5)
	c.Add(newTestItem("log", 4))

	big := newTestItem("chest", 3)
	if c.CanHold(big) {
		t.Error("Expected chest not to fit at capacity 5")
	}

	c.SetCapacity(10)
	if !c.CanHold(big) {
		t.Error("Expected chest to fit at capacity 10")
	}
}

func TestTransfer(t *testing.T) {
	room := NewCollection()
	inventory := NewLimitedCollection(5)
	rope := newTestItem("rope", 1)
	room.Add(rope)

	moved, err := Transfer(room, inventory, "ROPE")
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if moved != rope {
		t.Error("Expected the same item to be moved")
	}
	if room.Has("rope") {
		t.Error("Expected rope to leave the room")
	}
	if !inventory.Has("rope") {
		t.Error("Expected rope in inventory")
	}
}

func TestTransferRoundTripRestoresContainers(t *testing.T) {
	room := NewCollection()
	inventory := NewLimitedCollection(5)
	rope := newTestItem("rope", 1)
	room.Add(rope)

	if _, err := Transfer(room, inventory, "rope"); err != nil {
		t.Fatalf("Transfer to inventory failed: %v", err)
	}
	if _, err := Transfer(inventory, room, "rope"); err != nil {
		t.Fatalf("Transfer back to room failed: %v", err)
	}

	found, ok := room.Find("rope")
	if !ok || found != rope {
		t.Error("Expected the original rope back in the room")
	}
	if inventory.Len() != 0 {
		t.Errorf("Expected empty inventory, got %d items", inventory.Len())
	}
}

func TestTransferOverCapacityChangesNothing(t *testing.T) {
	room := NewCollection()
	inventory := NewLimitedCollection(5)
	room.Add(newTestItem("Rock", 6))

	_, err := Transfer(room, inventory, "rock")
	if !errors.Is(err, ErrOverCapacity) {
		t.Errorf("Expected ErrOverCapacity, got %v", err)
	}
	if !room.Has("Rock") {
		t.Error("Expected rock to stay in the room")
	}
	if inventory.Len() != 0 {
		t.Errorf("Expected empty inventory, got %d items", inventory.Len())
	}
}

func TestTransferMissingItemIsRepeatable(t *testing.T) {
	room := NewCollection()
	inventory := NewLimitedCollection(5)
	room.Add(newTestItem("rope", 1))

	for i := 0; i < 2; i++ {
		_, err := Transfer(room, inventory, "sword")
		if !errors.Is(err, ErrItemNotFound) {
			t.Errorf("Attempt %d: expected ErrItemNotFound, got %v", i+1, err)
		}
	}
	if room.Len() != 1 || inventory.Len() != 0 {
		t.Error("Expected containers unchanged after failed transfers")
	}
}

func TestCharge(t *testing.T) {
	beamer := &Item{Name: "beamer", Teleporter: true}
	if beamer.Destination() != "" {
		t.Error("Expected uncharged beamer to have no destination")
	}
	if err := beamer.Charge("cove"); err != nil {
		t.Fatalf("Charge failed: %v", err)
	}
	if beamer.Destination() != "cove" {
		t.Errorf("Expected destination 'cove', got '%s'", beamer.Destination())
	}

	fixed := &Item{Name: "beamer", Teleporter: true, FixedDestination: "beach"}
	if err := fixed.Charge("cove"); !errors.Is(err, ErrFixedDestination) {
		t.Errorf("Expected ErrFixedDestination, got %v", err)
	}
	if fixed.Destination() != "beach" {
		t.Errorf("Expected destination 'beach', got '%s'", fixed.Destination())
	}

	rope := newTestItem("rope", 1)
	if err := rope.Charge("cove"); err == nil {
		t.Error("Expected error charging a non-teleporter")
	}
}

func TestInstantiateDefinition(t *testing.T) {
	def := ItemDefinition{Name: "beamer", Description: "a strange device", Weight: 0.5, Teleporter: true, Destination: "beach"}
	if err := def.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	beamer := def.Instantiate("beamer")
	if beamer.ID != "beamer" || !beamer.Teleporter {
		t.Errorf("Expected teleporter 'beamer', got %+v", beamer)
	}
	if beamer.Destination() != "beach" {
		t.Errorf("Expected fixed destination 'beach', got %q", beamer.Destination())
	}
	if def.Instantiate("beamer") == beamer {
		t.Error("Expected a fresh item per call")
	}
}

func TestValidateDefinition(t *testing.T) {
	tests := []struct {
		name string
		def  ItemDefinition
	}{
		{"missing name", ItemDefinition{Weight: 1}},
		{"negative weight", ItemDefinition{Name: "feather", Weight: -1}},
		{"destination without teleporter", ItemDefinition{Name: "rock", Destination: "beach"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.def.Validate(); err == nil {
				t.Errorf("Expected error for %s", tt.name)
			}
		})
	}
}
