// Package inventory provides the immutable item collection carried by every
// living entity. Every mutation returns a new Inventory; existing values are
// never modified, so a snapshot can always be inspected or kept for rollback.
package inventory

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/wildone/internal/game/item"
)

// ErrInsufficientItems is returned when a removal asks for more than is held.
var ErrInsufficientItems = errors.New("insufficient items")

// ItemQuantity pairs an item type id with a count.
type ItemQuantity struct {
	ItemID   int `yaml:"id" json:"id"`
	Quantity int `yaml:"quantity" json:"quantity"`
}

// GroupedItem is one row of the grouped view.
type GroupedItem struct {
	Item     *item.Item
	Quantity int
}

// Inventory is an ordered, immutable sequence of item instances.
type Inventory struct {
	items   []*item.Item
	grouped []GroupedItem
}

// New builds an Inventory holding items in order.
//
// Postcondition: the grouped view has one entry per unique item and one
// entry per non-unique type id, in first-seen order.
func New(items ...*item.Item) Inventory {
	inv := Inventory{items: make([]*item.Item, 0, len(items))}
	index := make(map[int]int)
	for _, it := range items {
		inv.items = append(inv.items, it)
		if it.Unique {
			inv.grouped = append(inv.grouped, GroupedItem{Item: it, Quantity: 1})
			continue
		}
		if i, ok := index[it.TypeID]; ok {
			inv.grouped[i].Quantity++
			continue
		}
		index[it.TypeID] = len(inv.grouped)
		inv.grouped = append(inv.grouped, GroupedItem{Item: it, Quantity: 1})
	}
	return inv
}

// Items returns a copy of the item instances in order.
func (inv Inventory) Items() []*item.Item {
	out := make([]*item.Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Grouped returns a copy of the grouped view.
func (inv Inventory) Grouped() []GroupedItem {
	out := make([]GroupedItem, len(inv.grouped))
	copy(out, inv.grouped)
	return out
}

// Len returns the number of item instances.
func (inv Inventory) Len() int { return len(inv.items) }

// CountOf returns how many instances of typeID are held.
func (inv Inventory) CountOf(typeID int) int {
	n := 0
	for _, it := range inv.items {
		if it.TypeID == typeID {
			n++
		}
	}
	return n
}

// Find returns the first instance of typeID.
func (inv Inventory) Find(typeID int) (*item.Item, bool) {
	for _, it := range inv.items {
		if it.TypeID == typeID {
			return it, true
		}
	}
	return nil, false
}

func (inv Inventory) itemsThatAre(c item.Category) []*item.Item {
	var out []*item.Item
	for _, it := range inv.items {
		if it.Category == c {
			out = append(out, it)
		}
	}
	return out
}

// Weapons returns every weapon instance.
func (inv Inventory) Weapons() []*item.Item { return inv.itemsThatAre(item.Weapon) }

// Consumables returns every consumable instance.
func (inv Inventory) Consumables() []*item.Item { return inv.itemsThatAre(item.Consumable) }

// HasConsumable reports whether any consumable is held.
func (inv Inventory) HasConsumable() bool { return len(inv.Consumables()) > 0 }

// HasAllTheseItems reports whether every quantity can be satisfied.
func (inv Inventory) HasAllTheseItems(quantities []ItemQuantity) bool {
	return inv.shortfall(quantities) == nil
}

// shortfall returns the first unsatisfiable quantity, or nil. Quantities of
// the same type id are summed.
func (inv Inventory) shortfall(quantities []ItemQuantity) *ItemQuantity {
	need := make(map[int]int)
	for _, q := range quantities {
		need[q.ItemID] += q.Quantity
	}
	for _, q := range quantities {
		if inv.CountOf(q.ItemID) < need[q.ItemID] {
			return &ItemQuantity{ItemID: q.ItemID, Quantity: need[q.ItemID]}
		}
	}
	return nil
}

// AddItem returns a new Inventory with it appended.
func (inv Inventory) AddItem(it *item.Item) Inventory {
	return inv.AddItems(it)
}

// AddItems returns a new Inventory with items appended in order.
func (inv Inventory) AddItems(items ...*item.Item) Inventory {
	all := make([]*item.Item, 0, len(inv.items)+len(items))
	all = append(all, inv.items...)
	all = append(all, items...)
	return New(all...)
}

// RemoveItem returns a new Inventory without the given instance. Instances
// are matched by identity; an instance not held is ignored.
func (inv Inventory) RemoveItem(it *item.Item) Inventory {
	return inv.RemoveItems(it)
}

// RemoveItems returns a new Inventory without the given instances.
func (inv Inventory) RemoveItems(items ...*item.Item) Inventory {
	working := inv.Items()
	for _, target := range items {
		for i, it := range working {
			if it == target {
				working = append(working[:i], working[i+1:]...)
				break
			}
		}
	}
	return New(working...)
}

// RemoveQuantities returns a new Inventory with the given counts of each type
// removed, taking the earliest instances first.
//
// Postcondition: when any quantity cannot be satisfied the error wraps
// ErrInsufficientItems and inv is returned unchanged; nothing is removed.
func (inv Inventory) RemoveQuantities(quantities []ItemQuantity) (Inventory, error) {
	if short := inv.shortfall(quantities); short != nil {
		return inv, fmt.Errorf("need %d of item %d, have %d: %w",
			short.Quantity, short.ItemID, inv.CountOf(short.ItemID), ErrInsufficientItems)
	}
	remaining := make(map[int]int)
	for _, q := range quantities {
		remaining[q.ItemID] += q.Quantity
	}
	kept := make([]*item.Item, 0, len(inv.items))
	for _, it := range inv.items {
		if remaining[it.TypeID] > 0 {
			remaining[it.TypeID]--
			continue
		}
		kept = append(kept, it)
	}
	return New(kept...), nil
}
