// Package item defines game items, the actions attached to them, and the item
// template registry.
package item

import "fmt"

// Category classifies an item's role.
type Category int

const (
	Miscellaneous Category = iota
	Weapon
	Consumable
)

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case Weapon:
		return "weapon"
	case Consumable:
		return "consumable"
	default:
		return "miscellaneous"
	}
}

// ParseCategory maps a data-file category name to a Category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "weapon":
		return Weapon, nil
	case "consumable":
		return Consumable, nil
	case "miscellaneous", "misc", "":
		return Miscellaneous, nil
	default:
		return Miscellaneous, fmt.Errorf("unknown item category %q", s)
	}
}

// Item is one owned instance of an item template. Instances are never shared
// between inventories; use Registry.Create or Clone to obtain a fresh one.
type Item struct {
	TypeID   int
	Category Category
	Name     string
	Price    int
	Unique   bool
	// Action is nil for passive items.
	Action Action
}

// PerformAction executes the attached action. Passive items do nothing.
func (i *Item) PerformAction(actor, target Combatant, report func(string)) {
	if i.Action == nil {
		return
	}
	i.Action.Execute(actor, target, report)
}

// Clone returns a new instance of the same item type. Actions are stateless
// and are shared between clones.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}

// String returns the item name.
func (i *Item) String() string { return i.Name }
