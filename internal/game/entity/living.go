// Package entity models the living participants of the game: the player,
// monsters and traders.
package entity

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/wildone/internal/game/inventory"
	"github.com/cory-johannsen/wildone/internal/game/item"
	"github.com/cory-johannsen/wildone/internal/game/message"
)

// ErrInsufficientGold is returned when spending more gold than is held.
var ErrInsufficientGold = errors.New("insufficient gold")

// Living holds the state shared by every entity: hit points, gold, level,
// attributes, inventory and equipment.
//
// Invariants: 0 <= CurrentHitPoints() <= MaximumHitPoints(); Gold() >= 0.
//
// A Living must not be copied after first use.
type Living struct {
	name       string
	player     bool
	maxHP      int
	hp         int
	gold       int
	level      int
	attributes []*Attribute
	inv        inventory.Inventory
	weapon     *item.Item
	consumable *item.Item

	// Killed fires once each time hit points drop from above zero to zero.
	Killed message.Signal[struct{}]
	// ActionPerformed carries the narrative of every action this entity performs.
	ActionPerformed message.Signal[string]
}

func newLiving(name string, player bool, maxHP, hp, gold int, attrs []*Attribute) Living {
	return Living{
		name:       name,
		player:     player,
		maxHP:      maxHP,
		hp:         min(max(hp, 0), maxHP),
		gold:       max(gold, 0),
		level:      1,
		attributes: attrs,
		inv:        inventory.New(),
	}
}

// Name returns the entity's display name.
func (l *Living) Name() string { return l.name }

// IsPlayer reports whether this entity is the player character.
func (l *Living) IsPlayer() bool { return l.player }

// CurrentHitPoints returns the current hit points.
func (l *Living) CurrentHitPoints() int { return l.hp }

// MaximumHitPoints returns the maximum hit points.
func (l *Living) MaximumHitPoints() int { return l.maxHP }

// HitPoints renders hit points as "current/max".
func (l *Living) HitPoints() string { return fmt.Sprintf("%d/%d", l.hp, l.maxHP) }

// Gold returns the gold held.
func (l *Living) Gold() int { return l.gold }

// Level returns the entity's level.
func (l *Living) Level() int { return l.level }

// IsAlive reports whether hit points are above zero.
func (l *Living) IsAlive() bool { return l.hp > 0 }

// IsDead reports whether hit points are zero.
func (l *Living) IsDead() bool { return !l.IsAlive() }

// Attributes returns the entity's attributes in definition order.
func (l *Living) Attributes() []*Attribute { return l.attributes }

// Attribute returns the attribute with key.
func (l *Living) Attribute(key string) (*Attribute, bool) {
	for _, a := range l.attributes {
		if a.Key == key {
			return a, true
		}
	}
	return nil, false
}

// Dexterity returns the modified DEX value, or 0 when the entity has none.
func (l *Living) Dexterity() int {
	if a, ok := l.Attribute(DexterityKey); ok {
		return a.ModifiedValue
	}
	return 0
}

// Inventory returns the current inventory value.
func (l *Living) Inventory() inventory.Inventory { return l.inv }

// CurrentWeapon returns the equipped weapon, or nil.
func (l *Living) CurrentWeapon() *item.Item { return l.weapon }

// CurrentConsumable returns the equipped consumable, or nil.
func (l *Living) CurrentConsumable() *item.Item { return l.consumable }

// SetCurrentWeapon equips w; nil unequips.
func (l *Living) SetCurrentWeapon(w *item.Item) { l.weapon = w }

// SetCurrentConsumable equips c; nil unequips.
func (l *Living) SetCurrentConsumable(c *item.Item) { l.consumable = c }

// HealthDescription describes remaining health for display.
//
// Postcondition: Returns a non-empty string.
func (l *Living) HealthDescription() string {
	if l.hp <= 0 {
		return "dead"
	}
	pct := float64(l.hp) / float64(l.maxHP)
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.85:
		return "barely scratched"
	case pct >= 0.60:
		return "lightly wounded"
	case pct >= 0.40:
		return "moderately wounded"
	case pct >= 0.20:
		return "heavily wounded"
	default:
		return "critically wounded"
	}
}

// TakeDamage subtracts n hit points, clamping at zero.
//
// Postcondition: Killed fires exactly when hit points move from above zero to
// zero; damage to an already dead entity fires nothing.
func (l *Living) TakeDamage(n int) {
	if n <= 0 || l.hp == 0 {
		return
	}
	l.hp = max(l.hp-n, 0)
	if l.hp == 0 {
		l.Killed.Publish(struct{}{})
	}
}

// Heal adds n hit points, clamping at the maximum.
func (l *Living) Heal(n int) {
	if n <= 0 {
		return
	}
	l.hp = min(l.hp+n, l.maxHP)
}

// CompletelyHeal restores hit points to the maximum.
func (l *Living) CompletelyHeal() { l.hp = l.maxHP }

// ReceiveGold adds n gold. Non-positive amounts are ignored.
func (l *Living) ReceiveGold(n int) {
	if n > 0 {
		l.gold += n
	}
}

// SpendGold removes n gold.
//
// Postcondition: when n exceeds Gold() the error wraps ErrInsufficientGold and
// gold is unchanged. A negative n is rejected and gold is unchanged.
func (l *Living) SpendGold(n int) error {
	if n < 0 {
		return fmt.Errorf("%s cannot spend a negative amount of gold (%d)", l.name, n)
	}
	if n > l.gold {
		return fmt.Errorf("%s only has %d gold and cannot spend %d: %w", l.name, l.gold, n, ErrInsufficientGold)
	}
	l.gold -= n
	return nil
}

// AddItemToInventory adds it to the inventory.
func (l *Living) AddItemToInventory(it *item.Item) { l.inv = l.inv.AddItem(it) }

// RemoveItemFromInventory removes the instance it, unequipping it if equipped.
func (l *Living) RemoveItemFromInventory(it *item.Item) {
	l.inv = l.inv.RemoveItem(it)
	l.dropEquipped()
}

// RemoveItemsFromInventory removes the given quantities atomically.
//
// Postcondition: on error the inventory is unchanged and the error wraps
// inventory.ErrInsufficientItems.
func (l *Living) RemoveItemsFromInventory(qs []inventory.ItemQuantity) error {
	next, err := l.inv.RemoveQuantities(qs)
	if err != nil {
		return err
	}
	l.inv = next
	l.dropEquipped()
	return nil
}

// dropEquipped unequips items no longer held. A consumable is replaced by
// another instance of the same type when one remains.
func (l *Living) dropEquipped() {
	if l.weapon != nil && !l.holds(l.weapon) {
		l.weapon = nil
	}
	if l.consumable != nil && !l.holds(l.consumable) {
		next, _ := l.inv.Find(l.consumable.TypeID)
		l.consumable = next
	}
}

func (l *Living) holds(it *item.Item) bool {
	for _, held := range l.inv.Items() {
		if held == it {
			return true
		}
	}
	return false
}

// UseCurrentWeaponOn performs the equipped weapon's action against target.
// Without a weapon it does nothing.
func (l *Living) UseCurrentWeaponOn(target item.Combatant) {
	if l.weapon == nil {
		return
	}
	l.weapon.PerformAction(l, target, l.report)
}

// UseCurrentConsumable performs the equipped consumable's action on this
// entity and removes it from the inventory. Without a consumable it does nothing.
func (l *Living) UseCurrentConsumable() {
	c := l.consumable
	if c == nil {
		return
	}
	c.PerformAction(l, l, l.report)
	l.RemoveItemFromInventory(c)
}

func (l *Living) report(msg string) { l.ActionPerformed.Publish(msg) }
