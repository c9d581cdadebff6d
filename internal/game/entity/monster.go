package entity

import (
	"github.com/cory-johannsen/wildone/internal/game/item"
)

// LootEntry is one row of a monster's loot table.
type LootEntry struct {
	ItemID     int `yaml:"id"`
	Percentage int `yaml:"percentage"`
}

// Monster is a hostile entity encountered at a location.
type Monster struct {
	Living

	// InstanceID distinguishes spawned copies of the same template.
	InstanceID string
	ID         int
	RewardXP   int
	LootTable  []LootEntry
}

// NewMonster creates a monster at full health wielding weapon.
//
// Precondition: weapon must be an instance owned by this monster alone.
func NewMonster(id int, name string, maxHP int, attrs []*Attribute, weapon *item.Item, rewardXP, gold int) *Monster {
	m := &Monster{
		Living:   newLiving(name, false, maxHP, maxHP, gold, attrs),
		ID:       id,
		RewardXP: rewardXP,
	}
	m.SetCurrentWeapon(weapon)
	return m
}

// AddItemToLootTable sets the drop chance for itemID, replacing an existing entry.
func (m *Monster) AddItemToLootTable(itemID, percentage int) {
	for i, e := range m.LootTable {
		if e.ItemID == itemID {
			m.LootTable = append(m.LootTable[:i:i], m.LootTable[i+1:]...)
			break
		}
	}
	m.LootTable = append(m.LootTable, LootEntry{ItemID: itemID, Percentage: percentage})
}

// Clone returns a fresh full-health copy with its own attributes and weapon
// instance and an empty inventory.
func (m *Monster) Clone() *Monster {
	var weapon *item.Item
	if m.weapon != nil {
		weapon = m.weapon.Clone()
	}
	c := NewMonster(m.ID, m.name, m.maxHP, cloneAttributes(m.attributes), weapon, m.RewardXP, m.gold)
	c.LootTable = append([]LootEntry(nil), m.LootTable...)
	return c
}
