package npc

import (
	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/world"
)

// RollLoot returns the item ids that drop from table, in table order. Each
// entry drops when a d100 roll is at most its percentage.
func RollLoot(table []entity.LootEntry, d *dice.Service) []int {
	var dropped []int
	for _, e := range table {
		if d.RollDice(100, 1, 0) <= e.Percentage {
			dropped = append(dropped, e.ItemID)
		}
	}
	return dropped
}

// SelectEncounter picks a monster id from a weighted encounter table.
//
// A draw in [1, total weight] selects the first entry whose running total
// reaches the draw; the last entry is the fallback.
//
// Postcondition: returns (0, false) only for an empty table.
func SelectEncounter(table []world.MonsterEncounter, d *dice.Service) (int, bool) {
	if len(table) == 0 {
		return 0, false
	}
	total := 0
	for _, m := range table {
		total += m.ChanceOfEncountering
	}
	draw := d.RollDice(total, 1, 0)
	running := 0
	for _, m := range table {
		running += m.ChanceOfEncountering
		if draw <= running {
			return m.MonsterID, true
		}
	}
	return table[len(table)-1].MonsterID, true
}
