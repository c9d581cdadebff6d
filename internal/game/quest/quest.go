// Package quest defines quests, per-player quest status, and crafting recipes,
// along with their template registry and data-file loader.
package quest

import "github.com/cory-johannsen/wildone/internal/game/inventory"

// Quest is an immutable quest template.
type Quest struct {
	ID              int
	Name            string
	Description     string
	ItemsToComplete []inventory.ItemQuantity
	RewardXP        int
	RewardGold      int
	RewardItems     []inventory.ItemQuantity
}

// Status pairs a Quest with one player's completion flag.
//
// Completed only ever moves from false to true.
type Status struct {
	Quest     *Quest
	Completed bool
}

// NewStatus returns an incomplete Status for q.
func NewStatus(q *Quest) *Status {
	return &Status{Quest: q}
}

// Complete marks the quest complete. It reports false when it already was.
func (s *Status) Complete() bool {
	if s.Completed {
		return false
	}
	s.Completed = true
	return true
}

// Recipe is an immutable crafting template.
type Recipe struct {
	ID          int
	Name        string
	Ingredients []inventory.ItemQuantity
	Outputs     []inventory.ItemQuantity
}
