package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wildone/internal/game/inventory"
	"github.com/cory-johannsen/wildone/internal/game/quest"
	"github.com/cory-johannsen/wildone/internal/game/world"
)

// completeQuests hands in every quest offered at loc that the player holds,
// has not completed, and carries the required items for.
//
// Postcondition: a completed quest is never processed again.
func (g *Game) completeQuests(loc *world.Location) {
	for _, q := range loc.Quests {
		status, ok := g.player.QuestStatus(q.ID)
		if !ok || status.Completed {
			continue
		}
		if err := g.player.RemoveItemsFromInventory(q.ItemsToComplete); err != nil {
			continue
		}
		g.raise("")
		g.raise(fmt.Sprintf("You completed the '%s' quest", q.Name))
		g.raise(fmt.Sprintf("You receive %d experience points", q.RewardXP))
		g.player.AddExperience(q.RewardXP)
		g.raise(fmt.Sprintf("You receive %d gold", q.RewardGold))
		g.player.ReceiveGold(q.RewardGold)
		g.giveItems(q.RewardItems, "You receive a %s")
		status.Complete()
		g.deps.Logger.Debug("quest completed",
			zap.Int("quest_id", q.ID),
			zap.String("player", g.player.Name()),
		)
	}
}

// grantQuests gives the player every quest offered at loc that they have
// never received, narrating what it asks for and what it pays.
func (g *Game) grantQuests(loc *world.Location) {
	for _, q := range loc.Quests {
		if _, ok := g.player.QuestStatus(q.ID); ok {
			continue
		}
		g.player.AddQuest(q)
		g.raise("")
		g.raise(fmt.Sprintf("You receive the '%s' quest", q.Name))
		g.raise(q.Description)
		g.raise("Return with:")
		g.raiseQuantities("   ", q.ItemsToComplete)
		g.raise("And you will receive:")
		g.raise(fmt.Sprintf("   %d experience points", q.RewardXP))
		g.raise(fmt.Sprintf("   %d gold", q.RewardGold))
		g.raiseQuantities("   ", q.RewardItems)
	}
}

// CraftItemUsing consumes the recipe's ingredients and produces its outputs.
// Crafting is all-or-nothing: on a shortfall the ingredient list is narrated
// and nothing changes.
func (g *Game) CraftItemUsing(r *quest.Recipe) {
	if err := g.player.RemoveItemsFromInventory(r.Ingredients); err != nil {
		g.raise("You do not have the required ingredients:")
		g.raiseQuantities("  ", r.Ingredients)
		return
	}
	g.giveItems(r.Outputs, "You craft 1 %s")
	g.deps.Logger.Debug("recipe crafted",
		zap.Int("recipe_id", r.ID),
		zap.String("player", g.player.Name()),
	)
}

// giveItems creates one instance per unit of every line, adds it to the
// player and narrates format with the item name.
func (g *Game) giveItems(qs []inventory.ItemQuantity, format string) {
	for _, q := range qs {
		for range q.Quantity {
			it, err := g.deps.Items.Create(q.ItemID)
			if err != nil {
				g.deps.Logger.Error("creating item", zap.Int("item_id", q.ItemID), zap.Error(err))
				break
			}
			g.player.AddItemToInventory(it)
			g.raise(fmt.Sprintf(format, it.Name))
		}
	}
}

func (g *Game) raiseQuantities(indent string, qs []inventory.ItemQuantity) {
	for _, q := range qs {
		g.raise(fmt.Sprintf("%s%d %s", indent, q.Quantity, g.deps.Items.Name(q.ItemID)))
	}
}
