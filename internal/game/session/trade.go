package session

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/item"
)

// BuyItem buys one item of typeID from the current trader at its price.
func (g *Game) BuyItem(typeID int) {
	if g.trader == nil {
		g.raise("There is no one to trade with here.")
		return
	}
	it, ok := g.trader.Inventory().Find(typeID)
	if !ok {
		g.raise(fmt.Sprintf("%s has none of those.", g.trader.Name()))
		return
	}
	if err := g.player.SpendGold(it.Price); err != nil {
		if errors.Is(err, entity.ErrInsufficientGold) {
			g.raise(fmt.Sprintf("You do not have enough gold to buy the %s.", it.Name))
		}
		return
	}
	g.trader.RemoveItemFromInventory(it)
	g.trader.ReceiveGold(it.Price)
	g.player.AddItemToInventory(it)
	g.raise(fmt.Sprintf("You buy one %s for %d gold.", it.Name, it.Price))
}

// SellItem sells one item of typeID from the player to the current trader.
func (g *Game) SellItem(typeID int) {
	if g.trader == nil {
		g.raise("There is no one to trade with here.")
		return
	}
	it, ok := g.player.Inventory().Find(typeID)
	if !ok {
		g.raise("You do not have one of those.")
		return
	}
	if err := g.trader.SpendGold(it.Price); err != nil {
		g.raise(fmt.Sprintf("%s cannot afford the %s.", g.trader.Name(), it.Name))
		return
	}
	g.player.RemoveItemFromInventory(it)
	g.player.ReceiveGold(it.Price)
	g.trader.AddItemToInventory(it)
	g.raise(fmt.Sprintf("You sell one %s for %d gold.", it.Name, it.Price))
}

// EquipWeapon wields the first weapon of typeID in the player's inventory.
func (g *Game) EquipWeapon(typeID int) {
	it := g.findOwned(typeID, item.Weapon)
	if it == nil {
		return
	}
	g.player.SetCurrentWeapon(it)
	g.raise(fmt.Sprintf("You wield the %s.", it.Name))
}

// EquipConsumable readies the first consumable of typeID in the player's
// inventory.
func (g *Game) EquipConsumable(typeID int) {
	it := g.findOwned(typeID, item.Consumable)
	if it == nil {
		return
	}
	g.player.SetCurrentConsumable(it)
	g.raise(fmt.Sprintf("You ready the %s.", it.Name))
}

func (g *Game) findOwned(typeID int, c item.Category) *item.Item {
	for _, it := range g.player.Inventory().Items() {
		if it.TypeID == typeID && it.Category == c {
			return it
		}
	}
	g.raise(fmt.Sprintf("You do not have a %s of that kind.", c))
	return nil
}

// ChooseDialogue follows choice i of the current dialogue node and narrates
// the reply.
func (g *Game) ChooseDialogue(i int) {
	if g.dialogue == nil {
		g.raise("There is no one to talk to here.")
		return
	}
	text, err := g.dialogue.Choose(i)
	if err != nil {
		g.raise("That is not one of the choices.")
		return
	}
	if text != "" {
		g.raise(text)
	}
}
