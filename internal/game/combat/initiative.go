package combat

import (
	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/item"
)

// FirstAttacker decides who strikes first using the same contested DEX check
// as an attack: the player goes first when the check succeeds.
func FirstAttacker(d *dice.Service, player, opponent item.Combatant) Side {
	if item.AttackSucceeded(d, player.Dexterity(), opponent.Dexterity()) {
		return SidePlayer
	}
	return SideOpponent
}
