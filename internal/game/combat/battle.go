package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/message"
)

// Battle ties one player to one live monster.
//
// A Battle subscribes to both entities when created. Dispose must be called
// when the battle is replaced or the session ends; a disposed Battle ignores
// every call.
type Battle struct {
	player   *entity.Player
	opponent *entity.Monster
	broker   *message.Broker
	dice     *dice.Service
	logger   *zap.Logger
	state    State
	disposed bool

	playerActions   message.Subscription
	opponentActions message.Subscription
	opponentKilled  message.Subscription

	// Victory fires once when the opponent is killed, after the spoils are
	// handed over.
	Victory message.Signal[VictoryEvent]
}

// NewBattle wires a battle and announces the opponent. Call Begin to resolve
// initiative.
//
// Precondition: every argument must be non-nil.
// Postcondition: State() == Initiated; "" and "You see a <name> here!" have
// been raised on broker.
func NewBattle(player *entity.Player, opponent *entity.Monster, broker *message.Broker, d *dice.Service, logger *zap.Logger) *Battle {
	b := &Battle{
		player:   player,
		opponent: opponent,
		broker:   broker,
		dice:     d,
		logger:   logger,
		state:    Initiated,
	}
	b.playerActions = player.ActionPerformed.Subscribe(b.onActionPerformed)
	b.opponentActions = opponent.ActionPerformed.Subscribe(b.onActionPerformed)
	b.opponentKilled = opponent.Killed.Subscribe(b.onOpponentKilled)

	broker.Raise("")
	broker.Raise(fmt.Sprintf("You see a %s here!", opponent.Name()))
	return b
}

// Begin resolves initiative. When the opponent wins it attacks once before
// control returns.
//
// Postcondition: State() is PlayerTurn, or a concluded state when the opening
// attack killed the player.
func (b *Battle) Begin() {
	if b.disposed || b.state != Initiated {
		return
	}
	first := FirstAttacker(b.dice, b.player, b.opponent)
	b.logger.Debug("battle started",
		zap.String("opponent", b.opponent.Name()),
		zap.String("instance_id", b.opponent.InstanceID),
		zap.Bool("player_first", first == SidePlayer),
	)
	if first == SideOpponent {
		b.attackPlayer()
		return
	}
	b.state = PlayerTurn
}

// State returns the battle's phase.
func (b *Battle) State() State { return b.state }

// Opponent returns the monster being fought.
func (b *Battle) Opponent() *entity.Monster { return b.opponent }

// AttackOpponent resolves one player attack and, when the opponent survives,
// its counter-attack.
//
// Without an equipped weapon it raises "You must select a weapon, to attack."
// and nothing else changes.
func (b *Battle) AttackOpponent() {
	if b.disposed || b.state != PlayerTurn {
		return
	}
	if b.player.CurrentWeapon() == nil {
		b.broker.Raise("You must select a weapon, to attack.")
		return
	}
	b.player.UseCurrentWeaponOn(b.opponent)
	if b.disposed || b.state.Concluded() {
		return
	}
	if b.opponent.IsAlive() {
		b.state = OpponentTurn
		b.attackPlayer()
	}
}

// attackPlayer lets the opponent strike and settles whose turn follows.
func (b *Battle) attackPlayer() {
	b.opponent.UseCurrentWeaponOn(b.player)
	if b.disposed {
		return
	}
	if b.player.IsDead() {
		b.state = Defeat
		return
	}
	b.state = PlayerTurn
}

// Dispose detaches the battle from both entities. A battle disposed before it
// concluded is marked Defeat when the player is dead and Fled otherwise.
// Dispose is idempotent.
func (b *Battle) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.player.ActionPerformed.Unsubscribe(b.playerActions)
	b.opponent.ActionPerformed.Unsubscribe(b.opponentActions)
	b.opponent.Killed.Unsubscribe(b.opponentKilled)
	switch {
	case b.state.Concluded():
	case b.player.IsDead():
		b.state = Defeat
	default:
		b.state = Fled
	}
}

func (b *Battle) onActionPerformed(msg string) {
	b.broker.Raise(msg)
}

// onOpponentKilled hands the spoils to the player and raises Victory.
func (b *Battle) onOpponentKilled(struct{}) {
	b.state = Victory
	o := b.opponent
	b.broker.Raise("")
	b.broker.Raise(fmt.Sprintf("You defeated the %s!", o.Name()))

	b.broker.Raise(fmt.Sprintf("You receive %d experience points.", o.RewardXP))
	b.player.AddExperience(o.RewardXP)

	b.broker.Raise(fmt.Sprintf("You receive %d gold.", o.Gold()))
	b.player.ReceiveGold(o.Gold())

	ev := VictoryEvent{MonsterID: o.ID, Experience: o.RewardXP, Gold: o.Gold()}
	for _, it := range o.Inventory().Items() {
		b.broker.Raise(fmt.Sprintf("You receive one %s.", it.Name))
		o.RemoveItemFromInventory(it)
		b.player.AddItemToInventory(it)
		ev.Items = append(ev.Items, it.TypeID)
	}
	b.logger.Debug("battle won",
		zap.Int("monster_id", o.ID),
		zap.Int("experience", ev.Experience),
		zap.Int("gold", ev.Gold),
		zap.Ints("items", ev.Items),
	)
	b.Victory.Publish(ev)
}
