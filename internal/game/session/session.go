// Package session holds the root game aggregate: one player moving through the
// world, fighting, trading, questing and crafting. Every outcome is narrated
// through the message broker.
package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wildone/internal/game/combat"
	"github.com/cory-johannsen/wildone/internal/game/dialogue"
	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/item"
	"github.com/cory-johannsen/wildone/internal/game/message"
	"github.com/cory-johannsen/wildone/internal/game/npc"
	"github.com/cory-johannsen/wildone/internal/game/world"
)

// LocationHooks runs the script attached to a location on arrival.
// Implemented by the Lua scripting manager.
type LocationHooks interface {
	RunLocationHook(hook string, player *entity.Player) (string, error)
}

// Deps are the collaborators a Game is wired to.
type Deps struct {
	World  *world.World
	NPCs   *npc.Registry
	Items  *item.Registry
	Broker *message.Broker
	Dice   *dice.Service
	// Hooks may be nil; location scripts are then ignored.
	Hooks  LocationHooks
	Logger *zap.Logger
}

// Options tune a Game.
type Options struct {
	// SafeLocation is where a killed player wakes up.
	SafeLocation world.Coordinate
	// LogLimit bounds the retained message history. Zero uses
	// message.DefaultLogLimit.
	LogLimit int
}

// DefaultOptions returns the standard options: a safe location at (0, -1)
// and a 250 message history.
func DefaultOptions() Options {
	return Options{SafeLocation: world.Coordinate{X: 0, Y: -1}, LogLimit: message.DefaultLogLimit}
}

// Game is one player's play session.
//
// Game is not safe for concurrent use; one frontend goroutine drives it.
type Game struct {
	deps Deps
	opts Options

	player   *entity.Player
	location *world.Location
	monster  *entity.Monster
	battle   *combat.Battle
	trader   *entity.Trader
	dialogue *dialogue.Cursor
	log      *message.Log
	disposed bool
	// arrivals counts SetLocation calls so a nested arrival can be detected.
	arrivals int

	brokerSub  message.Subscription
	killedSub  message.Subscription
	levelSub   message.Subscription
	victorySub message.Subscription
}

// New wires a session for player and moves it to start.
//
// Precondition: player, start and every Deps field except Hooks must be non-nil.
// Postcondition: Location() == start and the arrival at start has been
// resolved exactly as SetLocation does.
func New(player *entity.Player, start *world.Location, deps Deps, opts Options) *Game {
	g := &Game{
		deps:   deps,
		opts:   opts,
		player: player,
		log:    message.NewLog(opts.LogLimit),
	}
	g.brokerSub = deps.Broker.Subscribe(g.log.Append)
	g.killedSub = player.Killed.Subscribe(g.onPlayerKilled)
	g.levelSub = player.LeveledUp.Subscribe(g.onLeveledUp)
	g.SetLocation(start)
	return g
}

// Player returns the session's player.
func (g *Game) Player() *entity.Player { return g.player }

// Location returns the current location.
func (g *Game) Location() *world.Location { return g.location }

// Monster returns the monster at the current location, or nil.
func (g *Game) Monster() *entity.Monster { return g.monster }

// HasMonster reports whether a monster is present.
func (g *Game) HasMonster() bool { return g.monster != nil }

// Battle returns the battle against the current monster, or nil.
func (g *Game) Battle() *combat.Battle { return g.battle }

// Trader returns the trader at the current location, or nil.
func (g *Game) Trader() *entity.Trader { return g.trader }

// HasTrader reports whether a trader is present.
func (g *Game) HasTrader() bool { return g.trader != nil }

// Dialogue returns the dialogue cursor for the current location, or nil.
func (g *Game) Dialogue() *dialogue.Cursor { return g.dialogue }

// Messages returns the retained narration, oldest first.
func (g *Game) Messages() []string { return g.log.Entries() }

// Exits returns the directions the player can move in.
func (g *Game) Exits() []world.Direction { return g.deps.World.Exits(g.location) }

// SetLocation moves the player to loc and resolves the arrival in a fixed
// order: quest completion, quest grants, encounter roll, trader, dialogue,
// then the location script.
//
// Precondition: loc must be non-nil.
func (g *Game) SetLocation(loc *world.Location) {
	if g.disposed {
		return
	}
	g.arrivals++
	arrival := g.arrivals
	g.location = loc
	g.completeQuests(loc)
	g.grantQuests(loc)
	g.setMonster(g.spawnAt(loc))
	if g.arrivals != arrival {
		// the opening attack killed the player, who has already respawned
		return
	}
	g.trader = loc.Trader
	g.enterDialogue(loc.Dialogue)
	g.runLocationHook(loc)
}

// Move steps one location in dir. A blocked direction does nothing.
func (g *Game) Move(dir world.Direction) {
	next, ok := g.deps.World.Neighbor(g.location, dir)
	if !ok {
		return
	}
	g.SetLocation(next)
}

// MoveNorth moves to (x, y+1).
func (g *Game) MoveNorth() { g.Move(world.North) }

// MoveEast moves to (x+1, y).
func (g *Game) MoveEast() { g.Move(world.East) }

// MoveSouth moves to (x, y-1).
func (g *Game) MoveSouth() { g.Move(world.South) }

// MoveWest moves to (x-1, y).
func (g *Game) MoveWest() { g.Move(world.West) }

// AttackCurrentMonster takes the player's turn in the current battle.
func (g *Game) AttackCurrentMonster() {
	if g.battle == nil {
		g.raise("There is nothing to attack here.")
		return
	}
	g.battle.AttackOpponent()
}

// UseCurrentConsumable uses the equipped consumable. During a battle the
// battle narrates the outcome; otherwise the session does.
func (g *Game) UseCurrentConsumable() {
	if g.player.CurrentConsumable() == nil {
		return
	}
	if g.battle != nil {
		g.player.UseCurrentConsumable()
		return
	}
	sub := g.player.ActionPerformed.Subscribe(g.raise)
	g.player.UseCurrentConsumable()
	g.player.ActionPerformed.Unsubscribe(sub)
}

// Dispose ends the battle and detaches the session from the broker and the
// player. Dispose is idempotent; a disposed Game ignores location changes.
func (g *Game) Dispose() {
	if g.disposed {
		return
	}
	g.setMonster(nil)
	g.disposed = true
	g.deps.Broker.Unsubscribe(g.brokerSub)
	g.player.Killed.Unsubscribe(g.killedSub)
	g.player.LeveledUp.Unsubscribe(g.levelSub)
}

func (g *Game) raise(msg string) { g.deps.Broker.Raise(msg) }

// spawnAt rolls the encounter table of loc. Spawn failures are logged and
// treated as an empty location.
func (g *Game) spawnAt(loc *world.Location) *entity.Monster {
	m, err := g.deps.NPCs.MonsterAt(loc)
	if err != nil {
		g.deps.Logger.Error("spawning monster",
			zap.String("location", loc.Name),
			zap.Error(err),
		)
		return nil
	}
	return m
}

// setMonster replaces the current monster, disposing the old battle and
// starting a new one when m is non-nil.
func (g *Game) setMonster(m *entity.Monster) {
	if g.battle != nil {
		g.battle.Victory.Unsubscribe(g.victorySub)
		g.battle.Dispose()
		g.battle = nil
	}
	g.monster = m
	if m == nil || g.disposed {
		return
	}
	b := combat.NewBattle(g.player, m, g.deps.Broker, g.deps.Dice, g.deps.Logger)
	g.battle = b
	g.victorySub = b.Victory.Subscribe(g.onVictory)
	b.Begin()
}

func (g *Game) onVictory(combat.VictoryEvent) {
	g.setMonster(g.spawnAt(g.location))
}

// onPlayerKilled ends the battle as a defeat, restores the player and moves
// them to the safe location.
func (g *Game) onPlayerKilled(struct{}) {
	g.raise("")
	g.raise("You have been killed.")
	g.setMonster(nil)
	g.player.CompletelyHeal()

	safe, ok := g.deps.World.LocationAt(g.opts.SafeLocation.X, g.opts.SafeLocation.Y)
	if !ok {
		g.deps.Logger.Warn("safe location missing; staying put",
			zap.Stringer("safe_location", g.opts.SafeLocation),
		)
		safe = g.location
	}
	g.SetLocation(safe)
}

func (g *Game) onLeveledUp(level int) {
	g.raise(fmt.Sprintf("You are now level %d!", level))
}

// enterDialogue resets the cursor to root and narrates its opening text.
func (g *Game) enterDialogue(root *dialogue.Node) {
	if root == nil {
		g.dialogue = nil
		return
	}
	g.dialogue = dialogue.NewCursor(root)
	if text := g.dialogue.Text(); text != "" {
		g.raise(text)
	}
}

func (g *Game) runLocationHook(loc *world.Location) {
	if loc.Script == "" || g.deps.Hooks == nil {
		return
	}
	msg, err := g.deps.Hooks.RunLocationHook(loc.Script, g.player)
	if err != nil {
		g.deps.Logger.Error("location script failed",
			zap.String("location", loc.Name),
			zap.String("hook", loc.Script),
			zap.Error(err),
		)
		return
	}
	if msg != "" {
		g.raise(msg)
	}
}
