package console_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/wildone/internal/frontend/console"
	"github.com/cory-johannsen/wildone/internal/game/content"
	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/message"
	"github.com/cory-johannsen/wildone/internal/game/session"
	"github.com/cory-johannsen/wildone/internal/scripting"
)

const contentDir = "../../../content"

type fixture struct {
	game    *session.Game
	console *console.Console
	out     *bytes.Buffer
	logs    *observer.ObservedLogs
	saves   int
	saveErr error
}

// newFixture starts Scott at Home (0,-1) in the shipped content, away from
// every monster.
func newFixture(t *testing.T, in io.Reader, withSave bool) *fixture {
	t.Helper()
	d := dice.NewService(dice.NewConstantSource(1), zap.NewNop())
	hooks := scripting.NewManager(d, zap.NewNop(), 0)
	t.Cleanup(hooks.Close)
	require.NoError(t, hooks.LoadDir(filepath.Join(contentDir, "scripts")))
	cat, err := content.Load(contentDir, d, hooks, zap.NewNop())
	require.NoError(t, err)

	player := entity.NewPlayer("Scott", 0, 10, 10, nil, 10)
	for _, id := range []int{1001, 2001, 3001, 3002, 3003} {
		it, err := cat.Create(id)
		require.NoError(t, err)
		player.AddItemToInventory(it)
	}
	r, err := cat.Recipe(1)
	require.NoError(t, err)
	player.LearnRecipe(r)

	home, ok := cat.World.LocationAt(0, -1)
	require.True(t, ok)
	broker := message.NewBroker(zap.NewNop())
	g := session.New(player, home, session.Deps{
		World:  cat.World,
		NPCs:   cat.NPCs,
		Items:  cat.Items,
		Broker: broker,
		Dice:   d,
		Hooks:  hooks,
		Logger: zap.NewNop(),
	}, session.DefaultOptions())
	t.Cleanup(g.Dispose)

	core, logs := observer.New(zap.DebugLevel)
	f := &fixture{game: g, out: &bytes.Buffer{}, logs: logs}
	cfg := console.Config{
		Game:    g,
		Broker:  broker,
		Items:   cat.Items,
		Details: cat.Details,
		Logger:  zap.New(core),
	}
	if withSave {
		cfg.Save = func(context.Context) error {
			f.saves++
			return f.saveErr
		}
	}
	f.console = console.New(cfg, in, f.out)
	t.Cleanup(f.console.Close)
	return f
}

// run executes each line and returns the output lines they produced.
func (f *fixture) run(lines ...string) []string {
	f.out.Reset()
	for _, l := range lines {
		f.console.Execute(context.Background(), l)
	}
	return strings.Split(strings.TrimRight(f.out.String(), "\n"), "\n")
}

func TestRun_BannerLookAndQuit(t *testing.T) {
	f := newFixture(t, strings.NewReader("look\nquit\nlook\n"), true)
	require.NoError(t, f.console.Run(context.Background()))

	out := f.out.String()
	assert.True(t, strings.HasPrefix(out, "Wild One v0.2.0\nA small adventure on the edge of town\n"))
	assert.Contains(t, out, "\nHome\nThis is your home.\nExits: north, west\n")
	assert.Contains(t, out, "[Scott 10/10]> ")
	assert.True(t, strings.HasSuffix(out, "Game saved.\nGoodbye.\n"), out)
	assert.Equal(t, 1, f.saves)
}

func TestRun_EndOfInput(t *testing.T) {
	f := newFixture(t, strings.NewReader("status\n"), false)
	require.NoError(t, f.console.Run(context.Background()))
	assert.Contains(t, f.out.String(), "Scott, level 1\nHit points: 10/10\n")
}

func TestRun_Cancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	f := newFixture(t, r, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, f.console.Run(ctx), context.Canceled)
}

func TestExecute_Movement(t *testing.T) {
	f := newFixture(t, strings.NewReader(""), false)

	assert.Equal(t, []string{"You cannot go that way."}, f.run("south"))
	assert.Equal(t, []string{"", "Town Square", "You see a fountain here."}, f.run("n"))
	assert.Equal(t, 0, f.game.Location().Y)
}

func TestExecute_UnknownAndMissingArguments(t *testing.T) {
	f := newFixture(t, strings.NewReader(""), false)

	assert.Equal(t, []string{"You don't know how to 'dance'."}, f.run("dance"))
	assert.Equal(t, []string{"Buy what?"}, f.run("buy"))
	assert.Equal(t, []string{"Craft what?"}, f.run("craft"))
	assert.Equal(t, []string{"Choose which number?"}, f.run("choose x"))
	assert.Empty(t, strings.TrimSpace(strings.Join(f.run("   "), "")))
}

func TestExecute_TradeAtTheFarmhouse(t *testing.T) {
	f := newFixture(t, strings.NewReader(""), false)

	arrival := f.run("west")
	assert.Equal(t, "Farmer's House", arrival[1])
	assert.Contains(t, arrival, "You receive the 'Clear the farmer's field' quest")

	assert.Equal(t, []string{
		"Farmer Ted sells:",
		"  1 Pointy Stick, 1 gold each",
		"  5 Oats, 1 gold each",
	}, f.run("wares"))

	assert.Equal(t, []string{"You buy one Oats for 1 gold."}, f.run("buy OATS"))
	assert.Equal(t, 9, f.game.Player().Gold())
	assert.Equal(t, []string{"Farmer Ted has none of those."}, f.run("buy dragon"))
	assert.Equal(t, []string{"You sell one Honey for 2 gold."}, f.run("sell honey"))
	assert.Equal(t, []string{"You do not have one of those."}, f.run("sell honey"))
}

func TestExecute_NoTrader(t *testing.T) {
	f := newFixture(t, strings.NewReader(""), false)
	assert.Equal(t, []string{"There is no one to trade with here."}, f.run("wares"))
	assert.Equal(t, []string{"There is no one to trade with here."}, f.run("buy oats"))
}

func TestExecute_CharacterCommands(t *testing.T) {
	f := newFixture(t, strings.NewReader(""), false)

	assert.Equal(t, []string{"  1. Granola bar: 1 Oats, 1 Honey, 1 Raisins"}, f.run("recipes"))
	assert.Equal(t, []string{"You craft 1 Granola bar"}, f.run("craft granola bar"))
	assert.Equal(t, []string{
		"You do not have the required ingredients:",
		"  1 Oats",
		"  1 Honey",
		"  1 Raisins",
	}, f.run("craft 1"))
	assert.Equal(t, []string{"You do not know that recipe."}, f.run("craft 7"))

	assert.Equal(t, []string{
		"You are carrying:",
		"  1 Pointy Stick",
		"  2 Granola bar",
	}, f.run("i"))

	assert.Equal(t, []string{"You have nothing ready to use."}, f.run("use"))
	assert.Equal(t, []string{"You ready the Granola bar."}, f.run("ready granola bar"))
	assert.Equal(t, []string{"You wield the Pointy Stick."}, f.run("wield pointy stick"))
	assert.Equal(t, []string{"You do not have a weapon of that kind."}, f.run("wield granola bar"))
	assert.Equal(t, []string{"You have no quests."}, f.run("quests"))
}

func TestExecute_Dialogue(t *testing.T) {
	f := newFixture(t, strings.NewReader(""), false)
	assert.Equal(t, []string{"There is no one to talk to here."}, f.run("talk"))

	f.run("north")
	arrival := f.run("east")
	assert.Equal(t, "Town Gate", arrival[1])
	assert.Contains(t, arrival, `The gate guard yawns. "Forest's full of spiders this time of year."`)

	assert.Equal(t, []string{
		`The gate guard yawns. "Forest's full of spiders this time of year."`,
		`  1. "Is it safe?"`,
	}, f.run("talk"))
	assert.Equal(t, []string{`"Is it safe?"`, `  1. "No."`}, f.run("choose 1"))
	assert.Equal(t, []string{`"No."`}, f.run("c 1"))
	assert.Equal(t, []string{"That is not one of the choices."}, f.run("choose 1"))
}

func TestExecute_SaveFailures(t *testing.T) {
	f := newFixture(t, strings.NewReader(""), true)
	f.saveErr = errors.New("disk full")

	assert.Equal(t, []string{"Your game could not be saved."}, f.run("save"))
	assert.Equal(t, 1, f.logs.FilterMessage("saving game").Len())

	g := newFixture(t, strings.NewReader(""), false)
	assert.Equal(t, []string{"Saving is disabled."}, g.run("save"))
}

func TestExecute_Help(t *testing.T) {
	f := newFixture(t, strings.NewReader(""), false)
	out := f.run("?")
	assert.Equal(t, "Available commands:", out[0])
	assert.Contains(t, out, "  Movement:")
	assert.Contains(t, out, "  Trade:")
}
