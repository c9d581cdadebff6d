package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/item"
	"github.com/cory-johannsen/wildone/internal/scripting"
)

type fighter struct {
	name   string
	player bool
	dex    int
	hp     int
}

func (f *fighter) Name() string { return f.name }
func (f *fighter) IsPlayer() bool { return f.player }
func (f *fighter) Dexterity() int { return f.dex }
func (f *fighter) TakeDamage(n int) { f.hp -= n }
func (f *fighter) Heal(n int) { f.hp += n }

func newTestManager(t testing.TB, face int) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	d := dice.NewService(dice.NewConstantSource(face), logger)
	m := scripting.NewManager(d, logger, 0)
	t.Cleanup(m.Close)
	return m, logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0o644))
	return dir
}

func TestManager_LoadDir_MultipleFilesOrderedByName(t *testing.T) {
	m, _ := newTestManager(t, 1)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`greeting = "Welcome"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`
		function greet(player) return greeting .. ", " .. player.name end
	`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`not lua`), 0o644))
	require.NoError(t, m.LoadDir(dir))

	msg, err := m.RunLocationHook("greet", entity.NewPlayer("Scott", 0, 10, 10, nil, 10))
	require.NoError(t, err)
	assert.Equal(t, "Welcome, Scott", msg)
}

func TestManager_LoadDir_InvalidLua(t *testing.T) {
	m, _ := newTestManager(t, 1)
	dir := writeTempLua(t, "bad.lua", `this is not valid lua @@@@`)
	err := m.LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.lua")
}

func TestManager_LoadDir_MissingDir(t *testing.T) {
	m, _ := newTestManager(t, 1)
	assert.Error(t, m.LoadDir(filepath.Join(t.TempDir(), "absent")))
}

func TestManager_Has(t *testing.T) {
	m, _ := newTestManager(t, 1)
	require.NoError(t, m.LoadString(`function present() end; not_a_function = 3`))
	assert.True(t, m.Has("present"))
	assert.False(t, m.Has("not_a_function"))
	assert.False(t, m.Has("absent"))
}

func TestManager_RunItemHook_Outcome(t *testing.T) {
	m, _ := newTestManager(t, 3)
	require.NoError(t, m.LoadString(`
		function fire_bomb(actor, target)
			local dmg = engine.roll("2d6")
			return actor.name .. " throws a bomb at " .. target.name .. ".", dmg, nil
		end
	`))
	out, err := m.RunItemHook("fire_bomb",
		&fighter{name: "Scott", player: true, dex: 10},
		&fighter{name: "Snake", dex: 8})
	require.NoError(t, err)
	assert.Equal(t, item.ScriptOutcome{Message: "Scott throws a bomb at Snake.", Damage: 6}, out)
}

func TestManager_RunItemHook_SeesCombatantFields(t *testing.T) {
	m, _ := newTestManager(t, 1)
	require.NoError(t, m.LoadString(`
		function inspect(actor, target)
			if actor.is_player and not target.is_player then
				return nil, 0, actor.dexterity + target.dexterity
			end
			return "wrong"
		end
	`))
	out, err := m.RunItemHook("inspect", &fighter{name: "A", player: true, dex: 4}, &fighter{name: "B", dex: 5})
	require.NoError(t, err)
	assert.Equal(t, item.ScriptOutcome{Heal: 9}, out)
}

func TestManager_RunItemHook_Errors(t *testing.T) {
	m, logs := newTestManager(t, 1)
	require.NoError(t, m.LoadString(`
		function broken() error("intentional error") end
		function badtype() return "ok", "lots" end
		function spin() while true do end end
	`))
	actor, target := &fighter{name: "A", player: true}, &fighter{name: "B"}

	_, err := m.RunItemHook("absent", actor, target)
	assert.ErrorIs(t, err, scripting.ErrUnknownHook)

	_, err = m.RunItemHook("broken", actor, target)
	assert.ErrorContains(t, err, "intentional error")

	_, err = m.RunItemHook("badtype", actor, target)
	assert.ErrorContains(t, err, "damage")

	_, err = m.RunItemHook("spin", actor, target)
	assert.Error(t, err)

	failures := logs.FilterMessage("scripting: item hook failed")
	require.Equal(t, 4, failures.Len(), "each failure is logged once")
	for i, hook := range []string{"absent", "broken", "badtype", "spin"} {
		assert.Equal(t, hook, failures.All()[i].ContextMap()["hook"])
	}

	// The VM stays usable after a runaway hook.
	require.NoError(t, m.LoadString(`function fine() return "still here" end`))
	out, err := m.RunItemHook("fine", actor, target)
	require.NoError(t, err)
	assert.Equal(t, "still here", out.Message)
}

func TestManager_ScriptedActionAppliesOutcome(t *testing.T) {
	m, _ := newTestManager(t, 1)
	require.NoError(t, m.LoadString(`
		function vampire_bite(actor, target)
			return "The bite drains you.", 3, 1
		end
	`))
	target := &fighter{name: "Scott", player: true, hp: 10}
	var reports []string
	item.ScriptedAction{Hook: "vampire_bite", Runner: m}.Execute(
		&fighter{name: "Vampire"}, target, func(s string) { reports = append(reports, s) })

	assert.Equal(t, []string{"The bite drains you."}, reports)
	assert.Equal(t, 8, target.hp)
}

func TestManager_ScriptedActionFailureIsLoggedNotReported(t *testing.T) {
	m, logs := newTestManager(t, 1)
	require.NoError(t, m.LoadString(`function fizzle() error("wet fuse") end`))
	target := &fighter{name: "Rat", hp: 5}
	var reports []string
	item.ScriptedAction{Hook: "fizzle", Runner: m}.Execute(
		&fighter{name: "Scott", player: true}, target, func(s string) { reports = append(reports, s) })

	assert.Empty(t, reports)
	assert.Equal(t, 5, target.hp)
	entries := logs.FilterMessage("scripting: item hook failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Rat", entries[0].ContextMap()["target"])
}

func TestManager_RunLocationHook(t *testing.T) {
	m, logs := newTestManager(t, 1)
	require.NoError(t, m.LoadString(`
		function shrine(player)
			engine.log("shrine visited by " .. player.name)
			if player.hit_points < player.maximum_hit_points then
				return "The shrine hums softly."
			end
		end
		function numeric() return 42 end
	`))
	wounded := entity.NewPlayer("Scott", 0, 10, 4, nil, 10)
	msg, err := m.RunLocationHook("shrine", wounded)
	require.NoError(t, err)
	assert.Equal(t, "The shrine hums softly.", msg)
	assert.Equal(t, 1, logs.FilterMessage("script").Len())

	msg, err = m.RunLocationHook("shrine", entity.NewPlayer("Scott", 0, 10, 10, nil, 10))
	require.NoError(t, err)
	assert.Empty(t, msg)

	_, err = m.RunLocationHook("numeric", wounded)
	assert.Error(t, err)
}

func TestManager_EngineRollRejectsBadNotation(t *testing.T) {
	m, _ := newTestManager(t, 1)
	require.NoError(t, m.LoadString(`function bad() return nil, engine.roll("banana") end`))
	_, err := m.RunItemHook("bad", &fighter{name: "A"}, &fighter{name: "B"})
	assert.ErrorContains(t, err, "engine.roll")
}

func TestNewManager_PanicsOnNilDependencies(t *testing.T) {
	d := dice.NewService(dice.NewConstantSource(1), zap.NewNop())
	assert.Panics(t, func() { scripting.NewManager(nil, zap.NewNop(), 0) })
	assert.Panics(t, func() { scripting.NewManager(d, nil, 0) })
}

func TestProperty_EngineRollMatchesConstantFace(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		face := rapid.IntRange(1, 6).Draw(rt, "face")
		count := rapid.IntRange(1, 5).Draw(rt, "count")
		d := dice.NewService(dice.NewConstantSource(face), zap.NewNop())
		m := scripting.NewManager(d, zap.NewNop(), 0)
		defer m.Close()
		if err := m.LoadString(`function r(a, t) return nil, engine.roll(t.name) end`); err != nil {
			rt.Fatalf("load: %v", err)
		}
		notation := string(rune('0'+count)) + "d6"
		out, err := m.RunItemHook("r", &fighter{name: "A"}, &fighter{name: notation})
		if err != nil {
			rt.Fatalf("hook: %v", err)
		}
		if out.Damage != face*count {
			rt.Fatalf("%s with face %d: got %d", notation, face, out.Damage)
		}
	})
}
