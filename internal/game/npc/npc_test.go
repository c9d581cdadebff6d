package npc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/item"
	"github.com/cory-johannsen/wildone/internal/game/npc"
	"github.com/cory-johannsen/wildone/internal/game/registry"
	"github.com/cory-johannsen/wildone/internal/game/world"
)

func scripted(faces ...int) *dice.Service {
	return dice.NewService(dice.NewSequenceSource(faces...), zap.NewNop())
}

const templates = `
monsters:
  - id: 1
    name: Snake
    max_hp: 4
    dexterity: 15
    weapon: 1501
    reward_xp: 5
    gold: 1
    loot:
      - {id: 9001, percentage: 25}
      - {id: 9002, percentage: 75}
traders:
  - id: 101
    name: Susan
    inventory:
      - {id: 1001, quantity: 2}
`

func newItems(t *testing.T, d *dice.Service) *item.Registry {
	t.Helper()
	items := item.NewRegistry(d, nil)
	defs, err := item.ParseDefs([]byte(`
items:
  - {id: 1001, name: Pointy Stick, category: weapon, price: 1, damage: 1d2}
  - {id: 1501, name: Snake fang, category: weapon, damage: 1d2}
  - {id: 9001, name: Snake fang, price: 1}
  - {id: 9002, name: Snakeskin, price: 2}
`))
	require.NoError(t, err)
	for _, def := range defs {
		require.NoError(t, items.Register(def))
	}
	return items
}

func newRegistry(t *testing.T, d *dice.Service) *npc.Registry {
	t.Helper()
	f, err := npc.LoadTemplatesFromBytes([]byte(templates))
	require.NoError(t, err)
	r := npc.NewRegistry(newItems(t, d), d, zap.NewNop())
	require.NoError(t, r.Load(f))
	return r
}

func TestSelectEncounter_Boundaries(t *testing.T) {
	table := []world.MonsterEncounter{{MonsterID: 1, ChanceOfEncountering: 30}, {MonsterID: 2, ChanceOfEncountering: 70}}
	for draw, want := range map[int]int{1: 1, 30: 1, 31: 2, 100: 2} {
		id, ok := npc.SelectEncounter(table, scripted(draw))
		require.True(t, ok)
		assert.Equal(t, want, id, "draw %d", draw)
	}
}

func TestSelectEncounter_Empty(t *testing.T) {
	_, ok := npc.SelectEncounter(nil, scripted(1))
	assert.False(t, ok)
}

func TestSelectEncounter_Property_AlwaysFromTable(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "n")
		var table []world.MonsterEncounter
		for i := range n {
			table = append(table, world.MonsterEncounter{MonsterID: i + 1, ChanceOfEncountering: rapid.IntRange(1, 100).Draw(rt, "w")})
		}
		id, ok := npc.SelectEncounter(table, dice.NewService(dice.NewRandomSource(rapid.Uint64().Draw(rt, "seed")), zap.NewNop()))
		require.True(rt, ok)
		assert.GreaterOrEqual(rt, id, 1)
		assert.LessOrEqual(rt, id, n)
	})
}

func TestRollLoot(t *testing.T) {
	table := []entity.LootEntry{{ItemID: 9001, Percentage: 25}, {ItemID: 9002, Percentage: 75}}
	assert.Equal(t, []int{9001, 9002}, npc.RollLoot(table, scripted(25, 75)))
	assert.Equal(t, []int{9002}, npc.RollLoot(table, scripted(26, 1)))
	assert.Empty(t, npc.RollLoot(table, scripted(100, 76)))
}

func TestRegistry_SpawnClonesAndRollsLoot(t *testing.T) {
	d := scripted(10, 90)
	r := newRegistry(t, d)

	m, err := r.Spawn(1)
	require.NoError(t, err)
	assert.Equal(t, "Snake", m.Name())
	assert.Equal(t, 4, m.CurrentHitPoints())
	assert.Equal(t, 15, m.Dexterity())
	assert.NotEmpty(t, m.InstanceID)
	require.NotNil(t, m.CurrentWeapon())
	assert.Equal(t, 1501, m.CurrentWeapon().TypeID)
	assert.Equal(t, 1, m.Inventory().CountOf(9001))
	assert.Equal(t, 0, m.Inventory().CountOf(9002))

	other, err := r.Spawn(1)
	require.NoError(t, err)
	assert.NotEqual(t, m.InstanceID, other.InstanceID)
	assert.NotSame(t, m.CurrentWeapon(), other.CurrentWeapon())
	m.TakeDamage(4)
	assert.Equal(t, 4, other.CurrentHitPoints())
}

func TestRegistry_Errors(t *testing.T) {
	r := newRegistry(t, scripted(1))
	_, err := r.Spawn(99)
	assert.ErrorIs(t, err, registry.ErrMissingTemplate)
	_, err = r.Trader(99)
	assert.ErrorIs(t, err, registry.ErrMissingTemplate)

	f, err := npc.LoadTemplatesFromBytes([]byte("monsters:\n  - {id: 2, name: Rat, max_hp: 3, weapon: 4242}\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, r.Load(f), registry.ErrMissingTemplate)
}

func TestRegistry_TraderIsShared(t *testing.T) {
	r := newRegistry(t, scripted(1))
	a, err := r.Trader(101)
	require.NoError(t, err)
	b, err := r.Trader(101)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 2, a.Inventory().CountOf(1001))
	items := a.Inventory().Items()
	assert.NotSame(t, items[0], items[1])
}

func TestRegistry_MonsterAt(t *testing.T) {
	r := newRegistry(t, scripted(1))
	m, err := r.MonsterAt(&world.Location{})
	require.NoError(t, err)
	assert.Nil(t, m)

	loc := &world.Location{}
	loc.AddMonster(1, 100)
	m, err = r.MonsterAt(loc)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 1, m.ID)
}

func TestMonsterTemplate_Validate(t *testing.T) {
	_, err := npc.LoadTemplatesFromBytes([]byte("monsters:\n  - {id: 0, name: \"\", max_hp: 0}\n"))
	require.Error(t, err)
	for _, frag := range []string{"id must be > 0", "name must not be empty", "max_hp", "weapon"} {
		assert.Contains(t, err.Error(), frag)
	}
	_, err = npc.LoadTemplatesFromBytes([]byte("monsters:\n  - {id: 1, name: A, max_hp: 1, weapon: 1, loot: [{id: 1, percentage: 101}]}\n"))
	assert.Error(t, err)
	_, err = npc.LoadTemplatesFromBytes([]byte("traders:\n  - {id: 1, name: T, inventory: [{id: 1, quantity: 0}]}\n"))
	assert.Error(t, err)
}
