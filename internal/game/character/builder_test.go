package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wildone/internal/game/character"
	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/item"
	"github.com/cory-johannsen/wildone/internal/game/quest"
	"github.com/cory-johannsen/wildone/internal/game/registry"
	"github.com/cory-johannsen/wildone/internal/game/ruleset"
)

func scripted(faces ...int) *dice.Service {
	return dice.NewService(dice.NewSequenceSource(faces...), zap.NewNop())
}

func makeDetails() *ruleset.GameDetails {
	return &ruleset.GameDetails{
		Title: "Wild One",
		Attributes: []ruleset.AttributeDef{
			{Key: "STR", DisplayName: "Strength", Notation: "3d6"},
			{Key: "DEX", DisplayName: "Dexterity", Notation: "3d6"},
		},
		Races: []*ruleset.Race{
			{Key: "HUMAN", Name: "Human"},
			{Key: "DWARF", Name: "Dwarf", Modifiers: map[string]int{"DEX": -2, "STR": 1}},
		},
	}
}

func makeItems(t *testing.T, d *dice.Service) *item.Registry {
	t.Helper()
	items := item.NewRegistry(d, nil)
	defs, err := item.ParseDefs([]byte(`
items:
  - {id: 1001, name: Pointy Stick, category: weapon, price: 1, damage: 1d2}
  - {id: 2001, name: Granola bar, category: consumable, price: 5, heal: 2}
  - {id: 3001, name: Oats, price: 1}
  - {id: 3002, name: Honey, price: 2}
  - {id: 3003, name: Raisins, price: 2}
`))
	require.NoError(t, err)
	for _, def := range defs {
		require.NoError(t, items.Register(def))
	}
	return items
}

func makeRecipes(t *testing.T) *quest.Registry {
	t.Helper()
	r := quest.NewRegistry()
	require.NoError(t, r.AddRecipe(&quest.Recipe{ID: 1, Name: "Granola bar recipe"}))
	return r
}

func TestCreator_RollsAndAppliesFirstRace(t *testing.T) {
	d := scripted(3, 4, 5, 6, 6, 6)
	c, err := character.NewCreator(makeDetails(), d, makeItems(t, d), makeRecipes(t), character.DefaultKit)
	require.NoError(t, err)
	assert.Equal(t, "HUMAN", c.Race().Key)

	attrs := c.Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, 12, attrs[0].BaseValue)
	assert.Equal(t, 18, attrs[1].BaseValue)
	assert.Equal(t, 18, attrs[1].ModifiedValue)
}

func TestCreator_SelectRaceAppliesModifiers(t *testing.T) {
	d := scripted(3, 4, 5, 6, 6, 6)
	c, err := character.NewCreator(makeDetails(), d, makeItems(t, d), makeRecipes(t), character.DefaultKit)
	require.NoError(t, err)

	require.NoError(t, c.SelectRace("DWARF"))
	assert.Equal(t, 13, c.Attributes()[0].ModifiedValue)
	assert.Equal(t, 16, c.Attributes()[1].ModifiedValue)
	assert.Equal(t, 18, c.Attributes()[1].BaseValue)

	require.NoError(t, c.SelectRace("HUMAN"))
	assert.Equal(t, 18, c.Attributes()[1].ModifiedValue)

	assert.Error(t, c.SelectRace("ELF"))
}

func TestCreator_Property_ModifiedIsBasePlusRace(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		d := dice.NewService(dice.NewRandomSource(seed), zap.NewNop())
		c, err := character.NewCreator(makeDetails(), d, nil, nil, character.DefaultKit)
		require.NoError(rt, err)
		require.NoError(rt, c.SelectRace(rapid.SampledFrom([]string{"HUMAN", "DWARF"}).Draw(rt, "race")))
		require.NoError(rt, c.RollNewCharacter())
		for _, a := range c.Attributes() {
			assert.GreaterOrEqual(rt, a.BaseValue, 3)
			assert.LessOrEqual(rt, a.BaseValue, 18)
			assert.Equal(rt, a.BaseValue+c.Race().Modifier(a.Key), a.ModifiedValue)
		}
	})
}

func TestCreator_Build(t *testing.T) {
	d := scripted(3, 4, 5, 6, 6, 6)
	c, err := character.NewCreator(makeDetails(), d, makeItems(t, d), makeRecipes(t), character.DefaultKit)
	require.NoError(t, err)

	p, err := c.Build("Scott")
	require.NoError(t, err)
	assert.Equal(t, "Scott", p.Name())
	assert.Equal(t, 0, p.ExperiencePoints())
	assert.Equal(t, 1, p.Level())
	assert.Equal(t, "10/10", p.HitPoints())
	assert.Equal(t, 10, p.Gold())
	assert.Equal(t, 5, p.Inventory().Len())
	for _, id := range []int{1001, 2001, 3001, 3002, 3003} {
		assert.Equal(t, 1, p.Inventory().CountOf(id), "item %d", id)
	}
	assert.True(t, p.KnowsRecipe(1))
	require.NotNil(t, p.CurrentWeapon())
	assert.Equal(t, 1001, p.CurrentWeapon().TypeID)
	require.NotNil(t, p.CurrentConsumable())
	assert.Equal(t, 2001, p.CurrentConsumable().TypeID)
	assert.Equal(t, 18, p.Dexterity())

	require.NoError(t, c.RollNewCharacter())
	assert.Equal(t, 18, p.Dexterity(), "player attributes are independent of the creator")
}

func TestCreator_BuildErrors(t *testing.T) {
	d := scripted(3)
	c, err := character.NewCreator(makeDetails(), d, makeItems(t, d), makeRecipes(t), character.Kit{HitPoints: 10, Items: []int{4242}})
	require.NoError(t, err)
	_, err = c.Build("")
	assert.Error(t, err)
	_, err = c.Build("Scott")
	assert.ErrorIs(t, err, registry.ErrMissingTemplate)
}
