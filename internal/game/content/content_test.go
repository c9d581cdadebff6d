package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/wildone/internal/game/content"
	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/item"
	"github.com/cory-johannsen/wildone/internal/scripting"
)

const shippedContent = "../../../content"

func newDice() *dice.Service {
	return dice.NewService(dice.NewConstantSource(2), zap.NewNop())
}

func newHooks(t *testing.T, d *dice.Service, dir string) *scripting.Manager {
	t.Helper()
	m := scripting.NewManager(d, zap.NewNop(), 0)
	t.Cleanup(m.Close)
	if dir != "" {
		require.NoError(t, m.LoadDir(dir))
	}
	return m
}

func TestLoad_ShippedContent(t *testing.T) {
	d := newDice()
	core, logs := observer.New(zap.InfoLevel)
	hooks := newHooks(t, d, filepath.Join(shippedContent, "scripts"))

	c, err := content.Load(shippedContent, d, hooks, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, "Wild One", c.Details.Title)
	assert.Len(t, c.Details.Races, 3)
	assert.Equal(t, 9, c.World.Len())
	assert.Equal(t, 1, logs.FilterMessage("content loaded").Len())

	home, ok := c.World.LocationAt(0, -1)
	require.True(t, ok)
	assert.Equal(t, "Home", home.Name)

	hut, ok := c.World.LocationAt(0, 1)
	require.True(t, ok)
	require.NotNil(t, hut.Trader)
	assert.Equal(t, "Pete the Herbalist", hut.Trader.Name())
	require.Len(t, hut.Quests, 1)
	assert.Equal(t, "Clear the herb garden", hut.Quests[0].Name)
	assert.NotNil(t, hut.Dialogue)

	r, err := c.Recipe(1)
	require.NoError(t, err)
	assert.Equal(t, "Granola bar", r.Name)
	assert.True(t, c.HasMonster(3))
}

func TestLoad_ScriptedItemsRunTheirHooks(t *testing.T) {
	d := newDice()
	hooks := newHooks(t, d, filepath.Join(shippedContent, "scripts"))
	c, err := content.Load(shippedContent, d, hooks, zap.NewNop())
	require.NoError(t, err)

	tea, err := c.Create(2002)
	require.NoError(t, err)
	assert.Equal(t, item.Consumable, tea.Category)

	p := entity.NewPlayer("Scott", 0, 10, 2, nil, 0)
	var reports []string
	tea.PerformAction(p, p, func(s string) { reports = append(reports, s) })
	assert.Equal(t, []string{"You sip the tea and feel better."}, reports)
	// 1d4+1 with every die showing 2
	assert.Equal(t, 5, p.CurrentHitPoints())
}

func writeData(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	base := map[string]string{
		content.DetailsFile: "title: Test\nattributes:\n  - {key: DEX, display_name: Dexterity, dice_notation: 3d6}\n",
		content.ItemsFile:   "items:\n  - {id: 1, name: Stick, category: weapon, damage: 1d2}\n",
		content.NPCsFile:    "monsters: []\ntraders: []\n",
		content.QuestsFile:  "quests: []\nrecipes: []\n",
		content.WorldFile:   "locations:\n  - {x: 0, y: 0, name: Home}\n",
	}
	for name, data := range files {
		base[name] = data
	}
	for name, data := range base {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
	}
	return dir
}

func TestLoad_MinimalDirectory(t *testing.T) {
	dir := writeData(t, nil)
	c, err := content.Load(dir, newDice(), nil, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, c.Details.HasRaces())
	assert.Equal(t, 1, c.World.Len())
}

func TestLoad_UndefinedItemHook(t *testing.T) {
	d := newDice()
	dir := writeData(t, map[string]string{
		content.ItemsFile: "items:\n  - {id: 1, name: Wand, category: weapon, script: zap}\n",
	})
	_, err := content.Load(dir, d, newHooks(t, d, ""), zap.NewNop())
	assert.ErrorContains(t, err, `script hook "zap" is not defined`)
}

func TestLoad_ScriptedItemWithoutScripting(t *testing.T) {
	dir := writeData(t, map[string]string{
		content.ItemsFile: "items:\n  - {id: 1, name: Wand, category: weapon, script: zap}\n",
	})
	_, err := content.Load(dir, newDice(), nil, zap.NewNop())
	assert.ErrorContains(t, err, "scripting is disabled")
}

func TestLoad_UndefinedLocationHook(t *testing.T) {
	dir := writeData(t, map[string]string{
		content.WorldFile: "locations:\n  - {x: 0, y: 0, name: Home, script: welcome}\n",
	})
	_, err := content.Load(dir, newDice(), nil, zap.NewNop())
	assert.ErrorContains(t, err, `script hook "welcome" is not defined`)
}

func TestLoad_MissingFile(t *testing.T) {
	dir := writeData(t, nil)
	require.NoError(t, os.Remove(filepath.Join(dir, content.WorldFile)))
	_, err := content.Load(dir, newDice(), nil, zap.NewNop())
	assert.Error(t, err)
}
