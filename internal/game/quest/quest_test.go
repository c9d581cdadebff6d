package quest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wildone/internal/game/inventory"
	"github.com/cory-johannsen/wildone/internal/game/quest"
	"github.com/cory-johannsen/wildone/internal/game/registry"
)

type knownItems map[int]bool

func (k knownItems) Has(id int) bool { return k[id] }

var items = knownItems{1002: true, 3001: true, 3002: true, 3003: true, 2002: true, 9002: true}

const data = `
quests:
  - id: 1
    name: Clear the herb garden
    description: Defeat the snakes in the Herbalist's garden
    requires:
      - {id: 9002, quantity: 3}
    reward_xp: 25
    reward_gold: 10
    reward_items:
      - {id: 1002, quantity: 1}
recipes:
  - id: 1
    name: Granola bar recipe
    ingredients:
      - {id: 3001, quantity: 1}
      - {id: 3002, quantity: 1}
      - {id: 3003, quantity: 1}
    outputs:
      - {id: 2002, quantity: 1}
`

func TestRegistry_Load(t *testing.T) {
	r := quest.NewRegistry()
	require.NoError(t, r.Load([]byte(data), items))

	q, err := r.Quest(1)
	require.NoError(t, err)
	assert.Equal(t, "Clear the herb garden", q.Name)
	assert.Equal(t, []inventory.ItemQuantity{{ItemID: 9002, Quantity: 3}}, q.ItemsToComplete)
	assert.Equal(t, 25, q.RewardXP)
	assert.Equal(t, 10, q.RewardGold)

	rc, err := r.Recipe(1)
	require.NoError(t, err)
	assert.Len(t, rc.Ingredients, 3)
	assert.Equal(t, 2002, rc.Outputs[0].ItemID)
}

func TestRegistry_UnknownIDs(t *testing.T) {
	r := quest.NewRegistry()
	_, err := r.Quest(42)
	assert.ErrorIs(t, err, registry.ErrMissingTemplate)
	_, err = r.Recipe(42)
	assert.ErrorIs(t, err, registry.ErrMissingTemplate)
}

func TestRegistry_LoadRejectsUnknownItemsAtomically(t *testing.T) {
	r := quest.NewRegistry()
	bad := data + `
  - id: 2
    name: Broken
    ingredients:
      - {id: 7777, quantity: 1}
    outputs:
      - {id: 2002, quantity: 1}
`
	err := r.Load([]byte(bad), items)
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrMissingTemplate)
	assert.Empty(t, r.Quests())
	assert.Empty(t, r.Recipes())
}

func TestRegistry_LoadRejectsDuplicates(t *testing.T) {
	r := quest.NewRegistry()
	require.NoError(t, r.Load([]byte(data), items))
	assert.Error(t, r.Load([]byte(data), items))
}

func TestStatus_CompleteOnce(t *testing.T) {
	s := quest.NewStatus(&quest.Quest{ID: 1})
	assert.False(t, s.Completed)
	assert.True(t, s.Complete())
	assert.False(t, s.Complete())
	assert.True(t, s.Completed)
}
