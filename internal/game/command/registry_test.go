package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	require.NotNil(t, r)
	assert.Len(t, r.Commands(), len(BuiltinCommands()))
}

func TestResolve_CanonicalName(t *testing.T) {
	cmd, ok := DefaultRegistry().Resolve("north")
	require.True(t, ok)
	assert.Equal(t, "north", cmd.Name)
	assert.Equal(t, HandlerMove, cmd.Handler)
}

func TestResolve_Alias(t *testing.T) {
	r := DefaultRegistry()
	for alias, name := range map[string]string{
		"n": "north", "e": "east", "s": "south", "w": "west",
		"a": "attack", "i": "inventory", "?": "help", "equip": "wield",
	} {
		cmd, ok := r.Resolve(alias)
		require.True(t, ok, alias)
		assert.Equal(t, name, cmd.Name, alias)
	}
}

func TestResolve_NotFound(t *testing.T) {
	_, ok := DefaultRegistry().Resolve("teleport")
	assert.False(t, ok)
}

func TestCommands_RegistrationOrder(t *testing.T) {
	cmds := DefaultRegistry().Commands()
	assert.Equal(t, "north", cmds[0].Name)
	assert.Equal(t, "quit", cmds[len(cmds)-1].Name)
}

func TestCommandsByCategory_EveryCommandListed(t *testing.T) {
	r := DefaultRegistry()
	byCategory := r.CommandsByCategory()
	total := 0
	for _, cat := range CategoryOrder {
		total += len(byCategory[cat.Name])
	}
	assert.Equal(t, len(r.Commands()), total, "every command belongs to a listed category")
	assert.Len(t, byCategory[CategoryMovement], 4)
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	_, err := NewRegistry([]Command{{Name: "look"}, {Name: "look"}})
	assert.ErrorContains(t, err, "duplicate command name")
}

func TestNewRegistry_AliasCollisions(t *testing.T) {
	_, err := NewRegistry([]Command{
		{Name: "look", Aliases: []string{"l"}},
		{Name: "list", Aliases: []string{"l"}},
	})
	assert.ErrorContains(t, err, "duplicate alias")

	_, err = NewRegistry([]Command{
		{Name: "look", Aliases: []string{"l"}},
		{Name: "l"},
	})
	assert.ErrorContains(t, err, "conflicts with an existing alias")

	_, err = NewRegistry([]Command{{Name: "look"}, {Name: "peer", Aliases: []string{"look"}}})
	assert.ErrorContains(t, err, "conflicts with command name")
}

func TestNewRegistry_EmptyName(t *testing.T) {
	_, err := NewRegistry([]Command{{Name: ""}})
	assert.Error(t, err)
}

func TestNames_Sorted(t *testing.T) {
	names := DefaultRegistry().Names()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "kill")
}

func TestPropertyResolveEveryName(t *testing.T) {
	r := DefaultRegistry()
	names := r.Names()
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.SampledFrom(names).Draw(t, "name")
		if _, ok := r.Resolve(name); !ok {
			t.Fatalf("listed name %q does not resolve", name)
		}
	})
}
