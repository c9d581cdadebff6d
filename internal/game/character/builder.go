// Package character rolls new player characters: attributes from the game
// details, race modifiers, and the starting kit.
package character

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/item"
	"github.com/cory-johannsen/wildone/internal/game/quest"
	"github.com/cory-johannsen/wildone/internal/game/ruleset"
)

// ItemFactory creates fresh item instances.
type ItemFactory interface {
	Create(typeID int) (*item.Item, error)
}

// RecipeLookup resolves recipe ids.
type RecipeLookup interface {
	Recipe(id int) (*quest.Recipe, error)
}

// Kit is what every new character starts with.
type Kit struct {
	HitPoints int
	Gold      int
	Items     []int
	Recipes   []int
}

// DefaultKit is the standard starting kit: a weapon, a snack, the ingredients
// for one more snack, and the recipe to make it.
var DefaultKit = Kit{
	HitPoints: 10,
	Gold:      10,
	Items:     []int{1001, 2001, 3001, 3002, 3003},
	Recipes:   []int{1},
}

// Creator holds one character in progress. Attributes can be re-rolled and
// the race changed any number of times before Build.
type Creator struct {
	details *ruleset.GameDetails
	dice    *dice.Service
	items   ItemFactory
	recipes RecipeLookup
	kit     Kit

	race       *ruleset.Race
	attributes []*entity.Attribute
}

// NewCreator returns a Creator with freshly rolled attributes and the first
// race selected.
//
// Precondition: every argument must be non-nil.
func NewCreator(details *ruleset.GameDetails, d *dice.Service, items ItemFactory, recipes RecipeLookup, kit Kit) (*Creator, error) {
	c := &Creator{details: details, dice: d, items: items, recipes: recipes, kit: kit}
	if details.HasRaces() {
		c.race = details.Races[0]
	}
	if err := c.RollNewCharacter(); err != nil {
		return nil, err
	}
	return c, nil
}

// RollNewCharacter re-rolls every attribute and reapplies race modifiers.
func (c *Creator) RollNewCharacter() error {
	attrs := make([]*entity.Attribute, 0, len(c.details.Attributes))
	for _, def := range c.details.Attributes {
		a, err := entity.RollAttribute(c.dice, def.Key, def.DisplayName, def.Notation)
		if err != nil {
			return fmt.Errorf("rolling %s: %w", def.Key, err)
		}
		attrs = append(attrs, a)
	}
	c.attributes = attrs
	c.applyAttributeModifiers()
	return nil
}

// SelectRace switches the race and reapplies modifiers to the current rolls.
func (c *Creator) SelectRace(key string) error {
	r, ok := c.details.Race(key)
	if !ok {
		return fmt.Errorf("unknown race %q", key)
	}
	c.race = r
	c.applyAttributeModifiers()
	return nil
}

// applyAttributeModifiers sets each modified value to base plus the race modifier.
func (c *Creator) applyAttributeModifiers() {
	for _, a := range c.attributes {
		a.ModifiedValue = a.BaseValue
		if c.race != nil {
			a.ModifiedValue += c.race.Modifier(a.Key)
		}
	}
}

// Race returns the selected race, or nil when the game defines none.
func (c *Creator) Race() *ruleset.Race { return c.race }

// Attributes returns the current rolls.
func (c *Creator) Attributes() []*entity.Attribute { return c.attributes }

// Build returns a level 1 player named name carrying the starting kit, with
// the first weapon and consumable equipped.
//
// Precondition: name must be non-empty.
// Postcondition: the player owns copies of the attributes; later re-rolls do
// not affect it.
func (c *Creator) Build(name string) (*entity.Player, error) {
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}
	attrs := make([]*entity.Attribute, len(c.attributes))
	for i, a := range c.attributes {
		attrs[i] = a.Clone()
	}
	p := entity.NewPlayer(name, 0, c.kit.HitPoints, c.kit.HitPoints, attrs, c.kit.Gold)
	for _, id := range c.kit.Items {
		it, err := c.items.Create(id)
		if err != nil {
			return nil, fmt.Errorf("starting kit: %w", err)
		}
		p.AddItemToInventory(it)
	}
	for _, id := range c.kit.Recipes {
		r, err := c.recipes.Recipe(id)
		if err != nil {
			return nil, fmt.Errorf("starting kit: %w", err)
		}
		p.LearnRecipe(r)
	}
	EquipDefaults(p)
	return p, nil
}

// EquipDefaults equips the first weapon and first consumable held when the
// corresponding slot is empty.
func EquipDefaults(p *entity.Player) {
	inv := p.Inventory()
	if p.CurrentWeapon() == nil {
		if ws := inv.Weapons(); len(ws) > 0 {
			p.SetCurrentWeapon(ws[0])
		}
	}
	if p.CurrentConsumable() == nil {
		if cs := inv.Consumables(); len(cs) > 0 {
			p.SetCurrentConsumable(cs[0])
		}
	}
}
