// Package npc builds the non-player entities of the game: monsters spawned
// from templates with rolled loot, and the traders stationed at locations.
package npc

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/inventory"
)

// MonsterTemplate defines a monster archetype loaded from YAML.
type MonsterTemplate struct {
	ID        int                `yaml:"id"`
	Name      string             `yaml:"name"`
	MaxHP     int                `yaml:"max_hp"`
	Dexterity int                `yaml:"dexterity"`
	WeaponID  int                `yaml:"weapon"`
	RewardXP  int                `yaml:"reward_xp"`
	Gold      int                `yaml:"gold"`
	Loot      []entity.LootEntry `yaml:"loot"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID > 0, Name is non-empty, MaxHP >= 1,
// Gold and RewardXP are >= 0, a weapon is named, and every loot percentage is
// in [1, 100]; otherwise returns every violation joined.
func (t *MonsterTemplate) Validate() error {
	var errs []error
	if t.ID <= 0 {
		errs = append(errs, errors.New("id must be > 0"))
	}
	if t.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if t.MaxHP < 1 {
		errs = append(errs, errors.New("max_hp must be >= 1"))
	}
	if t.Gold < 0 || t.RewardXP < 0 {
		errs = append(errs, errors.New("gold and reward_xp must be >= 0"))
	}
	if t.WeaponID <= 0 {
		errs = append(errs, errors.New("weapon must be set"))
	}
	for i, l := range t.Loot {
		if l.Percentage < 1 || l.Percentage > 100 {
			errs = append(errs, fmt.Errorf("loot[%d] percentage must be in [1, 100], got %d", i, l.Percentage))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("monster template %d: %w", t.ID, errors.Join(errs...))
	}
	return nil
}

// TraderTemplate defines a trader and its opening stock.
type TraderTemplate struct {
	ID        int                      `yaml:"id"`
	Name      string                   `yaml:"name"`
	Inventory []inventory.ItemQuantity `yaml:"inventory"`
}

// Validate checks that the template satisfies basic invariants.
func (t *TraderTemplate) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("trader template: id must be > 0")
	}
	if t.Name == "" {
		return fmt.Errorf("trader template %d: name must not be empty", t.ID)
	}
	for i, q := range t.Inventory {
		if q.Quantity < 1 {
			return fmt.Errorf("trader template %d: inventory[%d] quantity must be >= 1", t.ID, i)
		}
	}
	return nil
}

// TemplateFile is the top-level structure of a monster and trader data file.
type TemplateFile struct {
	Monsters []*MonsterTemplate `yaml:"monsters"`
	Traders  []*TraderTemplate  `yaml:"traders"`
}

// LoadTemplatesFromBytes parses and validates templates from raw YAML bytes.
//
// Postcondition: Returns every template, or the first validation error.
func LoadTemplatesFromBytes(data []byte) (*TemplateFile, error) {
	var f TemplateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing npc YAML: %w", err)
	}
	for _, m := range f.Monsters {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	for _, t := range f.Traders {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

// LoadTemplates reads templates from a YAML file.
func LoadTemplates(path string) (*TemplateFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	f, err := LoadTemplatesFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return f, nil
}
