package item

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/registry"
)

// Def is the data-file representation of an item template.
type Def struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Price    int    `yaml:"price"`
	// Unique defaults to true for weapons and false otherwise.
	Unique *bool `yaml:"unique"`
	// Damage is the weapon damage notation.
	Damage string `yaml:"damage"`
	// HitPointsToHeal is the consumable heal amount.
	HitPointsToHeal int `yaml:"heal"`
	// Script names a Lua hook that replaces the built-in action.
	Script string `yaml:"script"`
}

// Validate checks the definition's invariants, reporting every violation.
func (d *Def) Validate() error {
	var errs []error
	if d.ID <= 0 {
		errs = append(errs, errors.New("id must be > 0"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	cat, err := ParseCategory(d.Category)
	if err != nil {
		errs = append(errs, err)
	}
	if d.Price < 0 {
		errs = append(errs, errors.New("price must be >= 0"))
	}
	if d.Script == "" {
		if cat == Weapon {
			if _, err := dice.Parse(d.Damage); err != nil {
				errs = append(errs, fmt.Errorf("weapon damage: %w", err))
			}
		}
		if cat == Consumable && d.HitPointsToHeal <= 0 {
			errs = append(errs, errors.New("consumable heal must be > 0"))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %d: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

type defFile struct {
	Items []*Def `yaml:"items"`
}

// LoadDefs reads item definitions from a YAML file with a top-level "items" list.
func LoadDefs(path string) ([]*Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading item file %s: %w", path, err)
	}
	return ParseDefs(data)
}

// ParseDefs parses and validates item definitions from YAML bytes.
func ParseDefs(data []byte) ([]*Def, error) {
	var f defFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing item YAML: %w", err)
	}
	for _, d := range f.Items {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Items, nil
}

// Registry stamps out fresh item instances from templates.
type Registry struct {
	templates *registry.Registry[int, *Item]
	dice      *dice.Service
	scripts   ScriptRunner
}

// NewRegistry returns an empty Registry. scripts may be nil when no item
// declares a script.
//
// Precondition: d must be non-nil.
func NewRegistry(d *dice.Service, scripts ScriptRunner) *Registry {
	return &Registry{
		templates: registry.New[int, *Item]("item"),
		dice:      d,
		scripts:   scripts,
	}
}

// Register builds the template for def and adds it.
//
// Precondition: def has passed Validate.
// Postcondition: Create(def.ID) returns fresh copies; duplicate ids are rejected.
func (r *Registry) Register(def *Def) error {
	cat, err := ParseCategory(def.Category)
	if err != nil {
		return fmt.Errorf("item %d: %w", def.ID, err)
	}
	tmpl := &Item{
		TypeID:   def.ID,
		Category: cat,
		Name:     def.Name,
		Price:    def.Price,
		Unique:   cat == Weapon,
	}
	if def.Unique != nil {
		tmpl.Unique = *def.Unique
	}

	switch {
	case def.Script != "":
		if r.scripts == nil {
			return fmt.Errorf("item %d: script %q declared but scripting is disabled", def.ID, def.Script)
		}
		tmpl.Action = ScriptedAction{Hook: def.Script, Runner: r.scripts}
	case cat == Weapon:
		attack, err := NewAttackWithWeapon(r.dice, def.Damage)
		if err != nil {
			return fmt.Errorf("item %d: %w", def.ID, err)
		}
		tmpl.Action = attack
	case cat == Consumable:
		tmpl.Action = Heal{Amount: def.HitPointsToHeal}
	}
	return r.templates.Register(def.ID, tmpl)
}

// Create returns a new owned instance of the template with the given type id.
//
// Postcondition: the error wraps registry.ErrMissingTemplate for unknown ids.
func (r *Registry) Create(typeID int) (*Item, error) {
	tmpl, err := r.templates.Get(typeID)
	if err != nil {
		return nil, err
	}
	return tmpl.Clone(), nil
}

// Name returns the template name for typeID, or "" when unknown.
func (r *Registry) Name(typeID int) string {
	if tmpl, ok := r.templates.Lookup(typeID); ok {
		return tmpl.Name
	}
	return ""
}

// Has reports whether typeID is registered.
func (r *Registry) Has(typeID int) bool {
	_, ok := r.templates.Lookup(typeID)
	return ok
}

// IDs returns every registered type id in ascending order.
func (r *Registry) IDs() []int { return r.templates.IDs() }
