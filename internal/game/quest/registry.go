package quest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/wildone/internal/game/inventory"
	"github.com/cory-johannsen/wildone/internal/game/registry"
)

// ItemCatalog is the item lookup used to validate quest and recipe references.
type ItemCatalog interface {
	Has(typeID int) bool
}

// Registry holds every quest and recipe template.
type Registry struct {
	quests  *registry.Registry[int, *Quest]
	recipes *registry.Registry[int, *Recipe]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		quests:  registry.New[int, *Quest]("quest"),
		recipes: registry.New[int, *Recipe]("recipe"),
	}
}

// AddQuest registers q. Duplicate ids are rejected.
func (r *Registry) AddQuest(q *Quest) error { return r.quests.Register(q.ID, q) }

// AddRecipe registers rc. Duplicate ids are rejected.
func (r *Registry) AddRecipe(rc *Recipe) error { return r.recipes.Register(rc.ID, rc) }

// Quest returns the quest with id, or an error wrapping registry.ErrMissingTemplate.
func (r *Registry) Quest(id int) (*Quest, error) { return r.quests.Get(id) }

// Recipe returns the recipe with id, or an error wrapping registry.ErrMissingTemplate.
func (r *Registry) Recipe(id int) (*Recipe, error) { return r.recipes.Get(id) }

// Quests returns every quest ordered by id.
func (r *Registry) Quests() []*Quest { return r.quests.All() }

// Recipes returns every recipe ordered by id.
func (r *Registry) Recipes() []*Recipe { return r.recipes.All() }

type questDef struct {
	ID          int                      `yaml:"id"`
	Name        string                   `yaml:"name"`
	Description string                   `yaml:"description"`
	Requires    []inventory.ItemQuantity `yaml:"requires"`
	RewardXP    int                      `yaml:"reward_xp"`
	RewardGold  int                      `yaml:"reward_gold"`
	RewardItems []inventory.ItemQuantity `yaml:"reward_items"`
}

type recipeDef struct {
	ID          int                      `yaml:"id"`
	Name        string                   `yaml:"name"`
	Ingredients []inventory.ItemQuantity `yaml:"ingredients"`
	Outputs     []inventory.ItemQuantity `yaml:"outputs"`
}

type dataFile struct {
	Quests  []questDef  `yaml:"quests"`
	Recipes []recipeDef `yaml:"recipes"`
}

// LoadFile reads quests and recipes from a YAML file and registers them.
//
// Precondition: items must be non-nil; every referenced item id must exist in it.
func (r *Registry) LoadFile(path string, items ItemCatalog) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading quest file %s: %w", path, err)
	}
	return r.Load(data, items)
}

// Load parses YAML bytes holding top-level "quests" and "recipes" lists and
// registers every entry.
//
// Postcondition: on error nothing from data has been registered.
func (r *Registry) Load(data []byte, items ItemCatalog) error {
	var f dataFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing quest YAML: %w", err)
	}

	var errs []error
	for _, q := range f.Quests {
		if err := validateQuest(q, items); err != nil {
			errs = append(errs, err)
		}
	}
	for _, rc := range f.Recipes {
		if err := validateRecipe(rc, items); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for _, q := range f.Quests {
		if err := r.AddQuest(&Quest{
			ID:              q.ID,
			Name:            q.Name,
			Description:     q.Description,
			ItemsToComplete: q.Requires,
			RewardXP:        q.RewardXP,
			RewardGold:      q.RewardGold,
			RewardItems:     q.RewardItems,
		}); err != nil {
			return err
		}
	}
	for _, rc := range f.Recipes {
		if err := r.AddRecipe(&Recipe{
			ID:          rc.ID,
			Name:        rc.Name,
			Ingredients: rc.Ingredients,
			Outputs:     rc.Outputs,
		}); err != nil {
			return err
		}
	}
	return nil
}

func validateQuest(q questDef, items ItemCatalog) error {
	var errs []error
	if q.ID <= 0 {
		errs = append(errs, errors.New("id must be > 0"))
	}
	if q.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if q.RewardXP < 0 || q.RewardGold < 0 {
		errs = append(errs, errors.New("rewards must be >= 0"))
	}
	errs = append(errs, checkQuantities("requires", q.Requires, items)...)
	errs = append(errs, checkQuantities("reward_items", q.RewardItems, items)...)
	if len(errs) > 0 {
		return fmt.Errorf("quest %d: %w", q.ID, errors.Join(errs...))
	}
	return nil
}

func validateRecipe(rc recipeDef, items ItemCatalog) error {
	var errs []error
	if rc.ID <= 0 {
		errs = append(errs, errors.New("id must be > 0"))
	}
	if rc.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if len(rc.Ingredients) == 0 {
		errs = append(errs, errors.New("ingredients must not be empty"))
	}
	if len(rc.Outputs) == 0 {
		errs = append(errs, errors.New("outputs must not be empty"))
	}
	errs = append(errs, checkQuantities("ingredients", rc.Ingredients, items)...)
	errs = append(errs, checkQuantities("outputs", rc.Outputs, items)...)
	if len(errs) > 0 {
		return fmt.Errorf("recipe %d: %w", rc.ID, errors.Join(errs...))
	}
	return nil
}

func checkQuantities(field string, qs []inventory.ItemQuantity, items ItemCatalog) []error {
	var errs []error
	for _, q := range qs {
		if q.Quantity <= 0 {
			errs = append(errs, fmt.Errorf("%s: item %d quantity must be > 0", field, q.ItemID))
		}
		if !items.Has(q.ItemID) {
			errs = append(errs, fmt.Errorf("%s: item %d: %w", field, q.ItemID, registry.ErrMissingTemplate))
		}
	}
	return errs
}
