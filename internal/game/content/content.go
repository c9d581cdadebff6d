// Package content loads a game's data directory into the template
// registries and the world map.
//
// A data directory holds:
//
//	details.yaml   title, version and attribute definitions
//	races/         one YAML file per playable race
//	items.yaml     item templates
//	npcs.yaml      monster and trader templates
//	quests.yaml    quests and recipes
//	dialogue.yaml  conversation trees
//	world.yaml     locations
package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wildone/internal/game/dialogue"
	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/item"
	"github.com/cory-johannsen/wildone/internal/game/npc"
	"github.com/cory-johannsen/wildone/internal/game/quest"
	"github.com/cory-johannsen/wildone/internal/game/ruleset"
	"github.com/cory-johannsen/wildone/internal/game/world"
)

// File names within a data directory.
const (
	DetailsFile  = "details.yaml"
	RacesDir     = "races"
	ItemsFile    = "items.yaml"
	NPCsFile     = "npcs.yaml"
	QuestsFile   = "quests.yaml"
	DialogueFile = "dialogue.yaml"
	WorldFile    = "world.yaml"
)

// Hooks reports which script hooks are defined. Implemented by the scripting manager.
type Hooks interface {
	item.ScriptRunner
	Has(hook string) bool
}

// Catalog is every template and the map of one game.
type Catalog struct {
	Details   *ruleset.GameDetails
	Items     *item.Registry
	NPCs      *npc.Registry
	Quests    *quest.Registry
	Dialogues *dialogue.Registry
	World     *world.World
}

// Load reads dir in dependency order: details, items, NPCs, quests,
// dialogue, then the world that refers to all of them.
//
// Precondition: d and logger must be non-nil; hooks may be nil when no item
// or location declares a script.
// Postcondition: every script hook named by an item or location is defined in hooks.
func Load(dir string, d *dice.Service, hooks Hooks, logger *zap.Logger) (*Catalog, error) {
	start := time.Now()
	path := func(name string) string { return filepath.Join(dir, name) }

	details, err := ruleset.LoadDetails(path(DetailsFile), optionalDir(path(RacesDir)))
	if err != nil {
		return nil, fmt.Errorf("loading game details: %w", err)
	}

	var runner item.ScriptRunner
	if hooks != nil {
		runner = hooks
	}
	items := item.NewRegistry(d, runner)
	defs, err := item.LoadDefs(path(ItemsFile))
	if err != nil {
		return nil, err
	}
	var errs []error
	for _, def := range defs {
		if err := items.Register(def); err != nil {
			errs = append(errs, err)
			continue
		}
		if def.Script != "" && !hooks.Has(def.Script) {
			errs = append(errs, fmt.Errorf("item %d: script hook %q is not defined", def.ID, def.Script))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("loading items: %w", errors.Join(errs...))
	}

	npcs := npc.NewRegistry(items, d, logger)
	tf, err := npc.LoadTemplates(path(NPCsFile))
	if err != nil {
		return nil, err
	}
	if err := npcs.Load(tf); err != nil {
		return nil, fmt.Errorf("loading npcs: %w", err)
	}

	quests := quest.NewRegistry()
	if err := quests.LoadFile(path(QuestsFile), items); err != nil {
		return nil, err
	}

	dialogues := dialogue.NewRegistry()
	if _, err := os.Stat(path(DialogueFile)); err == nil {
		if err := dialogues.LoadFile(path(DialogueFile)); err != nil {
			return nil, err
		}
	}

	c := &Catalog{
		Details:   details,
		Items:     items,
		NPCs:      npcs,
		Quests:    quests,
		Dialogues: dialogues,
	}
	if c.World, err = world.LoadFromFile(path(WorldFile), c); err != nil {
		return nil, err
	}
	for _, loc := range c.World.Locations() {
		if loc.Script == "" {
			continue
		}
		if hooks == nil || !hooks.Has(loc.Script) {
			errs = append(errs, fmt.Errorf("location %s: script hook %q is not defined", loc.Coordinate(), loc.Script))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("loading world: %w", errors.Join(errs...))
	}

	logger.Info("content loaded",
		zap.String("dir", dir),
		zap.String("title", details.Title),
		zap.Int("items", len(items.IDs())),
		zap.Int("quests", len(quests.Quests())),
		zap.Int("recipes", len(quests.Recipes())),
		zap.Int("locations", c.World.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return c, nil
}

func optionalDir(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return ""
}

// Quest resolves a quest id.
func (c *Catalog) Quest(id int) (*quest.Quest, error) { return c.Quests.Quest(id) }

// Recipe resolves a recipe id.
func (c *Catalog) Recipe(id int) (*quest.Recipe, error) { return c.Quests.Recipe(id) }

// Trader resolves a trader id.
func (c *Catalog) Trader(id int) (*entity.Trader, error) { return c.NPCs.Trader(id) }

// Dialogue resolves a dialogue tree id.
func (c *Catalog) Dialogue(id int) (*dialogue.Node, error) { return c.Dialogues.Dialogue(id) }

// HasMonster reports whether id names a monster template.
func (c *Catalog) HasMonster(id int) bool { return c.NPCs.HasMonster(id) }

// Create builds a fresh instance of an item template.
func (c *Catalog) Create(typeID int) (*item.Item, error) { return c.Items.Create(typeID) }

var _ world.Catalog = (*Catalog)(nil)
