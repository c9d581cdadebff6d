package world

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/wildone/internal/game/dialogue"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/quest"
	"github.com/cory-johannsen/wildone/internal/game/registry"
)

// Catalog resolves the ids a world file refers to.
type Catalog interface {
	Quest(id int) (*quest.Quest, error)
	Trader(id int) (*entity.Trader, error)
	Dialogue(id int) (*dialogue.Node, error)
	HasMonster(id int) bool
}

// yamlWorldFile is the top-level YAML structure for world files.
type yamlWorldFile struct {
	Locations []yamlLocation `yaml:"locations"`
}

// yamlLocation is the YAML representation of a location.
type yamlLocation struct {
	X           int             `yaml:"x"`
	Y           int             `yaml:"y"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Monsters    []yamlEncounter `yaml:"monsters"`
	Quests      []int           `yaml:"quests"`
	Trader      int             `yaml:"trader"`
	Dialogue    int             `yaml:"dialogue"`
	Script      string          `yaml:"script"`
}

// yamlEncounter is the YAML representation of an encounter table row.
type yamlEncounter struct {
	ID         int `yaml:"id"`
	Percentage int `yaml:"percentage"`
}

// LoadFromFile reads and validates a world YAML file.
//
// Precondition: path must point to a valid YAML world file; cat must be non-nil.
// Postcondition: Returns a populated World or a non-nil error.
func LoadFromFile(path string, cat Catalog) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world file %s: %w", path, err)
	}
	return LoadFromBytes(data, cat)
}

// LoadFromBytes parses a world from YAML bytes, resolving quest, trader and
// dialogue ids through cat.
//
// Postcondition: every referenced id resolves, or the error wraps
// registry.ErrMissingTemplate.
func LoadFromBytes(data []byte, cat Catalog) (*World, error) {
	var file yamlWorldFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing world YAML: %w", err)
	}
	if len(file.Locations) == 0 {
		return nil, errors.New("world must contain at least one location")
	}

	w := New()
	for _, yl := range file.Locations {
		loc, err := convertYAMLLocation(yl, cat)
		if err != nil {
			return nil, fmt.Errorf("location %q: %w", yl.Name, err)
		}
		if err := w.Add(loc); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// convertYAMLLocation converts a parsed location into the domain type.
func convertYAMLLocation(yl yamlLocation, cat Catalog) (*Location, error) {
	if yl.Name == "" {
		return nil, errors.New("name must not be empty")
	}
	loc := &Location{
		X:           yl.X,
		Y:           yl.Y,
		Name:        yl.Name,
		Description: strings.TrimSpace(yl.Description),
		Script:      yl.Script,
	}
	for _, m := range yl.Monsters {
		if !cat.HasMonster(m.ID) {
			return nil, fmt.Errorf("monster %d: %w", m.ID, registry.ErrMissingTemplate)
		}
		if m.Percentage <= 0 {
			return nil, fmt.Errorf("monster %d: percentage must be > 0", m.ID)
		}
		loc.AddMonster(m.ID, m.Percentage)
	}
	for _, id := range yl.Quests {
		q, err := cat.Quest(id)
		if err != nil {
			return nil, err
		}
		loc.Quests = append(loc.Quests, q)
	}
	if yl.Trader != 0 {
		t, err := cat.Trader(yl.Trader)
		if err != nil {
			return nil, err
		}
		loc.Trader = t
	}
	if yl.Dialogue != 0 {
		d, err := cat.Dialogue(yl.Dialogue)
		if err != nil {
			return nil, err
		}
		loc.Dialogue = d
	}
	return loc, nil
}
