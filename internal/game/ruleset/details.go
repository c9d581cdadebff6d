// Package ruleset holds the game-wide rules data: title and version details,
// the attribute definitions every character rolls, and the playable races.
package ruleset

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/wildone/internal/game/dice"
)

// AttributeDef describes one attribute every character rolls.
type AttributeDef struct {
	Key         string `yaml:"key"`
	DisplayName string `yaml:"display_name"`
	Notation    string `yaml:"dice_notation"`
}

// GameDetails is the title information and rules data of one game.
type GameDetails struct {
	Title      string         `yaml:"title"`
	Subtitle   string         `yaml:"subtitle"`
	Version    string         `yaml:"version"`
	Attributes []AttributeDef `yaml:"attributes"`
	Races      []*Race        `yaml:"-"`
}

// Validate checks the details, reporting every violation.
func (g *GameDetails) Validate() error {
	var errs []error
	if g.Title == "" {
		errs = append(errs, errors.New("title must not be empty"))
	}
	seen := make(map[string]bool)
	for _, a := range g.Attributes {
		if a.Key == "" {
			errs = append(errs, errors.New("attribute key must not be empty"))
			continue
		}
		if seen[a.Key] {
			errs = append(errs, fmt.Errorf("attribute %q defined twice", a.Key))
		}
		seen[a.Key] = true
		if _, err := dice.Parse(a.Notation); err != nil {
			errs = append(errs, fmt.Errorf("attribute %q: %w", a.Key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("game details: %w", errors.Join(errs...))
	}
	return nil
}

// Race returns the race with key.
func (g *GameDetails) Race(key string) (*Race, bool) {
	for _, r := range g.Races {
		if r.Key == key {
			return r, true
		}
	}
	return nil, false
}

// HasRaces reports whether any race is defined.
func (g *GameDetails) HasRaces() bool { return len(g.Races) > 0 }

// ParseDetails parses and validates game details from YAML bytes.
func ParseDetails(data []byte) (*GameDetails, error) {
	var g GameDetails
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parsing game details: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// LoadDetails reads game details from path and races from racesDir. An empty
// racesDir loads no races.
func LoadDetails(path, racesDir string) (*GameDetails, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	g, err := ParseDetails(data)
	if err != nil {
		return nil, err
	}
	if racesDir != "" {
		if g.Races, err = LoadRaces(racesDir); err != nil {
			return nil, err
		}
	}
	return g, nil
}
