package ruleset

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Race is a playable race whose modifiers adjust rolled attributes during
// character creation.
//
// Precondition: Key and Name must be non-empty after loading.
type Race struct {
	Key         string         `yaml:"key"`
	Name        string         `yaml:"name"`
	Article     string         `yaml:"article"`
	Description string         `yaml:"description"`
	Modifiers   map[string]int `yaml:"modifiers"`
}

// DisplayName returns the human-readable race name with its grammatical article.
// If Article is empty, returns Name alone.
//
// Precondition: Name must be non-empty.
// Postcondition: Returns a non-empty string.
func (r *Race) DisplayName() string {
	if r.Article == "" {
		return r.Name
	}
	return r.Article + " " + r.Name
}

// Modifier returns the adjustment this race applies to attribute key.
func (r *Race) Modifier(key string) int {
	return r.Modifiers[key]
}

// LoadRaces reads all .yaml files in dir and parses each as a Race, ordered
// by key.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed races (may be empty slice) or a non-nil error.
func LoadRaces(dir string) ([]*Race, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	races := make([]*Race, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var r Race
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parsing race file %s: %w", path, err)
		}
		if r.Key == "" || r.Name == "" {
			return nil, fmt.Errorf("race file %s: key and name must not be empty", path)
		}
		races = append(races, &r)
	}
	slices.SortFunc(races, func(a, b *Race) int { return strings.Compare(a.Key, b.Key) })
	return races, nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
