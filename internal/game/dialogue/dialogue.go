// Package dialogue provides branching conversation trees attached to
// locations, and a cursor for walking one.
package dialogue

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/wildone/internal/game/registry"
)

// ErrInvalidChoice is returned when a cursor is asked for a choice it does not offer.
var ErrInvalidChoice = errors.New("invalid dialogue choice")

// Node is one line of dialogue and the replies available after it.
type Node struct {
	Text    string  `yaml:"text"`
	Choices []*Node `yaml:"choices"`
}

// validate checks that every node in the tree has text.
func (n *Node) validate(path string) error {
	if n.Text == "" {
		return fmt.Errorf("%s: text must not be empty", path)
	}
	for i, c := range n.Choices {
		if err := c.validate(fmt.Sprintf("%s.choices[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// Cursor tracks a position within one dialogue tree.
type Cursor struct {
	root    *Node
	current *Node
}

// NewCursor returns a cursor positioned at root.
//
// Precondition: root must be non-nil.
func NewCursor(root *Node) *Cursor {
	return &Cursor{root: root, current: root}
}

// Text returns the current node's text.
func (c *Cursor) Text() string { return c.current.Text }

// Options returns the text of each available choice.
func (c *Cursor) Options() []string {
	out := make([]string, len(c.current.Choices))
	for i, n := range c.current.Choices {
		out[i] = n.Text
	}
	return out
}

// Done reports whether the current node offers no further choices.
func (c *Cursor) Done() bool { return len(c.current.Choices) == 0 }

// Choose advances to the zero-based choice i and returns its text.
//
// Postcondition: on error the cursor does not move.
func (c *Cursor) Choose(i int) (string, error) {
	if i < 0 || i >= len(c.current.Choices) {
		return "", fmt.Errorf("choice %d of %d: %w", i+1, len(c.current.Choices), ErrInvalidChoice)
	}
	c.current = c.current.Choices[i]
	return c.current.Text, nil
}

// Reset returns the cursor to the root.
func (c *Cursor) Reset() { c.current = c.root }

// Registry holds dialogue trees by id.
type Registry struct {
	trees *registry.Registry[int, *Node]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{trees: registry.New[int, *Node]("dialogue")}
}

// Dialogue returns the root node for id, or an error wrapping
// registry.ErrMissingTemplate.
func (r *Registry) Dialogue(id int) (*Node, error) { return r.trees.Get(id) }

// Add registers a tree under id.
func (r *Registry) Add(id int, root *Node) error {
	if err := root.validate(fmt.Sprintf("dialogue %d", id)); err != nil {
		return err
	}
	return r.trees.Register(id, root)
}

type treeDef struct {
	ID   int `yaml:"id"`
	Node `yaml:",inline"`
}

type dataFile struct {
	Dialogues []treeDef `yaml:"dialogues"`
}

// LoadFile reads dialogue trees from a YAML file.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading dialogue file %s: %w", path, err)
	}
	return r.Load(data)
}

// Load parses YAML bytes holding a top-level "dialogues" list and registers
// every tree.
func (r *Registry) Load(data []byte) error {
	var f dataFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing dialogue YAML: %w", err)
	}
	for _, d := range f.Dialogues {
		root := d.Node
		if err := r.Add(d.ID, &root); err != nil {
			return err
		}
	}
	return nil
}
