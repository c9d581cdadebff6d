// Package registry provides the load-once template lookup shared by every
// static game-data catalog (items, monsters, quests, recipes, traders, dialogue).
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrMissingTemplate is returned when an id has no registered template.
var ErrMissingTemplate = errors.New("missing template")

// Registry maps ids to read-only templates.
//
// A Registry is populated during startup and only read afterwards, so it
// carries no lock.
type Registry[K cmp.Ordered, V any] struct {
	kind  string
	items map[K]V
}

// New returns an empty Registry. kind names the template type in errors.
func New[K cmp.Ordered, V any](kind string) *Registry[K, V] {
	return &Registry[K, V]{kind: kind, items: make(map[K]V)}
}

// Register adds v under id.
//
// Postcondition: Get(id) returns v; returns an error if id is already registered.
func (r *Registry[K, V]) Register(id K, v V) error {
	if _, exists := r.items[id]; exists {
		return fmt.Errorf("%s %v already registered", r.kind, id)
	}
	r.items[id] = v
	return nil
}

// Lookup returns the template for id and whether it exists.
func (r *Registry[K, V]) Lookup(id K) (V, bool) {
	v, ok := r.items[id]
	return v, ok
}

// Get returns the template for id or an error wrapping ErrMissingTemplate.
func (r *Registry[K, V]) Get(id K) (V, error) {
	v, ok := r.items[id]
	if !ok {
		return v, fmt.Errorf("%s %v: %w", r.kind, id, ErrMissingTemplate)
	}
	return v, nil
}

// IDs returns every registered id in ascending order.
func (r *Registry[K, V]) IDs() []K {
	ids := make([]K, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// All returns every template ordered by id.
func (r *Registry[K, V]) All() []V {
	out := make([]V, 0, len(r.items))
	for _, id := range r.IDs() {
		out = append(out, r.items[id])
	}
	return out
}

// Len returns the number of registered templates.
func (r *Registry[K, V]) Len() int { return len(r.items) }
