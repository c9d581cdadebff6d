package world

import (
	"fmt"
	"sync"
)

// World indexes every location by coordinate.
type World struct {
	mu        sync.RWMutex
	locations map[Coordinate]*Location
	order     []*Location
}

// New returns an empty World.
func New() *World {
	return &World{locations: make(map[Coordinate]*Location)}
}

// Add registers loc.
//
// Postcondition: returns an error when another location already occupies
// loc's coordinate.
func (w *World) Add(loc *Location) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	c := loc.Coordinate()
	if existing, ok := w.locations[c]; ok {
		return fmt.Errorf("location %q at %s: coordinate already used by %q", loc.Name, c, existing.Name)
	}
	w.locations[c] = loc
	w.order = append(w.order, loc)
	return nil
}

// LocationAt returns the location at (x, y).
//
// Postcondition: Returns (loc, true) if found, or (nil, false) otherwise.
func (w *World) LocationAt(x, y int) (*Location, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	loc, ok := w.locations[Coordinate{X: x, Y: y}]
	return loc, ok
}

// Neighbor returns the location one step from loc in dir.
func (w *World) Neighbor(loc *Location, dir Direction) (*Location, bool) {
	c := loc.Coordinate().Step(dir)
	return w.LocationAt(c.X, c.Y)
}

// Exits returns the directions from loc that lead to another location.
func (w *World) Exits(loc *Location) []Direction {
	var out []Direction
	for _, d := range StandardDirections {
		if _, ok := w.Neighbor(loc, d); ok {
			out = append(out, d)
		}
	}
	return out
}

// Locations returns every location in registration order.
func (w *World) Locations() []*Location {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*Location, len(w.order))
	copy(out, w.order)
	return out
}

// Len returns the number of locations.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.order)
}
