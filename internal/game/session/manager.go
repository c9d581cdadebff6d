package session

import (
	"fmt"
	"sync"
)

// Manager tracks the active games by save slot.
// All methods are safe for concurrent use.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*Game // slot → game
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{games: make(map[string]*Game)}
}

// Add registers g under slot.
//
// Precondition: slot must be non-empty; g must be non-nil.
// Postcondition: Returns an error if slot is already active.
func (m *Manager) Add(slot string, g *Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.games[slot]; exists {
		return fmt.Errorf("slot %q already active", slot)
	}
	m.games[slot] = g
	return nil
}

// Remove disposes and forgets the game in slot.
//
// Postcondition: Returns an error if slot is not active.
func (m *Manager) Remove(slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, exists := m.games[slot]
	if !exists {
		return fmt.Errorf("slot %q not found", slot)
	}
	g.Dispose()
	delete(m.games, slot)
	return nil
}

// Get returns the game in slot.
//
// Postcondition: Returns (game, true) if found, or (nil, false) otherwise.
func (m *Manager) Get(slot string) (*Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[slot]
	return g, ok
}

// FindByPlayer returns the slot and game whose player has the given name.
func (m *Manager) FindByPlayer(name string) (string, *Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for slot, g := range m.games {
		if g.Player().Name() == name {
			return slot, g, true
		}
	}
	return "", nil, false
}

// Slots returns the active slots in no particular order.
func (m *Manager) Slots() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.games))
	for slot := range m.games {
		out = append(out, slot)
	}
	return out
}

// Count returns the number of active games.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// DisposeAll disposes every active game and empties the manager.
func (m *Manager) DisposeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for slot, g := range m.games {
		g.Dispose()
		delete(m.games, slot)
	}
}
