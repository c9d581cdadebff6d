package dice

import "sync"

// TrackedRoll is a single die result recorded by a Tracker.
type TrackedRoll struct {
	Sides int
	Value int
}

// Tracker records every individual die result rolled through a Service.
// It is replaced, not cleared, whenever the Service is reconfigured.
type Tracker struct {
	mu    sync.Mutex
	rolls []TrackedRoll
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) record(sides int, values []int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, v := range values {
		t.rolls = append(t.rolls, TrackedRoll{Sides: sides, Value: v})
	}
}

// Rolls returns a copy of every recorded die result in roll order.
func (t *Tracker) Rolls() []TrackedRoll {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TrackedRoll, len(t.rolls))
	copy(out, t.rolls)
	return out
}

// Count returns the number of dice recorded.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rolls)
}

// Frequencies returns how often each face came up on dice with the given
// number of sides.
func (t *Tracker) Frequencies(sides int) map[int]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	freq := make(map[int]int)
	for _, r := range t.rolls {
		if r.Sides == sides {
			freq[r.Value]++
		}
	}
	return freq
}
