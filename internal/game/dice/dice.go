// Package dice provides the randomness service shared by every game subsystem:
// notation parsing, pluggable sources, and an optional per-die tracker.
package dice

import (
	"errors"
	"fmt"
)

// ErrInvalidNotation is returned when a dice notation string cannot be parsed.
var ErrInvalidNotation = errors.New("invalid dice notation")

// RollResult holds the full audit trail for a single roll.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // e.g. "2d6+3"
	Dice       []int  // individual die results before modifier
	Modifier   int
}

// Total returns the sum of all die results plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the roll as "2d6+3 → [4 5] +3 = 12".
func (r RollResult) String() string {
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}

// Source is the randomness provider behind the service.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
