package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Bounds on a parsed expression. Larger notations are rejected as invalid.
const (
	MaxDieCount = 1000
	MaxDieSides = 1_000_000
)

var notationPattern = regexp.MustCompile(`^(\d*)d(\d+)(?:([+-])(\d+))?$`)

// Expression is a parsed dice notation ready to be rolled.
type Expression struct {
	Raw      string
	Count    int
	Sides    int
	Modifier int
}

// String renders the expression back in canonical notation.
func (e Expression) String() string {
	switch {
	case e.Modifier > 0:
		return fmt.Sprintf("%dd%d+%d", e.Count, e.Sides, e.Modifier)
	case e.Modifier < 0:
		return fmt.Sprintf("%dd%d%d", e.Count, e.Sides, e.Modifier)
	default:
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
}

// Parse parses notation of the form <count>d<sides>[+<m>|-<m>].
// The count may be omitted ("d20" rolls one die).
//
// Postcondition: 1 <= Count <= MaxDieCount and 1 <= Sides <= MaxDieSides on
// success; otherwise the error wraps ErrInvalidNotation.
func Parse(notation string) (Expression, error) {
	s := strings.ToLower(strings.TrimSpace(notation))
	m := notationPattern.FindStringSubmatch(s)
	if m == nil {
		return Expression{}, fmt.Errorf("dice: %q: %w", notation, ErrInvalidNotation)
	}

	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > MaxDieCount {
			return Expression{}, fmt.Errorf("dice: %q: die count must be in [1, %d]: %w", notation, MaxDieCount, ErrInvalidNotation)
		}
		count = n
	}

	sides, err := strconv.Atoi(m[2])
	if err != nil || sides < 1 || sides > MaxDieSides {
		return Expression{}, fmt.Errorf("dice: %q: die sides must be in [1, %d]: %w", notation, MaxDieSides, ErrInvalidNotation)
	}

	modifier := 0
	if m[4] != "" {
		modifier, err = strconv.Atoi(m[4])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: %q: bad modifier: %w", notation, ErrInvalidNotation)
		}
		if m[3] == "-" {
			modifier = -modifier
		}
	}

	return Expression{Raw: notation, Count: count, Sides: sides, Modifier: modifier}, nil
}

// MustParse parses notation and panics on error. Useful for package-level values.
func MustParse(notation string) Expression {
	e, err := Parse(notation)
	if err != nil {
		panic(err)
	}
	return e
}
