package dice

// Roll evaluates expr against src.
//
// Precondition: expr.Count >= 1, expr.Sides >= 1; src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count and every die is in [1, Sides].
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	raw := expr.Raw
	if raw == "" {
		raw = expr.String()
	}
	return RollResult{Expression: raw, Dice: rolled, Modifier: expr.Modifier}
}

// RollExpr parses notation and rolls it against src in a single call.
func RollExpr(notation string, src Source) (RollResult, error) {
	e, err := Parse(notation)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}
