package dice

// Roll evaluates an Expression using the given Source.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: len(result.Dice) == sum of Count over dice terms, in term order.
func Roll(expr Expression, src Source) RollResult {
	result := RollResult{Expression: expr.Raw}
	for _, t := range expr.Terms {
		if !t.IsDice() {
			result.Modifier += t.Sign * t.Value
			continue
		}
		for i := 0; i < t.Count; i++ {
			result.Dice = append(result.Dice, Die{
				Sides: t.Sides,
				Value: Between(src, 1, t.Sides),
				Sign:  t.Sign,
			})
		}
	}
	return result
}

// RollExpr parses expr and rolls it using src in a single call.
//
// Postcondition: Returns a RollResult or an invalid-input error.
func RollExpr(expr string, limits Limits, src Source) (RollResult, error) {
	e, err := Parse(expr, limits)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}
