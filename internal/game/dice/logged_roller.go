package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with expression, dice values, modifier, and total.
type Roller struct {
	src    Source
	limits Limits
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, limits Limits, logger *zap.Logger) *Roller {
	return &Roller{src: src, limits: limits, logger: logger}
}

// Roll evaluates expr and logs the result at debug level.
//
// Precondition: expr must come from Parse.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	values := make([]int, len(result.Dice))
	for i, d := range result.Dice {
		values[i] = d.Sign * d.Value
	}
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", values),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
//
// Postcondition: Returns a RollResult or an invalid-input error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr, r.limits)
	if err != nil {
		r.logger.Debug("rejected dice expression", zap.String("expression", expr), zap.Error(err))
		return RollResult{}, err
	}
	return r.Roll(e), nil
}
