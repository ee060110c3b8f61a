// Package dice provides the randomness abstraction, the dice expression
// parser, and roll-result types for the DSA check engine.
package dice

import (
	"fmt"
	"strings"
)

// Die is one rolled die together with its size and the sign of the term it
// belongs to.
type Die struct {
	Sides int `json:"sides" yaml:"sides"`
	Value int `json:"value" yaml:"value"`
	// Sign is +1 or -1.
	Sign int `json:"sign" yaml:"sign"`
}

// String renders the die as "value/sides", prefixed with "-" for negated terms.
func (d Die) String() string {
	if d.Sign < 0 {
		return fmt.Sprintf("-%d/%d", d.Value, d.Sides)
	}
	return fmt.Sprintf("%d/%d", d.Value, d.Sides)
}

// RollResult holds the full audit trail for a single dice expression evaluation.
//
// Postcondition: Total() == sum(Sign*Value over Dice) + Modifier.
type RollResult struct {
	Expression string `json:"expression" yaml:"expression"` // normalised expression, e.g. "3d6+2"
	Dice       []Die  `json:"dice" yaml:"dice"`             // individual die results in roll order
	Modifier   int    `json:"modifier" yaml:"modifier"`     // sum of all integer literal terms
}

// Total returns the signed sum of all die results plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d.Sign * d.Value
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"2d6+3 → [4/6 5/6] +3 = 12"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	parts := make([]string, len(r.Dice))
	for i, d := range r.Dice {
		parts[i] = d.String()
	}
	return fmt.Sprintf("%s → [%s] %+d = %d", r.Expression, strings.Join(parts, " "), r.Modifier, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// A Source is owned by a single command invocation. Concurrent invocations
// use independent sources.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Between returns a value uniformly distributed in [min, max] inclusive.
//
// Precondition: min <= max; violating it panics rather than clamping.
func Between(src Source, min, max int) int {
	if min > max {
		panic(fmt.Sprintf("dice: Between precondition violated: min %d > max %d", min, max))
	}
	return min + src.Intn(max-min+1)
}

// D20 rolls a twenty-sided die.
func D20(src Source) int { return Between(src, 1, 20) }

// D6 rolls a six-sided die.
func D6(src Source) int { return Between(src, 1, 6) }
