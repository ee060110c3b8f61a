// Package check resolves DSA dice checks: attribute, skill, combat, spell,
// chant, dodge and parry rolls against one or more governing levels.
//
// A check rolls one d20 per Line. Rolls above the (facilitated) level consume
// points; a roll of 1 never consumes anything. Simple checks pass when no
// points were consumed, points-budget checks pass while the budget stays
// non-negative and derive a quality level from what is left.
package check

import "fmt"

// Line is one governing attribute or technique participating in a check.
type Line struct {
	Label string `json:"label" yaml:"label"`
	Level int    `json:"level" yaml:"level"`
}

// Kind distinguishes simple checks from points-budget checks.
// The zero value is a simple check.
type Kind struct {
	budget bool
	points int
}

// Simple returns the kind of a check without a skill budget.
func Simple() Kind { return Kind{} }

// PointsBudget returns the kind of a check whose skill level p acts as a
// budget consumed by roll overages.
func PointsBudget(p int) Kind { return Kind{budget: true, points: p} }

// IsPointsBudget reports whether k carries a points budget.
func (k Kind) IsPointsBudget() bool { return k.budget }

// Points returns the available points; 0 for simple checks.
func (k Kind) Points() int { return k.points }

func (k Kind) String() string {
	if k.budget {
		return fmt.Sprintf("points(%d)", k.points)
	}
	return "simple"
}

// CritMode selects how rolls of 1 and 20 are interpreted.
type CritMode int

const (
	// CritNone ignores extreme rolls.
	CritNone CritMode = iota
	// CritConfirmable rolls a confirmation d20 for every 1 and every 20.
	CritConfirmable
	// CritThreshold records a single crit once enough 1s (or 20s) occur.
	CritThreshold
)

func (m CritMode) String() string {
	switch m {
	case CritNone:
		return "none"
	case CritConfirmable:
		return "confirmable"
	case CritThreshold:
		return "threshold"
	default:
		return "unknown"
	}
}

// CritRule is a crit-rule variant. Required is only meaningful for CritThreshold.
type CritRule struct {
	Mode     CritMode `json:"mode" yaml:"mode"`
	Required int      `json:"required,omitempty" yaml:"required,omitempty"`
}

// NoCrits returns the rule without critical successes or failures.
func NoCrits() CritRule { return CritRule{Mode: CritNone} }

// Confirmable returns the rule where every extreme roll must be confirmed.
func Confirmable() CritRule { return CritRule{Mode: CritConfirmable} }

// ThresholdCount returns the rule where n or more 1s (20s) within one check
// trigger exactly one critical success (failure).
//
// Precondition: n >= 1.
func ThresholdCount(n int) CritRule {
	if n < 1 {
		panic(fmt.Sprintf("check: ThresholdCount precondition violated: n must be >= 1, got %d", n))
	}
	return CritRule{Mode: CritThreshold, Required: n}
}

func (r CritRule) String() string {
	if r.Mode == CritThreshold {
		return fmt.Sprintf("threshold(%d)", r.Required)
	}
	return r.Mode.String()
}

// Result is the structured outcome of one check. It is created fresh per
// Resolve call and never mutated afterwards.
type Result struct {
	// Rolls holds the primary d20 per line, in line order.
	Rolls []int `json:"rolls" yaml:"rolls"`
	// ConfirmationRolls holds the confirmation d20 per line, 0 where none was rolled.
	// Only populated for CritConfirmable.
	ConfirmationRolls []int `json:"confirmation_rolls,omitempty" yaml:"confirmation_rolls,omitempty"`
	RemainingPoints   int   `json:"remaining_points" yaml:"remaining_points"`
	Passed            bool  `json:"passed" yaml:"passed"`
	// Quality is 1..6 for passed points-budget checks and 0 otherwise.
	Quality                  int `json:"quality,omitempty" yaml:"quality,omitempty"`
	CritSuccesses            int `json:"crit_successes" yaml:"crit_successes"`
	UnconfirmedCritSuccesses int `json:"unconfirmed_crit_successes" yaml:"unconfirmed_crit_successes"`
	CritFailures             int `json:"crit_failures" yaml:"crit_failures"`
	UnconfirmedCritFailures  int `json:"unconfirmed_crit_failures" yaml:"unconfirmed_crit_failures"`
}

// HasQuality reports whether the result carries a quality level.
func (r Result) HasQuality() bool { return r.Quality > 0 }

// HasCrits reports whether any crit event, confirmed or not, was recorded.
func (r Result) HasCrits() bool {
	return r.CritSuccesses+r.UnconfirmedCritSuccesses+r.CritFailures+r.UnconfirmedCritFailures > 0
}
