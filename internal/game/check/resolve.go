package check

import (
	"fmt"

	"github.com/cory-johannsen/dsa/internal/game/dice"
)

// Resolve rolls a check.
//
// Each line gets one d20. A 1 is free; any other roll consumes
// max(0, roll - (level + facilitation)) points. Crits are evaluated after all
// lines are rolled, so confirmation dice are drawn from src after the primary
// rolls.
//
// Precondition: len(lines) > 0 and len(fac.PerLine) == len(lines); violating
// either panics. src must be non-nil.
// Postcondition: len(result.Rolls) == len(lines); result.Quality is in [1,6]
// iff kind is a points budget and the check passed.
func Resolve(lines []Line, kind Kind, rule CritRule, fac Facilitation, src dice.Source) Result {
	if len(lines) == 0 {
		panic("check: Resolve precondition violated: at least one line is required")
	}
	if len(fac.PerLine) != len(lines) {
		panic(fmt.Sprintf("check: Resolve precondition violated: %d facilitation entries for %d lines",
			len(fac.PerLine), len(lines)))
	}

	points := 0
	if kind.IsPointsBudget() {
		points = max(0, kind.Points()+fac.PointsBonus)
	}

	res := Result{Rolls: make([]int, len(lines))}
	for i, l := range lines {
		roll := dice.D20(src)
		if roll != 1 {
			points -= max(0, roll-(l.Level+fac.PerLine[i]))
		}
		res.Rolls[i] = roll
	}

	switch rule.Mode {
	case CritNone:
	case CritConfirmable:
		confirmCrits(&res, lines, src)
	case CritThreshold:
		if rule.Required < 1 {
			panic(fmt.Sprintf("check: Resolve precondition violated: threshold must be >= 1, got %d", rule.Required))
		}
		countCrits(&res, rule.Required)
	default:
		panic(fmt.Sprintf("check: Resolve precondition violated: unknown crit mode %d", rule.Mode))
	}

	res.RemainingPoints = points
	res.Passed = points >= 0
	if kind.IsPointsBudget() && res.Passed {
		res.Quality = QualityLevel(points)
	}
	return res
}

// confirmCrits rolls a confirmation d20 for every 1 and 20. Confirmation is
// checked against the unfacilitated level.
func confirmCrits(res *Result, lines []Line, src dice.Source) {
	res.ConfirmationRolls = make([]int, len(lines))
	for i, roll := range res.Rolls {
		switch roll {
		case 1:
			c := dice.D20(src)
			res.ConfirmationRolls[i] = c
			if c <= lines[i].Level {
				res.CritSuccesses++
			} else {
				res.UnconfirmedCritSuccesses++
			}
		case 20:
			c := dice.D20(src)
			res.ConfirmationRolls[i] = c
			if c > lines[i].Level {
				res.CritFailures++
			} else {
				res.UnconfirmedCritFailures++
			}
		}
	}
}

func countCrits(res *Result, required int) {
	ones, twenties := 0, 0
	for _, roll := range res.Rolls {
		switch roll {
		case 1:
			ones++
		case 20:
			twenties++
		}
	}
	if ones >= required {
		res.CritSuccesses = 1
	}
	if twenties >= required {
		res.CritFailures = 1
	}
}

// QualityLevel maps leftover points to a quality level: ceil(points/3)
// clamped to [1,6].
//
// Precondition: points >= 0.
func QualityLevel(points int) int {
	if points < 0 {
		panic(fmt.Sprintf("check: QualityLevel precondition violated: points must be >= 0, got %d", points))
	}
	return min(6, max(1, (points+2)/3))
}
