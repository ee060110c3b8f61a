package check

import (
	"strconv"
	"strings"

	apperrors "github.com/cory-johannsen/dsa/internal/errors"
)

// Facilitation is the situational modifier of a check: one entry per line
// (positive makes the line easier) plus a bonus to the points budget.
//
// Invariant: len(PerLine) equals the number of lines of the check it is used with.
type Facilitation struct {
	PerLine     []int `json:"per_line" yaml:"per_line"`
	PointsBonus int   `json:"points_bonus" yaml:"points_bonus"`
}

// Flat returns a facilitation applying mod to each of n lines.
func Flat(mod, n int) Facilitation {
	per := make([]int, n)
	for i := range per {
		per[i] = mod
	}
	return Facilitation{PerLine: per}
}

// Override adds Delta to every line whose label equals Label, ignoring case.
type Override struct {
	Label string
	Delta int
}

// NewFacilitation merges a flat modifier, per-label overrides and a points
// bonus into a Facilitation for the given line labels.
//
// Override labels that match no line are ignored; callers typing a label
// that is not part of the check get no feedback.
//
// Postcondition: len(result.PerLine) == len(labels).
func NewFacilitation(flat int, overrides []Override, bonus int, labels []string) Facilitation {
	f := Flat(flat, len(labels))
	f.Apply(overrides, labels)
	f.PointsBonus = bonus
	return f
}

// Apply adds every override to the lines whose label matches it. Each
// additional slice in aliases names the lines a second way (attribute ids
// next to short names); an override is applied at most once per line.
//
// Precondition: len(labels) and every len(aliases[k]) equal len(f.PerLine).
func (f Facilitation) Apply(overrides []Override, labels []string, aliases ...[]string) {
	if len(labels) != len(f.PerLine) {
		panic("check: Facilitation.Apply precondition violated: label count differs from line count")
	}
	for _, o := range overrides {
		for i := range f.PerLine {
			if matchesLine(o.Label, i, labels, aliases) {
				f.PerLine[i] += o.Delta
			}
		}
	}
}

func matchesLine(label string, i int, labels []string, aliases [][]string) bool {
	if strings.EqualFold(labels[i], label) {
		return true
	}
	for _, a := range aliases {
		if len(a) != len(labels) {
			panic("check: Facilitation.Apply precondition violated: alias count differs from line count")
		}
		if strings.EqualFold(a[i], label) {
			return true
		}
	}
	return false
}

// FacilitationInput is the raw textual form of a facilitation as typed by a
// user: "-2", "mu:1,kl:-2", "3". Empty fields mean zero / no overrides.
type FacilitationInput struct {
	Flat      string
	Overrides string
	Bonus     string
}

// ParseFacilitation validates in and builds the Facilitation for labels.
//
// Postcondition: Returns a Facilitation with len(PerLine) == len(labels) or
// an invalid-input error.
func ParseFacilitation(in FacilitationInput, labels []string) (Facilitation, error) {
	flat := 0
	if s := strings.TrimSpace(in.Flat); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return Facilitation{}, apperrors.InvalidInput("unable to parse facilitation: argument must be an integer, got %q", in.Flat)
		}
		flat = v
	}

	overrides, err := ParseOverrides(in.Overrides)
	if err != nil {
		return Facilitation{}, err
	}

	bonus := 0
	if s := strings.TrimSpace(in.Bonus); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return Facilitation{}, apperrors.InvalidInput("unable to parse facilitation: bonus points must be an integer, got %q", in.Bonus)
		}
		bonus = v
	}

	return NewFacilitation(flat, overrides, bonus, labels), nil
}

// ParseOverrides parses a comma separated list of "label:delta" pairs.
// An empty string yields no overrides.
func ParseOverrides(s string) ([]Override, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []Override
	for _, pair := range strings.Split(s, ",") {
		parts := strings.Split(pair, ":")
		if len(parts) != 2 {
			return nil, apperrors.InvalidInput("unable to parse facilitation: attribute name and facilitation must be separated by a colon, got %q", pair)
		}
		delta, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, apperrors.InvalidInput("unable to parse facilitation: invalid attribute facilitation amount %q", parts[1])
		}
		out = append(out, Override{Label: strings.TrimSpace(parts[0]), Delta: delta})
	}
	return out, nil
}
