// Package initiative orders combat participants by initiative.
//
// Every participant rolls base level + 1d6. Participants sharing a value are
// separated by appending tie-break values to their comparison key: first their
// base level, then fresh d6 rolls until the tie is broken or the round bound
// is reached.
package initiative

import (
	"fmt"
	"slices"

	"github.com/cory-johannsen/dsa/internal/game/dice"
)

// DefaultMaxRounds bounds the number of tie-break rounds.
const DefaultMaxRounds = 16

// Participant is one combatant taking part in an initiative roll.
type Participant struct {
	Name      string `json:"name" yaml:"name"`
	BaseLevel int    `json:"base_level" yaml:"base_level"`
}

// Outcome is the comparison key of one participant.
//
// Key[0] is base level + d6; each further entry is a tie-break value.
type Outcome struct {
	Index int   `json:"participant_index" yaml:"participant_index"`
	Key   []int `json:"comparison_key" yaml:"comparison_key"`
}

// TieBreaks returns the tie-break values appended after the initial roll.
func (o Outcome) TieBreaks() []int {
	if len(o.Key) < 2 {
		return nil
	}
	return o.Key[1:]
}

// Order is the result of an initiative roll.
type Order struct {
	Participants []Participant `json:"participants" yaml:"participants"`
	// Outcomes is sorted from first to act to last.
	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`
	// Exhausted is set when the round bound left some ties to input order.
	Exhausted bool `json:"exhausted,omitempty" yaml:"exhausted,omitempty"`
}

// Participant returns the participant an outcome belongs to.
func (o Order) Participant(out Outcome) Participant {
	return o.Participants[out.Index]
}

// Die returns the d6 rolled for out: Key[0] minus the base level.
func (o Order) Die(out Outcome) int {
	return out.Key[0] - o.Participants[out.Index].BaseLevel
}

// Compare orders two comparison keys, returning a positive number when a
// ranks ahead of b, negative when b ranks ahead, and 0 when they are equal.
//
// Keys are compared entry by entry over their common length and the first
// difference decides. When one key is a strict prefix of the other, the
// longer key ranks ahead; this is the same as padding the shorter key with a
// value below every possible roll.
func Compare(a, b []int) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	switch {
	case len(a) > len(b):
		return 1
	case len(a) < len(b):
		return -1
	default:
		return 0
	}
}

// Resolve rolls initiative for ps and returns the full ordering.
//
// Equal keys left after maxRounds tie-break rounds are ranked by input order.
//
// Precondition: len(ps) > 0 and maxRounds >= 1; src must be non-nil.
// Postcondition: len(result.Outcomes) == len(ps) and every participant index
// appears exactly once.
func Resolve(ps []Participant, src dice.Source, maxRounds int) Order {
	if len(ps) == 0 {
		panic("initiative: Resolve precondition violated: at least one participant is required")
	}
	if maxRounds < 1 {
		panic(fmt.Sprintf("initiative: Resolve precondition violated: maxRounds must be >= 1, got %d", maxRounds))
	}

	r := &resolver{
		participants: ps,
		outcomes:     make([]Outcome, len(ps)),
		src:          src,
		maxRounds:    maxRounds,
	}
	all := make([]int, len(ps))
	for i, p := range ps {
		r.outcomes[i] = Outcome{Index: i, Key: []int{p.BaseLevel + dice.D6(src)}}
		all[i] = i
	}
	r.breakTies(all, 0)

	ranked := slices.Clone(r.outcomes)
	slices.SortStableFunc(ranked, func(a, b Outcome) int { return Compare(b.Key, a.Key) })

	return Order{
		Participants: slices.Clone(ps),
		Outcomes:     ranked,
		Exhausted:    r.exhausted,
	}
}

type resolver struct {
	participants []Participant
	outcomes     []Outcome
	src          dice.Source
	maxRounds    int
	exhausted    bool
}

// breakTies groups members by their key entry at pos and extends every group
// of two or more. Groups are visited in ascending key order and members in
// input order, so a seeded source reproduces the same rolls.
func (r *resolver) breakTies(members []int, pos int) {
	for _, tied := range r.groupBy(members, pos) {
		if len(tied) < 2 {
			continue
		}
		if pos >= r.maxRounds {
			r.exhausted = true
			continue
		}
		for _, idx := range tied {
			out := &r.outcomes[idx]
			var v int
			if len(out.Key) == 1 {
				v = r.participants[idx].BaseLevel
			} else {
				v = dice.D6(r.src)
			}
			out.Key = append(out.Key, v)
		}
		r.breakTies(tied, pos+1)
	}
}

func (r *resolver) groupBy(members []int, pos int) [][]int {
	sorted := slices.Clone(members)
	slices.SortStableFunc(sorted, func(a, b int) int {
		return r.outcomes[a].Key[pos] - r.outcomes[b].Key[pos]
	})
	var groups [][]int
	for i, idx := range sorted {
		if i == 0 || r.outcomes[idx].Key[pos] != r.outcomes[sorted[i-1]].Key[pos] {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], idx)
	}
	return groups
}
