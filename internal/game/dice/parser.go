package dice

import (
	"strconv"
	"strings"

	apperrors "github.com/cory-johannsen/dsa/internal/errors"
)

const (
	// DefaultMaxDice bounds the die count of a single term.
	DefaultMaxDice = 100
	// DefaultMaxTerms bounds the number of terms in one expression.
	DefaultMaxTerms = 20
)

// Limits bounds the size of a parsed expression.
type Limits struct {
	MaxDice  int
	MaxTerms int
}

// DefaultLimits returns the stock limits (100 dice per term, 20 terms).
func DefaultLimits() Limits {
	return Limits{MaxDice: DefaultMaxDice, MaxTerms: DefaultMaxTerms}
}

// Term is one signed summand of an Expression: either a literal or NdS.
type Term struct {
	Raw   string // term text including its sign, e.g. "-2d6"
	Sign  int    // +1 or -1
	Count int    // number of dice; 0 for a literal or for "0dS"
	Sides int    // faces per die; 0 for a literal
	Value int    // literal value; unused for dice terms
}

// IsDice reports whether the term rolls dice.
func (t Term) IsDice() bool { return t.Sides > 0 }

// Expression is a parsed dice expression ready to be rolled.
type Expression struct {
	Raw   string // normalised input: lowercased, whitespace removed
	Terms []Term
}

// Parse parses a dice expression such as "3d6", "d20+5", "2w6-1d4+3".
// Terms are separated by '+' or '-'; 'w' is accepted as a synonym for 'd'.
//
// Postcondition: Returns an Expression or an invalid-input error naming the
// first offending term; no partial Expression is returned on error.
func Parse(expr string, limits Limits) (Expression, error) {
	s := strings.ToLower(strings.Join(strings.Fields(expr), ""))
	if s == "" {
		return Expression{}, apperrors.InvalidInput("empty dice expression")
	}

	var terms []Term
	begin := 0
	for begin < len(s) {
		if len(terms) >= limits.MaxTerms {
			return Expression{}, apperrors.InvalidInput("number of roll expressions exceeds maximum of %d at %q in expression %q", limits.MaxTerms, s[begin:], s)
		}
		end := len(s)
		if idx := strings.IndexAny(s[begin+1:], "+-"); idx >= 0 {
			end = begin + 1 + idx
		}
		term, err := parseTerm(s[begin:end], s, limits)
		if err != nil {
			return Expression{}, err
		}
		terms = append(terms, term)
		begin = end
	}

	return Expression{Raw: s, Terms: terms}, nil
}

// parseTerm parses one signed term. expr is the whole expression, named in
// errors so a term split off at a sign ("1d-6") stays recognisable.
func parseTerm(raw, expr string, limits Limits) (Term, error) {
	t := Term{Raw: raw, Sign: 1}
	body := raw
	switch body[0] {
	case '+':
		body = body[1:]
	case '-':
		t.Sign = -1
		body = body[1:]
	}
	if body == "" {
		return Term{}, apperrors.InvalidInput("empty term %q in expression %q", raw, expr)
	}

	if !strings.ContainsAny(body, "dw") {
		v, err := strconv.ParseUint(body, 10, 31)
		if err != nil {
			return Term{}, apperrors.InvalidInput("unable to parse number %q in expression %q", raw, expr)
		}
		t.Value = int(v)
		return t, nil
	}

	parts := strings.FieldsFunc(body, func(r rune) bool { return r == 'd' || r == 'w' })
	separators := strings.Count(body, "d") + strings.Count(body, "w")
	if separators > 1 {
		return Term{}, apperrors.InvalidInput("too many \"d\"s and/or \"w\"s in term %q of expression %q", raw, expr)
	}
	if strings.HasSuffix(body, "d") || strings.HasSuffix(body, "w") || len(parts) == 0 {
		return Term{}, apperrors.InvalidInput("die type missing in term %q of expression %q", raw, expr)
	}

	t.Count = 1
	sidesStr := parts[len(parts)-1]
	if len(parts) == 2 {
		c, err := strconv.ParseUint(parts[0], 10, 31)
		if err != nil {
			return Term{}, apperrors.InvalidInput("invalid die number in term %q of expression %q", raw, expr)
		}
		t.Count = int(c)
	}
	sides, err := strconv.ParseUint(sidesStr, 10, 31)
	if err != nil {
		return Term{}, apperrors.InvalidInput("unable to parse die type in term %q of expression %q", raw, expr)
	}
	if sides < 1 {
		return Term{}, apperrors.InvalidInput("invalid die type %d in term %q of expression %q", sides, raw, expr)
	}
	if t.Count > limits.MaxDice {
		return Term{}, apperrors.InvalidInput("number of dice exceeds maximum of %d in term %q of expression %q", limits.MaxDice, raw, expr)
	}
	t.Sides = int(sides)
	return t, nil
}
