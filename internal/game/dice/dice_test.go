package dice_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dsa/internal/game/dice"
	"github.com/cory-johannsen/dsa/internal/testutil"
)

// TestRollResult_Total verifies the postcondition: Total() == signed sum(Dice) + Modifier.
func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{
		Expression: "2d6+3-1d4",
		Dice:       []dice.Die{{Sides: 6, Value: 4, Sign: 1}, {Sides: 6, Value: 5, Sign: 1}, {Sides: 4, Value: 2, Sign: -1}},
		Modifier:   3,
	}
	assert.Equal(t, 10, r.Total())
}

func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{
		Expression: "2d6+3",
		Dice:       []dice.Die{{Sides: 6, Value: 4, Sign: 1}, {Sides: 6, Value: 5, Sign: 1}},
		Modifier:   3,
	}
	assert.Equal(t, "2d6+3 → [4/6 5/6] +3 = 12", r.String())
}

func TestRollResult_String_PanicsOnEmptyExpression(t *testing.T) {
	r := dice.RollResult{Dice: []dice.Die{{Sides: 6, Value: 4, Sign: 1}}}
	assert.Panics(t, func() { _ = r.String() })
}

func TestRollResult_Total_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		values := rapid.SliceOf(rapid.IntRange(1, 20)).Draw(rt, "values")
		modifier := rapid.IntRange(-1000, 1000).Draw(rt, "modifier")

		r := dice.RollResult{Expression: "x", Modifier: modifier}
		expected := modifier
		for i, v := range values {
			sign := 1
			if i%2 == 1 {
				sign = -1
			}
			r.Dice = append(r.Dice, dice.Die{Sides: 20, Value: v, Sign: sign})
			expected += sign * v
		}
		assert.Equal(rt, expected, r.Total())
	})
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(20), b.Intn(20))
	}
}

func TestSeededSource_Intn_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
}

// TestBetween_Uniform checks range and a coarse uniformity bound on a d6.
func TestBetween_Uniform(t *testing.T) {
	src := dice.NewSeededSource(7)
	const samples = 60000
	counts := make(map[int]int)
	for i := 0; i < samples; i++ {
		v := dice.Between(src, 1, 6)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 6)
		counts[v]++
	}
	require.Len(t, counts, 6)
	for face, n := range counts {
		assert.InDelta(t, samples/6, n, samples/60, "face %d drawn %d times", face, n)
	}
}

func TestBetween_Property_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-100, 100).Draw(rt, "min")
		hi := lo + rapid.IntRange(0, 100).Draw(rt, "span")
		seed := rapid.Int64().Draw(rt, "seed")
		v := dice.Between(dice.NewSeededSource(seed), lo, hi)
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, hi)
	})
}

func TestBetween_PanicsWhenMinExceedsMax(t *testing.T) {
	assert.Panics(t, func() { dice.Between(dice.NewSeededSource(1), 5, 4) })
}

func TestD20AndD6_UseScriptedFaces(t *testing.T) {
	src := testutil.NewScriptedSource(20, 1, 6)
	assert.Equal(t, 20, dice.D20(src))
	assert.Equal(t, 1, dice.D20(src))
	assert.Equal(t, 6, dice.D6(src))
	assert.Equal(t, 0, src.Remaining())
}

func TestRollExpr_ThreeD6_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		src := dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))
		res, err := dice.RollExpr("3d6", dice.DefaultLimits(), src)
		require.NoError(rt, err)
		assert.Len(rt, res.Dice, 3)
		assert.GreaterOrEqual(rt, res.Total(), 3)
		assert.LessOrEqual(rt, res.Total(), 18)
	})
}

func TestRollExpr_D20PlusFive_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		src := dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))
		res, err := dice.RollExpr("1d20+5", dice.DefaultLimits(), src)
		require.NoError(rt, err)
		assert.GreaterOrEqual(rt, res.Total(), 6)
		assert.LessOrEqual(rt, res.Total(), 25)
	})
}

func TestRollExpr_MixedTerms(t *testing.T) {
	src := testutil.NewScriptedSource(3, 5, 2)
	res, err := dice.RollExpr("2W6 - d4 + 10 - 1", dice.DefaultLimits(), src)
	require.NoError(t, err)
	assert.Equal(t, "2w6-d4+10-1", res.Expression)
	assert.Equal(t, []dice.Die{
		{Sides: 6, Value: 3, Sign: 1},
		{Sides: 6, Value: 5, Sign: 1},
		{Sides: 4, Value: 2, Sign: -1},
	}, res.Dice)
	assert.Equal(t, 9, res.Modifier)
	assert.Equal(t, 15, res.Total())
}

func TestParse_LeadingNegativeLiteral(t *testing.T) {
	e, err := dice.Parse("-3+d6", dice.DefaultLimits())
	require.NoError(t, err)
	require.Len(t, e.Terms, 2)
	assert.Equal(t, -1, e.Terms[0].Sign)
	assert.Equal(t, 3, e.Terms[0].Value)
	assert.False(t, e.Terms[0].IsDice())
	assert.Equal(t, 1, e.Terms[1].Count)
	assert.Equal(t, 6, e.Terms[1].Sides)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":             "   ",
		"zero sides":        "2d0",
		"missing die size":  "2d",
		"bare separator":    "d",
		"double separator":  "2d6d6",
		"mixed separators":  "2w6d",
		"bad count":         "xd6",
		"bad literal":       "3+abc",
		"dangling sign":     "3d6+",
		"double sign":       "3--5",
		"too many dice":     "101d6",
		"negative in count": "2d-6",
	}
	for name, expr := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := dice.Parse(expr, dice.DefaultLimits())
			require.Error(t, err)
			assertInvalidInput(t, err)
		})
	}
}

func TestParse_DieCountAtLimit(t *testing.T) {
	_, err := dice.Parse("100d6", dice.DefaultLimits())
	assert.NoError(t, err)
}

func TestParse_TooManyTerms(t *testing.T) {
	expr := strings.TrimSuffix(strings.Repeat("1+", 21), "+")
	_, err := dice.Parse(expr, dice.DefaultLimits())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "20")

	expr = strings.TrimSuffix(strings.Repeat("1+", 20), "+")
	e, err := dice.Parse(expr, dice.DefaultLimits())
	require.NoError(t, err)
	assert.Len(t, e.Terms, 20)
}

func TestParse_ErrorNamesOffendingTerm(t *testing.T) {
	_, err := dice.Parse("1d6+2q", dice.DefaultLimits())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "+2q")
}

func TestParse_CustomLimits(t *testing.T) {
	_, err := dice.Parse("11d6", dice.Limits{MaxDice: 10, MaxTerms: 2})
	assert.Error(t, err)
	_, err = dice.Parse("1+2+3", dice.Limits{MaxDice: 10, MaxTerms: 2})
	assert.Error(t, err)
}

func TestParse_LimitErrorsNameTheInput(t *testing.T) {
	_, err := dice.Parse("2d6+101d6", dice.DefaultLimits())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"+101d6"`)
	assert.Contains(t, err.Error(), `"2d6+101d6"`)

	_, err = dice.Parse("1+2+3+4", dice.Limits{MaxDice: 10, MaxTerms: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"+3+4"`)
	assertInvalidInput(t, err)
}

func TestParse_SignInsideDiceTermNamesWholeExpression(t *testing.T) {
	_, err := dice.Parse("1d-6", dice.DefaultLimits())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"1d"`)
	assert.Contains(t, err.Error(), `"1d-6"`)
}

func TestParse_Property_DiceTermsRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 100).Draw(rt, "count")
		sides := rapid.IntRange(1, 1000).Draw(rt, "sides")
		mod := rapid.IntRange(0, 1000).Draw(rt, "mod")
		e, err := dice.Parse(fmt.Sprintf("%dd%d-%d", count, sides, mod), dice.DefaultLimits())
		require.NoError(rt, err)
		require.Len(rt, e.Terms, 2)
		assert.Equal(rt, count, e.Terms[0].Count)
		assert.Equal(rt, sides, e.Terms[0].Sides)
		assert.Equal(rt, -1, e.Terms[1].Sign)
		assert.Equal(rt, mod, e.Terms[1].Value)
	})
}
