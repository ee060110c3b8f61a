package initiative_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dsa/internal/game/dice"
	"github.com/cory-johannsen/dsa/internal/game/initiative"
	"github.com/cory-johannsen/dsa/internal/testutil"
)

func names(o initiative.Order) []string {
	out := make([]string, len(o.Outcomes))
	for i, oc := range o.Outcomes {
		out[i] = o.Participant(oc).Name
	}
	return out
}

func TestResolve_DistinctRollsNeedNoTieBreak(t *testing.T) {
	ps := []initiative.Participant{{Name: "Alrik", BaseLevel: 10}, {Name: "Bosper", BaseLevel: 12}}
	order := initiative.Resolve(ps, testutil.NewScriptedSource(4, 1), initiative.DefaultMaxRounds)

	assert.Equal(t, []string{"Alrik", "Bosper"}, names(order))
	assert.Equal(t, []int{14}, order.Outcomes[0].Key)
	assert.Equal(t, []int{13}, order.Outcomes[1].Key)
	assert.Equal(t, 4, order.Die(order.Outcomes[0]))
	assert.Nil(t, order.Outcomes[0].TieBreaks())
	assert.False(t, order.Exhausted)
}

func TestResolve_FirstTieBreakUsesBaseLevel(t *testing.T) {
	ps := []initiative.Participant{{Name: "Alrik", BaseLevel: 10}, {Name: "Bosper", BaseLevel: 11}}
	src := testutil.NewScriptedSource(2, 1)
	order := initiative.Resolve(ps, src, initiative.DefaultMaxRounds)

	assert.Equal(t, []string{"Bosper", "Alrik"}, names(order))
	assert.Equal(t, []int{12, 11}, order.Outcomes[0].Key)
	assert.Equal(t, []int{12, 10}, order.Outcomes[1].Key)
	assert.Equal(t, 0, src.Remaining(), "base-level tie-break must not roll")
}

func TestResolve_EqualBaseLevelFallsBackToFreshRolls(t *testing.T) {
	ps := []initiative.Participant{{Name: "Alrik", BaseLevel: 10}, {Name: "Bosper", BaseLevel: 10}}
	src := testutil.NewScriptedSource(3, 3, 2, 5)
	order := initiative.Resolve(ps, src, initiative.DefaultMaxRounds)

	assert.Equal(t, []string{"Bosper", "Alrik"}, names(order))
	assert.Equal(t, []int{13, 10, 5}, order.Outcomes[0].Key)
	assert.Equal(t, []int{13, 10, 2}, order.Outcomes[1].Key)
	assert.Equal(t, []int{10, 5}, order.Outcomes[0].TieBreaks())
	assert.Equal(t, 0, src.Remaining())
}

func TestResolve_RecursesOnlyWithinTiedSubset(t *testing.T) {
	ps := []initiative.Participant{
		{Name: "Alrik", BaseLevel: 10},
		{Name: "Bosper", BaseLevel: 10},
		{Name: "Cuano", BaseLevel: 10},
		{Name: "Dajin", BaseLevel: 5},
	}
	// initial d6: 3,3,3,1; base round; d6 round: 5,5,2; A/B tie again: 1,6.
	src := testutil.NewScriptedSource(3, 3, 3, 1, 5, 5, 2, 1, 6)
	order := initiative.Resolve(ps, src, initiative.DefaultMaxRounds)

	assert.Equal(t, []string{"Bosper", "Alrik", "Cuano", "Dajin"}, names(order))
	assert.Equal(t, []int{13, 10, 5, 6}, order.Outcomes[0].Key)
	assert.Equal(t, []int{13, 10, 2}, order.Outcomes[2].Key)
	assert.Equal(t, []int{6}, order.Outcomes[3].Key)
	assert.Equal(t, 0, src.Remaining())
}

func TestResolve_RoundBoundFallsBackToInputOrder(t *testing.T) {
	ps := []initiative.Participant{{Name: "Alrik", BaseLevel: 8}, {Name: "Bosper", BaseLevel: 8}}
	src := testutil.NewScriptedSource(4, 4, 6, 6)
	order := initiative.Resolve(ps, src, 2)

	assert.True(t, order.Exhausted)
	assert.Equal(t, []string{"Alrik", "Bosper"}, names(order))
	assert.Equal(t, []int{12, 8, 6}, order.Outcomes[0].Key)
	assert.Equal(t, 0, src.Remaining())
}

func TestResolve_SingleRoundBoundStopsAfterBaseLevel(t *testing.T) {
	ps := []initiative.Participant{{Name: "Alrik", BaseLevel: 8}, {Name: "Bosper", BaseLevel: 8}}
	order := initiative.Resolve(ps, testutil.NewScriptedSource(4, 4), 1)
	assert.True(t, order.Exhausted)
	assert.Equal(t, []int{12, 8}, order.Outcomes[0].Key)
}

func TestResolve_DeterministicForFixedSeed(t *testing.T) {
	ps := []initiative.Participant{
		{Name: "Alrik", BaseLevel: 10}, {Name: "Bosper", BaseLevel: 12}, {Name: "Cuano", BaseLevel: 7},
		{Name: "Dajin", BaseLevel: 10}, {Name: "Elida", BaseLevel: 12},
	}
	a := initiative.Resolve(ps, dice.NewSeededSource(99), initiative.DefaultMaxRounds)
	b := initiative.Resolve(ps, dice.NewSeededSource(99), initiative.DefaultMaxRounds)
	assert.Equal(t, a, b)
}

func TestResolve_GenuineTiesVaryAcrossSeeds(t *testing.T) {
	ps := []initiative.Participant{{Name: "Alrik", BaseLevel: 10}, {Name: "Bosper", BaseLevel: 10}}
	seen := map[string]bool{}
	for seed := int64(0); seed < 200; seed++ {
		order := initiative.Resolve(ps, dice.NewSeededSource(seed), initiative.DefaultMaxRounds)
		seen[names(order)[0]] = true
	}
	assert.True(t, seen["Alrik"])
	assert.True(t, seen["Bosper"])
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	ps := []initiative.Participant{{Name: "Alrik", BaseLevel: 10}, {Name: "Bosper", BaseLevel: 10}}
	orig := append([]initiative.Participant(nil), ps...)
	_ = initiative.Resolve(ps, dice.NewSeededSource(1), initiative.DefaultMaxRounds)
	assert.Equal(t, orig, ps)
}

func TestResolve_Panics(t *testing.T) {
	assert.Panics(t, func() { initiative.Resolve(nil, dice.NewSeededSource(1), 4) })
	assert.Panics(t, func() {
		initiative.Resolve([]initiative.Participant{{Name: "A"}}, dice.NewSeededSource(1), 0)
	})
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, initiative.Compare([]int{12, 10}, []int{12, 10}))
	assert.Positive(t, initiative.Compare([]int{13}, []int{12, 20}))
	assert.Negative(t, initiative.Compare([]int{12, 9}, []int{12, 10}))
	// A strict prefix ranks behind the longer key.
	assert.Positive(t, initiative.Compare([]int{12, 10, 1}, []int{12, 10}))
	assert.Negative(t, initiative.Compare([]int{12}, []int{12, 0}))
	assert.Negative(t, initiative.Compare([]int{12}, []int{12, -5}))
}

func TestResolve_Property_TotalOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "participants")
		ps := make([]initiative.Participant, n)
		for i := range ps {
			ps[i] = initiative.Participant{Name: string(rune('A' + i)), BaseLevel: rapid.IntRange(5, 9).Draw(rt, "base")}
		}
		order := initiative.Resolve(ps, dice.NewSeededSource(rapid.Int64().Draw(rt, "seed")), initiative.DefaultMaxRounds)

		require.Len(rt, order.Outcomes, n)
		seen := make(map[int]bool)
		for i, oc := range order.Outcomes {
			assert.False(rt, seen[oc.Index], "index %d appears twice", oc.Index)
			seen[oc.Index] = true
			die := order.Die(oc)
			assert.GreaterOrEqual(rt, die, 1)
			assert.LessOrEqual(rt, die, 6)
			if len(oc.Key) > 1 {
				assert.Equal(rt, ps[oc.Index].BaseLevel, oc.Key[1])
			}
			if i > 0 {
				assert.GreaterOrEqual(rt, initiative.Compare(order.Outcomes[i-1].Key, oc.Key), 0)
			}
		}
		if !order.Exhausted {
			for i := 1; i < len(order.Outcomes); i++ {
				assert.NotEqual(rt, 0, initiative.Compare(order.Outcomes[i-1].Key, order.Outcomes[i].Key))
			}
		}
	})
}

func TestOrder_RoundTrip(t *testing.T) {
	ps := []initiative.Participant{{Name: "Alrik", BaseLevel: 11}, {Name: "Ork", BaseLevel: 10}, {Name: "Wolf", BaseLevel: 10}}
	// All reach 13; base levels split Alrik off, fresh d6 split the rest.
	tieBroken := initiative.Resolve(ps, testutil.NewScriptedSource(2, 3, 3, 6, 4), initiative.DefaultMaxRounds)
	require.Equal(t, [][]int{{13, 11}, {13, 10, 6}, {13, 10, 4}},
		[][]int{tieBroken.Outcomes[0].Key, tieBroken.Outcomes[1].Key, tieBroken.Outcomes[2].Key})

	exhausted := initiative.Resolve(ps[1:], testutil.NewScriptedSource(4, 4), 1)
	require.True(t, exhausted.Exhausted)

	for _, want := range []initiative.Order{tieBroken, exhausted} {
		data, err := json.Marshal(want)
		require.NoError(t, err)
		var fromJSON initiative.Order
		require.NoError(t, json.Unmarshal(data, &fromJSON))
		assert.Equal(t, want, fromJSON)

		data, err = yaml.Marshal(want)
		require.NoError(t, err)
		var fromYAML initiative.Order
		require.NoError(t, yaml.Unmarshal(data, &fromYAML))
		assert.Equal(t, want, fromYAML)
	}
}
