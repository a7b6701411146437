// Package rap_test — strict sentinel behavior on malformed inputs.
//
// Every validation failure must surface as its dedicated sentinel before
// any search work starts, both through NewInstance and through Solve.
package rap_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/symalloc/convex"
	"github.com/katalvlaran/symalloc/rap"
	"github.com/stretchr/testify/require"
)

// okIntervals is a well-formed two-interval domain reused across cases.
var okIntervals = []rap.Interval{{Lo: 0, Hi: 2}, {Lo: 5, Hi: 7}}

func TestNewInstance_Sentinels(t *testing.T) {
	var cases = []struct {
		name      string
		cost      convex.Function
		demand    float64
		intervals []rap.Interval
		n         int
		want      error
	}{
		{"nil cost", nil, 5, okIntervals, 2, rap.ErrNilCost},
		{"NaN demand", convex.Quadratic{}, math.NaN(), okIntervals, 2, rap.ErrBadDemand},
		{"Inf demand", convex.Quadratic{}, math.Inf(1), okIntervals, 2, rap.ErrBadDemand},
		{"zero n", convex.Quadratic{}, 5, okIntervals, 0, rap.ErrNonPositiveN},
		{"negative n", convex.Quadratic{}, 5, okIntervals, -3, rap.ErrNonPositiveN},
		{"no intervals", convex.Quadratic{}, 5, nil, 2, rap.ErrNoIntervals},
		{"inverted interval", convex.Quadratic{}, 5,
			[]rap.Interval{{Lo: 3, Hi: 1}}, 2, rap.ErrBadInterval},
		{"NaN bound", convex.Quadratic{}, 5,
			[]rap.Interval{{Lo: math.NaN(), Hi: 1}}, 2, rap.ErrBadInterval},
		{"infinite bound", convex.Quadratic{}, 5,
			[]rap.Interval{{Lo: 0, Hi: math.Inf(1)}}, 2, rap.ErrBadInterval},
		{"unsorted", convex.Quadratic{}, 5,
			[]rap.Interval{{Lo: 5, Hi: 7}, {Lo: 0, Hi: 2}}, 2, rap.ErrUnsortedIntervals},
		{"overlapping", convex.Quadratic{}, 5,
			[]rap.Interval{{Lo: 0, Hi: 3}, {Lo: 2, Hi: 5}}, 2, rap.ErrOverlappingIntervals},
		{"touching", convex.Quadratic{}, 5,
			[]rap.Interval{{Lo: 0, Hi: 2}, {Lo: 2, Hi: 5}}, 2, rap.ErrOverlappingIntervals},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rap.NewInstance(tc.cost, tc.demand, tc.intervals, tc.n)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSolve_RevalidatesHandBuiltInstances(t *testing.T) {
	// A hand-built (not NewInstance-vetted) instance must still be caught.
	var inst = rap.Instance{
		Cost:      nil,
		Demand:    5,
		Intervals: okIntervals,
		N:         2,
	}
	_, err := rap.Solve(inst, rap.DefaultOptions())
	require.ErrorIs(t, err, rap.ErrNilCost)
}

func TestSolve_OptionSentinels(t *testing.T) {
	inst, err := rap.NewInstance(convex.Quadratic{}, 5, okIntervals, 2)
	require.NoError(t, err)

	var opts = rap.DefaultOptions()
	opts.Eps = -1
	_, err = rap.Solve(inst, opts)
	require.ErrorIs(t, err, rap.ErrBadOptions)

	opts = rap.DefaultOptions()
	opts.Workers = -2
	_, err = rap.Solve(inst, opts)
	require.ErrorIs(t, err, rap.ErrBadOptions)

	opts = rap.DefaultOptions()
	opts.Algo = rap.Algorithm(99)
	_, err = rap.Solve(inst, opts)
	require.ErrorIs(t, err, rap.ErrUnsupportedAlgorithm)

	opts = rap.DefaultOptions()
	opts.Bound = rap.BoundAlgo(99)
	_, err = rap.Solve(inst, opts)
	require.ErrorIs(t, err, rap.ErrUnsupportedAlgorithm)
}

func TestNewInstance_CopiesIntervals(t *testing.T) {
	var ivs = []rap.Interval{{Lo: 0, Hi: 2}, {Lo: 5, Hi: 7}}
	inst, err := rap.NewInstance(convex.Quadratic{}, 9, ivs, 3)
	require.NoError(t, err)

	// Mutating the caller's slice must not reach into the instance.
	ivs[0] = rap.Interval{Lo: 100, Hi: 50}
	require.Equal(t, rap.Interval{Lo: 0, Hi: 2}, inst.Intervals[0])
}
