// Package rap_test — shared helpers for the rap test suite.
//
// Policy:
//   - Deterministic: fixed seeds only; no time-based randomness.
//   - Helpers assert the spec-level invariants every successful solve
//     must satisfy (sum-to-demand, interval membership, cost consistency),
//     so individual tests stay focused on their scenario.
package rap_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/symalloc/convex"
	"github.com/katalvlaran/symalloc/rap"
	"github.com/stretchr/testify/require"
)

// seedDet is the fixed seed for every randomized test in this suite.
const seedDet = 42

// sumOf returns Σ x without external helpers (tests stay self-contained).
func sumOf(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v
	}

	return s
}

// requireValidAllocation asserts the universal postconditions of a
// successful solve: length n, sum equals demand, every component inside
// one of the intervals, and the reported cost matching a direct
// recomputation from the vector.
func requireValidAllocation(t *testing.T, inst rap.Instance, res rap.Result) {
	t.Helper()

	require.Len(t, res.X, inst.N)
	require.InDelta(t, inst.Demand, sumOf(res.X), 1e-6)
	for i, v := range res.X {
		var inside bool
		for _, iv := range inst.Intervals {
			if iv.Contains(v) {
				inside = true
				break
			}
		}
		require.Truef(t, inside, "component %d = %v lies in no interval", i, v)
	}
	require.InDelta(t, rap.AllocationCost(inst.Cost, res.X), res.Cost, 1e-9)
}

// randInstance builds a feasible random instance: sorted disjoint
// intervals with positive gaps, and a demand sampled from a random count
// partition so feasibility is guaranteed by construction.
func randInstance(rng *rand.Rand) rap.Instance {
	var (
		kk     = 1 + rng.Intn(3) // 1..3 intervals
		n      = 1 + rng.Intn(6) // 1..6 variables
		ivs    = make([]rap.Interval, 0, kk)
		cursor = -2 + 4*rng.Float64() // running lower edge
	)
	for k := 0; k < kk; k++ {
		var (
			lo = cursor + 0.1 + rng.Float64()
			hi = lo + 0.2 + 2*rng.Float64()
		)
		ivs = append(ivs, rap.Interval{Lo: lo, Hi: hi})
		cursor = hi
	}

	// Sample a count partition and a per-interval demand inside its box.
	var (
		counts = make([]int, kk)
		demand float64
	)
	for i := 0; i < n; i++ {
		counts[rng.Intn(kk)]++
	}
	for k := 0; k < kk; k++ {
		if counts[k] == 0 {
			continue
		}
		var (
			c   = float64(counts[k])
			sub = c*ivs[k].Lo + rng.Float64()*c*(ivs[k].Hi-ivs[k].Lo)
		)
		demand += sub
	}

	inst, err := rap.NewInstance(convex.Quadratic{}, demand, ivs, n)
	if err != nil {
		// By construction this cannot happen; fail loudly if it does.
		panic(err)
	}

	return inst
}

// solveBoth runs both exact algorithms on the same instance and returns
// the two results; the caller asserts whatever equivalence it needs.
func solveBoth(t *testing.T, inst rap.Instance) (rap.Result, rap.Result) {
	t.Helper()

	var opts = rap.DefaultOptions()
	bb, err := rap.Solve(inst, opts)
	require.NoError(t, err)

	opts.Algo = rap.Exhaustive
	ex, err := rap.Solve(inst, opts)
	require.NoError(t, err)

	return bb, ex
}

// almostEqual reports |a−b| ≤ tol, for use in loops where require would
// obscure which pair failed.
func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
