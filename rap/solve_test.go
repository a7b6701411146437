// Package rap_test — end-to-end correctness of the dispatcher.
//
// Focus:
//  1. The pinned reference instance and other closed-form optima.
//  2. Spec-level properties: sum-to-demand, membership, cost consistency,
//     boundary demands, infeasibility (envelope and gap), monotonicity of
//     the optimal cost in D, marginal-value equalization at the optimum.
package rap_test

import (
	"testing"

	"github.com/katalvlaran/symalloc/convex"
	"github.com/katalvlaran/symalloc/rap"
	"github.com/stretchr/testify/require"
)

// mustInstance builds an instance that the test knows to be well-formed.
func mustInstance(t *testing.T, cost convex.Function, demand float64, ivs []rap.Interval, n int) rap.Instance {
	t.Helper()
	inst, err := rap.NewInstance(cost, demand, ivs, n)
	require.NoError(t, err)

	return inst
}

func TestSolve_PinnedTwoIntervalInstance(t *testing.T) {
	// f(x)=x², domain [0,2] ∪ [5,7], n=3, D=9.
	// Only the count partition (2,1) admits a demand split; both values
	// clamp at the facing bounds: x = (2, 2, 5), cost 4+4+25 = 33.
	inst := mustInstance(t, convex.Quadratic{}, 9, okIntervals, 3)

	res, err := rap.Solve(inst, rap.DefaultOptions())
	require.NoError(t, err)
	requireValidAllocation(t, inst, res)
	require.Equal(t, []float64{2, 2, 5}, res.X)
	require.Equal(t, 33.0, res.Cost)

	// The exhaustive oracle must agree exactly.
	opts := rap.DefaultOptions()
	opts.Algo = rap.Exhaustive
	ex, err := rap.Solve(inst, opts)
	require.NoError(t, err)
	require.Equal(t, res.X, ex.X)
	require.Equal(t, res.Cost, ex.Cost)
}

func TestSolve_SingleIntervalEvenSplit(t *testing.T) {
	// One interval: the optimum is the plain even split D/n.
	inst := mustInstance(t, convex.Quadratic{}, 8,
		[]rap.Interval{{Lo: 0, Hi: 10}}, 4)

	res, err := rap.Solve(inst, rap.DefaultOptions())
	require.NoError(t, err)
	requireValidAllocation(t, inst, res)
	require.Equal(t, []float64{2, 2, 2, 2}, res.X)
	require.Equal(t, 16.0, res.Cost)
}

func TestSolve_InteriorOptimum(t *testing.T) {
	// f(x)=x², domain [0,4] ∪ [5,9], n=3, D=11: keeping every variable in
	// the low interval at 11/3 beats any split across intervals.
	inst := mustInstance(t, convex.Quadratic{}, 11,
		[]rap.Interval{{Lo: 0, Hi: 4}, {Lo: 5, Hi: 9}}, 3)

	res, err := rap.Solve(inst, rap.DefaultOptions())
	require.NoError(t, err)
	requireValidAllocation(t, inst, res)
	for _, v := range res.X {
		require.InDelta(t, 11.0/3.0, v, 1e-9)
	}
	require.InDelta(t, 121.0/3.0, res.Cost, 1e-8)
}

func TestSolve_MarginalValueEqualization(t *testing.T) {
	// At an optimum with interior components, all of them share one
	// marginal value λ = f′(x), and the inverse-marginal query recovers x.
	var f = convex.Quadratic{}
	inst := mustInstance(t, f, 11,
		[]rap.Interval{{Lo: 0, Hi: 4}, {Lo: 5, Hi: 9}}, 3)

	res, err := rap.Solve(inst, rap.DefaultOptions())
	require.NoError(t, err)

	var lambda = f.Deriv(res.X[0])
	for _, v := range res.X {
		require.InDelta(t, lambda, f.Deriv(v), 1e-9)
		x, serr := convex.SolveDeriv(f, lambda, 0, 4, 0)
		require.NoError(t, serr)
		require.InDelta(t, v, x, 1e-9)
	}
}

func TestSolve_ShiftedQuadratic(t *testing.T) {
	// f(x)=(x−3)²: the unconstrained per-variable optimum is 3; with
	// D=6, n=2 on a wide single interval both variables sit exactly there.
	inst := mustInstance(t, convex.Quadratic{Shift: -3}, 6,
		[]rap.Interval{{Lo: 0, Hi: 10}}, 2)

	res, err := rap.Solve(inst, rap.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []float64{3, 3}, res.X)
	require.Equal(t, 0.0, res.Cost)
}

func TestSolve_PowerCost(t *testing.T) {
	// A non-quadratic convex cost exercises the generic pricing path;
	// both exact algorithms must agree.
	p, err := convex.NewPower(3)
	require.NoError(t, err)
	inst := mustInstance(t, p, 9, okIntervals, 3)

	bb, ex := solveBoth(t, inst)
	requireValidAllocation(t, inst, bb)
	require.InDelta(t, ex.Cost, bb.Cost, 1e-9)
}

func TestSolve_BoundaryDemands(t *testing.T) {
	var ivs = []rap.Interval{{Lo: 1, Hi: 2}, {Lo: 5, Hi: 7}}

	// Minimum feasible demand: every variable at the global minimum.
	lo := mustInstance(t, convex.Quadratic{}, 3, ivs, 3)
	res, err := rap.Solve(lo, rap.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 1}, res.X)
	require.Equal(t, 3.0, res.Cost)

	// Maximum feasible demand: every variable at the global maximum.
	hi := mustInstance(t, convex.Quadratic{}, 21, ivs, 3)
	res, err = rap.Solve(hi, rap.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []float64{7, 7, 7}, res.X)
	require.Equal(t, 147.0, res.Cost)
}

func TestSolve_InfeasibleOutsideEnvelope(t *testing.T) {
	inst := mustInstance(t, convex.Quadratic{}, 100, okIntervals, 3)
	_, err := rap.Solve(inst, rap.DefaultOptions())
	require.ErrorIs(t, err, rap.ErrInfeasible)

	inst = mustInstance(t, convex.Quadratic{}, -1, okIntervals, 3)
	_, err = rap.Solve(inst, rap.DefaultOptions())
	require.ErrorIs(t, err, rap.ErrInfeasible)
}

func TestSolve_InfeasibleInsideEnvelopeGap(t *testing.T) {
	// n=1 over [0,1] ∪ [10,11]: D=5 sits inside the envelope [0,11] but in
	// the gap of achievable sums — only the defensive search path can
	// detect it.
	inst := mustInstance(t, convex.Quadratic{}, 5,
		[]rap.Interval{{Lo: 0, Hi: 1}, {Lo: 10, Hi: 11}}, 1)

	_, err := rap.Solve(inst, rap.DefaultOptions())
	require.ErrorIs(t, err, rap.ErrInfeasible)

	// The exhaustive oracle reports the same outcome.
	opts := rap.DefaultOptions()
	opts.Algo = rap.Exhaustive
	_, err = rap.Solve(inst, opts)
	require.ErrorIs(t, err, rap.ErrInfeasible)
}

func TestSolve_CostMonotoneInDemand(t *testing.T) {
	// With an increasing cost over a non-negative domain, the optimal
	// total cost is non-decreasing in D.
	var (
		ivs  = []rap.Interval{{Lo: 0, Hi: 2}, {Lo: 5, Hi: 7}}
		prev = -1.0
	)
	for _, d := range []float64{0, 3, 6, 9, 12, 15, 18, 21} {
		inst := mustInstance(t, convex.Quadratic{}, d, ivs, 3)
		res, err := rap.Solve(inst, rap.DefaultOptions())
		require.NoError(t, err)
		require.GreaterOrEqualf(t, res.Cost, prev, "cost decreased at D=%v", d)
		prev = res.Cost
	}
}

func TestSolve_PermutationInvariantCost(t *testing.T) {
	inst := mustInstance(t, convex.Quadratic{}, 9, okIntervals, 3)
	res, err := rap.Solve(inst, rap.DefaultOptions())
	require.NoError(t, err)

	// Cost is a symmetric function of the allocation: any reordering of
	// the slots evaluates identically.
	var reversed = make([]float64, len(res.X))
	for i, v := range res.X {
		reversed[len(res.X)-1-i] = v
	}
	require.Equal(t, rap.AllocationCost(inst.Cost, res.X),
		rap.AllocationCost(inst.Cost, reversed))
}
