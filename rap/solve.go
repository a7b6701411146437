// Package rap - unified dispatcher for the exact solvers.
//
// This file provides the canonical entry points:
//
//   - NewInstance: validate and freeze an allocation problem.
//   - Solve: validate, check the feasibility envelope, route to the
//     requested algorithm (BranchAndBound / Exhaustive), and assemble the
//     final allocation.
//
// Design principles:
//   - Deterministic: fixed branch order, strict-improvement acceptance.
//   - Strict sentinels: only errors from types.go; no fmt.Errorf where a
//     sentinel suffices.
//   - Stable cost: every returned cost is rounded to 1e−9.
package rap

import "github.com/katalvlaran/symalloc/convex"

// NewInstance validates an allocation problem and returns it as an
// immutable Instance. The interval list is deep-copied, so the caller may
// reuse or mutate its slice afterwards.
//
// Errors: ErrNilCost, ErrBadDemand, ErrNonPositiveN, ErrNoIntervals,
// ErrBadInterval, ErrUnsortedIntervals, ErrOverlappingIntervals.
//
// Complexity: O(K).
func NewInstance(cost convex.Function, demand float64, intervals []Interval, n int) (Instance, error) {
	var inst = Instance{
		Cost:      cost,
		Demand:    demand,
		Intervals: append([]Interval(nil), intervals...),
		N:         n,
	}
	if err := validateInstance(inst); err != nil {
		return Instance{}, err
	}

	return inst, nil
}

// Solve computes a provably optimal allocation for the instance.
//
// Contracts:
//   - inst as produced by NewInstance (Solve re-validates, so hand-built
//     instances are accepted as long as they satisfy the same invariants).
//   - opts from DefaultOptions, adjusted as needed.
//
// Outcomes:
//   - (Result, nil): optimal allocation; Result.X sums to Demand within
//     tolerance, every component lies in its interval, Result.Cost is the
//     stabilized Σ f(x_i).
//   - ErrInfeasible: no assignment of the n variables to the intervals
//     admits a demand split summing to Demand.
//   - ErrNumerical: a continuous sub-allocation failed; no approximate
//     answer is returned in that case.
//   - Validation sentinels for malformed inputs (see types.go).
//
// Complexity: per algorithm — see doc.go.
func Solve(inst Instance, opts Options) (Result, error) {
	// Stage 1 - unified validation (Options + Instance).
	if _, err := validateAll(inst, opts); err != nil {
		return Result{}, err
	}

	// Stage 2 - feasibility envelope (cheap necessary condition; the
	// search itself covers the gaps the envelope cannot see).
	if err := checkEnvelope(inst); err != nil {
		return Result{}, err
	}

	// Stage 3 - route by algorithm.
	var (
		counts  []int
		demands []float64
		err     error
	)
	switch opts.Algo {
	case BranchAndBound:
		counts, demands, err = runBranchAndBound(inst, opts)
	case Exhaustive:
		counts, demands, err = runExhaustive(inst, opts)
	default:
		return Result{}, ErrUnsupportedAlgorithm
	}
	if err != nil {
		return Result{}, err
	}

	// Stage 4 - assemble the final allocation from the winning partitions.
	return assemble(inst, counts, demands)
}
