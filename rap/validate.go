// Package rap - validation shared by both exact solvers.
//
// This file contains small, tight helpers that:
//  1. Validate Options combinations (algorithm ↔ bound, tolerances).
//  2. Validate instances (cost, demand, interval shape/order/disjointness, n).
//  3. Check the feasibility envelope before any search starts.
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - No logging, no panics on user input - only sentinel errors from types.go.
//   - O(K) worst-case where K is the interval count; no hidden allocations.
package rap

import "math"

// boundTol is the structural tolerance for interval membership and sum
// checks. It is independent from Options.Eps (which governs incumbent
// acceptance and pruning in the search).
const boundTol = 1e-9

// validateAll verifies Options + Instance and returns K (interval count)
// on success.
//
// Contract:
//   - inst must carry a non-nil cost, finite demand, n ≥ 1 and a sorted,
//     pairwise-disjoint, well-formed interval list.
//   - opts must use known enum values, Eps ≥ 0 and Workers ≥ 0.
//
// Complexity: O(K) time, O(1) space.
func validateAll(inst Instance, opts Options) (int, error) {
	// Stage 1: Options-only sanity.
	if err := validateOptionsStandalone(opts); err != nil {
		return 0, err
	}

	// Stage 2: Instance shape and invariants.
	if err := validateInstance(inst); err != nil {
		return 0, err
	}

	return len(inst.Intervals), nil
}

// validateOptionsStandalone checks internal consistency of Options without
// referencing any instance.
//
// Complexity: O(1).
func validateOptionsStandalone(opts Options) error {
	// Eps is the acceptance tolerance for cost < best − Eps. A negative
	// epsilon would invert the acceptance logic ⇒ reject.
	if opts.Eps < 0 || math.IsNaN(opts.Eps) {
		return ErrBadOptions
	}
	// Workers < 0 is undefined; 0 and 1 both mean sequential.
	if opts.Workers < 0 {
		return ErrBadOptions
	}

	// Accept only known algorithms and bound policies.
	switch opts.Algo {
	case BranchAndBound, Exhaustive:
		// ok
	default:
		return ErrUnsupportedAlgorithm
	}
	switch opts.Bound {
	case RelaxationBound, NoBound:
		// ok
	default:
		return ErrUnsupportedAlgorithm
	}

	return nil
}

// validateInstance enforces the full instance contract:
//   - non-nil cost, finite demand, n ≥ 1,
//   - non-empty interval list,
//   - every interval finite with Lo ≤ Hi,
//   - sorted by Lo ascending,
//   - pairwise disjoint (prev.Hi < cur.Lo).
//
// Complexity: O(K).
func validateInstance(inst Instance) error {
	if inst.Cost == nil {
		return ErrNilCost
	}
	if math.IsNaN(inst.Demand) || math.IsInf(inst.Demand, 0) {
		return ErrBadDemand
	}
	if inst.N <= 0 {
		return ErrNonPositiveN
	}
	if len(inst.Intervals) == 0 {
		return ErrNoIntervals
	}

	var (
		k  int      // interval index
		iv Interval // interval under validation
	)
	for k = 0; k < len(inst.Intervals); k++ {
		iv = inst.Intervals[k]
		// Shape: finite bounds, Lo ≤ Hi.
		if math.IsNaN(iv.Lo) || math.IsNaN(iv.Hi) ||
			math.IsInf(iv.Lo, 0) || math.IsInf(iv.Hi, 0) || iv.Lo > iv.Hi {
			return ErrBadInterval
		}
		if k == 0 {
			continue
		}
		// Order: Lo ascending.
		if iv.Lo < inst.Intervals[k-1].Lo {
			return ErrUnsortedIntervals
		}
		// Disjointness: strictly separated closed ranges.
		if iv.Lo <= inst.Intervals[k-1].Hi {
			return ErrOverlappingIntervals
		}
	}

	return nil
}

// checkEnvelope performs the up-front feasibility envelope test: with a
// sorted disjoint interval list, every achievable sum lies in
// [n·Lo_1, n·Hi_K]. A demand outside that range is infeasible without any
// search. The converse does not hold — the achievable-sum set can have
// gaps inside the envelope — so the search keeps its own defensive
// infeasibility path.
//
// Complexity: O(1).
func checkEnvelope(inst Instance) error {
	var (
		nf     = float64(inst.N)              // n as float64
		last   = len(inst.Intervals) - 1      // index of the highest interval
		minSum = nf * inst.Intervals[0].Lo    // all variables at the global minimum
		maxSum = nf * inst.Intervals[last].Hi // all variables at the global maximum
	)
	if inst.Demand < minSum-boundTol || inst.Demand > maxSum+boundTol {
		return ErrInfeasible
	}

	return nil
}
