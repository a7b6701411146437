// Package rap — exhaustive reference enumeration (no pruning).
//
// runExhaustive prices every count partition — every composition of n
// into K non-negative parts — with the same exact waterfill the
// Branch-and-Bound uses at its leaves, and keeps the best. It exists as
// the ground-truth oracle: on any instance both algorithms must agree on
// the optimal cost, which the test suite asserts on randomized instances.
//
// Complexity: Θ(C(n+K−1, K−1)) waterfills, O(K) recursion depth.
// Use on small instances only.
package rap

import "errors"

// exhaustState carries the enumeration bookkeeping: the working partition
// and the best (partition, demand split, cost) triple seen so far. Owned
// by a single runExhaustive call; never shared.
type exhaustState struct {
	inst Instance
	eps  float64

	counts []int // working partition, mutated in place

	found       bool      // whether any feasible partition was priced
	bestCost    float64   // cost of the best partition
	bestCounts  []int     // best count partition
	bestDemands []float64 // its exact demand split
}

// enum fills counts[depth:] recursively; the last position is forced by
// the remainder. Recursion depth is K−1 (tiny), so no explicit stack is
// needed here — the engine in bb.go is the one that hands subtrees to
// workers and keeps an iterative frontier.
func (s *exhaustState) enum(depth, assigned int) error {
	if depth == len(s.inst.Intervals)-1 {
		s.counts[depth] = s.inst.N - assigned

		demands, cost, err := priceCounts(s.inst.Cost, s.inst.Intervals, s.counts, s.inst.Demand)
		if err != nil {
			if errors.Is(err, ErrInfeasible) {
				return nil // no demand split for this partition; skip
			}

			return err
		}
		// Strict improvement: identical acceptance rule (and branch
		// order) as Branch-and-Bound, so tie-breaks agree as well.
		if !s.found || cost < s.bestCost-s.eps {
			s.found = true
			s.bestCost = cost
			s.bestCounts = append(s.bestCounts[:0], s.counts...)
			s.bestDemands = append(s.bestDemands[:0], demands...)
		}

		return nil
	}

	var c int
	for c = 0; c <= s.inst.N-assigned; c++ {
		s.counts[depth] = c
		if err := s.enum(depth+1, assigned+c); err != nil {
			return err
		}
	}

	return nil
}

// runExhaustive enumerates and prices all count partitions.
//
// Errors: ErrInfeasible if no partition admits a demand split;
// ErrNumerical on a sub-allocation failure.
func runExhaustive(inst Instance, opts Options) ([]int, []float64, error) {
	var s = exhaustState{
		inst:   inst,
		eps:    opts.Eps,
		counts: make([]int, len(inst.Intervals)),
	}
	if err := s.enum(0, 0); err != nil {
		return nil, nil, err
	}
	if !s.found {
		return nil, nil, ErrInfeasible
	}

	return s.bestCounts, s.bestDemands, nil
}
