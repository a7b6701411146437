// Package rap — admissible lower bounds for Branch-and-Bound pruning.
//
// The RelaxationBound prices a partial node exactly on a *relaxed*
// instance: intervals whose counts are already fixed keep their true
// boxes, while all still-unassigned variables share one merged interval
// spanning every remaining bound ([Lo of the next interval, Hi of the
// last] — the interval list is sorted, so that span covers the union).
// Removing the disjointness of the remaining intervals only enlarges the
// feasible set, so the relaxed optimum never exceeds the true optimum of
// any completion: the bound is admissible. It is also strictly tighter
// than ignoring the remaining bounds altogether, because the merged box
// still caps how much (and how little) the remaining variables can carry.
//
// Governance (Options.Bound):
//
//	NoBound         → disables the lower bound (testing only).
//	RelaxationBound → merged-interval relaxation (implemented here).
package rap

import (
	"errors"
	"math"
)

// lowerBound returns an admissible lower bound on the cost of any
// completion of counts[0:depth), together with a feasibility flag for the
// relaxed sub-problem. assigned is Σ counts[0:depth).
//
// A false flag means even the relaxation cannot meet the demand, so the
// branch holds no feasible leaf at all and must be pruned outright.
//
// Policy on numerical failures inside the bound: be conservative — report
// −Inf (no pruning) rather than abort; exactness is unaffected because
// every surviving leaf is still priced exactly.
//
// Complexity: O(K²) — one waterfill over at most depth+1 boxes.
func (e *bbEngine) lowerBound(depth, assigned int) (float64, bool) {
	if !e.useBound {
		return math.Inf(-1), true // NoBound policy (for testing/benchmarking).
	}

	// Rebuild the scratch box list: fixed prefix + one merged remainder.
	e.boxes = e.boxes[:0]
	var k int
	for k = 0; k < depth; k++ {
		if e.counts[k] > 0 {
			e.boxes = append(e.boxes, wfBox{
				lo: e.ivs[k].Lo,
				hi: e.ivs[k].Hi,
				w:  float64(e.counts[k]),
			})
		}
	}
	var remaining = e.n - assigned
	if remaining > 0 {
		// Merged span of every interval still open to the remaining
		// variables; the list is sorted, so [Lo_depth, Hi_K] covers it.
		e.boxes = append(e.boxes, wfBox{
			lo: e.ivs[depth].Lo,
			hi: e.ivs[e.kk-1].Hi,
			w:  float64(remaining),
		})
	}

	sol, err := waterfill(e.f, e.boxes, e.demand)
	if err != nil {
		if errors.Is(err, ErrInfeasible) {
			return 0, false // no completion can meet the demand
		}

		return math.Inf(-1), true // conservative: never prune on a numerical hiccup
	}

	return sol.cost, true
}
