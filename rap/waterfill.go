// Package rap — exact continuous pricing via marginal-value equalization.
//
// waterfill solves the continuous relaxation attached to one count
// partition: minimize Σ c_k·f(y_k) subject to Σ c_k·y_k = total and
// y_k ∈ [lo_k, hi_k], where y_k is the per-variable value inside interval
// k. Because every variable shares the same convex f, the KKT conditions
// collapse to a single scalar: there is one common interior value t (with
// multiplier λ = f′(t)) and every box takes y_k = clamp(t, lo_k, hi_k).
//
// Rationale (succinct):
//  1. S(t) = Σ c_k·clamp(t, lo_k, hi_k) is continuous, non-decreasing and
//     piecewise linear with breakpoints exactly at the box bounds — the
//     count of clamped-at-lo boxes is a non-increasing step function of t,
//     clamped-at-hi non-decreasing.
//  2. The monotone search therefore walks the sorted breakpoints until
//     S crosses the target, then solves the crossing segment in closed
//     form (S is linear there). No iterative root-finding is needed; the
//     answer is exact up to FP.
//  3. Within one interval the assigned variables are interchangeable and
//     their common value d_k/c_k is feasible by the demand-partition
//     precondition, so the per-interval optimum is the even split
//     (Jensen); see evenSplit.
//
// Complexity: O(K²) worst case (O(K) breakpoint walk × O(K) sum per
// probe) with K = box count; K is the interval count, tiny in practice.
package rap

import (
	"math"
	"sort"

	"github.com/katalvlaran/symalloc/convex"
)

// wfBox is one weighted box of the continuous sub-problem: w variables
// confined to [lo, hi].
type wfBox struct {
	lo float64 // per-variable lower bound
	hi float64 // per-variable upper bound
	w  float64 // variable count in this box, > 0
}

// wfSolution is the exact optimum of one waterfill call.
type wfSolution struct {
	demands []float64 // per-box sub-demand d_k = w_k·y_k, Σ = total
	values  []float64 // per-box per-variable value y_k = clamp(t, lo_k, hi_k)
	level   float64   // the common interior value t
	lambda  float64   // marginal multiplier f′(t)
	cost    float64   // Σ w_k·f(y_k), exact (not yet stabilized)
}

// sumTol returns the absolute equality tolerance for sums at the given
// magnitude; keeps the crossing test meaningful for both tiny and large
// demands.
func sumTol(total float64) float64 {
	var m = math.Abs(total)
	if m < 1 {
		m = 1
	}

	return boundTol * m
}

// waterfill computes the exact optimal demand split across boxes.
//
// Contract:
//   - every box has w > 0 and lo ≤ hi (established by validation),
//   - boxes may overlap (the bound oracle passes a merged box).
//
// Errors:
//   - ErrInfeasible if total lies outside [Σ w·lo, Σ w·hi]; for the
//     search this is a pruning signal, not a failure.
//   - ErrNumerical on degenerate crossing slopes or non-finite cost
//     values; fatal for the solve (exactness over approximation).
//
// Complexity: O(K²) time, O(K) space.
func waterfill(f convex.Function, boxes []wfBox, total float64) (wfSolution, error) {
	var (
		kk    = len(boxes) // box count
		sumLo float64      // Σ w·lo — minimum achievable sum
		sumHi float64      // Σ w·hi — maximum achievable sum
		k     int          // box index
	)
	for k = 0; k < kk; k++ {
		sumLo += boxes[k].w * boxes[k].lo
		sumHi += boxes[k].w * boxes[k].hi
	}

	// Feasibility of this sub-problem.
	var tol = sumTol(total)
	if total < sumLo-tol || total > sumHi+tol {
		return wfSolution{}, ErrInfeasible
	}

	// Collect and sort the breakpoints (all box bounds).
	var bps = make([]float64, 0, 2*kk)
	for k = 0; k < kk; k++ {
		bps = append(bps, boxes[k].lo, boxes[k].hi)
	}
	sort.Float64s(bps)

	// clampSum evaluates S(t) = Σ w·clamp(t, lo, hi).
	var clampSum = func(t float64) float64 {
		var (
			s float64 // accumulator
			y float64 // clamped value
			j int     // box index
		)
		for j = 0; j < kk; j++ {
			y = t
			if y < boxes[j].lo {
				y = boxes[j].lo
			}
			if y > boxes[j].hi {
				y = boxes[j].hi
			}
			s += boxes[j].w * y
		}

		return s
	}

	// Monotone breakpoint walk: find the level t with S(t) = total.
	var (
		level float64            // resulting common value t
		sPrev = clampSum(bps[0]) // S at the previous breakpoint (= sumLo)
		s     float64            // S at the current breakpoint
		i     int                // breakpoint index
	)
	level = bps[0]
	if sPrev < total-tol {
		for i = 1; i < len(bps); i++ {
			s = clampSum(bps[i])
			if s < total-tol {
				sPrev = s
				continue
			}
			// Crossing reached: either exactly at this breakpoint…
			if s <= total+tol {
				level = bps[i]
				break
			}
			// …or strictly inside the segment (bps[i-1], bps[i]): S is
			// linear there with slope = Σ w over boxes spanning the segment.
			var slope float64
			for k = 0; k < kk; k++ {
				if boxes[k].lo <= bps[i-1] && boxes[k].hi >= bps[i] {
					slope += boxes[k].w
				}
			}
			if slope <= 0 || math.IsNaN(slope) {
				return wfSolution{}, ErrNumerical
			}
			level = bps[i-1] + (total-sPrev)/slope
			break
		}
		if i == len(bps) {
			// S never reached the target despite the envelope admitting it.
			return wfSolution{}, ErrNumerical
		}
	}

	// Materialize per-box values and demands at the found level.
	var sol = wfSolution{
		demands: make([]float64, kk),
		values:  make([]float64, kk),
		level:   level,
		lambda:  f.Deriv(level),
	}
	var (
		y   float64 // clamped per-variable value
		got float64 // Σ demands, for the residual fix
	)
	for k = 0; k < kk; k++ {
		y = level
		if y < boxes[k].lo {
			y = boxes[k].lo
		}
		if y > boxes[k].hi {
			y = boxes[k].hi
		}
		sol.values[k] = y
		sol.demands[k] = boxes[k].w * y
		got += sol.demands[k]
	}

	// Fold the FP residual into one strictly interior box so the demands
	// sum to total exactly; a residual with no interior box is below tol
	// by construction and left in place.
	var residual = total - got
	if residual != 0 {
		for k = 0; k < kk; k++ {
			if sol.values[k] > boxes[k].lo && sol.values[k] < boxes[k].hi {
				sol.demands[k] += residual
				sol.values[k] = sol.demands[k] / boxes[k].w
				break
			}
		}
	}

	// Exact cost at the optimum.
	var c float64
	for k = 0; k < kk; k++ {
		c += boxes[k].w * f.Value(sol.values[k])
	}
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return wfSolution{}, ErrNumerical
	}
	sol.cost = c

	return sol, nil
}

// evenSplit returns the common per-variable value and exact cost of
// splitting sub-demand d among c interchangeable variables in [lo, hi].
//
// Contract: c ≥ 1 and c·lo ≤ d ≤ c·hi within tolerance (a violated
// precondition is a caller error, reported as ErrInfeasible).
//
// Complexity: O(1).
func evenSplit(f convex.Function, lo, hi float64, c int, d float64) (float64, float64, error) {
	if c < 1 {
		return 0, 0, ErrInfeasible
	}
	var (
		cf  = float64(c) // count as float64
		tol = sumTol(d)  // magnitude-aware tolerance
	)
	if d < cf*lo-tol || d > cf*hi+tol {
		return 0, 0, ErrInfeasible
	}

	// Jensen: the even split minimizes Σ f among all splits of d; the
	// mean is inside [lo, hi] by the precondition (clamped against FP).
	var x = d / cf
	if x < lo {
		x = lo
	}
	if x > hi {
		x = hi
	}
	var cost = cf * f.Value(x)
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return 0, 0, ErrNumerical
	}

	return x, cost, nil
}

// priceCounts prices a complete count partition exactly: it runs the
// waterfill over the intervals holding at least one variable and maps the
// result back to full-length per-interval demands (0 for empty intervals).
//
// Complexity: O(K²) — one waterfill.
func priceCounts(f convex.Function, ivs []Interval, counts []int, demand float64) ([]float64, float64, error) {
	var (
		kk    = len(ivs)             // interval count
		boxes = make([]wfBox, 0, kk) // occupied intervals only
		index = make([]int, 0, kk)   // box position → interval index
		k     int                    // interval index
	)
	for k = 0; k < kk; k++ {
		if counts[k] > 0 {
			boxes = append(boxes, wfBox{lo: ivs[k].Lo, hi: ivs[k].Hi, w: float64(counts[k])})
			index = append(index, k)
		}
	}

	sol, err := waterfill(f, boxes, demand)
	if err != nil {
		return nil, 0, err
	}

	var demands = make([]float64, kk)
	var b int // box position
	for b = 0; b < len(boxes); b++ {
		demands[index[b]] = sol.demands[b]
	}

	return demands, sol.cost, nil
}
