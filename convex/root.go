// Package convex — the inverse-marginal query SolveDeriv.
//
// SolveDeriv answers "which x in [lo, hi] has marginal cost λ?", the
// primitive behind marginal-value equalization: at a separable-convex
// optimum every unclamped variable sits where its derivative equals the
// common multiplier λ.
//
// Design:
//   - Analytic fast path when f implements Inverter (clamp of DerivInv).
//   - Otherwise monotone bisection on f′ over [lo, hi]: f′ is
//     non-decreasing for convex f, so the bracket halves deterministically.
//   - Saturation short-circuits: f′(lo) ≥ λ pins lo, f′(hi) ≤ λ pins hi.
//
// Complexity: O(1) with Inverter; O(log((hi−lo)/tol)) bisection steps
// otherwise, capped at maxBisectIters (⇒ ErrNoConvergence).
package convex

import "math"

// maxBisectIters caps the bisection loop. 256 halvings shrink any finite
// bracket below every representable positive tolerance, so hitting the cap
// signals a broken derivative (NaN plateaus), not a tight tolerance.
const maxBisectIters = 256

// DefaultTol is the absolute bracket tolerance used by callers that have
// no tighter requirement of their own.
const DefaultTol = 1e-12

// SolveDeriv returns the x in [lo, hi] minimizing f(x) − λ·x, i.e. the
// point where f′(x) = λ clamped into the interval.
//
// Contract:
//   - lo ≤ hi, both finite; tol > 0 (≤ 0 falls back to DefaultTol).
//   - f′ must be non-decreasing on [lo, hi] (convexity).
//
// Errors: ErrBadBracket on a malformed interval; ErrNoConvergence if the
// bisection exhausts its iteration budget (non-finite derivative values).
//
// Complexity: O(1) analytic, O(log((hi−lo)/tol)) otherwise.
func SolveDeriv(f Function, lambda, lo, hi, tol float64) (float64, error) {
	// Bracket sanity: finite, ordered.
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo > hi {
		return 0, ErrBadBracket
	}
	if tol <= 0 {
		tol = DefaultTol
	}

	// Analytic fast path: clamp the closed-form solution into the bracket.
	if inv, ok := f.(Inverter); ok {
		var x = inv.DerivInv(lambda)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			// Out-of-range λ for this cost (e.g. λ ≤ 0 for Exponential):
			// the optimum of f(x) − λ·x then sits at a bracket endpoint.
			if f.Deriv(lo) >= lambda {
				return lo, nil
			}

			return hi, nil
		}
		if x < lo {
			return lo, nil
		}
		if x > hi {
			return hi, nil
		}

		return x, nil
	}

	// Saturation short-circuits: the whole bracket is on one side of λ.
	if f.Deriv(lo) >= lambda {
		return lo, nil
	}
	if f.Deriv(hi) <= lambda {
		return hi, nil
	}

	// Monotone bisection: f′(a) < λ < f′(b) is maintained as an invariant.
	var (
		a   = lo    // left bracket end, f′(a) < λ
		b   = hi    // right bracket end, f′(b) > λ
		mid float64 // current midpoint
		d   float64 // derivative at mid
		it  int     // iteration counter
	)
	for it = 0; it < maxBisectIters; it++ {
		mid = a + (b-a)/2 // midpoint without overflow
		if b-a <= tol {
			return mid, nil
		}
		d = f.Deriv(mid)
		if math.IsNaN(d) {
			return 0, ErrNoConvergence
		}
		if d < lambda {
			a = mid
		} else {
			b = mid
		}
	}

	return 0, ErrNoConvergence
}
