// Package convex defines univariate convex cost functions and the
// inverse-derivative (marginal-value) query used by the rap solver.
//
// A cost function f: ℝ → ℝ must be convex on the feasible domain; its
// derivative f′ is then non-decreasing, which is what both the solver's
// marginal-value equalization and SolveDeriv's monotone bisection rely on.
//
// Contracts:
//
//	– Value(x)  returns f(x); must be finite on the feasible domain.
//	– Deriv(x)  returns f′(x) (or a sub-gradient where f is not smooth);
//	            must be non-decreasing in x.
//	– DerivInv(λ) (optional, via Inverter) returns the x with f′(x) = λ;
//	            implementing it turns SolveDeriv into an O(1) query.
//
// Errors (sentinel):
//
//	– ErrNoConvergence if the bisection in SolveDeriv fails to reach the
//	  requested tolerance within the iteration budget.
//	– ErrBadBracket    if SolveDeriv is called with lo > hi or a
//	  non-finite bracket.
package convex

import "errors"

// Sentinel errors returned by this package.
var (
	// ErrNoConvergence indicates that the inverse-derivative bisection did
	// not reach the requested tolerance within the iteration budget.
	ErrNoConvergence = errors.New("convex: inverse-derivative search did not converge")

	// ErrBadBracket indicates that SolveDeriv received an empty or
	// non-finite search bracket (lo > hi, NaN or ±Inf endpoints).
	ErrBadBracket = errors.New("convex: invalid search bracket")
)

// Function is a univariate convex cost function.
//
// Implementations must be immutable for the lifetime of a solve: the rap
// solver shares one Function across all variables and, in parallel mode,
// across workers, with no synchronization.
type Function interface {
	// Value returns f(x).
	Value(x float64) float64

	// Deriv returns f′(x), non-decreasing in x. For non-smooth convex
	// functions any sub-gradient is acceptable as long as monotonicity
	// across calls is preserved.
	Deriv(x float64) float64
}

// Inverter is an optional extension of Function providing an analytic
// inverse derivative. When a cost implements it, SolveDeriv answers the
// marginal query in closed form instead of bisecting.
type Inverter interface {
	Function

	// DerivInv returns the x solving f′(x) = λ. For strictly convex f the
	// solution is unique; implementations may return any solution when f′
	// is flat at λ.
	DerivInv(lambda float64) float64
}
