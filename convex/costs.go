// Package convex — built-in cost function families.
//
// Three families cover the common allocation objectives:
//
//   - Quadratic  f(x) = (x + shift)²        — the classical quadratic
//     resource-allocation objective (shift models a per-problem offset
//     such as a baseline load).
//   - Power      f(x) = |x|^p / p, p > 1    — heavier-than-quadratic
//     penalties; p = 2 coincides with ½·Quadratic at shift 0 up to scale.
//   - Exponential f(x) = exp(a·x) / a, a > 0 — steeply increasing costs.
//
// All three implement Inverter, so the solver's marginal queries are O(1).
// Constructors validate shape parameters; the zero Quadratic is valid.
package convex

import "math"

// Quadratic is the shifted quadratic cost f(x) = (x + Shift)².
// The zero value (Shift == 0) is plain x².
type Quadratic struct {
	// Shift is added to the argument before squaring.
	Shift float64
}

// Value returns (x + Shift)².
func (q Quadratic) Value(x float64) float64 {
	var s = x + q.Shift // shifted argument

	return s * s
}

// Deriv returns 2·(x + Shift).
func (q Quadratic) Deriv(x float64) float64 { return 2 * (x + q.Shift) }

// DerivInv returns the x with f′(x) = λ, i.e. λ/2 − Shift.
func (q Quadratic) DerivInv(lambda float64) float64 { return lambda/2 - q.Shift }

// Power is the p-th power cost f(x) = |x|^p / p with Exponent p > 1.
// Construct via NewPower; the zero value is invalid.
type Power struct {
	// Exponent is the power p; must be > 1 so that f′ is invertible.
	Exponent float64
}

// NewPower returns a Power cost with the given exponent.
// Exponents ≤ 1 (or non-finite) yield ErrBadBracket-style misuse and are
// rejected here rather than at solve time.
func NewPower(exponent float64) (Power, error) {
	if math.IsNaN(exponent) || math.IsInf(exponent, 0) || exponent <= 1 {
		return Power{}, ErrBadBracket
	}

	return Power{Exponent: exponent}, nil
}

// Value returns |x|^p / p.
func (p Power) Value(x float64) float64 {
	return math.Pow(math.Abs(x), p.Exponent) / p.Exponent
}

// Deriv returns sign(x)·|x|^(p−1), the derivative of |x|^p / p.
func (p Power) Deriv(x float64) float64 {
	var m = math.Pow(math.Abs(x), p.Exponent-1) // magnitude of the derivative
	if x < 0 {
		return -m
	}

	return m
}

// DerivInv returns sign(λ)·|λ|^(1/(p−1)), inverting Deriv.
func (p Power) DerivInv(lambda float64) float64 {
	var m = math.Pow(math.Abs(lambda), 1/(p.Exponent-1)) // magnitude of the solution
	if lambda < 0 {
		return -m
	}

	return m
}

// Exponential is the cost f(x) = exp(Rate·x) / Rate with Rate > 0.
// Construct via NewExponential; the zero value is invalid.
type Exponential struct {
	// Rate is the growth rate a; must be > 0.
	Rate float64
}

// NewExponential returns an Exponential cost with the given rate.
func NewExponential(rate float64) (Exponential, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return Exponential{}, ErrBadBracket
	}

	return Exponential{Rate: rate}, nil
}

// Value returns exp(Rate·x) / Rate.
func (e Exponential) Value(x float64) float64 {
	return math.Exp(e.Rate*x) / e.Rate
}

// Deriv returns exp(Rate·x).
func (e Exponential) Deriv(x float64) float64 { return math.Exp(e.Rate * x) }

// DerivInv returns ln(λ)/Rate; callers must supply λ > 0 (the range of
// Deriv), which SolveDeriv guarantees by clamping at the bracket first.
func (e Exponential) DerivInv(lambda float64) float64 {
	return math.Log(lambda) / e.Rate
}
