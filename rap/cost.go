// Package rap — cost utilities shared by both exact solvers.
//
// Design:
//   - Side-effect free; strict about non-finite values.
//   - Stable summation: results rounded to 1e-9 to avoid cross-platform
//     FP noise (the same stabilization every returned Result.Cost gets).
//
// Complexity: O(n) time, O(1) extra space.
package rap

import (
	"math"

	"github.com/katalvlaran/symalloc/convex"
)

// roundScale controls final cost stabilization precision (1e-9).
// Avoids tiny FP drifts across platforms without affecting optimality.
const roundScale = 1e9

// round1e9 returns x rounded to 1e-9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}

// AllocationCost recomputes Σ f(x_i) directly from an allocation vector
// and stabilizes it to 1e-9. This is the same bookkeeping-independent
// evaluation Solve uses for Result.Cost, exported so callers can verify
// consistency between the search's answer and the vector it returned.
//
// Complexity: O(n).
func AllocationCost(f convex.Function, x []float64) float64 {
	var (
		sum float64 // accumulator
		i   int     // component index
	)
	for i = 0; i < len(x); i++ {
		sum += f.Value(x[i])
	}

	return round1e9(sum)
}
