// Package rap — final allocation assembly.
//
// assemble turns the winning (count partition, demand partition) pair
// into the length-n allocation vector: interval by interval, in ascending
// interval order, each occupied interval contributes c_k copies of the
// even split d_k/c_k. Purely a formatting step over already-optimal
// sub-allocations; the cost is recomputed from the vector so the returned
// Result is self-consistent by construction.
package rap

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// assemble builds the Result from the winning partitions.
//
// Contract: counts/demands are full-length (one slot per interval) with
// Σ counts = n and Σ demands = Demand, as produced by the search.
//
// Errors: ErrNumerical if a sub-demand violates its interval's capacity
// or the assembled vector fails the sum check — both indicate broken
// search bookkeeping, not user error.
//
// Complexity: O(n + K).
func assemble(inst Instance, counts []int, demands []float64) (Result, error) {
	var (
		x = make([]float64, 0, inst.N) // final allocation, grouped by interval
		k int                          // interval index
		i int                          // copy counter
	)
	for k = 0; k < len(inst.Intervals); k++ {
		if counts[k] == 0 {
			continue
		}
		v, _, err := evenSplit(inst.Cost, inst.Intervals[k].Lo, inst.Intervals[k].Hi, counts[k], demands[k])
		if err != nil {
			return Result{}, ErrNumerical
		}
		for i = 0; i < counts[k]; i++ {
			x = append(x, v)
		}
	}

	// Defensive: the allocation must sum to the demand within tolerance.
	if math.Abs(floats.Sum(x)-inst.Demand) > sumTol(inst.Demand) {
		return Result{}, ErrNumerical
	}

	return Result{X: x, Cost: AllocationCost(inst.Cost, x)}, nil
}
