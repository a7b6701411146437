// Package rap solves the symmetric separable convex Resource Allocation
// Problem with Disjoint Interval Bound Constraints (RAP-DIBC) exactly.
//
// Problem:
//
//	min  Σ_{i=1..n} f(x_i)
//	s.t. Σ x_i = D
//	     x_i ∈ [lo_1,hi_1] ∪ … ∪ [lo_K,hi_K]   for every i
//
// with one convex f and one sorted, pairwise-disjoint interval list shared
// by all n variables. The symmetry is what makes exact search tractable:
// only the *number* of variables per interval matters, so the search space
// is the set of count partitions (compositions of n into K non-negative
// parts, O(n^(K−1)) many) instead of the K^n individual assignments.
//
// It includes two exact algorithms behind one dispatcher (Solve):
//
//   - BranchAndBound — DFS over count partitions with an admissible
//     relaxation lower bound for pruning.
//
//   - Complexity: O(n^(K−1)) leaves worst case; pruning makes typical
//     instances far cheaper. Per node: one waterfill, O(K²) worst case.
//
//   - Memory:     O(K) search state (+ O(K) per extra worker).
//
//   - Exhaustive — prices every count partition; no pruning.
//
//   - Complexity: Θ(C(n+K−1, K−1)) waterfills.
//
//   - Intended as the reference oracle for tests and tiny instances.
//
// For a fixed count partition the optimal demand split across intervals is
// not enumerated: it is the solution of a K-variable weighted convex
// program, computed exactly by marginal-value equalization (waterfill.go).
// Within one interval all assigned variables are interchangeable, so each
// takes an equal share of that interval's sub-demand.
//
// All returned costs are stabilized to 1e−9 to prevent FP drift across
// platforms. Infeasible instances return ErrInfeasible, never a number.
//
// Use this package when you need a provably optimal allocation on
// instances where n·K stays moderate (n ≲ 10⁴ for small K).
package rap
