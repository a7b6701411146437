// Package rap - core types, options and sentinel errors.
//
// Everything the dispatcher and engines share lives here: the instance
// model (Interval, Instance), the outcome (Result), the Options struct
// with its Algorithm/BoundAlgo enums, and the strict sentinel errors.
// No fmt.Errorf where a sentinel suffices; callers compare with errors.Is.
package rap

import (
	"errors"

	"github.com/katalvlaran/symalloc/convex"
)

// Sentinel errors returned by the rap solvers.
var (
	// ErrNilCost indicates that the instance carries no cost function.
	ErrNilCost = errors.New("rap: cost function is nil")

	// ErrBadDemand indicates a NaN or infinite total demand.
	ErrBadDemand = errors.New("rap: demand must be finite")

	// ErrNoIntervals indicates an empty interval list.
	ErrNoIntervals = errors.New("rap: interval list is empty")

	// ErrBadInterval indicates a malformed interval (Lo > Hi, NaN or ±Inf).
	ErrBadInterval = errors.New("rap: malformed interval")

	// ErrUnsortedIntervals indicates intervals not sorted by Lo ascending.
	ErrUnsortedIntervals = errors.New("rap: intervals must be sorted by Lo ascending")

	// ErrOverlappingIntervals indicates intervals that touch or overlap;
	// the feasible domain must be a union of pairwise-disjoint ranges.
	ErrOverlappingIntervals = errors.New("rap: intervals must be pairwise disjoint")

	// ErrNonPositiveN indicates a variable count n ≤ 0.
	ErrNonPositiveN = errors.New("rap: variable count must be positive")

	// ErrBadOptions indicates an internally inconsistent Options value
	// (negative Eps, negative Workers).
	ErrBadOptions = errors.New("rap: invalid options")

	// ErrUnsupportedAlgorithm indicates an unknown Algorithm or BoundAlgo.
	ErrUnsupportedAlgorithm = errors.New("rap: unsupported algorithm")

	// ErrInfeasible indicates that no assignment of the n variables to the
	// intervals admits a demand split summing to D. Reported either by the
	// up-front envelope check or, defensively, when the search exhausts
	// every branch without a feasible leaf.
	ErrInfeasible = errors.New("rap: no feasible allocation")

	// ErrNumerical indicates a numerical failure inside the continuous
	// sub-allocation (degenerate segment slope, non-finite cost values).
	// Exactness is the point of this package, so the failure is fatal for
	// the solve rather than silently approximated.
	ErrNumerical = errors.New("rap: numerical failure in continuous sub-allocation")
)

// Interval is one closed feasible range [Lo, Hi] of the disjoint union.
type Interval struct {
	// Lo is the inclusive lower bound.
	Lo float64

	// Hi is the inclusive upper bound; Lo ≤ Hi.
	Hi float64
}

// Contains reports whether x lies in [Lo, Hi] within the structural
// tolerance boundTol (see validate.go).
func (iv Interval) Contains(x float64) bool {
	return x >= iv.Lo-boundTol && x <= iv.Hi+boundTol
}

// Instance is an immutable description of one allocation problem.
// Construct via NewInstance, which validates and deep-copies the interval
// list; treat all fields as read-only for the lifetime of a solve.
type Instance struct {
	// Cost is the convex cost applied to every variable.
	Cost convex.Function

	// Demand is the total D the allocation must sum to.
	Demand float64

	// Intervals is the shared feasible domain, sorted by Lo ascending and
	// pairwise disjoint.
	Intervals []Interval

	// N is the number of variables, ≥ 1.
	N int
}

// Result is the outcome of a successful solve.
type Result struct {
	// X is the optimal allocation, length N, grouped by interval in
	// ascending interval order. Σ X = Demand within tolerance; every
	// component lies inside its interval.
	X []float64

	// Cost is Σ Cost(X[i]), recomputed from X and stabilized to 1e−9.
	Cost float64
}

// Algorithm selects the exact solver run by Solve.
type Algorithm int

const (
	// BranchAndBound prunes the count-partition tree with admissible
	// relaxation lower bounds. The default.
	BranchAndBound Algorithm = iota

	// Exhaustive prices every count partition; the brute-force reference
	// oracle. Exponential in K, use on small instances only.
	Exhaustive
)

// BoundAlgo selects the lower-bound policy used by BranchAndBound.
type BoundAlgo int

const (
	// RelaxationBound prices the partial problem where all remaining
	// variables share one merged interval spanning the remaining bounds.
	// Admissible (relaxation only enlarges the feasible set). The default.
	RelaxationBound BoundAlgo = iota

	// NoBound disables pruning entirely (testing/benchmarking only).
	NoBound
)

// Options configures a solve.
//
// Algo    – which exact algorithm to run (default BranchAndBound).
// Bound   – lower-bound policy for BranchAndBound (default RelaxationBound).
// Eps     – strict-improvement tolerance: an incumbent is replaced only by
//
//	cost < best − Eps, and a branch is pruned when LB ≥ best − Eps.
//	Must be ≥ 0.
//
// Workers – number of goroutines exploring independent first-level
//
//	branches. ≤ 1 means sequential. Workers share only the
//	read-only instance and a monotone atomic best cost.
type Options struct {
	Algo    Algorithm // exact algorithm selection
	Bound   BoundAlgo // pruning policy for BranchAndBound
	Eps     float64   // strict-improvement / pruning tolerance
	Workers int       // parallel first-level branches (≤ 1 ⇒ sequential)
}

// DefaultOptions returns the canonical configuration: sequential
// Branch-and-Bound with the relaxation bound and a 1e−9 tolerance.
func DefaultOptions() Options {
	return Options{
		Algo:    BranchAndBound,
		Bound:   RelaxationBound,
		Eps:     1e-9,
		Workers: 1,
	}
}
