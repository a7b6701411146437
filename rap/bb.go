// Package rap — Branch-and-Bound (exact search with admissible lower bounds).
//
// runBranchAndBound explores the count-partition tree depth-first with
// deterministic branching and admissible lower bounds. Sequential and
// data-parallel modes share the same engine.
//
// Rationale (succinct):
//  1. The tree assigns interval 1's count, then interval 2's, …; the last
//     interval's count is forced by the remainder, so depth is K−1.
//  2. At every partial node the relaxation bound (bound.go) is compared
//     against the incumbent: prune whenever LB ≥ best − eps.
//  3. Leaves are priced exactly by the waterfill (one continuous convex
//     sub-problem per count partition); an infeasible leaf is skipped, a
//     numerical failure aborts the solve (exactness over approximation).
//  4. Branching order: counts ascending (0, 1, …). Fully deterministic;
//     together with strict-improvement acceptance this fixes the
//     tie-break among equal-cost partitions.
//  5. The search frontier is an explicit per-depth candidate array, not
//     recursion: memory stays O(K) and independent subtrees can be handed
//     to workers directly.
//  6. Parallel mode (Options.Workers > 1): each first-level count c₁ is an
//     independent subtree explored by its own engine. Workers share only
//     the read-only instance and the incumbent; its cost is a monotone
//     compare-and-swap float (only ever decreases), so a stale read merely
//     weakens pruning, never correctness.
//
// Complexity:
//   - Worst case O(n^(K−1)) leaves (exact search); pruning provides the
//     practical speed.
//   - Per node: one O(K²) waterfill + O(1) state updates.
//   - Memory: O(K) per engine + O(K) incumbent payload.
package rap

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/symalloc/convex"
)

// incumbent is the solve-wide best solution. The cost lives in an atomic
// (monotone decreasing via CAS) so workers can read it lock-free for
// pruning; the payload is guarded by a mutex and re-checked after the CAS
// so a slower worker can never overwrite a better solution.
type incumbent struct {
	bits atomic.Uint64 // math.Float64bits of the best cost; only ever decreases

	mu      sync.Mutex // guards the payload below
	found   bool       // whether any feasible leaf has been recorded
	cost    float64    // cost of the recorded payload
	counts  []int      // winning count partition
	demands []float64  // winning demand partition
}

// newIncumbent returns an incumbent primed at +Inf.
func newIncumbent() *incumbent {
	var in incumbent
	in.bits.Store(math.Float64bits(math.Inf(1)))

	return &in
}

// best returns the current best cost; stale values are acceptable (they
// only weaken pruning).
func (in *incumbent) best() float64 {
	return math.Float64frombits(in.bits.Load())
}

// offer records a new solution if it strictly improves on the best by
// more than eps. Safe for concurrent use.
func (in *incumbent) offer(cost float64, counts []int, demands []float64, eps float64) {
	// Monotone compare-and-update of the shared pruning bound.
	var cur uint64
	for {
		cur = in.bits.Load()
		if !(cost < math.Float64frombits(cur)-eps) {
			return
		}
		if in.bits.CompareAndSwap(cur, math.Float64bits(cost)) {
			break
		}
	}

	// Payload update; re-check so interleaved offers keep the best one.
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.found && cost >= in.cost {
		return
	}
	in.found = true
	in.cost = cost
	in.counts = append(in.counts[:0], counts...)
	in.demands = append(in.demands[:0], demands...)
}

// bbEngine holds one worker's search data and policies. Engines never
// share mutable state; only the instance (read-only) and the incumbent
// cross worker boundaries.
type bbEngine struct {
	// Configuration / policy
	f        convex.Function
	n        int
	kk       int // interval count
	demand   float64
	eps      float64
	useBound bool

	// Read-only instance data
	ivs []Interval

	// Current search state
	counts []int   // counts[0:depth) are fixed, the rest is scratch
	boxes  []wfBox // scratch buffer for the bound oracle

	// Shared incumbent
	inc *incumbent
}

// newEngine builds a worker-private engine over the shared incumbent.
func newEngine(inst Instance, opts Options, inc *incumbent) *bbEngine {
	var kk = len(inst.Intervals)

	return &bbEngine{
		f:        inst.Cost,
		n:        inst.N,
		kk:       kk,
		demand:   inst.Demand,
		eps:      opts.Eps,
		useBound: opts.Bound != NoBound,
		ivs:      inst.Intervals,
		counts:   make([]int, kk),
		boxes:    make([]wfBox, 0, kk),
		inc:      inc,
	}
}

// leaf forces the last interval's count from the remainder and prices the
// complete partition exactly. Infeasible leaves are skipped; numerical
// failures abort the solve.
func (e *bbEngine) leaf(assigned int) error {
	e.counts[e.kk-1] = e.n - assigned

	demands, cost, err := priceCounts(e.f, e.ivs, e.counts, e.demand)
	if err != nil {
		if errors.Is(err, ErrInfeasible) {
			return nil // this partition admits no demand split; skip
		}

		return err
	}
	e.inc.offer(cost, e.counts, demands, e.eps)

	return nil
}

// run explores every completion of the fixed prefix counts[0:depth) with
// assigned = Σ counts[0:depth), using an explicit per-depth frontier.
func (e *bbEngine) run(depth, assigned int) error {
	// Degenerate subtree: only the forced tail remains.
	if depth >= e.kk-1 {
		return e.leaf(assigned)
	}

	var (
		next = make([]int, e.kk) // next[d]: next count candidate at depth d
		acc  = make([]int, e.kk) // acc[d]: assigned before depth d
		d    = depth             // current depth
		c    int                 // candidate count at the current depth
	)
	next[d] = 0
	acc[d] = assigned

	for d >= depth {
		if d == e.kk-1 {
			// Leaf level: the remainder is forced; price and backtrack.
			if err := e.leaf(acc[d]); err != nil {
				return err
			}
			d--
			continue
		}

		c = next[d]
		if c > e.n-acc[d] {
			d-- // candidates exhausted at this depth; backtrack
			continue
		}
		next[d]++
		e.counts[d] = c

		// Prune by the admissible lower bound on this prefix.
		if lb, feasible := e.lowerBound(d+1, acc[d]+c); !feasible || lb >= e.inc.best()-e.eps {
			continue
		}

		// Descend.
		d++
		next[d] = 0
		acc[d] = acc[d-1] + e.counts[d-1]
	}

	return nil
}

// runBranchAndBound is the Branch-and-Bound driver: it wires the engines
// (one per worker in parallel mode), runs the search, and returns the
// winning count and demand partitions.
//
// Errors: ErrInfeasible if no leaf admits a demand split; ErrNumerical on
// a sub-allocation failure.
func runBranchAndBound(inst Instance, opts Options) ([]int, []float64, error) {
	var (
		inc = newIncumbent()
		kk  = len(inst.Intervals)
	)

	if opts.Workers <= 1 || kk < 2 {
		// Sequential mode: one engine over the whole tree.
		var e = newEngine(inst, opts, inc)
		if err := e.run(0, 0); err != nil {
			return nil, nil, err
		}
	} else {
		// Parallel mode: each first-level count is an independent subtree.
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for c0 := 0; c0 <= inst.N; c0++ {
			c0 := c0
			g.Go(func() error {
				var e = newEngine(inst, opts, inc)
				e.counts[0] = c0
				// Root bound for this subtree before descending into it.
				if lb, feasible := e.lowerBound(1, c0); !feasible || lb >= inc.best()-e.eps {
					return nil
				}

				return e.run(1, c0)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
	}

	// Defensive infeasibility: the envelope admitted D but the achievable
	// sums (a union of per-partition ranges) left a gap around it.
	if !inc.found {
		return nil, nil, ErrInfeasible
	}

	return inc.counts, inc.demands, nil
}
