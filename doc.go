// Package symalloc is an exact solver for symmetric separable convex
// resource allocation under disjoint interval bound constraints.
//
// 🚀 What is symalloc?
//
//	A small, deterministic, pure-Go library that distributes a fixed total
//	demand D among n identical variables, each restricted to a union of
//	pairwise-disjoint closed intervals, minimizing the sum of one shared
//	convex cost function:
//		• Exact Branch-and-Bound over interval count partitions
//		• Exact continuous pricing via marginal-value equalization
//		• Admissible relaxation lower bounds for pruning
//		• A brute-force exhaustive enumerator as a reference oracle
//
// ✨ Why choose symalloc?
//
//   - Provably optimal – every leaf is priced exactly; pruning never
//     discards the optimum
//   - Deterministic – fixed branch order, strict-improvement acceptance,
//     stabilized costs
//   - Pure Go – no cgo, no external solver
//   - Extensible – plug in any convex cost via a two-method interface
//
// Under the hood, everything is organized under two subpackages:
//
//	convex/ — univariate convex cost functions (quadratic, power,
//	          exponential) and the inverse-derivative query
//	rap/    — the resource allocation solver: instance model, validation,
//	          waterfill pricing, bounding, Branch-and-Bound, assembly
//
// Quick sketch:
//
//	    demand D ──► [ count partition search ] ──► optimal x₁..xₙ
//	                     │            ▲
//	                 waterfill    relaxation
//	                 (pricing)     (bounds)
//
// Dive into rap/doc.go for the full contract, complexity notes and
// runnable examples.
//
//	go get github.com/katalvlaran/symalloc/rap
package symalloc
