// Package generate builds the random connected "token" graphs used as
// targets in isomorphism benchmarks.
//
// # Density
//
// Coverage is the requested edge density as a percentage of the complete
// graph's N(N-1)/2 edges. [Build] produces exactly
// max(floor(coverage·N(N-1)/200), N-1) edges: connectivity takes precedence
// over a density that is too low to span the graph.
//
// # Termination
//
// Extra edges are drawn by shuffling the full list of candidate pairs once
// and consuming a prefix, rather than by rejection sampling. Generation
// therefore finishes in O(N²) time for every coverage, including 100%.
//
// # Reproducibility
//
// Randomness is injected with [WithSeed] or [WithRand]. Without either, a
// freshly seeded source is used for each call.
//
//	g, err := generate.Build(10, 30, generate.WithSeed(42))
package generate
