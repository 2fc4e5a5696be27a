package generate

import (
	"github.com/matzehuels/isofixture/pkg/errors"
	"github.com/matzehuels/isofixture/pkg/graph"
	"github.com/matzehuels/isofixture/pkg/perm"
)

// MaxEdges returns n(n-1)/2, the edge count of the complete graph on n nodes.
func MaxEdges(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// TargetEdges returns floor(coverage/100 * MaxEdges(n)) using integer
// arithmetic, so 29% of 100 edges is exactly 29.
func TargetEdges(n, coverage int) int {
	return coverage * MaxEdges(n) / 100
}

// ExpectedEdges returns the edge count Build produces for (n, coverage):
// the density target, raised to n-1 when the spanning path alone exceeds it.
func ExpectedEdges(n, coverage int) int {
	return max(TargetEdges(n, coverage), n-1, 0)
}

// Build generates a random connected graph on n nodes whose edge count is
// ExpectedEdges(n, coverage).
//
// The graph is built in two phases. First a uniformly random permutation of
// the node ids is walked and consecutive ids are joined, giving a random
// spanning path of n-1 edges that keeps the graph connected. Then every pair
// not on the path is listed, the list is shuffled once, and pairs are taken
// from its front until the target is met. The density phase is skipped when
// the target does not exceed n-1; path edges are never removed.
//
// Returns an INVALID_PARAMETER error if n is outside [1, errors.MaxNodes] or
// coverage is outside [0,100].
func Build(n, coverage int, opts ...Option) (*graph.Graph, error) {
	if n < 1 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "node count must be positive (got %d)", n)
	}
	if n > errors.MaxNodes {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "node count must not exceed %d (got %d)", errors.MaxNodes, n)
	}
	if coverage < 0 || coverage > 100 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "coverage must be in [0,100] (got %d)", coverage)
	}
	cfg := resolve(opts)

	edges := graph.NewEdgeSet()
	spanningPath(edges, n, cfg)

	if need := TargetEdges(n, coverage) - edges.Len(); need > 0 {
		candidates := missingPairs(edges, n)
		cfg.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		for _, e := range candidates[:need] {
			edges.Add(e.U, e.V)
		}
	}

	g, err := graph.FromEdges(n, edges)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "assemble graph")
	}
	return g, nil
}

func spanningPath(edges *graph.EdgeSet, n int, cfg config) {
	order := perm.Random(n, cfg.rng)
	for i := 0; i+1 < n; i++ {
		edges.Add(order[i], order[i+1])
	}
}

// missingPairs lists, in ascending order, every unordered pair not yet in edges.
func missingPairs(edges *graph.EdgeSet, n int) []graph.Edge {
	out := make([]graph.Edge, 0, MaxEdges(n)-edges.Len())
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if !edges.Has(u, v) {
				out = append(out, graph.Edge{U: u, V: v})
			}
		}
	}
	return out
}
