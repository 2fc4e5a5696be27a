// Package iso produces isomorphic relabelings of fixture graphs.
//
// Each copy is obtained by drawing a fresh uniformly random permutation π of
// the node ids and mapping every edge {u, v} of the source to {π(u), π(v)}.
// The result is isomorphic to the source by construction; nothing here
// re-verifies it. Copies are always derived from the original source graph,
// never from a previously generated copy.
//
// # Usage
//
// [Generator.Generate] is a produce-and-emit pipeline: every copy is handed
// to an [EmitFunc] as soon as it exists, typically to serialize it to disk.
//
//	gen := iso.NewGenerator(iso.WithSeed(42))
//	err := gen.Generate(token, 3, func(c iso.Copy) error {
//	    _, err := io.ExportText(c.Graph, dir, fmt.Sprintf("%s_%d.txt", base, c.Index))
//	    return err
//	})
package iso

import (
	"math/rand/v2"

	"github.com/matzehuels/isofixture/pkg/errors"
	"github.com/matzehuels/isofixture/pkg/graph"
	"github.com/matzehuels/isofixture/pkg/perm"
)

// Bounds on the number of copies per run.
const (
	MinCopies = 1
	MaxCopies = 8
)

// seedStream separates the permutation stream from the token-graph stream
// when both are derived from one run seed.
const seedStream = 0x150f1c5

// Copy is one isomorphic relabeling of a source graph.
type Copy struct {
	Index int          // 1-based copy number, used in output filenames
	Graph *graph.Graph // relabeled graph
	Perm  []int        // Perm[u] is the new label of source node u
}

// EmitFunc receives each copy as it is produced. Returning an error stops
// generation and the error is returned from Generate.
type EmitFunc func(Copy) error

// Option customizes a Generator.
type Option func(*Generator)

// WithSeed makes the sequence of permutations reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = NewRand(seed)
	}
}

// WithRand supplies the random source directly. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("iso: WithRand(nil)")
	}
	return func(g *Generator) {
		g.rng = r
	}
}

// NewRand returns the PCG source a Generator uses for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^seedStream))
}

// Generator draws permutations and relabels graphs with them.
// It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator. Without WithSeed or WithRand a freshly
// seeded source is used.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewRand(rand.Uint64())
	}
	return g
}

// Generate emits copies relabelings of src, numbered 1..copies, each under an
// independent random permutation.
//
// Returns an INVALID_PARAMETER error if copies is outside [1,8], before any
// copy is emitted.
func (gen *Generator) Generate(src *graph.Graph, copies int, emit EmitFunc) error {
	if copies < MinCopies || copies > MaxCopies {
		return errors.New(errors.ErrCodeInvalidParameter, "copies must be in [%d,%d] (got %d)", MinCopies, MaxCopies, copies)
	}
	if src == nil {
		return errors.New(errors.ErrCodeInvalidParameter, "source graph is nil")
	}
	for i := 1; i <= copies; i++ {
		p := perm.Random(src.NodeCount(), gen.rng)
		g, err := Relabel(src, p)
		if err != nil {
			return err
		}
		if err := emit(Copy{Index: i, Graph: g, Perm: p}); err != nil {
			return err
		}
	}
	return nil
}

// Collect runs Generate and returns all copies in index order.
func (gen *Generator) Collect(src *graph.Graph, copies int) ([]Copy, error) {
	out := make([]Copy, 0, max(copies, 0))
	err := gen.Generate(src, copies, func(c Copy) error {
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Relabel returns the graph whose node p[u] is adjacent to p[v] exactly when
// u is adjacent to v in g.
//
// Returns an INVALID_PARAMETER error if p is not a permutation of
// [0, g.NodeCount()).
func Relabel(g *graph.Graph, p []int) (*graph.Graph, error) {
	n := g.NodeCount()
	if len(p) != n || !perm.Valid(p) {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "permutation of length %d is not a bijection on %d nodes", len(p), n)
	}
	adj := make([][]int, n)
	for u := 0; u < n; u++ {
		nbrs := g.Neighbors(u)
		mapped := make([]int, len(nbrs))
		for i, v := range nbrs {
			mapped[i] = p[v]
		}
		adj[p[u]] = mapped
	}
	out, err := graph.New(adj)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "relabel graph")
	}
	return out, nil
}
