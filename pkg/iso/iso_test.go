package iso

import (
	stderrors "errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/isofixture/pkg/errors"
	"github.com/matzehuels/isofixture/pkg/generate"
	"github.com/matzehuels/isofixture/pkg/graph"
	"github.com/matzehuels/isofixture/pkg/perm"
)

func mustGraph(t *testing.T, adj [][]int) *graph.Graph {
	t.Helper()
	g, err := graph.New(adj)
	require.NoError(t, err)
	return g
}

// assertPreserved checks v ∈ N(u) in src iff p[v] ∈ N(p[u]) in dst for every pair.
func assertPreserved(t *testing.T, src, dst *graph.Graph, p []int) {
	t.Helper()
	require.Equal(t, src.NodeCount(), dst.NodeCount())
	require.Equal(t, src.EdgeCount(), dst.EdgeCount())
	for u := 0; u < src.NodeCount(); u++ {
		for v := 0; v < src.NodeCount(); v++ {
			require.Equal(t, src.HasEdge(u, v), dst.HasEdge(p[u], p[v]),
				"pair (%d,%d) under %v", u, v, p)
		}
	}
}

func TestRelabelAllPermutations(t *testing.T) {
	// Path with a pendant: every one of the 5! relabelings must preserve adjacency.
	src := mustGraph(t, [][]int{{1}, {0, 2}, {1, 3, 4}, {2}, {2}})
	for _, p := range perm.Generate(5, -1) {
		dst, err := Relabel(src, p)
		require.NoError(t, err)
		assertPreserved(t, src, dst, p)
	}
}

func TestRelabelSortedNeighbors(t *testing.T) {
	src := mustGraph(t, [][]int{{1, 2}, {0}, {0}})
	dst, err := Relabel(src, []int{2, 0, 1})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, dst.Neighbors(2))
	assert.Equal(t, []int{2}, dst.Neighbors(0))
	assert.Equal(t, []int{2}, dst.Neighbors(1))
}

func TestRelabelInvalidPermutation(t *testing.T) {
	src := mustGraph(t, [][]int{{1}, {0}, {}})
	for _, p := range [][]int{{0, 1}, {0, 0, 1}, {0, 1, 3}} {
		_, err := Relabel(src, p)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter), "Relabel(%v) err = %v", p, err)
	}
}

func TestGenerateEmitsInOrder(t *testing.T) {
	src, err := generate.Build(12, 40, generate.WithSeed(3))
	require.NoError(t, err)

	gen := NewGenerator(WithSeed(3))
	var indices []int
	err = gen.Generate(src, 5, func(c Copy) error {
		indices = append(indices, c.Index)
		assertPreserved(t, src, c.Graph, c.Perm)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, indices)
}

func TestGenerateDistinctPermutations(t *testing.T) {
	src, err := generate.Build(10, 30, generate.WithSeed(11))
	require.NoError(t, err)

	copies, err := NewGenerator(WithSeed(11)).Collect(src, 5)
	require.NoError(t, err)
	require.Len(t, copies, 5)

	for i := range copies {
		for j := i + 1; j < len(copies); j++ {
			assert.False(t, slices.Equal(copies[i].Perm, copies[j].Perm),
				"copies %d and %d share a permutation", copies[i].Index, copies[j].Index)
		}
	}
}

func TestGenerateDerivesFromSource(t *testing.T) {
	// Each copy must equal Relabel(src, its own permutation), not a chain of relabelings.
	src, err := generate.Build(8, 50, generate.WithSeed(21))
	require.NoError(t, err)

	copies, err := NewGenerator(WithSeed(21)).Collect(src, 4)
	require.NoError(t, err)
	for _, c := range copies {
		want, err := Relabel(src, c.Perm)
		require.NoError(t, err)
		assert.True(t, want.Equal(c.Graph), "copy %d not derived from source", c.Index)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	src, err := generate.Build(9, 60, generate.WithSeed(1))
	require.NoError(t, err)

	a, err := NewGenerator(WithSeed(77)).Collect(src, 3)
	require.NoError(t, err)
	b, err := NewGenerator(WithSeed(77)).Collect(src, 3)
	require.NoError(t, err)
	for i := range a {
		assert.Equal(t, a[i].Perm, b[i].Perm)
		assert.True(t, a[i].Graph.Equal(b[i].Graph))
	}
}

func TestGenerateInvalidCopies(t *testing.T) {
	src := mustGraph(t, [][]int{{1}, {0}})
	gen := NewGenerator(WithSeed(1))
	for _, k := range []int{0, -1, 9} {
		called := false
		err := gen.Generate(src, k, func(Copy) error {
			called = true
			return nil
		})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter), "copies=%d err = %v", k, err)
		assert.False(t, called, "emit called for invalid copies=%d", k)
	}
	assert.Error(t, gen.Generate(nil, 1, func(Copy) error { return nil }))
}

func TestGenerateStopsOnEmitError(t *testing.T) {
	src := mustGraph(t, [][]int{{1}, {0, 2}, {1}})
	boom := stderrors.New("disk full")

	calls := 0
	err := NewGenerator(WithSeed(2)).Generate(src, 8, func(c Copy) error {
		calls++
		if c.Index == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestWithRandNil(t *testing.T) {
	assert.Panics(t, func() { WithRand(nil) })
}
