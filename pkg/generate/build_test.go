package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/isofixture/pkg/errors"
	"github.com/matzehuels/isofixture/pkg/graph"
)

func TestBuildProperties(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 7, 10, 25} {
		for _, coverage := range []int{0, 1, 10, 30, 50, 75, 99, 100} {
			g, err := Build(n, coverage, WithSeed(uint64(n*1000+coverage)))
			require.NoError(t, err, "Build(%d, %d)", n, coverage)

			assert.Equal(t, n, g.NodeCount())
			assert.Equal(t, ExpectedEdges(n, coverage), g.EdgeCount(), "Build(%d, %d) edge count", n, coverage)
			assert.True(t, g.IsConnected(), "Build(%d, %d) not connected", n, coverage)
			assertSimpleSymmetric(t, g)
		}
	}
}

func TestBuildConcreteScenarios(t *testing.T) {
	full, err := Build(4, 100, WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, 6, full.EdgeCount(), "complete graph on 4 nodes")
	for u := 0; u < 4; u++ {
		assert.Equal(t, 3, full.Degree(u))
	}

	sparse, err := Build(4, 0, WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, 3, sparse.EdgeCount(), "spanning structure only")
	assert.True(t, sparse.IsConnected())
	lo, hi := sparse.DegreeRange()
	assert.Equal(t, 1, lo, "a spanning path has two endpoints of degree 1")
	assert.LessOrEqual(t, hi, 2)
}

func TestBuildFullCoverageLarge(t *testing.T) {
	g, err := Build(120, 100, WithSeed(9))
	require.NoError(t, err)
	assert.Equal(t, MaxEdges(120), g.EdgeCount())
}

func TestBuildDeterministicWithSeed(t *testing.T) {
	a, err := Build(30, 40, WithSeed(42))
	require.NoError(t, err)
	b, err := Build(30, 40, WithSeed(42))
	require.NoError(t, err)
	c, err := Build(30, 40, WithSeed(43))
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "same seed should produce identical graphs")
	assert.False(t, a.Equal(c), "different seeds should produce different graphs")
}

func TestBuildWithRand(t *testing.T) {
	a, err := Build(15, 50, WithRand(NewRand(5)))
	require.NoError(t, err)
	b, err := Build(15, 50, WithSeed(5))
	require.NoError(t, err)
	assert.True(t, a.Equal(b), "WithRand(NewRand(s)) should match WithSeed(s)")

	assert.Panics(t, func() { WithRand(nil) })
}

func TestBuildInvalidParameters(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		coverage int
	}{
		{"zero nodes", 0, 50},
		{"negative nodes", -1, 50},
		{"negative coverage", 5, -1},
		{"coverage above 100", 5, 101},
		{"nodes above bound", errors.MaxNodes + 1, 50},
		{"nodes overflowing edge math", 2_000_000_000, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.n, tt.coverage)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter), "got %v", err)
		})
	}
}

func TestEdgeTargets(t *testing.T) {
	tests := []struct {
		n, coverage    int
		wantMax        int
		wantTarget     int
		wantEdgesBuilt int
	}{
		{n: 1, coverage: 100, wantMax: 0, wantTarget: 0, wantEdgesBuilt: 0},
		{n: 4, coverage: 100, wantMax: 6, wantTarget: 6, wantEdgesBuilt: 6},
		{n: 4, coverage: 0, wantMax: 6, wantTarget: 0, wantEdgesBuilt: 3},
		{n: 10, coverage: 30, wantMax: 45, wantTarget: 13, wantEdgesBuilt: 13},
		{n: 10, coverage: 10, wantMax: 45, wantTarget: 4, wantEdgesBuilt: 9},
		{n: 201, coverage: 29, wantMax: 20100, wantTarget: 5829, wantEdgesBuilt: 5829},
		{n: errors.MaxNodes, coverage: 100, wantMax: 12497500, wantTarget: 12497500, wantEdgesBuilt: 12497500},
		{n: errors.MaxNodes, coverage: 10, wantMax: 12497500, wantTarget: 1249750, wantEdgesBuilt: 1249750},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantMax, MaxEdges(tt.n), "MaxEdges(%d)", tt.n)
		assert.Equal(t, tt.wantTarget, TargetEdges(tt.n, tt.coverage), "TargetEdges(%d, %d)", tt.n, tt.coverage)
		assert.Equal(t, tt.wantEdgesBuilt, ExpectedEdges(tt.n, tt.coverage), "ExpectedEdges(%d, %d)", tt.n, tt.coverage)
	}
}

func assertSimpleSymmetric(t *testing.T, g *graph.Graph) {
	t.Helper()
	for u := 0; u < g.NodeCount(); u++ {
		for _, v := range g.Neighbors(u) {
			assert.NotEqual(t, u, v, "self-loop at %d", u)
			assert.True(t, g.HasEdge(v, u), "edge %d-%d not symmetric", u, v)
		}
	}
	seen := graph.NewEdgeSet()
	for _, e := range g.Edges() {
		assert.True(t, seen.Add(e.U, e.V), "duplicate edge %v", e)
	}
}
