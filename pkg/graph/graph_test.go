package graph

import (
	"errors"
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		adj       [][]int
		wantErr   error
		wantEdges int
	}{
		{
			name:      "Empty",
			adj:       [][]int{},
			wantEdges: 0,
		},
		{
			name:      "Path",
			adj:       [][]int{{1}, {2, 0}, {1}},
			wantEdges: 2,
		},
		{
			name:      "IsolatedNode",
			adj:       [][]int{{1}, {0}, nil},
			wantEdges: 1,
		},
		{
			name:    "OutOfRange",
			adj:     [][]int{{1}, {0, 5}},
			wantErr: ErrNodeOutOfRange,
		},
		{
			name:    "NegativeNeighbor",
			adj:     [][]int{{-1}},
			wantErr: ErrNodeOutOfRange,
		},
		{
			name:    "SelfLoop",
			adj:     [][]int{{0}},
			wantErr: ErrSelfLoop,
		},
		{
			name:    "Duplicate",
			adj:     [][]int{{1, 1}, {0}},
			wantErr: ErrDuplicateNeighbor,
		},
		{
			name:    "Asymmetric",
			adj:     [][]int{{1}, {}},
			wantErr: ErrAsymmetric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.adj)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if g.NodeCount() != len(tt.adj) {
				t.Errorf("NodeCount() = %d, want %d", g.NodeCount(), len(tt.adj))
			}
			if g.EdgeCount() != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), tt.wantEdges)
			}
		})
	}
}

func TestNewSortsAndCopies(t *testing.T) {
	adj := [][]int{{2, 1}, {0}, {0}}
	g, err := New(adj)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := g.Neighbors(0); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("Neighbors(0) = %v, want [1 2]", got)
	}

	adj[0][0] = 99
	if got := g.Neighbors(0); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("graph changed after input mutation: %v", got)
	}

	nbrs := g.Neighbors(0)
	nbrs[0] = 42
	if got := g.Neighbors(0); got[0] != 1 {
		t.Errorf("graph changed after result mutation: %v", got)
	}
}

func TestFromEdges(t *testing.T) {
	es := NewEdgeSet()
	es.Add(2, 0)
	es.Add(0, 1)
	es.Add(1, 0) // same pair, other orientation

	g, err := FromEdges(4, es)
	if err != nil {
		t.Fatalf("FromEdges() error: %v", err)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if got := g.Neighbors(0); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("Neighbors(0) = %v, want [1 2]", got)
	}
	if got := g.Neighbors(3); len(got) != 0 {
		t.Errorf("Neighbors(3) = %v, want empty", got)
	}
	if g.IsConnected() {
		t.Error("IsConnected() = true for graph with isolated node")
	}

	if _, err := FromEdges(-1, nil); !errors.Is(err, ErrNegativeNodeCount) {
		t.Errorf("FromEdges(-1) error = %v, want ErrNegativeNodeCount", err)
	}
	if _, err := FromEdges(2, es); !errors.Is(err, ErrNodeOutOfRange) {
		t.Errorf("FromEdges(2) error = %v, want ErrNodeOutOfRange", err)
	}
}

func TestHasEdgeSymmetric(t *testing.T) {
	g, err := New([][]int{{1, 2}, {0}, {0}})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		u, v int
		want bool
	}{
		{0, 1, true},
		{1, 0, true},
		{0, 2, true},
		{1, 2, false},
		{0, 0, false},
		{0, 7, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		if got := g.HasEdge(tt.u, tt.v); got != tt.want {
			t.Errorf("HasEdge(%d, %d) = %v, want %v", tt.u, tt.v, got, tt.want)
		}
	}
}

func TestEdges(t *testing.T) {
	g, err := New([][]int{{1, 2}, {0, 2}, {0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	want := []Edge{{0, 1}, {0, 2}, {1, 2}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestIsConnected(t *testing.T) {
	tests := []struct {
		name string
		adj  [][]int
		want bool
	}{
		{"Empty", [][]int{}, true},
		{"Single", [][]int{{}}, true},
		{"TwoIsolated", [][]int{{}, {}}, false},
		{"Star", [][]int{{1, 2, 3}, {0}, {0}, {0}}, true},
		{"TwoComponents", [][]int{{1}, {0}, {3}, {2}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.adj)
			if err != nil {
				t.Fatal(err)
			}
			if got := g.IsConnected(); got != tt.want {
				t.Errorf("IsConnected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDegreeRangeAndCoverage(t *testing.T) {
	g, err := New([][]int{{1, 2, 3}, {0}, {0}, {0}})
	if err != nil {
		t.Fatal(err)
	}
	lo, hi := g.DegreeRange()
	if lo != 1 || hi != 3 {
		t.Errorf("DegreeRange() = (%d, %d), want (1, 3)", lo, hi)
	}
	if got := g.Coverage(); got != 50 {
		t.Errorf("Coverage() = %v, want 50", got)
	}
	if got := (&Graph{}).Coverage(); got != 0 {
		t.Errorf("empty Coverage() = %v, want 0", got)
	}
}

func TestEqual(t *testing.T) {
	a, _ := New([][]int{{1}, {0, 2}, {1}})
	b, _ := New([][]int{{1}, {2, 0}, {1}})
	c, _ := New([][]int{{2}, {2}, {0, 1}})

	if !a.Equal(b) {
		t.Error("a.Equal(b) = false, want true")
	}
	if a.Equal(c) {
		t.Error("a.Equal(c) = true for a relabeled graph")
	}
	if a.Equal(nil) {
		t.Error("a.Equal(nil) = true")
	}
}

func TestEdgeSet(t *testing.T) {
	es := NewEdgeSet()
	if !es.Add(3, 1) {
		t.Error("Add(3, 1) = false on empty set")
	}
	if es.Add(1, 3) {
		t.Error("Add(1, 3) = true for existing pair")
	}
	if es.Add(2, 2) {
		t.Error("Add(2, 2) = true for self-loop")
	}
	es.Add(0, 2)

	if !es.Has(1, 3) || !es.Has(3, 1) {
		t.Error("Has should ignore orientation")
	}
	if es.Len() != 2 {
		t.Errorf("Len() = %d, want 2", es.Len())
	}
	want := []Edge{{0, 2}, {1, 3}}
	if got := es.Pairs(); !slices.Equal(got, want) {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}
}
