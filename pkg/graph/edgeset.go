package graph

import (
	"cmp"
	"maps"
	"slices"
)

// Edge is an unordered node pair stored with U < V.
type Edge struct {
	U, V int
}

// NewEdge returns the canonical form of the pair {u, v}.
func NewEdge(u, v int) Edge {
	if u > v {
		u, v = v, u
	}
	return Edge{U: u, V: v}
}

// EdgeSet is a set of unordered node pairs without self-loops.
//
// The zero value is not usable - use NewEdgeSet.
type EdgeSet struct {
	edges map[Edge]struct{}
}

// NewEdgeSet creates an empty edge set.
func NewEdgeSet() *EdgeSet {
	return &EdgeSet{edges: make(map[Edge]struct{})}
}

// Add inserts the pair {u, v} and reports whether the set changed.
// Self-loops and pairs already present in either orientation are ignored.
func (s *EdgeSet) Add(u, v int) bool {
	if u == v {
		return false
	}
	e := NewEdge(u, v)
	if _, ok := s.edges[e]; ok {
		return false
	}
	s.edges[e] = struct{}{}
	return true
}

// Has reports whether {u, v} is in the set, regardless of orientation.
func (s *EdgeSet) Has(u, v int) bool {
	_, ok := s.edges[NewEdge(u, v)]
	return ok
}

// Len returns the number of pairs in the set.
func (s *EdgeSet) Len() int { return len(s.edges) }

// Pairs returns all pairs sorted by (U, V).
func (s *EdgeSet) Pairs() []Edge {
	return slices.SortedFunc(maps.Keys(s.edges), compareEdges)
}

func compareEdges(a, b Edge) int {
	if c := cmp.Compare(a.U, b.U); c != 0 {
		return c
	}
	return cmp.Compare(a.V, b.V)
}
