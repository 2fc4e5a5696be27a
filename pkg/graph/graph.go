package graph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNegativeNodeCount is returned by [FromEdges] when n < 0.
	ErrNegativeNodeCount = errors.New("node count must not be negative")

	// ErrNodeOutOfRange is returned when a neighbor or edge endpoint lies
	// outside the contiguous id range [0, N).
	ErrNodeOutOfRange = errors.New("node id out of range")

	// ErrSelfLoop is returned when a node lists itself as a neighbor.
	ErrSelfLoop = errors.New("self-loop")

	// ErrDuplicateNeighbor is returned when a neighbor list repeats an id.
	ErrDuplicateNeighbor = errors.New("duplicate neighbor")

	// ErrAsymmetric is returned when v is a neighbor of u but u is not a
	// neighbor of v. Fixture graphs are undirected, so adjacency must be
	// symmetric.
	ErrAsymmetric = errors.New("asymmetric adjacency")
)

// Graph is an immutable simple undirected graph on nodes [0, N).
//
// The zero value is an empty graph with no nodes.
type Graph struct {
	adj   [][]int // adj[u] holds the neighbors of u in ascending order
	edges int
}

// New builds a graph from an adjacency list where adj[u] lists the
// neighbors of node u. The input is copied and each list sorted, so callers
// may pass neighbors in any order and reuse the slices afterwards.
//
// New returns ErrNodeOutOfRange, ErrSelfLoop, ErrDuplicateNeighbor or
// ErrAsymmetric (wrapped with the offending node) if adj does not describe a
// simple undirected graph.
func New(adj [][]int) (*Graph, error) {
	n := len(adj)
	g := &Graph{adj: make([][]int, n)}
	degreeSum := 0
	for u, nbrs := range adj {
		sorted := slices.Clone(nbrs)
		slices.Sort(sorted)
		for i, v := range sorted {
			switch {
			case v < 0 || v >= n:
				return nil, fmt.Errorf("node %d: neighbor %d: %w", u, v, ErrNodeOutOfRange)
			case v == u:
				return nil, fmt.Errorf("node %d: %w", u, ErrSelfLoop)
			case i > 0 && sorted[i-1] == v:
				return nil, fmt.Errorf("node %d: neighbor %d: %w", u, v, ErrDuplicateNeighbor)
			}
		}
		if sorted == nil {
			sorted = []int{}
		}
		g.adj[u] = sorted
		degreeSum += len(sorted)
	}
	for u, nbrs := range g.adj {
		for _, v := range nbrs {
			if _, ok := slices.BinarySearch(g.adj[v], u); !ok {
				return nil, fmt.Errorf("edge %d-%d missing reverse entry: %w", u, v, ErrAsymmetric)
			}
		}
	}
	g.edges = degreeSum / 2
	return g, nil
}

// FromEdges builds a graph on n nodes whose edges are the pairs in es.
// Returns ErrNegativeNodeCount if n < 0 or ErrNodeOutOfRange if a pair
// references a node outside [0, n). A nil edge set yields n isolated nodes.
func FromEdges(n int, es *EdgeSet) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("n=%d: %w", n, ErrNegativeNodeCount)
	}
	adj := make([][]int, n)
	for u := range adj {
		adj[u] = []int{}
	}
	if es == nil {
		return &Graph{adj: adj}, nil
	}
	for _, e := range es.Pairs() {
		if e.U < 0 || e.V >= n {
			return nil, fmt.Errorf("edge %d-%d: %w", e.U, e.V, ErrNodeOutOfRange)
		}
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}
	for _, nbrs := range adj {
		slices.Sort(nbrs)
	}
	return &Graph{adj: adj, edges: es.Len()}, nil
}

// NodeCount returns N, the number of nodes.
func (g *Graph) NodeCount() int { return len(g.adj) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return g.edges }

// MaxEdges returns N(N-1)/2, the edge count of the complete graph on N nodes.
func (g *Graph) MaxEdges() int {
	n := len(g.adj)
	return n * (n - 1) / 2
}

// Neighbors returns a copy of u's neighbors in ascending order.
// Returns nil if u is not a node of the graph.
func (g *Graph) Neighbors(u int) []int {
	if !g.contains(u) {
		return nil
	}
	return slices.Clone(g.adj[u])
}

// Degree returns the number of neighbors of u, or 0 if u is not a node.
func (g *Graph) Degree(u int) int {
	if !g.contains(u) {
		return 0
	}
	return len(g.adj[u])
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	if !g.contains(u) || !g.contains(v) {
		return false
	}
	_, ok := slices.BinarySearch(g.adj[u], v)
	return ok
}

// Edges returns every edge once with U < V, sorted by (U, V).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edges)
	for u, nbrs := range g.adj {
		for _, v := range nbrs {
			if u < v {
				edges = append(edges, Edge{U: u, V: v})
			}
		}
	}
	return edges
}

// Adjacency returns a deep copy of the adjacency list.
func (g *Graph) Adjacency() [][]int {
	adj := make([][]int, len(g.adj))
	for u, nbrs := range g.adj {
		adj[u] = slices.Clone(nbrs)
	}
	return adj
}

// IsConnected reports whether every node is reachable from node 0.
// Graphs with zero or one node are connected.
func (g *Graph) IsConnected() bool {
	n := len(g.adj)
	if n <= 1 {
		return true
	}
	seen := make([]bool, n)
	seen[0] = true
	queue := []int{0}
	visited := 1
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range g.adj[u] {
			if !seen[v] {
				seen[v] = true
				visited++
				queue = append(queue, v)
			}
		}
	}
	return visited == n
}

// DegreeRange returns the minimum and maximum degree. Both are 0 for an
// empty graph.
func (g *Graph) DegreeRange() (lo, hi int) {
	for u, nbrs := range g.adj {
		d := len(nbrs)
		if u == 0 || d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}

// Coverage returns the edge count as a percentage of MaxEdges.
// Returns 0 for graphs with fewer than two nodes.
func (g *Graph) Coverage() float64 {
	maxEdges := g.MaxEdges()
	if maxEdges == 0 {
		return 0
	}
	return float64(g.edges) * 100 / float64(maxEdges)
}

// Equal reports whether g and other have identical node counts and
// adjacency, without considering relabelings.
func (g *Graph) Equal(other *Graph) bool {
	if other == nil || len(g.adj) != len(other.adj) || g.edges != other.edges {
		return false
	}
	for u := range g.adj {
		if !slices.Equal(g.adj[u], other.adj[u]) {
			return false
		}
	}
	return true
}

func (g *Graph) contains(u int) bool { return u >= 0 && u < len(g.adj) }
