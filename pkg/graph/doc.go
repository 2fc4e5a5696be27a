// Package graph provides the simple undirected graph used for isomorphism
// benchmark fixtures.
//
// # Overview
//
// A fixture graph has N nodes identified by the contiguous integer range
// [0, N). Each node maps to the ascending list of its neighbors. The adjacency
// relation is always symmetric and never contains self-loops, so a [Graph] is
// a plain simple graph: unweighted, undirected and unlabeled.
//
// Graphs are immutable once constructed. [New] validates and normalizes a raw
// adjacency list, and [FromEdges] converts an [EdgeSet] accumulated during
// generation. All accessors return copies, so a loaded graph can be shared
// by reference between the loader and the isomorph generator without risk.
//
// # Basic Usage
//
//	es := graph.NewEdgeSet()
//	es.Add(0, 1)
//	es.Add(1, 2)
//	g, err := graph.FromEdges(3, es)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(g.Neighbors(1)) // [0 2]
//
// # Edge Sets
//
// [EdgeSet] stores unordered pairs: adding (u, v) and then (v, u) leaves a
// single element. It is the intermediate structure used while sampling
// edges and is discarded once the [Graph] is built.
//
// # Concurrency
//
// Graph values are read-only after construction and safe for concurrent
// readers. EdgeSet is not safe for concurrent use.
package graph
