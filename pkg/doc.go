// Package pkg holds the isofixture libraries.
//
// # Overview
//
// isofixture writes a connected random "token" graph and randomly
// relabeled copies of it ("patterns") as test fixtures for graph matching
// code. The pkg directory is organized as:
//
//  1. [graph] - undirected simple graphs with sorted adjacency
//  2. [generate] - connected random token graphs at a target edge coverage
//  3. [perm], [iso] - random permutations and isomorphic copies
//  4. [io] - the adjacency text format and a JSON rendition
//  5. [pipeline] - orchestration (build, export, relabel, manifest)
//  6. [cache], [config], [observability], [errors] - supporting infrastructure
//  7. [render/nodelink] - DOT and SVG views of a fixture
//
// # Data Flow
//
//	nodes, coverage, seed
//	         ↓
//	    [generate] (spanning tree + random extra edges)
//	         ↓
//	    [io] token file  →  [iso] relabeled copies  →  [io] pattern files
//
// Every random choice derives from a single 64-bit seed, so a run is fully
// reproducible from (nodes, coverage, isographs, seed).
package pkg
