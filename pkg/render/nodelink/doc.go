// Package nodelink renders fixture graphs as node-link diagrams.
//
// # Overview
//
// Fixture files are plain adjacency lists, which are hard to eyeball once a
// graph has more than a handful of nodes. This package converts a graph to
// undirected Graphviz DOT and, optionally, to SVG so a token graph and its
// patterns can be compared visually.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Name: graph identifier written after the "graph" keyword
//   - Detailed: node labels include the degree ("3\ndeg 4")
//   - Layout: Graphviz engine name; "neato" by default since fixture graphs
//     have no natural ranking
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no external Graphviz install is required.
package nodelink
