package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/isofixture/pkg/graph"
)

// DefaultLayout is the Graphviz engine used when Options.Layout is empty.
const DefaultLayout = "neato"

// Options configures node-link diagram rendering.
type Options struct {
	// Name is the DOT graph identifier. Defaults to "G".
	Name string

	// Detailed adds the node degree to each label.
	// When false, only the node id is shown.
	Detailed bool

	// Layout selects the Graphviz engine (dot, neato, circo, ...).
	Layout string
}

// ToDOT converts a graph to undirected Graphviz DOT.
// Every edge is written once as "u -- v" with u < v, in ascending order,
// so equal graphs always produce identical DOT source.
func ToDOT(g *graph.Graph, opts Options) string {
	name := opts.Name
	if name == "" {
		name = "G"
	}
	layout := opts.Layout
	if layout == "" {
		layout = DefaultLayout
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "graph %q {\n", name)
	fmt.Fprintf(&buf, "  layout=%q;\n", layout)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for u := range g.NodeCount() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", strconv.Itoa(u), fmtLabel(g, u, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -- %q;\n", strconv.Itoa(e.U), strconv.Itoa(e.V))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *graph.Graph, u int, detailed bool) string {
	id := strconv.Itoa(u)
	if !detailed {
		return id
	}
	return strings.Join([]string{id, fmt.Sprintf("deg %d", g.Degree(u))}, "\n")
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> header with one whose viewBox
// starts at the origin and whose width/height match it, so the SVG scales
// cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
