package io

import (
	"bufio"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/isofixture/pkg/errors"
	"github.com/matzehuels/isofixture/pkg/graph"
)

// maxLineSize bounds a single node line; a node of a 1M-node complete graph fits.
const maxLineSize = 16 << 20

// ReadText decodes a fixture graph from r.
//
// The first header token is the node count N; the second is ignored. Each of
// the next N lines holds a node id, optionally followed by a tab and its
// neighbors. ReadText returns a [*FormatError] if the header is missing or
// not an integer, fewer than N node lines follow, a token is not an integer,
// a node id is out of range or repeated, or the neighbor lists do not form a
// simple undirected graph.
//
// ReadText does not close r.
func ReadText(r io.Reader) (*graph.Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, formatErr(1, err, "read header")
		}
		return nil, formatErr(1, nil, "missing header")
	}
	fields := strings.Fields(sc.Text())
	if len(fields) == 0 {
		return nil, formatErr(1, nil, "empty header")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, formatErr(1, err, "invalid node count %q", fields[0])
	}
	if n < 0 {
		return nil, formatErr(1, nil, "negative node count %d", n)
	}

	adj := make([][]int, n)
	seen := make([]bool, n)
	for i := 0; i < n; i++ {
		lineNo := i + 2
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, formatErr(lineNo, err, "read node line")
			}
			return nil, formatErr(lineNo, nil, "expected %d node lines, found %d", n, i)
		}
		id, nbrs, err := parseNodeLine(sc.Text(), lineNo)
		if err != nil {
			return nil, err
		}
		if id < 0 || id >= n {
			return nil, formatErr(lineNo, graph.ErrNodeOutOfRange, "node %d", id)
		}
		if seen[id] {
			return nil, formatErr(lineNo, nil, "node %d listed twice", id)
		}
		seen[id] = true
		adj[id] = nbrs
	}

	g, err := graph.New(adj)
	if err != nil {
		return nil, formatErr(0, err, "invalid adjacency")
	}
	return g, nil
}

func parseNodeLine(line string, lineNo int) (int, []int, error) {
	head, tail, _ := strings.Cut(strings.TrimSpace(line), "\t")
	id, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, nil, formatErr(lineNo, err, "invalid node id %q", head)
	}
	tokens := strings.Fields(tail)
	nbrs := make([]int, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, nil, formatErr(lineNo, err, "invalid neighbor %q of node %d", tok, id)
		}
		nbrs[i] = v
	}
	return id, nbrs, nil
}

// ImportText reads the fixture file at path.
//
// A missing file is reported as FILE_NOT_FOUND and other open failures as
// IO_ERROR. Decoding failures are the [*FormatError] values of [ReadText]
// with Path set.
func ImportText(path string) (*graph.Graph, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := ReadText(f)
	if err != nil {
		var fe *FormatError
		if stderrors.As(err, &fe) {
			fe.Path = path
		}
		return nil, err
	}
	return g, nil
}

// ReadJSON decodes the edge-list JSON written by [WriteJSON].
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data jsonGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, formatErr(0, err, "decode json")
	}
	if data.Nodes < 0 {
		return nil, formatErr(0, graph.ErrNegativeNodeCount, "nodes=%d", data.Nodes)
	}
	es := graph.NewEdgeSet()
	for _, e := range data.Edges {
		if e[0] == e[1] {
			return nil, formatErr(0, graph.ErrSelfLoop, "edge %d-%d", e[0], e[1])
		}
		es.Add(e[0], e[1])
	}
	g, err := graph.FromEdges(data.Nodes, es)
	if err != nil {
		return nil, formatErr(0, err, "invalid edges")
	}
	return g, nil
}

// ImportJSON reads the JSON fixture file at path.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	return f, nil
}
