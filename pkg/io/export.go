package io

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/isofixture/pkg/errors"
	"github.com/matzehuels/isofixture/pkg/graph"
)

// WriteText encodes g in the fixture text format and writes it to w.
func WriteText(g *graph.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	n := g.NodeCount()

	var line []byte
	line = strconv.AppendInt(line, int64(n), 10)
	line = append(line, ' ')
	line = strconv.AppendInt(line, int64(n), 10)
	if _, err := bw.Write(line); err != nil {
		return err
	}

	for u := 0; u < n; u++ {
		line = append(line[:0], '\n')
		line = strconv.AppendInt(line, int64(u), 10)
		line = append(line, '\t')
		for i, v := range g.Neighbors(u) {
			if i > 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendInt(line, int64(v), 10)
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Serialize returns the fixture text of g.
func Serialize(g *graph.Graph) string {
	var sb strings.Builder
	_ = WriteText(g, &sb) // strings.Builder never fails
	return sb.String()
}

// ExportText writes g to dir/name, creating dir if it does not exist and
// overwriting any existing file. It returns the path written.
// Failures are reported as IO_ERROR with the OS error as cause.
func ExportText(g *graph.Graph, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create directory %s", dir)
	}
	path := filepath.Join(dir, name)
	if err := writeFile(path, func(w io.Writer) error { return WriteText(g, w) }); err != nil {
		return "", err
	}
	return path, nil
}

type jsonGraph struct {
	Nodes int      `json:"nodes"`
	Edges [][2]int `json:"edges"`
}

// WriteJSON encodes g as {"nodes": N, "edges": [[u, v], ...]} with u < v.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := jsonGraph{Nodes: g.NodeCount(), Edges: make([][2]int, 0, g.EdgeCount())}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, [2]int{e.U, e.V})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode json")
	}
	return nil
}

// ExportJSON writes the JSON rendition of g to path.
func ExportJSON(g *graph.Graph, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(g, w) })
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
