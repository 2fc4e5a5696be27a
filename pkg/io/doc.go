// Package io reads and writes fixture graphs.
//
// # Text Format
//
// The canonical fixture format consumed by the VF2++ matchers is plain text:
//
//	3 3
//	0	1
//	1	0 2
//	2	1
//
// The header repeats the node count N twice. The second number carries no
// information but downstream readers expect it, so it is written verbatim
// and ignored on read. Then come N lines, one per node in ascending id order:
// the node id, a tab, and the ascending space-separated neighbor ids. An
// isolated node is written as its id followed by a bare tab. Lines are joined
// with '\n' and the file has no trailing newline.
//
// # Export
//
// Use [WriteText] to write to any io.Writer, [Serialize] for a string, or
// [ExportText] to write into a directory, creating it if needed and
// overwriting any existing file of the same name:
//
//	path, err := io.ExportText(g, "graphs/Token", "G_n10_c30.txt")
//
// # Import
//
// Use [ReadText] or [ImportText]. The loader is strict: a short file, a
// non-integer token, an id outside [0,N), a repeated id, a self-loop or an
// asymmetric neighbor list all fail with a [*FormatError] whose code is
// INVALID_FORMAT. Lines after the N node lines are ignored.
//
// # JSON
//
// [WriteJSON] and [ReadJSON] provide an edge-list rendition for tooling:
//
//	{"nodes": 3, "edges": [[0, 1], [1, 2]]}
package io
