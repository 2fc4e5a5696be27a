package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isofixture/pkg/graph"
	"github.com/matzehuels/isofixture/pkg/io"
)

// inspectCommand creates the inspect command for summarizing a fixture file.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print size, density and connectivity of a fixture file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := io.ImportText(args[0])
			if err != nil {
				return err
			}
			for _, kv := range describe(g) {
				printKeyValue(kv[0], kv[1])
			}
			return nil
		},
	}
}

// describe returns the labeled summary lines for g.
func describe(g *graph.Graph) [][2]string {
	lo, hi := g.DegreeRange()
	return [][2]string{
		{"nodes", strconv.Itoa(g.NodeCount())},
		{"edges", fmt.Sprintf("%d / %d", g.EdgeCount(), g.MaxEdges())},
		{"coverage", fmt.Sprintf("%.1f%%", g.Coverage())},
		{"connected", strconv.FormatBool(g.IsConnected())},
		{"degree", fmt.Sprintf("%d..%d", lo, hi)},
	}
}
