package cli

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isofixture/pkg/config"
	"github.com/matzehuels/isofixture/pkg/errors"
	"github.com/matzehuels/isofixture/pkg/io"
	"github.com/matzehuels/isofixture/pkg/pipeline"
)

// patternOpts holds the command-line flags for the pattern command.
type patternOpts struct {
	isographs int    // number of copies
	seed      uint64 // permutation seed; only used when --seed is given
	output    string // output root; patterns go to <output>/Pattern
	name      string // file name stem; derived from the token file if empty
}

// tokenNameRe matches token files written by generate/token.
var tokenNameRe = regexp.MustCompile(`^G_n(\d+)_c(\d+)\.txt$`)

// patternPrefix derives the pattern file stem from a token file path:
// G_n10_c30.txt becomes G_Iso_n10_c30, anything else becomes <stem>_iso.
func patternPrefix(tokenPath string) string {
	base := filepath.Base(tokenPath)
	if m := tokenNameRe.FindStringSubmatch(base); m != nil {
		n, _ := strconv.Atoi(m[1])
		c, _ := strconv.Atoi(m[2])
		return pipeline.PatternPrefix(n, c)
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_iso"
}

// patternCommand creates the pattern command for relabeling an existing token file.
func (c *CLI) patternCommand() *cobra.Command {
	opts := patternOpts{isographs: config.DefaultIsographs, output: config.DefaultOutput}

	cmd := &cobra.Command{
		Use:   "pattern <token-file>",
		Short: "Generate isomorphic copies of an existing token file",
		Long: `Read a fixture file and write randomly relabeled copies of it to
<output>/Pattern/<name>_{i}.txt.

Examples:
  isofixture pattern graphs/Token/G_n10_c30.txt -i 3
  isofixture pattern my_graph.txt --name my_graph_perm -o testdata`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPattern(cmd, &opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.isographs, "isographs", "i", opts.isographs, "number of isomorphic copies [1,8]")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (random if unset)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output root directory")
	cmd.Flags().StringVar(&opts.name, "name", "", "file name stem (default derived from the token file)")

	return cmd
}

func (c *CLI) runPattern(cmd *cobra.Command, opts *patternOpts, tokenPath string) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("isographs") {
		opts.isographs = cfg.Isographs
	}
	if !cmd.Flags().Changed("output") {
		opts.output = cfg.Output
	}
	if err := errors.ValidateIsographs(opts.isographs); err != nil {
		return err
	}

	name := opts.name
	if name == "" {
		name = patternPrefix(tokenPath)
	}
	if err := errors.ValidateBaseName(name); err != nil {
		return err
	}

	var seedFlag *uint64
	if cmd.Flags().Changed("seed") {
		seedFlag = &opts.seed
	}
	seed := pipeline.ResolveSeed(seedFlag)

	token, err := io.ImportText(tokenPath)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	dir := filepath.Join(opts.output, pipeline.PatternDir)
	paths, err := runner.ExportPatterns(ctx, token, opts.isographs, seed, dir, name)
	if err != nil {
		return err
	}

	printSuccess("%d pattern(s) of %s", len(paths), filepath.Base(tokenPath))
	printStats(token.NodeCount(), token.EdgeCount(), false)
	for _, p := range paths {
		printFile(p)
	}
	printKeyValue("seed", strconv.FormatUint(seed, 10))
	if seedFlag == nil {
		printNextStep("Reproduce", fmt.Sprintf("%s pattern %s -i %d --seed %d", appName, tokenPath, opts.isographs, seed))
	}
	return nil
}
