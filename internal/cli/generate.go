package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/isofixture/pkg/config"
	"github.com/matzehuels/isofixture/pkg/errors"
	"github.com/matzehuels/isofixture/pkg/io"
	"github.com/matzehuels/isofixture/pkg/pipeline"
)

// generateOpts holds the command-line flags shared by generate and token.
type generateOpts struct {
	nodes      int    // token graph size
	coverage   int    // edge density percentage
	isographs  int    // number of isomorphic copies
	output     string // output root (Token/ and Pattern/ are created below it)
	seed       uint64 // run seed; only used when --seed is given
	noCache    bool   // disable the token cache
	refresh    bool   // bypass the token cache lookup
	noManifest bool   // skip the run manifest
}

func defaultGenerateOpts() generateOpts {
	return generateOpts{
		nodes:     config.DefaultNodes,
		coverage:  config.DefaultCoverage,
		isographs: config.DefaultIsographs,
		output:    config.DefaultOutput,
	}
}

// applyConfig fills every flag the user did not set explicitly from cfg.
func (o *generateOpts) applyConfig(flags *pflag.FlagSet, cfg config.Config) {
	if !flags.Changed("nodes") {
		o.nodes = cfg.Nodes
	}
	if !flags.Changed("coverage") {
		o.coverage = cfg.Coverage
	}
	if !flags.Changed("isographs") {
		o.isographs = cfg.Isographs
	}
	if !flags.Changed("output") {
		o.output = cfg.Output
	}
}

// pipelineOptions converts the flags into pipeline options.
// The seed is only fixed when --seed was passed.
func (o *generateOpts) pipelineOptions(flags *pflag.FlagSet) pipeline.Options {
	opts := pipeline.Options{
		Nodes:      o.nodes,
		Coverage:   o.coverage,
		Isographs:  o.isographs,
		OutputRoot: o.output,
		Refresh:    o.refresh,
		NoManifest: o.noManifest,
	}
	if flags.Changed("seed") {
		seed := o.seed
		opts.Seed = &seed
	}
	return opts
}

func (o *generateOpts) bindTokenFlags(flags *pflag.FlagSet) {
	flags.IntVarP(&o.nodes, "nodes", "n", o.nodes, fmt.Sprintf("number of nodes in the token graph [1,%d]", errors.MaxNodes))
	flags.IntVarP(&o.coverage, "coverage", "c", o.coverage, "edge coverage percentage [10,100]")
	flags.StringVarP(&o.output, "output", "o", o.output, "output root directory")
	flags.Uint64Var(&o.seed, "seed", 0, "random seed (random if unset; reported after the run)")
	flags.BoolVar(&o.noCache, "no-cache", false, "disable the token cache")
	flags.BoolVar(&o.refresh, "refresh", false, "rebuild the token graph even if cached")
}

// generateCommand creates the generate command: token graph plus patterns.
func (c *CLI) generateCommand() *cobra.Command {
	opts := defaultGenerateOpts()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a token graph and isomorphic pattern graphs",
		Long: `Generate a connected random token graph and isomorphic copies of it.

Files are written below the output root:
  Token/G_n{N}_c{C}.txt          the token graph
  Pattern/G_Iso_n{N}_c{C}_{i}.txt  pattern i, a random relabeling of the token
  manifest_n{N}_c{C}.json         run id, seed and file list

Examples:
  isofixture generate                          # 10 nodes, 30% coverage, 1 pattern
  isofixture generate -n 50 -c 20 -i 4         # 50 nodes, 20% coverage, 4 patterns
  isofixture generate -n 50 --seed 1234        # reproducible run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, &opts)
		},
	}

	opts.bindTokenFlags(cmd.Flags())
	cmd.Flags().IntVarP(&opts.isographs, "isographs", "i", opts.isographs, "number of isomorphic copies [1,8]")
	cmd.Flags().BoolVar(&opts.noManifest, "no-manifest", false, "do not write the run manifest")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts.applyConfig(cmd.Flags(), cfg)

	popts := opts.pipelineOptions(cmd.Flags())
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx), "generate")
	res, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	prog.done(
		"files", 1+len(res.PatternPaths),
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"seed", res.Seed,
		"cached", res.CacheInfo.TokenHit,
	)

	printSuccess("Token graph and %d pattern(s)", len(res.PatternPaths))
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.TokenHit)
	printFile(res.TokenPath)
	for _, p := range res.PatternPaths {
		printFile(p)
	}
	if res.ManifestPath != "" {
		printFile(res.ManifestPath)
	}
	printKeyValue("seed", strconv.FormatUint(res.Seed, 10))
	printKeyValue("run", res.RunID)
	if popts.Seed == nil {
		printNextStep("Reproduce", fmt.Sprintf("%s generate -n %d -c %d -i %d --seed %d",
			appName, popts.Nodes, popts.Coverage, popts.Isographs, res.Seed))
	}
	return nil
}

// tokenCommand creates the token command: token graph only.
func (c *CLI) tokenCommand() *cobra.Command {
	opts := defaultGenerateOpts()

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate only the token graph",
		Long: `Generate only the connected random token graph, written to
<output>/Token/G_n{N}_c{C}.txt. Use "pattern" later to derive copies from it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runToken(cmd, &opts)
		},
	}

	opts.bindTokenFlags(cmd.Flags())
	return cmd
}

func (c *CLI) runToken(cmd *cobra.Command, opts *generateOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts.applyConfig(cmd.Flags(), cfg)

	popts := opts.pipelineOptions(cmd.Flags())
	if err := popts.ValidateForToken(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx), "token")
	tok, err := runner.BuildToken(ctx, popts)
	if err != nil {
		return err
	}
	path, err := io.ExportText(tok.Graph, filepath.Join(popts.OutputRoot, pipeline.TokenDir), pipeline.TokenName(popts.Nodes, popts.Coverage))
	if err != nil {
		return err
	}
	prog.done("path", path, "edges", tok.Graph.EdgeCount(), "seed", tok.Seed, "cached", tok.CacheHit)

	printSuccess("Token graph")
	printStats(tok.Graph.NodeCount(), tok.Graph.EdgeCount(), tok.CacheHit)
	printFile(path)
	printKeyValue("seed", strconv.FormatUint(tok.Seed, 10))
	printNextStep("Derive patterns", fmt.Sprintf("%s pattern %s -i 3 --seed %d", appName, path, tok.Seed))
	return nil
}
