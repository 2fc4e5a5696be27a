// Package pipeline provides the fixture generation pipeline.
//
// This package implements the complete build → export → relabel run that the
// CLI and the HTTP server share. By centralizing this logic, both entry points
// write identical files for identical parameters and seeds.
//
// # Architecture
//
// A run consists of three stages:
//
//  1. Token: build (or load from cache) a connected random graph and write it
//     to <root>/Token/G_n{N}_c{C}.txt
//  2. Patterns: read the token file back and write isomorphic relabelings to
//     <root>/Pattern/G_Iso_n{N}_c{C}_{i}.txt as soon as each one exists
//  3. Manifest: record run id, seed, parameters, file list and the
//     pattern-to-token node mappings
//
// Each stage can be run independently through the [Runner] methods.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Nodes:      10,
//	    Coverage:   30,
//	    Isographs:  3,
//	    OutputRoot: "graphs",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.TokenPath, res.PatternPaths)
//
// # Reproducibility
//
// Both the token graph and its relabelings are derived from one 64-bit seed.
// When [Options.Seed] is nil a random seed is drawn and reported in
// [Result.Seed], so any run can be repeated exactly.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isofixture/pkg/errors"
	"github.com/matzehuels/isofixture/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultNodes is the token graph size when none is given.
	DefaultNodes = 10

	// DefaultCoverage is the edge density percentage when none is given.
	DefaultCoverage = 30

	// DefaultIsographs is the number of isomorphic copies when none is given.
	DefaultIsographs = 1

	// DefaultOutputRoot is the directory that receives Token/ and Pattern/.
	DefaultOutputRoot = "graphs"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a fixture run.
type Options struct {
	Nodes      int    `json:"nodes"`
	Coverage   int    `json:"coverage"`
	Isographs  int    `json:"isographs"`
	OutputRoot string `json:"output_root,omitempty"`

	// Seed fixes the run seed. Nil draws a fresh random seed.
	Seed *uint64 `json:"seed,omitempty"`

	// Refresh bypasses the token cache lookup (the result is still stored).
	Refresh bool `json:"refresh,omitempty"`

	// NoManifest skips writing the run manifest.
	NoManifest bool `json:"no_manifest,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this run (UUID v4).
	RunID string

	// Seed is the seed the run actually used.
	Seed uint64

	// Token is the generated token graph as read back from disk.
	Token *graph.Graph

	// TokenPath is the written token fixture file.
	TokenPath string

	// PatternPaths lists the written pattern files in index order.
	PatternPaths []string

	// Mappings[i][v] is the token node that node v of pattern i+1 came from.
	Mappings [][]int

	// ManifestPath is empty when NoManifest was set.
	ManifestPath string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the token came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	BuildTime   time.Duration
	PatternTime time.Duration
	TotalTime   time.Duration
}

// CacheInfo tracks cache hits for the pipeline stages.
type CacheInfo struct {
	TokenHit bool // Whether the token graph came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies the default output root and checks the
// parameters against the accepted ranges. Nothing is written on failure.
func (o *Options) ValidateAndSetDefaults() error {
	if o.OutputRoot == "" {
		o.OutputRoot = DefaultOutputRoot
	}
	return errors.ValidateParams(o.Nodes, o.Coverage, o.Isographs)
}

// ValidateForToken checks the parameters needed to build a token graph only.
func (o *Options) ValidateForToken() error {
	if o.OutputRoot == "" {
		o.OutputRoot = DefaultOutputRoot
	}
	if err := errors.ValidateNodes(o.Nodes); err != nil {
		return err
	}
	return errors.ValidateCoverage(o.Coverage)
}
