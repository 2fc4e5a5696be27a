package pipeline

import (
	"bytes"
	"context"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/isofixture/pkg/cache"
	"github.com/matzehuels/isofixture/pkg/generate"
	"github.com/matzehuels/isofixture/pkg/graph"
	"github.com/matzehuels/isofixture/pkg/io"
	"github.com/matzehuels/isofixture/pkg/iso"
	"github.com/matzehuels/isofixture/pkg/observability"
	"github.com/matzehuels/isofixture/pkg/perm"
)

// cacheKeyType labels token cache events for observability hooks.
const cacheKeyType = "token"

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this so that a seed means the same fixtures everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ResolveSeed returns *seed, or a freshly drawn random seed when seed is nil.
func ResolveSeed(seed *uint64) uint64 {
	if seed != nil {
		return *seed
	}
	return rand.Uint64()
}

// Execute runs the complete token → patterns → manifest pipeline.
//
// Parameters are validated before anything is written. The token graph is
// written first and read back from disk; every pattern is derived from the
// loaded graph and written as soon as it is produced. Any failure aborts the
// run; files already written are left in place.
func (r *Runner) Execute(ctx context.Context, opts Options) (res *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.loggerFor(opts)

	start := time.Now()
	seed := ResolveSeed(opts.Seed)
	res = &Result{RunID: uuid.NewString(), Seed: seed}
	defer func() {
		observability.Pipeline().OnRunComplete(ctx, len(res.PatternPaths), time.Since(start), err)
	}()

	// Stage 1: Token
	buildStart := time.Now()
	token, hit, err := r.buildToken(ctx, opts.Nodes, opts.Coverage, seed, opts.Seed != nil, opts.Refresh)
	if err != nil {
		return res, err
	}
	res.CacheInfo.TokenHit = hit

	tokenPath, err := io.ExportText(token, filepath.Join(opts.OutputRoot, TokenDir), TokenName(opts.Nodes, opts.Coverage))
	if err != nil {
		return res, err
	}
	res.TokenPath = tokenPath

	loaded, err := io.ImportText(tokenPath)
	if err != nil {
		return res, err
	}
	res.Token = loaded
	res.Stats.NodeCount = loaded.NodeCount()
	res.Stats.EdgeCount = loaded.EdgeCount()
	res.Stats.BuildTime = time.Since(buildStart)

	logger.Info("wrote token graph",
		"path", tokenPath,
		"nodes", loaded.NodeCount(),
		"edges", loaded.EdgeCount(),
		"seed", seed,
		"cached", hit,
		"duration", res.Stats.BuildTime)

	// Stage 2: Patterns
	patternStart := time.Now()
	paths, mappings, err := r.exportPatterns(ctx, loaded, opts.Isographs, seed,
		filepath.Join(opts.OutputRoot, PatternDir), PatternPrefix(opts.Nodes, opts.Coverage))
	res.PatternPaths = paths
	res.Mappings = mappings
	if err != nil {
		return res, err
	}
	res.Stats.PatternTime = time.Since(patternStart)

	logger.Info("wrote patterns",
		"count", len(paths),
		"dir", filepath.Join(opts.OutputRoot, PatternDir),
		"duration", res.Stats.PatternTime)

	// Stage 3: Manifest
	if !opts.NoManifest {
		res.ManifestPath, err = WriteManifest(opts.OutputRoot, Manifest{
			RunID:     res.RunID,
			CreatedAt: time.Now().UTC(),
			Seed:      seed,
			Nodes:     opts.Nodes,
			Coverage:  opts.Coverage,
			Isographs: opts.Isographs,
			Edges:     loaded.EdgeCount(),
			CacheHit:  hit,
			Token:     tokenPath,
			Patterns:  paths,
			Mappings:  mappings,
		})
		if err != nil {
			return res, err
		}
		logger.Debug("wrote manifest", "path", res.ManifestPath, "run_id", res.RunID)
	}

	res.Stats.TotalTime = time.Since(start)
	return res, nil
}

// Token is a token graph together with its provenance.
type Token struct {
	Graph    *graph.Graph
	Seed     uint64
	CacheHit bool
}

// BuildToken returns the token graph for opts.Nodes and opts.Coverage.
// Only Nodes, Coverage, Seed and Refresh are consulted. Seeded builds go
// through the cache; unseeded builds draw a fresh seed and bypass it.
func (r *Runner) BuildToken(ctx context.Context, opts Options) (*Token, error) {
	if err := opts.ValidateForToken(); err != nil {
		return nil, err
	}
	seed := ResolveSeed(opts.Seed)
	g, hit, err := r.buildToken(ctx, opts.Nodes, opts.Coverage, seed, opts.Seed != nil, opts.Refresh)
	if err != nil {
		return nil, err
	}
	return &Token{Graph: g, Seed: seed, CacheHit: hit}, nil
}

func (r *Runner) buildToken(ctx context.Context, nodes, coverage int, seed uint64, cacheable, refresh bool) (*graph.Graph, bool, error) {
	key := r.Keyer.TokenKey(nodes, coverage, seed)

	if cacheable && !refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("token cache lookup failed", "key", key, "error", err)
		case hit:
			g, err := io.ReadText(bytes.NewReader(data))
			if err == nil && g.NodeCount() == nodes {
				observability.Cache().OnCacheHit(ctx, cacheKeyType)
				r.Logger.Debug("token cache hit", "key", key)
				return g, true, nil
			}
			// undecodable entry: rebuild and overwrite
			r.Logger.Debug("discarding bad token cache entry", "key", key, "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, nodes, coverage)
	start := time.Now()
	g, err := generate.Build(nodes, coverage, generate.WithSeed(seed))
	edges := 0
	if g != nil {
		edges = g.EdgeCount()
	}
	hooks.OnBuildComplete(ctx, nodes, coverage, edges, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		data := []byte(io.Serialize(g))
		if err := r.Cache.Set(ctx, key, data, cache.TTLToken); err != nil {
			r.Logger.Warn("token cache store failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}
	return g, false, nil
}

// GeneratePatterns produces copies isomorphic relabelings of token, seeded by
// seed, and hands each to emit as soon as it exists. Generation stops at the
// first emit error or when ctx is cancelled.
func (r *Runner) GeneratePatterns(ctx context.Context, token *graph.Graph, copies int, seed uint64, emit iso.EmitFunc) error {
	gen := iso.NewGenerator(iso.WithSeed(seed))
	return gen.Generate(token, copies, func(c iso.Copy) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(c); err != nil {
			return err
		}
		observability.Pipeline().OnPatternEmitted(ctx, c.Index)
		return nil
	})
}

// ExportPatterns writes copies relabelings of token to dir as
// {prefix}_{i}.txt and returns the written paths in index order.
// On failure the paths written so far are returned with the error.
func (r *Runner) ExportPatterns(ctx context.Context, token *graph.Graph, copies int, seed uint64, dir, prefix string) ([]string, error) {
	paths, _, err := r.exportPatterns(ctx, token, copies, seed, dir, prefix)
	return paths, err
}

// exportPatterns is ExportPatterns that also returns, per pattern, the
// pattern-to-token node mapping (the inverse of the relabeling).
func (r *Runner) exportPatterns(ctx context.Context, token *graph.Graph, copies int, seed uint64, dir, prefix string) ([]string, [][]int, error) {
	paths := make([]string, 0, max(copies, 0))
	mappings := make([][]int, 0, max(copies, 0))
	err := r.GeneratePatterns(ctx, token, copies, seed, func(c iso.Copy) error {
		p, err := io.ExportText(c.Graph, dir, PatternName(prefix, c.Index))
		if err != nil {
			return err
		}
		paths = append(paths, p)
		mappings = append(mappings, perm.Inverse(c.Perm))
		r.Logger.Debug("wrote pattern", "index", c.Index, "path", p)
		return nil
	})
	return paths, mappings, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) loggerFor(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
