package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isofixture/pkg/buildinfo"
	"github.com/matzehuels/isofixture/pkg/cache"
	"github.com/matzehuels/isofixture/pkg/config"
	"github.com/matzehuels/isofixture/pkg/errors"
	"github.com/matzehuels/isofixture/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "isofixture"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is bound to the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "isofixture generates random graphs and isomorphic copies as test fixtures",
		Long: `isofixture writes a connected random "token" graph of a chosen size and edge
density, plus randomly relabeled copies of it ("patterns"), in a plain adjacency
text format. The files are fixtures for graph-isomorphism and subgraph-matching
test suites.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.toml, .yaml); defaults to $"+config.EnvVar)

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.tokenCommand())
	root.AddCommand(c.patternCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config named by --config or $ISOFIXTURE_CONFIG.
func (c *CLI) loadConfig() (config.Config, error) {
	path := config.Resolve(c.configPath)
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.Redis.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Redis.Prefix)
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache picks the token cache backend: none, Redis when configured,
// otherwise a file cache under the XDG cache directory.
func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect to redis at %s", cfg.Redis.Addr)
		}
		return rc, nil
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create cache directory %s", dir)
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/isofixture/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
