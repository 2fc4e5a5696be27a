// Package config loads optional defaults for fixture generation.
//
// A config file supplies the values command-line flags fall back to. The
// format follows the file extension: ".toml" is decoded with BurntSushi/toml,
// ".yaml" and ".yml" with yaml.v3. Example (TOML):
//
//	nodes = 40
//	coverage = 25
//	isographs = 3
//	output = "testdata/graphs"
//
//	[cache]
//	dir = "/var/cache/isofixture"
//
//	[cache.redis]
//	addr = "localhost:6379"
//	prefix = "ci:"
//
//	[server]
//	addr = ":8080"
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/isofixture/pkg/errors"
)

// EnvVar names the environment variable consulted when no --config flag is given.
const EnvVar = "ISOFIXTURE_CONFIG"

// Defaults used when neither a flag nor a config file sets a value.
const (
	DefaultNodes      = 10
	DefaultCoverage   = 30
	DefaultIsographs  = 1
	DefaultOutput     = "graphs"
	DefaultServerAddr = ":8080"
)

// Config holds generation defaults and backend settings.
type Config struct {
	Nodes     int    `toml:"nodes" yaml:"nodes"`
	Coverage  int    `toml:"coverage" yaml:"coverage"`
	Isographs int    `toml:"isographs" yaml:"isographs"`
	Output    string `toml:"output" yaml:"output"`

	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// CacheConfig selects the token cache backend.
// Redis wins over the file cache when Redis.Addr is set.
type CacheConfig struct {
	Disabled bool        `toml:"disabled" yaml:"disabled"`
	Dir      string      `toml:"dir" yaml:"dir"`
	Redis    RedisConfig `toml:"redis" yaml:"redis"`
}

// RedisConfig points the cache at a Redis instance.
type RedisConfig struct {
	Addr     string `toml:"addr" yaml:"addr"`
	Password string `toml:"password" yaml:"password"`
	DB       int    `toml:"db" yaml:"db"`
	Prefix   string `toml:"prefix" yaml:"prefix"`
}

// ServerConfig configures the HTTP fixture server.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Nodes:     DefaultNodes,
		Coverage:  DefaultCoverage,
		Isographs: DefaultIsographs,
		Output:    DefaultOutput,
		Server:    ServerConfig{Addr: DefaultServerAddr},
	}
}

// Resolve returns the config path to use: the flag value if set, otherwise
// $ISOFIXTURE_CONFIG. An empty result means no config file.
func Resolve(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return os.Getenv(EnvVar)
}

// Load reads path on top of Default and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Decode unmarshals data into cfg according to the file extension.
// Fields absent from data keep their current value.
func Decode(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".toml":
		_, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		return err
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}
}

// Validate checks the generation defaults against the accepted ranges.
func (c Config) Validate() error {
	if err := errors.ValidateParams(c.Nodes, c.Coverage, c.Isographs); err != nil {
		return err
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "output directory cannot be empty")
	}
	if c.Cache.Redis.DB < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "redis db must be non-negative (got %d)", c.Cache.Redis.DB)
	}
	return nil
}
