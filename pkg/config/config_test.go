package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/isofixture/pkg/errors"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Nodes != 10 || cfg.Coverage != 30 || cfg.Isographs != 1 || cfg.Output != "graphs" {
		t.Errorf("Default() = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "isofixture.toml", `
nodes = 40
coverage = 25
isographs = 3

[cache.redis]
addr = "localhost:6379"
prefix = "ci:"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Nodes != 40 || cfg.Coverage != 25 || cfg.Isographs != 3 {
		t.Errorf("params = %d/%d/%d", cfg.Nodes, cfg.Coverage, cfg.Isographs)
	}
	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want default to survive", cfg.Output)
	}
	if cfg.Cache.Redis.Addr != "localhost:6379" || cfg.Cache.Redis.Prefix != "ci:" {
		t.Errorf("Redis = %+v", cfg.Cache.Redis)
	}
}

func TestLoadYAML(t *testing.T) {
	for _, name := range []string{"c.yaml", "c.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, name, "coverage: 80\noutput: out\nserver:\n  addr: 127.0.0.1:9000\n")
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if cfg.Coverage != 80 || cfg.Output != "out" || cfg.Server.Addr != "127.0.0.1:9000" {
				t.Errorf("Load() = %+v", cfg)
			}
			if cfg.Nodes != DefaultNodes {
				t.Errorf("Nodes = %d, want default", cfg.Nodes)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"BadTOML", "c.toml", "nodes = = 3"},
		{"BadYAML", "c.yaml", "nodes: [1"},
		{"UnknownYAMLField", "c.yaml", "colour: red"},
		{"UnsupportedExt", "c.json", `{"nodes": 3}`},
		{"CoverageOutOfRange", "c.toml", "coverage = 5"},
		{"TooManyIsographs", "c.toml", "isographs = 9"},
		{"ZeroNodes", "c.yaml", "nodes: 0"},
		{"EmptyOutput", "c.toml", `output = " "`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestResolve(t *testing.T) {
	t.Setenv(EnvVar, "/etc/isofixture.toml")

	if got := Resolve("local.toml"); got != "local.toml" {
		t.Errorf("Resolve(flag) = %q, want flag value", got)
	}
	if got := Resolve(""); got != "/etc/isofixture.toml" {
		t.Errorf("Resolve(\"\") = %q, want env value", got)
	}

	t.Setenv(EnvVar, "")
	if got := Resolve(""); got != "" {
		t.Errorf("Resolve(\"\") = %q, want empty", got)
	}
}
