package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/isofixture/pkg/errors"
)

// Manifest describes one pipeline run. It is written next to Token/ and
// Pattern/ so a test suite can find its fixtures and reproduce them.
type Manifest struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Seed      uint64    `json:"seed"`
	Nodes     int       `json:"nodes"`
	Coverage  int       `json:"coverage"`
	Isographs int       `json:"isographs"`
	Edges     int       `json:"edges"`
	CacheHit  bool      `json:"cache_hit"`
	Token     string    `json:"token"`
	Patterns  []string  `json:"patterns"`

	// Mappings holds one pattern-to-token node mapping per pattern, the
	// known answer for a matcher run on (token, pattern i+1).
	Mappings [][]int `json:"mappings,omitempty"`
}

// WriteManifest writes m to <root>/manifest_n{N}_c{C}.json, overwriting any
// previous manifest for the same parameters. File paths in m are stored
// relative to root.
func WriteManifest(root string, m Manifest) (string, error) {
	rel := func(p string) string {
		if r, err := filepath.Rel(root, p); err == nil {
			return filepath.ToSlash(r)
		}
		return p
	}
	m.Token = rel(m.Token)
	patterns := make([]string, len(m.Patterns))
	for i, p := range m.Patterns {
		patterns[i] = rel(p)
	}
	m.Patterns = patterns

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode manifest")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create directory %s", root)
	}
	path := filepath.Join(root, ManifestName(m.Nodes, m.Coverage))
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest not found: %s", path)
		}
		return m, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode manifest %s", path)
	}
	return m, nil
}
