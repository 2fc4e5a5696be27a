package cache

import "fmt"

// Keyer derives cache keys for fixture artifacts.
type Keyer interface {
	// TokenKey identifies the token graph built from (nodes, coverage, seed).
	TokenKey(nodes, coverage int, seed uint64) string
}

// formatVersion is bumped whenever the generation algorithm changes the
// graph produced for a given seed, invalidating older entries.
const formatVersion = 1

// DefaultKeyer produces readable keys such as "token:v1:n10:c30:s42".
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer with no namespace.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TokenKey implements Keyer.
func (DefaultKeyer) TokenKey(nodes, coverage int, seed uint64) string {
	return fmt.Sprintf("token:v%d:n%d:c%d:s%d", formatVersion, nodes, coverage, seed)
}

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one backend without colliding.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "ci:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// If inner is nil, DefaultKeyer is used.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TokenKey implements Keyer.
func (k *ScopedKeyer) TokenKey(nodes, coverage int, seed uint64) string {
	return k.prefix + k.inner.TokenKey(nodes, coverage, seed)
}
