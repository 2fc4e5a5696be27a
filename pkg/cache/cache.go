// Package cache memoizes serialized fixture graphs.
//
// Token graphs generated from an explicit seed are fully determined by
// (nodes, coverage, seed), so the pipeline can store their fixture text and
// skip regeneration on later runs. Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for servers and CI fleets
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys come from a [Keyer]; [NewScopedKeyer] adds a namespace prefix so
// several deployments can share one Redis database.
package cache

import (
	"context"
	"time"
)

// TTLToken is how long a cached token graph stays valid.
const TTLToken = 30 * 24 * time.Hour

// Cache stores opaque byte values by key.
//
// Get reports a miss with (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
