// Package cache stores placement results so identical problems are not
// solved twice.
//
// Four backends implement [Cache]:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps JSON entries under a local directory (CLI default)
//   - [RedisCache] shares entries through a Redis server
//   - [MongoCache] shares entries through a MongoDB collection
//
// Keys are produced by a [Keyer] so that every consumer (CLI, HTTP server)
// agrees on the layout of the key space.
package cache

import (
	"context"
	"time"
)

// TTLPlacement is how long a computed placement stays cached. Placements are
// pure functions of their input, so the TTL only bounds storage growth.
const TTLPlacement = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss with hit == false and a nil error. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// PlacementKeyOpts holds the run parameters that change a placement result.
type PlacementKeyOpts struct {
	Algorithm string `json:"algorithm"`
	Seed      uint64 `json:"seed"`
}

// Keyer generates cache keys.
type Keyer interface {
	// PlacementKey returns the key for the placement of the problem whose
	// canonical encoding hashes to problemHash.
	PlacementKey(problemHash string, opts PlacementKeyOpts) string
}

// DefaultKeyer is the standard key layout: "placement:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PlacementKey hashes the problem hash together with the options.
func (DefaultKeyer) PlacementKey(problemHash string, opts PlacementKeyOpts) string {
	return hashKey("placement", problemHash, opts)
}

var _ Keyer = DefaultKeyer{}
