// Package cache provides byte-oriented caching for analysis results and
// rendered artifacts.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: entries as JSON files under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (used by `wordsphere serve`)
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys are produced by a [Keyer] so that the same inputs always map to the
// same entry regardless of backend.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads with an optional time-to-live.
// A ttl of zero means the entry never expires.
type Cache interface {
	// Get returns the cached data and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per entry type.
const (
	AnalysisTTL = 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// NullCache is the backend behind --no-cache and backend = "none". Every
// lookup misses and writes are dropped, so each run talks to the analysis
// service and re-renders.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }
