// Package cache stores packing results keyed by their inputs so identical
// requests are answered without running the engine again.
//
// Three backends are available:
//   - NullCache: never stores anything
//   - FileCache: one JSON file per entry, for the CLI
//   - RedisCache: shared storage for API servers running side by side
package cache

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/piwi3910/FilmCut/internal/model"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New builds the backend selected in the config. dir is the directory used
// by the file backend.
func New(ctx context.Context, cfg model.AppConfig, dir string) (Cache, error) {
	switch cfg.CacheBackend {
	case model.CacheNone, "":
		return NewNullCache(), nil
	case model.CacheFile:
		return NewFileCache(filepath.Join(dir, "results"))
	case model.CacheRedis:
		return NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

// TTL converts the configured lifetime in minutes to a duration.
func TTL(cfg model.AppConfig) time.Duration {
	if cfg.CacheTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(cfg.CacheTTLMinutes) * time.Minute
}
