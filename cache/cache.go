package cache

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"newscheck-backend/models"
)

// Key identifies one memoized explanation. Results are keyed on the exact
// article, verdict, and generation controls.
type Key struct {
	Article     string
	Label       models.Label
	MaxTokens   int
	Temperature float64
}

// Cache memoizes explanations within a session. Implementations must be safe
// for concurrent use. Caching is a throughput optimization only; a miss is
// never an error.
type Cache interface {
	Get(ctx context.Context, key Key) (models.Explanation, bool)
	Set(ctx context.Context, key Key, explanation models.Explanation)
}

// CacheType represents the cache backend type
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// NewCacheFromEnv creates a cache instance from environment variables
func NewCacheFromEnv(ctx context.Context) (Cache, error) {
	cacheType := os.Getenv("CACHE_TYPE")
	if cacheType == "" {
		cacheType = "memory" // Default to in-process cache
	}

	switch CacheType(cacheType) {
	case CacheTypeMemory:
		capacity := 0
		if v := os.Getenv("CACHE_CAPACITY"); v != "" {
			capacity, _ = strconv.Atoi(v)
		}
		return NewMemoryCache(capacity), nil

	case CacheTypeRedis:
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		db := 0
		if v := os.Getenv("REDIS_DB"); v != "" {
			db, _ = strconv.Atoi(v)
		}
		ttl := 24 * time.Hour
		if v := os.Getenv("CACHE_TTL"); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
			}
			ttl = parsed
		}
		return NewRedisCache(ctx, addr, os.Getenv("REDIS_PASSWORD"), db, ttl)

	default:
		return nil, fmt.Errorf("unknown cache type: %s", cacheType)
	}
}
