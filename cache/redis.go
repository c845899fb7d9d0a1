package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"newscheck-backend/models"
)

// RedisCache stores explanations in Redis so repeated articles can be served
// from cache across processes. Entries expire after the configured TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

// Get returns the memoized explanation for a key, if present. Redis errors
// are treated as misses.
func (c *RedisCache) Get(ctx context.Context, key Key) (models.Explanation, bool) {
	val, err := c.client.Get(ctx, redisKey(key)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Warning: redis get failed: %v", err)
		}
		return models.Explanation{}, false
	}

	var explanation models.Explanation
	if err := json.Unmarshal([]byte(val), &explanation); err != nil {
		log.Printf("Warning: discarding malformed cached explanation: %v", err)
		return models.Explanation{}, false
	}
	return explanation, true
}

// Set stores an explanation. Failures are logged, not surfaced.
func (c *RedisCache) Set(ctx context.Context, key Key, explanation models.Explanation) {
	data, err := json.Marshal(explanation)
	if err != nil {
		log.Printf("Warning: failed to marshal explanation for cache: %v", err)
		return
	}
	if err := c.client.Set(ctx, redisKey(key), data, c.ttl).Err(); err != nil {
		log.Printf("Warning: redis set failed: %v", err)
	}
}

// Close releases the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// redisKey hashes the full key so arbitrarily long articles stay within key
// size limits.
func redisKey(key Key) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%g", key.Article, key.Label, key.MaxTokens, key.Temperature)))
	return "explanation:" + hex.EncodeToString(sum[:])
}
