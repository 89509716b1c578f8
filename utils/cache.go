// File: utils/cache.go
package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/DC111-ui/hss-storage-platform/config"
)

const tokenHashPrefix = "tokenHash:"

// TokenCache records hashes of issued tokens so the auth middleware can
// reject credentials this deployment never minted. Backed by Redis when
// configured; the in-memory fallback keeps single-process demos working
// without any external service.
type TokenCache interface {
	Remember(ctx context.Context, hash string, ttl time.Duration) error
	Known(ctx context.Context, hash string) bool
}

// NewTokenCache builds the cache from configuration.
func NewTokenCache() TokenCache {
	if config.AppConfig.RedisAddr == "" {
		return newMemoryTokenCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Sugar().Warnf("Redis unreachable (%v), using in-memory token cache", err)
		return newMemoryTokenCache()
	}
	return &redisTokenCache{client: client}
}

type redisTokenCache struct {
	client *redis.Client
}

func (c *redisTokenCache) Remember(ctx context.Context, hash string, ttl time.Duration) error {
	return c.client.Set(ctx, tokenHashPrefix+hash, "1", ttl).Err()
}

func (c *redisTokenCache) Known(ctx context.Context, hash string) bool {
	n, err := c.client.Exists(ctx, tokenHashPrefix+hash).Result()
	return err == nil && n > 0
}

type memoryTokenCache struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newMemoryTokenCache() *memoryTokenCache {
	return &memoryTokenCache{entries: make(map[string]time.Time)}
}

func (c *memoryTokenCache) Remember(_ context.Context, hash string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[hash] = time.Now().Add(ttl)
	return nil
}

func (c *memoryTokenCache) Known(_ context.Context, hash string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	deadline, ok := c.entries[hash]
	if !ok {
		return false
	}
	if time.Now().After(deadline) {
		delete(c.entries, hash)
		return false
	}
	return true
}
