package utils

import (
	"context"
	"log"
	"path"
	"sync"
	"time"

	"slotify/config"

	"github.com/go-redis/redis/v8"
)

// Cache is the pluggable cache used to memoize read-heavy lookups such as
// availability windows and service records. It is a performance optimization,
// never a source of truth: callers must behave correctly on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
	Del(ctx context.Context, keys ...string)
	Keys(ctx context.Context, pattern string) []string
}

// CacheClient is the generic Redis cache client.
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// RedisCache adapts a redis client to the Cache interface. Errors are treated
// as misses so a broken cache degrades to uncached reads.
type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	if err := c.Client.Set(ctx, key, value, ttl).Err(); err != nil {
		GetLogger().Sugar().Warnf("cache: failed to set %s: %v", key, err)
	}
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		GetLogger().Sugar().Warnf("cache: failed to delete keys: %v", err)
	}
}

func (c *RedisCache) Keys(ctx context.Context, pattern string) []string {
	keys, err := c.Client.Keys(ctx, pattern).Result()
	if err != nil {
		return nil
	}
	return keys
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is an in-process Cache for single-node deployments and tests.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

func (c *MemoryCache) Del(ctx context.Context, keys ...string) {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.mu.Unlock()
}

func (c *MemoryCache) Keys(ctx context.Context, pattern string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var matched []string
	for key := range c.entries {
		if ok, _ := path.Match(pattern, key); ok {
			matched = append(matched, key)
		}
	}
	return matched
}

// NoopCache disables caching entirely; every Get is a miss.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, key string) (string, bool)               { return "", false }
func (NoopCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {}
func (NoopCache) Del(ctx context.Context, keys ...string)                          {}
func (NoopCache) Keys(ctx context.Context, pattern string) []string                { return nil }
