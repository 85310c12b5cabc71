package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/utkutarhan/zest-backend/internal/types"
)

// Detail cache bounds. Repeat lookups for the same dish and language must not
// hit the provider again, but entries cannot accumulate forever.
const (
	DetailCacheTTL        = 24 * time.Hour
	detailCacheMaxEntries = 1000
)

// DetailCache stores generated recipe details keyed by dish name and
// language. Only successfully parsed details are ever stored.
type DetailCache interface {
	Get(ctx context.Context, dishName, language string) (*types.RecipeDetail, bool)
	Set(ctx context.Context, dishName, language string, detail *types.RecipeDetail)
}

func detailCacheKey(dishName, language string) string {
	return fmt.Sprintf("recipe:detail:%s:%s", language, dishName)
}

type memoryCacheEntry struct {
	detail    *types.RecipeDetail
	expiresAt time.Time
}

// MemoryDetailCache is the in-process implementation, used when Redis is not
// configured. Bounded: expired entries are swept on insert, and when the
// cache is still full the entry closest to expiry is dropped.
type MemoryDetailCache struct {
	mu      sync.Mutex
	entries map[string]memoryCacheEntry
	ttl     time.Duration
	max     int
}

// NewMemoryDetailCache creates an in-process detail cache.
func NewMemoryDetailCache() *MemoryDetailCache {
	return &MemoryDetailCache{
		entries: make(map[string]memoryCacheEntry),
		ttl:     DetailCacheTTL,
		max:     detailCacheMaxEntries,
	}
}

func (c *MemoryDetailCache) Get(_ context.Context, dishName, language string) (*types.RecipeDetail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := detailCacheKey(dishName, language)
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.detail, true
}

func (c *MemoryDetailCache) Set(_ context.Context, dishName, language string, detail *types.RecipeDetail) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.max {
		c.evictLocked()
	}
	c.entries[detailCacheKey(dishName, language)] = memoryCacheEntry{
		detail:    detail,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// evictLocked drops expired entries, then the soonest-to-expire entry if
// the cache is still at capacity.
func (c *MemoryDetailCache) evictLocked() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	if len(c.entries) < c.max {
		return
	}

	var oldestKey string
	var oldestExpiry time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldestExpiry) {
			oldestKey = key
			oldestExpiry = entry.expiresAt
		}
	}
	delete(c.entries, oldestKey)
}

// RedisDetailCache stores details in Redis with a TTL, so repeat lookups are
// shared across processes and survive restarts.
type RedisDetailCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisDetailCache creates a Redis-backed detail cache.
func NewRedisDetailCache(client *redis.Client, logger *zap.Logger) *RedisDetailCache {
	return &RedisDetailCache{redis: client, ttl: DetailCacheTTL, logger: logger}
}

func (c *RedisDetailCache) Get(ctx context.Context, dishName, language string) (*types.RecipeDetail, bool) {
	data, err := c.redis.Get(ctx, detailCacheKey(dishName, language)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("detail cache read failed", zap.Error(err))
		return nil, false
	}

	var detail types.RecipeDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		c.logger.Warn("detail cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return &detail, true
}

func (c *RedisDetailCache) Set(ctx context.Context, dishName, language string, detail *types.RecipeDetail) {
	data, err := json.Marshal(detail)
	if err != nil {
		c.logger.Warn("failed to marshal detail for cache", zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, detailCacheKey(dishName, language), data, c.ttl).Err(); err != nil {
		c.logger.Warn("detail cache write failed", zap.Error(err))
	}
}
