package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pos/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RedisReportCache implements ReportCache using Redis, suitable when more
// than one instance serves the dashboard
type RedisReportCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisReportCache creates a new Redis-based report cache
func NewRedisReportCache(cfg config.RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReportCache{
		client:    client,
		keyPrefix: "report:",
	}, nil
}

// NewRedisReportCacheWithClient creates a cache with an existing client,
// useful in tests
func NewRedisReportCacheWithClient(client *redis.Client, keyPrefix string) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = "report:"
	}
	return &RedisReportCache{client: client, keyPrefix: keyPrefix}
}

// Get returns the cached payload for key, or ok=false on a miss
func (c *RedisReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read report cache: %w", err)
	}
	return payload, true, nil
}

// Set stores a payload under key for the given TTL
func (c *RedisReportCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write report cache: %w", err)
	}
	return nil
}

// Invalidate drops any cached payloads whose key starts with prefix
func (c *RedisReportCache) Invalidate(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate report cache: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan report cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// NewReportCache builds a ReportCache from configuration, preferring Redis
// and falling back to the in-memory cache when Redis is disabled or
// unreachable
func NewReportCache(cfg config.RedisConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return NewInMemoryReportCache(), nil
	}
	redisCache, err := NewRedisReportCache(cfg)
	if err != nil {
		return NewInMemoryReportCache(), err
	}
	return redisCache, nil
}

var _ ReportCache = (*RedisReportCache)(nil)
var _ ReportCache = (*InMemoryReportCache)(nil)
