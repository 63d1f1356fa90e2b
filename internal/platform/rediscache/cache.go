// Package rediscache provides a small JSON cache over Redis used to keep
// dashboard aggregates warm. Cache entries are advisory: a miss or a Redis
// outage degrades to recomputing from PostgreSQL, never to an error surfaced
// to the caller.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache errors
var (
	// ErrCacheMiss is returned when the requested key is not present.
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrCacheConnection is returned when the initial Redis ping fails.
	ErrCacheConnection = errors.New("cache: connection failed")

	// ErrCacheSerialization is returned when a value cannot be encoded or
	// decoded as JSON.
	ErrCacheSerialization = errors.New("cache: serialization failed")
)

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// Cache wraps a Redis client with JSON serialization and key namespacing.
type Cache struct {
	client *redis.Client
	logger *slog.Logger
}

// New connects to Redis and verifies the connection with a ping.
// If logger is nil, a default logger will be used.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	return &Cache{
		client: client,
		logger: logger.With(slog.String("component", "rediscache")),
	}, nil
}

// Close closes the underlying Redis connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Ping checks whether Redis is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Set stores a value under key with the given TTL. The value is encoded as
// JSON. A zero TTL stores the key without expiry.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %q: %w", key, err)
	}

	return nil
}

// Get retrieves a value by key and decodes it into dest.
// Returns ErrCacheMiss when the key does not exist.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache key %q: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}

	return nil
}

// Delete removes the given keys. Missing keys are not an error.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}

	return nil
}

// DeleteByPrefix removes every key matching prefix followed by any suffix.
// Used to invalidate all of a user's dashboard entries after a review
// completion changes the underlying history.
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys with prefix %q: %w", prefix, err)
	}

	return c.Delete(ctx, keys...)
}
