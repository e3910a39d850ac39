package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLList is used when a service is built without a TTL
const TTLList = 1 * time.Minute

// Key prefixes
const (
	PrefixAssets       = "assets:"
	PrefixGallery      = "gallery:"
	PrefixLeaderboards = "leaderboards:"
	PrefixModerators   = "moderators:"
	PrefixTeam         = "team:"
)

// Prefixes lists every prefix the services cache lists under
var Prefixes = []string{PrefixAssets, PrefixGallery, PrefixLeaderboards, PrefixModerators, PrefixTeam}

// ErrUnavailable is returned by Get when no Redis client is configured
var ErrUnavailable = errors.New("redis not available")

// Service is a JSON cache over Redis. A Service built from a nil client is
// valid: reads miss and writes are dropped.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) error
	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a cache service. client may be nil.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether a Redis client is configured
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping checks the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return ErrUnavailable
	}
	return c.client.Ping(ctx).Err()
}

// Get decodes the cached value at key into dest
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrUnavailable
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set stores value at key as JSON
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// InvalidatePrefix removes every key starting with prefix
func (c *redisCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// InvalidateAll drops every cached list, e.g. after the tables were reseeded
func InvalidateAll(ctx context.Context, c Service) error {
	for _, prefix := range Prefixes {
		if err := c.InvalidatePrefix(ctx, prefix); err != nil {
			return fmt.Errorf("invalidate %s: %w", prefix, err)
		}
	}
	return nil
}

// GetOrLoad returns the cached value at key, or calls load and caches its
// result. Cache failures never fail the call; load errors are returned as is
// and are not cached.
func GetOrLoad[T any](ctx context.Context, c Service, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, bool, error) {
	var cached T
	if c != nil && c.IsAvailable() {
		if err := c.Get(ctx, key, &cached); err == nil {
			return cached, true, nil
		}
	}

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	if c != nil {
		c.Set(ctx, key, v, ttl) //nolint:errcheck
	}
	return v, false, nil
}

// Key joins a prefix and parts into a cache key
func Key(prefix string, parts ...interface{}) string {
	key := prefix
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += fmt.Sprint(p)
	}
	return key
}
