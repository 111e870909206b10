package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ozgurk/ledgerlens/pkg/logger"
)

// Cache provides typed caching utilities on top of Client. It lives
// outside the aggregation engine: the engine itself recomputes every
// figure from source rows, the cache only shortcuts the HTTP layer.
type Cache struct {
	client *Client
	prefix string
	log    *logger.Logger
}

// NewCache creates a new cache helper.
func NewCache(client *Client, prefix string, log *logger.Logger) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
		log:    log,
	}
}

// Get retrieves a cached value.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.client.Enabled() {
		return false, nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	data, err := c.client.Redis().Get(ctx, fullKey).Bytes()
	if err != nil {
		// Key not found is not an error
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}

	return true, nil
}

// Set stores a value in cache with TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.client.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	return c.client.Redis().Set(ctx, fullKey, data, ttl).Err()
}

// Delete removes a cached value.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.client.Enabled() {
		return nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	return c.client.Redis().Del(ctx, fullKey).Err()
}

// GetOrSet retrieves from cache or calls fn to populate it.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, fn func() (interface{}, error)) error {
	found, err := c.Get(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	// Cache miss
	value, err := fn()
	if err != nil {
		return err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		// Losing the write only loses the shortcut; the computed
		// value still reaches the caller below.
		c.log.WithError(err).WithField("key", key).Warn("Cache write failed")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	return json.Unmarshal(data, dest)
}

// SummaryKey builds the cache key for a summary response.
func SummaryKey(firmNo, periodNo, from, to string) string {
	return fmt.Sprintf("summary:%s:%s:%s:%s", firmNo, periodNo, from, to)
}

// TrendKey builds the cache key for a trend response.
func TrendKey(firmNo, periodNo, granularity, from, to string) string {
	return fmt.Sprintf("trend:%s:%s:%s:%s:%s", firmNo, periodNo, granularity, from, to)
}

// TopKey builds the cache key for a top-N response.
func TopKey(firmNo, periodNo, kind string, n int, from, to string) string {
	return fmt.Sprintf("top:%s:%s:%s:%d:%s:%s", firmNo, periodNo, kind, n, from, to)
}
