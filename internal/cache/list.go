// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// listKeyPrefix is the Valkey key prefix for cached list responses.
	listKeyPrefix = "list:"

	// DefaultListTTL is how long a list response stays cached.
	DefaultListTTL = 5 * time.Minute
)

// ListCache stores encoded list responses per resource and query. A nil
// *ListCache is valid and always misses, so the API runs without Valkey.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache creates a list cache backed by the given Valkey client.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl == 0 {
		ttl = DefaultListTTL
	}
	return &ListCache{client: client, ttl: ttl}
}

// Key builds a stable cache key from a query string: parameters are sorted
// so equivalent URLs share one entry.
func Key(scope string, q url.Values) string {
	return scope + "?" + q.Encode()
}

func listKey(resource, key string) string {
	return listKeyPrefix + resource + ":" + key
}

// Get returns the cached response for resource and key.
func (c *ListCache) Get(ctx context.Context, resource, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, listKey(resource, key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("list cache get error", "resource", resource, "key", key, "error", err)
		return nil, false
	}
	slog.Debug("list cache hit", "resource", resource, "key", key)
	return val, true
}

// Set stores a response with the configured TTL.
func (c *ListCache) Set(ctx context.Context, resource, key string, body []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, listKey(resource, key), body, c.ttl).Err(); err != nil {
		slog.Warn("list cache set error", "resource", resource, "key", key, "error", err)
	}
}

// Invalidate drops every cached response of resource. Called after any
// write so the next read sees the new collection.
func (c *ListCache) Invalidate(ctx context.Context, resource string) {
	if c == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, listKey(resource, "*"), 100).Result()
		if err != nil {
			slog.Warn("list cache scan error", "resource", resource, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("list cache bulk delete error", "resource", resource, "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("list cache invalidated", "resource", resource, "deleted", deleted)
	}
}
