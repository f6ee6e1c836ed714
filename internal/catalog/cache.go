package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"laraibcreative.com/store-web/internal/metrics"
)

const (
	defaultCacheTTL   = 2 * time.Minute
	cacheFetchTimeout = 15 * time.Second
)

// CachedCatalog is a read-through Redis cache over another Service.
// Concurrent identical queries collapse into one upstream fetch via
// singleflight, and Redis failures degrade to the inner service so the
// cache can never take the listing down.
type CachedCatalog struct {
	inner Service
	rdb   *redis.Client
	ttl   time.Duration
	group singleflight.Group
}

// NewCachedCatalog wraps inner with a Redis cache. A non-positive ttl
// falls back to the default.
func NewCachedCatalog(inner Service, rdb *redis.Client, ttl time.Duration) *CachedCatalog {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedCatalog{inner: inner, rdb: rdb, ttl: ttl}
}

// List implements Service.
func (c *CachedCatalog) List(ctx context.Context, state FilterState) (ListResult, error) {
	state = state.normalize()
	key := listKey(state)

	if cached, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var result ListResult
		if jsonErr := json.Unmarshal(cached, &result); jsonErr == nil {
			metrics.CacheHits.Inc()
			return result, nil
		}
		// Unreadable entry: fall through and rewrite it.
	} else if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
		return ListResult{}, ctx.Err()
	}
	metrics.CacheMisses.Inc()

	value, err, _ := c.group.Do(key, func() (any, error) {
		// The collapsed fetch serves every caller on the key, so it must
		// not die with the caller that happened to initiate it. It runs
		// detached with its own deadline instead.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheFetchTimeout)
		defer cancel()

		result, err := c.inner.List(fetchCtx, state)
		if err != nil {
			return ListResult{}, err
		}
		if encoded, jsonErr := json.Marshal(result); jsonErr == nil {
			// Best effort; a failed SET only costs the next reader a fetch.
			c.rdb.Set(fetchCtx, key, encoded, c.ttl)
		}
		return result, nil
	})
	if err != nil {
		return ListResult{}, err
	}
	return value.(ListResult), nil
}

// Get implements Service. Detail lookups pass through uncached; the grid
// is the hot path, not the detail page.
func (c *CachedCatalog) Get(ctx context.Context, slug string) (Product, error) {
	return c.inner.Get(ctx, slug)
}

// Invalidate drops the cached pages for every state that shares the given
// key prefix. Exposed for operational tooling; the TTL handles the common
// case.
func (c *CachedCatalog) Invalidate(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, listKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

const listKeyPrefix = "catalog:list:"

// listKey derives a stable cache key from the canonical API query, which
// already encodes every field that affects the result (including page and
// limit).
func listKey(state FilterState) string {
	return listKeyPrefix + APIQuery(state).Encode()
}
