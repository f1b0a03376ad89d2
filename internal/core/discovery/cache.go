// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discovery

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/text/cases"

	"github.com/taibuivan/sommelier/internal/core/match"
	"github.com/taibuivan/sommelier/internal/core/wine"
	"github.com/taibuivan/sommelier/internal/platform/constants"
	"github.com/taibuivan/sommelier/internal/platform/metrics"
)

// scanBatch is the COUNT hint for SCAN during invalidation.
const scanBatch = 500

// # Facet Cache

// FacetCache stores [FacetCounts] in Redis, keyed by snapshot version and a
// digest of the query.
//
// The cache is best effort: Redis failures are logged and treated as misses,
// never surfaced to the caller. A nil *FacetCache is valid and caches nothing.
type FacetCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewFacetCache creates a cache over an existing Redis client.
func NewFacetCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *FacetCache {
	return &FacetCache{client: client, ttl: ttl, logger: logger}
}

// FacetKey returns the Redis key for a query against a snapshot version.
//
// Equivalent queries (same dimensions after normalisation) share a key.
func FacetKey(version uint64, query match.Query) string {
	canonical := strings.Join([]string{
		query.Category.String(),
		query.Price.String(),
		strings.Join(query.Traits.Labels(), ","),
		strconv.Itoa(query.MinRating),
		cases.Fold().String(strings.TrimSpace(query.Search)),
		strings.Join(query.Types.Labels(), ","),
	}, "|")

	digest := sha256.Sum256([]byte(canonical))
	return fmt.Sprintf("%s%d:%s", constants.RedisPrefixFacets, version, hex.EncodeToString(digest[:12]))
}

// Get returns cached counts, or false on a miss or a Redis failure.
func (cache *FacetCache) Get(context context.Context, version uint64, query match.Query) (*FacetCounts, bool) {
	if cache == nil {
		return nil, false
	}

	payload, err := cache.client.Get(context, FacetKey(version, query)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordFacetLookup("miss")
		return nil, false
	}
	if err != nil {
		metrics.RecordFacetLookup("error")
		cache.logger.Warn("facet_cache_read_failed", slog.Any("error", err))
		return nil, false
	}

	var counts FacetCounts
	if err := json.Unmarshal(payload, &counts); err != nil {
		metrics.RecordFacetLookup("error")
		cache.logger.Warn("facet_cache_decode_failed", slog.Any("error", err))
		return nil, false
	}

	metrics.RecordFacetLookup("hit")
	return &counts, true
}

// Set stores counts under the query's key with the configured TTL.
func (cache *FacetCache) Set(context context.Context, version uint64, query match.Query, counts *FacetCounts) {
	if cache == nil {
		return
	}

	payload, err := json.Marshal(counts)
	if err != nil {
		cache.logger.Warn("facet_cache_encode_failed", slog.Any("error", err))
		return
	}

	if err := cache.client.Set(context, FacetKey(version, query), payload, cache.ttl).Err(); err != nil {
		cache.logger.Warn("facet_cache_write_failed", slog.Any("error", err))
	}
}

/*
Invalidate drops every cached facet entry. It has the [wine.SwapHook]
signature so it can be registered with [wine.Provider.OnSwap].

Parameters:
  - context: context.Context
  - snapshot: *wine.Snapshot (the snapshot that just became current)
*/
func (cache *FacetCache) Invalidate(context context.Context, snapshot *wine.Snapshot) {
	if cache == nil {
		return
	}

	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := cache.client.Scan(context, cursor, constants.RedisPrefixFacets+"*", scanBatch).Result()
		if err != nil {
			cache.logger.Warn("facet_cache_invalidate_failed", slog.Any("error", err))
			return
		}

		if len(keys) > 0 {
			if err := cache.client.Del(context, keys...).Err(); err != nil {
				cache.logger.Warn("facet_cache_invalidate_failed", slog.Any("error", err))
				return
			}
			removed += len(keys)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	cache.logger.Debug("facet_cache_invalidated",
		slog.Uint64("version", snapshot.Version()),
		slog.Int("removed", removed),
	)
}
