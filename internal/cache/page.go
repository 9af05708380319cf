// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "folio:page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute

	// scanBatch is the SCAN count hint and the UNLINK batch size.
	scanBatch = 100
)

// Pages is the subset of PageCache used by handlers. A nil Pages disables
// caching.
type Pages interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte)
}

// PageCache stores fully rendered static pages in Valkey. Blog data is
// never cached here; every blog request goes to the backend.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get returns the cached HTML for key. A Valkey error is logged and
// reported as a miss, so the page is rendered fresh.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	html, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	switch {
	case err == nil:
		return html, true
	case errors.Is(err, redis.Nil):
		slog.DebugContext(ctx, "page cache miss", "key", key)
	default:
		slog.WarnContext(ctx, "page cache get error", "key", key, "error", err)
	}
	return nil, false
}

// Set stores rendered HTML under key for the cache TTL. Failures are logged
// only; the response has already been produced.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	err := pc.client.SetArgs(ctx, pageKeyPrefix+key, html, redis.SetArgs{TTL: pc.ttl}).Err()
	if err != nil {
		slog.WarnContext(ctx, "page cache set error", "key", key, "error", err)
	}
}

// InvalidateAll drops every cached page. It runs at startup, since a new
// profile or template set can change every page. Keys outside the page
// prefix are left alone.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	iter := pc.client.Scan(ctx, 0, pageKeyPrefix+"*", scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	var dropped int

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := pc.client.Unlink(ctx, batch...).Err(); err != nil {
			slog.WarnContext(ctx, "page cache unlink error", "keys", len(batch), "error", err)
		} else {
			dropped += len(batch)
		}
		batch = batch[:0]
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			flush()
		}
	}
	flush()

	if err := iter.Err(); err != nil {
		slog.WarnContext(ctx, "page cache scan error", "error", err)
	}
	slog.InfoContext(ctx, "page cache reset", "dropped", dropped)
}

// AboutKey returns the cache key for the About page.
func AboutKey() string {
	return "about"
}
