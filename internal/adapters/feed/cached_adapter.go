package feed

import (
	"context"
	"sync"
	"time"

	"github.com/code4imabari/kyukyu-annai/internal/domain/entities"
	"github.com/code4imabari/kyukyu-annai/internal/domain/providers"
	"github.com/code4imabari/kyukyu-annai/internal/infrastructure/observability"
)

// CachedAdapter wraps a FeedProvider with a time-bounded cache. The cache is
// never content-invalidated: within the TTL every call returns the same
// document, after the TTL the next call refetches. A failed refetch keeps the
// cache empty (or expired) and surfaces the error.
type CachedAdapter struct {
	origin  providers.FeedProvider
	ttl     time.Duration
	now     func() time.Time
	metrics *observability.Metrics

	mu        sync.Mutex
	feed      *entities.Feed
	fetchedAt time.Time
}

// NewCachedAdapter creates a feed cache with the given TTL.
func NewCachedAdapter(origin providers.FeedProvider, ttl time.Duration, metrics *observability.Metrics) *CachedAdapter {
	return NewCachedAdapterWithClock(origin, ttl, metrics, time.Now)
}

// NewCachedAdapterWithClock injects the clock so expiry is testable without
// waiting on real time.
func NewCachedAdapterWithClock(origin providers.FeedProvider, ttl time.Duration, metrics *observability.Metrics, now func() time.Time) *CachedAdapter {
	return &CachedAdapter{
		origin:  origin,
		ttl:     ttl,
		now:     now,
		metrics: metrics,
	}
}

// Fetch returns the cached feed while it is fresh, refetching otherwise.
func (a *CachedAdapter) Fetch(ctx context.Context) (*entities.Feed, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.feed != nil && a.now().Sub(a.fetchedAt) < a.ttl {
		if a.metrics != nil {
			observability.RecordCacheHit(ctx, a.metrics, "feed")
		}
		return a.feed, nil
	}

	if a.metrics != nil {
		observability.RecordCacheMiss(ctx, a.metrics, "feed")
	}

	start := a.now()
	feed, err := a.origin.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if a.metrics != nil {
		observability.RecordFeedFetchMetric(ctx, a.metrics, a.now().Sub(start))
	}

	a.feed = feed
	a.fetchedAt = a.now()
	return a.feed, nil
}
