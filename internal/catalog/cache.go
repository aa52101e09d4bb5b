package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
	"github.com/osse101/SpellcastersBot_Go/internal/logger"
	"github.com/osse101/SpellcastersBot_Go/internal/metrics"
)

// CacheState describes the cache lifecycle.
type CacheState string

const (
	StateEmpty    CacheState = "empty"
	StateFresh    CacheState = "fresh"
	StateStale    CacheState = "stale"
	StateFetching CacheState = "fetching"
)

// Cache owns the current Store and coalesces concurrent refreshes into a
// single upstream fetch.
//
// mu guards the decision to serve, start or join a fetch. The fetching flag is
// true exactly while a call for fetchKey is registered in group, so a caller
// that observes "no fetch in flight" under mu can never miss one that is
// starting.
type Cache struct {
	fetcher      Fetcher
	ttl          time.Duration
	fetchTimeout time.Duration
	threshold    float64
	now          func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	store     *Store
	fetchedAt time.Time
	fetching  bool
	lastErr   error
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL sets how long a dataset is served before it is refetched.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = ttl }
}

// WithFetchTimeout bounds a single upstream fetch.
func WithFetchTimeout(d time.Duration) CacheOption {
	return func(c *Cache) { c.fetchTimeout = d }
}

// WithSearchThreshold sets the fuzzy match threshold of every Store built.
// Values outside (0, 1] are ignored with a warning.
func WithSearchThreshold(threshold float64) CacheOption {
	return func(c *Cache) {
		if !validThreshold(threshold) {
			slog.Warn(LogMsgInvalidThreshold, "threshold", threshold, "using", c.threshold)
			return
		}
		c.threshold = threshold
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// NewCache creates an empty cache. Nothing is fetched until the first Get.
func NewCache(fetcher Fetcher, opts ...CacheOption) *Cache {
	c := &Cache{
		fetcher:      fetcher,
		ttl:          domain.DefaultCacheTTL,
		fetchTimeout: domain.DefaultFetchTimeout,
		threshold:    domain.DefaultSearchThreshold,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the current Store, fetching when the cache is empty, stale or
// force is set. Concurrent callers share one fetch and receive the same Store
// or the same error. A caller whose ctx ends stops waiting, but the fetch runs
// to completion and still updates the cache.
func (c *Cache) Get(ctx context.Context, force bool) (*Store, error) {
	c.mu.Lock()
	switch {
	case c.fetching:
		metrics.CatalogCacheRequests.WithLabelValues(metrics.CacheOutcomeCoalesced).Inc()
	case force:
		metrics.CatalogCacheRequests.WithLabelValues(metrics.CacheOutcomeForced).Inc()
	case c.store == nil:
		metrics.CatalogCacheRequests.WithLabelValues(metrics.CacheOutcomeMiss).Inc()
	case c.isExpired():
		metrics.CatalogCacheRequests.WithLabelValues(metrics.CacheOutcomeStale).Inc()
	default:
		store := c.store
		c.mu.Unlock()
		metrics.CatalogCacheRequests.WithLabelValues(metrics.CacheOutcomeHit).Inc()
		return store, nil
	}

	c.fetching = true
	ch := c.group.DoChan(fetchKey, func() (interface{}, error) {
		return c.refresh(ctx)
	})
	c.mu.Unlock()

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Store), nil
	case <-ctx.Done():
		logger.FromContext(ctx).Debug(LogMsgCallerCancelled, "error", ctx.Err())
		return nil, ctx.Err()
	}
}

// refresh runs one fetch on a context detached from the caller that started it
func (c *Cache) refresh(callerCtx context.Context) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(callerCtx), c.fetchTimeout)
	defer cancel()

	log := logger.FromContext(ctx)
	log.Info(LogMsgFetchStarted)

	start := time.Now()
	ds, err := c.fetcher.Fetch(ctx)
	metrics.CatalogFetchDuration.Observe(time.Since(start).Seconds())

	var store *Store
	if err == nil {
		store = NewStore(ds, c.threshold)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetching = false
	// Later callers must start a new fetch rather than join this finished one
	c.group.Forget(fetchKey)

	if err != nil {
		c.lastErr = err
		metrics.CatalogFetches.WithLabelValues(fetchResult(err)).Inc()
		log.Error(LogMsgFetchFailed, "error", err, "had_data", c.store != nil)
		return nil, err
	}

	c.store = store
	c.fetchedAt = c.now()
	c.lastErr = nil
	recordStoreMetrics(store, c.fetchedAt)
	log.Info(LogMsgFetchSucceeded,
		"version", store.BuildInfo().Version,
		"entities", store.Len(),
		"name_collisions", len(store.NameCollisions()))
	return store, nil
}

func (c *Cache) isExpired() bool {
	return c.now().Sub(c.fetchedAt) >= c.ttl
}

// Snapshot returns the current Store without any I/O, or nil when nothing
// has been loaded yet.
func (c *Cache) Snapshot() *Store {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store
}

// State reports the cache lifecycle state.
func (c *Cache) State() CacheState {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.fetching:
		return StateFetching
	case c.store == nil:
		return StateEmpty
	case c.isExpired():
		return StateStale
	default:
		return StateFresh
	}
}

// FetchedAt returns the time of the last successful fetch.
func (c *Cache) FetchedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchedAt
}

// LastError returns the error of the most recent fetch, or nil if it succeeded.
func (c *Cache) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// TTL returns the configured time to live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func fetchResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrNetworkFailure):
		return metrics.FetchResultNetworkError
	case errors.Is(err, domain.ErrValidationFailure):
		return metrics.FetchResultValidationError
	default:
		return metrics.FetchResultError
	}
}

func recordStoreMetrics(store *Store, fetchedAt time.Time) {
	metrics.CatalogFetches.WithLabelValues(metrics.FetchResultSuccess).Inc()
	for t, n := range store.Dataset().Counts() {
		metrics.CatalogEntities.WithLabelValues(string(t)).Set(float64(n))
	}
	metrics.CatalogNameCollisions.Set(float64(len(store.NameCollisions())))
	metrics.CatalogLastFetch.Set(float64(fetchedAt.Unix()))
}
