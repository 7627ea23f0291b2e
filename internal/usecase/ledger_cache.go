package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/stockledger/internal/domain"
)

// LedgerCache memoizes LedgerStore.Load for a fixed TTL, first in process and
// then in an optional shared SnapshotCache. Entries are dropped only by TTL
// expiry or an explicit Invalidate.
type LedgerCache struct {
	store   LedgerStore
	shared  SnapshotCache
	ttl     time.Duration
	now     func() time.Time
	metrics MetricsRecorder

	mu    sync.Mutex
	local *domain.Ledger
	// bypassSharedUntil is set when deleting the shared copy failed, so this
	// process does not read back a value it knows to be stale.
	bypassSharedUntil time.Time
}

// LedgerCacheOption configures a LedgerCache.
type LedgerCacheOption func(*LedgerCache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) LedgerCacheOption {
	return func(c *LedgerCache) { c.now = now }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) LedgerCacheOption {
	return func(c *LedgerCache) { c.metrics = m }
}

// NewLedgerCache creates a LedgerCache. shared may be nil.
func NewLedgerCache(store LedgerStore, shared SnapshotCache, ttl time.Duration, opts ...LedgerCacheOption) *LedgerCache {
	if ttl <= 0 {
		ttl = DefaultLedgerCacheTTL
	}

	c := &LedgerCache{
		store:   store,
		shared:  shared,
		ttl:     ttl,
		now:     time.Now,
		metrics: NopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns a ledger no older than the TTL, loading it if needed.
// A failed load leaves nothing cached.
func (c *LedgerCache) Get(ctx context.Context) (*domain.Ledger, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if c.local != nil && c.fresh(c.local, now) {
		c.metrics.IncCacheLookup(CacheLayerLocal, CacheResultHit)
		return c.local, nil
	}
	c.metrics.IncCacheLookup(CacheLayerLocal, CacheResultMiss)
	c.local = nil

	if c.useShared(now) {
		ledger, err := c.shared.Get(ctx)
		switch {
		case err != nil:
			c.metrics.IncCacheLookup(CacheLayerShared, CacheResultError)
			log.Warn().Err(err).Msg("shared ledger cache read failed, loading from store")
		case ledger != nil && c.fresh(ledger, now):
			c.metrics.IncCacheLookup(CacheLayerShared, CacheResultHit)
			c.local = ledger
			return ledger, nil
		default:
			c.metrics.IncCacheLookup(CacheLayerShared, CacheResultMiss)
		}
	}

	start := c.now()
	ledger, err := c.store.Load(ctx)
	c.metrics.ObserveLedgerLoad(c.now().Sub(start), err)
	if err != nil {
		return nil, err
	}

	if ledger.LoadedAt.IsZero() {
		ledger.LoadedAt = now
	}
	c.local = ledger

	if c.useShared(now) {
		if err := c.shared.Set(ctx, ledger, c.ttl); err != nil {
			log.Warn().Err(err).Msg("failed to store ledger in shared cache")
		}
	}

	log.Debug().
		Int("items", len(ledger.Items)).
		Int("transactions", len(ledger.Transactions)).
		Msg("ledger loaded from store")

	return ledger, nil
}

// Invalidate drops every cached copy. The in-process copy is always dropped,
// even when the shared delete fails.
func (c *LedgerCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.local = nil

	if c.shared == nil {
		return nil
	}

	if err := c.shared.Delete(ctx); err != nil {
		c.bypassSharedUntil = c.now().Add(c.ttl)
		return err
	}

	c.bypassSharedUntil = time.Time{}
	return nil
}

func (c *LedgerCache) fresh(ledger *domain.Ledger, now time.Time) bool {
	return now.Sub(ledger.LoadedAt) < c.ttl
}

func (c *LedgerCache) useShared(now time.Time) bool {
	return c.shared != nil && !now.Before(c.bypassSharedUntil)
}
