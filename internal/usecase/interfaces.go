package usecase

import (
	"context"
	"time"

	"github.com/iho/stockledger/internal/domain"
)

// LedgerStore is the backing store for the item master and transaction history.
type LedgerStore interface {
	// Load fetches the full item master and every transaction.
	Load(ctx context.Context) (*domain.Ledger, error)
	// UpdateSafetyStock writes a single item's safety stock using bound
	// parameters. Returns domain.ErrItemNotFound when no row matches.
	UpdateSafetyStock(ctx context.Context, itemCode string, value int64) (*domain.Item, error)
}

// SnapshotCache memoizes bulk-load results across processes.
type SnapshotCache interface {
	// Get returns (nil, nil) on a miss.
	Get(ctx context.Context) (*domain.Ledger, error)
	Set(ctx context.Context, ledger *domain.Ledger, ttl time.Duration) error
	Delete(ctx context.Context) error
}

// LedgerSource hands out the current ledger and drops it on demand.
type LedgerSource interface {
	Get(ctx context.Context) (*domain.Ledger, error)
	Invalidate(ctx context.Context) error
}

// MetricsRecorder receives service-level measurements.
type MetricsRecorder interface {
	ObserveLedgerLoad(duration time.Duration, err error)
	IncCacheLookup(layer, result string)
	IncSafetyStockUpdate(result string)
	SetShortageItems(n int)
}

// IdempotencyStore remembers responses to keyed write requests.
type IdempotencyStore interface {
	// Reserve claims key for an in-flight request. When the key is already
	// taken it returns reserved=false with the stored record, which is nil
	// while the first request is still running.
	Reserve(ctx context.Context, key string, ttl time.Duration) (reserved bool, record []byte, err error)
	// Complete stores the final response record for key.
	Complete(ctx context.Context, key string, record []byte, ttl time.Duration) error
	// Release drops a reservation so the request may be sent again.
	Release(ctx context.Context, key string) error
}

// NopMetrics discards all measurements.
type NopMetrics struct{}

func (NopMetrics) ObserveLedgerLoad(time.Duration, error) {}
func (NopMetrics) IncCacheLookup(string, string)          {}
func (NopMetrics) IncSafetyStockUpdate(string)            {}
func (NopMetrics) SetShortageItems(int)                   {}
