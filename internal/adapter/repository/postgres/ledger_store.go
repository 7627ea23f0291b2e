package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/infrastructure/postgres/generated"
)

// LedgerStore implements usecase.LedgerStore on top of the item and
// transaction repositories. Every call goes through a circuit breaker and
// runs under its own timeout. Calls are never retried.
type LedgerStore struct {
	items   *ItemRepository
	txns    *TransactionRepository
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
	now     func() time.Time
}

// LedgerStoreOption customizes a LedgerStore.
type LedgerStoreOption func(*LedgerStore)

// WithStoreClock overrides the clock used to stamp loaded ledgers.
func WithStoreClock(now func() time.Time) LedgerStoreOption {
	return func(s *LedgerStore) {
		s.now = now
	}
}

// NewLedgerStore creates a LedgerStore. A zero timeout disables the per-call deadline.
func NewLedgerStore(db generated.DBTX, cb *gobreaker.CircuitBreaker, timeout time.Duration, opts ...LedgerStoreOption) *LedgerStore {
	s := &LedgerStore{
		items:   NewItemRepository(db),
		txns:    NewTransactionRepository(db),
		breaker: cb,
		timeout: timeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the item master and every transaction.
func (s *LedgerStore) Load(ctx context.Context) (*domain.Ledger, error) {
	result, err := s.execute(ctx, func(ctx context.Context) (any, error) {
		items, err := s.items.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load items: %w", err)
		}

		txns, err := s.txns.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load transactions: %w", err)
		}

		return domain.NewLedger(items, txns, s.now()), nil
	})
	if err != nil {
		log.Error().Err(err).Msg("ledger load failed")
		return nil, unavailable(err)
	}

	return result.(*domain.Ledger), nil
}

// UpdateSafetyStock writes one item's safety stock.
func (s *LedgerStore) UpdateSafetyStock(ctx context.Context, itemCode string, value int64) (*domain.Item, error) {
	result, err := s.execute(ctx, func(ctx context.Context) (any, error) {
		return s.items.UpdateSafetyStock(ctx, itemCode, value)
	})
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, err
		}
		return nil, unavailable(fmt.Errorf("failed to update safety stock: %w", err))
	}

	return result.(*domain.Item), nil
}

func (s *LedgerStore) execute(ctx context.Context, fn func(context.Context) (any, error)) (any, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if s.breaker == nil {
		return fn(ctx)
	}

	return s.breaker.Execute(func() (any, error) {
		return fn(ctx)
	})
}

func unavailable(err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}
