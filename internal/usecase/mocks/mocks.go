package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/iho/stockledger/internal/domain"
)

// FakeLedgerStore is an in-memory LedgerStore.
type FakeLedgerStore struct {
	mu           sync.RWMutex
	items        map[string]domain.Item
	transactions []domain.Transaction

	LoadCalls   int
	UpdateCalls int

	LoadFunc              func(ctx context.Context) (*domain.Ledger, error)
	UpdateSafetyStockFunc func(ctx context.Context, itemCode string, value int64) (*domain.Item, error)
}

func NewFakeLedgerStore(items []domain.Item, txns []domain.Transaction) *FakeLedgerStore {
	byCode := make(map[string]domain.Item, len(items))
	for _, it := range items {
		byCode[it.Code] = it
	}
	return &FakeLedgerStore{
		items:        byCode,
		transactions: append([]domain.Transaction(nil), txns...),
	}
}

func (f *FakeLedgerStore) Load(ctx context.Context) (*domain.Ledger, error) {
	f.mu.Lock()
	f.LoadCalls++
	f.mu.Unlock()

	if f.LoadFunc != nil {
		return f.LoadFunc(ctx)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	items := make([]domain.Item, 0, len(f.items))
	for _, it := range f.items {
		items = append(items, it)
	}
	return domain.NewLedger(items, append([]domain.Transaction(nil), f.transactions...), time.Time{}), nil
}

func (f *FakeLedgerStore) UpdateSafetyStock(ctx context.Context, itemCode string, value int64) (*domain.Item, error) {
	f.mu.Lock()
	f.UpdateCalls++
	f.mu.Unlock()

	if f.UpdateSafetyStockFunc != nil {
		return f.UpdateSafetyStockFunc(ctx, itemCode, value)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[itemCode]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	it.SafetyStock = value
	f.items[itemCode] = it
	return &it, nil
}

// Item returns the stored item, for assertions.
func (f *FakeLedgerStore) Item(code string) (domain.Item, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	it, ok := f.items[code]
	return it, ok
}

// FakeSnapshotCache is an in-memory SnapshotCache that ignores TTLs.
type FakeSnapshotCache struct {
	mu     sync.Mutex
	ledger *domain.Ledger

	GetErr    error
	SetErr    error
	DeleteErr error

	SetCalls    int
	DeleteCalls int
}

func NewFakeSnapshotCache() *FakeSnapshotCache {
	return &FakeSnapshotCache{}
}

func (f *FakeSnapshotCache) Get(ctx context.Context) (*domain.Ledger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	return f.ledger, nil
}

func (f *FakeSnapshotCache) Set(ctx context.Context, ledger *domain.Ledger, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetCalls++
	if f.SetErr != nil {
		return f.SetErr
	}
	f.ledger = ledger
	return nil
}

func (f *FakeSnapshotCache) Delete(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.ledger = nil
	return nil
}

// Stored returns the cached ledger, for assertions.
func (f *FakeSnapshotCache) Stored() *domain.Ledger {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ledger
}
