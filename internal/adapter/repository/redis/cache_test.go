package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/stockledger/internal/domain"
)

func testLedger() *domain.Ledger {
	return domain.NewLedger(
		[]domain.Item{
			{Code: "A-100", Name: "Bolt", SafetyStock: 50},
			{Code: "B-200", Name: "Nut"},
		},
		[]domain.Transaction{
			{ID: 1, ItemCode: "A-100", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Description: "opening", InboundQty: 100},
			{ID: 2, ItemCode: "A-100", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Description: "shipment", OutboundQty: 30},
		},
		time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	)
}

func TestSnapshotCacheMiss(t *testing.T) {
	client, _ := newTestRedisClient(t)

	ledger, err := NewSnapshotCache(client).Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ledger)
}

func TestSnapshotCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)

	cache := NewSnapshotCache(client)
	ctx := context.Background()
	want := testLedger()

	require.NoError(t, cache.Set(ctx, want, time.Minute))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Items, got.Items)
	assert.Equal(t, want.Transactions, got.Transactions)
	assert.True(t, want.LoadedAt.Equal(got.LoadedAt))

	assert.Equal(t, time.Minute, mr.TTL(DefaultLedgerKey))
}

func TestSnapshotCacheExpires(t *testing.T) {
	client, mr := newTestRedisClient(t)

	cache := NewSnapshotCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, testLedger(), time.Minute))
	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotCacheDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)

	cache := NewSnapshotCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, testLedger(), time.Minute))
	require.NoError(t, cache.Delete(ctx))
	assert.False(t, mr.Exists(DefaultLedgerKey))

	// Deleting a missing key is not an error.
	require.NoError(t, cache.Delete(ctx))
}

func TestSnapshotCacheCorruptDocument(t *testing.T) {
	client, mr := newTestRedisClient(t)

	require.NoError(t, mr.Set(DefaultLedgerKey, "{not json"))

	_, err := NewSnapshotCache(client).Get(context.Background())
	assert.Error(t, err)
}

func TestSnapshotCacheUnavailable(t *testing.T) {
	client, mr := newTestRedisClient(t)
	mr.Close()

	cache := NewSnapshotCache(client)
	_, err := cache.Get(context.Background())
	assert.Error(t, err)
	assert.Error(t, cache.Delete(context.Background()))
}
