package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/stockledger/internal/domain"
)

// DefaultLedgerKey is the key the bulk-loaded ledger is stored under.
const DefaultLedgerKey = "stockledger:ledger"

// SnapshotCache implements usecase.SnapshotCache using Redis. The whole
// ledger is stored as one JSON document.
type SnapshotCache struct {
	client *redis.Client
	key    string
}

// NewSnapshotCache creates a new SnapshotCache.
func NewSnapshotCache(client *redis.Client) *SnapshotCache {
	return &SnapshotCache{
		client: client,
		key:    DefaultLedgerKey,
	}
}

type cachedItem struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	SafetyStock int64  `json:"safety_stock"`
}

type cachedTransaction struct {
	ID          int64  `json:"id"`
	ItemCode    string `json:"item_code"`
	Date        string `json:"date"`
	Description string `json:"description"`
	InboundQty  int64  `json:"inbound_qty"`
	OutboundQty int64  `json:"outbound_qty"`
}

type cachedLedger struct {
	Items        []cachedItem        `json:"items"`
	Transactions []cachedTransaction `json:"transactions"`
	LoadedAt     time.Time           `json:"loaded_at"`
}

// Get returns the stored ledger, or (nil, nil) when nothing is stored.
func (c *SnapshotCache) Get(ctx context.Context) (*domain.Ledger, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var doc cachedLedger
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode cached ledger: %w", err)
	}

	items := make([]domain.Item, 0, len(doc.Items))
	for _, it := range doc.Items {
		items = append(items, domain.Item{Code: it.Code, Name: it.Name, SafetyStock: it.SafetyStock})
	}

	txns := make([]domain.Transaction, 0, len(doc.Transactions))
	for _, t := range doc.Transactions {
		date, err := time.Parse(domain.DateLayout, t.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to decode cached transaction %d: %w", t.ID, err)
		}
		txns = append(txns, domain.Transaction{
			ID:          t.ID,
			ItemCode:    t.ItemCode,
			Date:        date,
			Description: t.Description,
			InboundQty:  t.InboundQty,
			OutboundQty: t.OutboundQty,
		})
	}

	return domain.NewLedger(items, txns, doc.LoadedAt), nil
}

// Set stores the ledger for ttl.
func (c *SnapshotCache) Set(ctx context.Context, ledger *domain.Ledger, ttl time.Duration) error {
	doc := cachedLedger{
		Items:        make([]cachedItem, 0, len(ledger.Items)),
		Transactions: make([]cachedTransaction, 0, len(ledger.Transactions)),
		LoadedAt:     ledger.LoadedAt,
	}
	for _, code := range ledger.ItemCodes() {
		it := ledger.Items[code]
		doc.Items = append(doc.Items, cachedItem{Code: it.Code, Name: it.Name, SafetyStock: it.SafetyStock})
	}
	for _, t := range ledger.Transactions {
		doc.Transactions = append(doc.Transactions, cachedTransaction{
			ID:          t.ID,
			ItemCode:    t.ItemCode,
			Date:        t.Date.Format(domain.DateLayout),
			Description: t.Description,
			InboundQty:  t.InboundQty,
			OutboundQty: t.OutboundQty,
		})
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	return c.client.Set(ctx, c.key, raw, ttl).Err()
}

// Delete removes the stored ledger.
func (c *SnapshotCache) Delete(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
