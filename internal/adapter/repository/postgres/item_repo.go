package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/infrastructure/postgres/generated"
)

// ItemRepository reads and updates the item master.
type ItemRepository struct {
	queries *generated.Queries
}

// NewItemRepository creates a new ItemRepository. db is usually a *pgxpool.Pool.
func NewItemRepository(db generated.DBTX) *ItemRepository {
	return &ItemRepository{queries: generated.New(db)}
}

// List returns all items ordered by code.
func (r *ItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.queries.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, rowToItem(row))
	}

	return items, nil
}

// UpdateSafetyStock sets the safety stock of exactly one item and returns
// the stored row.
func (r *ItemRepository) UpdateSafetyStock(ctx context.Context, code string, value int64) (*domain.Item, error) {
	row, err := r.queries.UpdateItemSafetyStock(ctx, generated.UpdateItemSafetyStockParams{
		SafetyStock: value,
		ItemCode:    code,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}

		return nil, err
	}

	item := rowToItem(row)
	return &item, nil
}

func rowToItem(row generated.Item) domain.Item {
	return domain.Item{
		Code:        row.ItemCode,
		Name:        row.ItemName,
		SafetyStock: row.SafetyStock,
	}
}
