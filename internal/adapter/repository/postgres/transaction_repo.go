package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/infrastructure/postgres/generated"
)

// TransactionRepository reads stock transactions.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// List returns every transaction ordered by item, date and id.
func (r *TransactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := r.queries.ListStockTransactions(ctx)
	if err != nil {
		return nil, err
	}

	return rowsToTransactions(rows), nil
}

func rowsToTransactions(rows []generated.StockTransaction) []domain.Transaction {
	txns := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		txns = append(txns, domain.Transaction{
			ID:          row.ID,
			ItemCode:    row.ItemCode,
			Date:        pgDateToTime(row.TxnDate),
			Description: row.Description,
			InboundQty:  row.InboundQty,
			OutboundQty: row.OutboundQty,
		})
	}
	return txns
}

func pgDateToTime(d pgtype.Date) time.Time {
	if !d.Valid {
		return time.Time{}
	}
	t := d.Time
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
