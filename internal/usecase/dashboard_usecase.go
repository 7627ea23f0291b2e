package usecase

import (
	"context"
	"fmt"

	"github.com/iho/stockledger/internal/domain"
)

// ItemStockReport is everything the dashboard shows for one item.
type ItemStockReport struct {
	Item     domain.Item
	Snapshot domain.StockSnapshot
	Balances []domain.BalanceRow
}

// DashboardUseCase handles read-side dashboard logic.
type DashboardUseCase struct {
	ledger  LedgerSource
	metrics MetricsRecorder
}

// NewDashboardUseCase creates a new DashboardUseCase.
func NewDashboardUseCase(ledger LedgerSource, metrics MetricsRecorder) *DashboardUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &DashboardUseCase{
		ledger:  ledger,
		metrics: metrics,
	}
}

// ListItems returns the item master sorted by code.
func (uc *DashboardUseCase) ListItems(ctx context.Context) ([]domain.Item, error) {
	ledger, err := uc.ledger.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	items := make([]domain.Item, 0, len(ledger.Items))
	for _, code := range ledger.ItemCodes() {
		items = append(items, ledger.Items[code])
	}

	return items, nil
}

// GetItemStock computes the stock report for one item.
func (uc *DashboardUseCase) GetItemStock(ctx context.Context, itemCode string) (*ItemStockReport, error) {
	if err := domain.ValidateItemCode(itemCode); err != nil {
		return nil, err
	}

	ledger, err := uc.ledger.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	item, ok := ledger.Item(itemCode)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemCode)
	}

	return buildReport(item, ledger.TransactionsFor(itemCode)), nil
}

// ListShortages returns reports for every item at or below its safety stock.
func (uc *DashboardUseCase) ListShortages(ctx context.Context) ([]*ItemStockReport, error) {
	ledger, err := uc.ledger.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	byItem := make(map[string][]domain.Transaction, len(ledger.Items))
	for _, t := range ledger.Transactions {
		byItem[t.ItemCode] = append(byItem[t.ItemCode], t)
	}

	var shortages []*ItemStockReport
	for _, code := range ledger.ItemCodes() {
		report := buildReport(ledger.Items[code], byItem[code])
		if report.Snapshot.IsShortage {
			shortages = append(shortages, report)
		}
	}

	uc.metrics.SetShortageItems(len(shortages))

	return shortages, nil
}

// Reload drops cached data and loads the ledger again.
func (uc *DashboardUseCase) Reload(ctx context.Context) (*domain.Ledger, error) {
	if err := uc.ledger.Invalidate(ctx); err != nil {
		return nil, fmt.Errorf("invalidate ledger cache: %w", err)
	}

	ledger, err := uc.ledger.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	return ledger, nil
}

func buildReport(item domain.Item, txns []domain.Transaction) *ItemStockReport {
	return &ItemStockReport{
		Item:     item,
		Snapshot: domain.ComputeSnapshot(txns, item.SafetyStock),
		Balances: domain.ComputeRunningBalances(domain.SortByDate(txns)),
	}
}
