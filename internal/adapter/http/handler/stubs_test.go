package handler

import (
	"context"
	"time"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

type dashboardServiceStub struct {
	listItemsFn     func(ctx context.Context) ([]domain.Item, error)
	getItemStockFn  func(ctx context.Context, itemCode string) (*usecase.ItemStockReport, error)
	listShortagesFn func(ctx context.Context) ([]*usecase.ItemStockReport, error)
	reloadFn        func(ctx context.Context) (*domain.Ledger, error)
}

func (s *dashboardServiceStub) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.listItemsFn(ctx)
}

func (s *dashboardServiceStub) GetItemStock(ctx context.Context, itemCode string) (*usecase.ItemStockReport, error) {
	return s.getItemStockFn(ctx, itemCode)
}

func (s *dashboardServiceStub) ListShortages(ctx context.Context) ([]*usecase.ItemStockReport, error) {
	return s.listShortagesFn(ctx)
}

func (s *dashboardServiceStub) Reload(ctx context.Context) (*domain.Ledger, error) {
	return s.reloadFn(ctx)
}

type safetyStockServiceStub struct {
	setFn func(ctx context.Context, input usecase.SetSafetyStockInput) (*domain.Item, error)
}

func (s *safetyStockServiceStub) SetSafetyStock(ctx context.Context, input usecase.SetSafetyStockInput) (*domain.Item, error) {
	return s.setFn(ctx, input)
}

var testItems = []domain.Item{
	{Code: "A-100", Name: "Bolt", SafetyStock: 50},
	{Code: "B-200", Name: "Nut", SafetyStock: 0},
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func reportFor(item domain.Item, txns []domain.Transaction) *usecase.ItemStockReport {
	return &usecase.ItemStockReport{
		Item:     item,
		Snapshot: domain.ComputeSnapshot(txns, item.SafetyStock),
		Balances: domain.ComputeRunningBalances(domain.SortByDate(txns)),
	}
}

func boltReport() *usecase.ItemStockReport {
	return reportFor(testItems[0], []domain.Transaction{
		{ID: 1, ItemCode: "A-100", Date: day(1), Description: "opening", InboundQty: 100},
		{ID: 2, ItemCode: "A-100", Date: day(5), Description: "shipment", OutboundQty: 30},
	})
}

// newDashboardStub answers from testItems; B-200 has no history.
func newDashboardStub() *dashboardServiceStub {
	return &dashboardServiceStub{
		listItemsFn: func(ctx context.Context) ([]domain.Item, error) { return testItems, nil },
		getItemStockFn: func(ctx context.Context, code string) (*usecase.ItemStockReport, error) {
			switch code {
			case "A-100":
				return boltReport(), nil
			case "B-200":
				return reportFor(testItems[1], nil), nil
			case "":
				return nil, domain.ErrInvalidItemCode
			}
			return nil, domain.ErrItemNotFound
		},
		listShortagesFn: func(ctx context.Context) ([]*usecase.ItemStockReport, error) {
			return []*usecase.ItemStockReport{reportFor(testItems[1], nil)}, nil
		},
		reloadFn: func(ctx context.Context) (*domain.Ledger, error) {
			return domain.NewLedger(testItems, nil, day(1)), nil
		},
	}
}
