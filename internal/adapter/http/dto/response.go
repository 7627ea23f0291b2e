package dto

import (
	"time"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ItemResponse represents an item master row.
type ItemResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	SafetyStock int64  `json:"safety_stock"`
}

// ItemFromDomain converts a domain item to response.
func ItemFromDomain(it domain.Item) ItemResponse {
	return ItemResponse{
		Code:        it.Code,
		Name:        it.Name,
		SafetyStock: it.SafetyStock,
	}
}

// ItemsFromDomain converts domain items to responses.
func ItemsFromDomain(items []domain.Item) []ItemResponse {
	result := make([]ItemResponse, len(items))
	for i, it := range items {
		result[i] = ItemFromDomain(it)
	}
	return result
}

// SnapshotResponse represents an item's stock position.
type SnapshotResponse struct {
	CurrentStock   int64 `json:"current_stock"`
	SafetyStock    int64 `json:"safety_stock"`
	AvailableStock int64 `json:"available_stock"`
	IsShortage     bool  `json:"is_shortage"`
	HasHistory     bool  `json:"has_history"`
}

// SnapshotFromDomain converts a domain snapshot to response.
func SnapshotFromDomain(s domain.StockSnapshot) SnapshotResponse {
	return SnapshotResponse{
		CurrentStock:   s.CurrentStock,
		SafetyStock:    s.SafetyStock,
		AvailableStock: s.AvailableStock,
		IsShortage:     s.IsShortage,
		HasHistory:     s.HasHistory,
	}
}

// ItemStockResponse is an item together with its stock snapshot.
type ItemStockResponse struct {
	Item     ItemResponse     `json:"item"`
	Snapshot SnapshotResponse `json:"snapshot"`
}

// ItemStockFromReport converts a use case report to response.
func ItemStockFromReport(r *usecase.ItemStockReport) *ItemStockResponse {
	return &ItemStockResponse{
		Item:     ItemFromDomain(r.Item),
		Snapshot: SnapshotFromDomain(r.Snapshot),
	}
}

// ItemStocksFromReports converts reports to responses.
func ItemStocksFromReports(reports []*usecase.ItemStockReport) []*ItemStockResponse {
	result := make([]*ItemStockResponse, len(reports))
	for i, r := range reports {
		result[i] = ItemStockFromReport(r)
	}
	return result
}

// BalanceRowResponse is one transaction with the running balance after it.
type BalanceRowResponse struct {
	ID             int64  `json:"id"`
	Date           string `json:"date"`
	Description    string `json:"description"`
	InboundQty     int64  `json:"inbound_qty"`
	OutboundQty    int64  `json:"outbound_qty"`
	RunningBalance int64  `json:"running_balance"`
}

// TransactionHistoryResponse is an item's date-ordered history.
type TransactionHistoryResponse struct {
	ItemCode     string               `json:"item_code"`
	Transactions []BalanceRowResponse `json:"transactions"`
}

// HistoryFromReport converts a report's balance rows to response. Dates are
// formatted as YYYY-MM-DD.
func HistoryFromReport(r *usecase.ItemStockReport) *TransactionHistoryResponse {
	rows := make([]BalanceRowResponse, len(r.Balances))
	for i, b := range r.Balances {
		rows[i] = BalanceRowResponse{
			ID:             b.Transaction.ID,
			Date:           b.Transaction.Date.Format(domain.DateLayout),
			Description:    b.Transaction.Description,
			InboundQty:     b.Transaction.InboundQty,
			OutboundQty:    b.Transaction.OutboundQty,
			RunningBalance: b.RunningBalance,
		}
	}
	return &TransactionHistoryResponse{
		ItemCode:     r.Item.Code,
		Transactions: rows,
	}
}

// ReloadResponse describes a freshly loaded ledger.
type ReloadResponse struct {
	Items        int       `json:"items"`
	Transactions int       `json:"transactions"`
	LoadedAt     time.Time `json:"loaded_at"`
}

// ReloadFromDomain converts a loaded ledger to response.
func ReloadFromDomain(l *domain.Ledger) *ReloadResponse {
	return &ReloadResponse{
		Items:        len(l.Items),
		Transactions: len(l.Transactions),
		LoadedAt:     l.LoadedAt,
	}
}
