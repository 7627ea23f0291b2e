package handler

import (
	"context"
	"net/http"

	"github.com/iho/stockledger/internal/adapter/http/dto"
	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

// DashboardService defines the behavior needed by DashboardHandler and PageHandler.
type DashboardService interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetItemStock(ctx context.Context, itemCode string) (*usecase.ItemStockReport, error)
	ListShortages(ctx context.Context) ([]*usecase.ItemStockReport, error)
	Reload(ctx context.Context) (*domain.Ledger, error)
}

// DashboardHandler serves the read-only stock API.
type DashboardHandler struct {
	dashboardUC DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardUC DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC}
}

// ListItems lists the item master.
func (h *DashboardHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.dashboardUC.ListItems(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list items", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ItemsFromDomain(items))
}

// GetItem returns an item with its stock snapshot.
func (h *DashboardHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	report, err := h.dashboardUC.GetItemStock(r.Context(), itemCodeParam(r))
	if err != nil {
		writeDomainError(w, "failed to get item", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ItemStockFromReport(report))
}

// ListTransactions returns an item's history with running balances.
func (h *DashboardHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	report, err := h.dashboardUC.GetItemStock(r.Context(), itemCodeParam(r))
	if err != nil {
		writeDomainError(w, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryFromReport(report))
}

// ListShortages lists every item at or below its safety stock.
func (h *DashboardHandler) ListShortages(w http.ResponseWriter, r *http.Request) {
	reports, err := h.dashboardUC.ListShortages(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list shortages", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ItemStocksFromReports(reports))
}

// Reload drops cached data and loads the ledger again.
func (h *DashboardHandler) Reload(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.dashboardUC.Reload(r.Context())
	if err != nil {
		writeDomainError(w, "failed to reload ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReloadFromDomain(ledger))
}
