package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/stockledger/internal/adapter/http/dto"
	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

// maxBodyBytes caps request bodies on write endpoints.
const maxBodyBytes = 4 << 10

// SafetyStockService defines the behavior needed by SafetyStockHandler.
type SafetyStockService interface {
	SetSafetyStock(ctx context.Context, input usecase.SetSafetyStockInput) (*domain.Item, error)
}

// SafetyStockHandler handles safety-stock edits.
type SafetyStockHandler struct {
	safetyStockUC SafetyStockService
}

// NewSafetyStockHandler creates a new SafetyStockHandler.
func NewSafetyStockHandler(safetyStockUC SafetyStockService) *SafetyStockHandler {
	return &SafetyStockHandler{safetyStockUC: safetyStockUC}
}

// Update sets an item's safety stock.
func (h *SafetyStockHandler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req dto.SetSafetyStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(itemCodeParam(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	item, err := h.safetyStockUC.SetSafetyStock(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to update safety stock", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ItemFromDomain(*item))
}
