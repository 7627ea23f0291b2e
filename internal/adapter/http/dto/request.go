package dto

import (
	"errors"

	"github.com/iho/stockledger/internal/usecase"
)

// ErrMissingSafetyStock is returned when the request body has no safety_stock field.
var ErrMissingSafetyStock = errors.New("safety_stock is required")

// SetSafetyStockRequest represents a request to change an item's safety stock.
// Pointer so that an absent field is told apart from zero.
type SetSafetyStockRequest struct {
	SafetyStock *int64 `json:"safety_stock"`
}

// ToUseCaseInput converts to use case input.
func (r *SetSafetyStockRequest) ToUseCaseInput(itemCode string) (usecase.SetSafetyStockInput, error) {
	if r.SafetyStock == nil {
		return usecase.SetSafetyStockInput{}, ErrMissingSafetyStock
	}
	return usecase.SetSafetyStockInput{
		ItemCode:    itemCode,
		SafetyStock: *r.SafetyStock,
	}, nil
}
