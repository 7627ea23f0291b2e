package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/iho/stockledger/internal/domain"
)

// SafetyStockUseCase handles safety-stock edits.
type SafetyStockUseCase struct {
	store   LedgerStore
	ledger  LedgerSource
	metrics MetricsRecorder
}

// NewSafetyStockUseCase creates a new SafetyStockUseCase.
func NewSafetyStockUseCase(store LedgerStore, ledger LedgerSource, metrics MetricsRecorder) *SafetyStockUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &SafetyStockUseCase{
		store:   store,
		ledger:  ledger,
		metrics: metrics,
	}
}

// SetSafetyStockInput represents input for a safety-stock update.
type SetSafetyStockInput struct {
	ItemCode    string
	SafetyStock int64
}

// SetSafetyStock persists a new safety stock for an item. Cached ledgers are
// invalidated only after the store confirms the write.
func (uc *SafetyStockUseCase) SetSafetyStock(ctx context.Context, input SetSafetyStockInput) (*domain.Item, error) {
	if err := domain.ValidateItemCode(input.ItemCode); err != nil {
		uc.metrics.IncSafetyStockUpdate(UpdateResultInvalid)
		return nil, err
	}
	if err := domain.ValidateSafetyStock(input.SafetyStock); err != nil {
		uc.metrics.IncSafetyStockUpdate(UpdateResultInvalid)
		return nil, err
	}

	item, err := uc.store.UpdateSafetyStock(ctx, input.ItemCode, input.SafetyStock)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			uc.metrics.IncSafetyStockUpdate(UpdateResultNotFound)
		} else {
			uc.metrics.IncSafetyStockUpdate(UpdateResultError)
		}
		return nil, err
	}

	if err := uc.ledger.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Str("item_code", item.Code).Msg("safety stock saved but shared cache invalidation failed")
	}

	uc.metrics.IncSafetyStockUpdate(UpdateResultOK)
	log.Info().
		Str("item_code", item.Code).
		Int64("safety_stock", item.SafetyStock).
		Msg("safety stock updated")

	return item, nil
}
