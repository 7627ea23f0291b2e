package domain

import (
	"fmt"
	"strings"
)

// Validation constants
const (
	MaxItemCodeLength = 64
)

// ValidateItemCode validates an item code as received from a caller.
func ValidateItemCode(code string) error {
	trimmed := strings.TrimSpace(code)

	if trimmed == "" {
		return fmt.Errorf("%w: code cannot be empty", ErrInvalidItemCode)
	}

	if trimmed != code {
		return fmt.Errorf("%w: code has leading or trailing whitespace", ErrInvalidItemCode)
	}

	if len(code) > MaxItemCodeLength {
		return fmt.Errorf("%w: code exceeds %d characters", ErrInvalidItemCode, MaxItemCodeLength)
	}

	return nil
}

// ValidateSafetyStock validates a safety-stock value. There is no upper bound.
func ValidateSafetyStock(value int64) error {
	if value < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSafetyStock, value)
	}
	return nil
}
