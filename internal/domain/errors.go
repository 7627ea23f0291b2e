package domain

import "errors"

var (
	// Item errors
	ErrItemNotFound       = errors.New("item not found")
	ErrInvalidItemCode    = errors.New("invalid item code")
	ErrInvalidSafetyStock = errors.New("safety stock must be a non-negative integer")

	// Store errors
	ErrStoreUnavailable = errors.New("ledger store unavailable")
)
