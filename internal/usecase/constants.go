package usecase

import "time"

const (
	// DefaultLedgerCacheTTL is the freshness window of a bulk-loaded ledger.
	DefaultLedgerCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)

// Cache layers and lookup results reported to MetricsRecorder.
const (
	CacheLayerLocal  = "local"
	CacheLayerShared = "shared"

	CacheResultHit   = "hit"
	CacheResultMiss  = "miss"
	CacheResultError = "error"
)

// Safety-stock update results reported to MetricsRecorder.
const (
	UpdateResultOK       = "ok"
	UpdateResultInvalid  = "invalid"
	UpdateResultNotFound = "not_found"
	UpdateResultError    = "error"
)
