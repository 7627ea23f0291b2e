package domain

import "sort"

// StockSnapshot summarizes an item's stock position against its safety stock.
type StockSnapshot struct {
	CurrentStock   int64
	SafetyStock    int64
	AvailableStock int64
	IsShortage     bool
	// HasHistory is false when the item has no transactions at all, which
	// otherwise looks the same as zero stock.
	HasHistory bool
}

// BalanceRow pairs a transaction with the stock balance right after it.
type BalanceRow struct {
	Transaction    Transaction
	RunningBalance int64
}

// ComputeSnapshot sums inbound and outbound quantities of txns and evaluates
// them against safetyStock. Input order does not matter.
func ComputeSnapshot(txns []Transaction, safetyStock int64) StockSnapshot {
	var current int64
	for _, t := range txns {
		current += t.Net()
	}

	available := current - safetyStock

	return StockSnapshot{
		CurrentStock:   current,
		SafetyStock:    safetyStock,
		AvailableStock: available,
		IsShortage:     available <= 0,
		HasHistory:     len(txns) > 0,
	}
}

// ComputeRunningBalances returns one row per transaction, in input order,
// carrying the cumulative net quantity seeded at zero. Callers sort with
// SortByDate first.
func ComputeRunningBalances(txns []Transaction) []BalanceRow {
	rows := make([]BalanceRow, 0, len(txns))

	var balance int64
	for _, t := range txns {
		balance += t.Net()
		rows = append(rows, BalanceRow{Transaction: t, RunningBalance: balance})
	}

	return rows
}

// SortByDate returns a copy of txns ordered by date ascending. Same-date
// transactions keep store order (ID ascending), then input order.
func SortByDate(txns []Transaction) []Transaction {
	sorted := make([]Transaction, len(txns))
	copy(sorted, txns)

	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i].Date, sorted[j].Date
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return sorted[i].ID < sorted[j].ID
	})

	return sorted
}
