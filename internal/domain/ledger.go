package domain

import (
	"sort"
	"time"
)

// Ledger is the result of a bulk load: the full item master keyed by code
// and every transaction in store order.
type Ledger struct {
	Items        map[string]Item
	Transactions []Transaction
	LoadedAt     time.Time
}

// NewLedger builds a Ledger from loaded rows. Later duplicates of an item
// code replace earlier ones.
func NewLedger(items []Item, txns []Transaction, loadedAt time.Time) *Ledger {
	byCode := make(map[string]Item, len(items))
	for _, it := range items {
		byCode[it.Code] = it
	}

	if txns == nil {
		txns = []Transaction{}
	}

	return &Ledger{
		Items:        byCode,
		Transactions: txns,
		LoadedAt:     loadedAt,
	}
}

// Item looks up an item by code.
func (l *Ledger) Item(code string) (Item, bool) {
	it, ok := l.Items[code]
	return it, ok
}

// ItemCodes returns all item codes sorted ascending.
func (l *Ledger) ItemCodes() []string {
	codes := make([]string, 0, len(l.Items))
	for code := range l.Items {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// TransactionsFor returns the transactions of one item in store order.
func (l *Ledger) TransactionsFor(code string) []Transaction {
	var out []Transaction
	for _, t := range l.Transactions {
		if t.ItemCode == code {
			out = append(out, t)
		}
	}
	return out
}
