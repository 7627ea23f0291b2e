package domain

import (
	"testing"
	"time"
)

func TestNewLedger(t *testing.T) {
	t.Parallel()

	loadedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ledger := NewLedger(
		[]Item{
			{Code: "B-2", Name: "Bolt", SafetyStock: 10},
			{Code: "A-1", Name: "Anchor", SafetyStock: 5},
		},
		[]Transaction{
			{ID: 1, ItemCode: "A-1", InboundQty: 3},
			{ID: 2, ItemCode: "B-2", InboundQty: 4},
			{ID: 3, ItemCode: "A-1", OutboundQty: 1},
		},
		loadedAt,
	)

	if codes := ledger.ItemCodes(); len(codes) != 2 || codes[0] != "A-1" || codes[1] != "B-2" {
		t.Fatalf("expected sorted codes [A-1 B-2], got %v", codes)
	}

	item, ok := ledger.Item("B-2")
	if !ok || item.Name != "Bolt" {
		t.Fatalf("expected to find Bolt, got %+v ok=%v", item, ok)
	}

	if _, ok := ledger.Item("missing"); ok {
		t.Fatal("expected missing item lookup to fail")
	}

	txns := ledger.TransactionsFor("A-1")
	if len(txns) != 2 || txns[0].ID != 1 || txns[1].ID != 3 {
		t.Fatalf("expected A-1 transactions [1 3] in store order, got %+v", txns)
	}

	if got := ledger.TransactionsFor("C-3"); len(got) != 0 {
		t.Fatalf("expected no transactions, got %d", len(got))
	}

	if !ledger.LoadedAt.Equal(loadedAt) {
		t.Fatalf("expected loadedAt %v, got %v", loadedAt, ledger.LoadedAt)
	}
}

func TestNewLedger_NilTransactions(t *testing.T) {
	t.Parallel()

	ledger := NewLedger(nil, nil, time.Now())
	if ledger.Transactions == nil {
		t.Fatal("expected non-nil transactions slice")
	}
	if len(ledger.Items) != 0 {
		t.Fatalf("expected empty item master, got %d", len(ledger.Items))
	}
}
