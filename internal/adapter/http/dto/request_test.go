package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/iho/stockledger/internal/usecase"
)

func TestSetSafetyStockRequest_ToUseCaseInput(t *testing.T) {
	var req SetSafetyStockRequest
	if err := json.Unmarshal([]byte(`{"safety_stock": 0}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	got, err := req.ToUseCaseInput("A-100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := usecase.SetSafetyStockInput{ItemCode: "A-100", SafetyStock: 0}
	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}

func TestSetSafetyStockRequest_MissingField(t *testing.T) {
	var req SetSafetyStockRequest
	if err := json.Unmarshal([]byte(`{}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if _, err := req.ToUseCaseInput("A-100"); !errors.Is(err, ErrMissingSafetyStock) {
		t.Fatalf("expected ErrMissingSafetyStock, got %v", err)
	}
}

func TestSetSafetyStockRequest_RejectsFractions(t *testing.T) {
	var req SetSafetyStockRequest
	if err := json.Unmarshal([]byte(`{"safety_stock": 1.5}`), &req); err == nil {
		t.Fatal("expected non-integer safety stock to fail decoding")
	}
}
