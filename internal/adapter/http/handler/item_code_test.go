package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

const slashCode = "AB/12"

var slashItem = domain.Item{Code: slashCode, Name: "Hinge", SafetyStock: 5}

func TestItemCodeParam(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/items/A-100", "A-100"},
		{"/items/AB%2F12", "AB/12"},
		{"/items/C%201", "C 1"},
		{"/items/50%25off", "50%off"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var got string
			r := chi.NewRouter()
			r.Get("/items/{code}", func(w http.ResponseWriter, r *http.Request) {
				got = itemCodeParam(r)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected route to match, got %d", rec.Code)
			}
			if got != tt.want {
				t.Fatalf("expected code %q, got %q", tt.want, got)
			}
		})
	}
}

func slashDashboardStub() *dashboardServiceStub {
	stub := newDashboardStub()
	stub.listItemsFn = func(ctx context.Context) ([]domain.Item, error) {
		return []domain.Item{slashItem}, nil
	}
	stub.getItemStockFn = func(ctx context.Context, code string) (*usecase.ItemStockReport, error) {
		if code != slashCode {
			return nil, domain.ErrItemNotFound
		}
		return reportFor(slashItem, nil), nil
	}
	return stub
}

func TestDashboardHandler_GetItemWithSlashInCode(t *testing.T) {
	h := NewDashboardHandler(slashDashboardStub())
	r := chi.NewRouter()
	r.Get("/api/v1/items/{code}", h.GetItem)
	r.Get("/api/v1/items/{code}/transactions", h.ListTransactions)

	for _, path := range []string{"/api/v1/items/AB%2F12", "/api/v1/items/AB%2F12/transactions"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", path, rec.Code, rec.Body.String())
		}
	}
}

func TestSafetyStockHandler_UpdateWithSlashInCode(t *testing.T) {
	var captured usecase.SetSafetyStockInput
	h := NewSafetyStockHandler(&safetyStockServiceStub{
		setFn: func(ctx context.Context, input usecase.SetSafetyStockInput) (*domain.Item, error) {
			captured = input
			return &domain.Item{Code: input.ItemCode, SafetyStock: input.SafetyStock}, nil
		},
	})
	r := chi.NewRouter()
	r.Put("/api/v1/items/{code}/safety-stock", h.Update)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/items/AB%2F12/safety-stock", strings.NewReader(`{"safety_stock": 9}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.ItemCode != slashCode || captured.SafetyStock != 9 {
		t.Fatalf("unexpected input: %+v", captured)
	}
}

func TestPageHandler_SlashInCodeRoundTrip(t *testing.T) {
	var captured usecase.SetSafetyStockInput
	h := NewPageHandler(slashDashboardStub(), &safetyStockServiceStub{
		setFn: func(ctx context.Context, input usecase.SetSafetyStockInput) (*domain.Item, error) {
			captured = input
			return &domain.Item{Code: input.ItemCode, SafetyStock: input.SafetyStock}, nil
		},
	})
	r := chi.NewRouter()
	r.Get("/", h.Dashboard)
	r.Post("/items/{code}/safety-stock", h.UpdateSafetyStock)

	page := httptest.NewRecorder()
	r.ServeHTTP(page, httptest.NewRequest(http.MethodGet, "/?item="+url.QueryEscape(slashCode), nil))
	if page.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", page.Code)
	}
	if !strings.Contains(page.Body.String(), `action="/items/AB%2F12/safety-stock"`) {
		t.Fatalf("expected escaped form action, got %s", page.Body.String())
	}

	form := url.Values{"safety_stock": {"7"}}
	req := httptest.NewRequest(http.MethodPost, "/items/AB%2F12/safety-stock", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	q := redirectQuery(t, rec)
	if captured.ItemCode != slashCode || captured.SafetyStock != 7 {
		t.Fatalf("unexpected input: %+v", captured)
	}
	if q.Get("item") != slashCode || q.Get("form_error") != "" {
		t.Fatalf("unexpected redirect query: %v", q)
	}
}
