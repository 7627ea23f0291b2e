package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

func renderDashboard(t *testing.T, h *PageHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Dashboard(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPageHandler_NoSelection(t *testing.T) {
	h := NewPageHandler(newDashboardStub(), &safetyStockServiceStub{})

	rec := renderDashboard(t, h, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, msgSelectItem) {
		t.Fatal("expected selection prompt")
	}
	if !strings.Contains(body, `<option value="A-100">`) {
		t.Fatalf("expected item selector, got %s", body)
	}
}

func TestPageHandler_ItemWithHistory(t *testing.T) {
	h := NewPageHandler(newDashboardStub(), &safetyStockServiceStub{})

	body := renderDashboard(t, h, "/?item=A-100").Body.String()

	for _, want := range []string{
		`<span id="current-stock">70</span>`,
		`<span id="safety-stock">50</span>`,
		`<span id="available-stock">20</span>`,
		"2024-01-05",
		"shipment",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
	if strings.Contains(body, `id="shortage"`) {
		t.Fatal("did not expect a shortage banner")
	}
}

func TestPageHandler_EmptyHistoryShowsWarningAndShortage(t *testing.T) {
	h := NewPageHandler(newDashboardStub(), &safetyStockServiceStub{})

	body := renderDashboard(t, h, "/?item=B-200").Body.String()

	if !strings.Contains(body, msgNoHistory) {
		t.Fatal("expected empty-history warning")
	}
	if !strings.Contains(body, `id="shortage"`) {
		t.Fatal("expected shortage banner for zero stock against zero safety stock")
	}
	if strings.Contains(body, "<table>") {
		t.Fatal("did not expect a history table")
	}
}

func TestPageHandler_UnknownItem(t *testing.T) {
	h := NewPageHandler(newDashboardStub(), &safetyStockServiceStub{})

	body := renderDashboard(t, h, "/?item=ZZZ").Body.String()

	if !strings.Contains(body, msgItemNotFound) {
		t.Fatal("expected not-found message")
	}
}

func TestPageHandler_LoadFailure(t *testing.T) {
	stub := newDashboardStub()
	stub.listItemsFn = func(ctx context.Context) ([]domain.Item, error) {
		return nil, fmt.Errorf("%w: connection refused", domain.ErrStoreUnavailable)
	}
	h := NewPageHandler(stub, &safetyStockServiceStub{})

	rec := renderDashboard(t, h, "/?item=A-100")

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Check the database configuration") {
		t.Fatal("expected configuration hint")
	}
	if strings.Contains(body, "connection refused") {
		t.Fatal("expected store details to stay out of the page")
	}
}

func TestPageHandler_EscapesFlashMessages(t *testing.T) {
	h := NewPageHandler(newDashboardStub(), &safetyStockServiceStub{})

	body := renderDashboard(t, h, "/?item=A-100&notice="+url.QueryEscape("<script>x</script>")).Body.String()

	if strings.Contains(body, "<script>x</script>") {
		t.Fatal("expected notice to be escaped")
	}
}

func postForm(h *PageHandler, code, value string) *httptest.ResponseRecorder {
	form := url.Values{"safety_stock": {value}}
	req := httptest.NewRequest(http.MethodPost, "/items/"+code+"/safety-stock", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = withCode(req, code)

	rec := httptest.NewRecorder()
	h.UpdateSafetyStock(rec, req)
	return rec
}

func redirectQuery(t *testing.T, rec *httptest.ResponseRecorder) url.Values {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad redirect location: %v", err)
	}
	return loc.Query()
}

func TestPageHandler_UpdateSafetyStock_Success(t *testing.T) {
	var captured usecase.SetSafetyStockInput
	h := NewPageHandler(newDashboardStub(), &safetyStockServiceStub{
		setFn: func(ctx context.Context, input usecase.SetSafetyStockInput) (*domain.Item, error) {
			captured = input
			return &domain.Item{Code: input.ItemCode, SafetyStock: input.SafetyStock}, nil
		},
	})

	q := redirectQuery(t, postForm(h, "A-100", " 75 "))

	if captured.SafetyStock != 75 || captured.ItemCode != "A-100" {
		t.Fatalf("unexpected input: %+v", captured)
	}
	if q.Get("item") != "A-100" || !strings.Contains(q.Get("notice"), "75") {
		t.Fatalf("unexpected redirect query: %v", q)
	}
	if q.Get("form_error") != "" {
		t.Fatalf("did not expect a form error: %v", q)
	}
}

func TestPageHandler_UpdateSafetyStock_Errors(t *testing.T) {
	tests := []struct {
		name  string
		value string
		err   error
		want  string
	}{
		{"not a number", "abc", nil, msgBadQuantity},
		{"fraction", "1.5", nil, msgBadQuantity},
		{"negative", "-3", domain.ErrInvalidSafetyStock, msgBadQuantity},
		{"unknown item", "3", domain.ErrItemNotFound, msgItemNotFound},
		{"store down", "3", domain.ErrStoreUnavailable, msgSaveFailed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h := NewPageHandler(newDashboardStub(), &safetyStockServiceStub{
				setFn: func(ctx context.Context, input usecase.SetSafetyStockInput) (*domain.Item, error) {
					return nil, tt.err
				},
			})

			q := redirectQuery(t, postForm(h, "A-100", tt.value))
			if q.Get("form_error") != tt.want {
				t.Fatalf("expected form error %q, got %q", tt.want, q.Get("form_error"))
			}
		})
	}
}

func TestPageHandler_FormErrorSurvivesFailedReload(t *testing.T) {
	stub := newDashboardStub()
	stub.getItemStockFn = func(ctx context.Context, code string) (*usecase.ItemStockReport, error) {
		return nil, domain.ErrStoreUnavailable
	}
	h := NewPageHandler(stub, &safetyStockServiceStub{})

	rec := renderDashboard(t, h, "/?item=A-100&form_error="+url.QueryEscape(msgSaveFailed))

	body := rec.Body.String()
	if !strings.Contains(body, msgLoadFailed) {
		t.Fatal("expected page-level load error")
	}
	if !strings.Contains(body, msgSaveFailed) {
		t.Fatalf("expected form error to be shown, got %s", body)
	}
}

func TestPageHandler_FormErrorRenderedOnce(t *testing.T) {
	h := NewPageHandler(newDashboardStub(), &safetyStockServiceStub{})

	body := renderDashboard(t, h, "/?item=A-100&form_error="+url.QueryEscape(msgBadQuantity)).Body.String()

	if n := strings.Count(body, `id="form-error"`); n != 1 {
		t.Fatalf("expected one form error, got %d", n)
	}
}
