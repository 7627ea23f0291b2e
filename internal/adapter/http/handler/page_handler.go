package handler

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

// Messages shown on the dashboard page.
const (
	msgSelectItem   = "Select an item to view its stock position."
	msgNoHistory    = "No transactions have been recorded for this item."
	msgLoadFailed   = "Stock data could not be loaded. Check the database configuration and try again."
	msgItemNotFound = "The selected item does not exist."
	msgInvalidCode  = "The selected item code is not valid."
	msgBadQuantity  = "Safety stock must be a whole number of zero or more."
	msgSaveFailed   = "Safety stock could not be saved. Try again later."
)

// PageHandler serves the server-rendered dashboard.
type PageHandler struct {
	dashboardUC   DashboardService
	safetyStockUC SafetyStockService
	tmpl          *template.Template
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(dashboardUC DashboardService, safetyStockUC SafetyStockService) *PageHandler {
	tmpl := template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
		"date":       func(t time.Time) string { return t.Format(domain.DateLayout) },
		"pathEscape": url.PathEscape,
	}).ParseFS(templateFS, "templates/dashboard.html"))

	return &PageHandler{
		dashboardUC:   dashboardUC,
		safetyStockUC: safetyStockUC,
		tmpl:          tmpl,
	}
}

type pageData struct {
	Items     []domain.Item
	Selected  string
	Report    *usecase.ItemStockReport
	Info      string
	Warning   string
	Error     string
	Notice    string
	FormError string
}

// Dashboard renders the item selector, the stock metrics and the history of
// the item named by the "item" query parameter.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pageData{
		Selected:  q.Get("item"),
		Notice:    q.Get("notice"),
		FormError: q.Get("form_error"),
	}

	h.fill(r.Context(), &data)

	status := http.StatusOK
	if data.Error == msgLoadFailed {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("failed to render dashboard")
	}
}

func (h *PageHandler) fill(ctx context.Context, data *pageData) {
	items, err := h.dashboardUC.ListItems(ctx)
	if err != nil {
		log.Error().Err(err).Msg("dashboard: failed to load items")
		data.Error = msgLoadFailed
		return
	}
	data.Items = items

	if data.Selected == "" {
		data.Info = msgSelectItem
		return
	}

	report, err := h.dashboardUC.GetItemStock(ctx, data.Selected)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrItemNotFound):
		data.Error = msgItemNotFound
		return
	case errors.Is(err, domain.ErrInvalidItemCode):
		data.Error = msgInvalidCode
		return
	default:
		log.Error().Err(err).Str("item_code", data.Selected).Msg("dashboard: failed to load item")
		data.Error = msgLoadFailed
		return
	}

	data.Report = report
	if !report.Snapshot.HasHistory {
		data.Warning = msgNoHistory
	}
}

// UpdateSafetyStock handles the dashboard form and redirects back to the
// item with a success notice or a form-scoped error.
func (h *PageHandler) UpdateSafetyStock(w http.ResponseWriter, r *http.Request) {
	code := itemCodeParam(r)
	back := url.Values{"item": {code}}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		back.Set("form_error", msgBadQuantity)
		redirect(w, r, back)
		return
	}

	value, err := strconv.ParseInt(strings.TrimSpace(r.PostFormValue("safety_stock")), 10, 64)
	if err != nil {
		back.Set("form_error", msgBadQuantity)
		redirect(w, r, back)
		return
	}

	item, err := h.safetyStockUC.SetSafetyStock(r.Context(), usecase.SetSafetyStockInput{
		ItemCode:    code,
		SafetyStock: value,
	})
	switch {
	case err == nil:
		back.Set("notice", "Safety stock for "+item.Code+" set to "+strconv.FormatInt(item.SafetyStock, 10)+".")
	case errors.Is(err, domain.ErrInvalidSafetyStock):
		back.Set("form_error", msgBadQuantity)
	case errors.Is(err, domain.ErrInvalidItemCode):
		back.Set("form_error", msgInvalidCode)
	case errors.Is(err, domain.ErrItemNotFound):
		back.Set("form_error", msgItemNotFound)
	default:
		log.Error().Err(err).Str("item_code", code).Msg("dashboard: failed to save safety stock")
		back.Set("form_error", msgSaveFailed)
	}

	redirect(w, r, back)
}

func redirect(w http.ResponseWriter, r *http.Request, q url.Values) {
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
}
