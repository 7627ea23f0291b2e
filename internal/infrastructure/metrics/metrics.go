package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. It implements usecase.MetricsRecorder.
type Metrics struct {
	// Ledger metrics
	LedgerLoads        *prometheus.CounterVec
	LedgerLoadDuration prometheus.Histogram
	CacheLookups       *prometheus.CounterVec

	// Item metrics
	SafetyStockUpdates *prometheus.CounterVec
	ShortageItems      prometheus.Gauge
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		LedgerLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_ledger_loads_total",
				Help: "Bulk loads from the ledger store by result",
			},
			[]string{"result"},
		),
		LedgerLoadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockledger_ledger_load_duration_seconds",
			Help:    "Duration of bulk loads from the ledger store",
			Buckets: prometheus.DefBuckets,
		}),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_ledger_cache_lookups_total",
				Help: "Ledger cache lookups by layer and result",
			},
			[]string{"layer", "result"},
		),
		SafetyStockUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_safety_stock_updates_total",
				Help: "Safety stock updates by result",
			},
			[]string{"result"},
		),
		ShortageItems: factory.NewGauge(prometheus.GaugeOpts{
			Name: "stockledger_shortage_items",
			Help: "Items at or below their safety stock as of the last shortage listing",
		}),
	}
}

// ObserveLedgerLoad records a bulk load.
func (m *Metrics) ObserveLedgerLoad(duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.LedgerLoads.WithLabelValues(result).Inc()
	m.LedgerLoadDuration.Observe(duration.Seconds())
}

// IncCacheLookup records a cache lookup.
func (m *Metrics) IncCacheLookup(layer, result string) {
	m.CacheLookups.WithLabelValues(layer, result).Inc()
}

// IncSafetyStockUpdate records a safety-stock update attempt.
func (m *Metrics) IncSafetyStockUpdate(result string) {
	m.SafetyStockUpdates.WithLabelValues(result).Inc()
}

// SetShortageItems sets the shortage gauge.
func (m *Metrics) SetShortageItems(n int) {
	m.ShortageItems.Set(float64(n))
}
