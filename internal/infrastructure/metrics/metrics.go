package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics exposes the sync pipeline counters on the Prometheus registry.
type SyncMetrics struct {
	syncsTotal       *prometheus.CounterVec
	productsExported prometheus.Counter
	syncDuration     prometheus.Histogram
}

// NewSyncMetrics creates and registers the sync collectors.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	m := &SyncMetrics{
		syncsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotiza_syncs_total",
			Help: "Sync attempts by outcome.",
		}, []string{"status"}),
		productsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quotiza_products_exported_total",
			Help: "Products submitted to the Quotiza import endpoint.",
		}),
		syncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quotiza_sync_duration_seconds",
			Help:    "Wall time of one sync attempt.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.syncsTotal, m.productsExported, m.syncDuration)
	return m
}

// ObserveSync records one finished sync attempt with its outcome
func (m *SyncMetrics) ObserveSync(status string, duration time.Duration) {
	m.syncsTotal.WithLabelValues(status).Inc()
	m.syncDuration.Observe(duration.Seconds())
}

// AddProductsExported records how many products were submitted
func (m *SyncMetrics) AddProductsExported(count int) {
	m.productsExported.Add(float64(count))
}
