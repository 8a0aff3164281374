// Package metrics provides Prometheus metrics for the lead console.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Sync metrics
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadcrm_sync_runs_total",
			Help: "Total number of sync runs",
		},
		[]string{"trigger"},
	)

	SheetSyncsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadcrm_sheet_syncs_total",
			Help: "Per-sheet sync attempts by outcome",
		},
		[]string{"sheet", "status"},
	)

	RowsImportedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadcrm_rows_imported_total",
			Help: "Total lead rows imported from sheet exports",
		},
		[]string{"sheet"},
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leadcrm_sheet_sync_duration_seconds",
			Help:    "Time taken to sync one sheet",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"sheet"},
	)

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadcrm_http_requests_total",
			Help: "Total HTTP requests by method and status class",
		},
		[]string{"method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leadcrm_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// RecordSheetSync records the outcome and duration of one sheet's sync.
func RecordSheetSync(sheet, status string, rows int, duration time.Duration) {
	SheetSyncsTotal.WithLabelValues(sheet, status).Inc()
	if rows > 0 {
		RowsImportedTotal.WithLabelValues(sheet).Add(float64(rows))
	}
	SyncDuration.WithLabelValues(sheet).Observe(duration.Seconds())
}

// RecordRequest records one served HTTP request.
func RecordRequest(method, statusClass string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, statusClass).Inc()
	HTTPRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}
