// Package metrics exposes Prometheus collectors for the ledger, the task worker,
// the advisory cache and the HTTP layer.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for the conference backend.
type Metrics struct {
	// Ledger
	LedgerOpsTotal     *prometheus.CounterVec
	LedgerRetriesTotal *prometheus.CounterVec

	// Task queue
	TasksEnqueuedTotal  *prometheus.CounterVec
	TasksProcessedTotal *prometheus.CounterVec
	TaskDuration        *prometheus.HistogramVec

	// Cache
	CacheLookupsTotal *prometheus.CounterVec

	// HTTP
	HTTPRequestsTotal *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors once per process.
//
// Metrics:
//   - conference_ledger_ops_total{op,outcome}
//   - conference_ledger_retries_total{op}
//   - conference_tasks_enqueued_total{task}
//   - conference_tasks_processed_total{task,outcome}
//   - conference_task_duration_seconds{task}
//   - conference_cache_lookups_total{key,result}
//   - conference_http_requests_total{method,status}
//   - conference_http_request_duration_seconds{method}
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			LedgerOpsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "conference_ledger_ops_total",
					Help: "Total number of ledger operations by outcome",
				},
				[]string{"op", "outcome"}, // outcome: "ok", "noop", "conflict", "forbidden", "not_found", "transient", "error"
			),
			LedgerRetriesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "conference_ledger_retries_total",
					Help: "Total number of ledger transactions retried after a contention abort",
				},
				[]string{"op"},
			),
			TasksEnqueuedTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "conference_tasks_enqueued_total",
					Help: "Total number of deferred tasks submitted",
				},
				[]string{"task"},
			),
			TasksProcessedTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "conference_tasks_processed_total",
					Help: "Total number of deferred tasks processed by outcome",
				},
				[]string{"task", "outcome"},
			),
			TaskDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "conference_task_duration_seconds",
					Help:    "Duration of deferred task execution in seconds",
					Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
				},
				[]string{"task"},
			),
			CacheLookupsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "conference_cache_lookups_total",
					Help: "Total number of advisory cache lookups by result",
				},
				[]string{"key", "result"}, // result: "hit", "miss", "error"
			),
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "conference_http_requests_total",
					Help: "Total number of HTTP requests served",
				},
				[]string{"method", "status"},
			),
			HTTPDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "conference_http_request_duration_seconds",
					Help:    "Duration of HTTP requests in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method"},
			),
		}
	})

	return globalMetrics
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordLedgerOp records the outcome of one ledger operation.
func (m *Metrics) RecordLedgerOp(op, outcome string) {
	m.LedgerOpsTotal.WithLabelValues(op, outcome).Inc()
}

// RecordLedgerRetry records a retry after a transient abort.
func (m *Metrics) RecordLedgerRetry(op string) {
	m.LedgerRetriesTotal.WithLabelValues(op).Inc()
}

// RecordTaskEnqueued records a task submission.
func (m *Metrics) RecordTaskEnqueued(task string) {
	m.TasksEnqueuedTotal.WithLabelValues(task).Inc()
}

// RecordTaskProcessed records a finished task run with its duration.
func (m *Metrics) RecordTaskProcessed(task, outcome string, durationSeconds float64) {
	m.TasksProcessedTotal.WithLabelValues(task, outcome).Inc()
	m.TaskDuration.WithLabelValues(task).Observe(durationSeconds)
}

// RecordCacheLookup records a cache read.
func (m *Metrics) RecordCacheLookup(key, result string) {
	m.CacheLookupsTotal.WithLabelValues(key, result).Inc()
}

// RecordHTTPRequest records a served request.
func (m *Metrics) RecordHTTPRequest(method, status string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, status).Inc()
	m.HTTPDuration.WithLabelValues(method).Observe(durationSeconds)
}
