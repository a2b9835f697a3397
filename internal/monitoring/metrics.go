// SPDX-License-Identifier: MIT

// Package monitoring owns the Prometheus collectors of the calculator and
// the HTTP server. Every Metrics value has its own registry, so several
// instances (one per test, say) never collide.
package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "matcalc"

// Operation outcomes used as the "status" label.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Calculator metrics
	OpsTotal    *prometheus.CounterVec
	OpDuration  *prometheus.HistogramVec
	OpErrors    *prometheus.CounterVec
	OperandSize *prometheus.HistogramVec

	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds running totals for the JSON metrics endpoint.
type Snapshot struct {
	TotalRequests int64 `json:"total_requests"`
	TotalErrors   int64 `json:"total_errors"`
	TotalOps      int64 `json:"total_ops"`
	FailedOps     int64 `json:"failed_ops"`
}

// NewMetrics creates the collectors on a fresh registry, together with
// the standard Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"method", "path"},
		),

		OpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Matrix operations by name and outcome",
			},
			[]string{"op", "status"},
		),
		OpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Matrix operation duration in seconds",
				Buckets:   []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 1e-1},
			},
			[]string{"op"},
		),
		OpErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operation_errors_total",
				Help:      "Failed matrix operations by error kind",
			},
			[]string{"op", "kind"},
		),
		OperandSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operand_cells",
				Help:      "Number of cells in the first operand",
				Buckets:   []float64{1, 4, 9, 16, 25, 49, 100},
			},
			[]string{"op"},
		),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal, m.RequestDuration,
		m.OpsTotal, m.OpDuration, m.OpErrors, m.OperandSize,
	)

	return m
}

// Registry exposes the private registry (for tests and custom gatherers).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the Prometheus exposition format for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordOp records one calculator operation. kind is empty on success.
func (m *Metrics) RecordOp(op, kind string, cells int, duration time.Duration) {
	status := StatusOK
	if kind != "" {
		status = StatusError
		m.OpErrors.WithLabelValues(op, kind).Inc()
	}
	m.OpsTotal.WithLabelValues(op, status).Inc()
	m.OpDuration.WithLabelValues(op).Observe(duration.Seconds())
	if cells > 0 {
		m.OperandSize.WithLabelValues(op).Observe(float64(cells))
	}

	m.mu.Lock()
	m.snapshot.TotalOps++
	if kind != "" {
		m.snapshot.FailedOps++
	}
	m.mu.Unlock()
}

// Snapshot returns a copy of the running totals.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.snapshot
}
