// Package metrics: метрики Prometheus для HTTP API и хранилища записей.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы операций хранилища.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Metrics: собственный реестр и коллекторы. nil *Metrics ничего не делает.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	storeOpsTotal       *prometheus.CounterVec
}

// New создаёт реестр и регистрирует в нём все коллекторы.
func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ieats_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ieats_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	m.storeOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ieats_store_operations_total",
			Help: "Entry and wishlist store operations by outcome",
		},
		[]string{"op", "outcome"},
	)

	for _, c := range []prometheus.Collector{
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.storeOpsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveRequest учитывает один обработанный HTTP-запрос.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// StoreOp учитывает одну операцию хранилища.
func (m *Metrics) StoreOp(op, outcome string) {
	if m == nil {
		return
	}
	m.storeOpsTotal.WithLabelValues(op, outcome).Inc()
}

// Handler отдаёт реестр в текстовом формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WatchSnapshots регистрирует gauge с числом закэшированных снимков записей.
func (m *Metrics) WatchSnapshots(count func() int) error {
	if m == nil {
		return nil
	}
	return m.registry.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "ieats_entry_snapshots",
			Help: "Number of cached per-user entry snapshots",
		},
		func() float64 { return float64(count()) },
	))
}
