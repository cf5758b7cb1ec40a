package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "prepflow"

// Metrics holds Prometheus metrics for the analytics API
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight *prometheus.GaugeVec
	StoreErrors      *prometheus.CounterVec
	DBConnPoolStats  *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers every metric on reg. Pass a fresh registry in tests.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of requests",
			},
			[]string{"route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		RequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
			[]string{"method"},
		),
		StoreErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "errors_total",
				Help:      "Session store failures that were degraded to empty results",
			},
			[]string{"operation"},
		),
		DBConnPoolStats: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "db_connection_pool",
				Help:      "Database connection pool statistics",
			},
			[]string{"stat"}, // open, in_use, idle, wait_count, wait_duration_ms
		),
		gatherer: reg,
	}
}

// StoreError counts a degraded store call. Safe on a nil receiver.
func (m *Metrics) StoreError(operation string) {
	if m == nil {
		return
	}
	m.StoreErrors.WithLabelValues(operation).Inc()
}

// RecordDBPoolStats records database connection pool statistics
func (m *Metrics) RecordDBPoolStats(stats sql.DBStats) {
	m.DBConnPoolStats.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.DBConnPoolStats.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.DBConnPoolStats.WithLabelValues("idle").Set(float64(stats.Idle))
	m.DBConnPoolStats.WithLabelValues("wait_count").Set(float64(stats.WaitCount))
	m.DBConnPoolStats.WithLabelValues("wait_duration_ms").Set(float64(stats.WaitDuration.Milliseconds()))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records count, latency and in-flight requests per route.
// The route label is the matched ServeMux pattern, so path parameters
// do not blow up label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inFlight := m.RequestsInFlight.WithLabelValues(r.Method)
		inFlight.Inc()
		defer inFlight.Dec()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.RequestCounter.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
