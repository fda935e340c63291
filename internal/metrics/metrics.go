package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics collection for HTTP requests
type Metrics struct {
	reqTotal   *prometheus.CounterVec
	reqLatency *prometheus.HistogramVec
	wsClients  prometheus.Gauge
	registry   *prometheus.Registry
}

// New creates a Metrics instance with a private Prometheus registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	reqLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	wsClients := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ws_clients",
		Help: "Number of connected WebSocket clients",
	})

	registry.MustRegister(reqTotal, reqLatency, wsClients)

	return &Metrics{
		reqTotal:   reqTotal,
		reqLatency: reqLatency,
		wsClients:  wsClients,
		registry:   registry,
	}
}

// WSClients is the gauge the websocket hub moves on connect/disconnect.
func (m *Metrics) WSClients() prometheus.Gauge { return m.wsClients }

// Middleware collects request counts and latency per method/path/status
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The recorder does not implement http.Hijacker, so websocket
		// upgrades must not be wrapped.
		if r.Header.Get("Upgrade") == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		rw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rw, r)

		status := strconv.Itoa(rw.code)
		path := routeLabel(r)
		m.reqTotal.WithLabelValues(r.Method, path, status).Inc()
		m.reqLatency.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}

// routeLabel prefers the route template ("/api/v1/assets/{id}") over the
// raw path, keeping label cardinality bounded by the route table rather
// than by the number of documents.
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}

// Handler returns the /metrics endpoint handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}
