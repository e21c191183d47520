package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	Namespace = "itemdesk"

	LabelOperation = "operation"
	LabelStatus    = "status"
	LabelService   = "service"
	LabelMethod    = "method"
	LabelCode      = "code"

	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics owns a private registry so tests and multiple apps never collide
// on the global one.
type Metrics struct {
	registry *prometheus.Registry

	PersistTotal  *prometheus.CounterVec
	Authenticated prometheus.Gauge
	RPCDuration   *prometheus.HistogramVec
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
}

// New registers all collectors, plus the Go runtime and process collectors,
// on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PersistTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "session",
			Name:      "persist_total",
			Help:      "Session write-through attempts by operation and status",
		}, []string{LabelOperation, LabelStatus}),
		Authenticated: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "session",
			Name:      "authenticated",
			Help:      "1 while the local session is signed in",
		}),
		RPCDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of remote procedure calls by service, method and result code",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{LabelService, LabelMethod, LabelCode}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served by method and status code",
		}, []string{LabelMethod, LabelCode}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{LabelMethod}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObservePersist records a session write-through.
func (m *Metrics) ObservePersist(op string, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.PersistTotal.WithLabelValues(op, status).Inc()
}

// ObserveAuthenticated tracks the signed-in flag.
func (m *Metrics) ObserveAuthenticated(authenticated bool) {
	if authenticated {
		m.Authenticated.Set(1)
		return
	}
	m.Authenticated.Set(0)
}

// ObserveRPC records one remote call. code is "ok" or a Connect error code.
func (m *Metrics) ObserveRPC(service, method, code string, d time.Duration) {
	m.RPCDuration.WithLabelValues(service, method, code).Observe(d.Seconds())
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method string, status int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method).Observe(d.Seconds())
}
