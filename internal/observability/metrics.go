package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the service's Prometheus collectors. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	registry         *prometheus.Registry
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	errors           *prometheus.CounterVec
	cartMutations    *prometheus.CounterVec
	resolutions      *prometheus.CounterVec
	sessionConflicts prometheus.Counter
	tokenFailures    *prometheus.CounterVec
	activityEvents   *prometheus.CounterVec
}

// NewMetrics registers collectors on a private registry.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Failed HTTP requests by error code.",
		}, []string{"path", "method", "code"}),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Cart mutations by operation and outcome.",
		}, []string{"op", "result"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_resolutions_total",
			Help:      "Resolved request identities by kind.",
		}, []string{"identity"}),
		sessionConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_conflicts_total",
			Help:      "Requests carrying both a valid admin and a valid user session.",
		}),
		tokenFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_failures_total",
			Help:      "Rejected session tokens by slot and failure kind.",
		}, []string{"slot", "kind"}),
		activityEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_events_total",
			Help:      "Published activity events by type.",
		}, []string{"type"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.errors,
		m.cartMutations,
		m.resolutions,
		m.sessionConflicts,
		m.tokenFailures,
		m.activityEvents,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(path, method, code).Inc()
}

// RecordCartMutation counts an add/remove and whether it changed the cart.
func (m *Metrics) RecordCartMutation(op, result string) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(op, result).Inc()
}

// RecordResolution counts the identity kind a request resolved to.
func (m *Metrics) RecordResolution(identity string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(identity).Inc()
}

// RecordSessionConflict counts admin-over-user precedence decisions.
func (m *Metrics) RecordSessionConflict() {
	if m == nil {
		return
	}
	m.sessionConflicts.Inc()
}

// RecordTokenFailure counts a rejected token in the given slot.
func (m *Metrics) RecordTokenFailure(slot, kind string) {
	if m == nil {
		return
	}
	m.tokenFailures.WithLabelValues(slot, kind).Inc()
}

// RecordActivity counts a handled activity event.
func (m *Metrics) RecordActivity(eventType string) {
	if m == nil {
		return
	}
	m.activityEvents.WithLabelValues(eventType).Inc()
}
