package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private
// registry owned by main.
type Metrics struct {
	registry *prometheus.Registry

	QuotesTotal       *prometheus.CounterVec
	UpstreamSeconds   *prometheus.HistogramVec
	UpstreamErrors    *prometheus.CounterVec
	HTTPRequestsTotal *prometheus.CounterVec
}

// Quote outcome label values.
const (
	OutcomeOK            = "ok"
	OutcomeInvalid       = "invalid"
	OutcomeInvalidPair   = "invalid_pair"
	OutcomeUpstreamError = "upstream_error"
)

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		QuotesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookquote_quotes_total",
			Help: "Quote requests by side and outcome",
		}, []string{"side", "outcome"}),
		UpstreamSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bookquote_upstream_request_seconds",
			Help:    "Market-data request latency by operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		UpstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookquote_upstream_errors_total",
			Help: "Failed market-data requests by operation",
		}, []string{"op"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookquote_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
	}

	m.registry.MustRegister(
		m.QuotesTotal,
		m.UpstreamSeconds,
		m.UpstreamErrors,
		m.HTTPRequestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveUpstream records one market-data call. Nil-safe so components
// can run without metrics in tests.
func (m *Metrics) ObserveUpstream(op string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.UpstreamSeconds.WithLabelValues(op).Observe(d.Seconds())
	if err != nil {
		m.UpstreamErrors.WithLabelValues(op).Inc()
	}
}

// CountQuote records one quote request outcome. Nil-safe.
func (m *Metrics) CountQuote(side, outcome string) {
	if m == nil {
		return
	}
	m.QuotesTotal.WithLabelValues(side, outcome).Inc()
}

// CountHTTPRequest records one served HTTP request. Nil-safe.
func (m *Metrics) CountHTTPRequest(route, code string) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, code).Inc()
}

// Handler returns the /metrics endpoint for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
