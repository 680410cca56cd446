package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics holds all Prometheus metrics
type PrometheusMetrics struct {
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Statement metrics
	StatementsTotal   *prometheus.CounterVec
	StatementDuration *prometheus.HistogramVec

	// Schema maintenance metrics
	DomainProvisionedTotal  prometheus.Counter
	BestEffortFailuresTotal *prometheus.CounterVec

	RateLimitedTotal prometheus.Counter
}

// NewPrometheusMetrics registers every collector on reg
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fbschema_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fbschema_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		StatementsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fbschema_statements_total",
				Help: "Total number of statements sent to Firebird",
			},
			[]string{"verb", "status"},
		),
		StatementDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fbschema_statement_duration_seconds",
				Help:    "Statement execution time in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"verb"},
		),

		DomainProvisionedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fbschema_domain_provisioned_total",
				Help: "Number of times the boolean domain was created on first use",
			},
		),
		BestEffortFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fbschema_best_effort_failures_total",
				Help: "Sequence statements that failed and were ignored",
			},
			[]string{"op"},
		),

		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fbschema_http_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
	}
}

// ObserveStatement records one statement sent through an instrumented connection
func (m *PrometheusMetrics) ObserveStatement(verb string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.StatementsTotal.WithLabelValues(verb, status).Inc()
	m.StatementDuration.WithLabelValues(verb).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) DomainProvisioned() {
	m.DomainProvisionedTotal.Inc()
}

func (m *PrometheusMetrics) BestEffortFailed(op string) {
	m.BestEffortFailuresTotal.WithLabelValues(op).Inc()
}

// PrometheusMiddleware is a Gin middleware that records HTTP metrics
func (m *PrometheusMetrics) PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Start timer
		start := time.Now()

		// Process request
		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method
		endpoint := c.FullPath()

		if endpoint == "" {
			endpoint = "unmatched"
		}

		m.HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
	}
}
