// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creditsea",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "creditsea",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	loansSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "creditsea",
			Subsystem: "loans",
			Name:      "submitted_total",
			Help:      "Total number of loan applications submitted.",
		},
	)

	loansReviewed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creditsea",
			Subsystem: "loans",
			Name:      "reviewed_total",
			Help:      "Total number of loan status changes, by new status.",
		},
		[]string{"status"},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creditsea",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Total number of login attempts, by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		loansSubmitted,
		loansReviewed,
		logins,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		if path == "/metrics" {
			return
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// LoanSubmitted counts a successful loan submission.
func LoanSubmitted() { loansSubmitted.Inc() }

// LoanReviewed counts a status change to status.
func LoanReviewed(status string) { loansReviewed.WithLabelValues(status).Inc() }

// LoginAttempt counts a login by outcome ("success" or "failure").
func LoginAttempt(success bool) {
	if success {
		logins.WithLabelValues("success").Inc()
		return
	}
	logins.WithLabelValues("failure").Inc()
}
