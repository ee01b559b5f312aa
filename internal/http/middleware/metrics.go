// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file exposes Prometheus instrumentation for HTTP traffic. Labels
// are restricted to method, registered route path, and status code to keep
// cardinality bounded; the raw URL path is used only when no route matched.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// httpReqs counts requests by method, route path, and status code.
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// httpLat records request duration in seconds by method and route path.
	// Status is omitted to keep histogram cardinality lower.
	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// httpInflight gauges the number of in-flight requests.
	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// completionReqs counts Groq proxy calls by outcome, separate from the
	// generic HTTP counters because upstream cost is what gets alerted on.
	completionReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "completion_requests_total",
			Help: "Total number of LLM completion proxy requests.",
		},
		[]string{"outcome"}, // ok | upstream_error | error
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, completionReqs)
}

// Metrics returns a Gin middleware that instruments requests with
// Prometheus. Mount promhttp.Handler() on /metrics alongside it.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()

		c.Next()

		httpInflight.Dec()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpReqs.WithLabelValues(method, path, status).Inc()
		httpLat.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveCompletion records the outcome of one completion proxy call.
// Valid outcomes: "ok", "upstream_error", "error".
func ObserveCompletion(outcome string) {
	completionReqs.WithLabelValues(outcome).Inc()
}
