// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file exposes Prometheus instrumentation. Metrics() measures request
// counts, latencies, in-flight concurrency, and response sizes, labelled by
// method, registered route (never the raw URL of a matched request, to keep
// cardinality bounded), and status code. Two domain counters live here as
// well so the handlers can record crisis detections and daily check-ins
// without owning their own registry plumbing.
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

	// httpInflight gauges the number of currently processing requests.
	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// httpRespSize captures response sizes in bytes. The API serves small JSON
	// bodies and inline HTML fragments, so the buckets stop at 256KiB.
	httpRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_size_bytes",
			Help: "Size of HTTP responses in bytes.",
			Buckets: []float64{
				256, 512, 1 << 10, 2 << 10, 4 << 10,
				8 << 10, 16 << 10, 64 << 10, 256 << 10,
			},
		},
		[]string{"method", "path"},
	)

	// CrisisDetections counts chat exchanges answered with crisis resources
	// instead of a generated reply. Incremented by the chat handler.
	CrisisDetections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_crisis_detections_total",
			Help: "Total number of chat messages that triggered crisis resources.",
		},
	)

	// CheckinsRecorded counts successful daily check-ins (same-day repeats
	// excluded). Incremented by the streak handler.
	CheckinsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "checkins_recorded_total",
			Help: "Total number of daily check-ins recorded.",
		},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpRespSize,
		CrisisDetections, CheckinsRecorded)
}

// Metrics returns a Gin middleware that instruments requests with Prometheus.
//
// Per request it increments http_requests_total, observes the latency and
// response-size histograms, and tracks the in-flight gauge while the handler
// runs. The path label is c.FullPath(); when no route matched (404) it falls
// back to the raw URL path. Responses with unknown size (-1) skip the size
// histogram.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		dur := time.Since(start).Seconds()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpReqs.WithLabelValues(method, path, status).Inc()
		httpLat.WithLabelValues(method, path).Observe(dur)
		if size := c.Writer.Size(); size >= 0 {
			httpRespSize.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}
