// Package metrics exposes the service's Prometheus instrumentation:
// an HTTP middleware plus counters for the devotional domain paths.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minaret_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "minaret_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	SearchQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minaret_search_queries_total",
		Help: "Quran search queries served.",
	})

	QiblaCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minaret_qibla_cache_total",
		Help: "Qibla lookups by cache outcome.",
	}, []string{"outcome"})

	TimetablesComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minaret_timetables_computed_total",
		Help: "Daily timetables computed by the scheduler.",
	})

	BoardPublishes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minaret_board_publishes_total",
		Help: "MQTT messages published to boards.",
	})

	BoardPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minaret_board_publish_failures_total",
		Help: "MQTT publishes to boards that failed.",
	})
)

// Middleware records request counts and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the /metrics scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
