// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

var (
	// analyticsTotal counts analytics computations by operation and result.
	analyticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_insight_analytics_total",
		Help: "Analytics computations by operation and result",
	}, []string{"operation", "result"})

	analyticsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skill_insight_analytics_duration_seconds",
		Help:    "Analytics computation latency including record loading",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"operation"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_insight_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_insight_catalog_cache_lookups_total",
		Help: "Catalog cache lookups by catalog and outcome",
	}, []string{"catalog", "outcome"})

	wsClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skill_insight_ws_clients",
		Help: "Connected analytics websocket clients",
	})
)

func ObserveAnalytics(operation, result string, started time.Time) {
	analyticsTotal.WithLabelValues(operation, result).Inc()
	analyticsDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func ObserveHTTP(method, route, status string) {
	httpRequests.WithLabelValues(method, route, status).Inc()
}

func ObserveCache(catalog string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	cacheLookups.WithLabelValues(catalog, outcome).Inc()
}

func SetWSClients(n int) {
	wsClients.Set(float64(n))
}
