// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	// HTTPRequestsTotal counts handled requests by route pattern, method and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waterbuddy_http_requests_total",
			Help: "Total HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration tracks request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "waterbuddy_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"route"},
	)
)

// Hydration metrics
var (
	// WaterLoggedMLTotal counts millilitres logged across all profiles.
	WaterLoggedMLTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waterbuddy_water_logged_ml_total",
			Help: "Total millilitres of water logged",
		},
	)

	// LevelUpsTotal counts level-ups earned.
	LevelUpsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waterbuddy_level_ups_total",
			Help: "Total level-ups earned",
		},
	)

	// DayResetsTotal counts manual day resets.
	DayResetsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waterbuddy_day_resets_total",
			Help: "Total manual resets of today's intake",
		},
	)
)

// Maintenance metrics
var (
	// ExpiredSessionsPurged counts sessions removed by the cleanup job.
	ExpiredSessionsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waterbuddy_expired_sessions_purged_total",
			Help: "Total expired sessions removed by the cleanup job",
		},
	)
)
