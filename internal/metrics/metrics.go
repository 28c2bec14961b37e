// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal counts handled HTTP requests by route and status code.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of handled HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// RequestDuration tracks request latency in seconds.
	RequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// RemindersWritten counts successful create and update operations.
	RemindersWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_written_total",
			Help: "Total number of reminder create and update operations",
		},
	)
)

// Init registers all collectors. Call once at startup.
func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(RemindersWritten)
}
