// Package metrics defines the Prometheus instruments shared by the
// screening engine and the HTTP layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sanctions",
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "handler", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sanctions",
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~32s
		},
		[]string{"method", "handler"},
	)

	// Screening domain metrics
	ScreeningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sanctions",
			Subsystem: "screening",
			Name:      "total",
			Help:      "Screenings performed, labeled by outcome",
		},
		[]string{"outcome"}, // hit, clean, error
	)

	ScreeningDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sanctions",
			Subsystem: "screening",
			Name:      "duration_seconds",
			Help:      "Single-record screening latency",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sanctions",
			Subsystem: "screening",
			Name:      "recommendations_total",
			Help:      "Effective recommendations emitted per screening result",
		},
		[]string{"recommendation"},
	)

	// Batch metrics
	BatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sanctions",
			Subsystem: "batch",
			Name:      "total",
			Help:      "Bulk screening batches, labeled by outcome",
		},
		[]string{"outcome"}, // completed, rejected, timeout, cancelled
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sanctions",
			Subsystem: "batch",
			Name:      "duration_seconds",
			Help:      "Whole-batch processing duration",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		},
	)

	// Index metrics
	IndexEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "sanctions",
			Subsystem: "index",
			Name:      "entities",
			Help:      "Entities in the active index snapshot per source list",
		},
		[]string{"source"},
	)

	IndexRebuildsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sanctions",
			Subsystem: "index",
			Name:      "rebuilds_total",
			Help:      "Index snapshot rebuilds since start",
		},
	)
)
