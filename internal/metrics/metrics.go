// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Feed refresh attempts, failures, and latency
//   - Size of the current feed snapshot
//   - Connected websocket clients
//   - History batch inserts and errors
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RefreshTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tickerd_refresh_total",
		Help: "Total number of feed refresh attempts",
	})

	RefreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tickerd_refresh_failures_total",
		Help: "Total number of failed feed refreshes",
	})

	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tickerd_refresh_duration_seconds",
		Help:    "Latency of feed refresh calls",
		Buckets: prometheus.DefBuckets,
	})

	FeedRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tickerd_feed_records",
		Help: "Number of records in the current feed snapshot",
	})

	WSClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tickerd_ws_clients",
		Help: "Number of connected websocket clients",
	})

	HistoryInserts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tickerd_history_inserts_total",
		Help: "Total number of history rows inserted",
	})

	HistoryErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tickerd_history_errors_total",
		Help: "Total number of history batch insert failures",
	})
)
