// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maintenx_http_requests_total",
			Help: "HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "maintenx_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ApprovalActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maintenx_approval_actions_total",
			Help: "Approve/reject decisions by resource kind and action.",
		},
		[]string{"kind", "action"},
	)

	SyncPushesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maintenx_sync_pushes_total",
			Help: "Spreadsheet sync pushes by entity kind and outcome.",
		},
		[]string{"type", "outcome"},
	)
)
