// Package metrics exposes Prometheus collectors for cartgate operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cartgate_upstream_requests_total",
		Help: "Total number of calls to the commerce backend, labelled by operation and HTTP status.",
	}, []string{"operation", "status"})

	CartMismatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cartgate_cart_mismatch_total",
		Help: "Total number of identity/cart mismatch diagnostics emitted, labelled by tenant.",
	}, []string{"tenant"})

	AttributionUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cartgate_attribution_updates_total",
		Help: "Total number of marketing attribution attachment calls issued, labelled by tenant.",
	}, []string{"tenant"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cartgate_request_duration_ms",
		Help:    "Gateway request latency in milliseconds, labelled by route.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"route"})
)
