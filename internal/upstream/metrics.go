package upstream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_upstream_requests_total",
			Help: "Requests to the commerce API by resource and outcome",
		},
		[]string{"resource", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_upstream_request_duration_seconds",
			Help:    "Latency of requests to the commerce API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	normalizeShapeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_normalize_shape_total",
			Help: "Response variants seen by the normalizers",
		},
		[]string{"payload", "shape"},
	)
)

const (
	outcomeOK          = "ok"
	outcomeStatus      = "status_error"
	outcomeNetwork     = "network_error"
	outcomeParse       = "parse_error"
	outcomeCanceled    = "canceled"
	outcomeCircuitOpen = "circuit_open"
)
