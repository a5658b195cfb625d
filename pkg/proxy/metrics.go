package proxy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes used as label values.
const (
	outcomeHit    = "hit"
	outcomeMiss   = "miss"
	outcomeDenied = "denied"
)

// Prometheus metrics for proxy requests.
var (
	proxyRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proxy_requests_total",
		Help: "Total proxy requests by outcome",
	}, []string{"outcome"})

	proxyRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "proxy_request_duration_seconds",
		Help:    "Proxy request duration in seconds by outcome",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5},
	}, []string{"outcome"})
)
