package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	backendSimulated = "simulated"
	backendRedis     = "redis"
)

// Prometheus metrics for backend calls.
var (
	backendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proxy_backend_requests_total",
		Help: "Total backend requests by backend kind",
	}, []string{"backend"})

	backendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "proxy_backend_duration_seconds",
		Help:    "Backend request duration in seconds by backend kind",
		Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5},
	}, []string{"backend"})

	backendErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proxy_backend_errors_total",
		Help: "Total backend store errors by operation",
	}, []string{"operation"}) // "get", "set"
)
