// Package metrics provides the Prometheus registry used by the proxy.
// All metrics are defined in their respective packages (proxy, cache,
// eviction, access, backend) to keep those packages self-contained.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the proxy.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Handler returns the HTTP handler exposing every registered metric.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Proxy Metrics (pkg/proxy):
//   - proxy_requests_total{outcome} (Counter): Requests by outcome (hit, miss, denied)
//   - proxy_request_duration_seconds{outcome} (Histogram): Request duration by outcome
//
// Cache Metrics (pkg/cache):
//   - proxy_cache_entries (Gauge): Entries currently cached
//   - proxy_cache_evictions_total{reason} (Counter): Stale entries removed (sweep, lookup)
//
// Eviction Metrics (pkg/eviction):
//   - proxy_eviction_sweeps_total (Counter): Completed sweeps
//   - proxy_eviction_sweep_failures_total (Counter): Sweeps that panicked
//
// Access Metrics (pkg/access):
//   - proxy_access_denied_total (Counter): Requests rejected by the gate
//
// Backend Metrics (pkg/backend):
//   - proxy_backend_requests_total{backend} (Counter): Backend calls (simulated, redis)
//   - proxy_backend_duration_seconds{backend} (Histogram): Backend call duration
//   - proxy_backend_errors_total{operation} (Counter): Origin store errors (get, set)
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(proxy_requests_total{outcome="hit"}[5m])) /
//   sum(rate(proxy_requests_total{outcome=~"hit|miss"}[5m]))
//
//   # Denial Rate
//   rate(proxy_access_denied_total[5m])
//
//   # P95 Backend Latency
//   histogram_quantile(0.95, rate(proxy_backend_duration_seconds_bucket[5m]))
//
//   # Sweep Health
//   increase(proxy_eviction_sweep_failures_total[1h]) > 0
