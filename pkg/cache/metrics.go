package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Eviction reasons used as label values.
const (
	ReasonSweep  = "sweep"
	ReasonLookup = "lookup"
)

var (
	// CacheEntries tracks the number of entries held across all stores
	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "proxy_cache_entries",
			Help: "Current number of entries in the proxy cache",
		},
	)

	// CacheEvictions tracks removed stale entries by reason
	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_cache_evictions_total",
			Help: "Total number of stale cache entries removed",
		},
		[]string{"reason"}, // "sweep", "lookup"
	)
)
