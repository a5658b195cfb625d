// Package cache provides the in-memory response store behind the proxy.
//
// The store memoizes backend responses per request key for a fixed
// time-to-live:
//
// - Get never returns an entry older than the TTL
// - Stale entries found by Get are deleted on the spot
// - Sweep removes every stale entry in one pass (driven by pkg/eviction)
// - Get, Put and Sweep share one mutex and are linearizable
//
// # Basic Usage
//
//	store := cache.NewStore(5 * time.Second)
//
//	if value, ok := store.Get("request1"); ok {
//		return value
//	}
//
//	value := backend.Request("request1")
//	store.Put("request1", value)
//
// # Eviction
//
//	// Remove everything older than the TTL right now
//	removed := store.Sweep(time.Now())
//
// # Testing
//
// WithClock replaces the time source so expiry can be exercised without
// sleeping:
//
//	now := time.Now()
//	store := cache.NewStore(5*time.Second, cache.WithClock(func() time.Time { return now }))
//
// # Metrics
//
// The store exports Prometheus metrics:
//
//   - proxy_cache_entries - Entries currently held
//   - proxy_cache_evictions_total{reason} - Stale entries removed ("sweep", "lookup")
package cache
