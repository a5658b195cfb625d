// Package cache provides the in-memory response store used by the proxy.
package cache

import (
	"time"
)

// CacheEntry represents a memoized backend response.
type CacheEntry struct {
	// Value is the backend response
	Value string `json:"value"`

	// InsertedAt is when the response was stored
	InsertedAt time.Time `json:"inserted_at"`
}

// Age returns how long the entry has been cached at the given instant.
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.InsertedAt)
}

// IsExpired returns true if the entry's age strictly exceeds ttl at now.
func (e *CacheEntry) IsExpired(now time.Time, ttl time.Duration) bool {
	return e.Age(now) > ttl
}

// TTL returns the time the entry has left before it expires.
// Returns 0 if already expired.
func (e *CacheEntry) TTL(now time.Time, ttl time.Duration) time.Duration {
	remaining := ttl - e.Age(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
