package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the cache lifetime used when none is configured.
const DefaultTTL = 5 * time.Second

// Store is a TTL-bounded map from request key to backend response.
// It is safe for concurrent use. Every operation runs inside a single
// critical section, so no caller observes a half-updated entry.
type Store struct {
	mu      sync.Mutex
	entries map[string]CacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source used by Get and Put.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store whose entries live for ttl.
// A non-positive ttl falls back to DefaultTTL.
func NewStore(ttl time.Duration, opts ...StoreOption) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		entries: make(map[string]CacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the lifetime of entries in this store.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get returns the cached value for key if it exists and is not older than
// the TTL. A stale entry discovered here is removed immediately.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return "", false
	}

	if entry.IsExpired(s.now(), s.ttl) {
		delete(s.entries, key)
		CacheEntries.Dec()
		CacheEvictions.WithLabelValues(ReasonLookup).Inc()
		return "", false
	}

	return entry.Value, true
}

// Put inserts or overwrites the entry for key, stamped with the current time.
func (s *Store) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists {
		CacheEntries.Inc()
	}
	s.entries[key] = CacheEntry{
		Value:      value,
		InsertedAt: s.now(),
	}
}

// Sweep removes every entry whose age strictly exceeds the TTL at now and
// returns the number removed. Calling it with nothing stale is a no-op.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, entry := range s.entries {
		if entry.IsExpired(now, s.ttl) {
			delete(s.entries, key)
			removed++
		}
	}

	if removed > 0 {
		CacheEntries.Sub(float64(removed))
		CacheEvictions.WithLabelValues(ReasonSweep).Add(float64(removed))
	}

	return removed
}

// Len returns the number of entries currently held, stale or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
