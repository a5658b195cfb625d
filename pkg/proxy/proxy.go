// Package proxy provides the access-controlled caching proxy that fronts an
// expensive backend.
package proxy

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Sternrassler/gatekeeper-proxy/pkg/access"
	"github.com/Sternrassler/gatekeeper-proxy/pkg/backend"
	"github.com/Sternrassler/gatekeeper-proxy/pkg/cache"
	"github.com/Sternrassler/gatekeeper-proxy/pkg/eviction"
	"github.com/Sternrassler/gatekeeper-proxy/pkg/logging"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Config holds the proxy configuration.
type Config struct {
	// TTL is how long a backend response stays cached
	TTL time.Duration

	// SweepInterval is the eviction period (0 means same as TTL)
	SweepInterval time.Duration

	// Secret is the credential callers must present
	Secret string

	// StoreOptions are passed through to the cache store (tests use WithClock)
	StoreOptions []cache.StoreOption
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		TTL:    cache.DefaultTTL,
		Secret: access.DefaultSecret,
	}
}

// Validate checks the configuration for unusable values.
func (c Config) Validate() error {
	if c.TTL <= 0 {
		return fmt.Errorf("ttl must be positive (got %v)", c.TTL)
	}
	if c.SweepInterval < 0 {
		return fmt.Errorf("sweep_interval must not be negative (got %v)", c.SweepInterval)
	}
	if c.Secret == "" {
		return fmt.Errorf("secret is required")
	}
	return nil
}

// Stats is a point-in-time snapshot of proxy activity.
type Stats struct {
	Entries      int
	Hits         int64
	Misses       int64
	Denied       int64
	BackendCalls int64
}

// Proxy answers requests from its cache, falling back to the backend on a
// miss. It is safe for concurrent use.
type Proxy struct {
	backend    backend.Backend
	credential string
	gate       *access.Gate
	store      *cache.Store
	scheduler  *eviction.Scheduler
	flights    singleflight.Group
	logger     zerolog.Logger

	hits         atomic.Int64
	misses       atomic.Int64
	denied       atomic.Int64
	backendCalls atomic.Int64
}

// New creates a proxy in front of b that presents credential on every
// request. The eviction scheduler starts immediately; call Close to stop it.
func New(b backend.Backend, credential string, cfg Config) (*Proxy, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: backend is required", ErrInvalidArgument)
	}

	if credential == "" {
		return nil, fmt.Errorf("%w: credential is required", ErrInvalidArgument)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	interval := cfg.SweepInterval
	if interval == 0 {
		interval = cfg.TTL
	}

	logger := logging.NewLogger(logging.ComponentProxy)

	store := cache.NewStore(cfg.TTL, cfg.StoreOptions...)

	scheduler, err := eviction.NewScheduler(
		interval,
		store.Sweep,
		logging.NewLogger(logging.ComponentEviction),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	p := &Proxy{
		backend:    b,
		credential: credential,
		gate:       access.NewGate(cfg.Secret, logging.NewLogger(logging.ComponentAccess)),
		store:      store,
		scheduler:  scheduler,
		logger:     logger,
	}

	scheduler.Start()

	logger.Debug().
		Dur("ttl", cfg.TTL).
		Dur("sweep_interval", interval).
		Msg("Proxy started")

	return p, nil
}

// Request returns the response for key. Callers with the wrong credential
// receive access.DeniedMessage and cause no cache or backend activity.
func (p *Proxy) Request(key string) string {
	start := time.Now()

	if !p.gate.Allow(p.credential) {
		p.denied.Add(1)
		p.observe(outcomeDenied, start)
		return access.DeniedMessage
	}

	if value, ok := p.store.Get(key); ok {
		p.hits.Add(1)
		p.observe(outcomeHit, start)
		p.logger.Debug().Str("key", key).Msg("Returning cached response")
		return value
	}

	p.misses.Add(1)
	value := p.load(key)
	p.observe(outcomeMiss, start)

	return value
}

// load fetches key from the backend and caches it. Concurrent misses for
// the same key share one backend call; distinct keys load in parallel.
func (p *Proxy) load(key string) string {
	v, _, shared := p.flights.Do(key, func() (interface{}, error) {
		// A flight for this key may have completed between our miss and now.
		if value, ok := p.store.Get(key); ok {
			return value, nil
		}

		p.backendCalls.Add(1)
		value := p.backend.Request(key)
		p.store.Put(key, value)

		p.logger.Debug().
			Str("key", key).
			Dur("ttl", p.store.TTL()).
			Msg("Cached response")

		return value, nil
	})

	if shared {
		p.logger.Debug().Str("key", key).Msg("Joined in-flight backend request")
	}

	return v.(string)
}

func (p *Proxy) observe(outcome string, start time.Time) {
	proxyRequestsTotal.WithLabelValues(outcome).Inc()
	proxyRequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}

// Stats returns a snapshot of request counters and the current cache size.
func (p *Proxy) Stats() Stats {
	return Stats{
		Entries:      p.store.Len(),
		Hits:         p.hits.Load(),
		Misses:       p.misses.Load(),
		Denied:       p.denied.Load(),
		BackendCalls: p.backendCalls.Load(),
	}
}

// Sweep removes stale entries immediately and returns how many were removed.
func (p *Proxy) Sweep(now time.Time) int {
	return p.store.Sweep(now)
}

// Close stops the eviction scheduler. It is safe to call more than once.
func (p *Proxy) Close() error {
	p.scheduler.Stop()
	p.logger.Debug().Msg("Proxy stopped")
	return nil
}
