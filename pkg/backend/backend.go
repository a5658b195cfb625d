// Package backend provides the expensive operations the proxy fronts.
package backend

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLatency is the simulated cost of a single backend request.
const DefaultLatency = 2 * time.Second

// Backend performs the real work for a request key.
// Implementations must be safe for concurrent use and always return a response.
type Backend interface {
	Request(key string) string
}

// Response formats the deterministic response for key.
func Response(key string) string {
	return fmt.Sprintf("Backend response to %s", key)
}

// Simulated is a Backend that sleeps for a fixed latency before answering.
type Simulated struct {
	latency     time.Duration
	invocations atomic.Int64
	logger      zerolog.Logger
}

// NewSimulated creates a simulated backend. A negative latency is treated as zero.
func NewSimulated(latency time.Duration, logger zerolog.Logger) *Simulated {
	if latency < 0 {
		latency = 0
	}
	return &Simulated{
		latency: latency,
		logger:  logger,
	}
}

// Request blocks for the configured latency and returns Response(key).
func (s *Simulated) Request(key string) string {
	s.invocations.Add(1)
	start := time.Now()

	s.logger.Info().
		Str("key", key).
		Msg("Backend processing request")

	time.Sleep(s.latency)

	backendDuration.WithLabelValues(backendSimulated).Observe(time.Since(start).Seconds())
	backendRequestsTotal.WithLabelValues(backendSimulated).Inc()

	return Response(key)
}

// Invocations returns how many times Request has been called.
func (s *Simulated) Invocations() int64 {
	return s.invocations.Load()
}

// Latency returns the simulated delay per request.
func (s *Simulated) Latency() time.Duration {
	return s.latency
}
