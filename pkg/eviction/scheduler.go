// Package eviction runs the periodic sweep that clears stale cache entries
// independently of request traffic.
package eviction

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for the sweep loop.
var (
	sweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proxy_eviction_sweeps_total",
		Help: "Total number of completed eviction sweeps",
	})

	sweepFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proxy_eviction_sweep_failures_total",
		Help: "Total number of eviction sweeps that panicked",
	})
)

// SweepFunc removes entries stale at now and returns how many it removed.
type SweepFunc func(now time.Time) int

// Scheduler invokes a SweepFunc on a fixed interval from its own goroutine.
type Scheduler struct {
	interval time.Duration
	sweep    SweepFunc
	logger   zerolog.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// NewScheduler creates a stopped scheduler. Call Start to begin sweeping.
func NewScheduler(interval time.Duration, sweep SweepFunc, logger zerolog.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("sweep interval must be positive (got %v)", interval)
	}
	if sweep == nil {
		return nil, fmt.Errorf("sweep func is required")
	}
	return &Scheduler{
		interval: interval,
		sweep:    sweep,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start launches the sweep loop. Calling it more than once has no effect.
func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		go s.run()
	})
}

// Stop halts the sweep loop and waits for it to exit. It is safe to call
// multiple times and before Start.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	// Claim the start slot so a late Start cannot launch the loop.
	s.startOnce.Do(func() {
		close(s.done)
	})
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("Eviction scheduler started")

	for {
		select {
		case <-s.stop:
			s.logger.Debug().Msg("Eviction scheduler stopped")
			return
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

// tick runs one sweep. A panicking sweep is logged and the schedule continues.
func (s *Scheduler) tick(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			sweepFailuresTotal.Inc()
			s.logger.Error().
				Interface("panic", r).
				Msg("Eviction sweep failed")
		}
	}()

	removed := s.sweep(now)
	sweepsTotal.Inc()

	if removed > 0 {
		s.logger.Debug().
			Int("removed", removed).
			Msg("Evicted stale entries")
	}
}
