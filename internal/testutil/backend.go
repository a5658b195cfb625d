// Package testutil provides testing utilities for the gatekeeper proxy.
package testutil

import (
	"fmt"
	"sync"
	"time"
)

// CountingBackend is a configurable fake backend that records every call.
type CountingBackend struct {
	mu    sync.RWMutex
	delay time.Duration
	calls map[string]int

	// Tracking
	RequestCount int
	LastKey      string
}

// NewCountingBackend creates a fake backend that sleeps delay per request.
func NewCountingBackend(delay time.Duration) *CountingBackend {
	return &CountingBackend{
		delay: delay,
		calls: make(map[string]int),
	}
}

// Request records the call, waits for the configured delay and answers.
func (b *CountingBackend) Request(key string) string {
	b.mu.Lock()
	b.RequestCount++
	b.LastKey = key
	b.calls[key]++
	b.mu.Unlock()

	if b.delay > 0 {
		time.Sleep(b.delay)
	}

	return fmt.Sprintf("response to %s", key)
}

// GetRequestCount returns the total number of backend calls.
func (b *CountingBackend) GetRequestCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.RequestCount
}

// CallsFor returns the number of backend calls for key.
func (b *CountingBackend) CallsFor(key string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.calls[key]
}

// Reset clears all tracking counters.
func (b *CountingBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.RequestCount = 0
	b.LastKey = ""
	b.calls = make(map[string]int)
}
