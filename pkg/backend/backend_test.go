package backend

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestResponse(t *testing.T) {
	if got, want := Response("request1"), "Backend response to request1"; got != want {
		t.Errorf("Response() = %q, want %q", got, want)
	}
}

func TestNewSimulated_NegativeLatency(t *testing.T) {
	b := NewSimulated(-1*time.Second, zerolog.Nop())
	if b.Latency() != 0 {
		t.Errorf("Latency() = %v, want 0", b.Latency())
	}
}

func TestSimulated_Request(t *testing.T) {
	buf := &bytes.Buffer{}
	latency := 50 * time.Millisecond
	b := NewSimulated(latency, zerolog.New(buf))

	start := time.Now()
	got := b.Request("request1")
	elapsed := time.Since(start)

	if got != Response("request1") {
		t.Errorf("Request() = %q, want %q", got, Response("request1"))
	}
	if elapsed < latency {
		t.Errorf("Request() returned after %v, want at least %v", elapsed, latency)
	}
	if b.Invocations() != 1 {
		t.Errorf("Invocations() = %d, want 1", b.Invocations())
	}
	if !strings.Contains(buf.String(), "request1") {
		t.Errorf("expected invocation to be logged with key, got %q", buf.String())
	}
}

func TestSimulated_Deterministic(t *testing.T) {
	b := NewSimulated(0, zerolog.Nop())

	first := b.Request("k")
	second := b.Request("k")
	if first != second {
		t.Errorf("Request() not deterministic: %q vs %q", first, second)
	}
	if b.Invocations() != 2 {
		t.Errorf("Invocations() = %d, want 2", b.Invocations())
	}
}

func TestSimulated_ConcurrentInvocations(t *testing.T) {
	b := NewSimulated(0, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Request("k")
		}()
	}
	wg.Wait()

	if b.Invocations() != 50 {
		t.Errorf("Invocations() = %d, want 50", b.Invocations())
	}
}

func TestNewRedis_Validation(t *testing.T) {
	if _, err := NewRedis(nil, NewSimulated(0, zerolog.Nop()), zerolog.Nop()); err == nil {
		t.Error("NewRedis() with nil redis client should return error")
	}
}
