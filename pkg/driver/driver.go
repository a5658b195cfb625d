package driver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// FinalCaller names the request issued after all callers join.
const FinalCaller = "final"

// Requester is the part of the proxy the driver needs.
type Requester interface {
	Request(key string) string
}

// Caller is one concurrent requester in a plan.
type Caller struct {
	Name string
	Key  string
}

// Plan describes a demo run.
type Plan struct {
	// Callers run concurrently, one goroutine each
	Callers []Caller
	// Repeats is how many times each caller issues its request
	Repeats int
	// Pause separates consecutive requests of one caller
	Pause time.Duration
	// FinalKey is requested once after every caller has finished (empty skips it)
	FinalKey string
}

// DefaultPlan returns the two-caller scenario: each caller requests its key
// twice, three seconds apart, then request1 is requested once more.
func DefaultPlan() Plan {
	return Plan{
		Callers: []Caller{
			{Name: "Caller-1", Key: "request1"},
			{Name: "Caller-2", Key: "request2"},
		},
		Repeats:  2,
		Pause:    3 * time.Second,
		FinalKey: "request1",
	}
}

// Result is the outcome of one request.
type Result struct {
	Caller   string
	Key      string
	Attempt  int
	Response string
	Duration time.Duration
}

// Run executes plan against r. onResult, if non-nil, is called for every
// result as it completes; calls are serialized. Results are returned in
// completion order. Cancelling ctx interrupts pauses, not in-flight requests.
func Run(ctx context.Context, r Requester, plan Plan, onResult func(Result)) ([]Result, error) {
	if r == nil {
		return nil, fmt.Errorf("requester is required")
	}
	if plan.Repeats <= 0 {
		return nil, fmt.Errorf("repeats must be positive (got %d)", plan.Repeats)
	}

	start := time.Now()

	var (
		mu      sync.Mutex
		results []Result
	)
	record := func(res Result) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, res)
		if onResult != nil {
			onResult(res)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range plan.Callers {
		c := c
		g.Go(func() error {
			return runCaller(gctx, r, c, plan, record)
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn().
			Err(err).
			Int("completed", len(results)).
			Msg("Demo interrupted - returning partial results")
		return results, fmt.Errorf("run callers: %w", err)
	}

	if plan.FinalKey != "" {
		record(issue(r, FinalCaller, plan.FinalKey, 1))
	}

	log.Info().
		Int("callers", len(plan.Callers)).
		Int("requests", len(results)).
		Dur("duration", time.Since(start)).
		Msg("Demo complete")

	return results, nil
}

// runCaller issues the caller's requests, pausing between them.
func runCaller(ctx context.Context, r Requester, c Caller, plan Plan, record func(Result)) error {
	for attempt := 1; attempt <= plan.Repeats; attempt++ {
		record(issue(r, c.Name, c.Key, attempt))

		if attempt == plan.Repeats || plan.Pause <= 0 {
			continue
		}

		timer := time.NewTimer(plan.Pause)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Debug().
				Str("caller", c.Name).
				Int("attempts", attempt).
				Msg("Caller stopping (context cancelled)")
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

func issue(r Requester, caller, key string, attempt int) Result {
	start := time.Now()
	response := r.Request(key)
	return Result{
		Caller:   caller,
		Key:      key,
		Attempt:  attempt,
		Response: response,
		Duration: time.Since(start),
	}
}
