// Package driver replays the concurrent-caller demo against a proxy.
//
// Each caller runs in its own goroutine and issues the same request a
// number of times with a pause in between. Once every caller has
// finished, one final request is issued from the driving goroutine.
//
// Example usage:
//
//	plan := driver.DefaultPlan()
//	results, err := driver.Run(ctx, p, plan, func(r driver.Result) {
//		fmt.Printf("%s - %s\n", r.Caller, r.Response)
//	})
//
// With the default plan and a 5s TTL, the second request of each caller
// is answered from the cache, and so is the final request.
package driver
