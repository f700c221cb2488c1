/*
Package sockpool provides the asynchronous execution substrate for
socket servers: a worker pool tuned for short-lived socket event tasks,
with per-connection rate limiting and Prometheus instrumentation.

Worker Pool (pkg/pool):
  - resizable worker set over a bounded or unbounded FIFO queue
  - three full-queue policies: reject, block, run on caller
  - socket tasks carrying byte buffers with defined ownership
  - graceful drain on shutdown with a hard deadline

Rate Limiting (pkg/ratelimit):
  - per-connection token buckets, in-process or Redis-coordinated
  - submission guard that sheds events from flooding connections

Metrics (pkg/metrics):
  - Prometheus registry shared by all instrumented components

Example usage:

	import (
		"github.com/vnykmshr/sockpool/pkg/pool"
		"github.com/vnykmshr/sockpool/pkg/ratelimit"
	)

	p := pool.New()
	p.Start(pool.Config{Workers: 8, MaxQueueSize: 1000, Policy: pool.CallFail})
	defer p.Stop(pool.Infinite)

	limiter, _ := ratelimit.NewConnLimiter(ratelimit.ConnConfig{Rate: 100, Burst: 20})
	guard := ratelimit.NewGuard(p, limiter)

	guard.SubmitTask(ctx, task, 0)
*/
package sockpool
