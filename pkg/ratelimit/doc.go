/*
Package ratelimit provides per-connection rate limiting for socket event
submission.

Two Limiter implementations are included:

  - ConnLimiter: in-process token buckets, one per connection
  - RedisLimiter: Redis-coordinated token buckets shared across server
    instances, with optional local fallback when Redis is unreachable

A Guard couples a Limiter with a pool so that events from connections
over their rate are dropped before they reach the queue:

	limiter, err := ratelimit.NewConnLimiter(ratelimit.ConnConfig{
		Rate:  100, // events per second per connection
		Burst: 20,
	})
	if err != nil {
		return err
	}
	guard := ratelimit.NewGuard(p, limiter)

	err = guard.SubmitTask(ctx, st, 0)
	if errors.Is(err, errors.ErrRateLimited) {
		// connection is flooding; event was dropped
	}

Limiters can be wrapped with InstrumentLimiter to export Prometheus
counters for allowed and denied events.

All limiters are safe for concurrent use and integrate with the context
package for cancellation and timeouts.
*/
package ratelimit
