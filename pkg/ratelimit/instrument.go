package ratelimit

import (
	"context"
	"time"

	"github.com/vnykmshr/sockpool/pkg/metrics"
)

// InstrumentLimiter wraps a limiter with Prometheus counters. The
// limiterType label distinguishes local from redis limiters.
func InstrumentLimiter(l Limiter, limiterType, name string, registry *metrics.Registry) Limiter {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}
	return &instrumentedLimiter{
		inner:    l,
		typ:      limiterType,
		name:     name,
		registry: registry,
	}
}

type instrumentedLimiter struct {
	inner    Limiter
	typ      string
	name     string
	registry *metrics.Registry
}

func (il *instrumentedLimiter) Allow(ctx context.Context, connID uint64) bool {
	il.registry.RateLimitRequests.WithLabelValues(il.typ, il.name).Inc()
	allowed := il.inner.Allow(ctx, connID)
	if allowed {
		il.registry.RateLimitAllowed.WithLabelValues(il.typ, il.name).Inc()
	} else {
		il.registry.RateLimitDenied.WithLabelValues(il.typ, il.name).Inc()
	}
	return allowed
}

func (il *instrumentedLimiter) Wait(ctx context.Context, connID uint64) error {
	il.registry.RateLimitRequests.WithLabelValues(il.typ, il.name).Inc()
	start := time.Now()
	err := il.inner.Wait(ctx, connID)
	il.registry.RateLimitWaitTime.WithLabelValues(il.typ, il.name).Observe(time.Since(start).Seconds())
	if err != nil {
		il.registry.RateLimitDenied.WithLabelValues(il.typ, il.name).Inc()
	} else {
		il.registry.RateLimitAllowed.WithLabelValues(il.typ, il.name).Inc()
	}
	return err
}

func (il *instrumentedLimiter) Forget(ctx context.Context, connID uint64) {
	il.inner.Forget(ctx, connID)
}

func (il *instrumentedLimiter) Close() error {
	return il.inner.Close()
}
