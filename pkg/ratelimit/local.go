package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/vnykmshr/sockpool/pkg/common/validation"
)

// ConnConfig holds configuration for the in-process connection limiter.
type ConnConfig struct {
	// Rate is the sustained number of events per second per connection.
	Rate float64

	// Burst is the number of events a connection may emit at once.
	Burst int

	// MaxEntries caps how many connection buckets are kept. When the
	// cap is exceeded the table is cleared and buckets rebuild on
	// demand. 0 means 65536.
	MaxEntries int
}

// ConnLimiter applies an independent token bucket to every connection.
type ConnLimiter struct {
	mu      sync.Mutex
	buckets map[uint64]*rate.Limiter

	limit      rate.Limit
	burst      int
	maxEntries int
}

// NewConnLimiter creates an in-process per-connection limiter.
func NewConnLimiter(cfg ConnConfig) (*ConnLimiter, error) {
	if err := validation.ValidatePositiveFloat("ratelimit", "rate", cfg.Rate); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositive("ratelimit", "burst", cfg.Burst); err != nil {
		return nil, err
	}
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = 65536
	}
	return &ConnLimiter{
		buckets:    make(map[uint64]*rate.Limiter),
		limit:      rate.Limit(cfg.Rate),
		burst:      cfg.Burst,
		maxEntries: cfg.MaxEntries,
	}, nil
}

func (cl *ConnLimiter) bucket(connID uint64) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	b, ok := cl.buckets[connID]
	if !ok {
		if len(cl.buckets) >= cl.maxEntries {
			cl.buckets = make(map[uint64]*rate.Limiter)
		}
		b = rate.NewLimiter(cl.limit, cl.burst)
		cl.buckets[connID] = b
	}
	return b
}

// Allow reports whether one event from the connection may happen now.
func (cl *ConnLimiter) Allow(_ context.Context, connID uint64) bool {
	return cl.bucket(connID).Allow()
}

// Wait blocks until one event from the connection can happen.
func (cl *ConnLimiter) Wait(ctx context.Context, connID uint64) error {
	return cl.bucket(connID).Wait(ctx)
}

// Forget drops the bucket kept for a connection.
func (cl *ConnLimiter) Forget(_ context.Context, connID uint64) {
	cl.mu.Lock()
	delete(cl.buckets, connID)
	cl.mu.Unlock()
}

// Close releases limiter resources.
func (cl *ConnLimiter) Close() error {
	cl.mu.Lock()
	cl.buckets = make(map[uint64]*rate.Limiter)
	cl.mu.Unlock()
	return nil
}
