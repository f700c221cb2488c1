package ratelimit

import (
	"context"
)

// Limiter gates socket events per connection.
type Limiter interface {
	// Allow reports whether one event from the connection may happen now.
	Allow(ctx context.Context, connID uint64) bool

	// Wait blocks until one event from the connection can happen or the
	// context is done.
	Wait(ctx context.Context, connID uint64) error

	// Forget discards the state kept for a connection, typically when
	// it disconnects.
	Forget(ctx context.Context, connID uint64)

	// Close releases limiter resources.
	Close() error
}
