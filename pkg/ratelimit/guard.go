package ratelimit

import (
	"context"
	"time"

	cerrors "github.com/vnykmshr/sockpool/pkg/common/errors"
	"github.com/vnykmshr/sockpool/pkg/pool"
)

// SocketSubmitter is the pool surface the guard needs.
type SocketSubmitter interface {
	SubmitTask(st *pool.SocketTask, maxWait time.Duration) error
}

// Guard sits between event producers and the pool, dropping events from
// connections that exceed their rate before they consume queue space.
type Guard struct {
	pool    SocketSubmitter
	limiter Limiter
}

// NewGuard couples a pool with a limiter.
func NewGuard(p SocketSubmitter, l Limiter) *Guard {
	return &Guard{pool: p, limiter: l}
}

// SubmitTask submits st unless its connection is over rate. A denied
// task is destroyed and ErrRateLimited returned; the caller must not
// touch it afterwards.
func (g *Guard) SubmitTask(ctx context.Context, st *pool.SocketTask, maxWait time.Duration) error {
	if !g.limiter.Allow(ctx, st.ConnID) {
		st.Destroy()
		return cerrors.ErrRateLimited
	}
	return g.pool.SubmitTask(st, maxWait)
}

// SubmitTaskWait blocks until the connection is under its rate, then
// submits. The task is destroyed if the wait fails.
func (g *Guard) SubmitTaskWait(ctx context.Context, st *pool.SocketTask, maxWait time.Duration) error {
	if err := g.limiter.Wait(ctx, st.ConnID); err != nil {
		st.Destroy()
		return err
	}
	return g.pool.SubmitTask(st, maxWait)
}

// Forget clears limiter state for a disconnected connection.
func (g *Guard) Forget(ctx context.Context, connID uint64) {
	g.limiter.Forget(ctx, connID)
}
