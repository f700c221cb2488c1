package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	cctx "github.com/vnykmshr/sockpool/pkg/common/context"
	cerrors "github.com/vnykmshr/sockpool/pkg/common/errors"
	"github.com/vnykmshr/sockpool/pkg/common/validation"
)

// RedisConfig holds configuration for the Redis-coordinated limiter.
type RedisConfig struct {
	// Redis client used for coordination.
	Redis redis.UniversalClient

	// KeyPrefix namespaces this limiter's keys.
	KeyPrefix string

	// Rate is the sustained number of events per second per connection.
	Rate float64

	// Burst is the number of events a connection may emit at once.
	Burst int

	// Timeout bounds each Redis operation (defaults to 500ms).
	Timeout time.Duration

	// KeyTTL expires idle connection buckets (defaults to 1 hour).
	KeyTTL time.Duration

	// Fallback, if set, takes over when Redis is unreachable.
	Fallback Limiter
}

// RedisLimiter coordinates per-connection token buckets through Redis so
// that a connection's rate holds across server instances.
type RedisLimiter struct {
	cfg        RedisConfig
	tryConsume *redis.Script
}

// Lua script for atomic per-connection token bucket operations.
// Returns {allowed, delay_seconds}.
const luaConnConsume = `
-- KEYS[1]: bucket hash {tokens, last}
-- ARGV[1]: current time (seconds, fractional)
-- ARGV[2]: refill rate
-- ARGV[3]: max capacity
-- ARGV[4]: key ttl (milliseconds)

local now = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local capacity = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'last')
local tokens = tonumber(state[1]) or capacity
local last = tonumber(state[2]) or now

local elapsed = math.max(0, now - last)
tokens = math.min(capacity, tokens + elapsed * rate)

if tokens >= 1 then
    tokens = tokens - 1
    redis.call('HSET', KEYS[1], 'tokens', tostring(tokens), 'last', tostring(now))
    redis.call('PEXPIRE', KEYS[1], ttl)
    return {1, "0"}
else
    redis.call('HSET', KEYS[1], 'tokens', tostring(tokens), 'last', tostring(now))
    redis.call('PEXPIRE', KEYS[1], ttl)
    return {0, tostring((1 - tokens) / rate)}
end
`

// NewRedisLimiter creates a Redis-coordinated per-connection limiter.
func NewRedisLimiter(cfg RedisConfig) (*RedisLimiter, error) {
	if err := validation.ValidateNotNil("ratelimit", "redis", cfg.Redis); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotEmpty("ratelimit", "key_prefix", cfg.KeyPrefix); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositiveFloat("ratelimit", "rate", cfg.Rate); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositive("ratelimit", "burst", cfg.Burst); err != nil {
		return nil, err
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 500 * time.Millisecond
	}
	if cfg.KeyTTL == 0 {
		cfg.KeyTTL = time.Hour
	}
	return &RedisLimiter{
		cfg:        cfg,
		tryConsume: redis.NewScript(luaConnConsume),
	}, nil
}

func (rl *RedisLimiter) key(connID uint64) string {
	return rl.cfg.KeyPrefix + ":conn:" + strconv.FormatUint(connID, 10)
}

// reserve runs the consume script and reports whether the event was
// admitted, and if not, how long until it could be.
func (rl *RedisLimiter) reserve(ctx context.Context, connID uint64) (bool, time.Duration, error) {
	ctx, cancel := cctx.WithTimeoutOrCancel(ctx, rl.cfg.Timeout)
	defer cancel()

	now := float64(time.Now().UnixNano()) / float64(time.Second)
	result, err := rl.tryConsume.Run(ctx, rl.cfg.Redis, []string{rl.key(connID)},
		now,
		rl.cfg.Rate,
		rl.cfg.Burst,
		rl.cfg.KeyTTL.Milliseconds(),
	).Result()
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit: redis consume: %w", err)
	}

	slice, ok := result.([]interface{})
	if !ok || len(slice) != 2 {
		return false, 0, fmt.Errorf("ratelimit: unexpected script result %v", result)
	}
	allowed, _ := slice[0].(int64)
	delayStr, _ := slice[1].(string)
	delay, _ := strconv.ParseFloat(delayStr, 64)

	return allowed == 1, time.Duration(delay * float64(time.Second)), nil
}

// Allow reports whether one event from the connection may happen now.
// When Redis is unreachable the fallback limiter decides; without one
// the event is denied.
func (rl *RedisLimiter) Allow(ctx context.Context, connID uint64) bool {
	allowed, _, err := rl.reserve(ctx, connID)
	if err != nil {
		if rl.cfg.Fallback != nil {
			return rl.cfg.Fallback.Allow(ctx, connID)
		}
		return false
	}
	return allowed
}

// Wait blocks until one event from the connection can happen or the
// context is done.
func (rl *RedisLimiter) Wait(ctx context.Context, connID uint64) error {
	for {
		allowed, delay, err := rl.reserve(ctx, connID)
		if err != nil {
			if rl.cfg.Fallback != nil {
				return rl.cfg.Fallback.Wait(ctx, connID)
			}
			return err
		}
		if allowed {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			if cctx.IsTimedOut(ctx) {
				return fmt.Errorf("ratelimit: wait: %w", cerrors.ErrTimeout)
			}
			return ctx.Err()
		}
		timer.Stop()
	}
}

// Forget deletes the bucket kept for a connection.
func (rl *RedisLimiter) Forget(ctx context.Context, connID uint64) {
	ctx, cancel := cctx.WithTimeoutOrCancel(ctx, rl.cfg.Timeout)
	defer cancel()
	rl.cfg.Redis.Del(ctx, rl.key(connID))
}

// Close releases limiter resources. The Redis client is owned by the
// caller and is left open.
func (rl *RedisLimiter) Close() error {
	if rl.cfg.Fallback != nil {
		return rl.cfg.Fallback.Close()
	}
	return nil
}
