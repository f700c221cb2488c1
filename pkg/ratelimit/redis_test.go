package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/sockpool/internal/testutil"
	cerrors "github.com/vnykmshr/sockpool/pkg/common/errors"
)

// unreachableClient returns a client pointed at a port nothing listens
// on, with aggressive timeouts so tests fail over quickly.
func unreachableClient(t *testing.T) redis.UniversalClient {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewRedisLimiterValidation(t *testing.T) {
	client := unreachableClient(t)

	cases := []struct {
		name string
		cfg  RedisConfig
	}{
		{"nil client", RedisConfig{KeyPrefix: "p", Rate: 10, Burst: 5}},
		{"empty prefix", RedisConfig{Redis: client, Rate: 10, Burst: 5}},
		{"zero rate", RedisConfig{Redis: client, KeyPrefix: "p", Burst: 5}},
		{"zero burst", RedisConfig{Redis: client, KeyPrefix: "p", Rate: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRedisLimiter(tc.cfg)
			if !errors.Is(err, cerrors.ErrInvalidConfiguration) {
				t.Fatalf("got %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestRedisLimiterDefaults(t *testing.T) {
	rl, err := NewRedisLimiter(RedisConfig{
		Redis:     unreachableClient(t),
		KeyPrefix: "test",
		Rate:      10,
		Burst:     5,
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rl.cfg.Timeout, 500*time.Millisecond)
	testutil.AssertEqual(t, rl.cfg.KeyTTL, time.Hour)
}

func TestRedisLimiterKeyFormat(t *testing.T) {
	rl, err := NewRedisLimiter(RedisConfig{
		Redis:     unreachableClient(t),
		KeyPrefix: "sockpool",
		Rate:      10,
		Burst:     5,
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rl.key(42), "sockpool:conn:42")
}

func TestRedisLimiterFallbackOnError(t *testing.T) {
	local, err := NewConnLimiter(ConnConfig{Rate: 1, Burst: 2})
	testutil.AssertNoError(t, err)

	rl, err := NewRedisLimiter(RedisConfig{
		Redis:     unreachableClient(t),
		KeyPrefix: "test",
		Rate:      100,
		Burst:     100,
		Timeout:   50 * time.Millisecond,
		Fallback:  local,
	})
	testutil.AssertNoError(t, err)
	defer rl.Close()

	// Redis is unreachable, so the local fallback's tighter budget
	// governs admission
	ctx := context.Background()
	testutil.AssertEqual(t, rl.Allow(ctx, 1), true)
	testutil.AssertEqual(t, rl.Allow(ctx, 1), true)
	testutil.AssertEqual(t, rl.Allow(ctx, 1), false)
}

func TestRedisLimiterDenyWithoutFallback(t *testing.T) {
	rl, err := NewRedisLimiter(RedisConfig{
		Redis:     unreachableClient(t),
		KeyPrefix: "test",
		Rate:      100,
		Burst:     100,
		Timeout:   50 * time.Millisecond,
	})
	testutil.AssertNoError(t, err)
	defer rl.Close()

	testutil.AssertEqual(t, rl.Allow(context.Background(), 1), false)
}

func TestRedisLimiterWaitErrorWithoutFallback(t *testing.T) {
	rl, err := NewRedisLimiter(RedisConfig{
		Redis:     unreachableClient(t),
		KeyPrefix: "test",
		Rate:      100,
		Burst:     100,
		Timeout:   50 * time.Millisecond,
	})
	testutil.AssertNoError(t, err)
	defer rl.Close()

	if err := rl.Wait(context.Background(), 1); err == nil {
		t.Fatal("wait with unreachable redis and no fallback should fail")
	}
}
