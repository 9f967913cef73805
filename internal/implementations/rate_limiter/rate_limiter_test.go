package ratelimiter

import (
	"context"
	"credstore/internal/core/domain/logging"
	ratelimiter "credstore/internal/core/domain/rate_limiter"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, now func() time.Time) (*Redis, *miniredis.Miniredis, *logging.FakeLogger) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	log := logging.NewFakeLogger()
	return NewRedis(client, log, now), server, log
}

func fixedNow() time.Time {
	return time.Date(2020, 1, 1, 10, 30, 0, 0, time.UTC)
}

func TestLimitIsEnforcedWithinWindow(t *testing.T) {
	limiter, _, _ := newTestLimiter(t, fixedNow)
	ctx := context.Background()
	limit := ratelimiter.Limit{Value: 3, Interval: ratelimiter.Minute}

	for i := 0; i < 3; i++ {
		require.True(t, limiter.CheckLimit(ctx, "rl::test", limit).IsAllowed)
	}
	require.False(t, limiter.CheckLimit(ctx, "rl::test", limit).IsAllowed)
	require.True(t, limiter.CheckLimit(ctx, "rl::other", limit).IsAllowed)
}

func TestWindowKeyExpires(t *testing.T) {
	limiter, server, _ := newTestLimiter(t, fixedNow)
	ctx := context.Background()

	limiter.CheckLimit(ctx, "rl::test", ratelimiter.Limit{Value: 1, Interval: ratelimiter.Hour})

	require.True(t, server.Exists("rl::test::h10"))
	require.Equal(t, time.Hour, server.TTL("rl::test::h10"))
	server.FastForward(time.Hour)
	require.False(t, server.Exists("rl::test::h10"))
}

func TestNextWindowStartsOver(t *testing.T) {
	now := fixedNow()
	limiter, _, _ := newTestLimiter(t, func() time.Time { return now })
	ctx := context.Background()
	limit := ratelimiter.Limit{Value: 1, Interval: ratelimiter.Minute}

	require.True(t, limiter.CheckLimit(ctx, "rl::test", limit).IsAllowed)
	require.False(t, limiter.CheckLimit(ctx, "rl::test", limit).IsAllowed)

	now = now.Add(time.Minute)
	require.True(t, limiter.CheckLimit(ctx, "rl::test", limit).IsAllowed)
}

func TestRedisFailureAllowsAndLogs(t *testing.T) {
	limiter, server, log := newTestLimiter(t, fixedNow)
	server.Close()

	result := limiter.CheckLimit(context.Background(), "rl::test", ratelimiter.Limit{Value: 1, Interval: ratelimiter.Minute})

	require.True(t, result.IsAllowed)
	require.Equal(t, 1, log.Count(logging.ERROR))
}

func TestCanceledContextIsNotAllowed(t *testing.T) {
	limiter, _, _ := newTestLimiter(t, fixedNow)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := limiter.CheckLimit(ctx, "rl::test", ratelimiter.Limit{Value: 1, Interval: ratelimiter.Minute})

	require.False(t, result.IsAllowed)
}
