package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

func TestRedisLimiterAllow(t *testing.T) {
	server, client := newTestRedis(t)
	limiter := NewRedisLimiter(client, 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := limiter.Allow(ctx, "login:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d should be allowed", i)
		assert.Equal(t, 3-i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
		assert.Greater(t, res.ResetAfter, time.Duration(0))
	}

	res, err := limiter.Allow(ctx, "login:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed, "fourth request should be rejected")
	assert.Equal(t, 0, res.Remaining)

	// Other keys have their own budget
	res, err = limiter.Allow(ctx, "login:10.0.0.2")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	// A new window starts once the old one expires
	server.FastForward(time.Minute + time.Second)
	res, err = limiter.Allow(ctx, "login:10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)
}

func TestRedisLimiterSetsExpiry(t *testing.T) {
	server, client := newTestRedis(t)
	limiter := NewRedisLimiter(client, 5, 30*time.Second)

	_, err := limiter.Allow(context.Background(), "signup:1.2.3.4")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, server.TTL("ratelimit:signup:1.2.3.4"))
}

func TestRedisLimiterDefaults(t *testing.T) {
	_, client := newTestRedis(t)
	limiter := NewRedisLimiter(client, 0, 0)

	assert.Equal(t, 10, limiter.limit)
	assert.Equal(t, time.Minute, limiter.window)
}

func TestRedisLimiterUnavailable(t *testing.T) {
	server, client := newTestRedis(t)
	server.Close()

	_, err := NewRedisLimiter(client, 3, time.Minute).Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestConnectRedis(t *testing.T) {
	server, _ := newTestRedis(t)

	client, err := ConnectRedis(context.Background(), "redis://"+server.Addr()+"/0")
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = ConnectRedis(context.Background(), "")
	assert.Error(t, err)

	_, err = ConnectRedis(context.Background(), "not a url")
	assert.Error(t, err)
}
