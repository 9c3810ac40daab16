package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestFixedWindowLimiter_Allow(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()
	l := NewFixedWindowLimiter(client, "login", 3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "hit %d", i+1)
	}

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok, "other keys have their own window")

	assert.Equal(t, time.Minute, mr.TTL("ratelimit:login:10.0.0.1"))

	mr.FastForward(time.Minute + time.Second)

	ok, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok, "window resets after expiry")
}

// failExpireHook rejects the next n pipelines that carry an EXPIRE.
type failExpireHook struct {
	n int
}

func (h *failExpireHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *failExpireHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook { return next }

func (h *failExpireHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			if cmd.Name() == "expire" && h.n > 0 {
				h.n--
				return errors.New("expire rejected")
			}
		}
		return next(ctx, cmds)
	}
}

func TestFixedWindowLimiter_FailedExpireDoesNotLockOut(t *testing.T) {
	mr, client := newTestClient(t)
	client.AddHook(&failExpireHook{n: 1})
	ctx := context.Background()
	l := NewFixedWindowLimiter(client, "login", 1, time.Minute)

	_, err := l.Allow(ctx, "10.0.0.1")
	require.Error(t, err)
	assert.False(t, mr.Exists("ratelimit:login:10.0.0.1"), "counter must not be written without its TTL")

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:login:10.0.0.1"))

	ok, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(time.Minute + time.Second)

	ok, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok, "window resets after expiry")
}

func TestFixedWindowLimiter_CounterWithoutTTLHeals(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()
	l := NewFixedWindowLimiter(client, "login", 3, time.Minute)

	require.NoError(t, mr.Set("ratelimit:login:10.0.0.1", "50"))
	require.Equal(t, time.Duration(0), mr.TTL("ratelimit:login:10.0.0.1"))

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:login:10.0.0.1"))

	mr.FastForward(time.Minute + time.Second)

	ok, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFixedWindowLimiter_HitsDoNotExtendWindow(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()
	l := NewFixedWindowLimiter(client, "login", 10, time.Minute)

	_, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	mr.FastForward(40 * time.Second)
	_, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, 20*time.Second, mr.TTL("ratelimit:login:10.0.0.1"))
}

func TestFixedWindowLimiter_RedisDown(t *testing.T) {
	mr, client := newTestClient(t)
	l := NewFixedWindowLimiter(client, "login", 3, time.Minute)
	mr.Close()

	_, err := l.Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := Connect(context.Background(), Config{Addr: addr})
	require.NoError(t, err)
	require.NoError(t, client.Close())

	mr.Close()
	_, err = Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}
