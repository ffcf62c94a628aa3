package ratelimiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

func TestNewLoginLimiter_Defaults(t *testing.T) {
	l := NewLoginLimiter(nil, 0, 0)

	assert.Equal(t, 5, l.limit)
	assert.Equal(t, time.Minute, l.window)
	assert.Equal(t, "rl:login:alice", l.key("alice"))
}

func TestLoginLimiter_FailAndBlocked(t *testing.T) {
	client, mr := setupTestRedis(t)
	l := NewLoginLimiter(client, 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		blocked, err := l.Blocked(ctx, "alice")
		require.NoError(t, err)
		assert.False(t, blocked, "attempt %d should be allowed", i)
		require.NoError(t, l.Fail(ctx, "alice"))
	}

	blocked, err := l.Blocked(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, blocked, "4th attempt should be blocked")
	got, _ := mr.Get(l.key("alice"))
	assert.Equal(t, "3", got, "checking must not count as an attempt")

	// Other keys are counted separately
	blocked, err = l.Blocked(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, blocked)
	assert.False(t, mr.Exists(l.key("bob")))

	// The window expires
	assert.Equal(t, time.Minute, mr.TTL(l.key("alice")))
	mr.FastForward(time.Minute + time.Second)
	blocked, err = l.Blocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, blocked, "attempt after the window should be allowed")
}

func TestLoginLimiter_FailKeepsWindowFixed(t *testing.T) {
	client, mr := setupTestRedis(t)
	l := NewLoginLimiter(client, 5, time.Minute)
	ctx := context.Background()

	require.NoError(t, l.Fail(ctx, "alice"))
	mr.FastForward(40 * time.Second)
	require.NoError(t, l.Fail(ctx, "alice"))

	assert.Equal(t, 20*time.Second, mr.TTL(l.key("alice")))
}

func TestLoginLimiter_CounterWithoutTTLExpires(t *testing.T) {
	tests := []struct {
		name string
		seed string
		// touch runs against the stale counter
		touch func(l *LoginLimiter) error
	}{
		{
			name: "repaired by a failure",
			seed: "1",
			touch: func(l *LoginLimiter) error {
				return l.Fail(context.Background(), "alice")
			},
		},
		{
			name: "repaired by a check while blocked",
			seed: "9",
			touch: func(l *LoginLimiter) error {
				blocked, err := l.Blocked(context.Background(), "alice")
				if !blocked {
					return errors.New("expected the stale counter to block")
				}
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mr := setupTestRedis(t)
			l := NewLoginLimiter(client, 2, time.Minute)
			require.NoError(t, mr.Set(l.key("alice"), tt.seed))
			require.Zero(t, mr.TTL(l.key("alice")))

			require.NoError(t, tt.touch(l))
			assert.Equal(t, time.Minute, mr.TTL(l.key("alice")))

			mr.FastForward(24 * time.Hour)
			blocked, err := l.Blocked(context.Background(), "alice")
			require.NoError(t, err)
			assert.False(t, blocked)
		})
	}
}

func TestLoginLimiter_Reset(t *testing.T) {
	client, mr := setupTestRedis(t)
	l := NewLoginLimiter(client, 1, time.Minute)
	ctx := context.Background()

	require.NoError(t, l.Fail(ctx, "alice"))
	blocked, _ := l.Blocked(ctx, "alice")
	require.True(t, blocked)

	require.NoError(t, l.Reset(ctx, "alice"))
	assert.False(t, mr.Exists(l.key("alice")))

	blocked, err := l.Blocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestLoginLimiter_NilClientAllows(t *testing.T) {
	l := NewLoginLimiter(nil, 1, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.NoError(t, l.Fail(ctx, "alice"))
		blocked, err := l.Blocked(ctx, "alice")
		assert.NoError(t, err)
		assert.False(t, blocked)
	}
	assert.NoError(t, l.Reset(ctx, "alice"))
}

func TestLoginLimiter_RedisErrorsFailOpen(t *testing.T) {
	t.Run("redis unreachable", func(t *testing.T) {
		client, mr := setupTestRedis(t)
		mr.Close()
		l := NewLoginLimiter(client, 1, time.Minute)

		blocked, err := l.Blocked(context.Background(), "alice")

		assert.False(t, blocked)
		assert.Error(t, err)
		assert.Error(t, l.Fail(context.Background(), "alice"))
	})

	t.Run("reset fails", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectDel("rl:login:alice").SetErr(errors.New("readonly replica"))
		l := NewLoginLimiter(db, 1, time.Minute)

		err := l.Reset(context.Background(), "alice")

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
