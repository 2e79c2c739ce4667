package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestFakeCache(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates to Fn fields", func(t *testing.T) {
		closed := false
		f := &FakeCache{
			GetFn: func(ctx context.Context, key string) *redis.StringCmd {
				require.Equal(t, "k", key)
				cmd := redis.NewStringCmd(ctx)
				cmd.SetVal("v")
				return cmd
			},
			SetFn: func(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
				require.Equal(t, "k", key)
				require.Equal(t, "v", value)
				require.Equal(t, time.Minute, ttl)
				return redis.NewStatusCmd(ctx)
			},
			CloseFn: func() error {
				closed = true
				return nil
			},
		}

		v, err := f.Get(ctx, "k").Result()
		require.NoError(t, err)
		require.Equal(t, "v", v)
		require.NoError(t, f.Set(ctx, "k", "v", time.Minute).Err())
		require.NoError(t, f.Close())
		require.True(t, closed)
	})

	t.Run("panics without Fn", func(t *testing.T) {
		f := &FakeCache{}
		require.Panics(t, func() { f.Get(ctx, "k") })
		require.Panics(t, func() { f.Set(ctx, "k", "v", 0) })
		require.NoError(t, f.Close())
	})

	t.Run("close error", func(t *testing.T) {
		f := &FakeCache{CloseFn: func() error { return errors.New("close") }}
		require.Error(t, f.Close())
	})
}
