package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, ContextCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisContextCache(client)
}

func TestRedisContextCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss returns not found without error", func(t *testing.T) {
		_, c := newTestCache(t)
		val, ok, err := c.Get(ctx, 7)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, val)
	})

	t.Run("set then get round trips under the student key", func(t *testing.T) {
		mr, c := newTestCache(t)
		require.NoError(t, c.Set(ctx, 7, []byte(`{"a":1}`), time.Minute))

		val, ok, err := c.Get(ctx, 7)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `{"a":1}`, string(val))
		assert.True(t, mr.Exists("student_context:7"))
	})

	t.Run("entry expires after ttl", func(t *testing.T) {
		mr, c := newTestCache(t)
		require.NoError(t, c.Set(ctx, 3, []byte("x"), 300*time.Second))
		mr.FastForward(301 * time.Second)

		_, ok, err := c.Get(ctx, 3)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalidate removes the entry", func(t *testing.T) {
		_, c := newTestCache(t)
		require.NoError(t, c.Set(ctx, 9, []byte("x"), time.Minute))
		require.NoError(t, c.Invalidate(ctx, 9))

		_, ok, err := c.Get(ctx, 9)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("server down surfaces an error", func(t *testing.T) {
		mr, c := newTestCache(t)
		mr.Close()
		_, _, err := c.Get(ctx, 1)
		assert.Error(t, err)
	})
}

func TestNoopContextCache(t *testing.T) {
	c := NoopContextCache{}
	require.NoError(t, c.Set(context.Background(), 1, []byte("x"), time.Minute))
	_, ok, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
