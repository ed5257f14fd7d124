package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCache(backend.NewClient(&backend.Options{Addr: mr.Addr()}), "")
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "k", []byte("<svg/>"), 0))
	assert.True(t, mr.Exists("fractal:k"))

	data, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "<svg/>", string(data))

	require.NoError(t, c.Delete(ctx, "k"))
	_, hit, _ = c.Get(ctx, "k")
	assert.False(t, hit)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestRedisCacheTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	require.NoError(t, c.Set(ctx, "k", []byte("x"), time.Second))
	mr.FastForward(2 * time.Second)

	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCachePrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisCache(backend.NewClient(&backend.Options{Addr: mr.Addr()}), "test:")
	defer c.Close()

	require.NoError(t, c.Set(context.Background(), "k", []byte("x"), 0))
	assert.True(t, mr.Exists("test:k"))
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := OpenRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Set(context.Background(), "k", []byte("x"), 0))
	assert.True(t, mr.Exists("fractal:k"))

	_, err = OpenRedis(context.Background(), "not a url")
	assert.Error(t, err)

	mr.Close()
	_, err = OpenRedis(context.Background(), "redis://"+mr.Addr())
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedisCache(t)

	calls := 0
	fill := func() ([]byte, error) {
		calls++
		return []byte("rendered"), nil
	}

	data, hit, err := Fetch(ctx, c, "k", time.Minute, fill)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "rendered", string(data))

	data, hit, err = Fetch(ctx, c, "k", time.Minute, fill)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "rendered", string(data))
	assert.Equal(t, 1, calls)

	_, _, err = Fetch(ctx, NewNullCache(), "k", 0, func() ([]byte, error) {
		return nil, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}
