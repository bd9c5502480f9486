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

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisFromClient(rdb), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "catalog:item:1", item{Name: "a", Count: 2}, time.Minute))

	var got item
	found, err := c.GetJSON(ctx, "catalog:item:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, item{Name: "a", Count: 2}, got)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	var got item
	found, err := c.GetJSON(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", item{Name: "x"}, time.Second))
	mr.FastForward(2 * time.Second)

	found, err := c.GetJSON(ctx, "k", &item{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_DeletePrefix(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "catalog:universities:list:1:10", []int{1}, time.Minute))
	require.NoError(t, c.SetJSON(ctx, "catalog:universities:list:2:10", []int{2}, time.Minute))
	require.NoError(t, c.SetJSON(ctx, "catalog:scholarships:list:1:10", []int{3}, time.Minute))

	require.NoError(t, c.DeletePrefix(ctx, "catalog:universities:"))

	assert.False(t, mr.Exists("catalog:universities:list:1:10"))
	assert.False(t, mr.Exists("catalog:universities:list:2:10"))
	assert.True(t, mr.Exists("catalog:scholarships:list:1:10"))
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", 1, time.Minute))
	found, err := c.GetJSON(ctx, "k", new(int))
	require.NoError(t, err)
	assert.False(t, found)
}
