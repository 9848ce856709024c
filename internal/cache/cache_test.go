package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/maxaizer/placement-portal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseCache(t *testing.T, c Cache) {
	ctx := context.Background()

	_, found, err := c.GetStrings(ctx, "companies")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.SetStrings(ctx, "companies", []string{"Acme", "Globex"}, time.Minute))

	values, found, err := c.GetStrings(ctx, "companies")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"Acme", "Globex"}, values)

	require.NoError(t, c.Delete(ctx, "companies"))
	_, found, err = c.GetStrings(ctx, "companies")
	require.NoError(t, err)
	assert.False(t, found)
}

func Test_Memory_RoundTrip(t *testing.T) {
	exerciseCache(t, NewMemory(time.Minute))
}

func Test_Memory_StoresCopy(t *testing.T) {
	c := NewMemory(time.Minute)
	values := []string{"Acme"}
	require.NoError(t, c.SetStrings(context.Background(), "k", values, time.Minute))
	values[0] = "changed"

	cached, _, _ := c.GetStrings(context.Background(), "k")
	assert.Equal(t, []string{"Acme"}, cached)
}

func Test_Redis_RoundTrip(t *testing.T) {
	server := miniredis.RunT(t)

	c, err := NewRedis("redis://" + server.Addr())
	require.NoError(t, err)
	defer c.Close()

	exerciseCache(t, c)
}

func Test_Redis_EntryExpires(t *testing.T) {
	server := miniredis.RunT(t)

	c, err := NewRedis("redis://" + server.Addr())
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.SetStrings(context.Background(), "k", []string{"a"}, time.Second))
	server.FastForward(2 * time.Second)

	_, found, err := c.GetStrings(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func Test_New_SelectsBackend(t *testing.T) {
	server := miniredis.RunT(t)

	c, err := New(configWith(""))
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	c, err = New(configWith("redis://" + server.Addr()))
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, c)
	_ = c.Close()
}

func configWith(redisURL string) config.CacheConfig {
	return config.CacheConfig{RedisURL: redisURL, CompaniesTTL: time.Minute}
}
