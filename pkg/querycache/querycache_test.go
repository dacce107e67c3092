package querycache

import (
	"context"
	"testing"

	"github.com/goliatone/go-repository-cache/cache"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) *Cache {
	t.Helper()
	service, err := cache.NewCacheService(cache.DefaultConfig())
	require.NoError(t, err)
	return New(service, "test")
}

func TestFetchKeysOnPartValues(t *testing.T) {
	ctx := context.Background()
	c := newCache(t)
	calls := 0
	fetch := func(value string) cache.FetchFn[string] {
		return func(context.Context) (string, error) {
			calls++
			return value, nil
		}
	}

	got, err := Fetch(ctx, c, fetch("oats"), "foods", "oat")
	require.NoError(t, err)
	require.Equal(t, "oats", got)

	got, err = Fetch(ctx, c, fetch("rice"), "foods", "rice")
	require.NoError(t, err)
	require.Equal(t, "rice", got)

	got, err = Fetch(ctx, c, fetch("ignored"), "foods", "oat")
	require.NoError(t, err)
	require.Equal(t, "oats", got)
	require.Equal(t, 2, calls)
}

func TestKeyQuotesParts(t *testing.T) {
	c := newCache(t)
	require.NotEqual(t, c.Key("ab", "c"), c.Key("a", "bc"))
	require.Equal(t, `test::"foods"::"oat"`, c.Key("foods", "oat"))
}

func TestInvalidateDropsMatchingPrefixOnly(t *testing.T) {
	ctx := context.Background()
	c := newCache(t)
	calls := map[string]int{}
	fetch := func(name string) cache.FetchFn[int] {
		return func(context.Context) (int, error) {
			calls[name]++
			return calls[name], nil
		}
	}

	_, err := Fetch(ctx, c, fetch("foods"), "foods", "oat")
	require.NoError(t, err)
	_, err = Fetch(ctx, c, fetch("foodsx"), "foodsx", "oat")
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(ctx, "foods"))

	got, err := Fetch(ctx, c, fetch("foods"), "foods", "oat")
	require.NoError(t, err)
	require.Equal(t, 2, got)

	got, err = Fetch(ctx, c, fetch("foodsx"), "foodsx", "oat")
	require.NoError(t, err)
	require.Equal(t, 1, got)
}

func TestNilCacheAlwaysFetches(t *testing.T) {
	ctx := context.Background()
	var c *Cache
	require.Nil(t, New(nil, "test"))
	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	for i := 0; i < 2; i++ {
		_, err := Fetch(ctx, c, fetch, "k")
		require.NoError(t, err)
	}
	require.Equal(t, 2, calls)
	require.NoError(t, c.Invalidate(ctx, "k"))
}
