// Package querycache caches filtered read results on top of a
// go-repository-cache service. Keys are built from the filter values
// themselves; criteria closures never take part in a key.
package querycache

import (
	"context"
	"strconv"
	"strings"

	"github.com/goliatone/go-repository-cache/cache"
)

const separator = cache.KeySeparator

// Cache scopes keys under a namespace. A nil *Cache is valid and always
// fetches from the source.
type Cache struct {
	service   cache.CacheService
	namespace string
}

// New returns a namespaced cache, or nil when service is nil.
func New(service cache.CacheService, namespace string) *Cache {
	if service == nil {
		return nil
	}
	return &Cache{service: service, namespace: namespace}
}

// Key joins the namespace and quoted parts. Quoting keeps a part from
// spilling into its neighbour, so "ab","c" and "a","bc" never collide.
func (c *Cache) Key(parts ...string) string {
	var b strings.Builder
	b.WriteString(c.namespace)
	for _, part := range parts {
		b.WriteString(separator)
		b.WriteString(strconv.Quote(part))
	}
	return b.String()
}

// Invalidate drops every key whose leading parts match.
func (c *Cache) Invalidate(ctx context.Context, parts ...string) error {
	if c == nil {
		return nil
	}
	return c.service.DeleteByPrefix(ctx, c.Key(parts...))
}

// Fetch returns the cached value for the key built from parts, calling fetch
// on a miss.
func Fetch[T any](ctx context.Context, c *Cache, fetch cache.FetchFn[T], parts ...string) (T, error) {
	if c == nil {
		return fetch(ctx)
	}
	return cache.GetOrFetch(ctx, c.service, c.Key(parts...), fetch)
}
