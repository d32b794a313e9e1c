// Package groupcache decorates a permission.GroupLookup with a
// TTL-memoized, singleflight-deduplicated cache, for deployments where
// resolving a group name means a round trip to storage. Grounded directly
// on the teacher's pkg/edition/java/lite forward.go/match.go
// withLoader(group *singleflight.Group, ttl, load) pattern.
package groupcache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"

	"github.com/lattice-run/permix/permission"
)

// entry wraps the (group, ok) pair a GroupLookup returns, since ttlcache
// needs a single value type per key and a miss is itself worth caching
// briefly (negative caching) so a hot loop over a typo'd group name doesn't
// hammer storage.
type entry struct {
	group *permission.Store
	ok    bool
}

// TTL decorates lookup so that repeated resolutions of the same group name
// within ttl are served from memory, and concurrent resolutions of the same
// currently-uncached name collapse into a single call to lookup.
type TTL struct {
	cache *ttlcache.Cache[string, entry]
	ttl   time.Duration
}

// NewTTL builds a TTL decorator around lookup. Call Start once (it runs the
// loop in its own goroutine) if you want idle entries evicted in the background; Lookup
// works correctly either way since ttlcache.Get re-checks expiry lazily.
func NewTTL(lookup permission.GroupLookup, ttl time.Duration) *TTL {
	group := new(singleflight.Group)
	loader := ttlcache.LoaderFunc[string, entry](
		func(c *ttlcache.Cache[string, entry], name string) *ttlcache.Item[string, entry] {
			g, ok := lookup(name)
			return c.Set(name, entry{group: g, ok: ok}, ttl)
		},
	)
	cache := ttlcache.New[string, entry](
		ttlcache.WithLoader[string, entry](ttlcache.NewSuppressedLoader[string, entry](loader, group)),
	)
	return &TTL{cache: cache, ttl: ttl}
}

// Start runs the cache's background eviction loop until stopped. Mirrors
// cmd/gate's `go pingCache.Start()` pattern; optional, since Get never
// returns an expired entry either way.
func (t *TTL) Start() {
	go t.cache.Start()
}

// Stop halts the background eviction loop started by Start.
func (t *TTL) Stop() {
	t.cache.Stop()
}

// Lookup implements permission.GroupLookup.
func (t *TTL) Lookup(name string) (*permission.Store, bool) {
	item := t.cache.Get(name)
	if item == nil {
		return nil, false
	}
	v := item.Value()
	return v.group, v.ok
}

// Invalidate drops a single cached entry, e.g. after a group is deleted or
// renamed so the next Lookup reflects reality rather than the TTL window.
func (t *TTL) Invalidate(name string) {
	t.cache.Delete(name)
}
