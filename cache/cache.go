package cache

import (
	"time"

	"github.com/arrowlake/kvcache/bus"
	"github.com/arrowlake/kvcache/cacheerr"
	"github.com/arrowlake/kvcache/clock"
	"github.com/arrowlake/kvcache/eviction"
	"github.com/arrowlake/kvcache/expiration"
)

// core is the bare, single-threaded mediator. Concurrency is added by
// wrapping a *core with concurrency.ExclusiveWrapper or
// concurrency.ShardedWrapper; core itself assumes its caller serializes
// access, with locking pulled out into its own package so policies, the
// bus, and the entry map stay simple to reason about in isolation.
type core[K comparable, V any] struct {
	capacity int
	clock    clock.Clock

	entries map[K]*entry[K, V]

	eviction   eviction.Policy[K]
	expiration expiration.Policy[K]
	listeners  *bus.Registry[K, V]

	defaultTTL time.Duration
}

// New constructs a cache core. Capacity must be >= 1 and both Eviction
// and Expiration must be non-nil; violations return InvalidArgument.
func New[K comparable, V any](opt Options[K, V]) (Cache[K, V], error) {
	if opt.Capacity < 1 {
		return nil, cacheerr.New(cacheerr.InvalidArgument, "cache: capacity must be >= 1, got %d", opt.Capacity)
	}
	if opt.Eviction == nil {
		return nil, cacheerr.New(cacheerr.InvalidArgument, "cache: Eviction policy is required")
	}
	if opt.Expiration == nil {
		return nil, cacheerr.New(cacheerr.InvalidArgument, "cache: Expiration policy is required")
	}
	clk := opt.Clock
	if clk == nil {
		clk = clock.Default
	}
	return &core[K, V]{
		capacity:   opt.Capacity,
		clock:      clk,
		entries:    make(map[K]*entry[K, V], opt.Capacity),
		eviction:   opt.Eviction,
		expiration: opt.Expiration,
		listeners:  bus.NewRegistry[K, V](),
		defaultTTL: opt.DefaultTTL,
	}, nil
}

// Get implements Cache.Get: lookup, then expiration check, then notify.
func (c *core[K, V]) Get(k K) (V, bool) {
	e, ok := c.entries[k]
	if !ok {
		c.listeners.NotifyMiss(k)
		var zero V
		return zero, false
	}
	if c.expiration.IsExpired(k) {
		c.dropEntry(k)
		c.listeners.NotifyExpire(k)
		c.listeners.NotifyMiss(k)
		var zero V
		return zero, false
	}
	c.eviction.OnAccess(k)
	c.expiration.OnAccess(k)
	c.listeners.NotifyHit(k)
	return e.val, true
}

// Put implements Cache.Put.
func (c *core[K, V]) Put(k K, v V) {
	c.put(k, v, c.resolveDefaultTTL())
}

// PutTTL implements Cache.PutTTL.
func (c *core[K, V]) PutTTL(k K, v V, ttl time.Duration) {
	c.put(k, v, &ttl)
}

func (c *core[K, V]) resolveDefaultTTL() *time.Duration {
	if c.defaultTTL <= 0 {
		return nil
	}
	ttl := c.defaultTTL
	return &ttl
}

func (c *core[K, V]) put(k K, v V, customTTL *time.Duration) {
	if e, exists := c.entries[k]; exists {
		old := e.val
		e.val = v
		c.eviction.OnAccess(k)
		c.expiration.OnRemove(k)
		c.expiration.OnInsert(k, customTTL)
		c.listeners.NotifyUpdate(k, old, v)
		return
	}

	if len(c.entries) >= c.capacity {
		c.evictOne()
	}

	c.entries[k] = &entry[K, V]{key: k, val: v}
	c.eviction.OnInsert(k)
	c.expiration.OnInsert(k, customTTL)
	c.listeners.NotifyInsert(k, v)
}

// evictOne selects a victim via the eviction policy and drops it,
// emitting Evict. Called only from the insert branch of put, at capacity.
func (c *core[K, V]) evictOne() {
	victim, err := c.eviction.SelectVictim()
	if err != nil {
		// evictOne runs only when len(entries) >= capacity >= 1, so a full
		// cache always has a victim to select; an error here would indicate
		// a policy bug, not a reachable runtime condition.
		return
	}
	e, ok := c.entries[victim]
	if !ok {
		return
	}
	c.dropEntry(victim)
	c.listeners.NotifyEvict(victim, e.val)
}

// dropEntry removes k's storage and eviction/expiration metadata without emitting any
// lifecycle event; callers emit the event appropriate to why the entry
// was dropped.
func (c *core[K, V]) dropEntry(k K) {
	delete(c.entries, k)
	c.eviction.OnRemove(k)
	c.expiration.OnRemove(k)
}

// Remove implements Cache.Remove.
func (c *core[K, V]) Remove(k K) bool {
	if _, ok := c.entries[k]; !ok {
		return false
	}
	c.dropEntry(k)
	c.listeners.NotifyRemove(k)
	return true
}

// Clear implements Cache.Clear.
func (c *core[K, V]) Clear() {
	count := len(c.entries)
	c.entries = make(map[K]*entry[K, V], c.capacity)
	c.eviction.Clear()
	c.expiration.Clear()
	c.listeners.NotifyClear(count)
}

// Contains implements Cache.Contains.
func (c *core[K, V]) Contains(k K) bool {
	if _, ok := c.entries[k]; !ok {
		return false
	}
	return !c.expiration.IsExpired(k)
}

// Size implements Cache.Size.
func (c *core[K, V]) Size() int { return len(c.entries) }

// Capacity implements Cache.Capacity.
func (c *core[K, V]) Capacity() int { return c.capacity }

// SetEvictionPolicy implements Cache.SetEvictionPolicy.
func (c *core[K, V]) SetEvictionPolicy(p eviction.Policy[K]) {
	if p == nil {
		return
	}
	p.Clear()
	for k := range c.entries {
		p.OnInsert(k)
	}
	c.eviction = p
}

// SetExpirationPolicy implements Cache.SetExpirationPolicy.
func (c *core[K, V]) SetExpirationPolicy(p expiration.Policy[K]) {
	if p == nil {
		return
	}
	p.Clear()
	for k := range c.entries {
		p.OnInsert(k, nil)
	}
	c.expiration = p
}

// TimeToLive implements Cache.TimeToLive.
func (c *core[K, V]) TimeToLive(k K) (time.Duration, bool) {
	if _, ok := c.entries[k]; !ok {
		return 0, false
	}
	return c.expiration.TimeToLive(k)
}

// RemoveExpired implements Cache.RemoveExpired.
func (c *core[K, V]) RemoveExpired() int {
	expired := c.expiration.CollectExpired()
	removed := 0
	for _, k := range expired {
		if _, ok := c.entries[k]; !ok {
			continue
		}
		c.dropEntry(k)
		c.listeners.NotifyExpire(k)
		removed++
	}
	return removed
}

// AddListener implements Cache.AddListener.
func (c *core[K, V]) AddListener(h bus.Listener[K, V]) { c.listeners.Add(h) }

// RemoveListener implements Cache.RemoveListener.
func (c *core[K, V]) RemoveListener(h bus.Listener[K, V]) { c.listeners.Remove(h) }
