// Package cache provides the cache core: a generic key/value mediator
// that owns entries and drives a pluggable eviction policy (package
// eviction), a pluggable expiration policy (package expiration), and a
// lifecycle event bus (package bus) on every operation.
//
// The core is intentionally not concurrency-safe by itself — wrap it with
// package concurrency's ExclusiveWrapper or ShardedWrapper for multi-
// goroutine use. Locking is kept out of the core so policies, the bus,
// and the entry map stay simple to reason about in isolation.
//
// Basic usage
//
//	c, err := cache.New[string, []byte](cache.Options[string, []byte]{
//	    Capacity:   10_000,
//	    Eviction:   lru.New[string](),
//	    Expiration: none.New[string](),
//	})
//	c.Put("a", []byte("1"))
//	v, ok := c.Get("a")
//
// With per-key TTL
//
//	c, _ := cache.New[string, string](cache.Options[string, string]{
//	    Capacity:   1024,
//	    Eviction:   lru.New[string](),
//	    Expiration: perkey.New[string](nil, clock.Default),
//	})
//	c.PutTTL("tmp", "v", 200*time.Millisecond)
package cache
