// Package stats provides a dependency-free lifecycle-event listener built
// on cache-line-padded atomic counters, for callers that want hit/miss/
// eviction tallies without pulling in Prometheus.
package stats

import (
	"github.com/arrowlake/kvcache/bus"
	"github.com/arrowlake/kvcache/internal/util"
)

// Counters is a bus.Listener[K,V] that tallies lifecycle events with
// padded atomics to avoid false sharing under concurrent notification
// (e.g. when registered on every shard of a ShardedWrapper).
type Counters[K comparable, V any] struct {
	bus.BaseListener[K, V]

	hits    util.PaddedAtomicInt64
	misses  util.PaddedAtomicInt64
	inserts util.PaddedAtomicInt64
	updates util.PaddedAtomicInt64
	evicts  util.PaddedAtomicInt64
	expires util.PaddedAtomicInt64
	removes util.PaddedAtomicInt64
	clears  util.PaddedAtomicInt64
}

// New constructs a zeroed Counters listener.
func New[K comparable, V any]() *Counters[K, V] { return &Counters[K, V]{} }

func (c *Counters[K, V]) OnHit(K)  { c.hits.Add(1) }
func (c *Counters[K, V]) OnMiss(K) { c.misses.Add(1) }

func (c *Counters[K, V]) OnInsert(K, V)    { c.inserts.Add(1) }
func (c *Counters[K, V]) OnUpdate(K, V, V) { c.updates.Add(1) }

func (c *Counters[K, V]) OnEvict(K, V) { c.evicts.Add(1) }
func (c *Counters[K, V]) OnExpire(K)   { c.expires.Add(1) }
func (c *Counters[K, V]) OnRemove(K)   { c.removes.Add(1) }
func (c *Counters[K, V]) OnClear(int)  { c.clears.Add(1) }

// Hits reports the observed hit count.
func (c *Counters[K, V]) Hits() int64 { return c.hits.Load() }

// Misses reports the observed miss count.
func (c *Counters[K, V]) Misses() int64 { return c.misses.Load() }

// Inserts reports the observed insert count.
func (c *Counters[K, V]) Inserts() int64 { return c.inserts.Load() }

// Updates reports the observed update count.
func (c *Counters[K, V]) Updates() int64 { return c.updates.Load() }

// Evicts reports the observed capacity-eviction count.
func (c *Counters[K, V]) Evicts() int64 { return c.evicts.Load() }

// Expires reports the observed TTL-expiration count.
func (c *Counters[K, V]) Expires() int64 { return c.expires.Load() }

// Removes reports the observed explicit-removal count.
func (c *Counters[K, V]) Removes() int64 { return c.removes.Load() }

// Clears reports the observed clear count.
func (c *Counters[K, V]) Clears() int64 { return c.clears.Load() }

var _ bus.Listener[string, int] = (*Counters[string, int])(nil)
