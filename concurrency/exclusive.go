// Package concurrency provides two adapters over a bare cache core:
// ExclusiveWrapper (one readers-writer lock) and ShardedWrapper (N
// independently-locked shards). Neither introduces new lifecycle events;
// they only add the locking the core itself deliberately omits.
package concurrency

import (
	"sync"
	"time"

	"github.com/arrowlake/kvcache/bus"
	"github.com/arrowlake/kvcache/cache"
	"github.com/arrowlake/kvcache/eviction"
	"github.com/arrowlake/kvcache/expiration"
)

// ExclusiveWrapper serializes every operation on the wrapped cache
// through a single sync.RWMutex. Get takes the exclusive lock too: the
// core mutates eviction/expiration metadata even on a read (LRU
// reordering, lazy TTL deletion), so a shared lock there would race.
// Size, Capacity, and Contains take the shared lock since they never
// mutate core state.
type ExclusiveWrapper[K comparable, V any] struct {
	mu    sync.RWMutex
	inner cache.Cache[K, V]
}

// NewExclusive wraps an existing cache core with a single lock.
func NewExclusive[K comparable, V any](inner cache.Cache[K, V]) *ExclusiveWrapper[K, V] {
	return &ExclusiveWrapper[K, V]{inner: inner}
}

func (w *ExclusiveWrapper[K, V]) Get(k K) (V, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inner.Get(k)
}

func (w *ExclusiveWrapper[K, V]) Put(k K, v V) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inner.Put(k, v)
}

func (w *ExclusiveWrapper[K, V]) PutTTL(k K, v V, ttl time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inner.PutTTL(k, v, ttl)
}

func (w *ExclusiveWrapper[K, V]) Remove(k K) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inner.Remove(k)
}

func (w *ExclusiveWrapper[K, V]) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inner.Clear()
}

func (w *ExclusiveWrapper[K, V]) Contains(k K) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.inner.Contains(k)
}

func (w *ExclusiveWrapper[K, V]) Size() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.inner.Size()
}

func (w *ExclusiveWrapper[K, V]) Capacity() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.inner.Capacity()
}

func (w *ExclusiveWrapper[K, V]) SetEvictionPolicy(p eviction.Policy[K]) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inner.SetEvictionPolicy(p)
}

func (w *ExclusiveWrapper[K, V]) SetExpirationPolicy(p expiration.Policy[K]) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inner.SetExpirationPolicy(p)
}

func (w *ExclusiveWrapper[K, V]) TimeToLive(k K) (time.Duration, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inner.TimeToLive(k)
}

func (w *ExclusiveWrapper[K, V]) RemoveExpired() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inner.RemoveExpired()
}

func (w *ExclusiveWrapper[K, V]) AddListener(h bus.Listener[K, V]) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inner.AddListener(h)
}

func (w *ExclusiveWrapper[K, V]) RemoveListener(h bus.Listener[K, V]) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inner.RemoveListener(h)
}

// WithExclusive runs f under the exclusive lock with direct access to the
// wrapped cache, enabling atomic compound operations (e.g. a
// check-then-act) that the plain Cache surface cannot express.
func (w *ExclusiveWrapper[K, V]) WithExclusive(f func(cache.Cache[K, V])) {
	w.mu.Lock()
	defer w.mu.Unlock()
	f(w.inner)
}

var _ cache.Cache[string, int] = (*ExclusiveWrapper[string, int])(nil)
