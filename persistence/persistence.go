// Package persistence defines the cache's persistence collaborator
// boundary: a bus.Listener that forwards Insert/Update/Evict/Remove/Clear
// events to a Store[K,V]. The wire format and actual durability are
// deliberately external — the library only specifies the event-consuming
// contract, matching the Non-goal against "arbitrary user-supplied value
// serialisation."
package persistence

import (
	"sync"

	"github.com/arrowlake/kvcache/bus"
	"github.com/rs/zerolog"
)

// Store is the collaborator a Listener drives. Implementations decide
// their own durability and serialization strategy.
type Store[K comparable, V any] interface {
	Put(k K, v V) error
	Delete(k K) error
	Clear() error
}

var pkgLogger = zerolog.Nop()

// SetLogger installs the logger used to report Store errors. The zero
// value keeps the package silent.
func SetLogger(l zerolog.Logger) { pkgLogger = l }

// Listener forwards cache lifecycle events to a Store. Expire events are
// treated identically to Evict and Remove: all three mean "the key is no
// longer resident" from the store's point of view. Store errors are
// logged and otherwise swallowed, matching the bus's contained-failure
// contract for listeners.
type Listener[K comparable, V any] struct {
	bus.BaseListener[K, V]
	store Store[K, V]
}

// New constructs a Listener writing through to store.
func New[K comparable, V any](store Store[K, V]) *Listener[K, V] {
	return &Listener[K, V]{store: store}
}

func (l *Listener[K, V]) OnInsert(k K, v V)           { l.put(k, v) }
func (l *Listener[K, V]) OnUpdate(k K, _, newValue V) { l.put(k, newValue) }

func (l *Listener[K, V]) put(k K, v V) {
	if err := l.store.Put(k, v); err != nil {
		pkgLogger.Warn().Err(err).Interface("key", k).Msg("persistence: store put failed")
	}
}

func (l *Listener[K, V]) OnEvict(k K, _ V) { l.delete(k) }
func (l *Listener[K, V]) OnExpire(k K)     { l.delete(k) }
func (l *Listener[K, V]) OnRemove(k K)     { l.delete(k) }

func (l *Listener[K, V]) delete(k K) {
	if err := l.store.Delete(k); err != nil {
		pkgLogger.Warn().Err(err).Interface("key", k).Msg("persistence: store delete failed")
	}
}

func (l *Listener[K, V]) OnClear(int) {
	if err := l.store.Clear(); err != nil {
		pkgLogger.Warn().Err(err).Msg("persistence: store clear failed")
	}
}

var _ bus.Listener[string, int] = (*Listener[string, int])(nil)

// MemoryStore is a minimal in-memory Store demonstrating the boundary;
// it never fails.
type MemoryStore[K comparable, V any] struct {
	mu   sync.Mutex
	data map[K]V
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore[K comparable, V any]() *MemoryStore[K, V] {
	return &MemoryStore[K, V]{data: make(map[K]V)}
}

func (s *MemoryStore[K, V]) Put(k K, v V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[k] = v
	return nil
}

func (s *MemoryStore[K, V]) Delete(k K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, k)
	return nil
}

func (s *MemoryStore[K, V]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[K]V)
	return nil
}

// Snapshot returns a copy of the store's current contents, for tests and
// demos.
func (s *MemoryStore[K, V]) Snapshot() map[K]V {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[K]V, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

var _ Store[string, int] = (*MemoryStore[string, int])(nil)
