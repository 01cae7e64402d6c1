package cache

import (
	"time"

	"github.com/arrowlake/kvcache/bus"
	"github.com/arrowlake/kvcache/eviction"
	"github.com/arrowlake/kvcache/expiration"
)

// Cache is the mediator: it owns entries and drives the eviction and
// expiration policies and the event bus on every operation. All methods
// are safe for concurrent use only when accessed through one of the
// concurrency package's wrappers; the bare core is single-threaded from
// its own point of view (see package concurrency).
type Cache[K comparable, V any] interface {
	// Get returns k's value and true on a live hit. A miss (absent or
	// expired key) returns the zero value and false. Never fails.
	Get(k K) (V, bool)

	// Put inserts or updates k→v using the configured default TTL
	// resolution. Never fails.
	Put(k K, v V)

	// PutTTL inserts or updates k→v with a per-key TTL override. The
	// configured expiration policy decides how ttl is used: the per-key
	// policy treats a non-positive ttl as "explicitly infinite", and the
	// global policy ignores ttl and applies its own duration. Never fails.
	PutTTL(k K, v V, ttl time.Duration)

	// Remove deletes k if present and returns whether it was. Emits
	// Remove iff it returns true.
	Remove(k K) bool

	// Clear drops every entry and all eviction/expiration state, emitting one Clear
	// event carrying the prior size.
	Clear()

	// Contains reports whether k is present and not expired, without
	// promoting it in the eviction policy.
	Contains(k K) bool

	// Size returns the current number of live entries.
	Size() int

	// Capacity returns the cache's immutable entry-count limit.
	Capacity() int

	// SetEvictionPolicy atomically swaps the active eviction policy. The
	// new policy is repopulated with an insert notification for every
	// live key; any recency/frequency history in the old policy is lost.
	SetEvictionPolicy(p eviction.Policy[K])

	// SetExpirationPolicy atomically swaps the active expiration policy.
	// The new policy is repopulated with an insert notification (no
	// custom TTL) for every live key; any deadlines tracked by the old
	// policy are lost.
	SetExpirationPolicy(p expiration.Policy[K])

	// TimeToLive reports the remaining time until k's deadline. The
	// second return is false if k is absent or has an infinite TTL; a
	// remaining duration of zero means the deadline has already passed
	// but lazy removal has not yet observed it.
	TimeToLive(k K) (time.Duration, bool)

	// RemoveExpired removes every currently-expired key, emitting one
	// Expire event per removal (never Remove), and returns the count.
	RemoveExpired() int

	// AddListener registers h to observe lifecycle events. A nil handle
	// is ignored.
	AddListener(h bus.Listener[K, V])

	// RemoveListener unregisters every occurrence of h, compared by
	// identity.
	RemoveListener(h bus.Listener[K, V])
}
