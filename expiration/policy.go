// Package expiration defines the pluggable TTL contract consumed by the
// cache core, and its three variants: none, global, and per-key. All
// variants are driven by an injected clock.Clock so tests can assert
// expiration deterministically without sleeping.
package expiration

import "time"

// Policy tracks per-key deadlines and reports which keys have passed
// theirs. An absent entry means "infinite TTL" — never expired.
// Implementations are not safe for concurrent use; the cache core and its
// concurrency wrappers serialize all calls.
type Policy[K comparable] interface {
	// IsExpired reports whether k has a finite deadline strictly earlier
	// than now. False for untracked keys.
	IsExpired(k K) bool
	// OnInsert records a deadline for k, if the variant applies one.
	// customTTL is nil when the caller supplied no per-key TTL; a
	// non-nil, non-positive duration means "explicitly requested
	// immediate/invalid expiration" and is handled per-variant.
	OnInsert(k K, customTTL *time.Duration)
	// OnAccess is a hook for sliding-expiration variants; a no-op for the
	// fixed-deadline variants specified here.
	OnAccess(k K)
	// OnRemove drops any deadline recorded for k. A call for an untracked
	// key is a no-op.
	OnRemove(k K)
	// Clear drops all tracked deadlines.
	Clear()
	// CollectExpired returns a snapshot of keys whose deadline is in the
	// past, in unspecified order. Must not mutate metadata.
	CollectExpired() []K
	// TimeToLive reports the remaining duration until k's deadline. The
	// second return is false if k is untracked or has an infinite TTL;
	// a remaining duration of zero means the deadline has already passed.
	TimeToLive(k K) (time.Duration, bool)
}
