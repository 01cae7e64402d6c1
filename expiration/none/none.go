// Package none implements the no-op expiration variant: nothing ever
// expires and no per-key storage is kept.
package none

import "time"

// Policy is an expiration.Policy[K] where nothing ever expires.
type Policy[K comparable] struct{}

// New constructs the no-op expiration policy.
func New[K comparable]() Policy[K] { return Policy[K]{} }

// IsExpired is always false.
func (Policy[K]) IsExpired(K) bool { return false }

// OnInsert is a no-op; this variant applies no TTL.
func (Policy[K]) OnInsert(K, *time.Duration) {}

// OnAccess is a no-op.
func (Policy[K]) OnAccess(K) {}

// OnRemove is a no-op.
func (Policy[K]) OnRemove(K) {}

// Clear is a no-op; there is no storage.
func (Policy[K]) Clear() {}

// CollectExpired always returns an empty slice.
func (Policy[K]) CollectExpired() []K { return nil }

// TimeToLive always reports "untracked/infinite".
func (Policy[K]) TimeToLive(K) (time.Duration, bool) { return 0, false }
