// Package perkey implements the Per-Key-TTL expiration variant: each
// insert may carry its own TTL override, falling back to an optional
// default duration, falling back to no expiration at all.
package perkey

import (
	"sync"
	"time"

	"github.com/arrowlake/kvcache/clock"
)

// Policy is an expiration.Policy[K] where each key may carry its own TTL.
type Policy[K comparable] struct {
	mu         sync.Mutex // guards defaultTTL
	clock      clock.Clock
	defaultTTL *time.Duration // nil means "no default: infinite unless overridden"
	deadlines  map[K]int64
}

// New constructs a Per-Key-TTL policy. defaultTTL is the duration applied
// to inserts that supply no custom TTL; pass nil for "infinite by default".
func New[K comparable](defaultTTL *time.Duration, clk clock.Clock) *Policy[K] {
	if clk == nil {
		clk = clock.Default
	}
	return &Policy[K]{
		clock:      clk,
		defaultTTL: defaultTTL,
		deadlines:  make(map[K]int64),
	}
}

// SetDefaultTTL updates the duration applied to inserts that specify no
// custom TTL. Pass nil to make future inserts infinite by default. Keys
// already tracked are unaffected.
func (p *Policy[K]) SetDefaultTTL(d *time.Duration) {
	p.mu.Lock()
	p.defaultTTL = d
	p.mu.Unlock()
}

// IsExpired reports whether k's recorded deadline is strictly in the past.
// An untracked key is never expired (infinite TTL).
func (p *Policy[K]) IsExpired(k K) bool {
	deadline, ok := p.deadlines[k]
	if !ok {
		return false
	}
	return p.clock.NowUnixNano() > deadline
}

// OnInsert resolves the TTL with precedence customTTL > default > infinite.
// A non-nil customTTL that is zero or negative is treated as "explicitly
// infinite" and silently skipped rather than rejected, matching the get/put
// contract that never fails on a cache write.
func (p *Policy[K]) OnInsert(k K, customTTL *time.Duration) {
	var ttl time.Duration
	switch {
	case customTTL != nil:
		if *customTTL <= 0 {
			delete(p.deadlines, k)
			return
		}
		ttl = *customTTL
	default:
		p.mu.Lock()
		def := p.defaultTTL
		p.mu.Unlock()
		if def == nil {
			delete(p.deadlines, k)
			return
		}
		if *def <= 0 {
			delete(p.deadlines, k)
			return
		}
		ttl = *def
	}
	p.deadlines[k] = p.clock.NowUnixNano() + int64(ttl)
}

// OnAccess is a no-op: per-key deadlines do not slide on access.
func (p *Policy[K]) OnAccess(K) {}

// OnRemove drops k's deadline. A call for an untracked key is a no-op.
func (p *Policy[K]) OnRemove(k K) { delete(p.deadlines, k) }

// Clear drops all recorded deadlines.
func (p *Policy[K]) Clear() { p.deadlines = make(map[K]int64) }

// CollectExpired returns a snapshot of keys whose deadline is in the past.
func (p *Policy[K]) CollectExpired() []K {
	now := p.clock.NowUnixNano()
	var expired []K
	for k, d := range p.deadlines {
		if now > d {
			expired = append(expired, k)
		}
	}
	return expired
}

// TimeToLive returns the remaining time until k's deadline, or false if k
// is untracked (including keys inserted with an infinite TTL).
func (p *Policy[K]) TimeToLive(k K) (time.Duration, bool) {
	deadline, ok := p.deadlines[k]
	if !ok {
		return 0, false
	}
	remaining := deadline - p.clock.NowUnixNano()
	if remaining < 0 {
		remaining = 0
	}
	return time.Duration(remaining), true
}

// SetExpireAt pins k's deadline to an absolute instant, overriding
// whatever TTL resolution produced at insert time.
func (p *Policy[K]) SetExpireAt(k K, deadline time.Time) {
	p.deadlines[k] = deadline.UnixNano()
}

// UpdateTTL resets k's deadline to now+d. Reports false if k has no
// recorded deadline, which includes keys inserted with an infinite TTL.
func (p *Policy[K]) UpdateTTL(k K, d time.Duration) bool {
	if _, ok := p.deadlines[k]; !ok {
		return false
	}
	if d <= 0 {
		delete(p.deadlines, k)
		return true
	}
	p.deadlines[k] = p.clock.NowUnixNano() + int64(d)
	return true
}

// RemoveTTL makes k infinite by dropping its deadline. Reports whether a
// deadline was present.
func (p *Policy[K]) RemoveTTL(k K) bool {
	if _, ok := p.deadlines[k]; !ok {
		return false
	}
	delete(p.deadlines, k)
	return true
}
