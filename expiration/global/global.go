// Package global implements the Global-TTL expiration variant: a single
// positive duration applied to every inserted key, independent of any
// per-key override. Changing the duration only affects subsequently
// inserted keys; previously recorded deadlines are left alone.
package global

import (
	"sync"
	"time"

	"github.com/arrowlake/kvcache/cacheerr"
	"github.com/arrowlake/kvcache/clock"
)

// Policy is an expiration.Policy[K] applying one TTL to every key.
type Policy[K comparable] struct {
	mu        sync.Mutex // guards ttl; deadlines is owned by the cache's single lock domain
	clock     clock.Clock
	ttl       time.Duration
	deadlines map[K]int64 // key -> absolute UnixNano deadline
}

// New constructs a Global-TTL policy. ttl must be positive; a zero or
// negative duration returns a *cacheerr.Error with Kind InvalidArgument.
func New[K comparable](ttl time.Duration, clk clock.Clock) (*Policy[K], error) {
	if ttl <= 0 {
		return nil, cacheerr.New(cacheerr.InvalidArgument, "global: ttl must be positive, got %v", ttl)
	}
	if clk == nil {
		clk = clock.Default
	}
	return &Policy[K]{
		clock:     clk,
		ttl:       ttl,
		deadlines: make(map[K]int64),
	}, nil
}

// SetGlobalTTL updates the duration applied to subsequently inserted
// keys. Deadlines already recorded are unaffected. ttl must be positive.
func (p *Policy[K]) SetGlobalTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return cacheerr.New(cacheerr.InvalidArgument, "global: ttl must be positive, got %v", ttl)
	}
	p.mu.Lock()
	p.ttl = ttl
	p.mu.Unlock()
	return nil
}

// IsExpired reports whether k's recorded deadline is strictly in the past.
func (p *Policy[K]) IsExpired(k K) bool {
	deadline, ok := p.deadlines[k]
	if !ok {
		return false
	}
	return p.clock.NowUnixNano() > deadline
}

// OnInsert records deadline = now + ttl, ignoring customTTL: the global
// variant applies one fixed duration to every key regardless of any
// per-call override.
func (p *Policy[K]) OnInsert(k K, _ *time.Duration) {
	p.mu.Lock()
	ttl := p.ttl
	p.mu.Unlock()
	p.deadlines[k] = p.clock.NowUnixNano() + int64(ttl)
}

// OnAccess is a no-op: the deadline is fixed at insert time.
func (p *Policy[K]) OnAccess(K) {}

// OnRemove drops k's deadline. A call for an untracked key is a no-op.
func (p *Policy[K]) OnRemove(k K) { delete(p.deadlines, k) }

// Clear drops all recorded deadlines.
func (p *Policy[K]) Clear() { p.deadlines = make(map[K]int64) }

// CollectExpired returns a snapshot of keys whose deadline has passed.
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
// is untracked.
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
