// Package lfu implements the Least-Frequently-Used eviction policy with
// O(1) amortised access/insert/remove and a lazily-repaired minimum
// frequency, grounded on the classic frequency-bucket design (see e.g.
// hungpdn-grule-plus's internal/cache/lfu for the same freqList-of-lists
// shape, reworked here into a key-only policy with an intrusive list per
// bucket instead of container/list).
package lfu

import "github.com/arrowlake/kvcache/cacheerr"

type node[K comparable] struct {
	key        K
	freq       uint64
	prev, next *node[K]
}

// bucket is the doubly linked list of keys currently at a given frequency.
// head = most-recently-used at that frequency, tail = least-recently-used.
type bucket[K comparable] struct {
	head, tail *node[K]
	len        int
}

func (b *bucket[K]) pushFront(n *node[K]) {
	n.prev = nil
	n.next = b.head
	if b.head != nil {
		b.head.prev = n
	}
	b.head = n
	if b.tail == nil {
		b.tail = n
	}
	b.len++
}

func (b *bucket[K]) unlink(n *node[K]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if b.head == n {
		b.head = n.next
	}
	if b.tail == n {
		b.tail = n.prev
	}
	n.prev, n.next = nil, nil
	b.len--
}

// Policy is an eviction.Policy[K] implementing LFU with tie-break on
// least-recent-use within the minimum frequency bucket.
type Policy[K comparable] struct {
	index   map[K]*node[K]
	freqs   map[uint64]*bucket[K]
	minFreq uint64
}

// New constructs an empty LFU policy.
func New[K comparable]() *Policy[K] {
	return &Policy[K]{
		index: make(map[K]*node[K]),
		freqs: make(map[uint64]*bucket[K]),
	}
}

// OnInsert records k at frequency 1 and resets minFreq to 1.
func (p *Policy[K]) OnInsert(k K) {
	n := &node[K]{key: k, freq: 1}
	p.index[k] = n
	p.bucketFor(1).pushFront(n)
	p.minFreq = 1
}

// OnAccess bumps k's frequency by one, moving it to the next bucket. A
// call for an unknown key is a no-op.
func (p *Policy[K]) OnAccess(k K) {
	n, ok := p.index[k]
	if !ok {
		return
	}
	p.bump(n)
}

// OnRemove drops k's metadata. minFreq may go stale after this; it is
// repaired lazily inside SelectVictim. A call for an unknown key is a
// no-op.
func (p *Policy[K]) OnRemove(k K) {
	n, ok := p.index[k]
	if !ok {
		return
	}
	p.removeFromBucket(n)
	delete(p.index, k)
}

// SelectVictim returns the tail of the minimum-frequency bucket, the
// least-recently-used key among those with the lowest access count. It
// does not mutate state. If the tracked minFreq points at an empty or
// missing bucket (stale after removals), it is recomputed with a linear
// scan over tracked frequencies.
func (p *Policy[K]) SelectVictim() (K, error) {
	if len(p.index) == 0 {
		var zero K
		return zero, cacheerr.New(cacheerr.IllegalState, "lfu: SelectVictim called on an empty policy")
	}
	b, ok := p.freqs[p.minFreq]
	if !ok || b.len == 0 {
		p.minFreq = p.recomputeMinFreq()
		b = p.freqs[p.minFreq]
	}
	return b.tail.key, nil
}

// Empty reports whether the policy tracks zero keys.
func (p *Policy[K]) Empty() bool { return len(p.index) == 0 }

// Clear drops all tracked state.
func (p *Policy[K]) Clear() {
	p.index = make(map[K]*node[K])
	p.freqs = make(map[uint64]*bucket[K])
	p.minFreq = 0
}

// ---- internals ----

func (p *Policy[K]) bucketFor(freq uint64) *bucket[K] {
	b, ok := p.freqs[freq]
	if !ok {
		b = &bucket[K]{}
		p.freqs[freq] = b
	}
	return b
}

func (p *Policy[K]) removeFromBucket(n *node[K]) {
	b := p.freqs[n.freq]
	b.unlink(n)
	if b.len == 0 {
		delete(p.freqs, n.freq)
	}
}

func (p *Policy[K]) bump(n *node[K]) {
	oldFreq := n.freq
	oldBucket := p.freqs[oldFreq]
	oldBucket.unlink(n)
	if oldBucket.len == 0 {
		delete(p.freqs, oldFreq)
		if p.minFreq == oldFreq {
			p.minFreq = oldFreq + 1
		}
	}
	n.freq = oldFreq + 1
	p.bucketFor(n.freq).pushFront(n)
}

// recomputeMinFreq performs a linear scan over tracked frequencies to
// repair a stale minFreq after removals emptied its bucket.
func (p *Policy[K]) recomputeMinFreq() uint64 {
	var min uint64
	first := true
	for f, b := range p.freqs {
		if b.len == 0 {
			continue
		}
		if first || f < min {
			min = f
			first = false
		}
	}
	return min
}
