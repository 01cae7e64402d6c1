// Package twoq implements the 2Q admission policy: a small "probation"
// queue (A1in) for first-time keys, a ghost queue (A1out) remembering
// recently evicted probation keys so they can skip straight to the main
// queue (Am) on re-admission, and the main MRU/LRU queue itself. Reworked
// into a self-contained, key-only eviction.Policy[K] that owns all three
// queues directly, rather than wiring 2Q through shard hooks the way the
// queue-per-shard designs in the reference corpus do.
package twoq

import "github.com/arrowlake/kvcache/cacheerr"

type node[K comparable] struct {
	key        K
	prev, next *node[K]
}

type queue[K comparable] struct {
	head, tail *node[K]
	len        int
}

func (q *queue[K]) pushFront(n *node[K]) {
	n.prev = nil
	n.next = q.head
	if q.head != nil {
		q.head.prev = n
	}
	q.head = n
	if q.tail == nil {
		q.tail = n
	}
	q.len++
}

func (q *queue[K]) unlink(n *node[K]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if q.head == n {
		q.head = n.next
	}
	if q.tail == n {
		q.tail = n.prev
	}
	n.prev, n.next = nil, nil
	q.len--
}

func (q *queue[K]) moveToFront(n *node[K]) {
	if n == q.head {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if q.tail == n {
		q.tail = n.prev
	}
	n.prev = nil
	n.next = q.head
	if q.head != nil {
		q.head.prev = n
	}
	q.head = n
	if q.tail == nil {
		q.tail = n
	}
}

// Policy is an eviction.Policy[K] implementing 2Q.
type Policy[K comparable] struct {
	capIn    int // A1in capacity
	capGhost int // A1out (ghost) capacity

	in     queue[K]
	inIdx  map[K]*node[K]
	am     queue[K]
	amIdx  map[K]*node[K]
	ghost  queue[K]
	ghostI map[K]*node[K]
}

// New constructs a 2Q policy. capIn is typically ~25% of total capacity
// and capGhost ~50-100%; both are clamped to a minimum of 1.
func New[K comparable](capIn, capGhost int) *Policy[K] {
	if capIn < 1 {
		capIn = 1
	}
	if capGhost < 1 {
		capGhost = 1
	}
	return &Policy[K]{
		capIn:    capIn,
		capGhost: capGhost,
		inIdx:    make(map[K]*node[K]),
		amIdx:    make(map[K]*node[K]),
		ghostI:   make(map[K]*node[K]),
	}
}

// OnInsert admits k: a ghost hit promotes straight to Am (second chance),
// otherwise k enters A1in at MRU. This policy never evicts on its own —
// the cache core is the sole owner of removal (it calls SelectVictim,
// then OnRemove), so an over-full A1in is simply a signal SelectVictim
// uses to prefer evicting from probation before touching the main queue.
func (p *Policy[K]) OnInsert(k K) {
	if gn, ok := p.ghostI[k]; ok {
		p.ghost.unlink(gn)
		delete(p.ghostI, k)
		p.admitToAm(k)
		return
	}
	n := &node[K]{key: k}
	p.in.pushFront(n)
	p.inIdx[k] = n
}

// OnAccess promotes a probation hit out of A1in into Am; an Am hit just
// moves to MRU within Am.
func (p *Policy[K]) OnAccess(k K) {
	if n, ok := p.inIdx[k]; ok {
		p.in.unlink(n)
		delete(p.inIdx, k)
		p.admitToAm(k)
		return
	}
	if n, ok := p.amIdx[k]; ok {
		p.am.moveToFront(n)
	}
}

// OnRemove drops k from whichever queue holds it. Removals from A1in
// populate the ghost queue (so a near-future re-insert gets a second
// chance); removals from Am do not.
func (p *Policy[K]) OnRemove(k K) {
	if n, ok := p.inIdx[k]; ok {
		p.in.unlink(n)
		delete(p.inIdx, k)
		p.addGhost(k)
		return
	}
	if n, ok := p.amIdx[k]; ok {
		p.am.unlink(n)
		delete(p.amIdx, k)
	}
}

// SelectVictim prefers the LRU end of A1in once it has grown past capIn
// (probation keys are evicted before promoted ones); otherwise, and
// whenever A1in is empty, it falls back to Am's LRU end.
func (p *Policy[K]) SelectVictim() (K, error) {
	if p.in.len > p.capIn && p.in.tail != nil {
		return p.in.tail.key, nil
	}
	if p.am.tail != nil {
		return p.am.tail.key, nil
	}
	if p.in.tail != nil {
		return p.in.tail.key, nil
	}
	var zero K
	return zero, cacheerr.New(cacheerr.IllegalState, "twoq: SelectVictim called on an empty policy")
}

// Empty reports whether both the probation and main queues are empty.
func (p *Policy[K]) Empty() bool { return p.in.len == 0 && p.am.len == 0 }

// Clear drops all tracked state, including ghosts.
func (p *Policy[K]) Clear() {
	p.in = queue[K]{}
	p.am = queue[K]{}
	p.ghost = queue[K]{}
	p.inIdx = make(map[K]*node[K])
	p.amIdx = make(map[K]*node[K])
	p.ghostI = make(map[K]*node[K])
}

func (p *Policy[K]) admitToAm(k K) {
	n := &node[K]{key: k}
	p.am.pushFront(n)
	p.amIdx[k] = n
}

func (p *Policy[K]) addGhost(k K) {
	n := &node[K]{key: k}
	p.ghost.pushFront(n)
	p.ghostI[k] = n
	for p.ghost.len > p.capGhost {
		tail := p.ghost.tail
		if tail == nil {
			break
		}
		p.ghost.unlink(tail)
		delete(p.ghostI, tail.key)
	}
}
