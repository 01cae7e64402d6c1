package clock

import (
	"sync/atomic"
	"time"
)

// Fake is a manually-advanced Clock for deterministic expiration tests.
// Safe for concurrent use; Advance and NowUnixNano use an atomic int64.
type Fake struct {
	nanos atomic.Int64
}

// NewFake returns a Fake clock starting at the given UnixNano instant.
func NewFake(startUnixNano int64) *Fake {
	f := &Fake{}
	f.nanos.Store(startUnixNano)
	return f
}

// NowUnixNano returns the current fake instant.
func (f *Fake) NowUnixNano() int64 { return f.nanos.Load() }

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) { f.nanos.Add(int64(d)) }

// Set pins the fake clock to an absolute UnixNano instant.
func (f *Fake) Set(unixNano int64) { f.nanos.Store(unixNano) }
