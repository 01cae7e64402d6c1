// Package clock provides the monotonic time source consumed by the
// expiration policies. Injecting it lets tests assert TTL behaviour
// deterministically instead of sleeping real time.
package clock

import "time"

// Clock reports the current time in UnixNano. Implementations must be
// monotonic for the duration of a cache instance's lifetime.
type Clock interface {
	NowUnixNano() int64
}

// System is the default Clock. It is anchored to the wall clock once, at
// process start, and advances by Go's monotonic clock from then on, so
// wall-clock adjustments never move it.
type System struct{}

var processStart = time.Now()

// NowUnixNano returns processStart's UnixNano plus the monotonic time
// elapsed since processStart.
func (System) NowUnixNano() int64 {
	return processStart.UnixNano() + int64(time.Since(processStart))
}

// Default is the shared System clock instance.
var Default Clock = System{}
