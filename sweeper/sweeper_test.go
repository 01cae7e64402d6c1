package sweeper

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingExpirer struct {
	calls atomic.Int64
}

func (c *countingExpirer) RemoveExpired() int {
	c.calls.Add(1)
	return 0
}

func TestSweeper_CallsRemoveExpiredOnInterval(t *testing.T) {
	e := &countingExpirer{}
	s := Start(e, 5*time.Millisecond)
	t.Cleanup(s.Stop)

	require.Eventually(t, func() bool { return e.calls.Load() >= 3 }, time.Second, time.Millisecond)
}

func TestSweeper_NonPositiveIntervalIsInert(t *testing.T) {
	e := &countingExpirer{}
	s := Start(e, 0)
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	require.Equal(t, int64(0), e.calls.Load())
}

func TestSweeper_StopIsIdempotent(t *testing.T) {
	e := &countingExpirer{}
	s := Start(e, 5*time.Millisecond)
	require.NotPanics(t, func() {
		s.Stop()
		s.Stop()
	})
}
