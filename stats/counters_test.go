package stats

import (
	"testing"

	"github.com/arrowlake/kvcache/cache"
	"github.com/arrowlake/kvcache/eviction/lru"
	"github.com/arrowlake/kvcache/expiration/none"
	"github.com/stretchr/testify/require"
)

func TestCounters_TalliesLifecycleEvents(t *testing.T) {
	c, err := cache.New[string, int](cache.Options[string, int]{
		Capacity:   2,
		Eviction:   lru.New[string](),
		Expiration: none.New[string](),
	})
	require.NoError(t, err)

	counters := New[string, int]()
	c.AddListener(counters)

	c.Get("missing")
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")
	c.Put("a", 10) // update
	c.Put("c", 3)  // evicts b
	c.Remove("a")
	c.Clear()

	require.Equal(t, int64(1), counters.Misses())
	require.Equal(t, int64(1), counters.Hits())
	require.Equal(t, int64(3), counters.Inserts())
	require.Equal(t, int64(1), counters.Updates())
	require.Equal(t, int64(1), counters.Evicts())
	require.Equal(t, int64(1), counters.Removes())
	require.Equal(t, int64(1), counters.Clears())
}
