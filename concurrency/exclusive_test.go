package concurrency

import (
	"strconv"
	"sync"
	"testing"

	"github.com/arrowlake/kvcache/cache"
	"github.com/arrowlake/kvcache/eviction/lru"
	"github.com/arrowlake/kvcache/expiration/none"
	"github.com/stretchr/testify/require"
)

func newExclusive(t *testing.T, capacity int) *ExclusiveWrapper[string, int] {
	t.Helper()
	inner, err := cache.New[string, int](cache.Options[string, int]{
		Capacity:   capacity,
		Eviction:   lru.New[string](),
		Expiration: none.New[string](),
	})
	require.NoError(t, err)
	return NewExclusive[string, int](inner)
}

func TestExclusiveWrapper_BasicOps(t *testing.T) {
	w := newExclusive(t, 10)
	w.Put("a", 1)
	v, ok := w.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.True(t, w.Contains("a"))
	require.Equal(t, 1, w.Size())
	require.Equal(t, 10, w.Capacity())
	require.True(t, w.Remove("a"))
	require.False(t, w.Contains("a"))
}

func TestExclusiveWrapper_ConcurrentAccessIsRaceFree(t *testing.T) {
	w := newExclusive(t, 1000)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				k := strconv.Itoa(g*500 + i)
				w.Put(k, i)
				w.Get(k)
			}
		}(g)
	}
	wg.Wait()
	require.LessOrEqual(t, w.Size(), 1000)
}

func TestExclusiveWrapper_WithExclusiveEscapeHatch(t *testing.T) {
	w := newExclusive(t, 10)
	w.Put("a", 1)

	var sawValue int
	var sawOK bool
	w.WithExclusive(func(c cache.Cache[string, int]) {
		sawValue, sawOK = c.Get("a")
		if sawOK {
			c.Put("a", sawValue+1)
		}
	})

	v, ok := w.Get("a")
	require.True(t, ok)
	require.Equal(t, 2, v)
}
