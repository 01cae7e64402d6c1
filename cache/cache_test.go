package cache

import (
	"strconv"
	"testing"
	"time"

	"github.com/arrowlake/kvcache/bus"
	"github.com/arrowlake/kvcache/cacheerr"
	"github.com/arrowlake/kvcache/clock"
	"github.com/arrowlake/kvcache/eviction/lfu"
	"github.com/arrowlake/kvcache/eviction/lru"
	"github.com/arrowlake/kvcache/expiration/global"
	"github.com/arrowlake/kvcache/expiration/none"
	"github.com/arrowlake/kvcache/expiration/perkey"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	bus.BaseListener[string, int]
	events []string
}

func (r *recordingListener) OnHit(k string)  { r.events = append(r.events, "Hit("+k+")") }
func (r *recordingListener) OnMiss(k string) { r.events = append(r.events, "Miss("+k+")") }
func (r *recordingListener) OnInsert(k string, v int) {
	r.events = append(r.events, "Insert("+k+")")
}
func (r *recordingListener) OnUpdate(k string, _, _ int) {
	r.events = append(r.events, "Update("+k+")")
}
func (r *recordingListener) OnEvict(k string, _ int) {
	r.events = append(r.events, "Evict("+k+")")
}
func (r *recordingListener) OnExpire(k string) { r.events = append(r.events, "Expire("+k+")") }
func (r *recordingListener) OnRemove(k string) { r.events = append(r.events, "Remove("+k+")") }
func (r *recordingListener) OnClear(count int) {
	r.events = append(r.events, "Clear("+strconv.Itoa(count)+")")
}

func newLRUCache(t *testing.T, capacity int) (Cache[string, int], *recordingListener) {
	t.Helper()
	c, err := New[string, int](Options[string, int]{
		Capacity:   capacity,
		Eviction:   lru.New[string](),
		Expiration: none.New[string](),
	})
	require.NoError(t, err)
	l := &recordingListener{}
	c.AddListener(l)
	return c, l
}

func TestCache_S1_LRUBasicEviction(t *testing.T) {
	c, l := newLRUCache(t, 3)

	c.Put("A", 1)
	c.Put("B", 2)
	c.Put("C", 3)
	c.Get("A")
	c.Put("D", 4)

	require.True(t, c.Contains("A"))
	require.False(t, c.Contains("B"))
	require.True(t, c.Contains("C"))
	require.True(t, c.Contains("D"))

	require.Equal(t, []string{
		"Insert(A)", "Insert(B)", "Insert(C)", "Hit(A)", "Evict(B)", "Insert(D)",
	}, l.events)
}

func TestCache_S2_LFUFrequencyAndTieBreak(t *testing.T) {
	c, err := New[string, int](Options[string, int]{
		Capacity:   3,
		Eviction:   lfu.New[string](),
		Expiration: none.New[string](),
	})
	require.NoError(t, err)
	l := &recordingListener{}
	c.AddListener(l)

	c.Put("A", 1)
	c.Put("B", 2)
	c.Put("C", 3)
	c.Get("A")
	c.Get("A")
	c.Get("B")
	c.Put("D", 4)

	require.True(t, c.Contains("A"))
	require.True(t, c.Contains("B"))
	require.False(t, c.Contains("C"))
	require.True(t, c.Contains("D"))
	require.Contains(t, l.events, "Evict(C)")
}

func TestCache_S3_GlobalTTLLazyExpiration(t *testing.T) {
	fc := clock.NewFake(0)
	exp, err := global.New[string](50*time.Millisecond, fc)
	require.NoError(t, err)
	c, err := New[string, int](Options[string, int]{
		Capacity:   10,
		Eviction:   lru.New[string](),
		Expiration: exp,
		Clock:      fc,
	})
	require.NoError(t, err)
	l := &recordingListener{}
	c.AddListener(l)

	c.Put("k", 1)

	fc.Set(int64(30 * time.Millisecond))
	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, 1, v)

	fc.Set(int64(60 * time.Millisecond))
	_, ok = c.Get("k")
	require.False(t, ok)
	require.False(t, c.Contains("k"))

	require.Equal(t, []string{"Insert(k)", "Hit(k)", "Expire(k)", "Miss(k)"}, l.events)
}

func TestCache_S4_PerKeyTTLOverridesDefault(t *testing.T) {
	fc := clock.NewFake(0)
	exp := perkey.New[string](nil, fc)
	c, err := New[string, int](Options[string, int]{
		Capacity:   10,
		Eviction:   lru.New[string](),
		Expiration: exp,
		Clock:      fc,
	})
	require.NoError(t, err)

	c.PutTTL("short", 1, 30*time.Millisecond)
	c.PutTTL("long", 2, 200*time.Millisecond)

	fc.Set(int64(50 * time.Millisecond))
	require.True(t, exp.IsExpired("short"))
	require.False(t, exp.IsExpired("long"))
	require.ElementsMatch(t, []string{"short"}, exp.CollectExpired())
}

func TestCache_PutUpdateDoesNotGrowSizeAndEmitsUpdate(t *testing.T) {
	c, l := newLRUCache(t, 3)
	c.Put("a", 1)
	c.Put("a", 2)

	require.Equal(t, 1, c.Size())
	require.Equal(t, []string{"Insert(a)", "Update(a)"}, l.events)

	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestCache_ClearTwiceSecondEmitsCountZero(t *testing.T) {
	c, l := newLRUCache(t, 3)
	c.Put("a", 1)
	c.Clear()
	l.events = nil
	c.Clear()

	require.Equal(t, []string{"Clear(0)"}, l.events)
	require.Equal(t, 0, c.Size())
}

func TestCache_RemoveExpiredSteadyStateReturnsZero(t *testing.T) {
	c, l := newLRUCache(t, 3)
	c.Put("a", 1)
	l.events = nil

	require.Equal(t, 0, c.RemoveExpired())
	require.Empty(t, l.events)
}

func TestCache_RemoveEmitsRemoveNotExpire(t *testing.T) {
	c, l := newLRUCache(t, 3)
	c.Put("a", 1)
	l.events = nil

	require.True(t, c.Remove("a"))
	require.False(t, c.Remove("a"))
	require.Equal(t, []string{"Remove(a)"}, l.events)
}

func TestCache_ConstructorValidatesCapacityAndPolicies(t *testing.T) {
	_, err := New[string, int](Options[string, int]{
		Capacity:   0,
		Eviction:   lru.New[string](),
		Expiration: none.New[string](),
	})
	require.True(t, cacheerr.Is(err, cacheerr.InvalidArgument))

	_, err = New[string, int](Options[string, int]{
		Capacity:   1,
		Expiration: none.New[string](),
	})
	require.True(t, cacheerr.Is(err, cacheerr.InvalidArgument))

	_, err = New[string, int](Options[string, int]{
		Capacity: 1,
		Eviction: lru.New[string](),
	})
	require.True(t, cacheerr.Is(err, cacheerr.InvalidArgument))
}

func TestCache_SetEvictionPolicyRepopulatesFromLiveKeys(t *testing.T) {
	c, err := New[string, int](Options[string, int]{
		Capacity:   2,
		Eviction:   lru.New[string](),
		Expiration: none.New[string](),
	})
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("b", 2)

	c.SetEvictionPolicy(lfu.New[string]())
	c.Put("c", 3) // at capacity; must evict via the new LFU policy

	require.Equal(t, 2, c.Size())
}

func TestCache_TimeToLiveReportsAbsentAndInfinite(t *testing.T) {
	c, l := newLRUCache(t, 3)
	_ = l
	c.Put("a", 1)

	_, ok := c.TimeToLive("missing")
	require.False(t, ok)

	_, ok = c.TimeToLive("a")
	require.False(t, ok, "none.Policy never tracks a deadline")
}
