//go:build go1.18

package cache

import (
	"strings"
	"testing"

	"github.com/arrowlake/kvcache/eviction/lru"
	"github.com/arrowlake/kvcache/expiration/none"
)

// FuzzCache_PutGetRemove guards basic Put/Get/Remove semantics against
// arbitrary string inputs.
func FuzzCache_PutGetRemove(f *testing.F) {
	f.Add("", "")
	f.Add("a", "1")
	f.Add("b", "2")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		const limit = 1 << 12
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		c, err := New[string, string](Options[string, string]{
			Capacity:   16,
			Eviction:   lru.New[string](),
			Expiration: none.New[string](),
		})
		if err != nil {
			t.Fatal(err)
		}

		c.Put(k, v)
		got, ok := c.Get(k)
		if !ok || got != v {
			t.Fatalf("after Put/Get: want %q, got %q ok=%v", v, got, ok)
		}

		if !c.Remove(k) {
			t.Fatalf("Remove must return true for a present key")
		}
		if _, ok := c.Get(k); ok {
			t.Fatalf("key must be absent after Remove")
		}
		if c.Remove(k) {
			t.Fatalf("Remove must return false for an already-removed key")
		}
	})
}
