package store

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/iov-one/jointbank/errors"
)

// RunStoreTests exercises the cache wrap behaviour of stores returned by
// newStore. Every call must return an empty store.
func RunStoreTests(t *testing.T, newStore func() CacheableKVStore) {
	t.Run("get set delete", func(t *testing.T) { testGetSetDelete(t, newStore()) })
	t.Run("nested cache", func(t *testing.T) { testNestedCache(t, newStore()) })
	t.Run("iterator ranges", func(t *testing.T) { testIteratorRanges(t, newStore()) })
	t.Run("random layers", func(t *testing.T) { testRandomLayers(t, newStore()) })
}

// AssertGetHas checks that Get and Has of given key agree with the
// expectation.
func AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, want []byte, has bool) {
	t.Helper()

	got, err := kv.Get(key)
	if err != nil {
		t.Fatalf("get %q: %s", key, err)
	}
	if !bytes.Equal(want, got) {
		t.Errorf("get %q: want %q, got %q", key, want, got)
	}
	ok, err := kv.Has(key)
	if err != nil {
		t.Fatalf("has %q: %s", key, err)
	}
	if ok != has {
		t.Errorf("has %q: want %v, got %v", key, has, ok)
	}
}

func mustSet(t testing.TB, kv SetDeleter, key, value string) {
	t.Helper()
	if err := kv.Set([]byte(key), []byte(value)); err != nil {
		t.Fatalf("set %q: %s", key, err)
	}
}

func mustDelete(t testing.TB, kv SetDeleter, key string) {
	t.Helper()
	if err := kv.Delete([]byte(key)); err != nil {
		t.Fatalf("delete %q: %s", key, err)
	}
}

func testGetSetDelete(t *testing.T, base CacheableKVStore) {
	mustSet(t, base, "alice", "10")
	mustSet(t, base, "bob", "20")

	cache := base.CacheWrap()
	mustSet(t, cache, "alice", "15")
	mustDelete(t, cache, "bob")
	mustSet(t, cache, "carol", "5")

	AssertGetHas(t, cache, []byte("alice"), []byte("15"), true)
	AssertGetHas(t, cache, []byte("bob"), nil, false)
	AssertGetHas(t, cache, []byte("carol"), []byte("5"), true)

	// the base is untouched until the cache is written
	AssertGetHas(t, base, []byte("alice"), []byte("10"), true)
	AssertGetHas(t, base, []byte("bob"), []byte("20"), true)
	AssertGetHas(t, base, []byte("carol"), nil, false)

	dropped := base.CacheWrap()
	mustSet(t, dropped, "alice", "0")
	dropped.Discard()
	AssertGetHas(t, base, []byte("alice"), []byte("10"), true)

	if err := cache.Write(); err != nil {
		t.Fatalf("write: %s", err)
	}
	AssertGetHas(t, base, []byte("alice"), []byte("15"), true)
	AssertGetHas(t, base, []byte("bob"), nil, false)
	AssertGetHas(t, base, []byte("carol"), []byte("5"), true)
}

func testNestedCache(t *testing.T, base CacheableKVStore) {
	mustSet(t, base, "k", "base")

	outer := base.CacheWrap()
	mustSet(t, outer, "k", "outer")
	inner := outer.CacheWrap()
	mustDelete(t, inner, "k")

	AssertGetHas(t, inner, []byte("k"), nil, false)
	AssertGetHas(t, outer, []byte("k"), []byte("outer"), true)

	if err := inner.Write(); err != nil {
		t.Fatalf("inner write: %s", err)
	}
	AssertGetHas(t, outer, []byte("k"), nil, false)
	AssertGetHas(t, base, []byte("k"), []byte("base"), true)

	if err := outer.Write(); err != nil {
		t.Fatalf("outer write: %s", err)
	}
	AssertGetHas(t, base, []byte("k"), nil, false)
}

func testIteratorRanges(t *testing.T, base CacheableKVStore) {
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		mustSet(t, base, k, "base-"+k)
	}
	cache := base.CacheWrap()
	mustSet(t, cache, "c", "cache-c")
	mustDelete(t, cache, "d")
	mustSet(t, cache, "bb", "cache-bb")
	mustSet(t, cache, "f", "cache-f")

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []string
	}{
		"all": {
			want: []string{"a=base-a", "b=base-b", "bb=cache-bb", "c=cache-c", "e=base-e", "f=cache-f"},
		},
		"all reversed": {
			reverse: true,
			want:    []string{"f=cache-f", "e=base-e", "c=cache-c", "bb=cache-bb", "b=base-b", "a=base-a"},
		},
		"bounded": {
			start: []byte("b"),
			end:   []byte("e"),
			want:  []string{"b=base-b", "bb=cache-bb", "c=cache-c"},
		},
		"bounded reversed": {
			start:   []byte("b"),
			end:     []byte("e"),
			reverse: true,
			want:    []string{"c=cache-c", "bb=cache-bb", "b=base-b"},
		},
		"open start": {
			end:  []byte("bb"),
			want: []string{"a=base-a", "b=base-b"},
		},
		"open end reversed": {
			start:   []byte("d"),
			reverse: true,
			want:    []string{"f=cache-f", "e=base-e"},
		},
		"only deleted": {
			start: []byte("d"),
			end:   []byte("dd"),
			want:  nil,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := readAll(t, cache, tc.start, tc.end, tc.reverse)
			if fmt.Sprint(got) != fmt.Sprint(tc.want) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

// testRandomLayers applies random writes to a base and two cache layers and
// compares every view with a reference map.
func testRandomLayers(t *testing.T, base CacheableKVStore) {
	r := rand.New(rand.NewSource(7))
	keys := make([]string, 40)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%02d", i)
	}
	apply := func(kv SetDeleter, ref map[string]string, n int) {
		for i := 0; i < n; i++ {
			k := keys[r.Intn(len(keys))]
			if r.Intn(3) == 0 {
				mustDelete(t, kv, k)
				delete(ref, k)
			} else {
				v := fmt.Sprintf("v%d", r.Int())
				mustSet(t, kv, k, v)
				ref[k] = v
			}
		}
	}
	copyRef := func(ref map[string]string) map[string]string {
		out := make(map[string]string, len(ref))
		for k, v := range ref {
			out[k] = v
		}
		return out
	}

	baseRef := make(map[string]string)
	apply(base, baseRef, 60)
	mid := base.CacheWrap()
	midRef := copyRef(baseRef)
	apply(mid, midRef, 40)
	top := mid.CacheWrap()
	topRef := copyRef(midRef)
	apply(top, topRef, 40)

	views := []struct {
		name string
		kv   ReadOnlyKVStore
		ref  map[string]string
	}{
		{"base", base, baseRef},
		{"mid", mid, midRef},
		{"top", top, topRef},
	}
	for _, v := range views {
		for _, bounds := range [][2][]byte{{nil, nil}, {[]byte("key-10"), []byte("key-30")}, {nil, []byte("key-05")}, {[]byte("key-35"), nil}} {
			for _, reverse := range []bool{false, true} {
				want := expected(v.ref, bounds[0], bounds[1], reverse)
				got := readAll(t, v.kv, bounds[0], bounds[1], reverse)
				if fmt.Sprint(got) != fmt.Sprint(want) {
					t.Fatalf("%s %q-%q reverse=%v: want %v, got %v", v.name, bounds[0], bounds[1], reverse, want, got)
				}
			}
		}
	}

	if err := top.Write(); err != nil {
		t.Fatalf("top write: %s", err)
	}
	if err := mid.Write(); err != nil {
		t.Fatalf("mid write: %s", err)
	}
	if got, want := readAll(t, base, nil, nil, false), expected(topRef, nil, nil, false); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("after write: want %v, got %v", want, got)
	}
}

func expected(ref map[string]string, start, end []byte, reverse bool) []string {
	var out []string
	for k, v := range ref {
		if start != nil && k < string(start) {
			continue
		}
		if end != nil && k >= string(end) {
			continue
		}
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	if reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func readAll(t testing.TB, kv ReadOnlyKVStore, start, end []byte, reverse bool) []string {
	t.Helper()

	var (
		it  Iterator
		err error
	)
	if reverse {
		it, err = kv.ReverseIterator(start, end)
	} else {
		it, err = kv.Iterator(start, end)
	}
	if err != nil {
		t.Fatalf("iterator: %s", err)
	}
	defer it.Release()

	var out []string
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return out
		}
		if err != nil {
			t.Fatalf("next: %s", err)
		}
		out = append(out, string(key)+"="+string(value))
	}
}
