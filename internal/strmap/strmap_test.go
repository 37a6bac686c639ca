package strmap

import (
	"fmt"
	"reflect"
	"sort"
	"testing"
)

var testEntries = []struct {
	key, value string
}{
	{"foo", "bar"},
	{"baz", "quux"},
	{"x", ""},
	{"color", "\x1b[31m"},
	{"long_key_with_underscores", "some value with spaces"},
	{"Foo", "case matters"},
}

func TestAddGet(t *testing.T) {
	for _, capacity := range []int{0, 1, 3, 10, 100} {
		m := New[string](capacity)

		for _, e := range testEntries {
			m.Add(e.key, e.value)
		}

		if m.Len() != len(testEntries) {
			t.Errorf("capacity %d: wrong length, want %d, got %d", capacity, len(testEntries), m.Len())
		}

		for i, e := range testEntries {
			v, ok := m.Get(e.key)
			if !ok {
				t.Errorf("capacity %d, test %d: key %q not found", capacity, i, e.key)
				continue
			}

			if v != e.value {
				t.Errorf("capacity %d, test %d: wrong value for %q, want %q, got %q", capacity, i, e.key, e.value, v)
			}
		}
	}
}

func TestGetMissing(t *testing.T) {
	m := New[string](10)

	if _, ok := m.Get("foo"); ok {
		t.Errorf("found key in empty map")
	}

	m.Add("foo", "bar")

	for _, key := range []string{"", "fo", "foo ", "FOO", "bar"} {
		if v, ok := m.Get(key); ok {
			t.Errorf("Get(%q) returned %q, want not found", key, v)
		}
	}

	var nilMap *Map[string]
	if _, ok := nilMap.Get("foo"); ok {
		t.Errorf("found key in nil map")
	}
}

func TestEmptyValueIsPresent(t *testing.T) {
	m := New[string](10)
	m.Add("empty", "")

	v, ok := m.Get("empty")
	if !ok || v != "" {
		t.Errorf("want present empty value, got %q, %v", v, ok)
	}
}

func TestEmptyKeyIgnored(t *testing.T) {
	m := New[string](10)
	m.Add("", "value")

	if m.Len() != 0 {
		t.Errorf("empty key was stored")
	}
}

func TestDuplicateOverwrites(t *testing.T) {
	var released []string
	m := New[string](1, WithRelease(func(v string) {
		released = append(released, v)
	}))

	m.Add("a", "1")
	m.Add("b", "2")
	m.Add("a", "3")

	if m.Len() != 2 {
		t.Errorf("wrong length, want 2, got %d", m.Len())
	}

	if v, _ := m.Get("a"); v != "3" {
		t.Errorf("want last added value 3, got %q", v)
	}

	if !reflect.DeepEqual(released, []string{"1"}) {
		t.Errorf("wrong released values: %v", released)
	}

	// the overwritten entry keeps its place in the chain
	if keys := m.Keys(); !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Errorf("wrong chain order: %v", keys)
	}
}

var testHashKeys = []string{"a", "b", "foo", "bar", "field", "key", "value", "x1", "x2"}

func TestHash(t *testing.T) {
	m := New[int](7)

	for _, key := range testHashKeys {
		h := m.Hash(key)
		if h < 0 || h >= 7 {
			t.Errorf("Hash(%q) = %d out of range", key, h)
		}

		if h2 := m.Hash(key); h2 != h {
			t.Errorf("Hash(%q) not deterministic: %d != %d", key, h, h2)
		}
	}

	if h := m.Hash(""); h != 0 {
		t.Errorf("Hash(\"\") = %d, want 0", h)
	}

	m.Destroy()
	if h := m.Hash("foo"); h != 0 {
		t.Errorf("Hash on map without buckets = %d, want 0", h)
	}
}

func TestHashDistribution(t *testing.T) {
	m := New[int](10)
	for i := 0; i < 1000; i++ {
		m.Add(fmt.Sprintf("key%d", i), i)
	}

	total := 0
	for i := 0; i < m.Buckets(); i++ {
		n := m.Chain(i)
		if n == 0 {
			t.Errorf("bucket %d is empty", i)
		}
		total += n
	}

	if total != 1000 {
		t.Errorf("chains hold %d entries, want 1000", total)
	}
}

func TestRemove(t *testing.T) {
	for _, capacity := range []int{1, 2, 10} {
		var released []string
		m := New[string](capacity, WithRelease(func(v string) {
			released = append(released, v)
		}))

		for _, e := range testEntries {
			m.Add(e.key, e.value)
		}

		for i, e := range testEntries {
			if !m.Remove(e.key) {
				t.Errorf("capacity %d: Remove(%q) reported missing key", capacity, e.key)
			}

			if _, ok := m.Get(e.key); ok {
				t.Errorf("capacity %d: key %q still present after Remove", capacity, e.key)
			}

			for _, other := range testEntries[i+1:] {
				v, ok := m.Get(other.key)
				if !ok || v != other.value {
					t.Errorf("capacity %d: removing %q broke key %q: got %q, %v", capacity, e.key, other.key, v, ok)
				}
			}

			if m.Len() != len(testEntries)-i-1 {
				t.Errorf("capacity %d: wrong length %d after removing %d keys", capacity, m.Len(), i+1)
			}
		}

		if len(released) != len(testEntries) {
			t.Errorf("capacity %d: %d values released, want %d", capacity, len(released), len(testEntries))
		}
	}
}

func TestRemoveMiddleOfChain(t *testing.T) {
	m := New[int](1)
	for i, key := range []string{"a", "b", "c", "d"} {
		m.Add(key, i)
	}

	m.Remove("b")

	if keys := m.Keys(); !reflect.DeepEqual(keys, []string{"a", "c", "d"}) {
		t.Errorf("wrong chain after remove: %v", keys)
	}

	m.Remove("d")
	m.Add("e", 5)

	if keys := m.Keys(); !reflect.DeepEqual(keys, []string{"a", "c", "e"}) {
		t.Errorf("tail not updated after removing last node: %v", keys)
	}
}

func TestRemoveMissing(t *testing.T) {
	released := 0
	m := New[string](4, WithRelease(func(string) { released++ }))

	if m.Remove("foo") {
		t.Errorf("Remove on empty map reported success")
	}

	m.Add("foo", "bar")

	for _, key := range []string{"", "fo", "bar", "foo2"} {
		if m.Remove(key) {
			t.Errorf("Remove(%q) reported success", key)
		}
	}

	if released != 0 {
		t.Errorf("Remove of missing keys released %d values", released)
	}

	if v, ok := m.Get("foo"); !ok || v != "bar" {
		t.Errorf("existing key damaged: %q, %v", v, ok)
	}
}

// tracker records which values have been released.
type tracker struct {
	released map[string]int
}

func newTracker() *tracker {
	return &tracker{released: make(map[string]int)}
}

func (tr *tracker) release(v string) {
	tr.released[v]++
}

func (tr *tracker) check(t testing.TB, want []string) {
	var got []string
	for v, n := range tr.released {
		if n != 1 {
			t.Errorf("value %q released %d times", v, n)
		}
		got = append(got, v)
	}

	sort.Strings(got)
	want = append([]string(nil), want...)
	sort.Strings(want)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("wrong values released, want %v, got %v", want, got)
	}
}

func TestDestroyNested(t *testing.T) {
	tr := newTracker()
	innerDestroyed := 0

	outer := New[*Map[string]](3, WithRelease(func(inner *Map[string]) {
		innerDestroyed++
		inner.Destroy()
	}))

	var all []string
	var inners []*Map[string]
	for i := 0; i < 5; i++ {
		inner := New[string](2, WithRelease(tr.release))
		for j := 0; j < 4; j++ {
			v := fmt.Sprintf("field%d.value%d", i, j)
			inner.Add(fmt.Sprintf("key%d", j), v)
			all = append(all, v)
		}
		outer.Add(fmt.Sprintf("field%d", i), inner)
		inners = append(inners, inner)
	}

	outer.Destroy()

	if innerDestroyed != 5 {
		t.Errorf("%d inner maps released, want 5", innerDestroyed)
	}

	for i, inner := range inners {
		if inner.Len() != 0 || inner.Buckets() != 0 {
			t.Errorf("inner map %d not destroyed: len %d, buckets %d", i, inner.Len(), inner.Buckets())
		}
	}

	tr.check(t, all)

	// a second Destroy must not release anything again
	outer.Destroy()
	tr.check(t, all)

	if innerDestroyed != 5 {
		t.Errorf("second Destroy released inner maps again")
	}
}

func TestReuseAfterDestroy(t *testing.T) {
	m := New[string](5)
	m.Add("a", "b")
	m.Destroy()

	if _, ok := m.Get("a"); ok {
		t.Errorf("key found after Destroy")
	}

	m.Add("c", "d")
	if m.Buckets() != 5 {
		t.Errorf("wrong bucket count after reuse: %d", m.Buckets())
	}

	if v, ok := m.Get("c"); !ok || v != "d" {
		t.Errorf("Get after reuse returned %q, %v", v, ok)
	}
}

func TestKeyIsCopied(t *testing.T) {
	buf := []byte("original")
	m := New[int](4)
	m.Add(string(buf), 1)

	copy(buf, "modified")

	if _, ok := m.Get("original"); !ok {
		t.Errorf("stored key changed with the input buffer")
	}
}

func TestEachStops(t *testing.T) {
	m := New[int](1)
	for i := 0; i < 10; i++ {
		m.Add(fmt.Sprintf("k%d", i), i)
	}

	calls := 0
	m.Each(func(string, int) bool {
		calls++
		return calls < 3
	})

	if calls != 3 {
		t.Errorf("Each did not stop, %d calls", calls)
	}
}
