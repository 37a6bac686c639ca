// Package strmap contains a string keyed hash map with a fixed number of
// buckets. Colliding keys are chained, the bucket array is never resized.
package strmap

import (
	"strings"

	"github.com/segmentio/fasthash/fnv1a"
)

// node is one entry in a bucket chain.
type node[V any] struct {
	next  *node[V]
	key   string
	value V
}

// Map maps strings to values of type V. The map owns its keys and values:
// when a value leaves the map (removal, overwrite, Destroy) the release
// function is called for it exactly once.
type Map[V any] struct {
	buckets  []*node[V]
	capacity int
	len      int
	release  func(V)
}

// Option configures a Map.
type Option[V any] func(*Map[V])

// WithRelease sets the function which is called for every value the map
// stops owning.
func WithRelease[V any](fn func(V)) Option[V] {
	return func(m *Map[V]) {
		m.release = fn
	}
}

// New returns a map with capacity buckets. The capacity is only a tuning
// hint, chains grow without limit. Values below one are raised to one.
func New[V any](capacity int, opts ...Option[V]) *Map[V] {
	if capacity < 1 {
		capacity = 1
	}

	m := &Map[V]{
		buckets:  make([]*node[V], capacity),
		capacity: capacity,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Hash returns the bucket index for key. It is 0 for the empty key and for a
// map without buckets.
func (m *Map[V]) Hash(key string) int {
	if key == "" || m == nil || len(m.buckets) == 0 {
		return 0
	}

	return int(fnv1a.HashString64(key) % uint64(len(m.buckets)))
}

func (m *Map[V]) free(v V) {
	if m.release != nil {
		m.release(v)
	}
}

// Add stores value under key. If the key is already present, the old value is
// released and replaced, so Get returns the value added last. The empty key
// is never stored.
func (m *Map[V]) Add(key string, value V) {
	if key == "" {
		return
	}

	if m.buckets == nil {
		if m.capacity < 1 {
			m.capacity = 1
		}
		m.buckets = make([]*node[V], m.capacity)
	}

	idx := m.Hash(key)

	var last *node[V]
	for n := m.buckets[idx]; n != nil; n = n.next {
		if n.key == key {
			old := n.value
			n.value = value
			m.free(old)
			return
		}
		last = n
	}

	n := &node[V]{key: strings.Clone(key), value: value}
	if last == nil {
		m.buckets[idx] = n
	} else {
		last.next = n
	}
	m.len++
}

// Get returns the value for key. The bool is false if the key is not present.
func (m *Map[V]) Get(key string) (value V, found bool) {
	if m == nil || key == "" || len(m.buckets) == 0 {
		return value, false
	}

	for n := m.buckets[m.Hash(key)]; n != nil; n = n.next {
		if n.key == key {
			return n.value, true
		}
	}

	return value, false
}

// Remove deletes key from the map and releases its value. It reports whether
// the key was present. The order of the remaining entries in the chain is
// preserved.
func (m *Map[V]) Remove(key string) bool {
	if m == nil || key == "" || len(m.buckets) == 0 {
		return false
	}

	idx := m.Hash(key)

	var prev *node[V]
	for n := m.buckets[idx]; n != nil; prev, n = n, n.next {
		if n.key != key {
			continue
		}

		if prev == nil {
			m.buckets[idx] = n.next
		} else {
			prev.next = n.next
		}
		n.next = nil
		m.len--

		m.free(n.value)
		return true
	}

	return false
}

// Destroy releases all values and drops the buckets. Calling Destroy again is
// a no-op. A destroyed map may be filled again with Add.
func (m *Map[V]) Destroy() {
	if m == nil {
		return
	}

	buckets := m.buckets
	m.buckets = nil
	m.len = 0

	for _, head := range buckets {
		for n := head; n != nil; {
			next := n.next
			n.next = nil
			m.free(n.value)
			n = next
		}
	}
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return m.len
}

// Buckets returns the number of buckets, which is zero after Destroy.
func (m *Map[V]) Buckets() int {
	if m == nil {
		return 0
	}
	return len(m.buckets)
}

// Chain returns the length of the chain in bucket i.
func (m *Map[V]) Chain(i int) (length int) {
	if m == nil || i < 0 || i >= len(m.buckets) {
		return 0
	}

	for n := m.buckets[i]; n != nil; n = n.next {
		length++
	}
	return length
}

// Each calls fn for all entries in bucket and chain order until fn returns
// false.
func (m *Map[V]) Each(fn func(key string, value V) bool) {
	if m == nil {
		return
	}

	for _, head := range m.buckets {
		for n := head; n != nil; n = n.next {
			if !fn(n.key, n.value) {
				return
			}
		}
	}
}

// Keys returns all keys in bucket and chain order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Each(func(key string, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
