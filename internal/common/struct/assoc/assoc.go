// Released under an MIT license. See LICENSE.

// Package assoc provides kith's persistent name to value mapping.
package assoc

// T (assoc) maps names to values. It is never modified in place: Set
// returns a new T that shares every entry with the T it was derived from,
// so older handles stay valid. The zero value is an empty mapping.
type T[V any] struct {
	head *entry[V]
}

type entry[V any] struct {
	k    string
	v    V
	next *entry[V]
}

// New creates an empty assoc.
func New[V any]() T[V] {
	return T[V]{}
}

// Single creates an assoc with the one association k to v.
func Single[V any](k string, v V) T[V] {
	return New[V]().Set(k, v)
}

// Empty returns true if a has no associations.
func (a T[V]) Empty() bool {
	return a.head == nil
}

// Find retrieves the value associated with the name k.
func (a T[V]) Find(k string) (v V, ok bool) {
	for e := a.head; e != nil; e = e.next {
		if e.k == k {
			return e.v, true
		}
	}

	return
}

// Has returns true if the name k has an association in a.
func (a T[V]) Has(k string) bool {
	_, ok := a.Find(k)

	return ok
}

// Keys returns each name in a once, in the order the name was first set.
func (a T[V]) Keys() []string {
	var rev []string

	for e := a.head; e != nil; e = e.next {
		rev = append(rev, e.k)
	}

	seen := make(map[string]bool, len(rev))
	keys := make([]string, 0, len(rev))

	for i := len(rev) - 1; i >= 0; i-- {
		if !seen[rev[i]] {
			seen[rev[i]] = true
			keys = append(keys, rev[i])
		}
	}

	return keys
}

// Each calls fn for every name in a, in Keys order, with its current value.
func (a T[V]) Each(fn func(k string, v V)) {
	current := map[string]V{}

	var rev []string

	for e := a.head; e != nil; e = e.next {
		if _, ok := current[e.k]; !ok {
			current[e.k] = e.v
		}

		rev = append(rev, e.k)
	}

	seen := make(map[string]bool, len(current))

	for i := len(rev) - 1; i >= 0; i-- {
		k := rev[i]
		if !seen[k] {
			seen[k] = true
			fn(k, current[k])
		}
	}
}

// Len returns the number of distinct names in a.
func (a T[V]) Len() int {
	return len(a.Keys())
}

// Merge returns a with every association in o set on top of it.
// Where both have a name, o's value wins.
func (a T[V]) Merge(o T[V]) T[V] {
	if a.Empty() {
		return o
	}

	o.Each(func(k string, v V) {
		a = a.Set(k, v)
	})

	return a
}

// Set returns a new assoc that associates the name k with the value v.
func (a T[V]) Set(k string, v V) T[V] {
	return T[V]{head: &entry[V]{k: k, v: v, next: a.head}}
}

// Equal returns true if a and o have the same names and eq holds for
// each pair of values.
func Equal[V any](a, o T[V], eq func(x, y V) bool) bool {
	if a.head == o.head {
		return true
	}

	keys := a.Keys()
	if len(keys) != o.Len() {
		return false
	}

	for _, k := range keys {
		x, _ := a.Find(k)

		y, ok := o.Find(k)
		if !ok || !eq(x, y) {
			return false
		}
	}

	return true
}

// Map returns a new assoc with fn applied to every value in a.
func Map[V, W any](a T[V], fn func(V) W) T[W] {
	m := New[W]()

	a.Each(func(k string, v V) {
		m = m.Set(k, fn(v))
	})

	return m
}
