// Released under an MIT license. See LICENSE.

// Package mbe provides kith's repetition environment: a mapping whose
// entries are either single leaves or groups of sub-environments produced by
// a repeated syntactic position.
package mbe

import (
	"errors"
	"strconv"

	"github.com/michaelmacinnis/kith/internal/common/fault"
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
)

// ErrShape is returned by Zip when two environments are not the same shape.
var ErrShape = errors.New("repetition shapes differ")

// T (mbe) is an immutable repetition environment.
type T[V any] struct {
	leaves assoc.T[V]
	groups []*group[V]
	named  assoc.T[int] // Group name to index in groups.
	where  assoc.T[int] // Name (at any depth) to index in groups.
}

type group[V any] struct {
	name string
	envs []*T[V]
}

// New creates an empty mbe.
func New[V any]() *T[V] {
	return &T[V]{}
}

// FromLeaves creates an mbe with the leaves a and no repetitions.
func FromLeaves[V any](a assoc.T[V]) *T[V] {
	return &T[V]{leaves: a}
}

// Leaf creates an mbe with the single leaf k.
func Leaf[V any](k string, v V) *T[V] {
	return FromLeaves(assoc.Single(k, v))
}

// FromAnonRepeat creates an mbe holding one anonymous group of envs. The
// names that the group carries are taken from envs; names declares any
// more, so that a group repeated zero times still knows what it holds.
func FromAnonRepeat[V any](envs []*T[V], names ...string) *T[V] {
	return FromNamedRepeat("", envs, names...)
}

// FromNamedRepeat is like FromAnonRepeat but the group can also be found
// by the name n.
func FromNamedRepeat[V any](n string, envs []*T[V], names ...string) *T[V] {
	m := &T[V]{groups: []*group[V]{{name: n, envs: envs}}}

	for _, k := range names {
		m.where = m.where.Set(k, 0)
	}

	for _, e := range envs {
		for _, k := range e.Keys() {
			m.where = m.where.Set(k, 0)
		}
	}

	if n != "" {
		m.named = m.named.Set(n, 0)
	}

	return m
}

// Count returns the number of repetitions in the group holding the name k.
func (m *T[V]) Count(k string) int {
	return len(m.groups[m.index(k)].envs)
}

// Each calls fn for every leaf in m, descending into groups in order.
func (m *T[V]) Each(fn func(k string, v V)) {
	m.leaves.Each(fn)

	for _, g := range m.groups {
		for _, e := range g.envs {
			e.Each(fn)
		}
	}
}

// Get retrieves the leaf associated with the name k.
func (m *T[V]) Get(k string) (V, bool) {
	return m.leaves.Find(k)
}

// Has returns true if k names a leaf or a repeated position in m.
func (m *T[V]) Has(k string) bool {
	return m.leaves.Has(k) || m.where.Has(k)
}

// Keys returns every name in m: leaves first and then repeated names.
func (m *T[V]) Keys() []string {
	keys := m.leaves.Keys()

	for _, k := range m.where.Keys() {
		if !m.leaves.Has(k) {
			keys = append(keys, k)
		}
	}

	return keys
}

// Leaves returns the top-level leaves of m.
func (m *T[V]) Leaves() assoc.T[V] {
	return m.leaves
}

// March returns one environment per repetition of the groups holding the
// drivers. Each environment is m with the marched groups replaced by that
// repetition's leaves and groups. Driver groups must repeat the same number
// of times; the reader guarantees this before any walk runs.
func (m *T[V]) March(drivers ...string) []*T[V] {
	var idx []int

	seen := map[int]bool{}

	for _, d := range drivers {
		i := m.index(d)
		if !seen[i] {
			seen[i] = true

			idx = append(idx, i)
		}
	}

	n := -1
	for _, i := range idx {
		l := len(m.groups[i].envs)
		if n < 0 {
			n = l
		} else if l != n {
			fault.Raise(fault.T{
				What:     "march over repetitions of unequal length",
				Expected: strconv.Itoa(n) + " repetitions",
				Actual:   strconv.Itoa(l) + " repetitions",
			})
		}
	}

	base := m.without(seen)
	envs := make([]*T[V], n)

	for j := range envs {
		e := base
		for _, i := range idx {
			e = e.Merge(m.groups[i].envs[j])
		}

		envs[j] = e
	}

	return envs
}

// Merge returns a new mbe with the leaves and groups of m and o. Where both
// have a leaf with the same name, o's wins.
func (m *T[V]) Merge(o *T[V]) *T[V] {
	if len(o.groups) == 0 && o.leaves.Empty() {
		return m
	}

	offset := len(m.groups)

	r := &T[V]{
		leaves: m.leaves.Merge(o.leaves),
		groups: append(append([]*group[V]{}, m.groups...), o.groups...),
		named:  m.named,
		where:  m.where,
	}

	o.named.Each(func(k string, i int) {
		r.named = r.named.Set(k, i+offset)
	})

	o.where.Each(func(k string, i int) {
		r.where = r.where.Set(k, i+offset)
	})

	return r
}

// Named returns the repetitions of the group named n, without m's leaves.
func (m *T[V]) Named(n string) []*T[V] {
	i, ok := m.named.Find(n)
	if !ok {
		fault.Raise(fault.T{What: "no repetition named " + n})
	}

	return m.groups[i].envs
}

// Set returns a new mbe with the leaf k associated with v.
func (m *T[V]) Set(k string, v V) *T[V] {
	r := *m
	r.leaves = r.leaves.Set(k, v)

	return &r
}

func (m *T[V]) index(k string) int {
	i, ok := m.where.Find(k)
	if !ok {
		fault.Raise(fault.T{
			What:     "name is not repeated",
			Expected: "a repeated position",
			Actual:   k,
		})
	}

	return i
}

func (m *T[V]) without(drop map[int]bool) *T[V] {
	r := &T[V]{leaves: m.leaves}
	remap := map[int]int{}

	for i, g := range m.groups {
		if drop[i] {
			continue
		}

		remap[i] = len(r.groups)
		r.groups = append(r.groups, g)
	}

	m.named.Each(func(k string, i int) {
		if j, ok := remap[i]; ok {
			r.named = r.named.Set(k, j)
		}
	})

	m.where.Each(func(k string, i int) {
		if j, ok := remap[i]; ok {
			r.where = r.where.Set(k, j)
		}
	})

	return r
}

// Equal returns true if m and o are the same shape and eq holds for every
// pair of leaves.
func Equal[V any](m, o *T[V], eq func(x, y V) bool) bool {
	return Zip(m, o, func(_ string, x, y V) error {
		if !eq(x, y) {
			return ErrShape
		}

		return nil
	}) == nil
}

// Map returns an mbe of the same shape as m with fn applied to every leaf.
func Map[V, W any](m *T[V], fn func(V) W) *T[W] {
	r := &T[W]{
		leaves: assoc.Map(m.leaves, fn),
		named:  m.named,
		where:  m.where,
	}

	for _, g := range m.groups {
		envs := make([]*T[W], len(g.envs))
		for i, e := range g.envs {
			envs[i] = Map(e, fn)
		}

		r.groups = append(r.groups, &group[W]{name: g.name, envs: envs})
	}

	return r
}

// MapErr is like Map but stops at the first error returned by fn.
func MapErr[V, W any](m *T[V], fn func(k string, v V) (W, error)) (*T[W], error) {
	r := &T[W]{named: m.named, where: m.where}

	var err error

	m.leaves.Each(func(k string, v V) {
		if err != nil {
			return
		}

		var w W

		w, err = fn(k, v)
		r.leaves = r.leaves.Set(k, w)
	})

	if err != nil {
		return nil, err
	}

	for _, g := range m.groups {
		envs := make([]*T[W], len(g.envs))
		for i, e := range g.envs {
			envs[i], err = MapErr(e, fn)
			if err != nil {
				return nil, err
			}
		}

		r.groups = append(r.groups, &group[W]{name: g.name, envs: envs})
	}

	return r, nil
}

// Zip calls fn on corresponding leaves of m and o. It returns ErrShape if
// the two do not have the same leaves and group repetition counts.
func Zip[V, W any](m *T[V], o *T[W], fn func(k string, x V, y W) error) error {
	keys := m.leaves.Keys()
	if len(keys) != o.leaves.Len() || len(m.groups) != len(o.groups) {
		return ErrShape
	}

	for _, k := range keys {
		x, _ := m.leaves.Find(k)

		y, ok := o.leaves.Find(k)
		if !ok {
			return ErrShape
		}

		if err := fn(k, x, y); err != nil {
			return err
		}
	}

	for i, g := range m.groups {
		h := o.groups[i]
		if g.name != h.name || len(g.envs) != len(h.envs) {
			return ErrShape
		}

		for j, e := range g.envs {
			if err := Zip(e, h.envs[j], fn); err != nil {
				return err
			}
		}
	}

	return nil
}

// Groups returns the repetitions of each group in m, without m's leaves.
func (m *T[V]) Groups() [][]*T[V] {
	r := make([][]*T[V], len(m.groups))
	for i, g := range m.groups {
		r[i] = g.envs
	}

	return r
}
