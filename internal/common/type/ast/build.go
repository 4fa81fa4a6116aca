// Released under an MIT license. See LICENSE.

package ast

import (
	"github.com/michaelmacinnis/kith/internal/common/struct/beta"
	"github.com/michaelmacinnis/kith/internal/common/struct/mbe"
)

// Part adds to a node body under construction.
type Part func(*mbe.T[T]) *mbe.T[T]

// Body builds a node body from parts.
func Body(parts ...Part) *mbe.T[T] {
	m := mbe.New[T]()
	for _, p := range parts {
		m = p(m)
	}

	return m
}

// New creates a node of the form f with the form's export spec.
func New(f Form, parts ...Part) Node {
	return Node{Form: f, Body: Body(parts...), Export: f.Exports()}
}

// Leaf adds the single sub-tree t under the key k.
func Leaf(k string, t T) Part {
	return func(m *mbe.T[T]) *mbe.T[T] {
		return m.Set(k, t)
	}
}

// Repeat adds an anonymous group where each repetition holds one of ts
// under the key k.
func Repeat(k string, ts ...T) Part {
	return func(m *mbe.T[T]) *mbe.T[T] {
		envs := make([]*mbe.T[T], len(ts))
		for i, t := range ts {
			envs[i] = mbe.Leaf(k, t)
		}

		return m.Merge(mbe.FromAnonRepeat(envs, k))
	}
}

// Group adds an anonymous group whose repetitions are built from parts.
// Every repetition should hold each of keys.
func Group(keys []string, reps ...[]Part) Part {
	return func(m *mbe.T[T]) *mbe.T[T] {
		envs := make([]*mbe.T[T], len(reps))
		for i, r := range reps {
			envs[i] = Body(r...)
		}

		return m.Merge(mbe.FromAnonRepeat(envs, keys...))
	}
}

// Parts is shorthand for one repetition passed to Group.
func Parts(parts ...Part) []Part {
	return parts
}

// Extend wraps t so that it sees the names bound by b.
func Extend(t T, b beta.T) T {
	if _, ok := b.(beta.Nothing); ok {
		return t
	}

	return ExtendEnv{Body: t, Beta: b}
}

// Quote wraps t one level more quoted.
func Quote(t T, positive bool) T {
	return QuoteMore{Body: t, Positive: positive}
}

// Unquote wraps t one level less quoted.
func Unquote(t T) T {
	return QuoteLess{Body: t, Depth: 1}
}
