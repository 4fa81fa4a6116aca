// Released under an MIT license. See LICENSE.

package ast

import (
	"github.com/michaelmacinnis/kith/internal/common/struct/mbe"
)

// Rename returns t with every Atom and VarRef named in m renamed. Trees
// under a QuoteLess are left alone: they are spliced in from elsewhere.
func Rename(t T, m map[string]string) T {
	if len(m) == 0 {
		return t
	}

	switch t := t.(type) {
	case Atom:
		if n, ok := m[string(t)]; ok {
			return Atom(n)
		}
	case VarRef:
		if n, ok := m[string(t)]; ok {
			return VarRef(n)
		}
	case Node:
		t.Body = mbe.Map(t.Body, func(s T) T { return Rename(s, m) })

		return t
	case Shape:
		r := make(Shape, len(t))
		for i, s := range t {
			r[i] = Rename(s, m)
		}

		return r
	case ExtendEnv:
		t.Body = Rename(t.Body, m)

		return t
	case QuoteMore:
		t.Body = Rename(t.Body, m)

		return t
	}

	return t
}

// Binders returns the names n binds for its own sub-trees: the atoms in
// positions named as binders by the scope specs of its ExtendEnv children,
// together with the names exported by patterns in those positions.
func Binders(n Node) []string {
	keys := map[string]bool{}

	n.Body.Each(func(_ string, t T) {
		if e, ok := t.(ExtendEnv); ok {
			for _, k := range e.Beta.Binders() {
				keys[k] = true
			}
		}
	})

	return names(n.Body, keys)
}

// Exported returns the names n makes visible to its enclosing node.
func Exported(n Node) []string {
	keys := map[string]bool{}
	for _, k := range n.Export.Keys() {
		keys[k] = true
	}

	return names(n.Body, keys)
}

// AllBinders returns the binders of every node in t, outermost first, not
// looking under a QuoteLess.
func AllBinders(t T) []string {
	var r []string

	switch t := t.(type) {
	case Node:
		r = append(r, Binders(t)...)

		t.Body.Each(func(_ string, s T) {
			r = append(r, AllBinders(s)...)
		})
	case Shape:
		for _, s := range t {
			r = append(r, AllBinders(s)...)
		}
	case ExtendEnv:
		r = AllBinders(t.Body)
	case QuoteMore:
		r = AllBinders(t.Body)
	}

	return r
}

func names(body *mbe.T[T], keys map[string]bool) []string {
	var r []string

	body.Each(func(k string, t T) {
		if !keys[k] {
			return
		}

		switch t := Strip(t).(type) {
		case Atom:
			r = append(r, string(t))
		case Node:
			r = append(r, Exported(t)...)
		}
	})

	return r
}

// Names returns every Atom and VarRef name in t.
func Names(t T) map[string]bool {
	r := map[string]bool{}

	var visit func(T)
	visit = func(t T) {
		switch t := t.(type) {
		case Atom:
			r[string(t)] = true
		case VarRef:
			r[string(t)] = true
		case Node:
			t.Body.Each(func(_ string, s T) { visit(s) })
		case Shape:
			for _, s := range t {
				visit(s)
			}
		case ExtendEnv:
			visit(t.Body)
		case QuoteMore:
			visit(t.Body)
		case QuoteLess:
			visit(t.Body)
		}
	}

	visit(t)

	return r
}
