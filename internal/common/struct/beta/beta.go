// Released under an MIT license. See LICENSE.

// Package beta provides kith's scope specs. A scope spec is attached to a
// sub-tree of a node and says which names that sub-tree can see in addition
// to its enclosing environment, and where their values come from. All names
// in a spec are keys of the enclosing node's body, not program names.
package beta

import (
	"strings"
)

// T (beta) is a scope spec.
type T interface {
	// Binders returns the body keys whose atoms become bound names.
	Binders() []string

	// Keys returns every body key the spec mentions, in order.
	Keys() []string

	String() string
}

// Nothing binds no names.
type Nothing struct{}

// Shadow binds Outer and then Inner. Where both bind a name, Inner wins
// unless Outer protected it.
type Shadow struct {
	Inner T
	Outer T
}

// ShadowAll repeats Sub once per repetition of the groups holding Drivers.
// Each repetition shadows the ones before it.
type ShadowAll struct {
	Sub     T
	Drivers []string
}

// Basic binds the atom under Name to the result of walking Type.
type Basic struct {
	Name string
	Type string
}

// SameAs binds the names exported by the pattern under Name by matching it
// against the result of walking Source.
type SameAs struct {
	Name   string
	Source string
}

// Protected re-binds the atom under Name to its enclosing value and keeps
// any inner spec from shadowing it.
type Protected struct {
	Name string
}

// Underspecified binds the atom under Name to a placeholder that is
// refined elsewhere (a type variable in the type pass).
type Underspecified struct {
	Name string
}

// Seq returns a spec binding each of specs in order, later ones shadowing
// earlier ones.
func Seq(specs ...T) T {
	var b T = Nothing{}

	for _, s := range specs {
		if _, ok := b.(Nothing); ok {
			b = s
		} else {
			b = Shadow{Inner: s, Outer: b}
		}
	}

	return b
}

// All repeats sub over every key it mentions.
func All(sub T) T {
	return ShadowAll{Sub: sub, Drivers: sub.Keys()}
}

func (Nothing) Binders() []string { return nil }
func (Nothing) Keys() []string    { return nil }
func (Nothing) String() string    { return "[]" }

func (b Shadow) Binders() []string {
	return append(b.Outer.Binders(), b.Inner.Binders()...)
}

func (b Shadow) Keys() []string {
	return union(b.Outer.Keys(), b.Inner.Keys())
}

func (b Shadow) String() string {
	return "(" + b.Outer.String() + " < " + b.Inner.String() + ")"
}

func (b ShadowAll) Binders() []string { return b.Sub.Binders() }
func (b ShadowAll) Keys() []string    { return b.Sub.Keys() }

func (b ShadowAll) String() string {
	return "[* " + b.Sub.String() + " over " + strings.Join(b.Drivers, " ") + "]"
}

func (b Basic) Binders() []string { return []string{b.Name} }
func (b Basic) Keys() []string    { return []string{b.Name, b.Type} }
func (b Basic) String() string    { return b.Name + " : " + b.Type }

func (b SameAs) Binders() []string { return []string{b.Name} }
func (b SameAs) Keys() []string    { return []string{b.Name, b.Source} }
func (b SameAs) String() string    { return b.Name + " = " + b.Source }

func (b Protected) Binders() []string { return []string{b.Name} }
func (b Protected) Keys() []string    { return []string{b.Name} }
func (b Protected) String() string    { return "prot " + b.Name }

func (b Underspecified) Binders() []string { return []string{b.Name} }
func (b Underspecified) Keys() []string    { return []string{b.Name} }
func (b Underspecified) String() string    { return "forall " + b.Name }

// Equal returns true if a and b are the same spec.
func Equal(a, b T) bool {
	switch a := a.(type) {
	case Shadow:
		o, ok := b.(Shadow)

		return ok && Equal(a.Inner, o.Inner) && Equal(a.Outer, o.Outer)
	case ShadowAll:
		o, ok := b.(ShadowAll)

		return ok && Equal(a.Sub, o.Sub) && same(a.Drivers, o.Drivers)
	}

	return a == b
}

func same(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func union(a, b []string) []string {
	seen := map[string]bool{}
	r := []string{}

	for _, k := range append(append([]string{}, a...), b...) {
		if !seen[k] {
			seen[k] = true

			r = append(r, k)
		}
	}

	return r
}
