// Released under an MIT license. See LICENSE.

// Package ast provides kith's syntax trees. Trees are immutable once built.
package ast

import (
	"strings"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/kith/internal/common/struct/beta"
	"github.com/michaelmacinnis/kith/internal/common/struct/mbe"
)

// Form is what a Node needs to know about its form. Forms are compared by
// identity: two forms are equal only if they are the same allocation.
type Form interface {
	Name() string
	Positions() []string
	Exports() beta.Export

	// Phase returns how many levels more quoted the position k is than
	// the node itself.
	Phase(k string) int
}

// T (ast) is a syntax tree.
type T interface {
	String() string
	tree()
}

// Trivial is the empty tree.
type Trivial struct{}

// Atom is a name that is not a variable reference, usually a binder.
type Atom string

// VarRef is a reference to a variable.
type VarRef string

// Node is an instance of a form. The keys of Body are the form's positions.
type Node struct {
	Form   Form
	Body   *mbe.T[T]
	Export beta.Export
}

// Shape is an ordered sequence of trees.
type Shape []T

// ExtendEnv marks Body as seeing the names bound by Beta.
type ExtendEnv struct {
	Body T
	Beta beta.T
}

// QuoteMore marks Body as one level more quoted. Positive is false for
// quoted patterns.
type QuoteMore struct {
	Body     T
	Positive bool
}

// QuoteLess marks Body as Depth levels less quoted.
type QuoteLess struct {
	Body  T
	Depth int
}

// IncompleteNode is a node body that does not yet have a form.
type IncompleteNode struct {
	Body *mbe.T[T]
}

func (Trivial) tree()        {}
func (Atom) tree()           {}
func (VarRef) tree()         {}
func (Node) tree()           {}
func (Shape) tree()          {}
func (ExtendEnv) tree()      {}
func (QuoteMore) tree()      {}
func (QuoteLess) tree()      {}
func (IncompleteNode) tree() {}

func (Trivial) String() string { return "()" }

func (a Atom) String() string { return repr(string(a)) }

func (v VarRef) String() string { return repr(string(v)) }

func (n Node) String() string {
	return "{" + n.Form.Name() + body(n.Body) + "}"
}

func (s Shape) String() string {
	elts := make([]string, len(s))
	for i, t := range s {
		elts[i] = t.String()
	}

	return "(" + strings.Join(elts, " ") + ")"
}

func (e ExtendEnv) String() string { return e.Body.String() }

func (q QuoteMore) String() string { return "'[" + q.Body.String() + "]'" }

func (q QuoteLess) String() string {
	s := q.Body.String()
	for i := 0; i < q.Depth; i++ {
		s = ",[" + s + "],"
	}

	return s
}

func (i IncompleteNode) String() string { return "{-" + body(i.Body) + "}" }

// Is returns true if n is a node of the form f.
func Is(t T, f Form) bool {
	n, ok := t.(Node)

	return ok && n.Form == f
}

// Strip removes any ExtendEnv wrappers from around t.
func Strip(t T) T {
	for {
		e, ok := t.(ExtendEnv)
		if !ok {
			return t
		}

		t = e.Body
	}
}

// Equal returns true if a and b are the same tree.
func Equal(a, b T) bool {
	switch a := a.(type) {
	case Trivial, Atom, VarRef:
		return a == b
	case Node:
		o, ok := b.(Node)

		return ok && a.Form == o.Form &&
			beta.ExportEqual(a.Export, o.Export) &&
			mbe.Equal(a.Body, o.Body, Equal)
	case Shape:
		o, ok := b.(Shape)
		if !ok || len(a) != len(o) {
			return false
		}

		for i := range a {
			if !Equal(a[i], o[i]) {
				return false
			}
		}

		return true
	case ExtendEnv:
		o, ok := b.(ExtendEnv)

		return ok && beta.Equal(a.Beta, o.Beta) && Equal(a.Body, o.Body)
	case QuoteMore:
		o, ok := b.(QuoteMore)

		return ok && a.Positive == o.Positive && Equal(a.Body, o.Body)
	case QuoteLess:
		o, ok := b.(QuoteLess)

		return ok && a.Depth == o.Depth && Equal(a.Body, o.Body)
	case IncompleteNode:
		o, ok := b.(IncompleteNode)

		return ok && mbe.Equal(a.Body, o.Body, Equal)
	}

	return false
}

func body(m *mbe.T[T]) string {
	var b strings.Builder

	m.Leaves().Each(func(k string, t T) {
		b.WriteString(" " + k + "=" + t.String())
	})

	for _, g := range m.Groups() {
		reps := make([]string, len(g))
		for i, e := range g {
			reps[i] = strings.TrimPrefix(body(e), " ")
		}

		b.WriteString(" [" + strings.Join(reps, " | ") + "]")
	}

	return b.String()
}

func repr(s string) string {
	q := adapted.CanonicalString(s)

	if s == "" || strings.ContainsAny(s, " ()[]{}") || q[2:len(q)-1] != s {
		return q
	}

	return s
}

// Depth returns the number of QuoteLess levels needed to unquote t fully,
// or 0 if t is not a QuoteLess.
func Depth(t T) int {
	if q, ok := t.(QuoteLess); ok {
		return q.Depth
	}

	return 0
}

// Name returns the text of an Atom or VarRef, and whether t was one.
func Name(t T) (string, bool) {
	switch t := t.(type) {
	case Atom:
		return string(t), true
	case VarRef:
		return string(t), true
	}

	return "", false
}
