// Released under an MIT license. See LICENSE.

package walk

import (
	"github.com/michaelmacinnis/kith/internal/common/fault"
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
)

// Out is the result of walking a tree. Positive modes produce an element;
// negative modes produce the bindings extracted by a successful match.
type Out[E any] struct {
	Elt E
	Env assoc.T[E]
}

// Mode selects which of a form's rules a walk uses and how leaves resolve.
// Every mode has a negated counterpart with the same element type.
type Mode[E any] interface {
	Name() string

	// Negative is true for modes that match a tree against a context.
	Negative() bool

	// Negated returns the mode's counterpart of the other polarity.
	Negated() Mode[E]

	// AutoExtend is true if ExtendEnv wrappers extend the environment.
	// Otherwise they are ignored and custom rules extend explicitly.
	AutoExtend() bool

	// Wraps is true for modes that build or match syntax. These keep
	// ExtendEnv, QuoteMore, and QuoteLess wrappers instead of acting on
	// them.
	Wraps() bool

	// Quoted returns the mode to use at the quotation depth d.
	Quoted(d int) Mode[E]

	// Rule returns the rule for nodes of the form f.
	Rule(f ast.Form, r *Reses[E]) Rule[E]

	// Var resolves a variable reference.
	Var(n string, r *Reses[E]) (Out[E], error)

	// Atom resolves an atom.
	Atom(n string, r *Reses[E]) (Out[E], error)

	// Underspecified returns the placeholder bound to n by an
	// Underspecified scope spec.
	Underspecified(n string, r *Reses[E]) E

	// FromSyntax wraps the tree t as an element.
	FromSyntax(t ast.T) E

	// ToSyntax unwraps the tree held by the element e.
	ToSyntax(e E) ast.T

	// PreMatch returns the context to match the pattern p against.
	PreMatch(p ast.T, r *Reses[E]) E

	// Mismatch returns the error for the pattern p failing to match got.
	Mismatch(p ast.T, got E) error
}

// Defaults provide the behavior most modes share. Embed it in a mode.
type Defaults[E any] struct{}

// AutoExtend returns true.
func (Defaults[E]) AutoExtend() bool { return true }

// Wraps returns false.
func (Defaults[E]) Wraps() bool { return false }

// Var looks n up in the environment. Well-typed programs never reference
// unbound names, so a missing name is a fault.
func (Defaults[E]) Var(n string, r *Reses[E]) (Out[E], error) {
	return Out[E]{Elt: Lookup(n, r)}, nil
}

// Atom faults. Only modes over syntax give atoms meaning.
func (Defaults[E]) Atom(n string, r *Reses[E]) (Out[E], error) {
	fault.Raise(fault.T{
		What:   "atom " + n + " walked in mode " + r.Mode().Name(),
		Actual: n,
	})

	return Out[E]{}, nil
}

// Underspecified faults.
func (Defaults[E]) Underspecified(n string, r *Reses[E]) E {
	fault.Raise(fault.T{
		What: "underspecified binding " + n + " in mode " + r.Mode().Name(),
	})

	var e E

	return e
}

// PreMatch returns the context unchanged.
func (Defaults[E]) PreMatch(_ ast.T, r *Reses[E]) E {
	return r.Context()
}

// Lookup returns the value bound to n in r's environment or faults.
func Lookup[E any](n string, r *Reses[E]) E {
	v, ok := r.Env().Find(n)
	if !ok {
		fault.Raise(fault.T{
			What:     "unbound variable in mode " + r.Mode().Name(),
			Expected: "a binding for " + n,
			Actual:   "nothing",
		})
	}

	return v
}

type kind int

const (
	notWalked kind = iota + 1
	literalLike
	custom
)

// Rule is what a mode does with one kind of node.
type Rule[E any] struct {
	kind kind
	pos  func(*Reses[E]) (E, error)
	neg  func(*Reses[E]) (assoc.T[E], error)
}

// NotWalked passes the node through as syntax.
func NotWalked[E any]() Rule[E] {
	return Rule[E]{kind: notWalked}
}

// LiteralLike walks every sub-tree and reassembles the node. Negatively,
// the context must be the same kind of node with the same shape.
func LiteralLike[E any]() Rule[E] {
	return Rule[E]{kind: literalLike}
}

// Custom runs fn to produce the node's result.
func Custom[E any](fn func(*Reses[E]) (E, error)) Rule[E] {
	return Rule[E]{kind: custom, pos: fn}
}

// CustomNeg runs fn to match the node against its context.
func CustomNeg[E any](fn func(*Reses[E]) (assoc.T[E], error)) Rule[E] {
	return Rule[E]{kind: custom, neg: fn}
}

// Valid returns true if r is not the zero Rule.
func (r Rule[E]) Valid() bool {
	return r.kind != 0
}
