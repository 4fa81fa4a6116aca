// Released under an MIT license. See LICENSE.

// Package form provides the record describing one kind of kith node: its
// positions, its surface syntax, and what each pass does with it.
package form

import (
	"strings"

	"github.com/michaelmacinnis/kith/internal/common/fault"
	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/struct/beta"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
)

// Pair holds the positive and negative rules for one pass. Either half may
// be missing; asking for a missing half is a fault.
type Pair[E any] struct {
	pos walk.Rule[E]
	neg walk.Rule[E]
}

// Positive creates a pair with only a positive rule.
func Positive[E any](r walk.Rule[E]) Pair[E] {
	return Pair[E]{pos: r}
}

// Negative creates a pair with only a negative rule.
func Negative[E any](r walk.Rule[E]) Pair[E] {
	return Pair[E]{neg: r}
}

// Both creates a pair with both rules.
func Both[E any](pos, neg walk.Rule[E]) Pair[E] {
	return Pair[E]{pos: pos, neg: neg}
}

// IsPos returns true if p has a positive rule.
func (p Pair[E]) IsPos() bool {
	return p.pos.Valid()
}

// IsNeg returns true if p has a negative rule.
func (p Pair[E]) IsNeg() bool {
	return p.neg.Valid()
}

// Pos returns the positive rule.
func (p Pair[E]) Pos() walk.Rule[E] {
	if !p.pos.Valid() {
		fault.Raise(fault.T{What: "wanted positive walk", Expected: "positive rule", Actual: "negative only"})
	}

	return p.pos
}

// Neg returns the negative rule.
func (p Pair[E]) Neg() walk.Rule[E] {
	if !p.neg.Valid() {
		fault.Raise(fault.T{What: "wanted negative walk", Expected: "negative rule", Actual: "positive only"})
	}

	return p.neg
}

// Get returns the rule for the given polarity.
func (p Pair[E]) Get(negative bool) walk.Rule[E] {
	if negative {
		return p.Neg()
	}

	return p.Pos()
}

// T (form) describes one kind of node. Forms are created once and compared
// by identity.
type T struct {
	name      string
	grammar   string
	positions []string
	exports   beta.Export

	// Shifts maps positions imported into a macro body to their phase.
	Shifts map[string]int

	Type  Pair[ast.T]
	Eval  Pair[cell.I]
	Quasi Pair[cell.I]
}

type form = T

// Option sets an optional part of a form.
type Option func(*form)

// New creates a form. Without options the form has no type or evaluation
// behavior and is quasiquoted literally.
func New(name string, positions []string, opts ...Option) *T {
	f := &form{
		name:      name,
		grammar:   "(" + name + " ...)",
		positions: positions,
		exports:   beta.ExportNothing{},
		Shifts:    map[string]int{},
		Type:      Positive(walk.NotWalked[ast.T]()),
		Eval:      Positive(walk.NotWalked[cell.I]()),
		Quasi:     Both(walk.LiteralLike[cell.I](), walk.LiteralLike[cell.I]()),
	}

	for _, o := range opts {
		o(f)
	}

	if !beta.Within(f.exports, positions) {
		fault.Raise(fault.T{
			What:     "export of a name the form does not bind",
			Form:     name,
			Expected: "exports drawn from " + strings.Join(positions, " "),
			Actual:   f.exports.String(),
		})
	}

	return f
}

// Simple creates a form for pure syntax.
func Simple(name string, positions ...string) *T {
	return New(name, positions)
}

// WithEval sets the evaluation rules.
func WithEval(p Pair[cell.I]) Option {
	return func(f *form) {
		f.Eval = p
	}
}

// WithExports sets the names a node of the form exports.
func WithExports(e beta.Export) Option {
	return func(f *form) {
		f.exports = e
	}
}

// WithGrammar sets the description of the form's surface syntax.
func WithGrammar(g string) Option {
	return func(f *form) {
		f.grammar = g
	}
}

// WithPhase records that the position n is shift phases away.
func WithPhase(n string, shift int) Option {
	return func(f *form) {
		f.Shifts[n] = shift
	}
}

// WithQuasi sets the quasiquotation rules.
func WithQuasi(p Pair[cell.I]) Option {
	return func(f *form) {
		f.Quasi = p
	}
}

// WithType sets the type rules.
func WithType(p Pair[ast.T]) Option {
	return func(f *form) {
		f.Type = p
	}
}

// Exports returns the form's export spec.
func (f *form) Exports() beta.Export {
	return f.exports
}

// Grammar returns the description of the form's surface syntax.
func (f *form) Grammar() string {
	return f.grammar
}

// Name returns the form's name.
func (f *form) Name() string {
	return f.name
}

// Phase returns the phase shift for the position k.
func (f *form) Phase(k string) int {
	return f.Shifts[k]
}

// Positions returns the keys every node of the form has in its body.
func (f *form) Positions() []string {
	return f.positions
}

// String returns the form's name in brackets.
func (f *form) String() string {
	return "[FORM " + f.name + "]"
}

// To returns the *T behind f, faulting if f is some other kind of form.
func To(f ast.Form) *T {
	t, ok := f.(*form)
	if !ok {
		fault.Raise(fault.T{What: "foreign form", Form: f.Name(), Expected: "a kith form"})
	}

	return t
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t form

	// The form type can be the form of a node.
	_ = ast.Form(&t)
}
