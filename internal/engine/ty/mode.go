// Released under an MIT license. See LICENSE.

// Package ty provides kith's type pass: synthesizing the type of an
// expression, and unpacking a pattern against an expected type to find the
// types of the names it binds.
package ty

import (
	"github.com/michaelmacinnis/kith/internal/common/fault"
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/engine/form"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
)

type synth struct {
	walk.Defaults[ast.T]
}

type unpack struct {
	walk.Defaults[ast.T]
}

// The two type modes.
//
//nolint:gochecknoglobals
var (
	SynthTy  walk.Mode[ast.T] = synth{}
	UnpackTy walk.Mode[ast.T] = unpack{}
)

func (synth) Name() string                 { return "SynthTy" }
func (synth) Negative() bool               { return false }
func (synth) Negated() walk.Mode[ast.T]    { return UnpackTy }
func (synth) Quoted(int) walk.Mode[ast.T]  { return SynthTy }
func (synth) FromSyntax(t ast.T) ast.T     { return t }
func (synth) ToSyntax(t ast.T) ast.T       { return t }
func (synth) Mismatch(p, got ast.T) error  { return &Error{Kind: Mismatch, Expected: p, Got: got} }
func (unpack) Name() string                { return "UnpackTy" }
func (unpack) Negative() bool              { return true }
func (unpack) Negated() walk.Mode[ast.T]   { return SynthTy }
func (unpack) Quoted(int) walk.Mode[ast.T] { return UnpackTy }
func (unpack) FromSyntax(t ast.T) ast.T    { return t }
func (unpack) ToSyntax(t ast.T) ast.T      { return t }
func (unpack) Mismatch(p, got ast.T) error { return &Error{Kind: Mismatch, Expected: p, Got: got} }

func (synth) Rule(f ast.Form, _ *walk.Reses[ast.T]) walk.Rule[ast.T] {
	return form.To(f).Type.Pos()
}

// Atom returns the atom itself. Atoms in type trees are binders.
func (synth) Atom(n string, _ *walk.Reses[ast.T]) (walk.Out[ast.T], error) {
	return walk.Out[ast.T]{Elt: ast.Atom(n)}, nil
}

// Underspecified binds n as a type variable standing for itself.
func (synth) Underspecified(n string, _ *walk.Reses[ast.T]) ast.T {
	return ast.VarRef(n)
}

// Rule returns the negative type rule for f. Inside quotation, a form with
// no negative type rule is searched for the escapes in it.
func (unpack) Rule(f ast.Form, r *walk.Reses[ast.T]) walk.Rule[ast.T] {
	p := form.To(f).Type
	if r.Depth() > 0 && !p.IsNeg() {
		return walk.CustomNeg(quoted)
	}

	return p.Neg()
}

func (unpack) Var(n string, r *walk.Reses[ast.T]) (walk.Out[ast.T], error) {
	if r.Depth() == 0 {
		fault.Raise(fault.T{What: "variable reference in a pattern", Actual: n})
	}

	return walk.Out[ast.T]{}, nil
}

func (unpack) Atom(n string, r *walk.Reses[ast.T]) (walk.Out[ast.T], error) {
	if r.Depth() == 0 {
		fault.Raise(fault.T{What: "bare atom in a pattern", Actual: n})
	}

	return walk.Out[ast.T]{}, nil
}

func (unpack) Underspecified(n string, _ *walk.Reses[ast.T]) ast.T {
	return ast.VarRef(n)
}

// quoted collects the bindings of every escape under a quoted node.
func quoted(r *walk.Reses[ast.T]) (assoc.T[ast.T], error) {
	env := assoc.New[ast.T]()

	var err error

	r.Body().Each(func(_ string, t ast.T) {
		if err != nil {
			return
		}

		var b assoc.T[ast.T]

		b, err = r.MatchTerm(ast.Strip(t))
		env = env.Merge(b)
	})

	return env, err
}

// SynthType returns the type of the expression t under env.
func SynthType(t ast.T, env assoc.T[ast.T], o *walk.Options) (ast.T, error) {
	return walk.Positive(SynthTy, t, env, o)
}

// UnpackType returns the types of the names bound by matching the pattern
// p against a value of type expected.
func UnpackType(p ast.T, env assoc.T[ast.T], expected ast.T, o *walk.Options) (assoc.T[ast.T], error) {
	return walk.Negative(UnpackTy, p, env, expected, o)
}

// A compiler-checked list of interfaces these types satisfy. Never called.
func implements() { //nolint:deadcode,unused
	// Both type modes are modes over types.
	_ = walk.Mode[ast.T](synth{})
	_ = walk.Mode[ast.T](unpack{})
}
