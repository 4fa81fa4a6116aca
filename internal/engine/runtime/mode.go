// Released under an MIT license. See LICENSE.

// Package runtime provides kith's evaluation passes: evaluating
// expressions, destructuring values against patterns, and building and
// matching quoted syntax.
package runtime

import (
	"github.com/michaelmacinnis/kith/internal/common/fault"
	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/common/type/syntax"
	"github.com/michaelmacinnis/kith/internal/engine/form"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
)

type (
	eval        struct{ walk.Defaults[cell.I] }
	destructure struct{ walk.Defaults[cell.I] }
	qquote      struct{ walk.Defaults[cell.I] }
	qquoteDestr struct{ walk.Defaults[cell.I] }
)

// The four value modes.
//
//nolint:gochecknoglobals
var (
	Eval        walk.Mode[cell.I] = eval{}
	Destructure walk.Mode[cell.I] = destructure{}
	QQuote      walk.Mode[cell.I] = qquote{}
	QQuoteDestr walk.Mode[cell.I] = qquoteDestr{}
)

func (eval) Name() string               { return "Eval" }
func (eval) Negative() bool             { return false }
func (eval) Negated() walk.Mode[cell.I] { return Destructure }
func (eval) AutoExtend() bool           { return false }

func (eval) Quoted(d int) walk.Mode[cell.I] {
	if d > 0 {
		return QQuote
	}

	return Eval
}

func (eval) Rule(f ast.Form, _ *walk.Reses[cell.I]) walk.Rule[cell.I] {
	return form.To(f).Eval.Pos()
}

func (destructure) Name() string               { return "Destructure" }
func (destructure) Negative() bool             { return true }
func (destructure) Negated() walk.Mode[cell.I] { return Eval }
func (destructure) AutoExtend() bool           { return false }

func (destructure) Quoted(d int) walk.Mode[cell.I] {
	if d > 0 {
		return QQuoteDestr
	}

	return Destructure
}

func (destructure) Rule(f ast.Form, _ *walk.Reses[cell.I]) walk.Rule[cell.I] {
	return form.To(f).Eval.Neg()
}

func (destructure) Var(n string, _ *walk.Reses[cell.I]) (walk.Out[cell.I], error) {
	fault.Raise(fault.T{What: "variable reference in a pattern", Actual: n})

	return walk.Out[cell.I]{}, nil
}

func (qquote) Name() string               { return "QQuote" }
func (qquote) Negative() bool             { return false }
func (qquote) Negated() walk.Mode[cell.I] { return QQuoteDestr }
func (qquote) Wraps() bool                { return true }

func (qquote) Quoted(d int) walk.Mode[cell.I] {
	if d > 0 {
		return QQuote
	}

	return Eval
}

func (qquote) Rule(f ast.Form, _ *walk.Reses[cell.I]) walk.Rule[cell.I] {
	return form.To(f).Quasi.Pos()
}

// Var reifies the reference itself.
func (qquote) Var(n string, _ *walk.Reses[cell.I]) (walk.Out[cell.I], error) {
	return walk.Out[cell.I]{Elt: syntax.New(ast.VarRef(n))}, nil
}

// Atom reifies the atom itself.
func (qquote) Atom(n string, _ *walk.Reses[cell.I]) (walk.Out[cell.I], error) {
	return walk.Out[cell.I]{Elt: syntax.New(ast.Atom(n))}, nil
}

func (qquoteDestr) Name() string               { return "QQuoteDestr" }
func (qquoteDestr) Negative() bool             { return true }
func (qquoteDestr) Negated() walk.Mode[cell.I] { return QQuote }
func (qquoteDestr) Wraps() bool                { return true }

func (qquoteDestr) Quoted(d int) walk.Mode[cell.I] {
	if d > 0 {
		return QQuoteDestr
	}

	return Destructure
}

func (qquoteDestr) Rule(f ast.Form, _ *walk.Reses[cell.I]) walk.Rule[cell.I] {
	return form.To(f).Quasi.Neg()
}

// Var succeeds only if the context is the same reference.
func (qquoteDestr) Var(n string, r *walk.Reses[cell.I]) (walk.Out[cell.I], error) {
	return literally(ast.VarRef(n), r)
}

// Atom succeeds only if the context is the same atom.
func (qquoteDestr) Atom(n string, r *walk.Reses[cell.I]) (walk.Out[cell.I], error) {
	return literally(ast.Atom(n), r)
}

// PreMatch renames the binders of the syntax being matched to those of the
// pattern, so that patterns match up to the choice of bound names.
func (qquoteDestr) PreMatch(p ast.T, r *walk.Reses[cell.I]) cell.I {
	ctx := r.Context()
	if !r.Options().Freshen || !syntax.Is(ctx) {
		return ctx
	}

	pn, ok := p.(ast.Node)
	if !ok {
		return ctx
	}

	gn, ok := syntax.Tree(ctx).(ast.Node)
	if !ok || gn.Form != pn.Form {
		return ctx
	}

	want, have := ast.Binders(pn), ast.Binders(gn)
	if len(want) != len(have) {
		return ctx
	}

	used := ast.Names(gn)
	m := map[string]string{}

	for i, n := range have {
		if n != want[i] && !used[want[i]] {
			m[n] = want[i]
		}
	}

	if len(m) == 0 {
		return ctx
	}

	return syntax.New(ast.Rename(gn, m))
}

func (eval) FromSyntax(t ast.T) cell.I        { return syntax.New(t) }
func (destructure) FromSyntax(t ast.T) cell.I { return syntax.New(t) }
func (qquote) FromSyntax(t ast.T) cell.I      { return syntax.New(t) }
func (qquoteDestr) FromSyntax(t ast.T) cell.I { return syntax.New(t) }

func (eval) ToSyntax(c cell.I) ast.T        { return tree(c) }
func (destructure) ToSyntax(c cell.I) ast.T { return tree(c) }
func (qquote) ToSyntax(c cell.I) ast.T      { return tree(c) }
func (qquoteDestr) ToSyntax(c cell.I) ast.T { return tree(c) }

func (eval) Mismatch(p ast.T, got cell.I) error {
	return &Error{Kind: PatternMismatch, Expected: p, Got: got}
}

func (destructure) Mismatch(p ast.T, got cell.I) error {
	return &Error{Kind: PatternMismatch, Expected: p, Got: got}
}

func (qquote) Mismatch(p ast.T, got cell.I) error {
	return &Error{Kind: QuotedLiteralMismatch, Expected: p, Got: got}
}

func (qquoteDestr) Mismatch(p ast.T, got cell.I) error {
	return &Error{Kind: QuotedLiteralMismatch, Expected: p, Got: got}
}

func literally(t ast.T, r *walk.Reses[cell.I]) (walk.Out[cell.I], error) {
	ctx := r.Context()
	if syntax.Is(ctx) && ast.Equal(syntax.Tree(ctx), t) {
		return walk.Out[cell.I]{}, nil
	}

	return walk.Out[cell.I]{}, &Error{Kind: QuotedLiteralMismatch, Expected: t, Got: ctx}
}

func tree(c cell.I) ast.T {
	if !syntax.Is(c) {
		fault.Raise(fault.T{What: "value used as syntax", Expected: "syntax", Actual: c.Name()})
	}

	return syntax.Tree(c)
}

// Evaluate returns the value of the expression t under env.
func Evaluate(t ast.T, env assoc.T[cell.I], o *walk.Options) (cell.I, error) {
	return walk.Positive(Eval, t, env, o)
}

// MatchPattern returns the bindings from matching the pattern p against v.
func MatchPattern(p ast.T, env assoc.T[cell.I], v cell.I, o *walk.Options) (assoc.T[cell.I], error) {
	return walk.Negative(Destructure, p, env, v, o)
}

// A compiler-checked list of interfaces these types satisfy. Never called.
func implements() { //nolint:deadcode,unused
	// Each of the value modes is a mode over values.
	_ = walk.Mode[cell.I](eval{})
	_ = walk.Mode[cell.I](destructure{})
	_ = walk.Mode[cell.I](qquote{})
	_ = walk.Mode[cell.I](qquoteDestr{})
}
