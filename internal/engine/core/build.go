// Released under an MIT license. See LICENSE.

package core

import (
	"strconv"

	"github.com/michaelmacinnis/kith/internal/common/struct/beta"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/engine/ty"
)

// Param is a function parameter: a name and the tree for its type.
type Param struct {
	Name string
	Type ast.T
}

// Case is an arm of a match: a pattern and the expression it guards.
type Case struct {
	Pat  ast.T
	Body ast.T
}

// Field is a named sub-tree of a record expression, pattern, or type.
type Field struct {
	Name string
	Tree ast.T
}

// Variant is an arm of an enum type tree.
type Variant struct {
	Name       string
	Components []ast.T
}

// V returns a variable reference.
func V(n string) ast.T {
	return ast.VarRef(n)
}

// Apply builds the application of f to args.
func Apply(f ast.T, args ...ast.T) ast.T {
	return ast.New(ApplyForm, ast.Leaf("rator", f), ast.Repeat("rand", args...))
}

// Lambda builds a function of params returning body.
func Lambda(params []Param, body ast.T) ast.T {
	reps := make([][]ast.Part, len(params))
	for i, p := range params {
		reps[i] = ast.Parts(ast.Leaf("param", ast.Atom(p.Name)), ast.Leaf("p_t", p.Type))
	}

	b := beta.All(beta.Basic{Name: "param", Type: "p_t"})

	return ast.New(LambdaForm,
		ast.Group([]string{"param", "p_t"}, reps...),
		ast.Leaf("body", ast.Extend(body, b)))
}

// Match builds a match of scrutinee against cases, tried in order.
func Match(scrutinee ast.T, cases ...Case) ast.T {
	reps := make([][]ast.Part, len(cases))
	for i, c := range cases {
		reps[i] = ast.Parts(
			ast.Leaf("p", c.Pat),
			ast.Leaf("arm", ast.Extend(c.Body, beta.SameAs{Name: "p", Source: "scrutinee"})),
		)
	}

	return ast.New(MatchForm,
		ast.Leaf("scrutinee", scrutinee),
		ast.Group([]string{"p", "arm"}, reps...))
}

// Tag builds the variant name of the enum type t carrying components.
func Tag(name string, components []ast.T, t ast.T) ast.T {
	return ast.New(EnumExprForm,
		ast.Leaf("name", ast.Atom(name)),
		ast.Repeat("component", components...),
		ast.Leaf("t", t))
}

// Record builds a struct from fields.
func Record(fields ...Field) ast.T {
	return ast.New(StructExprForm, fieldGroup(fields))
}

// Fix builds the fixed point of e.
func Fix(e ast.T) ast.T {
	return ast.New(FixForm, ast.Leaf("body", e))
}

// Fold builds e folded into the recursive type t.
func Fold(e, t ast.T) ast.T {
	return ast.New(FoldForm, ast.Leaf("body", e), ast.Leaf("t", t))
}

// Unfold builds e unfolded out of its recursive type.
func Unfold(e ast.T) ast.T {
	return ast.New(UnfoldForm, ast.Leaf("body", e))
}

// Forall builds e abstracted over the type names.
func Forall(names []string, e ast.T) ast.T {
	return ast.New(ForallExprForm,
		ast.Repeat("param", atoms(names)...),
		ast.Leaf("body", ast.Extend(e, beta.All(beta.Underspecified{Name: "param"}))))
}

// Lit builds the integer literal i.
func Lit(i int64) ast.T {
	return LitString(strconv.FormatInt(i, 10))
}

// LitString builds an integer literal from its decimal digits.
func LitString(s string) ast.T {
	return ast.New(LitForm, ast.Leaf("value", ast.Atom(s)))
}

// Quote builds e quoted as syntax of the nonterminal nt.
func Quote(nt string, e ast.T) ast.T {
	return ast.New(QuoteForm, ast.Leaf("nt", ast.Atom(nt)), ast.Leaf("body", ast.Quote(e, true)))
}

// Unquote builds an escape from quotation evaluating e.
func Unquote(nt string, e ast.T) ast.T {
	return ast.New(UnquoteForm, ast.Leaf("nt", ast.Atom(nt)), ast.Leaf("body", ast.Unquote(e)))
}

// PVar builds a pattern binding n.
func PVar(n string) ast.T {
	return ast.New(PatVarForm, ast.Leaf("name", ast.Atom(n)))
}

// PTag builds a pattern matching the variant name.
func PTag(name string, components ...ast.T) ast.T {
	return ast.New(PatEnumForm, ast.Leaf("name", ast.Atom(name)), ast.Repeat("component", components...))
}

// PRecord builds a pattern matching struct fields.
func PRecord(fields ...Field) ast.T {
	return ast.New(PatStructForm, fieldGroup(fields))
}

// PQuote builds a pattern matching syntax of the nonterminal nt against the
// quoted pattern p.
func PQuote(nt string, p ast.T) ast.T {
	return ast.New(PatQuoteForm, ast.Leaf("nt", ast.Atom(nt)), ast.Leaf("body", ast.Quote(p, false)))
}

// PUnquote builds an escape from a quoted pattern, matching syntax of the
// nonterminal nt whose meaning has type t against the pattern p.
func PUnquote(nt string, t, p ast.T) ast.T {
	return ast.New(UnquotePatForm,
		ast.Leaf("nt", ast.Atom(nt)),
		ast.Leaf("ty", ast.Unquote(t)),
		ast.Leaf("body", ast.Unquote(p)))
}

// TInt builds the integer type.
func TInt() ast.T {
	return ast.New(ty.IntForm)
}

// TNat builds the type of syntax without a meaning type.
func TNat() ast.T {
	return ast.New(ty.NatForm)
}

// TFn builds a function type tree.
func TFn(params []ast.T, ret ast.T) ast.T {
	return ast.New(ty.FnForm, ast.Repeat("param", params...), ast.Leaf("ret", ret))
}

// TForall builds a quantified type tree.
func TForall(names []string, t ast.T) ast.T {
	return ast.New(ty.ForallForm,
		ast.Repeat("param", atoms(names)...),
		ast.Leaf("body", ast.Extend(t, beta.All(beta.Underspecified{Name: "param"}))))
}

// TStruct builds a struct type tree.
func TStruct(fields ...Field) ast.T {
	return ast.New(ty.StructForm, fieldGroup(fields))
}

// TEnum builds an enum type tree.
func TEnum(arms ...Variant) ast.T {
	reps := make([][]ast.Part, len(arms))
	for i, a := range arms {
		reps[i] = ast.Parts(ast.Leaf("name", ast.Atom(a.Name)), ast.Repeat("component", a.Components...))
	}

	return ast.New(ty.EnumForm, ast.Group([]string{"name", "component"}, reps...))
}

// TMu builds a recursive type tree binding name in t.
func TMu(name string, t ast.T) ast.T {
	return ast.New(ty.MuForm,
		ast.Leaf("param", ast.Atom(name)),
		ast.Leaf("body", ast.Extend(t, beta.Underspecified{Name: "param"})))
}

// TSyntax builds the type tree of syntax of nt with meaning type t.
func TSyntax(nt string, t ast.T) ast.T {
	return ast.New(ty.SyntaxForm, ast.Leaf("nt", ast.Atom(nt)), ast.Leaf("ty", t))
}

// TApply builds the application of a quantified type to args.
func TApply(rator ast.T, args ...ast.T) ast.T {
	return ast.New(ty.ApplyForm, ast.Leaf("type_rator", rator), ast.Repeat("arg", args...))
}

func atoms(ns []string) []ast.T {
	ts := make([]ast.T, len(ns))
	for i, n := range ns {
		ts[i] = ast.Atom(n)
	}

	return ts
}

func fieldGroup(fields []Field) ast.Part {
	reps := make([][]ast.Part, len(fields))
	for i, f := range fields {
		reps[i] = ast.Parts(ast.Leaf("component_name", ast.Atom(f.Name)), ast.Leaf("component", f.Tree))
	}

	return ast.Group([]string{"component_name", "component"}, reps...)
}
