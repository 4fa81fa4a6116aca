// Released under an MIT license. See LICENSE.

// Package core provides kith's built-in forms and the environments every
// session starts with.
package core

import (
	"sort"

	"github.com/michaelmacinnis/kith/internal/common/fault"
	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/struct/beta"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/engine/form"
	"github.com/michaelmacinnis/kith/internal/engine/ty"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
)

// Categories of form.
const (
	Expr = "Expr"
	Pat  = "Pat"
	Type = "Type"
)

// Expression forms.
//
//nolint:gochecknoglobals
var (
	ApplyForm = form.New("apply", []string{"rator", "rand"},
		form.WithType(form.Positive(walk.Custom(applyType))),
		form.WithEval(form.Positive(walk.Custom(applyEval))),
		form.WithGrammar("(f a ...)"))

	LambdaForm = form.New("lambda", []string{"param", "p_t", "body"},
		form.WithType(form.Positive(walk.Custom(lambdaType))),
		form.WithEval(form.Positive(walk.Custom(lambdaEval))),
		form.WithGrammar("(fn ((x T) ...) body)"))

	MatchForm = form.New("match", []string{"scrutinee", "p", "arm"},
		form.WithType(form.Positive(walk.Custom(matchType))),
		form.WithEval(form.Positive(walk.Custom(matchEval))),
		form.WithGrammar("(match e (pat body) ...)"))

	EnumExprForm = form.New("enum_expr", []string{"name", "component", "t"},
		form.WithType(form.Positive(walk.Custom(enumExprType))),
		form.WithEval(form.Positive(walk.Custom(enumExprEval))),
		form.WithGrammar("(tag Name (e ...) T)"))

	StructExprForm = form.New("struct_expr", []string{"component_name", "component"},
		form.WithType(form.Positive(walk.Custom(structExprType))),
		form.WithEval(form.Positive(walk.Custom(structExprEval))),
		form.WithGrammar("(record (f e) ...)"))

	FixForm = form.New("fix", []string{"body"},
		form.WithType(form.Positive(walk.Custom(fixType))),
		form.WithEval(form.Positive(walk.Custom(fixEval))),
		form.WithGrammar("(fix e)"))

	FoldForm = form.New("fold", []string{"body", "t"},
		form.WithType(form.Positive(walk.Custom(foldType))),
		form.WithEval(form.Positive(walk.Custom(bodyEval))),
		form.WithGrammar("(fold e T)"))

	UnfoldForm = form.New("unfold", []string{"body"},
		form.WithType(form.Positive(walk.Custom(unfoldType))),
		form.WithEval(form.Positive(walk.Custom(bodyEval))),
		form.WithGrammar("(unfold e)"))

	ForallExprForm = form.New("forall_expr", []string{"param", "body"},
		form.WithType(form.Positive(walk.Custom(forallExprType))),
		form.WithEval(form.Positive(walk.Custom(forallExprEval))),
		form.WithGrammar("(forall (T ...) e)"))

	LitForm = form.New("lit", []string{"value"},
		form.WithType(form.Positive(walk.Custom(litType))),
		form.WithEval(form.Positive(walk.Custom(litEval))),
		form.WithGrammar("42"))

	QuoteForm = form.New("quote", []string{"nt", "body"},
		form.WithType(form.Positive(walk.Custom(quoteType))),
		form.WithEval(form.Positive(walk.Custom(bodyEval))),
		form.WithGrammar("(quote NT e)"))

	UnquoteForm = form.New("unquote", []string{"nt", "body"},
		form.WithType(form.Positive(walk.Custom(unquoteType))),
		form.WithQuasi(form.Both(walk.Custom(unquoteQuasi), walk.LiteralLike[cell.I]())),
		form.WithGrammar("(unquote NT e)"))
)

// Pattern forms.
//
//nolint:gochecknoglobals
var (
	PatVarForm = form.New("pat_var", []string{"name"},
		form.WithType(form.Negative(walk.CustomNeg(patVarType))),
		form.WithEval(form.Negative(walk.CustomNeg(patVarEval))),
		form.WithExports(beta.Use("name")),
		form.WithGrammar("x"))

	PatEnumForm = form.New("pat_enum", []string{"name", "component"},
		form.WithType(form.Negative(walk.CustomNeg(patEnumType))),
		form.WithEval(form.Negative(walk.CustomNeg(patEnumEval))),
		form.WithExports(beta.UseAll(beta.Use("component"))),
		form.WithGrammar("(tag Name p ...)"))

	PatStructForm = form.New("pat_struct", []string{"component_name", "component"},
		form.WithType(form.Negative(walk.CustomNeg(patStructType))),
		form.WithEval(form.Negative(walk.CustomNeg(patStructEval))),
		form.WithExports(beta.UseAll(beta.Use("component"))),
		form.WithGrammar("(record (f p) ...)"))

	PatQuoteForm = form.New("pat_quote", []string{"nt", "body"},
		form.WithType(form.Negative(walk.CustomNeg(patQuoteType))),
		form.WithEval(form.Negative(walk.CustomNeg(matchBody))),
		form.WithExports(beta.Use("body")),
		form.WithGrammar("(quote NT qpat)"))

	UnquotePatForm = form.New("unquote_pat", []string{"nt", "ty", "body"},
		form.WithType(form.Negative(walk.CustomNeg(unquotePatType))),
		form.WithQuasi(form.Both(walk.LiteralLike[cell.I](), walk.CustomNeg(matchBody))),
		form.WithExports(beta.Use("body")),
		form.WithGrammar("(unquote NT T pat)"))
)

//nolint:gochecknoglobals
var registry = map[string]map[string]*form.T{
	Expr: {
		"apply":       ApplyForm,
		"lambda":      LambdaForm,
		"match":       MatchForm,
		"enum_expr":   EnumExprForm,
		"struct_expr": StructExprForm,
		"fix":         FixForm,
		"fold":        FoldForm,
		"unfold":      UnfoldForm,
		"forall_expr": ForallExprForm,
		"lit":         LitForm,
		"quote":       QuoteForm,
		"unquote":     UnquoteForm,
	},
	Pat: {
		"pat_var":     PatVarForm,
		"pat_enum":    PatEnumForm,
		"pat_struct":  PatStructForm,
		"pat_quote":   PatQuoteForm,
		"unquote_pat": UnquotePatForm,
	},
	Type: {
		"Int":        ty.IntForm,
		"Nat":        ty.NatForm,
		"fn":         ty.FnForm,
		"forall":     ty.ForallForm,
		"struct":     ty.StructForm,
		"enum":       ty.EnumForm,
		"mu":         ty.MuForm,
		"syntax":     ty.SyntaxForm,
		"type_apply": ty.ApplyForm,
	},
}

// Find returns the form called name in category. Asking for a form that
// does not exist is a fault.
func Find(category, name string) *form.T {
	f, ok := registry[category][name]
	if !ok {
		fault.Raise(fault.T{
			What:     "no such form",
			Expected: "a form in " + category,
			Actual:   name,
		})
	}

	return f
}

// Forms returns the names of the forms in category, sorted.
func Forms(category string) []string {
	var ns []string
	for n := range registry[category] {
		ns = append(ns, n)
	}

	sort.Strings(ns)

	return ns
}

// Category returns the category holding f.
func Category(f ast.Form) string {
	for c, fs := range registry {
		for _, g := range fs {
			if ast.Form(g) == f {
				return c
			}
		}
	}

	return ""
}
