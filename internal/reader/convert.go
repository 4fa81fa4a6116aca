// Released under an MIT license. See LICENSE.

package reader

import (
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/engine/core"
	"github.com/michaelmacinnis/kith/internal/reader/parser"
)

// converter builds trees from items. Inside a quoted pattern, unquote takes
// a type and a pattern rather than an expression.
type converter struct {
	pattern bool
}

func (c converter) tree(category string, i *parser.Item) ast.T {
	switch category {
	case core.Expr:
		return c.expr(i)
	case core.Pat:
		return c.pat(i)
	case core.Type:
		return c.typ(i)
	}

	panic(&Error{Source: i.Source, Expected: "Expr, Pat, or Type", Got: category})
}

func (c converter) expr(i *parser.Item) ast.T {
	if h, ok := i.Head(); ok && h == "unquote" {
		return c.unquote(i)
	}

	if !i.IsList() {
		if !i.IsString() && integer(i.Text) {
			return core.LitString(i.Text)
		}

		return core.V(i.Text)
	}

	h, _ := i.Head()
	args := i.List[min(1, len(i.List)):]

	switch h {
	case "fn":
		if len(args) != 2 || !args[0].IsList() {
			fail(i, core.Expr, "lambda")
		}

		params := make([]core.Param, len(args[0].List))
		for n, p := range args[0].List {
			if !p.IsList() || len(p.List) != 2 {
				fail(i, core.Expr, "lambda")
			}

			params[n] = core.Param{Name: name(p.List[0], core.Expr, "lambda"), Type: c.typ(p.List[1])}
		}

		return core.Lambda(params, c.expr(args[1]))
	case "match":
		if len(args) < 1 {
			fail(i, core.Expr, "match")
		}

		cases := make([]core.Case, len(args)-1)
		for n, a := range args[1:] {
			if !a.IsList() || len(a.List) != 2 {
				fail(i, core.Expr, "match")
			}

			cases[n] = core.Case{Pat: c.pat(a.List[0]), Body: c.expr(a.List[1])}
		}

		return core.Match(c.expr(args[0]), cases...)
	case "tag":
		if len(args) != 3 || !args[1].IsList() {
			fail(i, core.Expr, "enum_expr")
		}

		return core.Tag(name(args[0], core.Expr, "enum_expr"), c.each(core.Expr, args[1].List), c.typ(args[2]))
	case "record":
		return core.Record(c.fields(i, core.Expr, "struct_expr", args)...)
	case "fix":
		if len(args) != 1 {
			fail(i, core.Expr, "fix")
		}

		return core.Fix(c.expr(args[0]))
	case "fold":
		if len(args) != 2 {
			fail(i, core.Expr, "fold")
		}

		return core.Fold(c.expr(args[0]), c.typ(args[1]))
	case "unfold":
		if len(args) != 1 {
			fail(i, core.Expr, "unfold")
		}

		return core.Unfold(c.expr(args[0]))
	case "forall":
		if len(args) != 2 {
			fail(i, core.Expr, "forall_expr")
		}

		return core.Forall(names(args[0], core.Expr, "forall_expr"), c.expr(args[1]))
	case "quote":
		if len(args) != 2 {
			fail(i, core.Expr, "quote")
		}

		nt := nonterminal(args[0], core.Expr, "quote")

		return core.Quote(nt, c.tree(nt, args[1]))
	}

	if len(i.List) == 0 {
		fail(i, core.Expr, "apply")
	}

	return core.Apply(c.expr(i.List[0]), c.each(core.Expr, args)...)
}

func (c converter) pat(i *parser.Item) ast.T {
	if h, ok := i.Head(); ok && h == "unquote" {
		return c.unquote(i)
	}

	if !i.IsList() {
		return core.PVar(i.Text)
	}

	h, _ := i.Head()
	args := i.List[min(1, len(i.List)):]

	switch h {
	case "tag":
		if len(args) < 1 {
			fail(i, core.Pat, "pat_enum")
		}

		return core.PTag(name(args[0], core.Pat, "pat_enum"), c.each(core.Pat, args[1:])...)
	case "record":
		return core.PRecord(c.fields(i, core.Pat, "pat_struct", args)...)
	case "quote":
		if len(args) != 2 {
			fail(i, core.Pat, "pat_quote")
		}

		nt := nonterminal(args[0], core.Pat, "pat_quote")

		return core.PQuote(nt, converter{pattern: true}.tree(nt, args[1]))
	}

	fail(i, core.Pat, "pat_enum")

	return nil
}

func (c converter) typ(i *parser.Item) ast.T {
	if h, ok := i.Head(); ok && h == "unquote" {
		return c.unquote(i)
	}

	if !i.IsList() {
		return core.V(i.Text)
	}

	h, ok := i.Head()
	if !ok {
		fail(i, core.Type, "type_apply")
	}

	args := i.List[1:]

	switch h {
	case "->":
		if len(args) < 1 {
			fail(i, core.Type, "fn")
		}

		last := len(args) - 1

		return core.TFn(c.each(core.Type, args[:last]), c.typ(args[last]))
	case "forall":
		if len(args) != 2 {
			fail(i, core.Type, "forall")
		}

		return core.TForall(names(args[0], core.Type, "forall"), c.typ(args[1]))
	case "struct":
		return core.TStruct(c.fields(i, core.Type, "struct", args)...)
	case "enum":
		arms := make([]core.Variant, len(args))
		for n, a := range args {
			h, ok := a.Head()
			if !ok {
				fail(i, core.Type, "enum")
			}

			arms[n] = core.Variant{Name: h, Components: c.each(core.Type, a.List[1:])}
		}

		return core.TEnum(arms...)
	case "mu":
		if len(args) != 2 {
			fail(i, core.Type, "mu")
		}

		return core.TMu(name(args[0], core.Type, "mu"), c.typ(args[1]))
	case core.Expr, core.Pat, core.Type:
		if len(args) != 1 {
			fail(i, core.Type, "syntax")
		}

		return core.TSyntax(h, c.typ(args[0]))
	}

	return core.TApply(core.V(h), c.each(core.Type, args)...)
}

func (c converter) unquote(i *parser.Item) ast.T {
	args := i.List[1:]

	if c.pattern {
		if len(args) != 3 {
			fail(i, core.Pat, "unquote_pat")
		}

		nt := nonterminal(args[0], core.Pat, "unquote_pat")
		plain := converter{}

		return core.PUnquote(nt, plain.typ(args[1]), plain.pat(args[2]))
	}

	if len(args) != 2 {
		fail(i, core.Expr, "unquote")
	}

	return core.Unquote(nonterminal(args[0], core.Expr, "unquote"), converter{}.expr(args[1]))
}

func (c converter) each(category string, is []*parser.Item) []ast.T {
	ts := make([]ast.T, len(is))
	for n, i := range is {
		ts[n] = c.tree(category, i)
	}

	return ts
}

func (c converter) fields(i *parser.Item, category, f string, args []*parser.Item) []core.Field {
	fs := make([]core.Field, len(args))
	for n, a := range args {
		if !a.IsList() || len(a.List) != 2 {
			fail(i, category, f)
		}

		fs[n] = core.Field{Name: name(a.List[0], category, f), Tree: c.tree(category, a.List[1])}
	}

	return fs
}

func fail(i *parser.Item, category, f string) {
	panic(&Error{
		Source:   i.Source,
		Expected: core.Find(category, f).Grammar(),
		Got:      i.String(),
	})
}

func integer(s string) bool {
	if len(s) > 1 && s[0] == '-' {
		s = s[1:]
	}

	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func name(i *parser.Item, category, f string) string {
	if i.IsList() {
		fail(i, category, f)
	}

	return i.Text
}

func names(i *parser.Item, category, f string) []string {
	if !i.IsList() {
		fail(i, category, f)
	}

	ns := make([]string, len(i.List))
	for n, e := range i.List {
		ns[n] = name(e, category, f)
	}

	return ns
}

func nonterminal(i *parser.Item, category, f string) string {
	nt := name(i, category, f)
	switch nt {
	case core.Expr, core.Pat, core.Type:
		return nt
	}

	fail(i, category, f)

	return ""
}
