// Released under an MIT license. See LICENSE.

package engine

import (
	"strings"
	"testing"

	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/interface/literal"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/common/type/seq"
	"github.com/michaelmacinnis/kith/internal/common/type/smuggled"
	"github.com/michaelmacinnis/kith/internal/engine/core"
	"github.com/michaelmacinnis/kith/internal/engine/ty"
)

func TestNames(t *testing.T) {
	e := New(nil)

	ns, err := e.Names("")
	if err != nil {
		t.Fatal(err)
	}

	seen := map[string]int{}
	for _, n := range ns {
		seen[n]++
	}

	if seen["plus"] != 1 || seen["Int"] != 1 {
		t.Fatalf("names are %v", ns)
	}

	ns, err = e.Names("t*")
	if err != nil {
		t.Fatal(err)
	}

	if strings.Join(ns, " ") != "ten three times true two" {
		t.Fatalf("t* matched %v", ns)
	}

	if _, err := e.Names("["); err == nil {
		t.Fatal("expected a bad pattern")
	}
}

func TestDefine(t *testing.T) {
	e := New(nil)

	v, vt, err := e.Define("eleven", core.Apply(core.V("plus"), core.V("ten"), core.V("one")))
	if err != nil {
		t.Fatal(err)
	}

	if literal.String(v) != "11" || ty.String(vt) != "Int" {
		t.Fatalf("defined %s : %s", literal.String(v), ty.String(vt))
	}

	c, err := e.DefineType("Pair", core.TStruct(
		core.Field{Name: "a", Tree: core.V("Int")},
		core.Field{Name: "b", Tree: core.V("Int")},
	))
	if err != nil {
		t.Fatal(err)
	}

	if ty.String(c) != "(struct (a Int) (b Int))" {
		t.Fatalf("Pair is %s", ty.String(c))
	}

	ns, _ := e.Names("[eP]*")
	if strings.Join(ns, " ") != "Pair eight eleven equal?" {
		t.Fatalf("names are %v", ns)
	}

	if _, _, err := e.Define("bad", core.Apply(core.V("eleven"))); err == nil {
		t.Fatal("defined an ill-typed expression")
	}

	if ns, _ := e.Names("bad"); len(ns) != 0 {
		t.Fatal("a failed definition was bound")
	}
}

func TestEvaluateAll(t *testing.T) {
	e := New(nil)

	v, err := e.EvaluateAll([]ast.T{core.V("one"), core.Apply(core.V("plus"), core.V("two"), core.V("two"))})
	if err != nil {
		t.Fatal(err)
	}

	if !seq.Is(v) || len(*seq.To(v)) != 2 || literal.String(v) != "14" {
		t.Fatalf("evaluated %s", literal.String(v))
	}

	if _, err := e.EvaluateAll([]ast.T{core.V("one"), core.Apply(core.V("one"))}); err == nil {
		t.Fatal("applied a number")
	}
}

func TestTypeValues(t *testing.T) {
	e := New(nil)

	c, err := e.DefineType("Flag", core.TEnum(core.Variant{Name: "On"}, core.Variant{Name: "Off"}))
	if err != nil {
		t.Fatal(err)
	}

	for name, expected := range map[string]ast.T{"Int": ty.Int(), "Flag": c} {
		v, err := e.Evaluate(core.V(name))
		if err != nil {
			t.Fatal(err)
		}

		if !smuggled.Is(v) || !ast.Equal(smuggled.To(v).Payload.(ast.T), expected) {
			t.Fatalf("%s evaluated to %s", name, literal.String(v))
		}
	}
}

func TestDeterministic(t *testing.T) {
	v := core.V

	fact := core.Fix(core.Lambda([]core.Param{{Name: "self", Type: core.TFn([]ast.T{core.TInt()}, core.TInt())}},
		core.Lambda([]core.Param{{Name: "n", Type: core.TInt()}},
			core.Match(core.Apply(v("zero?"), v("n")),
				core.Case{Pat: core.PTag("True"), Body: v("one")},
				core.Case{Pat: core.PTag("False"), Body: core.Apply(v("times"), v("n"),
					core.Apply(v("self"), core.Apply(v("minus"), v("n"), v("one"))))}))))

	terms := []ast.T{
		core.Apply(fact, core.Lit(6)),
		core.Record(core.Field{Name: "a", Tree: v("one")}, core.Field{Name: "b", Tree: v("true")}),
		core.Quote(core.Expr, core.Lambda([]core.Param{{Name: "x", Type: core.TInt()}}, v("x"))),
	}

	e := New(nil)

	for _, term := range terms {
		var first, second cell.I

		// Quoted binders are renamed freshly on each evaluation.
		e.Options().Without(func() {
			var err error

			first, _, err = e.Run(term)
			if err != nil {
				t.Fatalf("%s: %v", term, err)
			}

			second, _, err = e.Run(term)
			if err != nil {
				t.Fatalf("%s: %v", term, err)
			}
		})

		if !first.Equal(second) {
			t.Fatalf("%s evaluated to %s and then %s", term, literal.String(first), literal.String(second))
		}
	}

	if !e.Options().Freshen {
		t.Fatal("freshening was not restored")
	}
}
