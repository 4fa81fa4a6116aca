// Released under an MIT license. See LICENSE.

package core

import (
	"testing"

	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/interface/literal"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/common/type/create"
	"github.com/michaelmacinnis/kith/internal/common/type/syntax"
	"github.com/michaelmacinnis/kith/internal/engine/runtime"
	"github.com/michaelmacinnis/kith/internal/engine/ty"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
)

func check(t *testing.T, e ast.T) ast.T {
	t.Helper()

	vt, err := ty.SynthType(e, Types(), walk.Default())
	if err != nil {
		t.Fatalf("%s: %v", e, err)
	}

	return vt
}

func run(t *testing.T, e ast.T) (cell.I, string) {
	t.Helper()

	vt := check(t, e)

	v, err := runtime.Evaluate(e, Values(), walk.Default())
	if err != nil {
		t.Fatalf("%s: %v", e, err)
	}

	return v, ty.String(vt)
}

func expect(t *testing.T, e ast.T, value, typ string) {
	t.Helper()

	v, vt := run(t, e)

	if got := literal.String(v); got != value {
		t.Fatalf("value is %s, expected %s", got, value)
	}

	if vt != typ {
		t.Fatalf("type is %s, expected %s", vt, typ)
	}
}

func ill(t *testing.T, e ast.T, k ty.Kind) {
	t.Helper()

	_, err := ty.SynthType(e, Types(), walk.Default())
	if !ty.Is(err, k) {
		t.Fatalf("expected a type error of kind %d, got %v", k, err)
	}
}

func params(ps ...Param) []Param {
	return ps
}

func listType() ast.T {
	return TMu("L", TEnum(
		Variant{Name: "Nil"},
		Variant{Name: "Cons", Components: []ast.T{TInt(), V("L")}},
	))
}

func cons(head, tail ast.T) ast.T {
	return Fold(Tag("Cons", []ast.T{head, tail}, listType()), listType())
}

func identity() ast.T {
	return Forall([]string{"T"}, Lambda(params(Param{"x", V("T")}), V("x")))
}

func TestZeroTest(t *testing.T) {
	v, vt := run(t, Apply(V("zero?"), V("zero")))

	if !create.Truth(v) {
		t.Fatalf("(zero? zero) = %s", literal.String(v))
	}

	if vt != "(enum (True) (False))" {
		t.Fatalf("type is %s", vt)
	}
}

func TestAddition(t *testing.T) {
	expect(t, Apply(V("plus"), V("one"), V("one")), "2", "Int")
	expect(t, Apply(V("minus"), Lit(10), Apply(V("times"), V("three"), V("three"))), "1", "Int")
}

func TestFactorial(t *testing.T) {
	step := Lambda(params(Param{"self", TFn([]ast.T{TInt()}, TInt())}),
		Lambda(params(Param{"n", TInt()}),
			Match(Apply(V("zero?"), V("n")),
				Case{PTag("True"), V("one")},
				Case{PTag("False"), Apply(V("times"), V("n"),
					Apply(V("self"), Apply(V("minus"), V("n"), V("one"))))},
			)))

	expect(t, Apply(Fix(step), Lit(5)), "120", "Int")
}

func TestListLength(t *testing.T) {
	l := listType()

	length := Fix(Lambda(params(Param{"self", TFn([]ast.T{l}, TInt())}),
		Lambda(params(Param{"l", l}),
			Match(Unfold(V("l")),
				Case{PTag("Nil"), V("zero")},
				Case{PTag("Cons", PVar("h"), PVar("t")), Apply(V("plus"), V("one"), Apply(V("self"), V("t")))},
			))))

	nilList := Fold(Tag("Nil", nil, l), l)
	three := cons(Lit(7), cons(Lit(8), cons(Lit(9), nilList)))

	expect(t, Apply(length, three), "3", "Int")

	_, vt := run(t, three)
	if vt != "(mu L (enum (Nil) (Cons Int L)))" {
		t.Fatalf("list type is %s", vt)
	}
}

func TestQuotedMatch(t *testing.T) {
	quoted := Quote(Expr, Apply(V("plus"), V("one"), V("two")))

	e := Match(quoted, Case{
		PQuote(Expr, Apply(V("plus"), PUnquote(Expr, TInt(), PVar("e")), V("two"))),
		V("e"),
	})

	v, vt := run(t, e)

	if !syntax.Is(v) || !ast.Equal(syntax.Tree(v), V("one")) {
		t.Fatalf("e is %s, expected '[one]'", literal.String(v))
	}

	if vt != "(Expr Int)" {
		t.Fatalf("type is %s", vt)
	}

	missed := Match(quoted,
		Case{PQuote(Expr, Apply(V("minus"), PUnquote(Expr, TInt(), PVar("e")), V("two"))), V("zero")},
		Case{PVar("other"), V("one")},
	)

	expect(t, missed, "1", "Int")
}

func TestUnquoteSplices(t *testing.T) {
	e := Quote(Expr, Apply(V("plus"), Unquote(Expr, Quote(Expr, V("one"))), V("two")))

	v, vt := run(t, e)

	want := Apply(V("plus"), V("one"), V("two"))
	if !ast.Equal(syntax.Tree(v), want) {
		t.Fatalf("built %s, expected %s", syntax.Tree(v), want)
	}

	if vt != "(Expr Int)" {
		t.Fatalf("type is %s", vt)
	}

	ill(t, Quote(Expr, Apply(V("plus"), Unquote(Expr, V("one")), V("two"))), ty.NotSyntax)
}

func TestPolymorphism(t *testing.T) {
	expect(t, Apply(identity(), Lit(42)), "42", "Int")

	_, vt := run(t, identity())
	if vt != "(forall (T) (-> T T))" {
		t.Fatalf("identity has type %s", vt)
	}

	wantsPoly := Lambda(params(Param{"f", TForall([]string{"X"}, TFn([]ast.T{V("X")}, V("X")))}),
		Apply(V("f"), V("one")))

	expect(t, Apply(wantsPoly, identity()), "1", "Int")

	mono := Lambda(params(Param{"n", TInt()}), V("n"))
	ill(t, Apply(wantsPoly, mono), ty.Mismatch)
}

func TestRecords(t *testing.T) {
	rec := Record(Field{"a", Lit(1)}, Field{"b", Lit(2)})

	expect(t, Match(rec, Case{PRecord(Field{"b", PVar("y")}), V("y")}), "2", "Int")

	onlyA := Lambda(params(Param{"r", TStruct(Field{"a", TInt()})}),
		Match(V("r"), Case{PRecord(Field{"a", PVar("x")}), V("x")}))

	expect(t, Apply(onlyA, rec), "1", "Int")

	ill(t, Apply(onlyA, Record(Field{"b", Lit(2)})), ty.Mismatch)
	ill(t, Match(rec, Case{PRecord(Field{"c", PVar("y")}), V("y")}), ty.FieldMissing)
}

func TestHygiene(t *testing.T) {
	fn := Lambda(params(Param{"x", TInt()}), V("x"))

	v, _ := run(t, Quote(Expr, fn))

	for _, n := range ast.AllBinders(syntax.Tree(v)) {
		if n == "x" {
			t.Fatalf("binder in %s was not renamed", syntax.Tree(v))
		}
	}

	same := Match(Quote(Expr, fn), Case{PQuote(Expr, fn), V("one")}, Case{PVar("_"), V("zero")})
	expect(t, same, "1", "Int")
}

func TestTypeErrors(t *testing.T) {
	ill(t, Apply(V("one"), V("two")), ty.NotAFunction)
	ill(t, Apply(V("plus"), V("one")), ty.ArityMismatch)
	ill(t, Apply(V("plus"), V("one"), V("true")), ty.Mismatch)
	ill(t, Match(V("one")), ty.NoArms)
	ill(t, Tag("Maybe", nil, V("Bool")), ty.NoSuchArm)
	ill(t, Tag("True", nil, V("Int")), ty.NotAnEnum)
	ill(t, Unfold(V("one")), ty.NotMu)
	ill(t, Match(V("true"), Case{PTag("True"), V("one")}, Case{PTag("False"), V("true")}), ty.Mismatch)
}

func TestNoArmMatched(t *testing.T) {
	_, err := runtime.Evaluate(Match(V("true"), Case{PTag("False"), V("one")}), Values(), nil)
	if err == nil || runtime.IsMismatch(err) {
		t.Fatalf("expected no arm to match, got %v", err)
	}
}

func TestForms(t *testing.T) {
	if Find(Expr, "apply") != ApplyForm {
		t.Fatal("apply is not the apply form")
	}

	if Category(PatVarForm) != Pat {
		t.Fatalf("pat_var is in %q", Category(PatVarForm))
	}

	ns := Forms(Type)
	if len(ns) != 9 || ns[0] != "Int" {
		t.Fatalf("type forms are %v", ns)
	}
}
