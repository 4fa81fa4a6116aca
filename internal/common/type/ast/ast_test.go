// Released under an MIT license. See LICENSE.

package ast

import (
	"reflect"
	"sort"
	"testing"

	"github.com/michaelmacinnis/kith/internal/common/struct/beta"
)

type form struct {
	name      string
	positions []string
	exports   beta.Export
}

func (f *form) Exports() beta.Export { return f.exports }
func (f *form) Name() string         { return f.name }
func (f *form) Phase(string) int     { return 0 }
func (f *form) Positions() []string  { return f.positions }

//nolint:gochecknoglobals
var (
	lambda = &form{name: "lambda", positions: []string{"param", "body"}, exports: beta.ExportNothing{}}
	apply  = &form{name: "apply", positions: []string{"rator", "rand"}, exports: beta.ExportNothing{}}
	pvar   = &form{name: "pat_var", positions: []string{"name"}, exports: beta.Use("name")}
	match  = &form{name: "match", positions: []string{"p", "arm"}, exports: beta.ExportNothing{}}
)

func fn(param string, body T) T {
	return New(lambda,
		Leaf("param", Atom(param)),
		Leaf("body", Extend(body, beta.Underspecified{Name: "param"})))
}

func call(f T, args ...T) T {
	return New(apply, Leaf("rator", f), Repeat("rand", args...))
}

func TestEqual(t *testing.T) {
	a := fn("x", call(VarRef("f"), VarRef("x")))
	b := fn("x", call(VarRef("f"), VarRef("x")))

	if !Equal(a, b) {
		t.Fatalf("%s != %s", a, b)
	}

	if Equal(a, fn("y", call(VarRef("f"), VarRef("y")))) {
		t.Fatal("different names should not be equal")
	}

	if Equal(call(VarRef("f")), call(VarRef("f"), VarRef("x"))) {
		t.Fatal("different repetition counts should not be equal")
	}

	if Equal(Atom("x"), VarRef("x")) {
		t.Fatal("an atom is not a variable reference")
	}

	if Equal(Quote(Atom("x"), true), Quote(Atom("x"), false)) {
		t.Fatal("quote polarity should matter")
	}

	if !Equal(Shape{Trivial{}, Atom("a")}, Shape{Trivial{}, Atom("a")}) {
		t.Fatal("equal shapes")
	}
}

func TestString(t *testing.T) {
	s := call(VarRef("plus"), VarRef("one"), Unquote(VarRef("e"))).String()
	if s != "{apply rator=plus [rand=one | rand=,[e],]}" {
		t.Fatalf("string = %s", s)
	}

	if q := Atom("a b").String(); q == "a b" {
		t.Fatal("names with spaces should be quoted")
	}

	if got := Quote(Trivial{}, true).String(); got != "'[()]'" {
		t.Fatalf("quote = %s", got)
	}
}

func TestRenameSkipsUnquoted(t *testing.T) {
	tree := fn("x", call(VarRef("x"), Unquote(VarRef("x"))))

	r := Rename(tree, map[string]string{"x": "x#1"})

	want := fn("x#1", call(VarRef("x#1"), Unquote(VarRef("x"))))
	if !Equal(r, want) {
		t.Fatalf("renamed = %s", r)
	}

	if !Equal(Rename(tree, nil), tree) {
		t.Fatal("an empty renaming should change nothing")
	}
}

func TestBinders(t *testing.T) {
	inner := fn("y", VarRef("y"))
	outer := fn("x", Unquote(fn("z", VarRef("z"))))
	tree := call(outer, inner)

	if got := AllBinders(tree); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Fatalf("binders = %v", got)
	}

	arm := New(match,
		Leaf("p", New(pvar, Leaf("name", Atom("v")))),
		Leaf("arm", Extend(VarRef("v"), beta.SameAs{Name: "p", Source: "p"})))

	if got := Binders(arm); !reflect.DeepEqual(got, []string{"v"}) {
		t.Fatalf("pattern binders = %v", got)
	}
}

func TestNamesAndHelpers(t *testing.T) {
	tree := fn("x", call(VarRef("f"), Unquote(VarRef("g"))))

	var got []string
	for n := range Names(tree) {
		got = append(got, n)
	}

	sort.Strings(got)

	if !reflect.DeepEqual(got, []string{"f", "g", "x"}) {
		t.Fatalf("names = %v", got)
	}

	if _, ok := Strip(Extend(Atom("a"), beta.Protected{Name: "a"})).(Atom); !ok {
		t.Fatal("Strip should remove ExtendEnv")
	}

	if Depth(QuoteLess{Body: Atom("a"), Depth: 2}) != 2 || Depth(Atom("a")) != 0 {
		t.Fatal("wrong depth")
	}

	if n, ok := Name(VarRef("v")); !ok || n != "v" {
		t.Fatal("Name of VarRef")
	}

	if _, ok := Name(Trivial{}); ok {
		t.Fatal("Trivial has no name")
	}

	if !Is(tree, lambda) || Is(tree, apply) {
		t.Fatal("Is checks the form")
	}

	if _, ok := Extend(Atom("a"), beta.Nothing{}).(Atom); !ok {
		t.Fatal("extending by nothing should not wrap")
	}
}
