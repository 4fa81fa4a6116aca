// Released under an MIT license. See LICENSE.

package walk_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/michaelmacinnis/kith/internal/common/fault"
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
	"github.com/michaelmacinnis/kith/internal/common/struct/beta"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/engine/form"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
)

// A small arithmetic language over trees. Numbers are atoms.

var errMismatch = errors.New("mismatch")

type calc struct {
	walk.Defaults[ast.T]
	vars bool
}

type bind struct {
	walk.Defaults[ast.T]
}

func (calc) Name() string                  { return "calc" }
func (calc) Negative() bool                { return false }
func (calc) Negated() walk.Mode[ast.T]     { return bind{} }
func (c calc) Quoted(int) walk.Mode[ast.T] { return c }
func (calc) FromSyntax(t ast.T) ast.T      { return t }
func (calc) ToSyntax(t ast.T) ast.T        { return t }
func (calc) Mismatch(ast.T, ast.T) error   { return errMismatch }

func (calc) Rule(f ast.Form, _ *walk.Reses[ast.T]) walk.Rule[ast.T] {
	return form.To(f).Type.Pos()
}

func (calc) Atom(n string, _ *walk.Reses[ast.T]) (walk.Out[ast.T], error) {
	return walk.Out[ast.T]{Elt: ast.Atom(n)}, nil
}

func (c calc) Underspecified(n string, r *walk.Reses[ast.T]) ast.T {
	if !c.vars {
		return c.Defaults.Underspecified(n, r)
	}

	return ast.VarRef(n)
}

func (bind) Name() string                  { return "bind" }
func (bind) Negative() bool                { return true }
func (bind) Negated() walk.Mode[ast.T]     { return calc{} }
func (b bind) Quoted(int) walk.Mode[ast.T] { return b }
func (bind) FromSyntax(t ast.T) ast.T      { return t }
func (bind) ToSyntax(t ast.T) ast.T        { return t }
func (bind) Mismatch(ast.T, ast.T) error   { return errMismatch }

func (bind) Rule(f ast.Form, _ *walk.Reses[ast.T]) walk.Rule[ast.T] {
	return form.To(f).Type.Neg()
}

//nolint:gochecknoglobals
var ticks int

func number(t ast.T) int {
	a, _ := t.(ast.Atom)
	i, _ := strconv.Atoi(string(a))

	return i
}

func integer(i int) ast.T {
	return ast.Atom(strconv.Itoa(i))
}

func get(r *walk.Reses[ast.T], k string) (int, error) {
	v, err := r.Get(k)

	return number(v), err
}

func binary(op func(a, b int) int, first, second string) walk.Rule[ast.T] {
	return walk.Custom(func(r *walk.Reses[ast.T]) (ast.T, error) {
		a, err := get(r, first)
		if err != nil {
			return nil, err
		}

		b, err := get(r, second)
		if err != nil {
			return nil, err
		}

		return integer(op(a, b)), nil
	})
}

func body(r *walk.Reses[ast.T]) (ast.T, error) {
	return r.Get("body")
}

func plus(a, b int) int { return a + b }

//nolint:gochecknoglobals
var (
	addF = form.New("add", []string{"a", "b"},
		form.WithType(form.Positive(binary(plus, "a", "b"))))

	backF = form.New("back", []string{"a", "b"},
		form.WithType(form.Positive(walk.Custom(func(r *walk.Reses[ast.T]) (ast.T, error) {
			b, err := get(r, "b")
			if err != nil {
				return nil, err
			}

			a, err := get(r, "a")

			return integer(a - b), err
		}))))

	twiceF = form.New("twice", []string{"x"},
		form.WithType(form.Positive(binary(plus, "x", "x"))))

	tickF = form.New("tick", nil,
		form.WithType(form.Positive(walk.Custom(func(*walk.Reses[ast.T]) (ast.T, error) {
			ticks++

			return integer(1), nil
		}))))

	eachF = form.New("each", []string{"item", "shared"},
		form.WithType(form.Positive(walk.Custom(func(r *walk.Reses[ast.T]) (ast.T, error) {
			sum := 0

			for _, c := range r.March("item") {
				for _, k := range []string{"item", "shared"} {
					v, err := get(c, k)
					if err != nil {
						return nil, err
					}

					sum += v
				}
			}

			return integer(sum), nil
		}))))

	scopeF = form.New("scope", []string{"name", "val", "body"},
		form.WithType(form.Positive(walk.Custom(body))))

	guardF = form.New("guard", []string{"name", "inner", "val", "body"},
		form.WithType(form.Positive(walk.Custom(body))))

	polyF = form.New("poly", []string{"param", "body"},
		form.WithType(form.Positive(walk.Custom(body))))

	phaseF = form.New("phase", []string{"body"},
		form.WithType(form.Positive(walk.Custom(body))),
		form.WithPhase("body", 1))

	pairF = form.New("pair", []string{"l", "r"},
		form.WithType(form.Both(walk.LiteralLike[ast.T](), walk.LiteralLike[ast.T]())))

	pvF = form.New("pv", []string{"name"},
		form.WithType(form.Negative(walk.CustomNeg(func(r *walk.Reses[ast.T]) (assoc.T[ast.T], error) {
			return assoc.Single(r.Atom("name"), r.Context()), nil
		}))),
		form.WithExports(beta.Use("name")))

	caseF = form.New("case", []string{"p", "scrutinee", "arm"},
		form.WithType(form.Positive(walk.Custom(func(r *walk.Reses[ast.T]) (ast.T, error) {
			return r.Get("arm")
		}))))
)

func add(a, b ast.T) ast.T {
	return ast.New(addF, ast.Leaf("a", a), ast.Leaf("b", b))
}

func let(name string, val, b ast.T) ast.T {
	return ast.New(scopeF,
		ast.Leaf("name", ast.Atom(name)),
		ast.Leaf("val", val),
		ast.Leaf("body", ast.Extend(b, beta.Basic{Name: "name", Type: "val"})))
}

func seq(names []string, vals []ast.T, b ast.T) ast.T {
	reps := make([][]ast.Part, len(names))
	for i, n := range names {
		reps[i] = ast.Parts(ast.Leaf("name", ast.Atom(n)), ast.Leaf("val", vals[i]))
	}

	return ast.New(scopeF,
		ast.Group([]string{"name", "val"}, reps...),
		ast.Leaf("body", ast.Extend(b, beta.All(beta.Basic{Name: "name", Type: "val"}))))
}

func guard(name, inner string, val, b ast.T) ast.T {
	return ast.New(guardF,
		ast.Leaf("name", ast.Atom(name)),
		ast.Leaf("inner", ast.Atom(inner)),
		ast.Leaf("val", val),
		ast.Leaf("body", ast.Extend(b, beta.Seq(beta.Protected{Name: "name"}, beta.Basic{Name: "inner", Type: "val"}))))
}

func pair(l, r ast.T) ast.T {
	return ast.New(pairF, ast.Leaf("l", l), ast.Leaf("r", r))
}

func pv(n string) ast.T {
	return ast.New(pvF, ast.Leaf("name", ast.Atom(n)))
}

func match(p, scrutinee, arm ast.T) ast.T {
	return ast.New(caseF,
		ast.Leaf("p", p),
		ast.Leaf("scrutinee", scrutinee),
		ast.Leaf("arm", ast.Extend(arm, beta.SameAs{Name: "p", Source: "scrutinee"})))
}

func expectFault(t *testing.T, what string) {
	t.Helper()

	r := recover()
	if r == nil {
		t.Fatalf("expected fault: %s", what)
	}

	if _, ok := fault.From(r); !ok {
		t.Fatalf("expected fault, got %v", r)
	}
}

func run(t *testing.T, tree ast.T, env assoc.T[ast.T]) int {
	t.Helper()

	v, err := walk.Positive[ast.T](calc{}, tree, env, walk.Default())
	if err != nil {
		t.Fatalf("%s: %v", tree, err)
	}

	return number(v)
}

func TestCustomRule(t *testing.T) {
	if got := run(t, add(integer(2), add(integer(3), integer(4))), assoc.New[ast.T]()); got != 9 {
		t.Fatalf("got %d, expected 9", got)
	}
}

func TestLaterSiblingFirst(t *testing.T) {
	tree := ast.New(backF, ast.Leaf("a", integer(10)), ast.Leaf("b", integer(3)))

	if got := run(t, tree, assoc.New[ast.T]()); got != 7 {
		t.Fatalf("got %d, expected 7", got)
	}
}

func TestEachTermWalkedOnce(t *testing.T) {
	ticks = 0

	tree := ast.New(twiceF, ast.Leaf("x", ast.New(tickF)))

	if got := run(t, tree, assoc.New[ast.T]()); got != 2 {
		t.Fatalf("got %d, expected 2", got)
	}

	if ticks != 1 {
		t.Fatalf("sub-tree walked %d times", ticks)
	}
}

func TestMarchSharesResults(t *testing.T) {
	ticks = 0

	tree := ast.New(eachF,
		ast.Repeat("item", integer(1), integer(2), integer(3)),
		ast.Leaf("shared", ast.New(tickF)))

	if got := run(t, tree, assoc.New[ast.T]()); got != 9 {
		t.Fatalf("got %d, expected 9", got)
	}

	if ticks != 1 {
		t.Fatalf("shared sub-tree walked %d times", ticks)
	}
}

func TestBasicScope(t *testing.T) {
	env := assoc.Single("y", integer(100))

	if got := run(t, let("x", integer(5), add(ast.VarRef("x"), ast.VarRef("y"))), env); got != 105 {
		t.Fatalf("got %d, expected 105", got)
	}

	inner := let("x", integer(1), let("x", integer(2), ast.VarRef("x")))
	if got := run(t, inner, env); got != 2 {
		t.Fatalf("inner binding should win, got %d", got)
	}
}

func TestShadowAll(t *testing.T) {
	names := []string{"x", "y", "x"}
	vals := []ast.T{integer(1), integer(2), integer(3)}

	if got := run(t, seq(names, vals, add(ast.VarRef("x"), ast.VarRef("y"))), assoc.New[ast.T]()); got != 5 {
		t.Fatalf("later repetitions should shadow earlier ones, got %d", got)
	}
}

func TestProtected(t *testing.T) {
	env := assoc.Single("x", integer(1))

	if got := run(t, guard("x", "x", integer(9), ast.VarRef("x")), env); got != 1 {
		t.Fatalf("protected name was shadowed, got %d", got)
	}

	if got := run(t, guard("x", "y", integer(9), add(ast.VarRef("x"), ast.VarRef("y"))), env); got != 10 {
		t.Fatalf("got %d, expected 10", got)
	}
}

func TestUnderspecified(t *testing.T) {
	tree := ast.New(polyF,
		ast.Leaf("param", ast.Atom("T")),
		ast.Leaf("body", ast.Extend(ast.VarRef("T"), beta.Underspecified{Name: "param"})))

	v, err := walk.Positive[ast.T](calc{vars: true}, tree, assoc.New[ast.T](), nil)
	if err != nil {
		t.Fatal(err)
	}

	if !ast.Equal(v, ast.VarRef("T")) {
		t.Fatalf("got %s, expected T", v)
	}

	defer expectFault(t, "underspecified in a mode without placeholders")

	_, _ = walk.Positive[ast.T](calc{}, tree, assoc.New[ast.T](), nil)
}

func TestSameAs(t *testing.T) {
	empty := assoc.New[ast.T]()

	if got := run(t, match(pv("x"), integer(5), add(ast.VarRef("x"), ast.VarRef("x"))), empty); got != 10 {
		t.Fatalf("got %d, expected 10", got)
	}

	tree := match(pair(pv("a"), pv("b")), pair(integer(3), integer(4)), add(ast.VarRef("a"), ast.VarRef("b")))
	if got := run(t, tree, empty); got != 7 {
		t.Fatalf("got %d, expected 7", got)
	}

	_, err := walk.Positive[ast.T](calc{}, match(pair(pv("a"), pv("b")), integer(5), ast.VarRef("a")), empty, nil)
	if !errors.Is(err, errMismatch) {
		t.Fatalf("expected a mismatch, got %v", err)
	}
}

func TestNegative(t *testing.T) {
	env, err := walk.Negative[ast.T](bind{}, pair(pv("a"), pv("b")), assoc.New[ast.T](),
		pair(integer(1), integer(2)), nil)
	if err != nil {
		t.Fatal(err)
	}

	a, _ := env.Find("a")
	b, _ := env.Find("b")

	if number(a) != 1 || number(b) != 2 {
		t.Fatalf("bindings = %v, %v", a, b)
	}
}

func TestPhase(t *testing.T) {
	env := assoc.Single("y", integer(7))
	tree := let("y", integer(1), ast.New(phaseF, ast.Leaf("body", ast.VarRef("y"))))

	if got := run(t, tree, env); got != 7 {
		t.Fatalf("a shifted position should see the outer phase, got %d", got)
	}
}

func TestDepthLimit(t *testing.T) {
	o := walk.Default()
	o.Limit = 3

	tree := add(add(add(integer(1), integer(1)), integer(1)), integer(1))

	_, err := walk.Positive[ast.T](calc{}, tree, assoc.New[ast.T](), o)
	if !errors.Is(err, walk.ErrTooDeep) {
		t.Fatalf("expected ErrTooDeep, got %v", err)
	}

	v, err := walk.Positive[ast.T](calc{}, add(integer(1), integer(1)), assoc.New[ast.T](), o)
	if err != nil || number(v) != 2 {
		t.Fatalf("depth was not restored: %v %v", v, err)
	}
}

func TestMissingHalfFaults(t *testing.T) {
	defer expectFault(t, "positive walk of a pattern")

	_, _ = walk.Positive[ast.T](calc{}, pv("x"), assoc.New[ast.T](), nil)
}

func TestUnboundFaults(t *testing.T) {
	defer expectFault(t, "unbound variable")

	_, _ = walk.Positive[ast.T](calc{}, ast.VarRef("nope"), assoc.New[ast.T](), nil)
}

func TestMissingPositionFaults(t *testing.T) {
	defer expectFault(t, "missing position")

	_, _ = walk.Positive[ast.T](calc{}, ast.New(addF, ast.Leaf("a", integer(1))), assoc.New[ast.T](), nil)
}

func TestShapeOutsideQuotationFaults(t *testing.T) {
	defer expectFault(t, "shape")

	_, _ = walk.Positive[ast.T](calc{}, ast.Shape{integer(1)}, assoc.New[ast.T](), nil)
}

func TestOptions(t *testing.T) {
	o := walk.Default()

	a := o.Fresh("x")
	b := o.Fresh("x")

	if a == b || a == "x" {
		t.Fatalf("fresh names %s and %s", a, b)
	}

	func() {
		defer func() {
			_ = recover()
		}()

		o.Without(func() {
			if o.Freshen {
				t.Fatal("freshening should be off")
			}

			panic("unwind")
		})
	}()

	if !o.Freshen {
		t.Fatal("freshening was not restored after a panic")
	}
}
