// Released under an MIT license. See LICENSE.

package ty

import (
	"github.com/michaelmacinnis/kith/internal/common/struct/mbe"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/engine/form"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
)

// Type forms. Walking a type tree in SynthTy resolves the names in it and
// yields the same tree with forms from this list and type variables only.
//
//nolint:gochecknoglobals
var (
	IntForm = form.New("Int", nil,
		form.WithType(form.Positive(walk.LiteralLike[ast.T]())),
		form.WithGrammar("Int"))

	NatForm = form.New("Nat", nil,
		form.WithType(form.Positive(walk.LiteralLike[ast.T]())),
		form.WithGrammar("Nat"))

	FnForm = form.New("fn", []string{"param", "ret"},
		form.WithType(form.Positive(walk.LiteralLike[ast.T]())),
		form.WithGrammar("(-> T ... R)"))

	ForallForm = form.New("forall", []string{"param", "body"},
		form.WithType(form.Positive(walk.LiteralLike[ast.T]())),
		form.WithGrammar("(forall (X ...) T)"))

	StructForm = form.New("struct", []string{"component_name", "component"},
		form.WithType(form.Positive(walk.LiteralLike[ast.T]())),
		form.WithGrammar("(struct (f T) ...)"))

	EnumForm = form.New("enum", []string{"name", "component"},
		form.WithType(form.Positive(walk.LiteralLike[ast.T]())),
		form.WithGrammar("(enum (Tag T ...) ...)"))

	MuForm = form.New("mu", []string{"param", "body"},
		form.WithType(form.Positive(walk.LiteralLike[ast.T]())),
		form.WithGrammar("(mu X T)"))

	SyntaxForm = form.New("syntax", []string{"nt", "ty"},
		form.WithType(form.Positive(walk.LiteralLike[ast.T]())),
		form.WithGrammar("(Expr T)"))

	ApplyForm = form.New("type_apply", []string{"type_rator", "arg"},
		form.WithType(form.Positive(walk.Custom(typeApply))),
		form.WithGrammar("(Name T ...)"))
)

// Arm is one alternative of an enum type.
type Arm struct {
	Name       string
	Components []ast.T
}

// Int returns the integer type.
func Int() ast.T {
	return ast.New(IntForm)
}

// Nat returns the type of syntax that has no type of its own.
func Nat() ast.T {
	return ast.New(NatForm)
}

// Fn returns the type of functions from params to ret.
func Fn(params []ast.T, ret ast.T) ast.T {
	return ast.New(FnForm, ast.Repeat("param", params...), ast.Leaf("ret", ret))
}

// Forall returns body quantified over names.
func Forall(names []string, body ast.T) ast.T {
	return ast.New(ForallForm, ast.Repeat("param", atoms(names)...), ast.Leaf("body", body))
}

// Struct returns the struct type with the fields names, of types ts.
func Struct(names []string, ts []ast.T) ast.T {
	reps := make([][]ast.Part, len(names))
	for i, n := range names {
		reps[i] = ast.Parts(ast.Leaf("component_name", ast.Atom(n)), ast.Leaf("component", ts[i]))
	}

	return ast.New(StructForm, ast.Group([]string{"component_name", "component"}, reps...))
}

// Enum returns the enum type with the given arms.
func Enum(arms ...Arm) ast.T {
	reps := make([][]ast.Part, len(arms))
	for i, a := range arms {
		reps[i] = ast.Parts(ast.Leaf("name", ast.Atom(a.Name)), ast.Repeat("component", a.Components...))
	}

	return ast.New(EnumForm, ast.Group([]string{"name", "component"}, reps...))
}

// Mu returns the recursive type binding name in body.
func Mu(name string, body ast.T) ast.T {
	return ast.New(MuForm, ast.Leaf("param", ast.Atom(name)), ast.Leaf("body", body))
}

// Syntax returns the type of syntax of the nonterminal nt whose meaning has
// type t.
func Syntax(nt string, t ast.T) ast.T {
	return ast.New(SyntaxForm, ast.Leaf("nt", ast.Atom(nt)), ast.Leaf("ty", t))
}

// Bool returns the type of True and False.
func Bool() ast.T {
	return Enum(Arm{Name: "True"}, Arm{Name: "False"})
}

// FnParts returns the parameters and result of a function type.
func FnParts(t ast.T) ([]ast.T, ast.T, bool) {
	n, ok := t.(ast.Node)
	if !ok || n.Form != FnForm {
		return nil, nil, false
	}

	ret, _ := n.Body.Get("ret")

	return reps(n.Body, "param"), ret, true
}

// ForallParts returns the quantified names and body of a forall type.
func ForallParts(t ast.T) ([]string, ast.T, bool) {
	return binder(t, ForallForm)
}

// MuParts returns the bound name and body of a mu type.
func MuParts(t ast.T) (string, ast.T, bool) {
	ns, body, ok := binder(t, MuForm)
	if !ok || len(ns) != 1 {
		return "", nil, false
	}

	return ns[0], body, true
}

// StructFields returns the field names and types of a struct type.
func StructFields(t ast.T) ([]string, []ast.T, bool) {
	n, ok := t.(ast.Node)
	if !ok || n.Form != StructForm {
		return nil, nil, false
	}

	var (
		names []string
		ts    []ast.T
	)

	for _, e := range n.Body.March("component_name") {
		names = append(names, atom(e, "component_name"))

		c, _ := e.Get("component")
		ts = append(ts, c)
	}

	return names, ts, true
}

// EnumArms returns the arms of an enum type.
func EnumArms(t ast.T) ([]Arm, bool) {
	n, ok := t.(ast.Node)
	if !ok || n.Form != EnumForm {
		return nil, false
	}

	var arms []Arm

	for _, e := range n.Body.March("name") {
		arms = append(arms, Arm{Name: atom(e, "name"), Components: reps(e, "component")})
	}

	return arms, true
}

// FindArm returns the arm of an enum type named tag.
func FindArm(t ast.T, tag string) (Arm, bool) {
	arms, _ := EnumArms(t)
	for _, a := range arms {
		if a.Name == tag {
			return a, true
		}
	}

	return Arm{}, false
}

// SyntaxParts returns the nonterminal and meaning type of a syntax type.
func SyntaxParts(t ast.T) (string, ast.T, bool) {
	n, ok := t.(ast.Node)
	if !ok || n.Form != SyntaxForm {
		return "", nil, false
	}

	inner, _ := n.Body.Get("ty")

	return atom(n.Body, "nt"), inner, true
}

// Unfold returns the body of the mu type t with t substituted for its
// bound name.
func Unfold(t ast.T) (ast.T, bool) {
	name, body, ok := MuParts(t)
	if !ok {
		return nil, false
	}

	return Subst(body, map[string]ast.T{name: t}), true
}

// Subst replaces the type variables named in m. Names rebound by an inner
// forall or mu are left alone there.
func Subst(t ast.T, m map[string]ast.T) ast.T {
	if len(m) == 0 {
		return t
	}

	switch t := t.(type) {
	case ast.VarRef:
		if r, ok := m[string(t)]; ok {
			return r
		}
	case ast.Node:
		if t.Form == ForallForm || t.Form == MuForm {
			ns, _, _ := binder(t, t.Form)

			inner := map[string]ast.T{}
			for k, v := range m {
				inner[k] = v
			}

			for _, n := range ns {
				delete(inner, n)
			}

			m = inner
		}

		t.Body = mbe.Map(t.Body, func(s ast.T) ast.T { return Subst(s, m) })

		return t
	}

	return t
}

// Instantiate applies the forall type t to args.
func Instantiate(t ast.T, args []ast.T) (ast.T, bool) {
	ns, body, ok := ForallParts(t)
	if !ok || len(ns) != len(args) {
		return nil, false
	}

	m := map[string]ast.T{}
	for i, n := range ns {
		m[n] = args[i]
	}

	return Subst(body, m), true
}

func typeApply(r *walk.Reses[ast.T]) (ast.T, error) {
	rator, err := r.Get("type_rator")
	if err != nil {
		return nil, err
	}

	args, err := r.GetRep("arg")
	if err != nil {
		return nil, err
	}

	if t, ok := Instantiate(rator, args); ok {
		return t, nil
	}

	if _, ok := rator.(ast.VarRef); ok {
		return ast.New(r.Form(), ast.Leaf("type_rator", rator), ast.Repeat("arg", args...)), nil
	}

	return nil, &Error{Kind: NotForall, Got: rator, At: r.At()}
}

func atom(m *mbe.T[ast.T], k string) string {
	t, _ := m.Get(k)
	n, _ := ast.Name(ast.Strip(t))

	return n
}

func atoms(ns []string) []ast.T {
	ts := make([]ast.T, len(ns))
	for i, n := range ns {
		ts[i] = ast.Atom(n)
	}

	return ts
}

func binder(t ast.T, f ast.Form) ([]string, ast.T, bool) {
	n, ok := t.(ast.Node)
	if !ok || n.Form != f {
		return nil, nil, false
	}

	var ns []string

	for _, p := range reps(n.Body, "param") {
		s, _ := ast.Name(p)
		ns = append(ns, s)
	}

	body, _ := n.Body.Get("body")

	return ns, ast.Strip(body), true
}

func reps(m *mbe.T[ast.T], k string) []ast.T {
	if t, ok := m.Get(k); ok {
		return []ast.T{t}
	}

	var ts []ast.T

	for _, e := range m.March(k) {
		t, _ := e.Get(k)
		ts = append(ts, t)
	}

	return ts
}
