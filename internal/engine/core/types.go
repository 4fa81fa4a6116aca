// Released under an MIT license. See LICENSE.

package core

import (
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/engine/ty"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
)

type tyReses = walk.Reses[ast.T]

func applyType(r *tyReses) (ast.T, error) {
	f, err := r.Get("rator")
	if err != nil {
		return nil, err
	}

	args, err := r.GetRep("rand")
	if err != nil {
		return nil, err
	}

	u := ty.NewUnifier(r.Options())

	ps, ret, ok := ty.FnParts(u.Instantiate(f))
	if !ok {
		return nil, &ty.Error{Kind: ty.NotAFunction, Got: f, At: r.At()}
	}

	if len(ps) != len(args) {
		return nil, &ty.Error{Kind: ty.ArityMismatch, Got: f, At: r.At()}
	}

	for i, a := range args {
		if err := u.Subtype(a, ps[i]); err != nil {
			return nil, ty.Locate(err, r.At())
		}
	}

	return u.Resolve(ret), nil
}

func lambdaType(r *tyReses) (ast.T, error) {
	ps, err := r.GetRep("p_t")
	if err != nil {
		return nil, err
	}

	ret, err := r.Get("body")
	if err != nil {
		return nil, err
	}

	return ty.Fn(ps, ret), nil
}

func matchType(r *tyReses) (ast.T, error) {
	if _, err := r.Get("scrutinee"); err != nil {
		return nil, err
	}

	arms := r.March("p", "arm")
	if len(arms) == 0 {
		return nil, &ty.Error{Kind: ty.NoArms, At: r.At()}
	}

	u := ty.NewUnifier(r.Options())

	var res ast.T

	for _, arm := range arms {
		t, err := arm.Get("arm")
		if err != nil {
			return nil, err
		}

		if res == nil {
			res = t
		} else if err := u.Subtype(t, res); err != nil {
			return nil, ty.Locate(err, r.At())
		}
	}

	return u.Resolve(res), nil
}

func enumExprType(r *tyReses) (ast.T, error) {
	t, err := r.Get("t")
	if err != nil {
		return nil, err
	}

	if unfolded, ok := ty.Unfold(t); ok {
		t = unfolded
	}

	if _, ok := ty.EnumArms(t); !ok {
		return nil, &ty.Error{Kind: ty.NotAnEnum, Got: t, At: r.At()}
	}

	name := r.Atom("name")

	arm, ok := ty.FindArm(t, name)
	if !ok {
		return nil, &ty.Error{Kind: ty.NoSuchArm, Detail: name, Got: t, At: r.At()}
	}

	cs, err := r.GetRep("component")
	if err != nil {
		return nil, err
	}

	if len(cs) != len(arm.Components) {
		return nil, &ty.Error{Kind: ty.ArityMismatch, Detail: name, At: r.At()}
	}

	u := ty.NewUnifier(r.Options())

	for i, c := range cs {
		if err := u.Subtype(c, arm.Components[i]); err != nil {
			return nil, ty.Locate(err, r.At())
		}
	}

	return t, nil
}

func structExprType(r *tyReses) (ast.T, error) {
	ts, err := r.GetRep("component")
	if err != nil {
		return nil, err
	}

	return ty.Struct(r.Atoms("component_name"), ts), nil
}

func fixType(r *tyReses) (ast.T, error) {
	t, err := r.Get("body")
	if err != nil {
		return nil, err
	}

	ps, ret, ok := ty.FnParts(t)
	if !ok {
		return nil, &ty.Error{Kind: ty.NotAFunction, Got: t, At: r.At()}
	}

	if len(ps) != 1 {
		return nil, &ty.Error{Kind: ty.ArityMismatch, Got: t, At: r.At()}
	}

	u := ty.NewUnifier(r.Options())
	if err := u.Subtype(ret, ps[0]); err != nil {
		return nil, ty.Locate(err, r.At())
	}

	return u.Resolve(ps[0]), nil
}

func foldType(r *tyReses) (ast.T, error) {
	t, err := r.Get("t")
	if err != nil {
		return nil, err
	}

	unfolded, ok := ty.Unfold(t)
	if !ok {
		return nil, &ty.Error{Kind: ty.NotMu, Got: t, At: r.At()}
	}

	b, err := r.Get("body")
	if err != nil {
		return nil, err
	}

	if err := ty.Subtype(b, unfolded, r.Options()); err != nil {
		return nil, ty.Locate(err, r.At())
	}

	return t, nil
}

func unfoldType(r *tyReses) (ast.T, error) {
	t, err := r.Get("body")
	if err != nil {
		return nil, err
	}

	unfolded, ok := ty.Unfold(t)
	if !ok {
		return nil, &ty.Error{Kind: ty.NotMu, Got: t, At: r.At()}
	}

	return unfolded, nil
}

func forallExprType(r *tyReses) (ast.T, error) {
	t, err := r.Get("body")
	if err != nil {
		return nil, err
	}

	return ty.Forall(r.Atoms("param"), t), nil
}

func litType(*tyReses) (ast.T, error) {
	return ty.Int(), nil
}

func quoteType(r *tyReses) (ast.T, error) {
	nt := r.Atom("nt")
	if nt != Expr {
		return ty.Syntax(nt, ty.Nat()), nil
	}

	t, err := r.Get("body")
	if err != nil {
		return nil, err
	}

	return ty.Syntax(nt, t), nil
}

func unquoteType(r *tyReses) (ast.T, error) {
	t, err := r.Get("body")
	if err != nil {
		return nil, err
	}

	nt, inner, ok := ty.SyntaxParts(t)
	if !ok || nt != r.Atom("nt") {
		return nil, &ty.Error{Kind: ty.NotSyntax, Got: t, Expected: ty.Syntax(r.Atom("nt"), ty.Nat()), At: r.At()}
	}

	return inner, nil
}

func patVarType(r *tyReses) (assoc.T[ast.T], error) {
	return assoc.Single(r.Atom("name"), r.Context()), nil
}

func patEnumType(r *tyReses) (assoc.T[ast.T], error) {
	ctx := r.Context()
	if _, ok := ty.EnumArms(ctx); !ok {
		return assoc.T[ast.T]{}, &ty.Error{Kind: ty.NotAnEnum, Got: ctx, At: r.At()}
	}

	name := r.Atom("name")

	arm, ok := ty.FindArm(ctx, name)
	if !ok {
		return assoc.T[ast.T]{}, &ty.Error{Kind: ty.NoSuchArm, Detail: name, Got: ctx, At: r.At()}
	}

	reps := r.March("component")
	if len(reps) != len(arm.Components) {
		return assoc.T[ast.T]{}, &ty.Error{Kind: ty.ArityMismatch, Detail: name, At: r.At()}
	}

	env := assoc.New[ast.T]()

	for i, rep := range reps {
		b, err := rep.WithContext(arm.Components[i]).Match("component")
		if err != nil {
			return env, err
		}

		env = env.Merge(b)
	}

	return env, nil
}

func patStructType(r *tyReses) (assoc.T[ast.T], error) {
	ctx := r.Context()

	names, ts, ok := ty.StructFields(ctx)
	if !ok {
		return assoc.T[ast.T]{}, &ty.Error{Kind: ty.NotAStruct, Got: ctx, At: r.At()}
	}

	fields := map[string]ast.T{}
	for i, n := range names {
		fields[n] = ts[i]
	}

	env := assoc.New[ast.T]()

	for _, rep := range r.March("component_name") {
		n := rep.Atom("component_name")

		t, ok := fields[n]
		if !ok {
			return env, &ty.Error{Kind: ty.FieldMissing, Detail: n, Got: ctx, At: r.At()}
		}

		b, err := rep.WithContext(t).Match("component")
		if err != nil {
			return env, err
		}

		env = env.Merge(b)
	}

	return env, nil
}

func patQuoteType(r *tyReses) (assoc.T[ast.T], error) {
	ctx := r.Context()

	nt, _, ok := ty.SyntaxParts(ctx)
	if !ok || nt != r.Atom("nt") {
		return assoc.T[ast.T]{}, &ty.Error{
			Kind: ty.NotSyntax, Got: ctx, Expected: ty.Syntax(r.Atom("nt"), ty.Nat()), At: r.At(),
		}
	}

	return r.Match("body")
}

func unquotePatType(r *tyReses) (assoc.T[ast.T], error) {
	t, err := r.Get("ty")
	if err != nil {
		return assoc.T[ast.T]{}, err
	}

	return r.WithContext(ty.Syntax(r.Atom("nt"), t)).Match("body")
}
