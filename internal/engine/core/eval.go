// Released under an MIT license. See LICENSE.

package core

import (
	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/common/type/closure"
	"github.com/michaelmacinnis/kith/internal/common/type/num"
	"github.com/michaelmacinnis/kith/internal/common/type/record"
	"github.com/michaelmacinnis/kith/internal/common/type/syntax"
	"github.com/michaelmacinnis/kith/internal/common/type/variant"
	"github.com/michaelmacinnis/kith/internal/engine/runtime"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
)

type valReses = walk.Reses[cell.I]

func applyEval(r *valReses) (cell.I, error) {
	f, err := r.Get("rator")
	if err != nil {
		return nil, err
	}

	args, err := r.GetRep("rand")
	if err != nil {
		return nil, err
	}

	return runtime.Apply(f, args, r)
}

func lambdaEval(r *valReses) (cell.I, error) {
	return closure.New(ast.Strip(r.Term("body")), r.Atoms("param"), r.Env()), nil
}

func matchEval(r *valReses) (cell.I, error) {
	v, err := r.Get("scrutinee")
	if err != nil {
		return nil, err
	}

	for _, arm := range r.March("p", "arm") {
		b, err := arm.WithContext(v).Match("p")
		if runtime.IsMismatch(err) {
			continue
		} else if err != nil {
			return nil, err
		}

		return arm.Extend(b).WalkTerm(ast.Strip(arm.Term("arm")))
	}

	return nil, &runtime.Error{Kind: runtime.NoArmMatched, Expected: r.At(), Got: v}
}

func enumExprEval(r *valReses) (cell.I, error) {
	cs, err := r.GetRep("component")
	if err != nil {
		return nil, err
	}

	return variant.New(r.Atom("name"), cs...), nil
}

func structExprEval(r *valReses) (cell.I, error) {
	vs, err := r.GetRep("component")
	if err != nil {
		return nil, err
	}

	f := assoc.New[cell.I]()
	for i, n := range r.Atoms("component_name") {
		f = f.Set(n, vs[i])
	}

	return record.New(f), nil
}

func fixEval(r *valReses) (cell.I, error) {
	f, err := r.Get("body")
	if err != nil {
		return nil, err
	}

	return runtime.Fix(f, r)
}

func bodyEval(r *valReses) (cell.I, error) {
	return r.Get("body")
}

func forallExprEval(r *valReses) (cell.I, error) {
	return r.WalkTerm(ast.Strip(r.Term("body")))
}

func litEval(r *valReses) (cell.I, error) {
	return num.New(r.Atom("value")), nil
}

// unquoteQuasi splices the value of the escaped expression when the escape
// reaches the evaluation phase. Deeper escapes are rebuilt as syntax.
func unquoteQuasi(r *valReses) (cell.I, error) {
	v, err := r.Get("body")
	if err != nil {
		return nil, err
	}

	if r.Depth() == 1 {
		return v, nil
	}

	return syntax.New(ast.New(r.Form(),
		ast.Leaf("nt", r.Term("nt")),
		ast.Leaf("body", syntax.Tree(v)),
	)), nil
}

func patVarEval(r *valReses) (assoc.T[cell.I], error) {
	return assoc.Single(r.Atom("name"), r.Context()), nil
}

func patEnumEval(r *valReses) (assoc.T[cell.I], error) {
	v := r.Context()
	reps := r.March("component")

	if !variant.Is(v) {
		return assoc.T[cell.I]{}, r.Mode().Mismatch(r.At(), v)
	}

	e := variant.To(v)
	if e.Tag != r.Atom("name") || len(e.Payload) != len(reps) {
		return assoc.T[cell.I]{}, r.Mode().Mismatch(r.At(), v)
	}

	env := assoc.New[cell.I]()

	for i, rep := range reps {
		b, err := rep.WithContext(e.Payload[i]).Match("component")
		if err != nil {
			return env, err
		}

		env = env.Merge(b)
	}

	return env, nil
}

func patStructEval(r *valReses) (assoc.T[cell.I], error) {
	v := r.Context()
	if !record.Is(v) {
		return assoc.T[cell.I]{}, r.Mode().Mismatch(r.At(), v)
	}

	s := record.To(v)
	env := assoc.New[cell.I]()

	for _, rep := range r.March("component_name") {
		f, ok := s.Field(rep.Atom("component_name"))
		if !ok {
			return env, r.Mode().Mismatch(r.At(), v)
		}

		b, err := rep.WithContext(f).Match("component")
		if err != nil {
			return env, err
		}

		env = env.Merge(b)
	}

	return env, nil
}

func matchBody(r *valReses) (assoc.T[cell.I], error) {
	return r.Match("body")
}
