// Released under an MIT license. See LICENSE.

package ty

import (
	"errors"
	"strings"

	"github.com/michaelmacinnis/kith/internal/common/struct/mbe"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
)

// Unifier checks subtyping, solving the unification variables introduced
// by instantiating quantified types as it goes.
type Unifier struct {
	opts  *walk.Options
	solve map[string]ast.T
}

// NewUnifier returns a Unifier that draws fresh names from o.
func NewUnifier(o *walk.Options) *Unifier {
	return &Unifier{opts: o, solve: map[string]ast.T{}}
}

// Instantiate replaces the quantified names of a forall type with fresh
// unification variables. Other types are returned unchanged.
func (u *Unifier) Instantiate(t ast.T) ast.T {
	for {
		ns, body, ok := ForallParts(u.shallow(t))
		if !ok {
			return t
		}

		m := map[string]ast.T{}
		for _, n := range ns {
			m[n] = u.fresh(n)
		}

		t = Subst(body, m)
	}
}

// Resolve returns t with every solved unification variable replaced.
// Solutions never mention their own variable, so this terminates.
func (u *Unifier) Resolve(t ast.T) ast.T {
	switch t := u.shallow(t).(type) {
	case ast.VarRef:
		return t
	case ast.Node:
		t.Body = mbe.Map(t.Body, u.Resolve)

		return t
	default:
		return t
	}
}

// Subtype returns an error unless a value of type sub can be used where a
// value of type sup is expected.
func (u *Unifier) Subtype(sub, sup ast.T) error {
	sub, sup = u.shallow(sub), u.shallow(sup)

	if isUnification(sup) {
		if ast.Equal(sub, sup) {
			return nil
		}

		return u.bind(sup.(ast.VarRef), sub)
	}

	if isUnification(sub) {
		return u.bind(sub.(ast.VarRef), sup)
	}

	if ns, body, ok := ForallParts(sup); ok {
		m := map[string]ast.T{}
		for _, n := range ns {
			m[n] = ast.VarRef(u.opts.Fresh(n))
		}

		return u.Subtype(sub, Subst(body, m))
	}

	if _, _, ok := ForallParts(sub); ok {
		return u.Subtype(u.Instantiate(sub), sup)
	}

	if err := u.structural(sub, sup); err != nil {
		var e *Error
		if errors.As(err, &e) && e.Got != nil {
			return err
		}

		return &Error{Kind: Mismatch, Got: u.Resolve(sub), Expected: u.Resolve(sup), Detail: detail(err)}
	}

	return nil
}

func (u *Unifier) structural(sub, sup ast.T) error {
	a, aok := sub.(ast.Node)
	b, bok := sup.(ast.Node)

	if !aok || !bok {
		if ast.Equal(sub, sup) {
			return nil
		}

		return &Error{Kind: Mismatch}
	}

	if a.Form != b.Form {
		return &Error{Kind: Mismatch}
	}

	switch a.Form {
	case FnForm:
		return u.fn(sub, sup)
	case StructForm:
		return u.structs(sub, sup)
	case EnumForm:
		return u.enums(sub, sup)
	case MuForm:
		an, abody, _ := MuParts(sub)
		bn, bbody, _ := MuParts(sup)

		return u.Subtype(abody, Subst(bbody, map[string]ast.T{bn: ast.VarRef(an)}))
	case SyntaxForm:
		ant, at, _ := SyntaxParts(sub)
		bnt, bt, _ := SyntaxParts(sup)

		if ant != bnt {
			return &Error{Kind: Mismatch, Detail: "(" + ant + " is not " + bnt + ")"}
		}

		return u.Subtype(at, bt)
	}

	if ast.Equal(sub, sup) {
		return nil
	}

	return &Error{Kind: Mismatch}
}

func (u *Unifier) fn(sub, sup ast.T) error {
	aps, aret, _ := FnParts(sub)
	bps, bret, _ := FnParts(sup)

	if len(aps) != len(bps) {
		return &Error{Kind: ArityMismatch}
	}

	for i := range aps {
		if err := u.Subtype(bps[i], aps[i]); err != nil {
			return err
		}
	}

	return u.Subtype(aret, bret)
}

func (u *Unifier) structs(sub, sup ast.T) error {
	ans, ats, _ := StructFields(sub)
	bns, bts, _ := StructFields(sup)

	have := map[string]ast.T{}
	for i, n := range ans {
		have[n] = ats[i]
	}

	for i, n := range bns {
		t, ok := have[n]
		if !ok {
			return &Error{Kind: FieldMissing, Detail: n}
		}

		if err := u.Subtype(t, bts[i]); err != nil {
			return err
		}
	}

	return nil
}

func (u *Unifier) enums(sub, sup ast.T) error {
	arms, _ := EnumArms(sub)

	for _, a := range arms {
		b, ok := FindArm(sup, a.Name)
		if !ok {
			return &Error{Kind: NoSuchArm, Detail: a.Name}
		}

		if len(a.Components) != len(b.Components) {
			return &Error{Kind: ArityMismatch, Detail: a.Name}
		}

		for i, c := range a.Components {
			if err := u.Subtype(c, b.Components[i]); err != nil {
				return err
			}
		}
	}

	return nil
}

func (u *Unifier) bind(v ast.VarRef, t ast.T) error {
	if occurs(string(v), u.Resolve(t)) {
		return &Error{Kind: Mismatch, Got: t, Expected: v, Detail: "(infinite type)"}
	}

	u.solve[string(v)] = t

	return nil
}

func (u *Unifier) fresh(n string) ast.T {
	return ast.VarRef(u.opts.Fresh("?" + n))
}

func (u *Unifier) shallow(t ast.T) ast.T {
	for {
		v, ok := t.(ast.VarRef)
		if !ok {
			return t
		}

		s, ok := u.solve[string(v)]
		if !ok {
			return t
		}

		t = s
	}
}

func detail(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	if e.Kind != Mismatch {
		return "(" + kinds[e.Kind] + " " + e.Detail + ")"
	}

	return e.Detail
}

func occurs(n string, t ast.T) bool {
	switch t := t.(type) {
	case ast.VarRef:
		return string(t) == n
	case ast.Node:
		found := false

		t.Body.Each(func(_ string, s ast.T) {
			found = found || occurs(n, s)
		})

		return found
	}

	return false
}

func isUnification(t ast.T) bool {
	v, ok := t.(ast.VarRef)

	return ok && strings.HasPrefix(string(v), "?")
}

// Subtype returns an error unless sub is a subtype of sup.
func Subtype(sub, sup ast.T, o *walk.Options) error {
	return NewUnifier(o).Subtype(sub, sup)
}
