// Released under an MIT license. See LICENSE.

package ty

import (
	"strings"

	"github.com/michaelmacinnis/kith/internal/common/type/ast"
)

// String returns t in the surface syntax for types.
func String(t ast.T) string {
	switch t := t.(type) {
	case ast.VarRef:
		return string(t)
	case ast.Atom:
		return string(t)
	case ast.Node:
		return node(t)
	}

	return t.String()
}

func node(n ast.Node) string {
	switch n.Form {
	case IntForm, NatForm:
		return n.Form.Name()
	case FnForm:
		ps, ret, _ := FnParts(n)

		return list("->", append(strs(ps), String(ret))...)
	case ForallForm:
		ns, body, _ := ForallParts(n)

		return list("forall", "("+strings.Join(ns, " ")+")", String(body))
	case StructForm:
		names, ts, _ := StructFields(n)

		fs := make([]string, len(names))
		for i, f := range names {
			fs[i] = "(" + f + " " + String(ts[i]) + ")"
		}

		return list("struct", fs...)
	case EnumForm:
		arms, _ := EnumArms(n)

		as := make([]string, len(arms))
		for i, a := range arms {
			as[i] = list(a.Name, strs(a.Components)...)
		}

		return list("enum", as...)
	case MuForm:
		p, body, _ := MuParts(n)

		return list("mu", p, String(body))
	case SyntaxForm:
		nt, inner, _ := SyntaxParts(n)

		return list(nt, String(inner))
	case ApplyForm:
		rator, _ := n.Body.Get("type_rator")

		return list(String(rator), strs(reps(n.Body, "arg"))...)
	}

	return n.String()
}

func list(head string, elts ...string) string {
	return "(" + strings.Join(append([]string{head}, elts...), " ") + ")"
}

func strs(ts []ast.T) []string {
	ss := make([]string, len(ts))
	for i, t := range ts {
		ss[i] = String(t)
	}

	return ss
}
