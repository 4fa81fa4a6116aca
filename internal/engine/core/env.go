// Released under an MIT license. See LICENSE.

package core

import (
	"math/big"

	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/common/type/builtin"
	"github.com/michaelmacinnis/kith/internal/common/type/create"
	"github.com/michaelmacinnis/kith/internal/common/type/num"
	"github.com/michaelmacinnis/kith/internal/common/type/smuggled"
	"github.com/michaelmacinnis/kith/internal/common/validate"
	"github.com/michaelmacinnis/kith/internal/engine/ty"
)

//nolint:gochecknoglobals
var digits = []string{
	"zero", "one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "ten",
}

// Values returns the environment of built-in values. Type names evaluate
// to their type descriptor, carried as an opaque value.
func Values() assoc.T[cell.I] {
	env := assoc.New[cell.I]()

	env = env.Set("Int", smuggled.New(ty.Int()))
	env = env.Set("Nat", smuggled.New(ty.Nat()))
	env = env.Set("Bool", smuggled.New(ty.Bool()))

	for i, n := range digits {
		env = env.Set(n, create.Int(int64(i)))
	}

	env = env.Set("plus", arithmetic("plus", (*big.Int).Add))
	env = env.Set("minus", arithmetic("minus", (*big.Int).Sub))
	env = env.Set("times", arithmetic("times", (*big.Int).Mul))

	env = env.Set("equal?", builtin.New("equal?", func(args []cell.I) (cell.I, error) {
		ns := validate.Ints(args, 2)

		return create.Bool(ns[0].Int().Cmp(ns[1].Int()) == 0), nil
	}))

	env = env.Set("zero?", builtin.New("zero?", func(args []cell.I) (cell.I, error) {
		ns := validate.Ints(args, 1)

		return create.Bool(ns[0].Int().Sign() == 0), nil
	}))

	env = env.Set("true", create.Bool(true))
	env = env.Set("false", create.Bool(false))

	return env
}

// Types returns the environment of built-in types and the types of the
// built-in values.
func Types() assoc.T[ast.T] {
	i := ty.Int()
	b := ty.Bool()

	env := assoc.New[ast.T]()
	env = env.Set("Int", i)
	env = env.Set("Nat", ty.Nat())
	env = env.Set("Bool", b)

	for _, n := range digits {
		env = env.Set(n, i)
	}

	binary := ty.Fn([]ast.T{i, i}, i)
	env = env.Set("plus", binary)
	env = env.Set("minus", binary)
	env = env.Set("times", binary)

	env = env.Set("equal?", ty.Fn([]ast.T{i, i}, b))
	env = env.Set("zero?", ty.Fn([]ast.T{i}, b))
	env = env.Set("true", b)
	env = env.Set("false", b)

	return env
}

func arithmetic(name string, op func(z, x, y *big.Int) *big.Int) cell.I {
	return builtin.New(name, func(args []cell.I) (cell.I, error) {
		ns := validate.Ints(args, 2)

		return num.Big(op(&big.Int{}, ns[0].Int(), ns[1].Int())), nil
	})
}
