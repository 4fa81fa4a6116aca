// Released under an MIT license. See LICENSE.

// Package num provides kith's arbitrary-precision integer type.
package num

import (
	"math/big"

	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/interface/literal"
)

const name = "integer"

// T (num) wraps Go's big.Int type.
type T big.Int

type num = T

// New creates a new num cell from a string of decimal digits.
func New(s string) cell.I {
	v := &big.Int{}

	if _, ok := v.SetString(s, 10); !ok {
		panic("'" + s + "' is not a valid integer")
	}

	return Big(v)
}

// Int creates a num from the integer i.
func Int(i int64) cell.I {
	return Big(big.NewInt(i))
}

// Big wraps the *big.Int i as a num.
func Big(i *big.Int) cell.I {
	return (*num)(i)
}

// Equal returns true if c is the same integer as the num n.
func (n *num) Equal(c cell.I) bool {
	return Is(c) && n.Int().Cmp(To(c).Int()) == 0
}

// Int returns the value of the num n as a *big.Int.
func (n *num) Int() *big.Int {
	return (*big.Int)(n)
}

// Literal returns the decimal representation of the num n.
func (n *num) Literal() string {
	return n.Int().String()
}

// Name returns the type name for the num n.
func (n *num) Name() string {
	return name
}

// String returns the text of the num n.
func (n *num) String() string {
	return n.Literal()
}

// Functions specific to num.

// Is returns true if c is a num.
func Is(c cell.I) bool {
	_, ok := c.(*num)

	return ok
}

// To returns a *num if c is a num; Otherwise it panics.
func To(c cell.I) *num {
	if t, ok := c.(*num); ok {
		return t
	}

	panic(c.Name() + " cannot be used in an integer context")
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t num

	// The num type is a cell.
	_ = cell.I(&t)

	// The num type has a literal representation.
	_ = literal.I(&t)
}
