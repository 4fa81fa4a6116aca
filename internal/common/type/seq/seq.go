// Released under an MIT license. See LICENSE.

// Package seq provides kith's sequence type.
package seq

import (
	"strings"

	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/interface/literal"
)

const name = "sequence"

// T (seq) is an ordered sequence of values.
type T []cell.I

type seq = T

// New creates a seq holding vs.
func New(vs ...cell.I) cell.I {
	s := seq(vs)

	return &s
}

// Equal returns true if c is a seq with elements equal to s's.
func (s *seq) Equal(c cell.I) bool {
	if !Is(c) {
		return false
	}

	o := *To(c)
	if len(*s) != len(o) {
		return false
	}

	for i, v := range *s {
		if !v.Equal(o[i]) {
			return false
		}
	}

	return true
}

// Literal returns the display of each element of s, concatenated.
func (s *seq) Literal() string {
	var b strings.Builder

	for _, v := range *s {
		b.WriteString(literal.String(v))
	}

	return b.String()
}

// Name returns the type name for the seq s.
func (s *seq) Name() string {
	return name
}

// Is returns true if c is a seq.
func Is(c cell.I) bool {
	_, ok := c.(*seq)

	return ok
}

// To returns a *seq if c is a seq; Otherwise it panics.
func To(c cell.I) *seq {
	if t, ok := c.(*seq); ok {
		return t
	}

	panic(c.Name() + " cannot be used in a sequence context")
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t seq

	// The seq type is a cell.
	_ = cell.I(&t)

	// The seq type has a literal representation.
	_ = literal.I(&t)
}
