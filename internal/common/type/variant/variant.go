// Released under an MIT license. See LICENSE.

// Package variant provides kith's tagged variant type.
package variant

import (
	"strings"

	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/interface/literal"
)

const name = "variant"

// T (variant) is a tag and its positional payload.
type T struct {
	Tag     string
	Payload []cell.I
}

type variant = T

// New creates a variant tagged tag carrying payload.
func New(tag string, payload ...cell.I) cell.I {
	return &variant{Tag: tag, Payload: payload}
}

// Equal returns true if c is a variant with the same tag and payload as v.
func (v *variant) Equal(c cell.I) bool {
	if !Is(c) {
		return false
	}

	o := To(c)
	if v.Tag != o.Tag || len(v.Payload) != len(o.Payload) {
		return false
	}

	for i, p := range v.Payload {
		if !p.Equal(o.Payload[i]) {
			return false
		}
	}

	return true
}

// Literal returns the tag of v followed by each payload value.
func (v *variant) Literal() string {
	var b strings.Builder

	b.WriteString("+[" + v.Tag)

	for _, p := range v.Payload {
		b.WriteString(" " + literal.String(p))
	}

	b.WriteString("]+")

	return b.String()
}

// Name returns the type name for the variant v.
func (v *variant) Name() string {
	return name
}

// Is returns true if c is a variant.
func Is(c cell.I) bool {
	_, ok := c.(*variant)

	return ok
}

// To returns a *variant if c is a variant; Otherwise it panics.
func To(c cell.I) *variant {
	if t, ok := c.(*variant); ok {
		return t
	}

	panic(c.Name() + " cannot be used in a variant context")
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t variant

	// The variant type is a cell.
	_ = cell.I(&t)

	// The variant type has a literal representation.
	_ = literal.I(&t)
}
