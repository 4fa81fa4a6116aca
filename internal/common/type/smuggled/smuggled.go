// Released under an MIT license. See LICENSE.

// Package smuggled lets host values with no surface syntax travel as kith
// values.
package smuggled

import (
	"fmt"
	"reflect"

	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/interface/literal"
)

const name = "smuggled"

// T (smuggled) holds an arbitrary host value.
type T struct {
	Payload interface{}
}

type smuggled = T

// New wraps the host value p.
func New(p interface{}) cell.I {
	return &smuggled{Payload: p}
}

// Equal is best-effort: two smuggled values are equal if their payloads
// are deeply equal.
func (s *smuggled) Equal(c cell.I) bool {
	return Is(c) && reflect.DeepEqual(s.Payload, To(c).Payload)
}

// Literal returns a Go representation of the payload.
func (s *smuggled) Literal() string {
	return fmt.Sprintf("[smuggled %v]", s.Payload)
}

// Name returns the type name for the smuggled value s.
func (s *smuggled) Name() string {
	return name
}

// Is returns true if c is a smuggled value.
func Is(c cell.I) bool {
	_, ok := c.(*smuggled)

	return ok
}

// To returns a *smuggled if c is a smuggled value; Otherwise it panics.
func To(c cell.I) *smuggled {
	if t, ok := c.(*smuggled); ok {
		return t
	}

	panic(c.Name() + " cannot be used in a smuggled context")
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t smuggled

	// The smuggled type is a cell.
	_ = cell.I(&t)

	// The smuggled type has a literal representation.
	_ = literal.I(&t)
}
