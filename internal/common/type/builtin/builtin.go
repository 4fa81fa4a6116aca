// Released under an MIT license. See LICENSE.

// Package builtin provides kith's built-in function type.
package builtin

import (
	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/interface/literal"
)

const name = "built-in function"

// Func is the Go function behind a builtin.
type Func func(args []cell.I) (cell.I, error)

// T (builtin) wraps a Go function. Built-ins are compared by identity.
type T struct {
	Fn    Func
	label string
}

type builtin = T

// New creates a builtin called label that runs fn.
func New(label string, fn Func) cell.I {
	return &builtin{Fn: fn, label: label}
}

// Call runs b with args.
func (b *builtin) Call(args []cell.I) (cell.I, error) {
	return b.Fn(args)
}

// Equal returns true if c is the same builtin as b.
func (b *builtin) Equal(c cell.I) bool {
	return Is(c) && b == To(c)
}

// Label returns the name b was created with.
func (b *builtin) Label() string {
	return b.label
}

// Literal returns an opaque placeholder for the builtin b.
func (b *builtin) Literal() string {
	return "[built-in function]"
}

// Name returns the type name for the builtin b.
func (b *builtin) Name() string {
	return name
}

// Is returns true if c is a builtin.
func Is(c cell.I) bool {
	_, ok := c.(*builtin)

	return ok
}

// To returns a *builtin if c is a builtin; Otherwise it panics.
func To(c cell.I) *builtin {
	if t, ok := c.(*builtin); ok {
		return t
	}

	panic(c.Name() + " cannot be used in a built-in function context")
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t builtin

	// The builtin type is a cell.
	_ = cell.I(&t)

	// The builtin type has a literal representation.
	_ = literal.I(&t)
}
