// Released under an MIT license. See LICENSE.

// Package closure provides kith's user-defined function type.
package closure

import (
	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/interface/literal"
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
)

const name = "closure"

// T (closure) is a function body with its parameter names and the
// environment it captured when it was created.
type T struct {
	Body   ast.T
	Params []string
	Env    assoc.T[cell.I]
}

type closure = T

// New creates a closure.
func New(body ast.T, params []string, env assoc.T[cell.I]) cell.I {
	return &closure{Body: body, Params: params, Env: env}
}

// Equal returns true if c is the same closure as f.
func (f *closure) Equal(c cell.I) bool {
	return Is(c) && f == To(c)
}

// Literal returns an opaque placeholder for the closure f.
func (f *closure) Literal() string {
	return "[closure]"
}

// Name returns the type name for the closure f.
func (f *closure) Name() string {
	return name
}

// Is returns true if c is a closure.
func Is(c cell.I) bool {
	_, ok := c.(*closure)

	return ok
}

// To returns a *closure if c is a closure; Otherwise it panics.
func To(c cell.I) *closure {
	if t, ok := c.(*closure); ok {
		return t
	}

	panic(c.Name() + " cannot be used in a closure context")
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t closure

	// The closure type is a cell.
	_ = cell.I(&t)

	// The closure type has a literal representation.
	_ = literal.I(&t)
}
