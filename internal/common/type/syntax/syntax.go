// Released under an MIT license. See LICENSE.

// Package syntax provides kith's syntax value type: a tree used as data.
package syntax

import (
	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/interface/literal"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
)

const name = "syntax"

// T (syntax) wraps a tree.
type T struct {
	Tree ast.T
}

type syntax = T

// New wraps the tree t as a syntax value.
func New(t ast.T) cell.I {
	return &syntax{Tree: t}
}

// Equal returns true if c is syntax for the same tree as s.
func (s *syntax) Equal(c cell.I) bool {
	return Is(c) && ast.Equal(s.Tree, To(c).Tree)
}

// Literal returns the tree in s as a quoted block.
func (s *syntax) Literal() string {
	return "'[" + s.Tree.String() + "]'"
}

// Name returns the type name for the syntax s.
func (s *syntax) Name() string {
	return name
}

// Is returns true if c is a syntax value.
func Is(c cell.I) bool {
	_, ok := c.(*syntax)

	return ok
}

// To returns a *syntax if c is a syntax value; Otherwise it panics.
func To(c cell.I) *syntax {
	if t, ok := c.(*syntax); ok {
		return t
	}

	panic(c.Name() + " is not syntax")
}

// Tree returns the tree wrapped by c, which must be a syntax value.
func Tree(c cell.I) ast.T {
	return To(c).Tree
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t syntax

	// The syntax type is a cell.
	_ = cell.I(&t)

	// The syntax type has a literal representation.
	_ = literal.I(&t)
}
