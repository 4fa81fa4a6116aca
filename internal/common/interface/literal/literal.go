// Released under an MIT license. See LICENSE.

// Package literal defines the interface for kith values that can be displayed.
package literal

import (
	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
)

// I (literal) is any type that has a display representation.
type I interface {
	Literal() string
}

// String returns the display representation for a cell, if possible.
func String(c cell.I) string {
	l, ok := c.(I)
	if !ok {
		// Smuggled host values may not be displayable.
		panic(c.Name() + " does not have a literal representation")
	}

	return l.Literal()
}
