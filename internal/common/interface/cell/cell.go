// Released under an MIT license. See LICENSE.

// Package cell defines the interface for all kith runtime values.
package cell

// I (cell) is the basic unit of storage in kith.
type I interface {
	Equal(c I) bool
	Name() string
}
