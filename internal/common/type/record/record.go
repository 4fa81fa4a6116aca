// Released under an MIT license. See LICENSE.

// Package record provides kith's struct value type.
package record

import (
	"strings"

	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/interface/literal"
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
)

const name = "struct"

// T (record) is an ordered set of named fields.
type T struct {
	Fields assoc.T[cell.I]
}

type record = T

// New creates a record with the fields in f.
func New(f assoc.T[cell.I]) cell.I {
	return &record{Fields: f}
}

// Equal returns true if c is a record with the same fields as r.
func (r *record) Equal(c cell.I) bool {
	return Is(c) && assoc.Equal(r.Fields, To(c).Fields, func(x, y cell.I) bool {
		return x.Equal(y)
	})
}

// Field returns the value of the field k.
func (r *record) Field(k string) (cell.I, bool) {
	return r.Fields.Find(k)
}

// Literal returns the fields of r as name: value pairs.
func (r *record) Literal() string {
	var b strings.Builder

	b.WriteString("*[")

	r.Fields.Each(func(k string, v cell.I) {
		b.WriteString(k + ": " + literal.String(v) + " ")
	})

	b.WriteString("]*")

	return b.String()
}

// Name returns the type name for the record r.
func (r *record) Name() string {
	return name
}

// Is returns true if c is a record.
func Is(c cell.I) bool {
	_, ok := c.(*record)

	return ok
}

// To returns a *record if c is a record; Otherwise it panics.
func To(c cell.I) *record {
	if t, ok := c.(*record); ok {
		return t
	}

	panic(c.Name() + " cannot be used in a struct context")
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t record

	// The record type is a cell.
	_ = cell.I(&t)

	// The record type has a literal representation.
	_ = literal.I(&t)
}
