// Released under an MIT license. See LICENSE.

// Package create provides helper functions for creating kith values.
package create

import (
	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
	"github.com/michaelmacinnis/kith/internal/common/type/num"
	"github.com/michaelmacinnis/kith/internal/common/type/record"
	"github.com/michaelmacinnis/kith/internal/common/type/variant"
)

// Bool returns the kith value corresponding to the value of the boolean a.
func Bool(a bool) cell.I {
	if a {
		return variant.New("True")
	}

	return variant.New("False")
}

// Int returns the kith integer for i.
func Int(i int64) cell.I {
	return num.Int(i)
}

// Struct returns a record from alternating field names and values.
func Struct(kvs ...interface{}) cell.I {
	f := assoc.New[cell.I]()

	for i := 0; i+1 < len(kvs); i += 2 {
		f = f.Set(kvs[i].(string), kvs[i+1].(cell.I))
	}

	return record.New(f)
}

// Truth returns true if c is the True variant.
func Truth(c cell.I) bool {
	return variant.Is(c) && variant.To(c).Tag == "True"
}
