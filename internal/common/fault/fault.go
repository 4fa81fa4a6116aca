// Released under an MIT license. See LICENSE.

// Package fault defines the value kith panics with when one of its own
// invariants is broken. A fault is never an ordinary program error: it means
// a mode was wired incorrectly or a malformed tree bypassed the reader.
package fault

import (
	"fmt"
	"strings"
)

// T (fault) describes a broken internal invariant.
type T struct {
	What     string
	Form     string
	Expected string
	Actual   string
}

type fault = T

// Error returns the full description of the fault f.
func (f *fault) Error() string {
	var b strings.Builder

	b.WriteString("internal consistency fault: ")
	b.WriteString(f.What)

	if f.Form != "" {
		b.WriteString(" [form " + f.Form + "]")
	}

	if f.Expected != "" || f.Actual != "" {
		b.WriteString("\n    expected: " + f.Expected)
		b.WriteString("\n    actual:   " + f.Actual)
	}

	return b.String()
}

// Raise panics with the fault f.
func Raise(f T) {
	panic(&f)
}

// Raisef panics with a fault described by the format string and arguments.
func Raisef(format string, args ...interface{}) {
	panic(&fault{What: fmt.Sprintf(format, args...)})
}

// From returns the fault in the recovered value r, if there is one.
func From(r interface{}) (*T, bool) {
	f, ok := r.(*fault)

	return f, ok
}
