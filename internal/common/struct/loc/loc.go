// Released under an MIT license. See LICENSE.

// Package loc provides the type used to track the source of tokens.
package loc

import (
	"strconv"
)

// T (loc) is where an item starts: a label, a line and a column.
type T struct {
	Char int
	Line int
	Name string
}

type loc = T

// String returns "label:line:column". Without a label, the line and column
// are enough.
func (l *loc) String() string {
	at := strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Char)
	if l.Name == "" {
		return at
	}

	return l.Name + ":" + at
}
