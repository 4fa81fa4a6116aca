// Released under an MIT license. See LICENSE.

package ty

import (
	"errors"

	"github.com/michaelmacinnis/kith/internal/common/type/ast"
)

// Kind classifies type errors.
type Kind int

// Kinds of type error.
const (
	Mismatch Kind = iota + 1
	NotAFunction
	ArityMismatch
	NoSuchArm
	FieldMissing
	NotAStruct
	NotAnEnum
	NotMu
	NotSyntax
	NotForall
	NoArms
)

//nolint:gochecknoglobals
var kinds = map[Kind]string{
	Mismatch:      "type mismatch",
	NotAFunction:  "not a function",
	ArityMismatch: "wrong number of arguments",
	NoSuchArm:     "no such arm",
	FieldMissing:  "missing field",
	NotAStruct:    "not a struct",
	NotAnEnum:     "not an enum",
	NotMu:         "not a recursive type",
	NotSyntax:     "not syntax",
	NotForall:     "not a quantified type",
	NoArms:        "match has no arms",
}

// Error is a failure to type-check a tree.
type Error struct {
	Kind     Kind
	Got      ast.T
	Expected ast.T
	At       ast.T
	Detail   string
}

func (e *Error) Error() string {
	s := kinds[e.Kind]

	if e.Detail != "" {
		s += " " + e.Detail
	}

	if e.Expected != nil {
		s += ": expected " + String(e.Expected)
	}

	if e.Got != nil {
		if e.Expected != nil {
			s += ", got "
		} else {
			s += ": "
		}

		s += String(e.Got)
	}

	if e.At != nil {
		if _, ok := e.At.(ast.Trivial); !ok {
			s += "\n    at " + e.At.String()
		}
	}

	return s
}

// Is returns true if err is a type error of kind k.
func Is(err error, k Kind) bool {
	var e *Error

	return errors.As(err, &e) && e.Kind == k
}

// Locate records at as the place err happened, unless it already has one.
func Locate(err error, at ast.T) error {
	var e *Error
	if errors.As(err, &e) && e.At == nil {
		e.At = at
	}

	return err
}
