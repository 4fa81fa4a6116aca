// Released under an MIT license. See LICENSE.

package runtime

import (
	"errors"

	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/interface/literal"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
)

// Kind classifies evaluation errors.
type Kind int

// Kinds of evaluation error.
const (
	PatternMismatch Kind = iota + 1
	QuotedLiteralMismatch
	NoArmMatched
	NotCallable
)

//nolint:gochecknoglobals
var kinds = map[Kind]string{
	PatternMismatch:       "pattern did not match",
	QuotedLiteralMismatch: "quoted literal did not match",
	NoArmMatched:          "no arm matched",
	NotCallable:           "not callable",
}

// Error is a failure to evaluate or to match. Both sides are kept so that
// the failure can be reported in full.
type Error struct {
	Kind     Kind
	Expected ast.T
	Got      cell.I
}

func (e *Error) Error() string {
	s := kinds[e.Kind]

	if e.Expected != nil {
		s += ": expected " + e.Expected.String()
	}

	if e.Got != nil {
		if e.Expected != nil {
			s += ", got "
		} else {
			s += ": "
		}

		s += display(e.Got)
	}

	return s
}

// IsMismatch returns true if err is a failure to match, the outcome that
// makes match try its next arm.
func IsMismatch(err error) bool {
	var e *Error

	return errors.As(err, &e) && (e.Kind == PatternMismatch || e.Kind == QuotedLiteralMismatch)
}

func display(c cell.I) string {
	if l, ok := c.(literal.I); ok {
		return l.Literal()
	}

	return c.Name()
}
