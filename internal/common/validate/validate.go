// Released under an MIT license. See LICENSE.

// Package validate checks the arguments passed to built-in functions.
package validate

import (
	"fmt"

	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/type/num"
)

// Variadic returns the first max values of actual, panicking if there are
// fewer than min. Values beyond max are returned separately.
func Variadic(actual []cell.I, min, max int) ([]cell.I, []cell.I) {
	if len(actual) < min {
		s := Count(min, "argument", "s")
		panic(fmt.Sprintf("expected %s, passed %d", s, len(actual)))
	}

	if len(actual) > max {
		return actual[:max], actual[max:]
	}

	return actual, nil
}

// Fixed returns actual, panicking if it does not hold between min and max
// values.
func Fixed(actual []cell.I, min, max int) []cell.I {
	expected, rest := Variadic(actual, min, max)
	if len(rest) != 0 {
		s := Count(max, "argument", "s")
		panic(fmt.Sprintf("expected %s, passed %d", s, len(actual)))
	}

	return expected
}

// Ints returns the integer arguments in actual, panicking if there are not
// exactly n or any is not an integer.
func Ints(actual []cell.I, n int) []*num.T {
	args := Fixed(actual, n, n)
	ns := make([]*num.T, len(args))

	for i, a := range args {
		ns[i] = num.To(a)
	}

	return ns
}

// Count returns n followed by label, pluralized with p when n is not 1.
func Count(n int, label string, p string) string {
	if n == 1 {
		p = ""
	}

	return fmt.Sprintf("%d %s%s", n, label, p)
}
