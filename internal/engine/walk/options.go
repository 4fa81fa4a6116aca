// Released under an MIT license. See LICENSE.

package walk

import (
	"strconv"
)

// DefaultLimit is the deepest a walk may recurse before it gives up.
const DefaultLimit = 10000

// Options hold the settings shared by every frame of a walk.
type Options struct {
	// Freshen enables renaming of binders in quoted syntax: freshly when
	// syntax is built, and to the pattern's names when syntax is matched.
	Freshen bool

	// Limit bounds recursion depth. A walk that goes deeper fails with
	// ErrTooDeep.
	Limit int

	counter int
	level   int
}

// Default returns the options used when none are given.
func Default() *Options {
	return &Options{Freshen: true, Limit: DefaultLimit}
}

// Fresh returns a name based on n that has not been returned before.
func (o *Options) Fresh(n string) string {
	o.counter++

	return n + "#" + strconv.Itoa(o.counter)
}

// Without runs fn with freshening disabled. The previous setting is
// restored however fn exits.
func (o *Options) Without(fn func()) {
	prev := o.Freshen
	o.Freshen = false

	defer func() {
		o.Freshen = prev
	}()

	fn()
}
