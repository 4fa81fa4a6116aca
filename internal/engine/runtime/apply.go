// Released under an MIT license. See LICENSE.

package runtime

import (
	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/type/builtin"
	"github.com/michaelmacinnis/kith/internal/common/type/closure"
	"github.com/michaelmacinnis/kith/internal/common/validate"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
)

// Apply calls the function f with args. Closure bodies are evaluated with
// the options of the walk r belongs to.
func Apply(f cell.I, args []cell.I, r *walk.Reses[cell.I]) (cell.I, error) {
	switch {
	case closure.Is(f):
		c := closure.To(f)
		validate.Fixed(args, len(c.Params), len(c.Params))

		env := c.Env
		for i, p := range c.Params {
			env = env.Set(p, args[i])
		}

		return r.WithEnv(env).WalkTerm(c.Body)

	case builtin.Is(f):
		return builtin.To(f).Call(args)
	}

	return nil, &Error{Kind: NotCallable, Got: f}
}

// Fix returns the fixed point of f, a function that takes the function to
// call for recursion and returns it.
func Fix(f cell.I, r *walk.Reses[cell.I]) (cell.I, error) {
	var self cell.I

	self = builtin.New("fix", func(args []cell.I) (cell.I, error) {
		g, err := Apply(f, []cell.I{self}, r)
		if err != nil {
			return nil, err
		}

		return Apply(g, args, r)
	})

	return Apply(f, []cell.I{self}, r)
}
