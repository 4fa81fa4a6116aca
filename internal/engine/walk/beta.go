// Released under an MIT license. See LICENSE.

package walk

import (
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
	"github.com/michaelmacinnis/kith/internal/common/struct/beta"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
)

type bound[E any] struct {
	env       assoc.T[E]
	protected map[string]bool
}

// shadow returns the bindings of b overridden by those of inner, except
// for names b protects.
func (b bound[E]) shadow(inner bound[E]) bound[E] {
	r := bound[E]{env: b.env, protected: map[string]bool{}}

	for k := range b.protected {
		r.protected[k] = true
	}

	inner.env.Each(func(k string, v E) {
		if !b.protected[k] {
			r.env = r.env.Set(k, v)
		}
	})

	for k := range inner.protected {
		r.protected[k] = true
	}

	return r
}

// Resolve returns the bindings described by the scope spec b. The names in
// b are positions in r's body.
func (r *Reses[E]) Resolve(b beta.T) (assoc.T[E], error) {
	s, err := r.scope(b)

	return s.env, err
}

func (r *Reses[E]) scope(b beta.T) (bound[E], error) {
	switch b := b.(type) {
	case beta.Nothing:
		return bound[E]{}, nil

	case beta.Shadow:
		outer, err := r.scope(b.Outer)
		if err != nil {
			return outer, err
		}

		inner, err := r.scope(b.Inner)
		if err != nil {
			return inner, err
		}

		return outer.shadow(inner), nil

	case beta.ShadowAll:
		acc := bound[E]{}

		for _, c := range r.March(b.Drivers...) {
			s, err := c.scope(b.Sub)
			if err != nil {
				return s, err
			}

			acc = acc.shadow(s)
		}

		return acc, nil

	case beta.Basic:
		n := r.Atom(b.Name)

		v, err := r.Get(b.Type)
		if err != nil {
			return bound[E]{}, err
		}

		return bound[E]{env: assoc.Single(n, v)}, nil

	case beta.SameAs:
		v, err := r.Get(b.Source)
		if err != nil {
			return bound[E]{}, err
		}

		env, err := r.WithContext(v).Match(b.Name)

		return bound[E]{env: env}, err

	case beta.Protected:
		n := r.Atom(b.Name)

		return bound[E]{
			env:       assoc.Single(n, Lookup(n, r)),
			protected: map[string]bool{n: true},
		}, nil

	case beta.Underspecified:
		n := r.Atom(b.Name)

		return bound[E]{env: assoc.Single(n, r.mode.Underspecified(n, r))}, nil
	}

	r.fault("unknown scope spec", "a scope spec", b.String())

	return bound[E]{}, nil
}

// freshen renames the binders in the template t to names not used before.
func freshen(t ast.T, o *Options) ast.T {
	m := map[string]string{}

	for _, n := range ast.AllBinders(t) {
		if _, ok := m[n]; !ok {
			m[n] = o.Fresh(n)
		}
	}

	return ast.Rename(t, m)
}
