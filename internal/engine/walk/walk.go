// Released under an MIT license. See LICENSE.

// Package walk provides the tree walk shared by every kith pass. One
// algorithm, parameterized by a Mode, synthesizes types, unpacks patterns
// against types, evaluates, destructures values, and builds and matches
// quoted syntax.
package walk

import (
	"errors"
	"strconv"

	"github.com/michaelmacinnis/kith/internal/common/fault"
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
	"github.com/michaelmacinnis/kith/internal/common/struct/mbe"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
)

const debug = false

// ErrTooDeep is returned when a walk recurses past its limit.
var ErrTooDeep = errors.New("walk exceeded its depth limit")

// Positive walks t in the positive mode m under env.
func Positive[E any](m Mode[E], t ast.T, env assoc.T[E], o *Options) (E, error) {
	out, err := root(m, env, o).walk(t)

	return out.Elt, err
}

// Negative matches t against ctx in the negative mode m under env.
func Negative[E any](m Mode[E], t ast.T, env assoc.T[E], ctx E, o *Options) (assoc.T[E], error) {
	out, err := root(m, env, o).WithContext(ctx).walk(t)

	return out.Env, err
}

func (r *Reses[E]) walk(t ast.T) (Out[E], error) {
	r.opts.level++
	defer func() { r.opts.level-- }()

	if r.opts.level > r.opts.Limit {
		return Out[E]{}, ErrTooDeep
	}

	m := r.mode

	if debug {
		println(strconv.Itoa(r.opts.level) + " " + m.Name() + " " + t.String())
	}

	switch t := t.(type) {
	case ast.Trivial:
		if m.Negative() {
			return Out[E]{}, nil
		}

		return Out[E]{Elt: m.FromSyntax(t)}, nil

	case ast.VarRef:
		return m.Var(string(t), r)

	case ast.Atom:
		return m.Atom(string(t), r)

	case ast.Node:
		return r.node(t)

	case ast.Shape:
		return r.shape(t)

	case ast.ExtendEnv:
		return r.extend(t)

	case ast.QuoteMore:
		return r.quoteMore(t)

	case ast.QuoteLess:
		return r.quoteLess(t)

	case ast.IncompleteNode:
		r.fault("incomplete node reached a walk", "a node with a form", t.String())
	}

	r.fault("unknown tree", "a tree", "nil")

	return Out[E]{}, nil
}

func (r *Reses[E]) node(n ast.Node) (Out[E], error) {
	checkPositions(n)

	m := r.mode
	c := r.enter(n)

	if m.Negative() {
		c.ctx = m.PreMatch(n, c)
	}

	rule := m.Rule(n.Form, c)

	switch rule.kind {
	case notWalked:
		if !m.Negative() {
			return Out[E]{Elt: m.FromSyntax(n)}, nil
		}

		if !ast.Equal(n, m.ToSyntax(c.ctx)) {
			return Out[E]{}, m.Mismatch(n, c.ctx)
		}

		return Out[E]{}, nil

	case literalLike:
		if m.Negative() {
			return c.zip(n)
		}

		return c.rebuild(n)

	case custom:
		if m.Negative() {
			if rule.neg == nil {
				c.fault("positive rule used to match", "a negative rule", m.Name())
			}

			env, err := rule.neg(c)

			return Out[E]{Env: env}, err
		}

		if rule.pos == nil {
			c.fault("negative rule used to build", "a positive rule", m.Name())
		}

		e, err := rule.pos(c)

		return Out[E]{Elt: e}, err
	}

	c.fault("no rule for form", "a rule", m.Name())

	return Out[E]{}, nil
}

func (r *Reses[E]) rebuild(n ast.Node) (Out[E], error) {
	m := r.mode

	body, err := mbe.MapErr(n.Body, func(_ string, t ast.T) (ast.T, error) {
		o, err := r.walk(t)
		if err != nil {
			return nil, err
		}

		return m.ToSyntax(o.Elt), nil
	})
	if err != nil {
		return Out[E]{}, err
	}

	return Out[E]{Elt: m.FromSyntax(ast.Node{Form: n.Form, Body: body, Export: n.Export})}, nil
}

func (r *Reses[E]) zip(n ast.Node) (Out[E], error) {
	m := r.mode

	got, ok := m.ToSyntax(r.ctx).(ast.Node)
	if !ok || got.Form != n.Form {
		return Out[E]{}, m.Mismatch(n, r.ctx)
	}

	env := assoc.New[E]()

	err := mbe.Zip(n.Body, got.Body, func(_ string, p, g ast.T) error {
		b, err := r.WithContext(m.FromSyntax(g)).MatchTerm(p)
		env = env.Merge(b)

		return err
	})
	if errors.Is(err, mbe.ErrShape) {
		return Out[E]{}, m.Mismatch(n, r.ctx)
	}

	return Out[E]{Env: env}, err
}

func (r *Reses[E]) shape(s ast.Shape) (Out[E], error) {
	m := r.mode
	if !m.Wraps() {
		r.fault("shape walked outside of quotation", "a quotation mode", m.Name())
	}

	if m.Negative() {
		got, ok := m.ToSyntax(r.ctx).(ast.Shape)
		if !ok || len(got) != len(s) {
			return Out[E]{}, m.Mismatch(s, r.ctx)
		}

		env := assoc.New[E]()

		for i, t := range s {
			b, err := r.WithContext(m.FromSyntax(got[i])).MatchTerm(t)
			if err != nil {
				return Out[E]{}, err
			}

			env = env.Merge(b)
		}

		return Out[E]{Env: env}, nil
	}

	ts := make(ast.Shape, len(s))

	for i, t := range s {
		o, err := r.walk(t)
		if err != nil {
			return Out[E]{}, err
		}

		ts[i] = m.ToSyntax(o.Elt)
	}

	return Out[E]{Elt: m.FromSyntax(ts)}, nil
}

func (r *Reses[E]) extend(e ast.ExtendEnv) (Out[E], error) {
	m := r.mode

	if m.Wraps() {
		if m.Negative() {
			got, ok := m.ToSyntax(r.ctx).(ast.ExtendEnv)
			if !ok {
				return Out[E]{}, m.Mismatch(e, r.ctx)
			}

			return r.WithContext(m.FromSyntax(got.Body)).walk(e.Body)
		}

		o, err := r.walk(e.Body)
		if err != nil {
			return o, err
		}

		return Out[E]{Elt: m.FromSyntax(ast.ExtendEnv{Body: m.ToSyntax(o.Elt), Beta: e.Beta})}, nil
	}

	if !m.AutoExtend() {
		return r.walk(e.Body)
	}

	b, err := r.Resolve(e.Beta)
	if err != nil {
		return Out[E]{}, err
	}

	return r.Extend(b).walk(e.Body)
}

func (r *Reses[E]) quoteMore(q ast.QuoteMore) (Out[E], error) {
	m := r.mode
	c := r.shift(r.depth + 1)
	body := q.Body

	if !m.Wraps() && c.mode.Wraps() && !m.Negative() && r.opts.Freshen {
		body = freshen(body, r.opts)
	}

	if !m.Wraps() {
		return c.walk(body)
	}

	if m.Negative() {
		got, ok := m.ToSyntax(r.ctx).(ast.QuoteMore)
		if !ok {
			return Out[E]{}, m.Mismatch(q, r.ctx)
		}

		return c.WithContext(m.FromSyntax(got.Body)).walk(body)
	}

	o, err := c.walk(body)
	if err != nil {
		return o, err
	}

	return Out[E]{Elt: m.FromSyntax(ast.QuoteMore{Body: m.ToSyntax(o.Elt), Positive: q.Positive})}, nil
}

func (r *Reses[E]) quoteLess(q ast.QuoteLess) (Out[E], error) {
	d := r.depth - q.Depth
	if d < 0 {
		r.fault("quotation depth would go negative",
			"at most "+strconv.Itoa(r.depth)+" levels", strconv.Itoa(q.Depth)+" levels")
	}

	c := r.shift(d)

	if !c.mode.Wraps() {
		return c.walk(q.Body)
	}

	m := c.mode

	if m.Negative() {
		got, ok := m.ToSyntax(r.ctx).(ast.QuoteLess)
		if !ok || got.Depth != q.Depth {
			return Out[E]{}, m.Mismatch(q, r.ctx)
		}

		return c.WithContext(m.FromSyntax(got.Body)).walk(q.Body)
	}

	o, err := c.walk(q.Body)
	if err != nil {
		return o, err
	}

	return Out[E]{Elt: m.FromSyntax(ast.QuoteLess{Body: m.ToSyntax(o.Elt), Depth: q.Depth})}, nil
}

// shift moves r to the quotation depth d, switching modes and phase
// environments to match.
func (r *Reses[E]) shift(d int) *Reses[E] {
	c := *r
	c.mode = r.mode.Quoted(d)
	c.more = append([]assoc.T[E]{}, r.more...)
	c.less = append([]assoc.T[E]{}, r.less...)

	for ; c.depth < d; c.depth++ {
		c.less = append(c.less, c.env)

		if n := len(c.more); n > 0 {
			c.env = c.more[n-1]
			c.more = c.more[:n-1]
		} else {
			c.env = c.prelude
		}
	}

	for ; c.depth > d; c.depth-- {
		c.more = append(c.more, c.env)

		n := len(c.less)
		c.env = c.less[n-1]
		c.less = c.less[:n-1]
	}

	return &c
}

func checkPositions(n ast.Node) {
	want := map[string]bool{}
	for _, p := range n.Form.Positions() {
		want[p] = true

		if !n.Body.Has(p) {
			fault.Raise(fault.T{
				What:     "node body is missing a declared position",
				Form:     n.Form.Name(),
				Expected: p,
				Actual:   keys(n.Body),
			})
		}
	}

	for _, k := range n.Body.Keys() {
		if !want[k] {
			fault.Raise(fault.T{
				What:     "node body has an undeclared position",
				Form:     n.Form.Name(),
				Expected: "one of the form's positions",
				Actual:   k,
			})
		}
	}
}
