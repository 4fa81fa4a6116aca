// Released under an MIT license. See LICENSE.

package walk

import (
	"github.com/michaelmacinnis/kith/internal/common/fault"
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
	"github.com/michaelmacinnis/kith/internal/common/struct/mbe"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
)

type memo[E any] struct {
	done bool
	out  Out[E]
	err  error
}

// Reses is the lazy result cache for one node. It holds everything a rule
// needs: the node's body, the environment, and, for negative modes, the
// context being matched. Each sub-tree's result is computed at most once,
// on first request.
type Reses[E any] struct {
	mode Mode[E]
	form ast.Form
	body *mbe.T[ast.T]
	at   ast.T

	env     assoc.T[E]
	ctx     E
	hasCtx  bool
	more    []assoc.T[E]
	less    []assoc.T[E]
	prelude assoc.T[E]

	depth int
	opts  *Options

	pos map[string]*memo[E]
	neg map[string]*memo[E]
}

func root[E any](m Mode[E], env assoc.T[E], o *Options) *Reses[E] {
	if o == nil {
		o = Default()
	}

	return &Reses[E]{
		mode:    m,
		body:    mbe.New[ast.T](),
		at:      ast.Trivial{},
		env:     env,
		prelude: env,
		opts:    o,
		pos:     map[string]*memo[E]{},
		neg:     map[string]*memo[E]{},
	}
}

// NewWrapper returns a Reses for walking whole trees, outside of any node.
func NewWrapper[E any](m Mode[E], env assoc.T[E], o *Options) *Reses[E] {
	return root(m, env, o)
}

func (r *Reses[E]) derive() *Reses[E] {
	c := *r
	c.pos = map[string]*memo[E]{}
	c.neg = map[string]*memo[E]{}

	return &c
}

func (r *Reses[E]) enter(n ast.Node) *Reses[E] {
	c := r.derive()
	c.form = n.Form
	c.body = n.Body
	c.at = n

	return c
}

// phased returns r shifted to the phase of the position k.
func (r *Reses[E]) phased(k string) *Reses[E] {
	if r.form == nil {
		return r
	}

	s := r.form.Phase(k)
	if s == 0 {
		return r
	}

	if r.depth+s < 0 {
		r.fault("phase shift below zero", "a non-negative phase", k)
	}

	return r.shift(r.depth + s)
}

func (r *Reses[E]) positive() *Reses[E] {
	if !r.mode.Negative() {
		return r
	}

	c := *r
	c.mode = r.mode.Negated()

	return &c
}

func (r *Reses[E]) negative() *Reses[E] {
	if r.mode.Negative() {
		return r
	}

	c := *r
	c.mode = r.mode.Negated()

	return &c
}

// At returns the node r was created for.
func (r *Reses[E]) At() ast.T {
	return r.at
}

// Atom returns the name held by the atom at k.
func (r *Reses[E]) Atom(k string) string {
	t := ast.Strip(r.Term(k))

	n, ok := t.(ast.Atom)
	if !ok {
		r.fault("position is not an atom", "an atom at "+k, t.String())
	}

	return string(n)
}

// Atoms returns the names held by the atoms at k in each repetition.
func (r *Reses[E]) Atoms(k string) []string {
	var ns []string

	for _, c := range r.March(k) {
		ns = append(ns, c.Atom(k))
	}

	return ns
}

// Body returns the node's body.
func (r *Reses[E]) Body() *mbe.T[ast.T] {
	return r.body
}

// Context returns the element being matched. It faults in positive modes.
func (r *Reses[E]) Context() E {
	if !r.hasCtx {
		r.fault("no context to match against", "a negative walk", r.mode.Name())
	}

	return r.ctx
}

// Depth returns the quotation depth.
func (r *Reses[E]) Depth() int {
	return r.depth
}

// Env returns the environment.
func (r *Reses[E]) Env() assoc.T[E] {
	return r.env
}

// Extend returns r with bindings added to its environment.
func (r *Reses[E]) Extend(bindings assoc.T[E]) *Reses[E] {
	return r.WithEnv(r.env.Merge(bindings))
}

// Form returns the node's form, or nil outside of any node.
func (r *Reses[E]) Form() ast.Form {
	return r.form
}

// Get returns the result of walking the sub-tree at k positively.
func (r *Reses[E]) Get(k string) (E, error) {
	p := r.positive()

	o, err := cached(r.pos, k, func() (Out[E], error) {
		return p.phased(k).walk(r.Term(k))
	})

	return o.Elt, err
}

// GetRep returns the result of walking the sub-tree at k positively, in
// each repetition of k.
func (r *Reses[E]) GetRep(k string) ([]E, error) {
	var es []E

	for _, c := range r.March(k) {
		e, err := c.Get(k)
		if err != nil {
			return nil, err
		}

		es = append(es, e)
	}

	return es, nil
}

// Match returns the bindings from matching the sub-tree at k against r's
// context.
func (r *Reses[E]) Match(k string) (assoc.T[E], error) {
	n := r.negative()
	n.Context()

	o, err := cached(r.neg, k, func() (Out[E], error) {
		return n.phased(k).walk(r.Term(k))
	})

	return o.Env, err
}

// March returns one Reses per repetition of the groups holding drivers.
// Results for positions outside those groups are shared with r.
func (r *Reses[E]) March(drivers ...string) []*Reses[E] {
	bodies := r.body.March(drivers...)
	rs := make([]*Reses[E], len(bodies))

	shared := r.body.Leaves().Keys()
	for _, k := range shared {
		share(r.pos, k)
		share(r.neg, k)
	}

	for i, b := range bodies {
		c := r.derive()
		c.body = b

		for _, k := range shared {
			c.pos[k] = r.pos[k]
			c.neg[k] = r.neg[k]
		}

		rs[i] = c
	}

	return rs
}

// MatchTerm matches the tree t against r's context.
func (r *Reses[E]) MatchTerm(t ast.T) (assoc.T[E], error) {
	n := r.negative()
	n.Context()

	o, err := n.walk(t)

	return o.Env, err
}

// Mode returns the mode r walks in.
func (r *Reses[E]) Mode() Mode[E] {
	return r.mode
}

// Options returns the options shared by the walk.
func (r *Reses[E]) Options() *Options {
	return r.opts
}

// Switch returns r in its negated mode.
func (r *Reses[E]) Switch() *Reses[E] {
	c := r.derive()
	c.mode = r.mode.Negated()

	return c
}

// Term returns the sub-tree at k.
func (r *Reses[E]) Term(k string) ast.T {
	t, ok := r.body.Get(k)
	if !ok {
		r.fault("node body is missing a position", k, keys(r.body))
	}

	return t
}

// Terms returns the sub-tree at k in each repetition of k.
func (r *Reses[E]) Terms(k string) []ast.T {
	var ts []ast.T

	for _, c := range r.March(k) {
		ts = append(ts, c.Term(k))
	}

	return ts
}

// WalkTerm walks the tree t positively.
func (r *Reses[E]) WalkTerm(t ast.T) (E, error) {
	o, err := r.positive().walk(t)

	return o.Elt, err
}

// WithContext returns r with e as the context for negative walks.
// Positive results are shared; they do not depend on the context.
func (r *Reses[E]) WithContext(e E) *Reses[E] {
	c := *r
	c.ctx = e
	c.hasCtx = true
	c.neg = map[string]*memo[E]{}

	return &c
}

// WithEnv returns r with env as its environment.
func (r *Reses[E]) WithEnv(env assoc.T[E]) *Reses[E] {
	c := r.derive()
	c.env = env

	return c
}

func (r *Reses[E]) fault(what, expected, actual string) {
	f := fault.T{What: what, Expected: expected, Actual: actual}
	if r.form != nil {
		f.Form = r.form.Name()
	}

	fault.Raise(f)
}

func cached[E any](m map[string]*memo[E], k string, fn func() (Out[E], error)) (Out[E], error) {
	c, ok := m[k]
	if !ok {
		c = &memo[E]{}
		m[k] = c
	}

	if !c.done {
		c.out, c.err = fn()
		c.done = true
	}

	return c.out, c.err
}

func share[E any](m map[string]*memo[E], k string) {
	if _, ok := m[k]; !ok {
		m[k] = &memo[E]{}
	}
}

func keys(m *mbe.T[ast.T]) string {
	s := ""
	for i, k := range m.Keys() {
		if i > 0 {
			s += " "
		}

		s += k
	}

	return s
}
