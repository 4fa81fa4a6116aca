// Released under an MIT license. See LICENSE.

// Package engine provides a type checker and evaluator for parsed kith code.
package engine

import (
	"sort"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/struct/assoc"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/common/type/seq"
	"github.com/michaelmacinnis/kith/internal/common/type/smuggled"
	"github.com/michaelmacinnis/kith/internal/engine/core"
	"github.com/michaelmacinnis/kith/internal/engine/runtime"
	"github.com/michaelmacinnis/kith/internal/engine/ty"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
)

// T (engine) is a facade in front of the machinery for checking and
// evaluating kith code. It holds a session's environments. Type names
// and the types of values share one environment.
type T struct {
	opts   *walk.Options
	types  assoc.T[ast.T]
	values assoc.T[cell.I]
}

// New creates a new T starting from the core environments.
func New(o *walk.Options) *T {
	if o == nil {
		o = walk.Default()
	}

	return &T{
		opts:   o,
		types:  core.Types(),
		values: core.Values(),
	}
}

// Canonical returns the canonical form of the type tree t.
func (e *T) Canonical(t ast.T) (ast.T, error) {
	return ty.SynthType(t, e.types, e.opts)
}

// Define checks and evaluates t and binds the result to name.
func (e *T) Define(name string, t ast.T) (cell.I, ast.T, error) {
	v, vt, err := e.Run(t)
	if err != nil {
		return nil, nil, err
	}

	e.types = e.types.Set(name, vt)
	e.values = e.values.Set(name, v)

	return v, vt, nil
}

// DefineType binds name to the canonical form of the type tree t. As a
// value, name is the type descriptor itself.
func (e *T) DefineType(name string, t ast.T) (ast.T, error) {
	c, err := e.Canonical(t)
	if err != nil {
		return nil, err
	}

	e.types = e.types.Set(name, c)
	e.values = e.values.Set(name, smuggled.New(c))

	return c, nil
}

// Evaluate evaluates t without checking its type.
func (e *T) Evaluate(t ast.T) (cell.I, error) {
	return runtime.Evaluate(t, e.values, e.opts)
}

// EvaluateAll evaluates each of ts, in order, without checking types. The
// results are returned as a sequence.
func (e *T) EvaluateAll(ts []ast.T) (cell.I, error) {
	vs := make([]cell.I, len(ts))

	for i, t := range ts {
		v, err := e.Evaluate(t)
		if err != nil {
			return nil, err
		}

		vs[i] = v
	}

	return seq.New(vs...), nil
}

// Names returns the sorted names bound in either environment that match
// the shell pattern. An empty pattern matches everything.
func (e *T) Names(pattern string) ([]string, error) {
	seen := map[string]bool{}

	var ns []string

	for _, n := range append(e.types.Keys(), e.values.Keys()...) {
		if seen[n] {
			continue
		}

		seen[n] = true

		if pattern != "" {
			ok, err := adapted.Match(pattern, n)
			if err != nil {
				return nil, err
			}

			if !ok {
				continue
			}
		}

		ns = append(ns, n)
	}

	sort.Strings(ns)

	return ns, nil
}

// Options returns the options every walk in this session uses.
func (e *T) Options() *walk.Options {
	return e.opts
}

// Run checks the type of t and, if it is well typed, evaluates it.
func (e *T) Run(t ast.T) (cell.I, ast.T, error) {
	vt, err := e.Type(t)
	if err != nil {
		return nil, nil, err
	}

	v, err := e.Evaluate(t)
	if err != nil {
		return nil, nil, err
	}

	return v, vt, nil
}

// Type returns the type of the expression t.
func (e *T) Type(t ast.T) (ast.T, error) {
	return ty.SynthType(t, e.types, e.opts)
}
