// Released under an MIT license. See LICENSE.

// Package reader turns kith source text into syntax trees.
package reader

import (
	"github.com/michaelmacinnis/kith/internal/common/struct/loc"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/reader/lexer"
	"github.com/michaelmacinnis/kith/internal/reader/parser"
)

// Error describes text that does not fit the grammar of the form it names.
type Error struct {
	Source   *loc.T
	Expected string
	Got      string
}

func (e *Error) Error() string {
	s := "expected " + e.Expected + ", got " + e.Got
	if e.Source != nil {
		s = e.Source.String() + ": " + s
	}

	return s
}

// Items parses text into s-expressions. If text ends part way through an
// item, Items returns parser.ErrIncomplete.
func Items(label, text string) ([]*parser.Item, error) {
	l := lexer.New(label)

	l.Scan(text + "\n")

	items, err := parser.New(l.Token).Parse()
	if err != nil {
		return nil, err
	}

	if l.Pending() {
		return nil, parser.ErrIncomplete
	}

	return items, nil
}

// Read parses text into trees of category: one of core.Expr, core.Pat, or
// core.Type.
func Read(category, label, text string) ([]ast.T, error) {
	items, err := Items(label, text)
	if err != nil {
		return nil, err
	}

	ts := make([]ast.T, len(items))

	for i, item := range items {
		ts[i], err = Convert(category, item)
		if err != nil {
			return nil, err
		}
	}

	return ts, nil
}

// One parses text that must hold exactly one tree of category.
func One(category, label, text string) (ast.T, error) {
	items, err := Items(label, text)
	if err != nil {
		return nil, err
	}

	switch len(items) {
	case 0:
		return nil, &Error{Expected: "an item", Got: "nothing"}
	case 1:
	default:
		return nil, &Error{Source: items[1].Source, Expected: "a single item", Got: items[1].String()}
	}

	return Convert(category, items[0])
}

// Convert builds the tree of category that item describes.
func Convert(category string, item *parser.Item) (t ast.T, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		e, ok := r.(*Error)
		if !ok {
			panic(r)
		}

		t, err = nil, e
	}()

	return converter{}.tree(category, item), nil
}
