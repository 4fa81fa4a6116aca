// Released under an MIT license. See LICENSE.

// Package parser provides a recursive descent parser for kith's
// s-expression syntax.
package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/kith/internal/common/struct/loc"
	"github.com/michaelmacinnis/kith/internal/common/struct/token"
)

// ErrIncomplete is returned when the input ends part way through an item.
var ErrIncomplete = errors.New("incomplete input")

// Item is a parsed s-expression: a symbol, a string, or a list.
type Item struct {
	List   []*Item
	Source *loc.T
	Text   string

	class token.Class
}

// IsList returns true if i is a parenthesized list.
func (i *Item) IsList() bool {
	return i.class == '('
}

// IsString returns true if i was written as a double-quoted string.
func (i *Item) IsString() bool {
	return i.class == token.DoubleQuoted
}

// Head returns the symbol at the start of a list, if there is one.
func (i *Item) Head() (string, bool) {
	if !i.IsList() || len(i.List) == 0 || i.List[0].IsList() || i.List[0].IsString() {
		return "", false
	}

	return i.List[0].Text, true
}

func (i *Item) String() string {
	switch {
	case i.IsList():
		s := make([]string, len(i.List))
		for n, e := range i.List {
			s[n] = e.String()
		}

		return "(" + strings.Join(s, " ") + ")"
	case i.IsString():
		return strconv.Quote(i.Text)
	}

	return i.Text
}

// T holds the state of the parser.
type T struct {
	ahead int             // Lookahead count.
	item  func() *token.T // Function to call to get another token.
	token *token.T        // Token lookahead.
}

// New creates a new parser that reads tokens by calling item.
func New(item func() *token.T) *T {
	return &T{item: item}
}

// Parse consumes tokens until there are no more and returns the items read.
func (p *T) Parse() (items []*Item, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		items = nil

		switch r := r.(type) {
		case error:
			err = r
		case string:
			err = errors.New(r)
		default:
			panic(r)
		}
	}()

	for t := p.peek(); t != nil; t = p.peek() {
		items = append(items, p.sexp())
	}

	return items, nil
}

func (p *T) consume() *token.T {
	if p.ahead == 0 {
		panic("nothing to consume.")
	}

	t := p.token

	p.ahead = 0
	p.token = nil

	return t
}

func (p *T) peek() *token.T {
	if p.ahead == 0 {
		p.token = p.item()
		p.ahead = 1
	}

	return p.token
}

func (p *T) sexp() *Item {
	t := p.consume()

	switch {
	case t.Is('('):
		i := &Item{Source: t.Source(), class: '('}

		for {
			n := p.peek()
			if n == nil {
				panic(ErrIncomplete)
			}

			if n.Is(')') {
				p.consume()

				return i
			}

			i.List = append(i.List, p.sexp())
		}
	case t.Is(')'):
		panic(t.Source().String() + ": unexpected ')'")
	case t.Is(token.DoubleQuoted):
		text := t.Value()

		s, err := adapted.ActualBytes(text[1 : len(text)-1])
		if err != nil {
			panic(t.Source().String() + ": " + err.Error())
		}

		return &Item{Source: t.Source(), Text: s, class: token.DoubleQuoted}
	}

	return &Item{Source: t.Source(), Text: t.Value(), class: token.Symbol}
}
