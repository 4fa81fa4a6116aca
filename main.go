/*
Kith is a small typed language with type-checked hygienic macros. Syntax
can be quoted, taken apart by pattern matching, and spliced back together,
and the type checker follows quoted syntax as closely as it follows
ordinary code:

    kith> (plus one two)
    3 : Int
    kith> id := (forall (T) (fn ((x T)) x))
    id = [closure] : (forall (T) (-> T T))
    kith> (match (quote Expr (plus one two))
    ....>   ((quote Expr (plus (unquote Expr Int e) two)) e))
    '[one]' : (Expr Int)

Type :h at the prompt for the list of commands.

Kith is released under an MIT-style license.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/michaelmacinnis/kith/internal/engine"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
	"github.com/michaelmacinnis/kith/internal/system/options"
	"github.com/michaelmacinnis/kith/internal/system/session"
	"github.com/michaelmacinnis/kith/internal/ui"
)

func main() {
	options.Parse()

	o := walk.Default()
	o.Limit = options.Depth()

	r := ui.Reporter{Color: options.Terminal(), Out: os.Stdout}
	s := session.New(engine.New(o), os.Stdout, os.Stderr, options.Prelude())

	if err := s.Load(); err != nil {
		r.Report(err)
	}

	switch {
	case options.Command() != "":
		if err := s.Guarded(options.Command()); err != nil {
			r.Report(err)
			os.Exit(1)
		}
	case options.Script() != "":
		os.Exit(script(s, r, options.Script()))
	case options.Interactive():
		if !options.Quiet() {
			fmt.Println(options.Version + " (:h for help)")
		}

		ui.Run(s, options.History(), r)
	default:
		os.Exit(run(s, r, "stdin", os.Stdin))
	}
}

func run(s *session.T, r ui.Reporter, label string, f *os.File) int {
	status := 0

	err := s.Run(label, f, func(err error) {
		status = 1

		r.Report(err)
	})
	if err != nil {
		r.Report(err)

		return 1
	}

	return status
}

func script(s *session.T, r ui.Reporter, path string) int {
	f, err := os.Open(path)
	if err != nil {
		r.Report(err)

		return 1
	}
	defer f.Close()

	return run(s, r, strings.TrimSuffix(path, ".kith"), f)
}
