// Released under an MIT license. See LICENSE.

// Package ui provides a command-line interface for the kith language.
package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/michaelmacinnis/kith/internal/reader/parser"
	"github.com/michaelmacinnis/kith/internal/system/history"
	"github.com/michaelmacinnis/kith/internal/system/session"
	"github.com/peterh/liner"
)

const (
	prompt       = "kith> "
	continuation = "....> "
)

// Reporter writes errors, in red when out is a terminal.
type Reporter struct {
	Color bool
	Out   io.Writer
}

// Report writes err.
func (r Reporter) Report(err error) {
	if errors.Is(err, session.ErrFault) {
		// Already written with its stack.
		return
	}

	if r.Color {
		fmt.Fprintf(r.Out, "\x1b[31merror:\x1b[0m %v\n", err)

		return
	}

	fmt.Fprintf(r.Out, "error: %v\n", err)
}

// Run prompts for commands and runs them in s until the user ends input.
func Run(s *session.T, path string, r Reporter) {
	cli := liner.NewLiner()
	defer cli.Close()

	cli.SetCtrlCAborts(true)

	if err := history.Load(path, cli.ReadHistory); err != nil {
		r.Report(err)
	}

	cli.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		head := line[:pos]
		tail := line[pos:]

		start := strings.LastIndexAny(head, " \t()\"") + 1
		word := head[start:]

		ns, err := s.Engine().Names(word + "*")
		if err != nil {
			return head, nil, tail
		}

		return head[:start], ns, tail
	})

	pending := ""

	for {
		p := prompt
		if pending != "" {
			p = continuation
		}

		line, err := cli.Prompt(p)

		switch {
		case err == nil:
		case errors.Is(err, liner.ErrPromptAborted):
			pending = ""

			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(os.Stdout)

			if err := history.Save(path, cli.WriteHistory); err != nil {
				r.Report(err)
			}

			return
		default:
			r.Report(err)

			return
		}

		pending += line + "\n"

		err = s.Guarded(pending)
		if errors.Is(err, parser.ErrIncomplete) {
			continue
		}

		if strings.TrimSpace(pending) != "" {
			cli.AppendHistory(strings.TrimSpace(pending))
		}

		pending = ""

		if err != nil {
			r.Report(err)
		}
	}
}
