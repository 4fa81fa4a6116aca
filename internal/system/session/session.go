// Released under an MIT license. See LICENSE.

// Package session runs the commands a user types at kith's prompt or puts
// in a script or prelude.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/michaelmacinnis/kith/internal/common/fault"
	"github.com/michaelmacinnis/kith/internal/common/interface/cell"
	"github.com/michaelmacinnis/kith/internal/common/interface/literal"
	"github.com/michaelmacinnis/kith/internal/engine"
	"github.com/michaelmacinnis/kith/internal/engine/core"
	"github.com/michaelmacinnis/kith/internal/engine/ty"
	"github.com/michaelmacinnis/kith/internal/reader"
	"github.com/michaelmacinnis/kith/internal/reader/parser"
	"github.com/michaelmacinnis/kith/internal/system/history"
)

// Errors returned by sessions.
var (
	ErrFault = errors.New("command aborted")
	ErrUsage = errors.New("usage")
)

const help = `EXPR               check and evaluate EXPR
:e EXPR ...        evaluate each EXPR without checking types
:t EXPR            print the type of EXPR
:tt TYPE           print the canonical form of TYPE
:p EXPR            print the tree EXPR parses to
NAME := EXPR       check and evaluate EXPR and bind it to NAME
NAME t= TYPE       bind NAME to TYPE
:s NAME := EXPR    bind, and append the binding to the prelude
:s NAME t= TYPE    bind, and append the binding to the prelude
:names [PATTERN]   list bound names matching PATTERN
:h                 print this help
`

// T (session) holds an engine and where its output goes.
type T struct {
	engine  *engine.T
	errs    io.Writer
	label   string
	out     io.Writer
	prelude string
}

type session = T

// New creates a session that prints results to out, faults to errs, and
// saves bindings to the prelude file at path.
func New(e *engine.T, out, errs io.Writer, path string) *T {
	return &T{engine: e, errs: errs, label: "kith", out: out, prelude: path}
}

// Engine returns the session's engine.
func (s *session) Engine() *engine.T {
	return s.engine
}

// Execute runs the command in text. If text ends part way through an
// item, Execute returns parser.ErrIncomplete and does nothing.
func (s *session) Execute(text string) error {
	line := strings.TrimSpace(text)

	switch {
	case line == "", line[0] == '#':
		return nil
	case line == ":h":
		_, err := io.WriteString(s.out, help)

		return err
	case line == ":names", strings.HasPrefix(line, ":names "):
		return s.names(strings.TrimSpace(line[len(":names"):]))
	case strings.HasPrefix(line, ":s "):
		return s.save(strings.TrimSpace(line[3:]))
	}

	if cmd, rest, ok := split(line); ok {
		return s.command(cmd, rest)
	}

	if ok, err := s.bind(line); ok || err != nil {
		return err
	}

	t, err := reader.One(core.Expr, s.label, line)
	if err != nil {
		return err
	}

	v, vt, err := s.engine.Run(t)
	if err != nil {
		return err
	}

	return s.printf("%s : %s\n", literal.String(v), ty.String(vt))
}

// Guarded runs the command in text like Execute. If the command aborts on
// a fault, the fault and a stack trace are written to the session's error
// writer and ErrFault is returned. A value used where it does not belong
// is returned as an error.
func (s *session) Guarded(text string) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if f, ok := fault.From(r); ok {
			fmt.Fprintf(s.errs, "%s\n%s", f.Error(), debug.Stack())

			err = ErrFault

			return
		}

		m, ok := r.(string)
		if !ok {
			panic(r)
		}

		err = errors.New(m)
	}()

	return s.Execute(text)
}

// Load runs each command in the prelude file. A missing prelude is not an
// error. Commands that fail are reported and skipped.
func (s *session) Load() error {
	if s.prelude == "" {
		return nil
	}

	f, err := os.Open(s.prelude)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()

	return s.Run(s.prelude, f, func(err error) {
		_ = s.printf("%s: %v\n", s.prelude, err)
	})
}

// Run runs the commands read from r. Lines are joined until they hold a
// complete command. Each failure is passed to report.
func (s *session) Run(label string, r io.Reader, report func(error)) error {
	saved := s.label
	s.label = label

	defer func() {
		s.label = saved
	}()

	scanner := bufio.NewScanner(r)

	pending := ""

	for scanner.Scan() {
		pending += scanner.Text() + "\n"

		err := s.Guarded(pending)
		if errors.Is(err, parser.ErrIncomplete) {
			continue
		}

		pending = ""

		if err != nil {
			report(err)
		}
	}

	if strings.TrimSpace(pending) != "" {
		report(parser.ErrIncomplete)
	}

	return scanner.Err()
}

func (s *session) bind(line string) (bool, error) {
	if name, rest, ok := binding(line, ":="); ok {
		t, err := reader.One(core.Expr, s.label, rest)
		if err != nil {
			return true, err
		}

		v, vt, err := s.engine.Define(name, t)
		if err != nil {
			return true, err
		}

		return true, s.printf("%s = %s : %s\n", name, literal.String(v), ty.String(vt))
	}

	if name, rest, ok := binding(line, "t="); ok {
		t, err := reader.One(core.Type, s.label, rest)
		if err != nil {
			return true, err
		}

		c, err := s.engine.DefineType(name, t)
		if err != nil {
			return true, err
		}

		return true, s.printf("%s t= %s\n", name, ty.String(c))
	}

	return false, nil
}

func (s *session) command(cmd, rest string) error {
	if cmd == ":e" {
		return s.evaluate(rest)
	}

	category := core.Expr
	if cmd == ":tt" {
		category = core.Type
	}

	t, err := reader.One(category, s.label, rest)
	if err != nil {
		return err
	}

	switch cmd {
	case ":p":
		return s.printf("%s\n", t.String())
	case ":t":
		vt, err := s.engine.Type(t)
		if err != nil {
			return err
		}

		return s.printf("%s\n", ty.String(vt))
	case ":tt":
		c, err := s.engine.Canonical(t)
		if err != nil {
			return err
		}

		return s.printf("%s\n", ty.String(c))
	}

	return fmt.Errorf("%w: unknown command %s", ErrUsage, cmd)
}

// evaluate runs each expression in text without checking types. More than
// one expression produces a sequence.
func (s *session) evaluate(text string) error {
	ts, err := reader.Read(core.Expr, s.label, text)
	if err != nil {
		return err
	}

	var v cell.I

	switch len(ts) {
	case 0:
		return fmt.Errorf("%w: :e EXPR ...", ErrUsage)
	case 1:
		v, err = s.engine.Evaluate(ts[0])
	default:
		v, err = s.engine.EvaluateAll(ts)
	}

	if err != nil {
		return err
	}

	return s.printf("%s\n", literal.String(v))
}

func (s *session) names(pattern string) error {
	ns, err := s.engine.Names(pattern)
	if err != nil {
		return err
	}

	for _, n := range ns {
		if err := s.printf("%s\n", n); err != nil {
			return err
		}
	}

	return nil
}

func (s *session) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(s.out, format, args...)

	return err
}

func (s *session) save(line string) error {
	ok, err := s.bind(line)
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("%w: :s NAME := EXPR or :s NAME t= TYPE", ErrUsage)
	}

	if s.prelude == "" {
		return nil
	}

	f, err := history.Private(func() (*os.File, error) {
		return os.OpenFile(s.prelude, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	})
	if err != nil {
		return err
	}

	_, err = io.WriteString(f, strings.ReplaceAll(line, "\n", " ")+"\n")
	if err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

// binding splits "NAME op REST". NAME must be a single symbol.
func binding(line, op string) (string, string, bool) {
	i := strings.Index(line, op)
	if i < 1 {
		return "", "", false
	}

	name := strings.TrimSpace(line[:i])
	if name == "" || strings.ContainsAny(name, " \t\n()\";") {
		return "", "", false
	}

	return name, line[i+len(op):], true
}

// split separates a colon command from its argument.
func split(line string) (string, string, bool) {
	for _, cmd := range []string{":e", ":p", ":tt", ":t"} {
		if line == cmd || strings.HasPrefix(line, cmd+" ") || strings.HasPrefix(line, cmd+"\n") {
			return cmd, line[len(cmd):], true
		}
	}

	return "", "", false
}
