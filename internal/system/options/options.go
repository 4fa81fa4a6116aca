// Released under an MIT license. See LICENSE.

// Package options parses kith's command line.
package options

import (
	"os"
	"path"
	"strconv"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
)

// Version is printed by -v.
const Version = "kith 0.1.0"

//nolint:gochecknoglobals
var (
	command     string
	depth       = walk.DefaultLimit
	history     string
	interactive bool
	prelude     string
	quiet       bool
	script      string
	usage       = `kith

Usage:
  kith [options] SCRIPT
  kith [options] -c COMMAND
  kith [options] [-i]
  kith -h
  kith -v

Arguments:
  SCRIPT     Path to a kith script. Each line is run as a session command.

Options:
  -c, --command=COMMAND  Run the specified session command.
  -i, --interactive      Invert interactive mode.
  -q, --quiet            Do not print the banner.
  --prelude=PATH         Prelude file. [default: $HOME/.kith_prelude]
  --history=PATH         History file. [default: $HOME/.kith_history]
  --depth=N              Deepest a walk may recurse.
  -h, --help             Display this help.
  -v, --version          Print kith version.

If kith's stdin is a TTY, and kith was invoked with no script or command,
interactive mode is enabled. Otherwise, it is disabled.
`
)

// Command returns the command passed with -c, if any.
func Command() string {
	return command
}

// Depth returns the walk depth limit.
func Depth() int {
	return depth
}

// History returns the path of the history file.
func History() string {
	return history
}

// Interactive returns true if kith should prompt for commands.
func Interactive() bool {
	return interactive
}

// Parse parses os.Args.
func Parse() {
	ParseArgs(os.Args[1:])
}

// ParseArgs parses argv as if it were kith's command line.
func ParseArgs(argv []string) {
	parser := &docopt.Parser{HelpHandler: docopt.PrintHelpAndExit}

	opts, err := parser.ParseArgs(usage, argv, Version)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	command, _ = opts.String("--command")
	script, _ = opts.String("SCRIPT")
	quiet, _ = opts.Bool("--quiet")

	history = expand(opts["--history"])
	prelude = expand(opts["--prelude"])

	depth = walk.DefaultLimit
	if s, _ := opts.String("--depth"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			println("kith: --depth must be a positive integer")
			os.Exit(1)
		}

		depth = n
	}

	interactive = script == "" && command == "" && isatty.IsTerminal(os.Stdin.Fd())

	invertInteractive, _ := opts.Bool("--interactive")
	interactive = interactive != invertInteractive
}

// Prelude returns the path of the prelude file.
func Prelude() string {
	return prelude
}

// Quiet returns true if the banner should not be printed.
func Quiet() bool {
	return quiet
}

// Script returns the path of the script to run, if any.
func Script() string {
	return script
}

// Terminal returns true if stdout is a terminal.
func Terminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func expand(v interface{}) string {
	s, _ := v.(string)
	if s == "" {
		return ""
	}

	const home = "$HOME/"
	if len(s) > len(home) && s[:len(home)] == home {
		return path.Join(os.Getenv("HOME"), s[len(home):])
	}

	return s
}
