// Package term decides whether the CLI should colorize its output, the
// way the teacher pack's cmd/funxy REPL checks the terminal before
// enabling prompt coloring — generalized here with go-isatty instead
// of a hand-rolled fd check.
package term

import (
	"os"

	"github.com/mattn/go-isatty"
)

// ColorEnabled reports whether f (assumed to be a *os.File such as
// os.Stdout/os.Stderr) is an interactive terminal and NO_COLOR isn't
// set, the two conditions the CLI's diagnostic printer consults before
// emitting ANSI escapes.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
