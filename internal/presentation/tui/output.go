package tui

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// NewOutput returns a termenv output for w. Colours are only enabled when w is a terminal.
func NewOutput(w io.Writer) *termenv.Output {
	if IsTerminal(w) {
		return termenv.NewOutput(w)
	}
	return termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
