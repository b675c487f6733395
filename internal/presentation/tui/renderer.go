package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Output that is not a terminal gets the plain "notty" style.
func NewRenderer(terminal bool) func(string) (string, error) {
	opt := glamour.WithStandardStyle("notty")
	if terminal {
		opt = glamour.WithAutoStyle() // Automatically detect light/dark background
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(100))

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, nil
		}
		return r.Render(markdown)
	}
}
