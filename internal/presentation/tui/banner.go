package tui

import (
	"fmt"
	"io"
)

// PrintBanner outputs the fpgaflow banner with the given version.
func PrintBanner(w io.Writer, version string) {
	out := NewOutput(w)
	// Lattice-ish gradient (Teal/Green)
	lines := []struct {
		text, color string
	}{
		{"   __                   __ _               ", "#22d3ee"},
		{"  / _|_ __   __ _  __ _/ _| | _____      __", "#2dd4bf"},
		{" | |_| '_ \\ / _` |/ _` | |_| |/ _ \\ \\ /\\ / /", "#34d399"},
		{" |  _| |_) | (_| | (_| |  _| | (_) \\ V  V / ", "#4ade80"},
		{" |_| | .__/ \\__, |\\__,_|_| |_|\\___/ \\_/\\_/  ", "#a3e635"},
		{"     |_|    |___/                           ", "#facc15"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintf(w, "%s\n\n", out.String("  version "+version).Faint())
}
