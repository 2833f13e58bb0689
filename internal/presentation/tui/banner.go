package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner with the version line.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _ __ ___   __ _ _ __(_) ___  _ __   ___| |_| |_ ___", "#34d399"},
		{"| '_ ` _ \\ / _` | '__| |/ _ \\| '_ \\ / _ \\ __| __/ _ \\", "#2dd4bf"},
		{"| | | | | | (_| | |  | | (_) | | | |  __/ |_| ||  __/", "#22d3ee"},
		{"|_| |_| |_|\\__,_|_|  |_|\\___/|_| |_|\\___|\\__|\\__\\___|", "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  "+version).Faint())
	fmt.Fprintln(w)
}
