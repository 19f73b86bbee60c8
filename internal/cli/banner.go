package cli

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the menuflow ASCII banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []termenv.Style{
		termenv.String("                            __ _               ").Foreground(p.Color("#34d399")),
		termenv.String("  _ __ ___   ___ _ __  _   _/ _| | _____      __").Foreground(p.Color("#2dd4bf")),
		termenv.String(" | '_ ` _ \\ / _ \\ '_ \\| | | | |_| |/ _ \\ \\ /\\ / /").Foreground(p.Color("#22d3ee")),
		termenv.String(" | | | | | |  __/ | | | |_| |  _| | (_) \\ V  V / ").Foreground(p.Color("#38bdf8")),
		termenv.String(" |_| |_| |_|\\___|_| |_|\\__,_|_| |_|\\___/ \\_/\\_/  ").Foreground(p.Color("#60a5fa")),
	}

	fmt.Fprintln(w)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}
