package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the hexfsm ASCII banner to w.
// Colours follow the terminal profile and degrade to plain text when piped.
func PrintBanner(w io.Writer) {
	p := termenv.NewOutput(w).ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _              __", "#34d399"},
		{"| |__   _____ _/ _|___ _ __ ___", "#2dd4bf"},
		{"| '_ \\ / _ \\ \\/ / |_/ __| '_ ` _ \\", "#22d3ee"},
		{"| | | |  __/>  <|  _\\__ \\ | | | | |", "#38bdf8"},
		{"|_| |_|\\___/_/\\_\\_| |___/_| |_| |_|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
