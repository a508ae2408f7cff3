package tui

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	colorAccepted = "#22c55e"
	colorRejected = "#ef4444"
	colorMuted    = "#94a3b8"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Accepted colours s green.
func Accepted(s string) string {
	return paint(s, colorAccepted)
}

// Rejected colours s red.
func Rejected(s string) string {
	return paint(s, colorRejected)
}

// Muted colours s grey.
func Muted(s string) string {
	return paint(s, colorMuted)
}

// Verdict colours s by outcome.
func Verdict(s string, accepted bool) string {
	if accepted {
		return Accepted(s)
	}
	return Rejected(s)
}

func paint(s, hex string) string {
	p := termenv.ColorProfile()
	return termenv.String(s).Foreground(p.Color(hex)).String()
}
