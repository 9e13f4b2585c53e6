package tui

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

const (
	// DefaultTerminalWidth is used when the output is not a terminal.
	DefaultTerminalWidth = 80
	// MinTerminalWidth is the narrowest width reasons are wrapped to.
	MinTerminalWidth = 60
	// MaxTerminalWidth caps the width on very wide terminals.
	MaxTerminalWidth = 200
)

// TerminalWidth returns the rendering width for w. A positive COLUMNS
// environment variable wins over the detected size.
func TerminalWidth(w io.Writer) int {
	width := DefaultTerminalWidth
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		width = cols
	} else if f, ok := w.(*os.File); ok {
		if detected, _, err := term.GetSize(int(f.Fd())); err == nil && detected > 0 {
			width = detected
		}
	}

	return min(max(width, MinTerminalWidth), MaxTerminalWidth)
}

// IsWriterTerminal returns true if w is backed by a terminal file descriptor.
func IsWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
