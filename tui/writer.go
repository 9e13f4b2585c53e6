package tui

import (
	"fmt"
	"io"
)

// tableWriter remembers the first write error and turns every later
// write into a no-op, so renderers check the error once at the end.
type tableWriter struct {
	w   io.Writer
	err error
}

func (tw *tableWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

func (tw *tableWriter) println(args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintln(tw.w, args...)
}

// heading writes an already styled section title on its own line.
func (tw *tableWriter) heading(title string) {
	tw.printf("%s\n", title)
}

// Err returns the first write error, or nil.
func (tw *tableWriter) Err() error {
	return tw.err
}
