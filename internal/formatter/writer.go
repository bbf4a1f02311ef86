// Package formatter provides the rule model and the engine that applies
// rules to F# syntax trees.
package formatter

import (
	"strings"
	"unicode/utf8"
)

// writer accumulates formatted output and tracks the current column.
//
// Whitespace is buffered until the next token so that lines never end in
// spaces and the output never starts with blank lines.
type writer struct {
	b       strings.Builder
	nl      string
	col     int
	pending int // Buffered spaces.
	breaks  int // Buffered line breaks.
	started bool
}

func newWriter(nl string) *writer {
	return &writer{nl: nl}
}

// newlines ends the current line and adds n-1 blank lines.
func (w *writer) newlines(n int) {
	if !w.started {
		return
	}
	w.breaks = max(w.breaks, n)
	w.pending = 0
	w.col = 0
}

// indent moves to col on a fresh line.
func (w *writer) indent(col int) {
	w.pending = col
	w.col = col
}

func (w *writer) space() {
	w.pending++
	w.col++
}

// text writes a token verbatim. A token spanning lines moves the column
// to the width of its last line.
func (w *writer) text(s string) {
	if s == "" {
		return
	}
	for ; w.breaks > 0; w.breaks-- {
		w.b.WriteString(w.nl)
	}
	w.b.WriteString(strings.Repeat(" ", w.pending))
	w.pending = 0
	w.b.WriteString(s)
	w.started = true
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		w.col = utf8.RuneCountInString(s[i+1:])
	} else {
		w.col += utf8.RuneCountInString(s)
	}
}

// finish returns the output, ending it with one line break when final is
// set.
func (w *writer) finish(final bool) string {
	if !w.started {
		return ""
	}
	if final {
		w.b.WriteString(w.nl)
	}
	return w.b.String()
}
