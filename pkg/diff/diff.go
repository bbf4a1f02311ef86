// Package diff renders unified diffs between a source file and its
// formatted text.
package diff

import (
	"fmt"
	"strings"
)

// noNewline marks a last line without a line terminator.
const noNewline = "\\ No newline at end of file\n"

// Options shapes a unified diff.
type Options struct {
	// Context is the number of unchanged lines shown around each change.
	Context int
	// Section reports whether a line opens a section. The nearest such
	// line before a hunk is printed after the hunk header, the way
	// git shows function context.
	Section func(line string) bool
}

// Default has three lines of context and no section headings.
var Default = Options{Context: 3}

// Unified renders a diff with the default options. It returns an empty
// string when the texts are identical.
func Unified(name, oldText, newText string) string {
	return Default.Unified(name, oldText, newText)
}

// Unified renders the diff from oldText to newText under name.
func (o Options) Unified(name, oldText, newText string) string {
	if oldText == newText {
		return ""
	}
	a, b := splitLines(oldText), splitLines(newText)
	script := myers(a, b)
	hunks := o.hunks(script)
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", name, name)
	for _, h := range hunks {
		o.write(&sb, h, a, b)
	}
	return sb.String()
}

// splitLines splits text after each newline. The last line keeps no
// terminator when the text lacks one; empty text has no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type op uint8

const (
	opKeep op = iota
	opAdd
	opRemove
)

// edit is one step of an edit script. Indexes are -1 on the side the
// line is absent from.
type edit struct {
	op   op
	a, b int
}

// myers returns a shortest edit script from a to b.
func myers(a, b []string) []edit {
	n, m := len(a), len(b)
	total := n + m
	if total == 0 {
		return nil
	}
	// v[k+total] is the furthest x reached on diagonal k = x - y.
	v := make([]int, 2*total+1)
	var trace [][]int
	for d := 0; d <= total; d++ {
		trace = append(trace, append([]int(nil), v...))
		for k := -d; k <= d; k += 2 {
			var x int
			if down(v, k, d, total) {
				x = v[k+1+total]
			} else {
				x = v[k-1+total] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[k+total] = x
			if x >= n && y >= m {
				return walkBack(trace, n, m, d, total)
			}
		}
	}
	return nil
}

// down reports whether the path to diagonal k comes from k+1, an
// insertion, rather than from k-1, a deletion.
func down(v []int, k, d, total int) bool {
	return k == -d || (k != d && v[k-1+total] < v[k+1+total])
}

// walkBack rebuilds the script from the saved frontiers.
func walkBack(trace [][]int, n, m, d, total int) []edit {
	x, y := n, m
	var out []edit
	for step := d; step > 0; step-- {
		v := trace[step]
		k := x - y
		prevK := k - 1
		if down(v, k, step, total) {
			prevK = k + 1
		}
		prevX := v[prevK+total]
		prevY := prevX - prevK
		for x > prevX && y > prevY {
			x, y = x-1, y-1
			out = append(out, edit{opKeep, x, y})
		}
		if prevK == k+1 {
			y--
			out = append(out, edit{opAdd, -1, y})
		} else {
			x--
			out = append(out, edit{opRemove, x, -1})
		}
	}
	for x > 0 && y > 0 {
		x, y = x-1, y-1
		out = append(out, edit{opKeep, x, y})
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// hunk is a window of the edit script with its line ranges. Starts are
// 0-based indexes of the first line on each side.
type hunk struct {
	aStart, aCount int
	bStart, bCount int
	edits          []edit
}

// hunks groups changes whose context windows touch into hunks.
func (o Options) hunks(script []edit) []hunk {
	ctx := max(o.Context, 0)
	var spans [][2]int
	for i, e := range script {
		if e.op == opKeep {
			continue
		}
		if n := len(spans); n > 0 && i-spans[n-1][1] <= 2*ctx+1 {
			spans[n-1][1] = i
			continue
		}
		spans = append(spans, [2]int{i, i})
	}

	out := make([]hunk, 0, len(spans))
	for _, s := range spans {
		from := max(s[0]-ctx, 0)
		to := min(s[1]+ctx, len(script)-1)
		h := hunk{edits: script[from : to+1], aStart: -1, bStart: -1}
		for _, e := range h.edits {
			if e.a >= 0 {
				h.aCount++
				if h.aStart < 0 {
					h.aStart = e.a
				}
			}
			if e.b >= 0 {
				h.bCount++
				if h.bStart < 0 {
					h.bStart = e.b
				}
			}
		}
		h.aStart = startOf(h.aStart, script[:from], func(e edit) int { return e.a })
		h.bStart = startOf(h.bStart, script[:from], func(e edit) int { return e.b })
		out = append(out, h)
	}
	return out
}

// startOf fills in the start of a side the hunk has no lines on: the
// position after the last line of that side seen before the hunk.
func startOf(start int, before []edit, side func(edit) int) int {
	if start >= 0 {
		return start
	}
	for i := len(before) - 1; i >= 0; i-- {
		if j := side(before[i]); j >= 0 {
			return j + 1
		}
	}
	return 0
}

// rangeOf formats one side of a hunk header. An empty side names the
// line before it, so an empty file reads 0,0.
func rangeOf(start, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", start)
	}
	return fmt.Sprintf("%d,%d", start+1, count)
}

func (o Options) write(sb *strings.Builder, h hunk, a, b []string) {
	fmt.Fprintf(sb, "@@ -%s +%s @@", rangeOf(h.aStart, h.aCount), rangeOf(h.bStart, h.bCount))
	if heading := o.section(a, h.aStart); heading != "" {
		sb.WriteString(" " + heading)
	}
	sb.WriteByte('\n')
	for _, e := range h.edits {
		switch e.op {
		case opKeep:
			writeLine(sb, ' ', a[e.a])
		case opRemove:
			writeLine(sb, '-', a[e.a])
		case opAdd:
			writeLine(sb, '+', b[e.b])
		}
	}
}

// section finds the nearest line above index start that opens a section.
func (o Options) section(lines []string, start int) string {
	if o.Section == nil {
		return ""
	}
	for i := min(start, len(lines)) - 1; i >= 0; i-- {
		line := strings.TrimRight(lines[i], "\r\n")
		if o.Section(line) {
			return line
		}
	}
	return ""
}

func writeLine(sb *strings.Builder, mark byte, line string) {
	sb.WriteByte(mark)
	sb.WriteString(line)
	if !strings.HasSuffix(line, "\n") {
		sb.WriteString("\n" + noNewline)
	}
}
