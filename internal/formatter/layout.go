package formatter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/donaldgifford/fsfmt/internal/settings"
	"github.com/donaldgifford/fsfmt/internal/syntax"
)

// token is a non-whitespace leaf with the whitespace that preceded it in
// the source.
type token struct {
	node      *syntax.Node
	line, col int  // Source position; line is 1-based, col 0-based.
	newlines  int  // Line breaks in the gap before the token.
	spaced    bool // The gap before the token was not empty.
}

// scan lists the tokens of root, comments included, in document order.
func scan(root *syntax.Node) ([]token, map[*syntax.Node]int) {
	var toks []token
	index := make(map[*syntax.Node]int)
	line, col := 1, 0
	newlines, spaced := 0, false
	syntax.Walk(root, func(n *syntax.Node) bool {
		if !n.IsLeaf() {
			return true
		}
		if n.IsWhitespace() {
			spaced = true
		} else {
			index[n] = len(toks)
			toks = append(toks, token{node: n, line: line, col: col, newlines: newlines, spaced: spaced})
			newlines, spaced = 0, false
		}
		if k := strings.Count(n.Text, "\n"); k > 0 {
			line += k
			if n.IsWhitespace() {
				newlines += k
			}
			col = utf8.RuneCountInString(n.Text[strings.LastIndexByte(n.Text, '\n')+1:])
		} else {
			col += n.Width()
		}
		return true
	})
	return toks, index
}

// plan is the whitespace chosen for the gap before a token.
type plan struct {
	newlines int
	space    bool
	cond     bool // Break only if the owner does not fit on one line.
}

// planInterval turns the merged interval directive of a boundary and the
// source whitespace into a plan.
func planInterval(d IntervalFormatType, t token, maxNewlines int) plan {
	var pl plan
	switch {
	case d.Has(IntervalOnlyEmpty), d.Has(IntervalOnlySpace):
	case d.Has(IntervalNewLine):
		pl.newlines = max(t.newlines, 1)
	case d.Has(IntervalDoNotRemoveUserNewLines) && t.newlines > 0:
		pl.newlines = t.newlines
	case d.Has(IntervalRemoveUserNewLines):
		pl.cond = d.Has(IntervalInsertNewLineConditionally)
	default:
		pl.newlines = t.newlines
	}
	pl.newlines = min(pl.newlines, maxNewlines)
	switch {
	case d.Has(IntervalOnlyEmpty):
		pl.space = false
	case d.Has(IntervalOnlySpace), d.Has(IntervalSpace):
		pl.space = true
	case d.Has(IntervalEmpty):
		pl.space = false
	default:
		pl.space = t.spaced
	}
	return pl
}

// layout places the tokens of one pass.
type layout struct {
	p     *pass
	plans []plan

	indentSize  int
	maxLine     int
	finalNL     bool
	newline     string
	cols        []int // Output column of each placed token.
	lineIndents []int // Output column of the first token on each token's line.
}

func (p *pass) layout() *layout {
	s := p.ctx.Settings
	l := &layout{
		p:           p,
		plans:       make([]plan, len(p.tokens)),
		indentSize:  s.Int(settings.IndentSize),
		maxLine:     s.Int(settings.MaxLineLength),
		finalNL:     s.Bool(settings.InsertFinalNewline),
		newline:     lineEnding(p.ctx.Root),
		cols:        make([]int, len(p.tokens)),
		lineIndents: make([]int, len(p.tokens)),
	}
	maxNewlines := s.Int(settings.KeepBlankLines) + 1
	for i := 1; i < len(p.tokens); i++ {
		pl := planInterval(p.bounds[i].interval, p.tokens[i], maxNewlines)
		prev := p.tokens[i-1].node
		if prev.Type == syntax.TypeLineComment && pl.newlines == 0 {
			pl.newlines, pl.cond = 1, false
		}
		if pl.newlines == 0 && !pl.space && !pl.cond && needsSeparator(prev.Text, p.tokens[i].node.Text) {
			pl.space = true
		}
		l.plans[i] = pl
	}
	return l
}

func lineEnding(root *syntax.Node) string {
	nl, found := "\n", false
	syntax.Walk(root, func(n *syntax.Node) bool {
		if found {
			return false
		}
		if n.Type == syntax.TypeNewLine {
			nl, found = n.Text, true
			return false
		}
		return true
	})
	return nl
}

// needsSeparator reports whether joining a and b would merge them into a
// different token.
func needsSeparator(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	x, _ := utf8.DecodeLastRuneInString(a)
	y, _ := utf8.DecodeRuneInString(b)
	switch {
	case isWordRune(x) && isWordRune(y):
		return true
	case isOpRune(x) && isOpRune(y):
		return true
	case x == '(' && y == '*':
		return true
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || r == '\'' || r == '`' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isOpRune(r rune) bool {
	return strings.ContainsRune("!%&*+-./<=>?@^|~:$", r)
}

func (l *layout) render() string {
	toks := l.p.tokens
	if len(toks) == 0 {
		return ""
	}
	w := newWriter(l.newline)
	for i, t := range toks {
		if i > 0 {
			pl := l.plans[i]
			if pl.cond && l.breaksConditionally(i, w.col) {
				pl.newlines = 1
			}
			if pl.newlines > 0 {
				w.newlines(pl.newlines)
				c := l.column(i)
				w.indent(c)
				l.lineIndents[i] = c
			} else {
				if pl.space {
					w.space()
				}
				l.lineIndents[i] = l.lineIndents[i-1]
			}
		}
		l.cols[i] = w.col
		w.text(t.node.Text)
	}
	return w.finish(l.finalNL)
}

// breaksConditionally decides a conditional line break before token i,
// where col is the current output column. The break happens when the
// owner wraps with Chop and the rest of it spans lines or would not fit
// within the maximum line length.
func (l *layout) breaksConditionally(i, col int) bool {
	owner := l.p.bounds[i].site.Parent
	wrap := l.p.wraps[owner]
	if !wrap.Has(WrapChop) {
		return false
	}
	first := l.p.index[syntax.FirstToken(owner)]
	last := l.p.index[syntax.LastToken(owner)]
	from := first + 1
	if wrap.Has(WrapPseudoStartBeforeExternal) {
		from = i + 1
	}
	for j := from; j <= last; j++ {
		if j != i && l.plans[j].newlines > 0 {
			return true
		}
	}
	width := col
	for j := i; j <= last; j++ {
		text := l.p.tokens[j].node.Text
		if strings.Contains(text, "\n") {
			return true
		}
		if j == i || l.plans[j].space {
			width++
		}
		width += utf8.RuneCountInString(text)
	}
	return width > l.maxLine
}

// column computes the output column of token i, which starts a line.
func (l *layout) column(i int) int {
	if c, ok := l.fromRegions(i); ok {
		return max(l.offside(i, c, false), 0)
	}
	return max(l.offside(i, l.relative(i), true), 0)
}

// fromRegions looks for the innermost indentation region that decides
// the column of token i.
func (l *layout) fromRegions(i int) (int, bool) {
	t := l.p.tokens[i].node
	for x := t; x.Parent != nil; x = x.Parent {
		for _, r := range l.p.regionsAt(x) {
			if c, ok := l.apply(r, x, t); ok {
				return c, true
			}
		}
	}
	return 0, false
}

// apply returns the column region r gives token t, reached through x, a
// child of the region's parent. A region decides the first token of its
// anchor through External and Outdent; AlignThrough and Continuous
// decide later lines.
func (l *layout) apply(r region, x, t *syntax.Node) (int, bool) {
	anchor := x.Parent.Children[r.from]
	f := syntax.FirstToken(anchor)
	if t == f {
		if r.indent.Has(IndentOutdent) {
			if prev := anchor.PrevMeaningfulSibling(); prev != nil {
				return l.col(syntax.FirstToken(prev)) - t.Width() - 1, true
			}
		}
		// A node its parent starts with sits on the parent's own line.
		if (r.indent.Has(IndentExternal) || r.indent.Has(IndentOutdent)) && syntax.FirstToken(anchor.Parent) != t {
			return l.lineIndentOf(anchor.Parent) + l.indentSize, true
		}
		return 0, false
	}
	if r.indent.Has(IndentAlignThrough) && l.startsAlignedChild(r, x, t) {
		return l.col(f), true
	}
	if r.indent.Has(IndentContinuous) {
		return l.lineIndents[l.p.index[f]] + l.indentSize, true
	}
	return 0, false
}

// startsAlignedChild reports whether t is the first token of a node
// region r aligns: a later sibling of a range, or a child of a single
// anchor.
func (l *layout) startsAlignedChild(r region, x, t *syntax.Node) bool {
	if r.from != r.to {
		return x.Index() != r.from && syntax.FirstToken(x) == t
	}
	c := syntax.ChildContaining(x, t)
	return c != nil && syntax.FirstToken(c) == t
}

// lineIndentOf returns the output indent of the line n starts on.
func (l *layout) lineIndentOf(n *syntax.Node) int {
	if f := syntax.FirstToken(n); f != nil {
		return l.lineIndents[l.p.index[f]]
	}
	return 0
}

// relative keeps token i where it was relative to the first token of the
// smallest node around it that it does not start.
func (l *layout) relative(i int) int {
	t := l.p.tokens[i]
	for a := t.node.Parent; a != nil; a = a.Parent {
		f := syntax.FirstToken(a)
		if f == nil || f == t.node {
			continue
		}
		j := l.p.index[f]
		return l.cols[j] + t.col - l.p.tokens[j].col
	}
	return 0
}

// offside adjusts col so token i keeps its relation to the start of every
// indentation context around it: lines that were right of a context
// start stay right of it and, when pin is set, lines aligned with it stay
// aligned. Closers are free and infix operators may undent by their width
// plus one.
func (l *layout) offside(i, col int, pin bool) int {
	t := l.p.tokens[i]
	tables := l.p.ctx.Tables
	if tables.Closers.Has(t.node.Type) {
		return col
	}
	var chain []*syntax.Node
	for a := t.node.Parent; a != nil; a = a.Parent {
		if a.Offside {
			chain = append(chain, a)
		}
	}
	for k := len(chain) - 1; k >= 0; k-- {
		s := syntax.FirstToken(chain[k])
		if s == nil || s == t.node {
			continue
		}
		j := l.p.index[s]
		start := l.cols[j]
		switch d := t.col - l.p.tokens[j].col; {
		case tables.isInfix(t.node):
			col = max(col, start-t.node.Width()-1)
		case d > 0:
			col = max(col, start+1)
		case d == 0 && pin:
			col = start
		}
	}
	return col
}

func (l *layout) col(tok *syntax.Node) int {
	return l.cols[l.p.index[tok]]
}
