package formatter

import "strings"

// IndentType is a set of indentation facets. The zero value is IndentNone.
type IndentType uint8

const (
	// IndentExternal indents the first line of a node relative to the
	// line its parent starts on.
	IndentExternal IndentType = 1 << iota
	// IndentOutdent places an operator left of its operand by its own
	// width plus one.
	IndentOutdent
	// IndentAlignThrough aligns the children of a node, or the siblings
	// of a range, with its first token.
	IndentAlignThrough
	// IndentContinuous indents every continuation line of a node.
	IndentContinuous

	IndentNone IndentType = 0
)

var indentNames = []string{"External", "Outdent", "AlignThrough", "Continuous"}

// Has reports whether every facet of f is set in t.
func (t IndentType) Has(f IndentType) bool { return f != 0 && t&f == f }

func (t IndentType) String() string {
	if t == IndentNone {
		return "None"
	}
	return facetString(uint16(t), indentNames)
}

// IntervalFormatType is a set of facets describing the whitespace between
// two adjacent tokens.
type IntervalFormatType uint16

const (
	// IntervalSpace asks for one space when the tokens share a line.
	IntervalSpace IntervalFormatType = 1 << iota
	// IntervalEmpty asks for no space when the tokens share a line.
	IntervalEmpty
	// IntervalNewLine forces at least one line break.
	IntervalNewLine
	// IntervalOnlySpace forces exactly one space, removing line breaks.
	IntervalOnlySpace
	// IntervalOnlyEmpty removes all whitespace.
	IntervalOnlyEmpty
	// IntervalRemoveUserNewLines joins the tokens onto one line.
	IntervalRemoveUserNewLines
	// IntervalDoNotRemoveUserNewLines keeps the line breaks of the source.
	IntervalDoNotRemoveUserNewLines
	// IntervalInsertNewLineConditionally breaks the line when the owner
	// wraps and does not fit on one line.
	IntervalInsertNewLineConditionally
)

var intervalNames = []string{
	"Space", "Empty", "NewLine", "OnlySpace", "OnlyEmpty",
	"RemoveUserNewLines", "DoNotRemoveUserNewLines", "InsertNewLineConditionally",
}

// Has reports whether every facet of f is set in t.
func (t IntervalFormatType) Has(f IntervalFormatType) bool { return f != 0 && t&f == f }

func (t IntervalFormatType) String() string {
	if t == 0 {
		return "None"
	}
	return facetString(uint16(t), intervalNames)
}

// WrapType is a set of wrapping facets for a node.
type WrapType uint8

const (
	// WrapChop lets conditional line breaks inside the node fire.
	WrapChop WrapType = 1 << iota
	// WrapPseudoStartBeforeExternal measures the node from the start of
	// its externally indented part.
	WrapPseudoStartBeforeExternal
)

var wrapNames = []string{"Chop", "PseudoStartBeforeExternal"}

// Has reports whether every facet of f is set in t.
func (t WrapType) Has(f WrapType) bool { return f != 0 && t&f == f }

func (t WrapType) String() string {
	if t == 0 {
		return "None"
	}
	return facetString(uint16(t), wrapNames)
}

func facetString(bits uint16, names []string) string {
	var parts []string
	for i, name := range names {
		if bits&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Directive is the formatting instruction resolved for a node or a
// boundary between two tokens.
type Directive struct {
	Indent   IndentType
	Interval IntervalFormatType
	Wrap     WrapType
}

// NoDirective is the empty directive.
var NoDirective Directive

// Indent returns a directive holding only indentation facets.
func Indent(t IndentType) Directive { return Directive{Indent: t} }

// Interval returns a directive holding only whitespace facets.
func Interval(t IntervalFormatType) Directive { return Directive{Interval: t} }

// Wrap returns a directive holding only wrapping facets.
func Wrap(t WrapType) Directive { return Directive{Wrap: t} }

// Merge returns the facet union of d and o.
func (d Directive) Merge(o Directive) Directive {
	return Directive{
		Indent:   d.Indent | o.Indent,
		Interval: d.Interval | o.Interval,
		Wrap:     d.Wrap | o.Wrap,
	}
}

// IsZero reports whether d sets no facet.
func (d Directive) IsZero() bool { return d == NoDirective }

func (d Directive) String() string {
	var parts []string
	if d.Indent != 0 {
		parts = append(parts, "indent="+d.Indent.String())
	}
	if d.Interval != 0 {
		parts = append(parts, "interval="+d.Interval.String())
	}
	if d.Wrap != 0 {
		parts = append(parts, "wrap="+d.Wrap.String())
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
