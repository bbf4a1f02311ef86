package formatter

import (
	"slices"

	"github.com/donaldgifford/fsfmt/internal/settings"
	"github.com/donaldgifford/fsfmt/internal/syntax"
)

// Tables holds the language lookup tables rule predicates and the layout
// consult. They are passed through Context rather than captured by
// closures.
type Tables struct {
	// AccessModifiers are the tokens that restrict a declaration.
	AccessModifiers syntax.TypeSet
	// PipeOperators are operator names that are never outdented when
	// the settings say so.
	PipeOperators []string
	// Closers are tokens that may start a line at any column.
	Closers syntax.TypeSet
	// Infix reports whether a token is an infix operator, which may be
	// undented by its width plus one.
	Infix func(tok *syntax.Node) bool
}

// IsPipeOperator reports whether name is one of the pipe operators.
func (t Tables) IsPipeOperator(name string) bool {
	return slices.Contains(t.PipeOperators, name)
}

func (t Tables) isInfix(tok *syntax.Node) bool {
	return t.Infix != nil && t.Infix(tok)
}

// Context is what a predicate sees during one formatting pass. It is
// owned by the pass and discarded afterwards.
type Context struct {
	Tables
	Settings *settings.Snapshot
	Root     *syntax.Node
}

// Site is the place a pattern is tested against. Node sites set Node to
// the node under test and Left/Right to its meaningful siblings.
// Boundary sites leave Node nil; Parent is the lowest common ancestor of
// two adjacent tokens and Left/Right are the children of Parent holding
// them.
type Site struct {
	Node   *syntax.Node
	Parent *syntax.Node
	Left   *syntax.Node
	Right  *syntax.Node
}

// NodeSite returns the site of n.
func NodeSite(n *syntax.Node) Site {
	return Site{
		Node:   n,
		Parent: n.Parent,
		Left:   n.PrevMeaningfulSibling(),
		Right:  n.NextMeaningfulSibling(),
	}
}

// BoundarySite returns the site between two tokens, left before right.
func BoundarySite(left, right *syntax.Node) Site {
	parent := syntax.CommonAncestor(left, right)
	return Site{
		Parent: parent,
		Left:   syntax.ChildContaining(parent, left),
		Right:  syntax.ChildContaining(parent, right),
	}
}

// IsBoundary reports whether s sits between two tokens.
func (s Site) IsBoundary() bool { return s.Node == nil }
