package syntax

import (
	"strings"
	"unicode/utf8"
)

// Walk calls fn for n and every descendant in document order. Returning
// false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Find returns every node of type t under root, root included, in document
// order.
func Find(root *Node, t NodeType) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.Type == t {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Tokens returns the leaves of n that are not whitespace, in document
// order. Comments are included.
func Tokens(n *Node) []*Node {
	var out []*Node
	Walk(n, func(c *Node) bool {
		if c.IsLeaf() && !c.IsWhitespace() {
			out = append(out, c)
		}
		return true
	})
	return out
}

// FirstToken returns the first non-whitespace leaf of n, or nil when n
// holds only whitespace.
func FirstToken(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		if n.IsWhitespace() {
			return nil
		}
		return n
	}
	for _, c := range n.Children {
		if t := FirstToken(c); t != nil {
			return t
		}
	}
	return nil
}

// LastToken returns the last non-whitespace leaf of n, or nil.
func LastToken(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		if n.IsWhitespace() {
			return nil
		}
		return n
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if t := LastToken(n.Children[i]); t != nil {
			return t
		}
	}
	return nil
}

// PrevLeaf returns the leaf immediately before n in document order.
func PrevLeaf(n *Node) *Node {
	for p := n; p != nil; p = p.Parent {
		if s := p.PrevSibling(); s != nil {
			for !s.IsLeaf() && len(s.Children) > 0 {
				s = s.LastChild()
			}
			if s.IsLeaf() {
				return s
			}
			// An empty composite; keep looking before it.
			return PrevLeaf(s)
		}
	}
	return nil
}

// NextLeaf returns the leaf immediately after n in document order.
func NextLeaf(n *Node) *Node {
	for p := n; p != nil; p = p.Parent {
		if s := p.NextSibling(); s != nil {
			for !s.IsLeaf() && len(s.Children) > 0 {
				s = s.FirstChild()
			}
			if s.IsLeaf() {
				return s
			}
			return NextLeaf(s)
		}
	}
	return nil
}

// ContainsLineBreak reports whether the source text of n spans more than
// one line.
func ContainsLineBreak(n *Node) bool {
	found := false
	Walk(n, func(c *Node) bool {
		if found {
			return false
		}
		if c.IsLeaf() && strings.Contains(c.Text, "\n") {
			found = true
		}
		return !found
	})
	return found
}

// IsFirstOnLine reports whether n's first token is preceded only by
// whitespace on its line.
func IsFirstOnLine(n *Node) bool {
	first := FirstToken(n)
	if first == nil {
		return false
	}
	for p := PrevLeaf(first); p != nil; p = PrevLeaf(p) {
		if strings.Contains(p.Text, "\n") {
			return p.IsWhitespace() || strings.HasSuffix(p.Text, "\n")
		}
		if !p.IsWhitespace() {
			return false
		}
	}
	return true
}

// Column returns the zero-based column, in runes, at which leaf starts in
// the source text.
func Column(leaf *Node) int {
	col := 0
	for p := PrevLeaf(leaf); p != nil; p = PrevLeaf(p) {
		if i := strings.LastIndexByte(p.Text, '\n'); i >= 0 {
			return col + utf8.RuneCountInString(p.Text[i+1:])
		}
		col += p.Width()
	}
	return col
}

// LineIndent returns the column of the first token on the line where n
// starts.
func LineIndent(n *Node) int {
	first := FirstToken(n)
	if first == nil {
		return 0
	}
	lineStart := first
	for p := PrevLeaf(first); p != nil; p = PrevLeaf(p) {
		if strings.Contains(p.Text, "\n") {
			break
		}
		if !p.IsWhitespace() {
			lineStart = p
		}
	}
	return Column(lineStart)
}

// IsFirstOfType reports whether no earlier sibling of n has n's type.
func IsFirstOfType(n *Node) bool {
	if n == nil || n.Parent == nil {
		return n != nil
	}
	for _, s := range n.Parent.Children[:n.index] {
		if s.Type == n.Type {
			return false
		}
	}
	return true
}

// IsLastOfType reports whether no later sibling of n has n's type.
func IsLastOfType(n *Node) bool {
	if n == nil || n.Parent == nil {
		return n != nil
	}
	for _, s := range n.Parent.Children[n.index+1:] {
		if s.Type == n.Type {
			return false
		}
	}
	return true
}

// HasAncestor reports whether a proper ancestor of n has a type in set.
func HasAncestor(n *Node, set TypeSet) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if set.Has(p.Type) {
			return true
		}
	}
	return false
}

// CommonAncestor returns the lowest node containing both a and b.
func CommonAncestor(a, b *Node) *Node {
	depth := func(n *Node) int {
		d := 0
		for p := n; p.Parent != nil; p = p.Parent {
			d++
		}
		return d
	}
	da, db := depth(a), depth(b)
	for da > db {
		a, da = a.Parent, da-1
	}
	for db > da {
		b, db = b.Parent, db-1
	}
	for a != b {
		a, b = a.Parent, b.Parent
	}
	return a
}

// ChildContaining returns the child of parent that contains n, or nil when
// n is not a proper descendant of parent.
func ChildContaining(parent, n *Node) *Node {
	for p := n; p != nil; p = p.Parent {
		if p.Parent == parent {
			return p
		}
	}
	return nil
}
