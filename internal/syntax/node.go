package syntax

import (
	"strings"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) in the source text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Node is a node of the lossless syntax tree. Leaves carry the exact source
// text, including whitespace and comment trivia, so concatenating the leaves
// of the root reproduces the input.
//
// Trees are built bottom-up with NewToken/NewComposite (or by the parser)
// and then sealed with Finish, which fills in parent links, sibling indexes
// and spans. A finished tree must not be mutated.
type Node struct {
	Type     NodeType
	Role     Role
	Text     string // Leaves only.
	Span     Span
	Parent   *Node
	Children []*Node

	// Offside marks a node whose first token opens an indentation
	// context: lines inside the node must not start left of that token,
	// apart from the undentation the language allows.
	Offside bool

	index    int // Position in Parent.Children.
	prevMean int // Index of the previous meaningful sibling, -1 if none.
	nextMean int // Index of the next meaningful sibling, -1 if none.
}

// NewToken returns a leaf node.
func NewToken(t NodeType, text string) *Node {
	return &Node{Type: t, Text: text}
}

// NewComposite returns an interior node owning children.
func NewComposite(t NodeType, children ...*Node) *Node {
	return &Node{Type: t, Children: children}
}

// As sets the node's role and returns the node, for use in tree literals.
func (n *Node) As(role Role) *Node {
	n.Role = role
	return n
}

// Append adds children to an unfinished node.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Finish seals the tree rooted at root: it links parents, records sibling
// positions, precomputes meaningful-sibling links and assigns spans. It
// returns root.
func Finish(root *Node) *Node {
	root.Parent = nil
	root.index = 0
	root.prevMean, root.nextMean = -1, -1
	finish(root, 0)
	return root
}

func finish(n *Node, offset int) int {
	n.Span.Start = offset
	if len(n.Children) == 0 {
		n.Span.End = offset + len(n.Text)
		return n.Span.End
	}

	last := -1
	for i, c := range n.Children {
		c.Parent = n
		c.index = i
		c.prevMean = last
		c.nextMean = -1
		if !c.IsTrivia() {
			if last >= 0 {
				n.Children[last].nextMean = i
			}
			last = i
		}
		offset = finish(c, offset)
	}
	// Trivia children point forward to the next meaningful sibling as well.
	next := -1
	for i := len(n.Children) - 1; i >= 0; i-- {
		c := n.Children[i]
		if c.IsTrivia() {
			c.nextMean = next
			continue
		}
		next = i
	}

	n.Span.End = offset
	return offset
}

// IsLeaf reports whether the node is a token.
func (n *Node) IsLeaf() bool {
	return n.Type.IsToken()
}

// IsTrivia reports whether the node is a whitespace, line break or comment
// token.
func (n *Node) IsTrivia() bool {
	return n.Type.IsTrivia()
}

// IsWhitespace reports whether the node is a whitespace or line break token.
func (n *Node) IsWhitespace() bool {
	return n.Type.IsWhitespace()
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// PrevSibling returns the previous sibling, trivia included.
func (n *Node) PrevSibling() *Node {
	if n == nil || n.Parent == nil || n.index == 0 {
		return nil
	}
	return n.Parent.Children[n.index-1]
}

// NextSibling returns the next sibling, trivia included.
func (n *Node) NextSibling() *Node {
	if n == nil || n.Parent == nil || n.index+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[n.index+1]
}

// PrevMeaningfulSibling returns the nearest previous sibling that is not
// trivia, or nil.
func (n *Node) PrevMeaningfulSibling() *Node {
	if n == nil || n.Parent == nil || n.prevMean < 0 {
		return nil
	}
	return n.Parent.Children[n.prevMean]
}

// NextMeaningfulSibling returns the nearest next sibling that is not
// trivia, or nil.
func (n *Node) NextMeaningfulSibling() *Node {
	if n == nil || n.Parent == nil || n.nextMean < 0 {
		return nil
	}
	return n.Parent.Children[n.nextMean]
}

// Index returns the node's position among its parent's children.
func (n *Node) Index() int {
	return n.index
}

// ChildByRole returns the first child holding role, or nil.
func (n *Node) ChildByRole(role Role) *Node {
	for _, c := range n.Children {
		if c.Role == role {
			return c
		}
	}
	return nil
}

// ChildOfType returns the first child of type t, or nil.
func (n *Node) ChildOfType(t NodeType) *Node {
	for _, c := range n.Children {
		if c.Type == t {
			return c
		}
	}
	return nil
}

// TokenType returns the node's type when it is a leaf and TypeInvalid
// otherwise. It is nil-safe.
func (n *Node) TokenType() NodeType {
	if n == nil || !n.IsLeaf() {
		return TypeInvalid
	}
	return n.Type
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// Width returns the display width of a leaf's text in runes.
func (n *Node) Width() int {
	return utf8.RuneCountInString(n.Text)
}

// String returns the source text covered by the node.
func (n *Node) String() string {
	if n.IsLeaf() {
		return n.Text
	}
	var b strings.Builder
	writeText(&b, n)
	return b.String()
}

func writeText(b *strings.Builder, n *Node) {
	if len(n.Children) == 0 {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		writeText(b, c)
	}
}
