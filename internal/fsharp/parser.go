// Package fsharp parses F# source into the lossless syntax tree used by
// the formatter. It covers the declaration and expression forms the rule
// set knows about; it is not a full F# front end.
package fsharp

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/donaldgifford/fsfmt/internal/syntax"
)

// tokEOF is returned by peek at the end of input and for tokens hidden by
// the offside rule.
const tokEOF = syntax.TypeInvalid

// maxDepth bounds recursion on pathological input.
const maxDepth = 500

// Parse builds a syntax tree for src. On failure the error is an
// ErrorList.
func Parse(src string) (*syntax.Node, error) {
	toks, err := Lex(src)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			return nil, ErrorList{pe}
		}
		return nil, err
	}
	return newParser(toks).parseFile()
}

// offside is one entry of the context stack. A token that starts a line
// left of col ends the construct, unless it is an infix operator or a
// continuation keyword that stays right of undent.
type offside struct {
	col    int
	undent int
	start  int // Index of the token that opened the context.
}

type bailout struct{}

type parser struct {
	toks []Token

	// Per meaningful token.
	mean       []int // Index into toks.
	cols       []int
	lineStart  []bool
	lineIndent []int

	i     int // Current meaningful token.
	raw   int // Next token in toks not yet added to the tree.
	stack []*syntax.Node
	ctx   []offside
	depth int
	errs  ErrorList
}

func newParser(toks []Token) *parser {
	p := &parser{toks: toks}
	line, indent := 0, 0
	for i, t := range toks {
		if t.Type.IsTrivia() {
			continue
		}
		first := t.Pos.Line != line
		if first {
			line = t.Pos.Line
			indent = t.Pos.Column
		}
		p.mean = append(p.mean, i)
		p.cols = append(p.cols, t.Pos.Column)
		p.lineStart = append(p.lineStart, first)
		p.lineIndent = append(p.lineIndent, indent)
	}
	return p
}

func (p *parser) parseFile() (root *syntax.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			root, err = nil, p.errs.Err()
		}
	}()

	root = syntax.NewComposite(syntax.TypeFile)
	p.stack = []*syntax.Node{root}

	switch {
	case p.i >= len(p.mean):
	case p.peek() == syntax.TypeNamespace:
		for p.peek() == syntax.TypeNamespace {
			p.namespaceDecl()
		}
	case p.peek() == syntax.TypeModule && p.isNamedModule():
		p.namedModuleDecl()
	default:
		p.moduleMembers(syntax.RoleModuleMember)
	}
	if p.i < len(p.mean) {
		p.fail("unexpected %s", p.describe())
	}
	for ; p.raw < len(p.toks); p.raw++ {
		root.Append(p.leaf(p.raw))
	}
	return syntax.Finish(root), nil
}

// Token access.

func (p *parser) fail(format string, args ...any) {
	p.errs.Add(p.pos(), fmt.Sprintf(format, args...))
	panic(bailout{})
}

func (p *parser) pos() Position {
	if p.i < len(p.mean) {
		return p.toks[p.mean[p.i]].Pos
	}
	if len(p.toks) == 0 {
		return Position{Line: 1, Column: 1}
	}
	last := p.toks[len(p.toks)-1]
	pos := last.Pos
	for _, r := range last.Text {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
			continue
		}
		pos.Column++
	}
	pos.Offset += len(last.Text)
	return pos
}

func (p *parser) describe() string {
	if p.i >= len(p.mean) {
		return "end of input"
	}
	t := p.cur()
	if p.blocked() {
		return fmt.Sprintf("%q (offside)", t.Text)
	}
	return fmt.Sprintf("%q", t.Text)
}

func (p *parser) cur() Token {
	return p.toks[p.mean[p.i]]
}

// peekRaw returns the type of the meaningful token k positions ahead,
// ignoring the offside rule.
func (p *parser) peekRaw(k int) syntax.NodeType {
	if p.i+k < len(p.mean) {
		return p.toks[p.mean[p.i+k]].Type
	}
	return tokEOF
}

func (p *parser) textAt(k int) string {
	if p.i+k < len(p.mean) {
		return p.toks[p.mean[p.i+k]].Text
	}
	return ""
}

// peek returns the current token type, or tokEOF when input is exhausted
// or the token is offside.
func (p *parser) peek() syntax.NodeType {
	if p.i >= len(p.mean) || p.blocked() {
		return tokEOF
	}
	return p.cur().Type
}

func (p *parser) peekText() string {
	if p.peek() == tokEOF {
		return ""
	}
	return p.cur().Text
}

// adjacent reports whether the current token directly follows the
// previous one with no trivia between them.
func (p *parser) adjacent() bool {
	return p.i > 0 && p.i < len(p.mean) && p.mean[p.i] == p.mean[p.i-1]+1
}

func (p *parser) blocked() bool {
	if len(p.ctx) == 0 || !p.lineStart[p.i] {
		return false
	}
	c := p.ctx[len(p.ctx)-1]
	if p.i == c.start {
		return false
	}
	t := p.cur()
	if isCloser(t.Type) {
		return false
	}
	col := p.cols[p.i]
	switch {
	case col < c.col:
		if isInfix(t) && col >= c.col-(utf8.RuneCountInString(t.Text)+1) {
			return false
		}
		return col < c.undent || !(isContinuation(t.Type) || isInfix(t))
	case col == c.col:
		return !isContinuation(t.Type) && !isInfix(t)
	}
	return false
}

// atItemStart reports whether the current token starts a new item of the
// innermost context: it begins a line exactly at the context column.
func (p *parser) atItemStart() bool {
	if p.i >= len(p.mean) || len(p.ctx) == 0 || !p.lineStart[p.i] {
		return false
	}
	t := p.cur()
	return p.cols[p.i] == p.ctx[len(p.ctx)-1].col &&
		!isCloser(t.Type) && !isContinuation(t.Type) && !isInfix(t)
}

// nextItem makes the current token the start of the innermost context.
func (p *parser) nextItem() {
	p.ctx[len(p.ctx)-1].start = p.i
}

// pushBlock opens a context at the current token, which must not be
// offside in the enclosing one.
func (p *parser) pushBlock() {
	if p.peek() == tokEOF {
		p.fail("expected expression, found %s", p.describe())
	}
	p.pushCtx()
}

func (p *parser) pushCtx() {
	if p.i >= len(p.mean) {
		p.fail("expected expression, found end of input")
	}
	col := p.cols[p.i]
	undent := col
	if !p.lineStart[p.i] {
		undent = min(p.lineIndent[p.i]+1, col)
	}
	p.ctx = append(p.ctx, offside{col: col, undent: undent, start: p.i})
}

// pushRelaxed opens a context for the body that follows "fun ... ->" or an
// opening brace. A body starting a new line only has to sit right of the
// indentation of the line holding opener, the index of the fun or brace.
func (p *parser) pushRelaxed(opener int) {
	if p.i < len(p.mean) && p.lineStart[p.i] && !isCloser(p.cur().Type) &&
		p.cols[p.i] > p.lineIndent[opener] {
		p.pushCtx()
		return
	}
	p.pushBlock()
}

// pushFlat opens a context in which nothing is offside.
func (p *parser) pushFlat() {
	p.ctx = append(p.ctx, offside{start: p.i})
}

func (p *parser) popCtx() {
	p.ctx = p.ctx[:len(p.ctx)-1]
}

func (p *parser) enter() {
	p.depth++
	if p.depth > maxDepth {
		p.fail("nesting too deep")
	}
}

func (p *parser) leave() { p.depth-- }

// Tree building.

func (p *parser) top() *syntax.Node {
	return p.stack[len(p.stack)-1]
}

func (p *parser) leaf(i int) *syntax.Node {
	return syntax.NewToken(p.toks[i].Type, p.toks[i].Text)
}

// markOffside records that n opens an indentation context.
func markOffside(n *syntax.Node) *syntax.Node {
	n.Offside = true
	return n
}

// flush moves trivia before the current token into the innermost open
// node.
func (p *parser) flush() {
	end := len(p.toks)
	if p.i < len(p.mean) {
		end = p.mean[p.i]
	}
	for ; p.raw < end; p.raw++ {
		p.top().Append(p.leaf(p.raw))
	}
}

func (p *parser) open(t syntax.NodeType) *syntax.Node {
	p.flush()
	n := syntax.NewComposite(t)
	p.top().Append(n)
	p.stack = append(p.stack, n)
	return n
}

func (p *parser) close() {
	p.stack = p.stack[:len(p.stack)-1]
}

// wrap replaces n, the last child of the innermost open node, with a new
// node of type t holding n, and opens the new node.
func (p *parser) wrap(n *syntax.Node, t syntax.NodeType) *syntax.Node {
	parent := p.top()
	last := len(parent.Children) - 1
	if last < 0 || parent.Children[last] != n {
		panic("fsharp: wrap of a node that is not the last child")
	}
	w := syntax.NewComposite(t, n)
	parent.Children[last] = w
	p.stack = append(p.stack, w)
	return w
}

func (p *parser) advance() *syntax.Node {
	if p.i >= len(p.mean) {
		p.fail("unexpected end of input")
	}
	p.flush()
	n := p.leaf(p.raw)
	p.top().Append(n)
	p.raw++
	p.i++
	return n
}

func (p *parser) accept(t syntax.NodeType) *syntax.Node {
	if p.peek() != t {
		return nil
	}
	return p.advance()
}

func (p *parser) expect(t syntax.NodeType, what string) *syntax.Node {
	if p.peek() != t {
		p.fail("expected %s, found %s", what, p.describe())
	}
	return p.advance()
}

func (p *parser) expectIdent() *syntax.Node {
	return p.expect(syntax.TypeIdentifier, "identifier")
}

func (p *parser) acceptAccess() *syntax.Node {
	if syntax.AccessModifiers.Has(p.peek()) {
		return p.advance().As(syntax.RoleAccessModifier)
	}
	return nil
}

// Module level.

func (p *parser) isNamedModule() bool {
	k := 1
	for syntax.AccessModifiers.Has(p.peekRaw(k)) || p.peekRaw(k) == syntax.TypeRec {
		k++
	}
	for p.peekRaw(k) == syntax.TypeIdentifier {
		k++
		if p.peekRaw(k) != syntax.TypeDot {
			break
		}
		k++
	}
	return p.peekRaw(k) != syntax.TypeEquals
}

func (p *parser) namedModuleDecl() {
	p.open(syntax.TypeNamedModuleDeclaration)
	p.expect(syntax.TypeModule, "'module'")
	p.acceptAccess()
	p.accept(syntax.TypeRec)
	p.longIdent().As(syntax.RoleIdentifier)
	p.moduleMembers(syntax.RoleModuleMember)
	p.close()
}

func (p *parser) namespaceDecl() {
	p.open(syntax.TypeNamespaceDeclaration)
	p.expect(syntax.TypeNamespace, "'namespace'")
	p.accept(syntax.TypeRec)
	p.longIdent().As(syntax.RoleIdentifier)
	p.moduleMembers(syntax.RoleModuleMember)
	p.close()
}

func (p *parser) moduleMembers(role syntax.Role) {
	if p.peek() == tokEOF || p.peek() == syntax.TypeNamespace {
		return
	}
	p.pushBlock()
	for {
		if p.peek() == syntax.TypeSymbolicOp && p.peekText() == ";;" {
			p.advance()
		} else {
			markOffside(p.moduleMember()).As(role)
		}
		if p.peek() == syntax.TypeSymbolicOp && p.peekText() == ";;" {
			continue
		}
		if !p.atItemStart() || p.peekRaw(0) == syntax.TypeNamespace {
			break
		}
		p.nextItem()
	}
	p.popCtx()
}

// declKeyword returns the first token type after any attribute lists.
func (p *parser) declKeyword() syntax.NodeType {
	k := 0
	for p.peekRaw(k) == syntax.TypeLBrackLess {
		for p.peekRaw(k) != syntax.TypeGreaterRBrack && p.peekRaw(k) != tokEOF {
			k++
		}
		k++
	}
	return p.peekRaw(k)
}

func (p *parser) moduleMember() *syntax.Node {
	p.enter()
	defer p.leave()

	switch p.declKeyword() {
	case syntax.TypeLet:
		return p.letModuleDecl()
	case syntax.TypeType:
		n := p.typeDecl(syntax.TypeType)
		for p.peek() == syntax.TypeAnd {
			p.typeDecl(syntax.TypeAnd).As(syntax.RoleModuleMember)
		}
		return n
	case syntax.TypeModule:
		return p.nestedModuleDecl()
	case syntax.TypeOpen:
		n := p.open(syntax.TypeOpenStatement)
		p.advance()
		p.accept(syntax.TypeType)
		p.longIdent()
		p.close()
		return n
	case syntax.TypeException:
		return p.exceptionDecl()
	case syntax.TypeDo:
		n := p.open(syntax.TypeDoStatement)
		p.attributes()
		p.advance()
		p.block().As(syntax.RoleChameleonExpr)
		p.close()
		return n
	default:
		n := p.open(syntax.TypeDoStatement)
		p.attributes()
		p.exprNoSeq().As(syntax.RoleChameleonExpr)
		p.close()
		return n
	}
}

func (p *parser) longIdent() *syntax.Node {
	n := p.open(syntax.TypeLongIdentifier)
	p.expectIdent()
	for p.peek() == syntax.TypeDot && p.peekRaw(1) == syntax.TypeIdentifier {
		p.advance()
		p.advance()
	}
	p.close()
	return n
}

func (p *parser) attributes() {
	for p.peek() == syntax.TypeLBrackLess {
		p.open(syntax.TypeAttributeList)
		p.advance()
		p.pushFlat()
		for p.peek() != syntax.TypeGreaterRBrack {
			p.exprNoSeq()
			if p.accept(syntax.TypeSemicolon) == nil {
				break
			}
		}
		p.popCtx()
		p.expect(syntax.TypeGreaterRBrack, "'>]'")
		p.close()
		if p.atItemStart() {
			p.nextItem()
		}
	}
}

func (p *parser) letModuleDecl() *syntax.Node {
	n := p.open(syntax.TypeLetModuleDecl)
	p.attributes()
	p.expect(syntax.TypeLet, "'let'")
	p.accept(syntax.TypeRec)
	for {
		p.binding(syntax.TypeTopBinding, syntax.RoleChameleonExpr)
		if p.accept(syntax.TypeAnd) == nil {
			break
		}
	}
	p.close()
	return n
}

// binding parses "[attrs] [inline|mutable|access] head [: type] = body".
func (p *parser) binding(t syntax.NodeType, bodyRole syntax.Role) *syntax.Node {
	n := p.open(t)
	p.attributes()
	for p.accept(syntax.TypeInline) != nil || p.accept(syntax.TypeMutable) != nil || p.acceptAccess() != nil {
	}
	p.pattern(false, false)
	if p.peek() == syntax.TypeColon {
		p.returnTypeInfo()
	}
	p.expect(syntax.TypeEquals, "'='")
	p.block().As(bodyRole)
	p.close()
	return n
}

func (p *parser) returnTypeInfo() {
	p.open(syntax.TypeReturnTypeInfo)
	p.advance()
	p.typeRef(false)
	p.close()
}

func (p *parser) nestedModuleDecl() *syntax.Node {
	n := p.open(syntax.TypeNestedModuleDeclaration)
	p.attributes()
	p.expect(syntax.TypeModule, "'module'")
	p.acceptAccess()
	p.accept(syntax.TypeRec)
	p.expectIdent().As(syntax.RoleIdentifier)
	p.expect(syntax.TypeEquals, "'='")

	if p.peek() == syntax.TypeIdentifier && !p.lineStart[p.i] && p.endsLineAfterLongIdent() {
		n.Type = syntax.TypeModuleAbbreviationDeclaration
		p.open(syntax.TypeTypeReference).As(syntax.RoleTypeReference)
		p.longIdent()
		p.close()
	} else {
		p.moduleMembers(syntax.RoleModuleMember)
	}
	p.close()
	return n
}

func (p *parser) endsLineAfterLongIdent() bool {
	k := 0
	for p.peekRaw(k) == syntax.TypeIdentifier {
		k++
		if p.peekRaw(k) != syntax.TypeDot {
			break
		}
		k++
	}
	return p.i+k >= len(p.mean) || p.lineStart[p.i+k]
}

func (p *parser) exceptionDecl() *syntax.Node {
	n := p.open(syntax.TypeExceptionDeclaration)
	p.attributes()
	p.expect(syntax.TypeException, "'exception'")
	p.acceptAccess()
	p.expectIdent().As(syntax.RoleIdentifier)
	if p.accept(syntax.TypeOf) != nil {
		p.unionFields()
	}
	if p.accept(syntax.TypeWith) != nil {
		p.memberList(syntax.TypeTypeMemberDeclarationList)
		p.accept(syntax.TypeEnd)
	}
	p.close()
	return n
}

func isCloser(t syntax.NodeType) bool { return syntax.Closers.Has(t) }

func isContinuation(t syntax.NodeType) bool { return syntax.Continuations.Has(t) }

func isInfix(t Token) bool { return IsInfixOperator(t.Type, t.Text) }

// IsInfixOperator reports whether a token of type t with the given text is
// an infix operator, which the offside rule lets start a line left of
// its context by the operator's width plus one.
func IsInfixOperator(t syntax.NodeType, text string) bool {
	switch t {
	case syntax.TypeEquals, syntax.TypeStar:
		return true
	case syntax.TypeSymbolicOp:
		prec, _ := binaryPrec(text)
		return prec > 0
	}
	return false
}

// binaryPrec returns the binding power of an infix operator and whether
// it associates to the right. Non-infix operators return 0.
func binaryPrec(op string) (int, bool) {
	switch op {
	case ";;", "?", "!", "~":
		return 0, false
	case "..", ":=":
		return 1, false
	case "||", "or":
		return 2, false
	case "&&", "&":
		return 3, false
	case ":>", ":?>":
		return 4, false
	case "!=":
		return 5, false
	case "::":
		return 7, true
	case ":?":
		return 8, false
	}
	switch {
	case strings.HasPrefix(op, "!"), strings.HasPrefix(op, "~"), strings.HasPrefix(op, "."), strings.HasPrefix(op, "?"):
		return 0, false
	case strings.HasPrefix(op, "**"):
		return 11, true
	case strings.HasPrefix(op, "*"), strings.HasPrefix(op, "/"), strings.HasPrefix(op, "%"):
		return 10, false
	case strings.HasPrefix(op, "-"), strings.HasPrefix(op, "+"):
		return 9, false
	case strings.HasPrefix(op, "^"), strings.HasPrefix(op, "@"):
		return 6, true
	case strings.HasPrefix(op, "="), strings.HasPrefix(op, "<"), strings.HasPrefix(op, ">"),
		strings.HasPrefix(op, "|"), strings.HasPrefix(op, "&"), strings.HasPrefix(op, "$"):
		return 5, false
	}
	return 0, false
}
