package fsharp

import (
	"strings"

	"github.com/donaldgifford/fsfmt/internal/syntax"
)

// typeDecl parses one declaration of a type group; kw is "type" or "and".
func (p *parser) typeDecl(kw syntax.NodeType) *syntax.Node {
	n := p.open(syntax.TypeTypeDeclaration)
	p.attributes()
	p.expect(kw, "'"+strings.ToLower(kw.String())+"'")
	p.attributes()
	p.acceptAccess()
	p.expectIdent().As(syntax.RoleIdentifier)
	if p.peek() == syntax.TypeSymbolicOp && p.peekText() == "<" && p.adjacent() {
		p.typeArgs()
	}
	if p.peek() == syntax.TypeLParen {
		p.primaryConstructor()
	}

	switch {
	case p.accept(syntax.TypeEquals) != nil:
		p.typeBody()
	case p.accept(syntax.TypeWith) != nil:
		p.memberList(syntax.TypeTypeMemberDeclarationList)
		p.accept(syntax.TypeEnd)
	}
	p.close()
	return n
}

func (p *parser) primaryConstructor() {
	p.open(syntax.TypePrimaryConstructorDeclaration)
	p.advance()
	if p.peek() != syntax.TypeRParen {
		p.pushFlat()
		p.pattern(true, false)
		p.popCtx()
	}
	p.expect(syntax.TypeRParen, "')'")
	p.close()
	if p.accept(syntax.TypeAs) != nil {
		p.expectIdent()
	}
}

type reprKind int

const (
	reprAbbreviation reprKind = iota
	reprUnion
	reprEnum
	reprRecord
	reprObject
	reprMembers
)

// reprKind looks ahead to classify the representation after "=".
func (p *parser) reprKind() reprKind {
	k := 0
	if syntax.AccessModifiers.Has(p.peekRaw(k)) {
		k++
	}
	switch p.peekRaw(k) {
	case syntax.TypeBar:
		if p.peekRaw(k+1) == syntax.TypeIdentifier && p.peekRaw(k+2) == syntax.TypeEquals {
			return reprEnum
		}
		return reprUnion
	case syntax.TypeLBrace:
		return reprRecord
	case syntax.TypeClass, syntax.TypeStruct, syntax.TypeInterface:
		return reprObject
	case syntax.TypeMember, syntax.TypeAbstract, syntax.TypeNew, syntax.TypeVal, syntax.TypeInherit,
		syntax.TypeLet, syntax.TypeStatic, syntax.TypeOverride, syntax.TypeDefault, syntax.TypeDo,
		syntax.TypeLBrackLess:
		return reprMembers
	case syntax.TypeIdentifier:
		switch p.peekRaw(k + 1) {
		case syntax.TypeOf, syntax.TypeBar:
			return reprUnion
		case syntax.TypeEquals:
			return reprEnum
		}
	}
	return reprAbbreviation
}

func (p *parser) typeBody() {
	switch p.reprKind() {
	case reprUnion:
		p.unionRepr()
	case reprEnum:
		p.enumRepr()
	case reprRecord:
		p.recordRepr()
	case reprObject:
		p.objectRepr()
	case reprMembers:
		p.memberList(syntax.TypeTypeMemberDeclarationList)
		return
	default:
		markOffside(p.open(syntax.TypeAbbreviationRepresentation)).As(syntax.RoleTypeRepr)
		p.pushBlock()
		p.typeRef(false)
		p.popCtx()
		p.close()
	}

	switch {
	case p.accept(syntax.TypeWith) != nil:
		p.memberList(syntax.TypeTypeMemberDeclarationList)
		p.accept(syntax.TypeEnd)
	case isMemberKeyword(p.peek()):
		p.memberList(syntax.TypeTypeMemberDeclarationList)
	}
}

func isMemberKeyword(t syntax.NodeType) bool {
	switch t {
	case syntax.TypeMember, syntax.TypeAbstract, syntax.TypeStatic, syntax.TypeOverride,
		syntax.TypeDefault, syntax.TypeInterface, syntax.TypeNew, syntax.TypeVal:
		return true
	}
	return false
}

func (p *parser) unionRepr() {
	markOffside(p.open(syntax.TypeUnionRepresentation)).As(syntax.RoleTypeRepr)
	p.pushBlock()
	p.acceptAccess()
	for {
		p.open(syntax.TypeUnionCaseDeclaration)
		p.accept(syntax.TypeBar)
		p.attributes()
		p.expectIdent().As(syntax.RoleIdentifier)
		if p.accept(syntax.TypeOf) != nil {
			p.unionFields()
		}
		p.close()
		if p.peek() != syntax.TypeBar {
			break
		}
	}
	p.popCtx()
	p.close()
}

// unionFields parses "field * field ..." after "of".
func (p *parser) unionFields() {
	p.open(syntax.TypeUnionCaseFieldDeclList)
	for {
		p.open(syntax.TypeUnionCaseFieldDeclaration)
		if p.peek() == syntax.TypeIdentifier && p.peekRaw(1) == syntax.TypeColon {
			p.advance().As(syntax.RoleIdentifier)
			p.advance()
		}
		p.typeRef(true)
		p.close()
		if p.accept(syntax.TypeStar) == nil {
			break
		}
	}
	p.close()
}

func (p *parser) enumRepr() {
	markOffside(p.open(syntax.TypeEnumRepresentation)).As(syntax.RoleTypeRepr)
	p.pushBlock()
	p.acceptAccess()
	for {
		p.open(syntax.TypeEnumCaseDeclaration)
		p.accept(syntax.TypeBar)
		p.attributes()
		p.expectIdent().As(syntax.RoleIdentifier)
		p.expect(syntax.TypeEquals, "'='")
		p.binary(1).As(syntax.RoleExpr)
		p.close()
		if p.peek() != syntax.TypeBar {
			break
		}
	}
	p.popCtx()
	p.close()
}

func (p *parser) recordRepr() {
	p.open(syntax.TypeRecordRepresentation).As(syntax.RoleTypeRepr)
	p.acceptAccess()
	p.expect(syntax.TypeLBrace, "'{'")
	if p.peek() != syntax.TypeRBrace {
		markOffside(p.open(syntax.TypeRecordFieldDeclarationList))
		p.pushBlock()
		for {
			p.open(syntax.TypeRecordFieldDeclaration)
			p.attributes()
			p.accept(syntax.TypeMutable)
			p.acceptAccess()
			p.expectIdent().As(syntax.RoleIdentifier)
			p.expect(syntax.TypeColon, "':'")
			p.typeRef(false)
			semi := p.accept(syntax.TypeSemicolon) != nil
			p.close()
			if semi && p.peek() != syntax.TypeRBrace && p.peek() != tokEOF {
				continue
			}
			if !p.atItemStart() {
				break
			}
			p.nextItem()
		}
		p.popCtx()
		p.close()
	}
	p.expect(syntax.TypeRBrace, "'}'")
	p.close()
}

func (p *parser) objectRepr() {
	t := syntax.TypeClassRepresentation
	switch p.peek() {
	case syntax.TypeStruct:
		t = syntax.TypeStructRepresentation
	case syntax.TypeInterface:
		t = syntax.TypeInterfaceRepresentation
	}
	p.open(t).As(syntax.RoleTypeRepr)
	p.advance()
	if p.peek() != syntax.TypeEnd {
		p.memberList(syntax.TypeTypeMemberDeclarationList)
	}
	p.expect(syntax.TypeEnd, "'end'")
	p.close()
}

// memberList parses member declarations aligned on the column of the
// first one.
func (p *parser) memberList(t syntax.NodeType) *syntax.Node {
	n := markOffside(p.open(t)).As(syntax.RoleMemberList)
	p.pushBlock()
	for {
		p.memberItem()
		if !p.atItemStart() {
			break
		}
		p.nextItem()
	}
	p.popCtx()
	p.close()
	return n
}

func (p *parser) memberItem() {
	p.enter()
	defer p.leave()

	switch p.declKeyword() {
	case syntax.TypeLet:
		p.letModuleDecl()
	case syntax.TypeDo:
		p.open(syntax.TypeDoStatement)
		p.attributes()
		p.advance()
		p.block().As(syntax.RoleChameleonExpr)
		p.close()
	case syntax.TypeNew:
		p.open(syntax.TypeSecondaryConstructorDecl)
		p.attributes()
		p.acceptAccess()
		p.advance()
		p.atomPattern()
		p.expect(syntax.TypeEquals, "'='")
		p.block().As(syntax.RoleExpr)
		p.close()
	case syntax.TypeVal:
		p.open(syntax.TypeValFieldDeclaration)
		p.attributes()
		p.advance()
		p.accept(syntax.TypeMutable)
		p.acceptAccess()
		p.expectIdent().As(syntax.RoleIdentifier)
		p.expect(syntax.TypeColon, "':'")
		p.typeRef(false)
		p.close()
	case syntax.TypeInherit:
		p.open(syntax.TypeMemberDeclaration)
		p.attributes()
		p.advance()
		p.typeName()
		if p.peek() == syntax.TypeLParen {
			p.atom()
		}
		p.close()
	case syntax.TypeInterface:
		p.open(syntax.TypeInterfaceImplementation)
		p.attributes()
		p.advance()
		p.typeRef(false)
		if p.accept(syntax.TypeWith) != nil {
			p.memberList(syntax.TypeMemberDeclarationList)
			p.accept(syntax.TypeEnd)
		}
		p.close()
	case syntax.TypeMember, syntax.TypeOverride, syntax.TypeDefault, syntax.TypeStatic, syntax.TypeAbstract:
		p.memberDecl()
	default:
		p.fail("expected member declaration, found %s", p.describe())
	}
}

func (p *parser) memberDecl() {
	p.open(syntax.TypeMemberDeclaration)
	p.attributes()
	p.accept(syntax.TypeStatic)
	if p.accept(syntax.TypeAbstract) != nil {
		p.accept(syntax.TypeMember)
		p.acceptAccess()
		p.expectIdent().As(syntax.RoleIdentifier)
		p.expect(syntax.TypeColon, "':'")
		p.typeRef(false)
		p.close()
		return
	}
	switch p.peek() {
	case syntax.TypeMember, syntax.TypeOverride, syntax.TypeDefault:
		p.advance()
	default:
		p.fail("expected 'member', found %s", p.describe())
	}
	p.accept(syntax.TypeVal)
	p.accept(syntax.TypeInline)
	p.acceptAccess()
	p.pattern(false, false)
	if p.peek() == syntax.TypeColon {
		p.returnTypeInfo()
	}
	p.expect(syntax.TypeEquals, "'='")
	p.block().As(syntax.RoleChameleonExpr)
	if p.accept(syntax.TypeWith) != nil {
		for p.peek() == syntax.TypeIdentifier {
			p.advance()
			if p.accept(syntax.TypeComma) == nil {
				break
			}
		}
	}
	p.close()
}

// typeRef parses a type expression into a flat TYPE_REFERENCE node. With
// stopAtStar set, a top-level "*" ends the type, as between union fields.
func (p *parser) typeRef(stopAtStar bool) *syntax.Node {
	n := p.open(syntax.TypeTypeReference)
	depth, count := 0, 0
loop:
	for {
		t := p.peek()
		if depth > 0 && p.i < len(p.mean) {
			t = p.peekRaw(0)
		}
		switch t {
		case syntax.TypeIdentifier, syntax.TypeUnderscore, syntax.TypeDot, syntax.TypeArrow,
			syntax.TypeStruct, syntax.TypeNull:
		case syntax.TypeStar:
			if stopAtStar && depth == 0 {
				break loop
			}
		case syntax.TypeComma, syntax.TypeColon, syntax.TypeSemicolon:
			if depth == 0 {
				break loop
			}
		case syntax.TypeLParen, syntax.TypeLBrack:
			depth++
		case syntax.TypeRParen, syntax.TypeRBrack:
			if depth == 0 {
				break loop
			}
			depth--
		case syntax.TypeSymbolicOp:
			text := p.cur().Text
			switch {
			case strings.Trim(text, "<") == "":
				depth += len(text)
			case strings.Trim(text, ">") == "":
				if len(text) > depth {
					break loop
				}
				depth -= len(text)
			case text == "#" || text == "^":
			default:
				break loop
			}
		default:
			break loop
		}
		p.advance()
		count++
	}
	if count == 0 {
		p.fail("expected type, found %s", p.describe())
	}
	p.close()
	return n
}

// typeName parses a dotted type name with optional type arguments.
func (p *parser) typeName() *syntax.Node {
	n := p.open(syntax.TypeTypeReference)
	p.expectIdent()
	for p.peek() == syntax.TypeDot && p.peekRaw(1) == syntax.TypeIdentifier {
		p.advance()
		p.advance()
	}
	if p.peek() == syntax.TypeSymbolicOp && p.peekText() == "<" && p.adjacent() && p.typeArgsAhead() {
		p.typeArgs()
	}
	p.close()
	return n
}

// typeArgsAhead reports whether the "<" at the current token opens a type
// argument list that closes before any token foreign to types.
func (p *parser) typeArgsAhead() bool {
	depth := 0
	for k := 0; p.i+k < len(p.mean); k++ {
		t := p.toks[p.mean[p.i+k]]
		switch t.Type {
		case syntax.TypeIdentifier, syntax.TypeDot, syntax.TypeComma, syntax.TypeStar,
			syntax.TypeArrow, syntax.TypeLParen, syntax.TypeRParen, syntax.TypeLBrack,
			syntax.TypeRBrack, syntax.TypeUnderscore:
		case syntax.TypeSymbolicOp:
			switch {
			case strings.Trim(t.Text, "<") == "":
				depth += len(t.Text)
			case strings.Trim(t.Text, ">") == "":
				depth -= len(t.Text)
				if depth == 0 {
					return true
				}
				if depth < 0 {
					return false
				}
			default:
				return false
			}
		default:
			return false
		}
	}
	return false
}

// typeArgs parses "<...>" into a TYPE_PARAMETER_LIST.
func (p *parser) typeArgs() {
	p.open(syntax.TypeTypeParameterList)
	p.pushFlat()
	depth := 0
	for {
		if p.i >= len(p.mean) {
			p.fail("unterminated type parameter list")
		}
		text := p.cur().Text
		if p.cur().Type == syntax.TypeSymbolicOp {
			switch {
			case strings.Trim(text, "<") == "":
				depth += len(text)
			case strings.Trim(text, ">") == "":
				if len(text) > depth {
					p.fail("unbalanced '>' in type parameter list")
				}
				depth -= len(text)
			}
		}
		p.advance()
		if depth == 0 {
			break
		}
	}
	p.popCtx()
	p.close()
}
