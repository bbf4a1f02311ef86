package fsharp

import (
	"github.com/donaldgifford/fsfmt/internal/syntax"
)

// pattern parses a pattern. Typed patterns ("x: int") are only accepted
// when allowTyped is set, so binding heads leave ":" to the return type.
// Or-patterns are only accepted in match clauses.
func (p *parser) pattern(allowTyped, allowOr bool) *syntax.Node {
	p.enter()
	defer p.leave()

	left := p.tuplePattern(allowTyped, allowOr)
	for p.peek() == syntax.TypeAs {
		n := p.wrap(left, syntax.TypeAsPat)
		p.advance()
		p.atomPattern()
		p.close()
		left = n
	}
	return left
}

func (p *parser) tuplePattern(allowTyped, allowOr bool) *syntax.Node {
	left := p.orPattern(allowTyped, allowOr)
	if p.peek() != syntax.TypeComma {
		return left
	}
	n := p.wrap(left, syntax.TypeTuplePat)
	for p.accept(syntax.TypeComma) != nil {
		p.orPattern(allowTyped, allowOr)
	}
	p.close()
	return n
}

func (p *parser) orPattern(allowTyped, allowOr bool) *syntax.Node {
	left := p.consPattern(allowTyped)
	if !allowOr || p.peek() != syntax.TypeBar {
		return left
	}
	n := p.wrap(left, syntax.TypeOrPat)
	for p.accept(syntax.TypeBar) != nil {
		p.consPattern(allowTyped)
	}
	p.close()
	return n
}

func (p *parser) consPattern(allowTyped bool) *syntax.Node {
	left := p.typedPattern(allowTyped)
	if p.peek() != syntax.TypeSymbolicOp || p.peekText() != "::" {
		return left
	}
	n := p.wrap(left, syntax.TypeConsPat)
	p.advance()
	p.consPattern(allowTyped)
	p.close()
	return n
}

func (p *parser) typedPattern(allowTyped bool) *syntax.Node {
	left := p.appPattern()
	if !allowTyped || p.peek() != syntax.TypeColon {
		return left
	}
	n := p.wrap(left, syntax.TypeTypedPat)
	p.advance()
	p.typeRef(false)
	p.close()
	return n
}

// appPattern parses an identifier applied to argument patterns, as in a
// function head or a union case pattern.
func (p *parser) appPattern() *syntax.Node {
	switch {
	case p.peek() == syntax.TypeIdentifier:
	case p.peek() == syntax.TypeUnderscore && p.peekRaw(1) == syntax.TypeDot:
	default:
		return p.atomPattern()
	}
	n := p.open(syntax.TypeLongIdentPat)
	p.advance()
	dotted := false
	for p.peek() == syntax.TypeDot && p.peekRaw(1) == syntax.TypeIdentifier {
		p.advance()
		p.advance()
		dotted = true
	}
	args := 0
	for isAtomPatternStart(p.peek()) {
		p.atomPattern()
		args++
	}
	if args == 0 && !dotted {
		n.Type = syntax.TypeNamedPat
	}
	p.close()
	return n
}

func isAtomPatternStart(t syntax.NodeType) bool {
	switch t {
	case syntax.TypeIdentifier, syntax.TypeUnderscore, syntax.TypeLParen, syntax.TypeLBrack,
		syntax.TypeLBrackBar, syntax.TypeNumber, syntax.TypeString, syntax.TypeChar,
		syntax.TypeTrue, syntax.TypeFalse, syntax.TypeNull:
		return true
	}
	return false
}

func (p *parser) atomPattern() *syntax.Node {
	p.enter()
	defer p.leave()

	switch p.peek() {
	case syntax.TypeUnderscore:
		n := p.open(syntax.TypeWildPat)
		p.advance()
		p.close()
		return n
	case syntax.TypeIdentifier:
		n := p.open(syntax.TypeNamedPat)
		p.advance()
		p.close()
		return n
	case syntax.TypeNumber, syntax.TypeString, syntax.TypeChar, syntax.TypeTrue, syntax.TypeFalse, syntax.TypeNull:
		n := p.open(syntax.TypeConstPat)
		p.advance()
		p.close()
		return n
	case syntax.TypeSymbolicOp:
		switch p.peekText() {
		case "-":
			if p.peekRaw(1) == syntax.TypeNumber {
				n := p.open(syntax.TypeConstPat)
				p.advance()
				p.advance()
				p.close()
				return n
			}
		case ":?":
			n := p.open(syntax.TypeLongIdentPat)
			p.advance()
			p.typeRef(false)
			p.close()
			return n
		}
	case syntax.TypeLParen:
		if p.peekRaw(1) == syntax.TypeRParen {
			n := p.open(syntax.TypeUnitPat)
			p.advance()
			p.advance()
			p.close()
			return n
		}
		n := p.open(syntax.TypeParenPat)
		p.advance()
		p.pushFlat()
		p.pattern(true, true)
		p.popCtx()
		p.expect(syntax.TypeRParen, "')'")
		p.close()
		return n
	case syntax.TypeLBrack:
		return p.listPattern(syntax.TypeRBrack, "']'")
	case syntax.TypeLBrackBar:
		return p.listPattern(syntax.TypeBarRBrack, "'|]'")
	}
	p.fail("expected pattern, found %s", p.describe())
	return nil
}

func (p *parser) listPattern(closer syntax.NodeType, what string) *syntax.Node {
	n := p.open(syntax.TypeListPat)
	p.advance()
	p.pushFlat()
	for p.peek() != closer && p.peek() != tokEOF {
		p.pattern(true, true)
		if p.accept(syntax.TypeSemicolon) == nil {
			break
		}
	}
	p.popCtx()
	p.expect(closer, what)
	p.close()
	return n
}
