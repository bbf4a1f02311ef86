package fsharp

import (
	"github.com/donaldgifford/fsfmt/internal/syntax"
)

// block parses a sequence of expressions in a new offside context
// anchored at the current token.
func (p *parser) block() *syntax.Node {
	p.pushBlock()
	n := markOffside(p.seq())
	p.popCtx()
	return n
}

// relaxedBlock is block for the bodies of lambdas and computation
// expressions.
func (p *parser) relaxedBlock(opener int) *syntax.Node {
	p.pushRelaxed(opener)
	n := markOffside(p.seq())
	p.popCtx()
	return n
}

// blockExpr parses a single expression in a new offside context.
func (p *parser) blockExpr() *syntax.Node {
	p.pushBlock()
	n := markOffside(p.exprNoSeq())
	p.popCtx()
	return n
}

func (p *parser) moreItems() bool {
	return p.peek() == syntax.TypeSemicolon || p.atItemStart()
}

func (p *parser) seq() *syntax.Node {
	first := p.seqItem()
	if first.Type == syntax.TypeLetOrUseExpr || !p.moreItems() {
		return first
	}
	s := p.wrap(first, syntax.TypeSequentialExpr)
	for p.moreItems() {
		if p.accept(syntax.TypeSemicolon) == nil {
			p.nextItem()
		} else {
			if p.atItemStart() {
				p.nextItem()
			}
			if !p.atExprStart() {
				break
			}
		}
		if p.seqItem().Type == syntax.TypeLetOrUseExpr {
			break
		}
	}
	p.close()
	return s
}

func (p *parser) seqItem() *syntax.Node {
	switch p.peek() {
	case syntax.TypeLet, syntax.TypeUse, syntax.TypeLetBang, syntax.TypeUseBang:
		return p.letOrUse()
	}
	return p.exprNoSeq()
}

// atExprStart reports whether the current token can begin an expression.
func (p *parser) atExprStart() bool {
	switch t := p.peek(); t {
	case tokEOF:
		return false
	case syntax.TypeSymbolicOp:
		return isPrefixOp(p.peekText())
	default:
		return isAtomStart(t) || isKeywordExprStart(t) || t == syntax.TypeLet ||
			t == syntax.TypeUse || t == syntax.TypeLetBang || t == syntax.TypeUseBang
	}
}

func (p *parser) letOrUse() *syntax.Node {
	n := p.open(syntax.TypeLetOrUseExpr)
	p.advance()
	p.accept(syntax.TypeRec)
	for {
		p.binding(syntax.TypeLocalBinding, syntax.RoleExpr)
		if p.accept(syntax.TypeAnd) == nil {
			break
		}
	}
	switch {
	case p.accept(syntax.TypeIn) != nil:
		if p.atExprStart() {
			p.seq().As(syntax.RoleExpr)
		}
	case p.atItemStart():
		p.nextItem()
		p.seq().As(syntax.RoleExpr)
	}
	p.close()
	return n
}

func isKeywordExprStart(t syntax.NodeType) bool {
	switch t {
	case syntax.TypeFun, syntax.TypeFunction, syntax.TypeMatch, syntax.TypeIf, syntax.TypeTry,
		syntax.TypeFor, syntax.TypeWhile, syntax.TypeDo, syntax.TypeDoBang, syntax.TypeAssert,
		syntax.TypeLazy, syntax.TypeYield, syntax.TypeReturn:
		return true
	}
	return false
}

func isAtomStart(t syntax.NodeType) bool {
	switch t {
	case syntax.TypeIdentifier, syntax.TypeNumber, syntax.TypeString, syntax.TypeChar,
		syntax.TypeTrue, syntax.TypeFalse, syntax.TypeNull, syntax.TypeLParen, syntax.TypeLBrack,
		syntax.TypeLBrackBar, syntax.TypeLBrace, syntax.TypeUnderscore, syntax.TypeNew:
		return true
	}
	return false
}

func isPrefixOp(op string) bool {
	switch op {
	case "-", "+", "!", "-.", "+.", "~~~", "%", "%%", "&", "&&":
		return true
	}
	return false
}

// exprNoSeq parses an expression that does not extend over ";" or onto
// the next line of its block.
func (p *parser) exprNoSeq() *syntax.Node {
	p.enter()
	defer p.leave()

	switch p.peek() {
	case syntax.TypeLet, syntax.TypeUse, syntax.TypeLetBang, syntax.TypeUseBang:
		return p.letOrUse()
	}
	if isKeywordExprStart(p.peek()) {
		return p.keywordExpr()
	}

	left := p.tuple()
	switch p.peek() {
	case syntax.TypeColon:
		n := p.wrap(left, syntax.TypeTypedExpr)
		p.advance()
		p.typeRef(false)
		p.close()
		return n
	case syntax.TypeLArrow:
		n := p.wrap(left, syntax.TypeSetExpr)
		left.As(syntax.RoleLeftExpr)
		p.advance()
		p.blockExpr().As(syntax.RoleRightExpr)
		p.close()
		return n
	}
	return left
}

func (p *parser) tuple() *syntax.Node {
	left := p.binary(1)
	if p.peek() != syntax.TypeComma {
		return left
	}
	n := p.wrap(left, syntax.TypeTupleExpr)
	for p.accept(syntax.TypeComma) != nil {
		if p.atItemStart() {
			p.nextItem()
		}
		p.binary(1)
	}
	p.close()
	return n
}

// infixOp returns the binding power of the current token as an infix
// operator, or 0.
func (p *parser) infixOp() (int, bool) {
	switch p.peek() {
	case syntax.TypeEquals:
		return 5, false
	case syntax.TypeStar:
		return 10, false
	case syntax.TypeSymbolicOp:
		return binaryPrec(p.cur().Text)
	}
	return 0, false
}

// binary parses operators binding at least as tightly as minPrec.
func (p *parser) binary(minPrec int) *syntax.Node {
	p.enter()
	defer p.leave()

	left := p.operand()
	for {
		prec, right := p.infixOp()
		if prec == 0 || prec < minPrec {
			return left
		}
		n := p.wrap(left, syntax.TypeBinaryAppExpr)
		left.As(syntax.RoleLeftExpr)
		p.open(syntax.TypeReferenceExpr).As(syntax.RoleOpRefExpr)
		p.advance()
		p.close()
		if p.atItemStart() {
			p.nextItem()
		}
		next := prec + 1
		if right {
			next = prec
		}
		p.binary(next).As(syntax.RoleRightExpr)
		p.close()
		left = n
	}
}

func (p *parser) operand() *syntax.Node {
	t := p.peek()
	switch {
	case isKeywordExprStart(t):
		return p.keywordExpr()
	case t == syntax.TypeLet || t == syntax.TypeUse:
		return p.letOrUse()
	case t == syntax.TypeSymbolicOp && isPrefixOp(p.peekText()):
		n := p.open(syntax.TypePrefixAppExpr)
		p.open(syntax.TypeReferenceExpr).As(syntax.RoleFuncExpr)
		p.advance()
		p.close()
		p.operand().As(syntax.RoleArgExpr)
		p.close()
		return n
	}
	return p.app()
}

func (p *parser) app() *syntax.Node {
	f := p.postfix()
	for isAtomStart(p.peek()) && p.peek() != syntax.TypeNew {
		n := p.wrap(f, syntax.TypePrefixAppExpr)
		f.As(syntax.RoleFuncExpr)
		p.postfix().As(syntax.RoleArgExpr)
		p.close()
		f = n
	}
	return f
}

// postfix parses an atom followed by member access, method call
// arguments and type arguments written without spaces.
func (p *parser) postfix() *syntax.Node {
	a := p.atom()
	for {
		switch {
		case p.peek() == syntax.TypeDot && p.adjacent():
			t := p.peekRaw(1)
			if t != syntax.TypeIdentifier && t != syntax.TypeLBrack {
				return a
			}
			n := p.wrap(a, syntax.TypeReferenceExpr)
			p.advance()
			if t == syntax.TypeIdentifier {
				p.advance()
			} else {
				n.Type = syntax.TypePrefixAppExpr
				p.atom().As(syntax.RoleArgExpr)
			}
			p.close()
			a = n
		case p.peek() == syntax.TypeLParen && p.adjacent():
			n := p.wrap(a, syntax.TypePrefixAppExpr)
			a.As(syntax.RoleFuncExpr)
			p.atom().As(syntax.RoleArgExpr)
			p.close()
			a = n
		case p.peek() == syntax.TypeSymbolicOp && p.peekText() == "<" && p.adjacent() && p.typeArgsAhead():
			n := p.wrap(a, syntax.TypeReferenceExpr)
			p.typeArgs()
			p.close()
			a = n
		default:
			return a
		}
	}
}

func (p *parser) atom() *syntax.Node {
	p.enter()
	defer p.leave()

	switch p.peek() {
	case syntax.TypeIdentifier, syntax.TypeUnderscore:
		n := p.open(syntax.TypeReferenceExpr)
		p.advance()
		for p.peek() == syntax.TypeDot && p.peekRaw(1) == syntax.TypeIdentifier && p.adjacent() {
			p.advance()
			p.advance()
		}
		p.close()
		return n
	case syntax.TypeNumber, syntax.TypeString, syntax.TypeChar, syntax.TypeTrue, syntax.TypeFalse, syntax.TypeNull:
		n := p.open(syntax.TypeLiteralExpr)
		p.advance()
		p.close()
		return n
	case syntax.TypeLParen:
		return p.paren()
	case syntax.TypeLBrack:
		return p.collection(syntax.TypeListExpr, syntax.TypeRBrack, "']'")
	case syntax.TypeLBrackBar:
		return p.collection(syntax.TypeArrayExpr, syntax.TypeBarRBrack, "'|]'")
	case syntax.TypeLBrace:
		if p.isRecordExpr() {
			return p.recordExpr()
		}
		n := p.open(syntax.TypeComputationExpr)
		opener := p.i
		p.advance()
		p.relaxedBlock(opener).As(syntax.RoleExpr)
		p.expect(syntax.TypeRBrace, "'}'")
		p.close()
		return n
	case syntax.TypeNew:
		n := p.open(syntax.TypeNewExpr)
		p.advance()
		p.typeName()
		if p.peek() == syntax.TypeLParen {
			p.paren().As(syntax.RoleArgExpr)
		}
		p.close()
		return n
	}
	if isKeywordExprStart(p.peek()) {
		return p.keywordExpr()
	}
	p.fail("expected expression, found %s", p.describe())
	return nil
}

func (p *parser) paren() *syntax.Node {
	if p.peekRaw(1) == syntax.TypeRParen {
		n := p.open(syntax.TypeUnitExpr)
		p.advance()
		p.advance()
		p.close()
		return n
	}
	n := p.open(syntax.TypeParenExpr)
	p.advance()
	switch p.peekRaw(0) {
	case syntax.TypeSymbolicOp, syntax.TypeStar, syntax.TypeEquals:
		if p.peekRaw(1) == syntax.TypeRParen {
			p.open(syntax.TypeReferenceExpr)
			p.advance()
			p.close()
			p.advance()
			p.close()
			return n
		}
	}
	p.block().As(syntax.RoleExpr)
	p.expect(syntax.TypeRParen, "')'")
	p.close()
	return n
}

func (p *parser) collection(t, closer syntax.NodeType, what string) *syntax.Node {
	n := p.open(t)
	p.advance()
	if p.peek() != closer {
		p.block().As(syntax.RoleExpr)
	}
	p.expect(closer, what)
	p.close()
	return n
}

// isRecordExpr reports whether the "{" at the current token opens a record
// construction or copy rather than a computation expression body.
func (p *parser) isRecordExpr() bool {
	k := 1
	if p.peekRaw(k) == syntax.TypeRBrace {
		return true
	}
	for p.peekRaw(k) == syntax.TypeIdentifier {
		k++
		if p.peekRaw(k) != syntax.TypeDot {
			break
		}
		k++
	}
	if k > 1 && p.peekRaw(k) == syntax.TypeEquals {
		return true
	}
	depth := 0
	for k = 1; p.i+k < len(p.mean); k++ {
		switch p.peekRaw(k) {
		case syntax.TypeLParen, syntax.TypeLBrack, syntax.TypeLBrace, syntax.TypeLBrackBar:
			depth++
		case syntax.TypeRParen, syntax.TypeRBrack, syntax.TypeBarRBrack:
			depth--
		case syntax.TypeRBrace:
			if depth == 0 {
				return false
			}
			depth--
		case syntax.TypeWith:
			if depth == 0 {
				return true
			}
		case syntax.TypeLet, syntax.TypeLetBang, syntax.TypeDo, syntax.TypeDoBang, syntax.TypeYield,
			syntax.TypeReturn, syntax.TypeFor, syntax.TypeWhile, syntax.TypeMatch, syntax.TypeTry:
			if depth == 0 {
				return false
			}
		}
	}
	return false
}

func (p *parser) recordExpr() *syntax.Node {
	n := p.open(syntax.TypeRecordExpr)
	p.advance()
	if p.peek() == syntax.TypeRBrace {
		p.advance()
		p.close()
		return n
	}
	if !p.startsFieldBinding() {
		p.pushFlat()
		p.binary(1).As(syntax.RoleCopyInfo)
		p.popCtx()
		p.expect(syntax.TypeWith, "'with'")
	}
	if p.peek() != syntax.TypeRBrace {
		markOffside(p.open(syntax.TypeRecordFieldBindingLst))
		p.pushBlock()
		for {
			p.open(syntax.TypeRecordFieldBinding)
			p.longIdent()
			p.expect(syntax.TypeEquals, "'='")
			p.blockExpr().As(syntax.RoleExpr)
			semi := p.accept(syntax.TypeSemicolon) != nil
			p.close()
			if semi && p.peek() == syntax.TypeIdentifier {
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
	return n
}

func (p *parser) startsFieldBinding() bool {
	k := 0
	for p.peekRaw(k) == syntax.TypeIdentifier {
		k++
		if p.peekRaw(k) != syntax.TypeDot {
			break
		}
		k++
	}
	return k > 0 && p.peekRaw(k) == syntax.TypeEquals
}

func (p *parser) keywordExpr() *syntax.Node {
	switch p.peek() {
	case syntax.TypeFun:
		n := p.open(syntax.TypeLambdaExpr)
		opener := p.i
		p.advance()
		for p.peek() != syntax.TypeArrow {
			p.atomPattern()
		}
		p.advance()
		p.relaxedBlock(opener).As(syntax.RoleExpr)
		p.close()
		return n
	case syntax.TypeFunction:
		n := p.open(syntax.TypeMatchLambdaExpr)
		p.advance()
		p.clauses()
		p.close()
		return n
	case syntax.TypeMatch:
		n := p.open(syntax.TypeMatchExpr)
		p.advance()
		p.exprNoSeq().As(syntax.RoleExpr)
		p.expect(syntax.TypeWith, "'with'").As(syntax.RoleWith)
		p.clauses()
		p.close()
		return n
	case syntax.TypeIf:
		n := p.open(syntax.TypeIfThenElseExpr)
		p.advance()
		p.conditional()
		p.close()
		return n
	case syntax.TypeTry:
		n := p.open(syntax.TypeTryWithExpr)
		p.advance()
		p.block().As(syntax.RoleTryExpr)
		switch p.peek() {
		case syntax.TypeWith:
			p.advance()
			p.clauses()
		case syntax.TypeFinally:
			n.Type = syntax.TypeTryFinallyExpr
			p.advance()
			p.block().As(syntax.RoleFinallyExpr)
		default:
			p.fail("expected 'with' or 'finally', found %s", p.describe())
		}
		p.close()
		return n
	case syntax.TypeFor:
		return p.forExpr()
	case syntax.TypeWhile:
		n := p.open(syntax.TypeWhileExpr)
		p.advance()
		p.exprNoSeq()
		p.expect(syntax.TypeDo, "'do'")
		p.block().As(syntax.RoleDoExpr)
		p.accept(syntax.TypeDone)
		p.close()
		return n
	case syntax.TypeDo, syntax.TypeDoBang:
		return p.prefixed(syntax.TypeDoExpr, true)
	case syntax.TypeAssert:
		return p.prefixed(syntax.TypeAssertExpr, false)
	case syntax.TypeLazy:
		return p.prefixed(syntax.TypeLazyExpr, false)
	case syntax.TypeYield, syntax.TypeReturn:
		return p.prefixed(syntax.TypeYieldOrReturnExpr, false)
	}
	p.fail("expected expression, found %s", p.describe())
	return nil
}

// prefixed parses a keyword followed by its operand.
func (p *parser) prefixed(t syntax.NodeType, block bool) *syntax.Node {
	n := p.open(t)
	p.advance()
	if block {
		p.block().As(syntax.RoleExpr)
	} else {
		p.blockExpr().As(syntax.RoleExpr)
	}
	p.close()
	return n
}

// conditional parses the part of an if or elif expression after the
// keyword.
func (p *parser) conditional() {
	p.exprNoSeq().As(syntax.RoleConditionExpr)
	p.expect(syntax.TypeThen, "'then'")
	p.block().As(syntax.RoleThenExpr)
	switch p.peek() {
	case syntax.TypeElse:
		p.advance()
		p.block().As(syntax.RoleElseClause)
	case syntax.TypeElif:
		p.open(syntax.TypeElifExpr).As(syntax.RoleElseClause)
		p.advance()
		p.conditional()
		p.close()
	}
}

func (p *parser) forExpr() *syntax.Node {
	n := p.open(syntax.TypeForEachExpr)
	p.advance()
	if p.peek() == syntax.TypeIdentifier && p.peekRaw(1) == syntax.TypeEquals {
		n.Type = syntax.TypeForExpr
		p.advance()
		p.advance()
		p.exprNoSeq()
		if p.accept(syntax.TypeTo) == nil {
			p.expect(syntax.TypeDownto, "'to' or 'downto'")
		}
		p.exprNoSeq()
		p.expect(syntax.TypeDo, "'do'")
	} else {
		p.pattern(false, false)
		p.expect(syntax.TypeIn, "'in'")
		p.exprNoSeq()
		if p.accept(syntax.TypeArrow) == nil {
			p.expect(syntax.TypeDo, "'do' or '->'")
		}
	}
	p.block().As(syntax.RoleDoExpr)
	p.accept(syntax.TypeDone)
	p.close()
	return n
}

// clauses parses the rules of a match, function or try-with expression.
func (p *parser) clauses() {
	for {
		p.open(syntax.TypeMatchClause).As(syntax.RoleMatchClause)
		p.accept(syntax.TypeBar)
		p.pattern(false, true).As(syntax.RolePattern)
		if p.peek() == syntax.TypeWhen {
			p.open(syntax.TypeWhenClause).As(syntax.RoleWhenClause)
			p.advance()
			p.exprNoSeq().As(syntax.RoleExpr)
			p.close()
		}
		p.expect(syntax.TypeArrow, "'->'")
		// The body may sit at the clause's own column.
		p.pushCtx()
		markOffside(p.seq()).As(syntax.RoleExpr)
		p.popCtx()
		p.close()
		if p.peek() != syntax.TypeBar {
			return
		}
	}
}
