package rules

import (
	"github.com/donaldgifford/fsfmt/internal/formatter"
	"github.com/donaldgifford/fsfmt/internal/syntax"
)

func afterAccessModifier(ctx *formatter.Context, n *syntax.Node) bool {
	return ctx.AccessModifiers.Contains(n.PrevMeaningfulSibling())
}

func hasAccessModifier(_ *formatter.Context, n *syntax.Node) bool {
	return n.ChildByRole(syntax.RoleAccessModifier) != nil
}

func firstOfType(_ *formatter.Context, n *syntax.Node) bool {
	return syntax.IsFirstOfType(n)
}

func afterEquals(_ *formatter.Context, n *syntax.Node) bool {
	prev := n.PrevMeaningfulSibling()
	return prev != nil && prev.Type == syntax.TypeEquals
}

// notMultilineComputation rejects a computation expression argument that
// spans lines; its braces carry the layout instead.
func notMultilineComputation(_ *formatter.Context, n *syntax.Node) bool {
	return n.Type != syntax.TypeComputationExpr || !syntax.ContainsLineBreak(n)
}

// indentsElse holds for an else branch whose keyword starts a line.
func indentsElse(_ *formatter.Context, n *syntax.Node) bool {
	prev := n.PrevMeaningfulSibling()
	return prev != nil && syntax.IsFirstOnLine(prev) && n.Type != syntax.TypeElifExpr
}

// indentsClauseBody holds for a match clause unless it is the last one and
// its body is aligned with it.
func indentsClauseBody(_ *formatter.Context, clause *syntax.Node) bool {
	if clause.Type != syntax.TypeMatchClause {
		return false
	}
	body := clause.ChildByRole(syntax.RoleExpr)
	if body == nil {
		return false
	}
	return !syntax.IsLastOfType(clause) || syntax.LineIndent(clause) != syntax.LineIndent(body)
}

func isPipeOperator(ctx *formatter.Context, n *syntax.Node) bool {
	if n.Type != syntax.TypeReferenceExpr {
		return false
	}
	op := syntax.LastToken(n)
	return op != nil && ctx.IsPipeOperator(op.Text)
}

func isNotPipeOperator(ctx *formatter.Context, n *syntax.Node) bool {
	return !isPipeOperator(ctx, n)
}

func endsWithSemicolon(_ *formatter.Context, n *syntax.Node) bool {
	return n.ChildOfType(syntax.TypeSemicolon) != nil
}

func lacksSemicolon(ctx *formatter.Context, n *syntax.Node) bool {
	return !endsWithSemicolon(ctx, n)
}

// throughLastChild extends a region to the end of the node's parent.
func throughLastChild(_ *formatter.Context, n *syntax.Node) *syntax.Node {
	return n.Parent.LastChild()
}
