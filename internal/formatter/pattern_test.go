package formatter

import (
	"testing"

	"github.com/donaldgifford/fsfmt/internal/fsharp"
	"github.com/donaldgifford/fsfmt/internal/settings"
	"github.com/donaldgifford/fsfmt/internal/syntax"
)

func mustParse(t *testing.T, src string) *syntax.Node {
	t.Helper()
	root, err := fsharp.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return root
}

func testContext(root *syntax.Node) *Context {
	return &Context{Settings: settings.FSharp().Defaults(), Root: root}
}

func TestPatternAtNodeSites(t *testing.T) {
	root := mustParse(t, "let x = a + b\n")
	ctx := testContext(root)
	bin := syntax.Find(root, syntax.TypeBinaryAppExpr)[0]
	refs := syntax.Find(root, syntax.TypeReferenceExpr)
	left, op := refs[0], refs[1]

	startsWithA := func(_ *Context, n *syntax.Node) bool { return syntax.FirstToken(n).Text == "a" }

	tests := []struct {
		name string
		p    Pattern
		n    *syntax.Node
		want bool
	}{
		{"type", Where(Node().In(syntax.TypeBinaryAppExpr)), bin, true},
		{"wrong type", Where(Node().In(syntax.TypeBinaryAppExpr)), left, false},
		{"role", Where(Node().HasRole(syntax.RoleOpRefExpr)), op, true},
		{"type and role", Where(Node().In(syntax.TypeReferenceExpr).HasRole(syntax.RoleLeftExpr)), op, false},
		{"or", Where(Node().In(syntax.TypeNamedPat).Or().HasRole(syntax.RoleLeftExpr)), left, true},
		{"parent", Where(Node().HasRole(syntax.RoleLeftExpr), Parent().In(syntax.TypeBinaryAppExpr)), left, true},
		{"left sibling", Where(Left().HasRole(syntax.RoleLeftExpr)), op, true},
		{"no left sibling", Where(Left()), left, false},
		{"no parent", Where(Parent()), root, false},
		{"predicate", Where(Node().Satisfies(startsWithA)), left, true},
		{"predicate fails", Where(Node().Satisfies(startsWithA)), op, false},
		{"zero pattern", Pattern{}, bin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Matches(ctx, NodeSite(tt.n)); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPatternAtBoundaries(t *testing.T) {
	root := mustParse(t, "let x = a + b\n")
	ctx := testContext(root)
	toks := syntax.Tokens(root)
	a, plus, b := toks[3], toks[4], toks[5]

	leftOp := BoundarySite(a, plus)
	rightOp := BoundarySite(plus, b)
	if leftOp.Parent.Type != syntax.TypeBinaryAppExpr || !leftOp.IsBoundary() {
		t.Fatalf("boundary parent = %s", leftOp.Parent.Type)
	}

	shared := Node().In(syntax.TypeReferenceExpr)
	p := Where(Left().Is(shared).HasRole(syntax.RoleOpRefExpr))

	if p.Matches(ctx, leftOp) || !p.Matches(ctx, rightOp) {
		t.Error("pattern matched the wrong boundary")
	}
	m := p.Mirror()
	if !m.Matches(ctx, leftOp) || m.Matches(ctx, rightOp) {
		t.Error("mirrored pattern matched the wrong boundary")
	}
}

func TestClauseIsImmutable(t *testing.T) {
	base := Node().In(syntax.TypeMatchExpr)
	_ = base.Or().In(syntax.TypeTryWithExpr)
	_ = base.HasRole(syntax.RoleExpr)

	if len(base.Alts) != 1 || base.Alts[0].HasRole {
		t.Error("builder modified its receiver")
	}
	if base.Alts[0].Types.Has(syntax.TypeTryWithExpr) {
		t.Error("Or leaked into the first alternative")
	}
}

func TestPatternString(t *testing.T) {
	p := Where(
		Node().In(syntax.TypeMatchExpr).HasRole(syntax.RoleChameleonExpr),
		Parent().In(syntax.TypeTopBinding).Or().In(syntax.TypeLocalBinding),
	)
	want := "Node().In{MATCH_EXPR}.HasRole(CHAMELEON_EXPR), Parent().In{TOP_BINDING}.Or().In{LOCAL_BINDING}"
	if got := p.String(); got != want {
		t.Errorf("String() =\n %s\nwant\n %s", got, want)
	}
}
