package rules

import (
	"github.com/donaldgifford/fsfmt/internal/formatter"
	"github.com/donaldgifford/fsfmt/internal/settings"
	"github.com/donaldgifford/fsfmt/internal/syntax"
)

var alignThrough = formatter.Indent(formatter.IndentAlignThrough)

// alignedNodes are the nodes whose children line up with their first
// token.
var alignedNodes = []struct {
	name string
	t    syntax.NodeType
}{
	{"MatchClauses", syntax.TypeMatchExpr},
	{"UnionRepresentation", syntax.TypeUnionRepresentation},
	{"EnumCases", syntax.TypeEnumRepresentation},
	{"SequentialExpr", syntax.TypeSequentialExpr},
	{"BinaryExpr", syntax.TypeBinaryAppExpr},
	{"RecordDeclaration", syntax.TypeRecordFieldDeclarationList},
	{"RecordExprBindings", syntax.TypeRecordFieldBindingLst},
	{"MemberDeclarationList", syntax.TypeMemberDeclarationList},
	{"TypeMemberDeclarationList", syntax.TypeTypeMemberDeclarationList},
}

func aligningRules() []formatter.Rule {
	var rules []formatter.Rule
	for _, a := range alignedNodes {
		rules = append(rules, formatter.Rule{
			Name:       a.name + "Alignment",
			Kind:       formatter.KindAligning,
			Pattern:    formatter.Where(formatter.Node().HasType(a.t)),
			Resolution: formatter.Const(alignThrough),
		})
	}

	outdent := formatter.Indent(formatter.IndentOutdent | formatter.IndentExternal)
	opRef := formatter.Node().HasRole(syntax.RoleOpRefExpr)

	return append(rules,
		// Anchored at the first case itself; later cases align with it.
		formatter.Rule{
			Name: "EnumCaseLikeDeclarations",
			Kind: formatter.KindAligning,
			Pattern: formatter.Where(
				formatter.Parent().InSet(syntax.SimpleTypeRepresentations),
				formatter.Node().InSet(syntax.EnumCaseLikeDeclarations).Satisfies(firstOfType),
			),
			Close:      throughLastChild,
			Resolution: formatter.Const(alignThrough),
		},
		formatter.Rule{
			Name: "OutdentBinaryOperators",
			Kind: formatter.KindAligning,
			Pattern: formatter.Where(
				formatter.Parent().HasType(syntax.TypeBinaryAppExpr),
				opRef.Satisfies(isNotPipeOperator),
			),
			Resolution: formatter.Switch(settings.OutdentBinaryOperators,
				formatter.When(settings.Bool(true)).Return(outdent),
			),
		},
		formatter.Rule{
			Name: "OutdentPipeOperators",
			Kind: formatter.KindAligning,
			Pattern: formatter.Where(
				formatter.Parent().HasType(syntax.TypeBinaryAppExpr),
				opRef.Satisfies(isPipeOperator),
			),
			Resolution: formatter.Switch(settings.OutdentBinaryOperators,
				formatter.When(settings.Bool(true)).Switch(settings.NeverOutdentPipeOperators,
					formatter.When(settings.Bool(false)).Return(outdent),
				),
			),
		},
	)
}
