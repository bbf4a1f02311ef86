package rules

import (
	"github.com/donaldgifford/fsfmt/internal/formatter"
	"github.com/donaldgifford/fsfmt/internal/settings"
	"github.com/donaldgifford/fsfmt/internal/syntax"
)

var (
	external = formatter.Indent(formatter.IndentExternal)
	noIndent = formatter.Indent(formatter.IndentNone)
)

type slot struct {
	name   string
	parent syntax.NodeType
	role   syntax.Role
}

// indentedSlots are the child slots indented one level from the line their
// parent starts on.
var indentedSlots = []slot{
	{"NestedModuleDeclaration", syntax.TypeNestedModuleDeclaration, syntax.RoleModuleMember},
	{"TopBinding", syntax.TypeTopBinding, syntax.RoleChameleonExpr},
	{"LocalBinding", syntax.TypeLocalBinding, syntax.RoleExpr},
	{"NestedModuleDeclName", syntax.TypeNestedModuleDeclaration, syntax.RoleIdentifier},
	{"NamedModuleDeclName", syntax.TypeNamedModuleDeclaration, syntax.RoleIdentifier},

	{"ForExpr", syntax.TypeForExpr, syntax.RoleDoExpr},
	{"ForEachExpr", syntax.TypeForEachExpr, syntax.RoleDoExpr},
	{"WhileExpr", syntax.TypeWhileExpr, syntax.RoleDoExpr},
	{"DoExpr", syntax.TypeDoExpr, syntax.RoleExpr},
	{"AssertExpr", syntax.TypeAssertExpr, syntax.RoleExpr},
	{"LazyExpr", syntax.TypeLazyExpr, syntax.RoleExpr},
	{"ComputationExpr", syntax.TypeComputationExpr, syntax.RoleExpr},
	{"SetExpr", syntax.TypeSetExpr, syntax.RoleRightExpr},
	{"TryFinally_TryExpr", syntax.TypeTryFinallyExpr, syntax.RoleTryExpr},
	{"TryFinally_FinallyExpr", syntax.TypeTryFinallyExpr, syntax.RoleFinallyExpr},
	{"TryWith_TryExpr", syntax.TypeTryWithExpr, syntax.RoleTryExpr},
	{"IfThenExpr", syntax.TypeIfThenElseExpr, syntax.RoleThenExpr},
	{"ElifThenExpr", syntax.TypeElifExpr, syntax.RoleThenExpr},
	{"LambdaExprBody", syntax.TypeLambdaExpr, syntax.RoleExpr},
	{"MatchExpr_Expr", syntax.TypeMatchExpr, syntax.RoleExpr},
	{"MatchExpr_With", syntax.TypeMatchExpr, syntax.RoleWith},

	{"TypeDeclarationRepr", syntax.TypeTypeDeclaration, syntax.RoleTypeRepr},
	{"TypeDeclarationMemberList", syntax.TypeTypeDeclaration, syntax.RoleMemberList},
	{"ClassReprTypeMemberList", syntax.TypeClassRepresentation, syntax.RoleMemberList},
	{"StructReprTypeMemberList", syntax.TypeStructRepresentation, syntax.RoleMemberList},
	{"InterfaceReprTypeMemberList", syntax.TypeInterfaceRepresentation, syntax.RoleMemberList},
	{"ExceptionMemberList", syntax.TypeExceptionDeclaration, syntax.RoleMemberList},
	{"InterfaceImplMemberList", syntax.TypeInterfaceImplementation, syntax.RoleMemberList},
	{"ModuleAbbreviationDeclaration", syntax.TypeModuleAbbreviationDeclaration, syntax.RoleTypeReference},

	{"MemberDeclarationBody", syntax.TypeMemberDeclaration, syntax.RoleChameleonExpr},
	{"SecondaryConstructorBody", syntax.TypeSecondaryConstructorDecl, syntax.RoleExpr},
}

func indentingRules() []formatter.Rule {
	rules := make([]formatter.Rule, 0, len(indentedSlots)+8)
	for _, s := range indentedSlots {
		rules = append(rules, formatter.Rule{
			Name: s.name + "Indent",
			Kind: formatter.KindIndenting,
			Pattern: formatter.Where(
				formatter.Parent().HasType(s.parent),
				formatter.Node().HasRole(s.role),
			),
			Resolution: formatter.Const(external),
		})
	}

	return append(rules,
		formatter.Rule{
			Name:       "ContinuousIndent",
			Kind:       formatter.KindIndenting,
			Pattern:    formatter.Where(formatter.Node().In(syntax.TypeUnitExpr, syntax.TypeUnitPat)),
			Except:     formatter.Where(formatter.Node().In(syntax.TypeAttributeList)),
			Resolution: formatter.Const(formatter.Indent(formatter.IndentContinuous)),
		},
		// The region is anchored at the first case after the access
		// modifier, not at the modifier, and runs to the end of the repr.
		formatter.Rule{
			Name: "SimpleTypeRepr_Accessibility",
			Kind: formatter.KindIndenting,
			Pattern: formatter.Where(
				formatter.Parent().InSet(syntax.SimpleTypeRepresentations),
				formatter.Node().Satisfies(afterAccessModifier),
			),
			Close:      throughLastChild,
			Resolution: formatter.Const(external),
		},
		formatter.Rule{
			Name: "TryWith_WithClauseIndent",
			Kind: formatter.KindIndenting,
			Pattern: formatter.Where(
				formatter.Parent().HasType(syntax.TypeTryWithExpr),
				formatter.Node().HasRole(syntax.RoleMatchClause),
			),
			Resolution: formatter.Switch(settings.IndentOnTryWith,
				formatter.When(settings.Bool(true)).Return(external),
				formatter.When(settings.Bool(false)).Return(noIndent),
			),
		},
		formatter.Rule{
			Name: "PrefixAppExprIndent",
			Kind: formatter.KindIndenting,
			Pattern: formatter.Where(
				formatter.Parent().HasType(syntax.TypePrefixAppExpr),
				formatter.Node().HasRole(syntax.RoleArgExpr).Satisfies(notMultilineComputation),
			),
			Resolution: formatter.Const(external),
		},
		formatter.Rule{
			Name: "ElseExprIndent",
			Kind: formatter.KindIndenting,
			Pattern: formatter.Where(
				formatter.Parent().In(syntax.TypeIfThenElseExpr, syntax.TypeElifExpr),
				formatter.Node().HasRole(syntax.RoleElseClause).Satisfies(indentsElse),
			),
			Resolution: formatter.Const(external),
		},
		formatter.Rule{
			Name: "MatchClauseExprIndent",
			Kind: formatter.KindIndenting,
			Pattern: formatter.Where(
				formatter.Node().HasRole(syntax.RoleExpr),
				formatter.Parent().HasType(syntax.TypeMatchClause).Satisfies(indentsClauseBody),
			),
			Resolution: formatter.Const(external),
		},
		formatter.Rule{
			Name: "MatchClauseWhenExprIndent",
			Kind: formatter.KindIndenting,
			Pattern: formatter.Where(
				formatter.Parent().HasType(syntax.TypeMatchClause),
				formatter.Node().HasRole(syntax.RoleWhenClause),
			),
			Resolution: formatter.Const(external),
			Priority:   2,
		},
		formatter.Rule{
			Name: "DoDeclIndent",
			Kind: formatter.KindIndenting,
			Pattern: formatter.Where(
				formatter.Parent().HasType(syntax.TypeDoStatement),
				formatter.Node().HasRole(syntax.RoleChameleonExpr),
			),
			Resolution: formatter.Const(external),
		},
	)
}
