package rules

import (
	"github.com/donaldgifford/fsfmt/internal/formatter"
	"github.com/donaldgifford/fsfmt/internal/settings"
	"github.com/donaldgifford/fsfmt/internal/syntax"
)

func interval(t formatter.IntervalFormatType) formatter.Directive {
	return formatter.Interval(t)
}

func formattingRules() []formatter.Rule {
	rules := []formatter.Rule{
		{
			Name:  "DeclarationsSpaces",
			Kind:  formatter.KindSpacing,
			Group: formatter.GroupSpace,
			Pattern: formatter.Where(formatter.Parent().In(
				syntax.TypeEnumCaseDeclaration,
				syntax.TypeUnionCaseDeclaration,
				syntax.TypeUnionCaseFieldDeclList,
			)),
			Resolution: formatter.Const(interval(formatter.IntervalSpace)),
		},
		{
			Name:    "SpaceBeforeColon",
			Kind:    formatter.KindSpacing,
			Group:   formatter.GroupSpace,
			Pattern: formatter.Where(formatter.Right().In(syntax.TypeColon)),
			Resolution: formatter.Switch(settings.SpaceBeforeColon,
				formatter.When(settings.Bool(true)).Return(interval(formatter.IntervalSpace)),
				formatter.When(settings.Bool(false)).Return(interval(formatter.IntervalEmpty)),
			),
		},
		{
			Name:  "NoSpaceInUnit",
			Kind:  formatter.KindSpacing,
			Group: formatter.GroupSpace,
			Pattern: formatter.Where(
				formatter.Parent().In(syntax.TypeUnitExpr, syntax.TypeUnitPat),
				formatter.Left().In(syntax.TypeLParen),
				formatter.Right().In(syntax.TypeRParen),
			),
			Resolution: formatter.Const(interval(formatter.IntervalOnlyEmpty)),
		},
		{
			Name:  "LineBreakAfterTypeReprAccessModifier",
			Kind:  formatter.KindLineBreak,
			Group: formatter.GroupLineBreaks,
			Pattern: formatter.Where(
				formatter.Parent().InSet(syntax.SimpleTypeRepresentations).Satisfies(hasAccessModifier),
				formatter.Right().InSet(syntax.EnumCaseLikeDeclarations).Satisfies(firstOfType),
			),
			Resolution: formatter.Switch(settings.LineBreakAfterTypeReprAccessModifier,
				formatter.When(settings.Bool(true)).Return(interval(formatter.IntervalNewLine)),
			),
		},
	}
	rules = append(rules, lineBreakInNode("TypeDeclaration",
		formatter.Node().In(syntax.TypeTypeDeclaration),
		formatter.Node().InSet(syntax.TypeRepresentations).Satisfies(afterEquals),
		settings.DeclarationBodyOnTheSameLine,
		settings.KeepExistingLineBreakBeforeDeclarationBody,
	)...)

	bindings := formatter.Right().HasType(syntax.TypeRecordFieldBinding)
	braces := formatter.Rule{
		Name: "SpacesAroundRecordExprBraces",
		Kind: formatter.KindSpacing,
		Pattern: formatter.Where(
			formatter.Parent().HasType(syntax.TypeRecordExpr),
			formatter.Left().In(syntax.TypeLBrace, syntax.TypeRBrace),
			formatter.Right().
				In(syntax.TypeRecordFieldBindingLst, syntax.TypeBlockComment).
				Or().
				HasRole(syntax.RoleCopyInfo),
		),
		Resolution: formatter.Const(interval(formatter.IntervalOnlySpace)),
	}

	return append(rules,
		formatter.Rule{
			Name:       "SpaceAfterImplicitConstructorDecl",
			Kind:       formatter.KindSpacing,
			Group:      formatter.GroupSpace,
			Pattern:    formatter.Where(formatter.Left().HasType(syntax.TypePrimaryConstructorDeclaration)),
			Resolution: formatter.Const(interval(formatter.IntervalSpace)),
		},
		formatter.Rule{
			Name:       "SpacesInMemberConstructorDecl",
			Kind:       formatter.KindSpacing,
			Group:      formatter.GroupSpace,
			Pattern:    formatter.Where(formatter.Parent().HasType(syntax.TypeSecondaryConstructorDecl)),
			Resolution: formatter.Const(interval(formatter.IntervalSpace)),
		},
		formatter.Rule{
			Name: "SpaceBetweenRecordBindings",
			Kind: formatter.KindSpacing,
			Pattern: formatter.Where(
				formatter.Left().HasType(syntax.TypeRecordFieldBinding).Satisfies(endsWithSemicolon),
				bindings,
			),
			Resolution: formatter.Const(interval(formatter.IntervalSpace)),
		},
		formatter.Rule{
			Name:  "LineBreaksBetweenRecordBindings",
			Kind:  formatter.KindLineBreak,
			Group: formatter.GroupLineBreaks,
			Pattern: formatter.Where(
				formatter.Left().HasType(syntax.TypeRecordFieldBinding).Satisfies(lacksSemicolon),
				bindings,
			),
			Resolution: formatter.Const(interval(formatter.IntervalNewLine)),
		},
		braces,
		braces.Mirrored("SpacesAroundRecordExprBracesAndViceVersa"),
	)
}

// lineBreakInNode describes where the body of a declaration goes relative
// to its "=": a wrap rule on the containing node plus a line-break rule
// and a space rule on the boundary before the body.
func lineBreakInNode(name string, containing, body formatter.Clause, onSameLine, keepLineBreak settings.Key) []formatter.Rule {
	var (
		never  = settings.Enum(settings.SameLineNever)
		always = settings.Enum(settings.SameLineAlways)
		single = settings.Enum(settings.SameLineIfOwnerIsSingleLine)
	)
	boundary := formatter.Where(
		formatter.Parent().Is(containing),
		formatter.Right().Is(body),
	)
	return []formatter.Rule{
		{
			Name:    name + "Wrap",
			Kind:    formatter.KindWrap,
			Pattern: formatter.Where(formatter.Node().Is(containing)),
			Resolution: formatter.Switch(keepLineBreak,
				formatter.When(settings.Bool(false)).Switch(onSameLine,
					formatter.When(single).Return(formatter.Wrap(formatter.WrapChop|formatter.WrapPseudoStartBeforeExternal)),
				),
			),
		},
		{
			Name:    name + "NewLine",
			Kind:    formatter.KindLineBreak,
			Group:   formatter.GroupLineBreaks | formatter.GroupWrap,
			Pattern: boundary,
			Resolution: formatter.Switch(keepLineBreak,
				formatter.When(settings.Bool(true)).Switch(onSameLine,
					formatter.When(never).Return(interval(formatter.IntervalNewLine)),
					formatter.When(always, single).Return(interval(formatter.IntervalDoNotRemoveUserNewLines)),
				),
				formatter.When(settings.Bool(false)).Switch(onSameLine,
					formatter.When(never).Return(interval(formatter.IntervalNewLine)),
					formatter.When(always).Return(interval(formatter.IntervalRemoveUserNewLines)),
					formatter.When(single).Return(interval(
						formatter.IntervalRemoveUserNewLines|formatter.IntervalInsertNewLineConditionally)),
				),
			),
		},
		{
			Name:       name + "Space",
			Kind:       formatter.KindSpacing,
			Group:      formatter.GroupSpace,
			Pattern:    boundary,
			Resolution: formatter.Const(interval(formatter.IntervalSpace)),
			Priority:   3,
		},
	}
}
