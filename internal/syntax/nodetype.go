// Package syntax defines the lossless syntax tree the formatter works on:
// node types, roles, nodes, and the navigation queries rules rely on.
package syntax

import "strconv"

// NodeType classifies a syntax tree node. Token types come first, followed
// by composite types; the split is marked by compositeStart.
type NodeType uint8

const (
	// TypeInvalid is the zero value and never appears in a finished tree.
	TypeInvalid NodeType = iota // INVALID

	// Trivia.
	TypeWhitespace   // WHITESPACE
	TypeNewLine      // NEW_LINE
	TypeLineComment  // LINE_COMMENT
	TypeBlockComment // BLOCK_COMMENT

	// Literals and names.
	TypeIdentifier // IDENTIFIER
	TypeNumber     // NUMBER
	TypeString     // STRING
	TypeChar       // CHAR
	TypeSymbolicOp // SYMBOLIC_OP

	// Punctuation.
	TypeLParen        // LPAREN
	TypeRParen        // RPAREN
	TypeLBrace        // LBRACE
	TypeRBrace        // RBRACE
	TypeLBrack        // LBRACK
	TypeRBrack        // RBRACK
	TypeLBrackBar     // LBRACK_BAR
	TypeBarRBrack     // BAR_RBRACK
	TypeLBrackLess    // LBRACK_LESS
	TypeGreaterRBrack // GREATER_RBRACK
	TypeEquals        // EQUALS
	TypeColon         // COLON
	TypeSemicolon     // SEMICOLON
	TypeComma         // COMMA
	TypeDot           // DOT
	TypeBar           // BAR
	TypeStar          // STAR
	TypeArrow         // RARROW
	TypeLArrow        // LARROW
	TypeUnderscore    // UNDERSCORE

	// Keywords.
	TypeAbstract  // ABSTRACT
	TypeAnd       // AND
	TypeAs        // AS
	TypeAssert    // ASSERT
	TypeClass     // CLASS
	TypeDefault   // DEFAULT
	TypeDo        // DO
	TypeDoBang    // DO_BANG
	TypeDone      // DONE
	TypeDownto    // DOWNTO
	TypeElif      // ELIF
	TypeElse      // ELSE
	TypeEnd       // END
	TypeException // EXCEPTION
	TypeFalse     // FALSE
	TypeFinally   // FINALLY
	TypeFor       // FOR
	TypeFun       // FUN
	TypeFunction  // FUNCTION
	TypeIf        // IF
	TypeIn        // IN
	TypeInherit   // INHERIT
	TypeInline    // INLINE
	TypeInterface // INTERFACE
	TypeInternal  // INTERNAL
	TypeLazy      // LAZY
	TypeLet       // LET
	TypeLetBang   // LET_BANG
	TypeMatch     // MATCH
	TypeMember    // MEMBER
	TypeModule    // MODULE
	TypeMutable   // MUTABLE
	TypeNamespace // NAMESPACE
	TypeNew       // NEW
	TypeNull      // NULL
	TypeOf        // OF
	TypeOpen      // OPEN
	TypeOverride  // OVERRIDE
	TypePrivate   // PRIVATE
	TypePublic    // PUBLIC
	TypeRec       // REC
	TypeReturn    // RETURN
	TypeStatic    // STATIC
	TypeStruct    // STRUCT
	TypeThen      // THEN
	TypeTo        // TO
	TypeTrue      // TRUE
	TypeTry       // TRY
	TypeType      // TYPE
	TypeUse       // USE
	TypeUseBang   // USE_BANG
	TypeVal       // VAL
	TypeWhen      // WHEN
	TypeWhile     // WHILE
	TypeWith      // WITH
	TypeYield     // YIELD

	compositeStart

	// Declarations.
	TypeFile                          // FILE
	TypeNamedModuleDeclaration        // NAMED_MODULE_DECLARATION
	TypeNamespaceDeclaration          // NAMESPACE_DECLARATION
	TypeNestedModuleDeclaration       // NESTED_MODULE_DECLARATION
	TypeModuleAbbreviationDeclaration // MODULE_ABBREVIATION_DECLARATION
	TypeOpenStatement                 // OPEN_STATEMENT
	TypeLetModuleDecl                 // LET_MODULE_DECL
	TypeTopBinding                    // TOP_BINDING
	TypeDoStatement                   // DO_STATEMENT
	TypeAttributeList                 // ATTRIBUTE_LIST
	TypeLongIdentifier                // LONG_IDENTIFIER
	TypeTypeDeclaration               // F_SHARP_TYPE_DECLARATION
	TypeExceptionDeclaration          // EXCEPTION_DECLARATION
	TypeTypeParameterList             // TYPE_PARAMETER_LIST
	TypePrimaryConstructorDeclaration // PRIMARY_CONSTRUCTOR_DECLARATION
	TypeSecondaryConstructorDecl      // SECONDARY_CONSTRUCTOR_DECLARATION
	TypeUnionRepresentation           // UNION_REPRESENTATION
	TypeUnionCaseDeclaration          // UNION_CASE_DECLARATION
	TypeUnionCaseFieldDeclList        // UNION_CASE_FIELD_DECLARATION_LIST
	TypeUnionCaseFieldDeclaration     // UNION_CASE_FIELD_DECLARATION
	TypeEnumRepresentation            // ENUM_REPRESENTATION
	TypeEnumCaseDeclaration           // ENUM_CASE_DECLARATION
	TypeRecordRepresentation          // RECORD_REPRESENTATION
	TypeRecordFieldDeclarationList    // RECORD_FIELD_DECLARATION_LIST
	TypeRecordFieldDeclaration        // RECORD_FIELD_DECLARATION
	TypeClassRepresentation           // CLASS_REPRESENTATION
	TypeStructRepresentation          // STRUCT_REPRESENTATION
	TypeInterfaceRepresentation       // INTERFACE_REPRESENTATION
	TypeAbbreviationRepresentation    // TYPE_ABBREVIATION_REPRESENTATION
	TypeTypeMemberDeclarationList     // TYPE_MEMBER_DECLARATION_LIST
	TypeMemberDeclarationList         // MEMBER_DECLARATION_LIST
	TypeMemberDeclaration             // MEMBER_DECLARATION
	TypeValFieldDeclaration           // VAL_FIELD_DECLARATION
	TypeInterfaceImplementation       // INTERFACE_IMPLEMENTATION
	TypeTypeReference                 // TYPE_REFERENCE
	TypeReturnTypeInfo                // RETURN_TYPE_INFO

	// Expressions.
	TypeLetOrUseExpr          // LET_OR_USE_EXPR
	TypeLocalBinding          // LOCAL_BINDING
	TypeForExpr               // FOR_EXPR
	TypeForEachExpr           // FOR_EACH_EXPR
	TypeWhileExpr             // WHILE_EXPR
	TypeDoExpr                // DO_EXPR
	TypeAssertExpr            // ASSERT_EXPR
	TypeLazyExpr              // LAZY_EXPR
	TypeComputationExpr       // COMPUTATION_EXPR
	TypeSetExpr               // SET_EXPR
	TypeTryFinallyExpr        // TRY_FINALLY_EXPR
	TypeTryWithExpr           // TRY_WITH_EXPR
	TypeIfThenElseExpr        // IF_THEN_ELSE_EXPR
	TypeElifExpr              // ELIF_EXPR
	TypeLambdaExpr            // LAMBDA_EXPR
	TypeMatchExpr             // MATCH_EXPR
	TypeMatchLambdaExpr       // MATCH_LAMBDA_EXPR
	TypeMatchClause           // MATCH_CLAUSE
	TypeWhenClause            // WHEN_CLAUSE
	TypePrefixAppExpr         // PREFIX_APP_EXPR
	TypeBinaryAppExpr         // BINARY_APP_EXPR
	TypeReferenceExpr         // REFERENCE_EXPR
	TypeParenExpr             // PAREN_EXPR
	TypeUnitExpr              // UNIT_EXPR
	TypeTupleExpr             // TUPLE_EXPR
	TypeListExpr              // LIST_EXPR
	TypeArrayExpr             // ARRAY_EXPR
	TypeLiteralExpr           // LITERAL_EXPR
	TypeRecordExpr            // RECORD_EXPR
	TypeRecordFieldBindingLst // RECORD_FIELD_BINDING_LIST
	TypeRecordFieldBinding    // RECORD_FIELD_BINDING
	TypeSequentialExpr        // SEQUENTIAL_EXPR
	TypeTypedExpr             // TYPED_EXPR
	TypeNewExpr               // NEW_EXPR
	TypeYieldOrReturnExpr     // YIELD_OR_RETURN_EXPR

	// Patterns.
	TypeUnitPat      // UNIT_PAT
	TypeNamedPat     // NAMED_PAT
	TypeWildPat      // WILD_PAT
	TypeConstPat     // CONST_PAT
	TypeParenPat     // PAREN_PAT
	TypeTuplePat     // TUPLE_PAT
	TypeLongIdentPat // LONG_IDENT_PAT
	TypeListPat      // LIST_PAT
	TypeOrPat        // OR_PAT
	TypeAsPat        // AS_PAT
	TypeTypedPat     // TYPED_PAT
	TypeConsPat      // CONS_PAT

	typeCount
)

// IsToken reports whether t is a leaf (token) type.
func (t NodeType) IsToken() bool {
	return t > TypeInvalid && t < compositeStart
}

// IsComposite reports whether t is a composite (interior node) type.
func (t NodeType) IsComposite() bool {
	return t > compositeStart && t < typeCount
}

// IsWhitespace reports whether t is a whitespace or line break token.
func (t NodeType) IsWhitespace() bool {
	return t == TypeWhitespace || t == TypeNewLine
}

// IsComment reports whether t is a comment token.
func (t NodeType) IsComment() bool {
	return t == TypeLineComment || t == TypeBlockComment
}

// IsTrivia reports whether t carries no syntactic meaning: whitespace,
// line breaks and comments.
func (t NodeType) IsTrivia() bool {
	return t.IsWhitespace() || t.IsComment()
}

// String returns the node type's upper-case name, e.g. "MATCH_EXPR".
func (t NodeType) String() string {
	if int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return "NodeType(" + strconv.Itoa(int(t)) + ")"
}

// ParseNodeType returns the type with the given name.
func ParseNodeType(name string) (NodeType, bool) {
	t, ok := typesByName[name]
	return t, ok
}

var typesByName = func() map[string]NodeType {
	m := make(map[string]NodeType, len(typeNames))
	for i, name := range typeNames {
		if name != "" {
			m[name] = NodeType(i)
		}
	}
	return m
}()

var typeNames = [typeCount]string{
	TypeInvalid:       "INVALID",
	TypeWhitespace:    "WHITESPACE",
	TypeNewLine:       "NEW_LINE",
	TypeLineComment:   "LINE_COMMENT",
	TypeBlockComment:  "BLOCK_COMMENT",
	TypeIdentifier:    "IDENTIFIER",
	TypeNumber:        "NUMBER",
	TypeString:        "STRING",
	TypeChar:          "CHAR",
	TypeSymbolicOp:    "SYMBOLIC_OP",
	TypeLParen:        "LPAREN",
	TypeRParen:        "RPAREN",
	TypeLBrace:        "LBRACE",
	TypeRBrace:        "RBRACE",
	TypeLBrack:        "LBRACK",
	TypeRBrack:        "RBRACK",
	TypeLBrackBar:     "LBRACK_BAR",
	TypeBarRBrack:     "BAR_RBRACK",
	TypeLBrackLess:    "LBRACK_LESS",
	TypeGreaterRBrack: "GREATER_RBRACK",
	TypeEquals:        "EQUALS",
	TypeColon:         "COLON",
	TypeSemicolon:     "SEMICOLON",
	TypeComma:         "COMMA",
	TypeDot:           "DOT",
	TypeBar:           "BAR",
	TypeStar:          "STAR",
	TypeArrow:         "RARROW",
	TypeLArrow:        "LARROW",
	TypeUnderscore:    "UNDERSCORE",

	TypeAbstract:  "ABSTRACT",
	TypeAnd:       "AND",
	TypeAs:        "AS",
	TypeAssert:    "ASSERT",
	TypeClass:     "CLASS",
	TypeDefault:   "DEFAULT",
	TypeDo:        "DO",
	TypeDoBang:    "DO_BANG",
	TypeDone:      "DONE",
	TypeDownto:    "DOWNTO",
	TypeElif:      "ELIF",
	TypeElse:      "ELSE",
	TypeEnd:       "END",
	TypeException: "EXCEPTION",
	TypeFalse:     "FALSE",
	TypeFinally:   "FINALLY",
	TypeFor:       "FOR",
	TypeFun:       "FUN",
	TypeFunction:  "FUNCTION",
	TypeIf:        "IF",
	TypeIn:        "IN",
	TypeInherit:   "INHERIT",
	TypeInline:    "INLINE",
	TypeInterface: "INTERFACE",
	TypeInternal:  "INTERNAL",
	TypeLazy:      "LAZY",
	TypeLet:       "LET",
	TypeLetBang:   "LET_BANG",
	TypeMatch:     "MATCH",
	TypeMember:    "MEMBER",
	TypeModule:    "MODULE",
	TypeMutable:   "MUTABLE",
	TypeNamespace: "NAMESPACE",
	TypeNew:       "NEW",
	TypeNull:      "NULL",
	TypeOf:        "OF",
	TypeOpen:      "OPEN",
	TypeOverride:  "OVERRIDE",
	TypePrivate:   "PRIVATE",
	TypePublic:    "PUBLIC",
	TypeRec:       "REC",
	TypeReturn:    "RETURN",
	TypeStatic:    "STATIC",
	TypeStruct:    "STRUCT",
	TypeThen:      "THEN",
	TypeTo:        "TO",
	TypeTrue:      "TRUE",
	TypeTry:       "TRY",
	TypeType:      "TYPE",
	TypeUse:       "USE",
	TypeUseBang:   "USE_BANG",
	TypeVal:       "VAL",
	TypeWhen:      "WHEN",
	TypeWhile:     "WHILE",
	TypeWith:      "WITH",
	TypeYield:     "YIELD",

	TypeFile:                          "FILE",
	TypeNamedModuleDeclaration:        "NAMED_MODULE_DECLARATION",
	TypeNamespaceDeclaration:          "NAMESPACE_DECLARATION",
	TypeNestedModuleDeclaration:       "NESTED_MODULE_DECLARATION",
	TypeModuleAbbreviationDeclaration: "MODULE_ABBREVIATION_DECLARATION",
	TypeOpenStatement:                 "OPEN_STATEMENT",
	TypeLetModuleDecl:                 "LET_MODULE_DECL",
	TypeTopBinding:                    "TOP_BINDING",
	TypeDoStatement:                   "DO_STATEMENT",
	TypeAttributeList:                 "ATTRIBUTE_LIST",
	TypeLongIdentifier:                "LONG_IDENTIFIER",
	TypeTypeDeclaration:               "F_SHARP_TYPE_DECLARATION",
	TypeExceptionDeclaration:          "EXCEPTION_DECLARATION",
	TypeTypeParameterList:             "TYPE_PARAMETER_LIST",
	TypePrimaryConstructorDeclaration: "PRIMARY_CONSTRUCTOR_DECLARATION",
	TypeSecondaryConstructorDecl:      "SECONDARY_CONSTRUCTOR_DECLARATION",
	TypeUnionRepresentation:           "UNION_REPRESENTATION",
	TypeUnionCaseDeclaration:          "UNION_CASE_DECLARATION",
	TypeUnionCaseFieldDeclList:        "UNION_CASE_FIELD_DECLARATION_LIST",
	TypeUnionCaseFieldDeclaration:     "UNION_CASE_FIELD_DECLARATION",
	TypeEnumRepresentation:            "ENUM_REPRESENTATION",
	TypeEnumCaseDeclaration:           "ENUM_CASE_DECLARATION",
	TypeRecordRepresentation:          "RECORD_REPRESENTATION",
	TypeRecordFieldDeclarationList:    "RECORD_FIELD_DECLARATION_LIST",
	TypeRecordFieldDeclaration:        "RECORD_FIELD_DECLARATION",
	TypeClassRepresentation:           "CLASS_REPRESENTATION",
	TypeStructRepresentation:          "STRUCT_REPRESENTATION",
	TypeInterfaceRepresentation:       "INTERFACE_REPRESENTATION",
	TypeAbbreviationRepresentation:    "TYPE_ABBREVIATION_REPRESENTATION",
	TypeTypeMemberDeclarationList:     "TYPE_MEMBER_DECLARATION_LIST",
	TypeMemberDeclarationList:         "MEMBER_DECLARATION_LIST",
	TypeMemberDeclaration:             "MEMBER_DECLARATION",
	TypeValFieldDeclaration:           "VAL_FIELD_DECLARATION",
	TypeInterfaceImplementation:       "INTERFACE_IMPLEMENTATION",
	TypeTypeReference:                 "TYPE_REFERENCE",
	TypeReturnTypeInfo:                "RETURN_TYPE_INFO",

	TypeLetOrUseExpr:          "LET_OR_USE_EXPR",
	TypeLocalBinding:          "LOCAL_BINDING",
	TypeForExpr:               "FOR_EXPR",
	TypeForEachExpr:           "FOR_EACH_EXPR",
	TypeWhileExpr:             "WHILE_EXPR",
	TypeDoExpr:                "DO_EXPR",
	TypeAssertExpr:            "ASSERT_EXPR",
	TypeLazyExpr:              "LAZY_EXPR",
	TypeComputationExpr:       "COMPUTATION_EXPR",
	TypeSetExpr:               "SET_EXPR",
	TypeTryFinallyExpr:        "TRY_FINALLY_EXPR",
	TypeTryWithExpr:           "TRY_WITH_EXPR",
	TypeIfThenElseExpr:        "IF_THEN_ELSE_EXPR",
	TypeElifExpr:              "ELIF_EXPR",
	TypeLambdaExpr:            "LAMBDA_EXPR",
	TypeMatchExpr:             "MATCH_EXPR",
	TypeMatchLambdaExpr:       "MATCH_LAMBDA_EXPR",
	TypeMatchClause:           "MATCH_CLAUSE",
	TypeWhenClause:            "WHEN_CLAUSE",
	TypePrefixAppExpr:         "PREFIX_APP_EXPR",
	TypeBinaryAppExpr:         "BINARY_APP_EXPR",
	TypeReferenceExpr:         "REFERENCE_EXPR",
	TypeParenExpr:             "PAREN_EXPR",
	TypeUnitExpr:              "UNIT_EXPR",
	TypeTupleExpr:             "TUPLE_EXPR",
	TypeListExpr:              "LIST_EXPR",
	TypeArrayExpr:             "ARRAY_EXPR",
	TypeLiteralExpr:           "LITERAL_EXPR",
	TypeRecordExpr:            "RECORD_EXPR",
	TypeRecordFieldBindingLst: "RECORD_FIELD_BINDING_LIST",
	TypeRecordFieldBinding:    "RECORD_FIELD_BINDING",
	TypeSequentialExpr:        "SEQUENTIAL_EXPR",
	TypeTypedExpr:             "TYPED_EXPR",
	TypeNewExpr:               "NEW_EXPR",
	TypeYieldOrReturnExpr:     "YIELD_OR_RETURN_EXPR",

	TypeUnitPat:      "UNIT_PAT",
	TypeNamedPat:     "NAMED_PAT",
	TypeWildPat:      "WILD_PAT",
	TypeConstPat:     "CONST_PAT",
	TypeParenPat:     "PAREN_PAT",
	TypeTuplePat:     "TUPLE_PAT",
	TypeLongIdentPat: "LONG_IDENT_PAT",
	TypeListPat:      "LIST_PAT",
	TypeOrPat:        "OR_PAT",
	TypeAsPat:        "AS_PAT",
	TypeTypedPat:     "TYPED_PAT",
	TypeConsPat:      "CONS_PAT",
}
