package syntax

import "strconv"

// Role identifies the slot a child occupies in its parent. Roles are only
// meaningful together with the parent's type; RoleNone marks children
// without a named slot (keywords, punctuation, list items).
type Role uint8

const (
	RoleNone Role = iota
	RoleIdentifier
	RoleModuleMember
	RoleChameleonExpr
	RoleExpr
	RoleDoExpr
	RoleLeftExpr
	RoleRightExpr
	RoleTryExpr
	RoleFinallyExpr
	RoleConditionExpr
	RoleThenExpr
	RoleElseClause
	RoleWith
	RoleMatchClause
	RoleWhenClause
	RolePattern
	RoleFuncExpr
	RoleArgExpr
	RoleOpRefExpr
	RoleTypeRepr
	RoleMemberList
	RoleTypeReference
	RoleCopyInfo
	RoleAccessModifier

	roleCount
)

var roleNames = [roleCount]string{
	RoleNone:           "NONE",
	RoleIdentifier:     "IDENTIFIER",
	RoleModuleMember:   "MODULE_MEMBER",
	RoleChameleonExpr:  "CHAMELEON_EXPR",
	RoleExpr:           "EXPR",
	RoleDoExpr:         "DO_EXPR",
	RoleLeftExpr:       "LEFT_EXPR",
	RoleRightExpr:      "RIGHT_EXPR",
	RoleTryExpr:        "TRY_EXPR",
	RoleFinallyExpr:    "FINALLY_EXPR",
	RoleConditionExpr:  "CONDITION_EXPR",
	RoleThenExpr:       "THEN_EXPR",
	RoleElseClause:     "ELSE_CLAUSE",
	RoleWith:           "WITH",
	RoleMatchClause:    "MATCH_CLAUSE",
	RoleWhenClause:     "WHEN_CLAUSE",
	RolePattern:        "PATTERN",
	RoleFuncExpr:       "FUNC_EXPR",
	RoleArgExpr:        "ARG_EXPR",
	RoleOpRefExpr:      "OP_REF_EXPR",
	RoleTypeRepr:       "TYPE_REPR",
	RoleMemberList:     "MEMBER_LIST",
	RoleTypeReference:  "TYPE_REFERENCE",
	RoleCopyInfo:       "COPY_INFO",
	RoleAccessModifier: "ACCESS_MODIFIER",
}

func (r Role) String() string {
	if r < roleCount {
		return roleNames[r]
	}
	return "Role(" + strconv.Itoa(int(r)) + ")"
}
