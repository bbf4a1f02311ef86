package syntax

import "strings"

// TypeSet is an immutable set of node types. The zero value is empty.
type TypeSet struct {
	bits [4]uint64
}

// NewTypeSet returns a set holding the given types.
func NewTypeSet(types ...NodeType) TypeSet {
	var s TypeSet
	for _, t := range types {
		s.bits[t/64] |= 1 << (t % 64)
	}
	return s
}

// Has reports whether t is in the set.
func (s TypeSet) Has(t NodeType) bool {
	return s.bits[t/64]&(1<<(t%64)) != 0
}

// Contains reports whether n is non-nil and its type is in the set.
func (s TypeSet) Contains(n *Node) bool {
	return n != nil && s.Has(n.Type)
}

// IsEmpty reports whether the set holds no types.
func (s TypeSet) IsEmpty() bool {
	return s.bits == [4]uint64{}
}

// Union returns a set holding the types of both s and other.
func (s TypeSet) Union(other TypeSet) TypeSet {
	for i := range s.bits {
		s.bits[i] |= other.bits[i]
	}
	return s
}

// Types returns the members of the set in declaration order.
func (s TypeSet) Types() []NodeType {
	var out []NodeType
	for t := NodeType(0); t < typeCount; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s TypeSet) String() string {
	types := s.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// Node type families shared by the parser and the rule set.
var (
	// AccessModifiers are the tokens that can restrict a declaration.
	AccessModifiers = NewTypeSet(TypePublic, TypeInternal, TypePrivate)

	// SimpleTypeRepresentations are the representations whose body is a
	// flat list of cases or fields.
	SimpleTypeRepresentations = NewTypeSet(
		TypeUnionRepresentation,
		TypeEnumRepresentation,
		TypeRecordRepresentation,
	)

	// EnumCaseLikeDeclarations are the case declarations of unions and enums.
	EnumCaseLikeDeclarations = NewTypeSet(
		TypeUnionCaseDeclaration,
		TypeEnumCaseDeclaration,
	)

	// TypeRepresentations are every node that can occupy a type
	// declaration's TYPE_REPR slot.
	TypeRepresentations = SimpleTypeRepresentations.Union(NewTypeSet(
		TypeClassRepresentation,
		TypeStructRepresentation,
		TypeInterfaceRepresentation,
		TypeAbbreviationRepresentation,
	))

	// Closers are the tokens that end a bracketed or keyword-delimited
	// construct. They may start a line at any column.
	Closers = NewTypeSet(
		TypeRParen, TypeRBrack, TypeRBrace, TypeBarRBrack,
		TypeGreaterRBrack, TypeEnd, TypeDone,
	)

	// Continuations are the keywords that continue a construct and may
	// start a line at its column.
	Continuations = NewTypeSet(
		TypeBar, TypeThen, TypeElse, TypeElif,
		TypeWith, TypeFinally, TypeAnd,
	)
)
