package formatter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/donaldgifford/fsfmt/internal/syntax"
)

// Selector picks the node of a site a clause is tested against.
type Selector uint8

// Selectors, one per field of Site.
const (
	SelectNode Selector = iota
	SelectParent
	SelectLeft
	SelectRight
)

// String returns the selector's name as used in rule descriptions.
func (s Selector) String() string {
	switch s {
	case SelectNode:
		return "Node"
	case SelectParent:
		return "Parent"
	case SelectLeft:
		return "Left"
	case SelectRight:
		return "Right"
	default:
		return fmt.Sprintf("Selector(%d)", uint8(s))
	}
}

func (s Selector) resolve(site Site) *syntax.Node {
	switch s {
	case SelectNode:
		return site.Node
	case SelectParent:
		return site.Parent
	case SelectLeft:
		return site.Left
	case SelectRight:
		return site.Right
	}
	return nil
}

func (s Selector) mirror() Selector {
	switch s {
	case SelectLeft:
		return SelectRight
	case SelectRight:
		return SelectLeft
	}
	return s
}

// Predicate is a custom condition on a selected node. Predicates must be
// pure functions of their arguments.
type Predicate func(ctx *Context, n *syntax.Node) bool

// Constraint is one alternative of a clause. Its type set, role and
// predicates must all hold.
type Constraint struct {
	Types   syntax.TypeSet
	Role    syntax.Role
	HasRole bool
	Preds   []Predicate
}

func (c Constraint) matches(ctx *Context, n *syntax.Node) bool {
	if !c.Types.IsEmpty() && !c.Types.Has(n.Type) {
		return false
	}
	if c.HasRole && n.Role != c.Role {
		return false
	}
	for _, p := range c.Preds {
		if !p(ctx, n) {
			return false
		}
	}
	return true
}

func (c Constraint) String() string {
	var parts []string
	if !c.Types.IsEmpty() {
		parts = append(parts, "In"+c.Types.String())
	}
	if c.HasRole {
		parts = append(parts, "HasRole("+c.Role.String()+")")
	}
	for range c.Preds {
		parts = append(parts, "Satisfies(...)")
	}
	return strings.Join(parts, ".")
}

// Clause constrains the node a selector resolves to. A clause holds one
// or more alternatives; it matches when any of them does. A selector
// that resolves to nil never matches.
//
// Clause values are immutable: every builder method returns a copy.
type Clause struct {
	Target Selector
	Alts   []Constraint
}

// Node starts a clause on the node under test.
func Node() Clause { return Clause{Target: SelectNode, Alts: []Constraint{{}}} }

// Parent starts a clause on the parent of the site.
func Parent() Clause { return Clause{Target: SelectParent, Alts: []Constraint{{}}} }

// Left starts a clause on the left side of the site.
func Left() Clause { return Clause{Target: SelectLeft, Alts: []Constraint{{}}} }

// Right starts a clause on the right side of the site.
func Right() Clause { return Clause{Target: SelectRight, Alts: []Constraint{{}}} }

func (c Clause) edit(fn func(*Constraint)) Clause {
	alts := slices.Clone(c.Alts)
	last := alts[len(alts)-1]
	last.Preds = slices.Clone(last.Preds)
	fn(&last)
	alts[len(alts)-1] = last
	return Clause{Target: c.Target, Alts: alts}
}

// In restricts the current alternative to the given types.
func (c Clause) In(types ...syntax.NodeType) Clause {
	return c.InSet(syntax.NewTypeSet(types...))
}

// InSet restricts the current alternative to the types of set. Repeated
// restrictions widen the allowed set.
func (c Clause) InSet(set syntax.TypeSet) Clause {
	return c.edit(func(k *Constraint) { k.Types = k.Types.Union(set) })
}

// HasType restricts the current alternative to a single type.
func (c Clause) HasType(t syntax.NodeType) Clause { return c.In(t) }

// HasRole requires the selected node to hold role in its parent.
func (c Clause) HasRole(role syntax.Role) Clause {
	return c.edit(func(k *Constraint) {
		k.Role = role
		k.HasRole = true
	})
}

// Satisfies adds a predicate to the current alternative.
func (c Clause) Satisfies(p Predicate) Clause {
	return c.edit(func(k *Constraint) { k.Preds = append(k.Preds, p) })
}

// Or starts a new alternative.
func (c Clause) Or() Clause {
	alts := append(slices.Clone(c.Alts), Constraint{})
	return Clause{Target: c.Target, Alts: alts}
}

// Is replaces the current alternative with the alternatives of other, so
// a shared blank can be reused under a different selector.
func (c Clause) Is(other Clause) Clause {
	alts := slices.Clone(c.Alts[:len(c.Alts)-1])
	alts = append(alts, other.Alts...)
	return Clause{Target: c.Target, Alts: alts}
}

// Matches reports whether the clause holds at site.
func (c Clause) Matches(ctx *Context, site Site) bool {
	n := c.Target.resolve(site)
	if n == nil {
		return false
	}
	for _, alt := range c.Alts {
		if alt.matches(ctx, n) {
			return true
		}
	}
	return false
}

func (c Clause) String() string {
	alts := make([]string, len(c.Alts))
	for i, a := range c.Alts {
		alts[i] = a.String()
	}
	return c.Target.String() + "()." + strings.Join(alts, ".Or().")
}

// Pattern is an immutable conjunction of clauses. The zero Pattern has no
// clauses and matches nothing.
type Pattern struct {
	clauses []Clause
}

// Where builds a pattern that matches when every clause does.
func Where(clauses ...Clause) Pattern {
	return Pattern{clauses: slices.Clone(clauses)}
}

// IsZero reports whether p has no clauses.
func (p Pattern) IsZero() bool { return len(p.clauses) == 0 }

// Clauses returns a copy of the pattern's clauses.
func (p Pattern) Clauses() []Clause { return slices.Clone(p.clauses) }

// Matches reports whether every clause of p holds at site.
func (p Pattern) Matches(ctx *Context, site Site) bool {
	if p.IsZero() {
		return false
	}
	for _, c := range p.clauses {
		if !c.Matches(ctx, site) {
			return false
		}
	}
	return true
}

// Mirror returns p with its Left and Right selectors swapped.
func (p Pattern) Mirror() Pattern {
	out := make([]Clause, len(p.clauses))
	for i, c := range p.clauses {
		out[i] = Clause{Target: c.Target.mirror(), Alts: c.Alts}
	}
	return Pattern{clauses: out}
}

// usesNode reports whether any clause selects the node under test, which
// only node sites provide.
func (p Pattern) usesNode() bool {
	return slices.ContainsFunc(p.clauses, func(c Clause) bool { return c.Target == SelectNode })
}

func (p Pattern) String() string {
	parts := make([]string, len(p.clauses))
	for i, c := range p.clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
