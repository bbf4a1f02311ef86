package formatter

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/donaldgifford/fsfmt/internal/settings"
	"github.com/donaldgifford/fsfmt/internal/syntax"
)

// Kind classifies a rule by the directive it produces and the sites it is
// tested at.
type Kind uint8

const (
	KindIndenting Kind = iota + 1
	KindAligning
	KindSpacing
	KindLineBreak
	KindWrap
)

func (k Kind) String() string {
	switch k {
	case KindIndenting:
		return "indenting"
	case KindAligning:
		return "aligning"
	case KindSpacing:
		return "spacing"
	case KindLineBreak:
		return "line-break"
	case KindWrap:
		return "wrap"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// NodeSite reports whether rules of kind k are tested at node sites.
// Spacing and line-break rules are tested at token boundaries.
func (k Kind) NodeSite() bool {
	return k == KindIndenting || k == KindAligning || k == KindWrap
}

// Group is a set of rule families. Grouped rules compete with rules whose
// group intersects theirs; the zero Group is ungrouped.
type Group uint8

const (
	GroupSpace Group = 1 << iota
	GroupLineBreaks
	GroupWrap
)

func (g Group) String() string {
	if g == 0 {
		return "none"
	}
	return facetString(uint16(g), []string{"space", "line-breaks", "wrap"})
}

// Branch is one arm of a settings switch.
type Branch struct {
	Values []settings.Value
	Then   Resolution
}

// When starts a branch taken for any of values.
func When(values ...settings.Value) Branch {
	return Branch{Values: slices.Clone(values)}
}

// Return completes the branch with a constant directive.
func (b Branch) Return(d Directive) Branch {
	b.Then = Const(d)
	return b
}

// Switch completes the branch with a nested switch.
func (b Branch) Switch(key settings.Key, branches ...Branch) Branch {
	b.Then = Switch(key, branches...)
	return b
}

// Resolution computes a rule's directive from the settings. It is either
// a constant or a switch on one settings key whose branches are
// resolutions themselves.
type Resolution struct {
	directive Directive
	key       settings.Key
	branches  []Branch
}

// Const returns a resolution that always yields d.
func Const(d Directive) Resolution { return Resolution{directive: d} }

// Switch returns a resolution that looks key up and takes the first
// branch holding its value. A value no branch holds yields no directive.
func Switch(key settings.Key, branches ...Branch) Resolution {
	return Resolution{key: key, branches: slices.Clone(branches)}
}

// IsSwitch reports whether r depends on the settings.
func (r Resolution) IsSwitch() bool { return r.key != "" }

// Resolve returns the directive for snapshot s. The boolean is false when
// a switch has no branch for the current value. Errors come only from
// keys the snapshot does not know.
func (r Resolution) Resolve(s *settings.Snapshot) (Directive, bool, error) {
	if !r.IsSwitch() {
		return r.directive, true, nil
	}
	v, err := s.ValueOf(r.key)
	if err != nil {
		return NoDirective, false, err
	}
	for _, b := range r.branches {
		if slices.Contains(b.Values, v) {
			return b.Then.Resolve(s)
		}
	}
	return NoDirective, false, nil
}

// Keys returns every settings key the resolution switches on, outermost
// first, without duplicates.
func (r Resolution) Keys() []settings.Key {
	var keys []settings.Key
	r.collectKeys(&keys)
	return keys
}

func (r Resolution) collectKeys(keys *[]settings.Key) {
	if !r.IsSwitch() {
		return
	}
	if !slices.Contains(*keys, r.key) {
		*keys = append(*keys, r.key)
	}
	for _, b := range r.branches {
		b.Then.collectKeys(keys)
	}
}

// Directives returns every directive the resolution can produce.
func (r Resolution) Directives() []Directive {
	if !r.IsSwitch() {
		return []Directive{r.directive}
	}
	var out []Directive
	for _, b := range r.branches {
		for _, d := range b.Then.Directives() {
			if !slices.Contains(out, d) {
				out = append(out, d)
			}
		}
	}
	return out
}

func (r Resolution) String() string {
	if !r.IsSwitch() {
		return r.directive.String()
	}
	var b strings.Builder
	b.WriteString(string(r.key))
	b.WriteString(" {")
	for i, br := range r.branches {
		if i > 0 {
			b.WriteString("; ")
		}
		for j, v := range br.Values {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.String())
		}
		b.WriteString(": ")
		b.WriteString(br.Then.String())
	}
	b.WriteString("}")
	return b.String()
}

func (r Resolution) validate(schema *settings.Schema, depth int) error {
	if !r.IsSwitch() {
		return nil
	}
	if depth > maxSwitchDepth {
		return errors.New("switches nested too deeply")
	}
	if _, err := schema.Domain(r.key); err != nil {
		return err
	}
	if len(r.branches) == 0 {
		return fmt.Errorf("switch on %q has no branches", r.key)
	}
	var seen []settings.Value
	for _, b := range r.branches {
		if len(b.Values) == 0 {
			return fmt.Errorf("switch on %q has a branch without values", r.key)
		}
		for _, v := range b.Values {
			if err := schema.Check(r.key, v); err != nil {
				return err
			}
			if slices.Contains(seen, v) {
				return fmt.Errorf("switch on %q lists %s twice", r.key, v)
			}
			seen = append(seen, v)
		}
		if err := b.Then.validate(schema, depth+1); err != nil {
			return err
		}
	}
	return nil
}

const maxSwitchDepth = 8

// CloseGetter returns the last sibling an indenting or aligning region
// extends through. Returning nil, or a node that is not a later sibling
// of n, limits the region to n.
type CloseGetter func(ctx *Context, n *syntax.Node) *syntax.Node

// Rule binds a pattern to a resolution.
type Rule struct {
	Name       string
	Kind       Kind
	Pattern    Pattern
	Except     Pattern // Tested at the site and at every ancestor of it.
	Resolution Resolution
	Close      CloseGetter
	Priority   int
	Group      Group
}

// Validate checks a rule against the settings schema. Registries call it
// once when they are built.
func (r Rule) Validate(schema *settings.Schema) error {
	if r.Name == "" {
		return errors.New("rule without a name")
	}
	if r.Kind < KindIndenting || r.Kind > KindWrap {
		return fmt.Errorf("rule %s: invalid kind %s", r.Name, r.Kind)
	}
	if r.Pattern.IsZero() {
		return fmt.Errorf("rule %s: empty pattern", r.Name)
	}
	if !r.Kind.NodeSite() && r.Pattern.usesNode() {
		return fmt.Errorf("rule %s: %s rules cannot select Node()", r.Name, r.Kind)
	}
	if r.Close != nil && r.Kind != KindIndenting && r.Kind != KindAligning {
		return fmt.Errorf("rule %s: close node getter on a %s rule", r.Name, r.Kind)
	}
	if err := r.Resolution.validate(schema, 0); err != nil {
		return fmt.Errorf("rule %s: %w", r.Name, err)
	}
	for _, d := range r.Resolution.Directives() {
		if !r.fits(d) {
			return fmt.Errorf("rule %s: %s rule cannot produce %s", r.Name, r.Kind, d)
		}
	}
	return nil
}

// fits reports whether d only sets the facets a rule of r's kind may set.
func (r Rule) fits(d Directive) bool {
	switch r.Kind {
	case KindIndenting, KindAligning:
		return d.Interval == 0 && d.Wrap == 0
	case KindSpacing, KindLineBreak:
		return d.Indent == 0 && d.Wrap == 0
	case KindWrap:
		return d.Indent == 0 && d.Interval == 0
	}
	return false
}

// Mirrored returns a copy of r named name whose pattern has Left and
// Right swapped.
func (r Rule) Mirrored(name string) Rule {
	out := r
	out.Name = name
	out.Pattern = r.Pattern.Mirror()
	if !r.Except.IsZero() {
		out.Except = r.Except.Mirror()
	}
	return out
}

// excepted reports whether the exception pattern holds at site or at any
// ancestor of it.
func (r Rule) excepted(ctx *Context, site Site) bool {
	if r.Except.IsZero() {
		return false
	}
	if r.Except.Matches(ctx, site) {
		return true
	}
	start := site.Node
	if start == nil {
		start = site.Parent
	}
	for n := start; n != nil; n = n.Parent {
		if n == site.Node {
			continue
		}
		if r.Except.Matches(ctx, NodeSite(n)) {
			return true
		}
	}
	return false
}

// closeNode returns the last sibling of n's region.
func (r Rule) closeNode(ctx *Context, n *syntax.Node) *syntax.Node {
	if r.Close == nil {
		return n
	}
	c := r.Close(ctx, n)
	if c == nil || c.Parent != n.Parent || c.Index() < n.Index() {
		return n
	}
	return c
}

// ValidateAll validates every rule and rejects duplicate names.
func ValidateAll(rules []Rule, schema *settings.Schema) error {
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if err := r.Validate(schema); err != nil {
			return err
		}
		if seen[r.Name] {
			return fmt.Errorf("duplicate rule name %q", r.Name)
		}
		seen[r.Name] = true
	}
	return nil
}
