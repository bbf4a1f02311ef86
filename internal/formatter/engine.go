package formatter

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/donaldgifford/fsfmt/internal/settings"
	"github.com/donaldgifford/fsfmt/internal/syntax"
)

// Engine applies a rule set to syntax trees. An Engine is immutable and
// may be shared by concurrent passes.
type Engine struct {
	rules    []Rule
	tables   Tables
	node     []int // Indexes of rules tested at node sites.
	boundary []int // Indexes of rules tested at boundaries.
}

// New returns an engine for rules, which must already be validated. The
// order of rules breaks priority ties: the first declared wins.
func New(rules []Rule, tables Tables) *Engine {
	e := &Engine{rules: slices.Clone(rules), tables: tables}
	for i, r := range e.rules {
		if r.Kind.NodeSite() {
			e.node = append(e.node, i)
		} else {
			e.boundary = append(e.boundary, i)
		}
	}
	return e
}

// Rules returns the engine's rules in declaration order.
func (e *Engine) Rules() []Rule { return slices.Clone(e.rules) }

// Format lays out the tree rooted at root and returns the formatted
// text. The pass checks ctx between nodes and stops with ctx.Err() when
// it is done.
func (e *Engine) Format(ctx context.Context, root *syntax.Node, s *settings.Snapshot) (string, error) {
	p, err := e.run(ctx, root, s, false)
	if err != nil {
		return "", err
	}
	return p.layout().render(), nil
}

// Decision records the outcome of rule evaluation at one site.
type Decision struct {
	Line, Column int      // Position of the site's first token in the source.
	Site         string   // Node type and role, or the two tokens of a boundary.
	Rules        []string // Kept rules in priority order.
	Suppressed   []string // Matching rules dropped by group conflicts.
	Directive    Directive
}

func (d Decision) String() string {
	s := fmt.Sprintf("%d:%d %s %s %v", d.Line, d.Column, d.Site, d.Directive, d.Rules)
	if len(d.Suppressed) > 0 {
		s += fmt.Sprintf(" suppressed=%v", d.Suppressed)
	}
	return s
}

// Explain returns the decision at every site where at least one rule
// matched, in the order the pass visits them.
func (e *Engine) Explain(ctx context.Context, root *syntax.Node, s *settings.Snapshot) ([]Decision, error) {
	p, err := e.run(ctx, root, s, true)
	if err != nil {
		return nil, err
	}
	return p.decisions, nil
}

// region is an indentation directive spanning the children from..to of
// a parent.
type region struct {
	from, to int
	indent   IndentType
}

// boundary is the resolved interval before a token.
type boundary struct {
	site     Site
	interval IntervalFormatType
}

// pass is the state of one formatting pass.
type pass struct {
	e       *Engine
	ctx     *Context
	explain bool

	tokens  []token
	index   map[*syntax.Node]int // Token node to position in tokens.
	regions map[*syntax.Node][]region
	wraps   map[*syntax.Node]WrapType
	bounds  []boundary // bounds[i] sits before tokens[i]; bounds[0] is unused.

	decisions []Decision
}

func (e *Engine) run(ctx context.Context, root *syntax.Node, s *settings.Snapshot, explain bool) (*pass, error) {
	p := &pass{
		e:       e,
		ctx:     &Context{Tables: e.tables, Settings: s, Root: root},
		explain: explain,
		regions: make(map[*syntax.Node][]region),
		wraps:   make(map[*syntax.Node]WrapType),
	}
	p.tokens, p.index = scan(root)
	p.bounds = make([]boundary, len(p.tokens))

	var err error
	syntax.Walk(root, func(n *syntax.Node) bool {
		if err != nil {
			return false
		}
		if err = ctx.Err(); err != nil {
			return false
		}
		if n.IsWhitespace() || n == root {
			return true
		}
		if err = p.visitNode(n); err != nil {
			return false
		}
		if i, ok := p.index[n]; ok && i > 0 {
			err = p.visitBoundary(i)
		}
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// match is a rule that matched a site and resolved to a directive.
type match struct {
	rule      int
	directive Directive
}

// evaluate tests the given rules at site and resolves conflicts.
func (p *pass) evaluate(site Site, rules []int) (kept, dropped []match, err error) {
	var found []match
	for _, i := range rules {
		r := &p.e.rules[i]
		if !r.Pattern.Matches(p.ctx, site) || r.excepted(p.ctx, site) {
			continue
		}
		d, ok, err := r.Resolution.Resolve(p.ctx.Settings)
		if err != nil {
			return nil, nil, fmt.Errorf("rule %s: %w", r.Name, err)
		}
		if ok {
			found = append(found, match{rule: i, directive: d})
		}
	}
	kept, dropped = p.e.resolveConflicts(found)
	return kept, dropped, nil
}

// resolveConflicts orders matches by priority, highest first, keeping
// declaration order among equals. Ungrouped matches are always kept; a
// grouped match is kept only while no kept match claims an intersecting
// group.
func (e *Engine) resolveConflicts(found []match) (kept, dropped []match) {
	slices.SortStableFunc(found, func(a, b match) int {
		return cmp.Compare(e.rules[b.rule].Priority, e.rules[a.rule].Priority)
	})
	var claimed Group
	for _, m := range found {
		g := e.rules[m.rule].Group
		if g != 0 && g&claimed != 0 {
			dropped = append(dropped, m)
			continue
		}
		claimed |= g
		kept = append(kept, m)
	}
	return kept, dropped
}

func (p *pass) visitNode(n *syntax.Node) error {
	site := NodeSite(n)
	kept, dropped, err := p.evaluate(site, p.e.node)
	if err != nil || len(kept)+len(dropped) == 0 {
		return err
	}
	var merged Directive
	for _, m := range kept {
		merged = merged.Merge(m.directive)
		if m.directive.Indent != IndentNone {
			c := p.e.rules[m.rule].closeNode(p.ctx, n)
			p.addRegion(n.Parent, region{from: n.Index(), to: c.Index(), indent: m.directive.Indent})
		}
	}
	p.wraps[n] |= merged.Wrap
	if p.explain {
		first := syntax.FirstToken(n)
		p.record(p.index[first], nodeLabel(n), kept, dropped, merged)
	}
	return nil
}

func (p *pass) addRegion(parent *syntax.Node, r region) {
	regs := p.regions[parent]
	for i, old := range regs {
		if old.from == r.from && old.to == r.to {
			regs[i].indent |= r.indent
			return
		}
	}
	p.regions[parent] = append(regs, r)
}

// regionsAt returns the regions covering child x of its parent,
// narrowest first.
func (p *pass) regionsAt(x *syntax.Node) []region {
	var out []region
	for _, r := range p.regions[x.Parent] {
		if r.from <= x.Index() && x.Index() <= r.to {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b region) int {
		return cmp.Compare(a.to-a.from, b.to-b.from)
	})
	return out
}

func (p *pass) visitBoundary(i int) error {
	left, right := p.tokens[i-1].node, p.tokens[i].node
	site := BoundarySite(left, right)
	kept, dropped, err := p.evaluate(site, p.e.boundary)
	if err != nil {
		return err
	}
	var merged Directive
	for _, m := range kept {
		merged = merged.Merge(m.directive)
	}
	p.bounds[i] = boundary{site: site, interval: merged.Interval}
	if p.explain && len(kept)+len(dropped) > 0 {
		label := fmt.Sprintf("%q %q", left.Text, right.Text)
		p.record(i, label, kept, dropped, merged)
	}
	return nil
}

func (p *pass) record(i int, label string, kept, dropped []match, d Directive) {
	names := func(ms []match) []string {
		var out []string
		for _, m := range ms {
			out = append(out, p.e.rules[m.rule].Name)
		}
		return out
	}
	t := p.tokens[i]
	p.decisions = append(p.decisions, Decision{
		Line:       t.line,
		Column:     t.col + 1,
		Site:       label,
		Rules:      names(kept),
		Suppressed: names(dropped),
		Directive:  d,
	})
}

func nodeLabel(n *syntax.Node) string {
	if n.Role == syntax.RoleNone {
		return n.Type.String()
	}
	return n.Type.String() + ":" + n.Role.String()
}
