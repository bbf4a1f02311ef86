// Package rules holds the F# formatting rule set and the lookup tables its
// predicates consult.
package rules

import (
	"fmt"
	"sync"

	"github.com/donaldgifford/fsfmt/internal/formatter"
	"github.com/donaldgifford/fsfmt/internal/fsharp"
	"github.com/donaldgifford/fsfmt/internal/settings"
	"github.com/donaldgifford/fsfmt/internal/syntax"
)

// PipeOperators are the operators OutdentPipeOperators applies to.
var PipeOperators = []string{"|>", "||>", "|||>", "<|", "<||", "<|||"}

// Tables returns the lookup tables of the F# rule set.
func Tables() formatter.Tables {
	return formatter.Tables{
		AccessModifiers: syntax.AccessModifiers,
		PipeOperators:   PipeOperators,
		Closers:         syntax.Closers,
		Infix: func(tok *syntax.Node) bool {
			return fsharp.IsInfixOperator(tok.Type, tok.Text)
		},
	}
}

var load = sync.OnceValues(func() ([]formatter.Rule, error) {
	rules := build()
	if err := formatter.ValidateAll(rules, settings.FSharp()); err != nil {
		return nil, fmt.Errorf("invalid rule set: %w", err)
	}
	return rules, nil
})

// Load returns the F# rule set in declaration order. It is built and
// validated once; later calls return the same rules.
func Load() ([]formatter.Rule, error) {
	rules, err := load()
	if err != nil {
		return nil, err
	}
	return rules[:len(rules):len(rules)], nil
}

// All is Load for callers that treat an invalid rule set as a bug.
func All() []formatter.Rule {
	rules, err := Load()
	if err != nil {
		panic(err)
	}
	return rules
}

var engine = sync.OnceValues(func() (*formatter.Engine, error) {
	rules, err := Load()
	if err != nil {
		return nil, err
	}
	return formatter.New(rules, Tables()), nil
})

// Engine returns a formatting engine for the F# rule set.
func Engine() (*formatter.Engine, error) { return engine() }

// Info describes a rule for listings.
type Info struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Pattern    string `yaml:"pattern"`
	Except     string `yaml:"except,omitempty"`
	Resolution string `yaml:"resolution"`
	Priority   int    `yaml:"priority,omitempty"`
	Group      string `yaml:"group,omitempty"`
	Region     string `yaml:"region,omitempty"`
}

// Describe returns the listing entry for r.
func Describe(r formatter.Rule) Info {
	info := Info{
		Name:       r.Name,
		Kind:       r.Kind.String(),
		Pattern:    r.Pattern.String(),
		Resolution: r.Resolution.String(),
		Priority:   r.Priority,
	}
	if !r.Except.IsZero() {
		info.Except = r.Except.String()
	}
	if r.Group != 0 {
		info.Group = r.Group.String()
	}
	if r.Close != nil {
		info.Region = "through last child"
	}
	return info
}
