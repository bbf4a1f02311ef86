package rules

import "github.com/donaldgifford/fsfmt/internal/formatter"

// build assembles the rule set. Order matters: among rules of equal
// priority competing for a group, the one listed first wins.
func build() []formatter.Rule {
	var rules []formatter.Rule
	rules = append(rules, indentingRules()...)
	rules = append(rules, aligningRules()...)
	rules = append(rules, formattingRules()...)
	return rules
}
