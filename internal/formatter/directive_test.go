package formatter

import "testing"

func TestDirectiveString(t *testing.T) {
	tests := []struct {
		name string
		d    Directive
		want string
	}{
		{"none", NoDirective, "none"},
		{"indent", Indent(IndentExternal | IndentAlignThrough), "indent=External|AlignThrough"},
		{"interval", Interval(IntervalRemoveUserNewLines | IntervalInsertNewLineConditionally),
			"interval=RemoveUserNewLines|InsertNewLineConditionally"},
		{"merged", Indent(IndentOutdent).Merge(Wrap(WrapChop)), "indent=Outdent wrap=Chop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDirectiveMerge(t *testing.T) {
	a := Directive{Indent: IndentExternal, Interval: IntervalSpace}
	b := Directive{Indent: IndentContinuous, Wrap: WrapPseudoStartBeforeExternal}

	got := a.Merge(b)
	want := Directive{
		Indent:   IndentExternal | IndentContinuous,
		Interval: IntervalSpace,
		Wrap:     WrapPseudoStartBeforeExternal,
	}
	if got != want {
		t.Errorf("Merge = %s, want %s", got, want)
	}
	if got != b.Merge(a) {
		t.Error("Merge is not commutative")
	}
	if !NoDirective.IsZero() || got.IsZero() {
		t.Error("IsZero is wrong")
	}
}

func TestFacetHas(t *testing.T) {
	d := IndentExternal | IndentOutdent
	if !d.Has(IndentExternal) || !d.Has(IndentExternal|IndentOutdent) {
		t.Error("Has misses a set facet")
	}
	if d.Has(IndentAlignThrough) || d.Has(IndentExternal|IndentContinuous) {
		t.Error("Has reports an unset facet")
	}
	if d.Has(IndentNone) {
		t.Error("Has(None) must be false")
	}
}

func TestKindAndGroupString(t *testing.T) {
	if got := KindLineBreak.String(); got != "line-break" {
		t.Errorf("Kind String() = %q", got)
	}
	if got := Kind(0).String(); got != "Kind(0)" {
		t.Errorf("invalid Kind String() = %q", got)
	}
	if got := (GroupSpace | GroupWrap).String(); got != "space|wrap" {
		t.Errorf("Group String() = %q", got)
	}
	if got := Group(0).String(); got != "none" {
		t.Errorf("zero Group String() = %q", got)
	}
	if KindSpacing.NodeSite() || !KindWrap.NodeSite() {
		t.Error("NodeSite is wrong")
	}
}
