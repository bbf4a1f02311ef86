package rules

import (
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/donaldgifford/fsfmt/internal/formatter"
	"github.com/donaldgifford/fsfmt/internal/fsharp"
	"github.com/donaldgifford/fsfmt/internal/settings"
	"github.com/donaldgifford/fsfmt/internal/testutil"
)

func formatWith(t *testing.T, s *settings.Snapshot, src string) (string, error) {
	t.Helper()
	e, err := Engine()
	if err != nil {
		t.Fatalf("Engine: %v", err)
	}
	root, err := fsharp.Parse(src)
	if err != nil {
		return "", err
	}
	return e.Format(t.Context(), root, s)
}

func find(t *testing.T, name string) formatter.Rule {
	t.Helper()
	i := slices.IndexFunc(All(), func(r formatter.Rule) bool { return r.Name == name })
	if i < 0 {
		t.Fatalf("no rule named %s", name)
	}
	return All()[i]
}

func TestLoad(t *testing.T) {
	first, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, _ := Load()
	if &first[0] != &second[0] {
		t.Error("Load built the rule set twice")
	}

	for _, name := range []string{
		"TopBindingIndent",
		"MatchClausesAlignment",
		"EnumCaseLikeDeclarations",
		"OutdentPipeOperators",
		"TypeDeclarationNewLine",
		"SpacesAroundRecordExprBracesAndViceVersa",
	} {
		find(t, name)
	}

	// Appending to the returned slice must not reach the shared rules.
	if cap(first) != len(first) {
		t.Error("Load returned a slice with spare capacity")
	}
}

// snapshots enumerates every combination of values of keys.
func snapshots(t *testing.T, keys []settings.Key) []*settings.Snapshot {
	t.Helper()
	out := []*settings.Snapshot{settings.FSharp().Defaults()}
	for _, k := range keys {
		domain, err := settings.FSharp().Domain(k)
		if err != nil {
			t.Fatalf("Domain(%s): %v", k, err)
		}
		var next []*settings.Snapshot
		for _, s := range out {
			for _, v := range domain {
				next = append(next, s.MustWith(k, v))
			}
		}
		out = next
	}
	return out
}

func TestResolutionsAreTotal(t *testing.T) {
	for _, r := range All() {
		t.Run(r.Name, func(t *testing.T) {
			for _, s := range snapshots(t, r.Resolution.Keys()) {
				if _, _, err := r.Resolution.Resolve(s); err != nil {
					t.Fatalf("Resolve: %v", err)
				}
			}
		})
	}
}

func TestTypeDeclarationNewLine(t *testing.T) {
	r := find(t, "TypeDeclarationNewLine")
	defaults := settings.FSharp().Defaults()

	tests := []struct {
		keep   bool
		same   string
		want   formatter.IntervalFormatType
		wantOK bool
	}{
		{true, settings.SameLineNever, formatter.IntervalNewLine, true},
		{true, settings.SameLineAlways, formatter.IntervalDoNotRemoveUserNewLines, true},
		{true, settings.SameLineIfOwnerIsSingleLine, formatter.IntervalDoNotRemoveUserNewLines, true},
		{false, settings.SameLineNever, formatter.IntervalNewLine, true},
		{false, settings.SameLineAlways, formatter.IntervalRemoveUserNewLines, true},
		{false, settings.SameLineIfOwnerIsSingleLine,
			formatter.IntervalRemoveUserNewLines | formatter.IntervalInsertNewLineConditionally, true},
	}

	for _, tt := range tests {
		s := defaults.
			MustWith(settings.KeepExistingLineBreakBeforeDeclarationBody, settings.Bool(tt.keep)).
			MustWith(settings.DeclarationBodyOnTheSameLine, settings.Enum(tt.same))
		d, ok, err := r.Resolution.Resolve(s)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if ok != tt.wantOK || d.Interval != tt.want {
			t.Errorf("keep=%v same=%s: got %s, %v; want %s", tt.keep, tt.same, d, ok, tt.want)
		}
	}
}

func TestScenarios(t *testing.T) {
	defaults := settings.FSharp().Defaults()
	with := func(k settings.Key, v settings.Value) *settings.Snapshot { return defaults.MustWith(k, v) }
	joined := func(same string) *settings.Snapshot {
		return with(settings.KeepExistingLineBreakBeforeDeclarationBody, settings.Bool(false)).
			MustWith(settings.DeclarationBodyOnTheSameLine, settings.Enum(same))
	}

	tests := []struct {
		name  string
		s     *settings.Snapshot
		input string
		want  string
	}{
		{
			name:  "unit",
			input: "let u = ( )\n",
			want:  "let u = ()\n",
		},
		{
			name:  "no space before colon",
			input: "let f (x : int) = x\n",
			want:  "let f (x: int) = x\n",
		},
		{
			name:  "space before colon",
			s:     with(settings.SpaceBeforeColon, settings.Bool(true)),
			input: "let f (x: int) = x\n",
			want:  "let f (x : int) = x\n",
		},
		{
			name:  "record braces",
			input: "let r = {A = 1;B = 2}\n",
			want:  "let r = { A = 1; B = 2 }\n",
		},
		{
			name:  "record bindings on lines",
			input: "let p = { Name = \"a\"\n          Age = 3 }\n",
			want:  "let p = { Name = \"a\"\n          Age = 3 }\n",
		},
		{
			name:  "binary operator outdented",
			input: "let x =\n    a\n    + b\n",
			want:  "let x =\n    a\n  + b\n",
		},
		{
			name:  "binary operator aligned",
			s:     with(settings.OutdentBinaryOperators, settings.Bool(false)),
			input: "let x =\n    a\n  + b\n",
			want:  "let x =\n    a\n    + b\n",
		},
		{
			name:  "pipe kept",
			input: "let y =\n    xs\n    |> List.map f\n",
			want:  "let y =\n    xs\n    |> List.map f\n",
		},
		{
			name:  "pipe outdented",
			s:     with(settings.NeverOutdentPipeOperators, settings.Bool(false)),
			input: "let y =\n    xs\n    |> List.map f\n",
			want:  "let y =\n    xs\n |> List.map f\n",
		},
		{
			name:  "declaration body kept on its line",
			input: "type T = int\n",
			want:  "type T = int\n",
		},
		{
			name:  "declaration body never on the same line",
			s:     with(settings.DeclarationBodyOnTheSameLine, settings.Enum(settings.SameLineNever)),
			input: "type T = int\n",
			want:  "type T =\n    int\n",
		},
		{
			name:  "declaration body joined",
			s:     joined(settings.SameLineAlways),
			input: "type T =\n    int\n",
			want:  "type T = int\n",
		},
		{
			name:  "declaration body joined when it fits",
			s:     joined(settings.SameLineIfOwnerIsSingleLine),
			input: "type T =\n    int\n",
			want:  "type T = int\n",
		},
		{
			name:  "declaration body broken when too long",
			s:     joined(settings.SameLineIfOwnerIsSingleLine).MustWith(settings.MaxLineLength, settings.Int(10)),
			input: "type T = int\n",
			want:  "type T =\n    int\n",
		},
		{
			name:  "declaration body broken when the owner spans lines",
			s:     joined(settings.SameLineIfOwnerIsSingleLine),
			input: "type R = { A: int\n           B: int }\n",
			want:  "type R =\n    { A: int\n      B: int }\n",
		},
		{
			name:  "try with clauses level with try",
			input: "let safe f =\n    try\n        f ()\n    with\n    | _ -> ()\n",
			want:  "let safe f =\n    try\n        f ()\n    with\n    | _ -> ()\n",
		},
		{
			name:  "try with clauses indented",
			s:     with(settings.IndentOnTryWith, settings.Bool(true)),
			input: "let safe f =\n    try\n        f ()\n    with\n    | _ -> ()\n",
			want:  "let safe f =\n    try\n        f ()\n    with\n        | _ -> ()\n",
		},
		{
			name:  "indent size",
			s:     with(settings.IndentSize, settings.Int(2)),
			input: "module M =\n    let x =\n        1\n",
			want:  "module M =\n  let x =\n    1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.s
			if s == nil {
				s = defaults
			}
			got, err := formatWith(t, s, tt.input)
			if err != nil {
				t.Fatalf("Format: %v", err)
			}
			if got != tt.want {
				t.Errorf("Format:\n got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestGoldenFiles(t *testing.T) {
	s := settings.FSharp().Defaults()
	formatFn := func(input string) (string, error) {
		return formatWith(t, s, input)
	}

	_, filename, _, _ := runtime.Caller(0)
	testdataDir := filepath.Join(filepath.Dir(filename), "..", "..", "testdata")

	testutil.RunGoldenDir(t, testdataDir, formatFn)
}

func TestDescribe(t *testing.T) {
	info := Describe(find(t, "SimpleTypeRepr_Accessibility"))
	if info.Kind != "indenting" || info.Region != "through last child" {
		t.Errorf("info = %+v", info)
	}

	info = Describe(find(t, "SpaceBeforeColon"))
	if info.Group != "space" || info.Resolution != "space_before_colon {true: interval=Space; false: interval=Empty}" {
		t.Errorf("info = %+v", info)
	}
	if info.Region != "" || info.Except != "" {
		t.Errorf("unexpected fields in %+v", info)
	}
}
