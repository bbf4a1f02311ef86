package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/donaldgifford/fsfmt/internal/settings"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Formatter defaults must agree with the settings schema.
	got, err := cfg.Formatter.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	want := settings.FSharp().Defaults()
	for _, opt := range settings.FSharp().Options() {
		g, _ := got.ValueOf(opt.Key)
		w, _ := want.ValueOf(opt.Key)
		if g != w {
			t.Errorf("%s: got %s, want %s", opt.Key, g, w)
		}
	}

	if len(cfg.Files.Exclude) != 0 {
		t.Errorf("Files.Exclude: got %v, want none", cfg.Files.Exclude)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")

	yaml := `formatter:
  keep_blank_lines: 1
  declaration_body_on_the_same_line: never
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Formatter.KeepBlankLines != 1 {
		t.Errorf("KeepBlankLines: got %d, want 1", cfg.Formatter.KeepBlankLines)
	}
	if cfg.Formatter.DeclarationBodyOnTheSameLine != settings.SameLineNever {
		t.Errorf("DeclarationBodyOnTheSameLine: got %q, want %q",
			cfg.Formatter.DeclarationBodyOnTheSameLine, settings.SameLineNever)
	}

	// Verify unspecified fields retain defaults.
	if cfg.Formatter.IndentSize != 4 {
		t.Errorf("IndentSize: got %d, want 4 (default)", cfg.Formatter.IndentSize)
	}
	if !cfg.Formatter.InsertFinalNewline {
		t.Error("InsertFinalNewline: got false, want true (default)")
	}
	if !cfg.Formatter.OutdentBinaryOperators {
		t.Error("OutdentBinaryOperators: got false, want true (default)")
	}
}

func TestLoadNoConfigReturnsDefaults(t *testing.T) {
	// Use an empty temp dir so no config file is discovered.
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	if cfg.Formatter != want.Formatter {
		t.Errorf("expected default config, got %+v", cfg.Formatter)
	}
}

func TestDiscoverPriority(t *testing.T) {
	dir := t.TempDir()

	content := []byte("formatter:\n  indent_size: 4\n")

	// Create all four files; fsfmt.yml (first in order) should win.
	names := []string{"fsfmt.yml", "fsfmt.yaml", ".fsfmt.yml", ".fsfmt.yaml"}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// Remove each file in turn; the next one in order should be found.
	for i, name := range names {
		got := Discover(dir)
		want := filepath.Join(dir, name)
		if got != want {
			t.Errorf("step %d: Discover = %q, want %q", i, got, want)
		}
		if err := os.Remove(want); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscoverNoFiles(t *testing.T) {
	dir := t.TempDir()
	got := Discover(dir)
	if got != "" {
		t.Errorf("Discover in empty dir: got %q, want empty string", got)
	}
}

func TestDiscoverParentDirectory(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "lib")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, ".fsfmt.yaml")
	if err := os.WriteFile(want, []byte("formatter:\n  indent_size: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := Discover(nested); got != want {
		t.Errorf("Discover(%s) = %q, want %q", nested, got, want)
	}

	closer := filepath.Join(root, "src", "fsfmt.yml")
	if err := os.WriteFile(closer, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Discover(nested); got != closer {
		t.Errorf("nearest config should win: got %q, want %q", got, closer)
	}
}

func TestDiscoverSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "fsfmt.yml"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "fsfmt.yaml")
	if err := os.WriteFile(want, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Discover(dir); got != want {
		t.Errorf("Discover = %q, want %q", got, want)
	}
}

func TestLoadDiscovery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fsfmt.yml")

	yaml := `formatter:
  indent_size: 2
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Formatter.IndentSize != 2 {
		t.Errorf("IndentSize: got %d, want 2", cfg.Formatter.IndentSize)
	}

	// Unspecified fields should retain defaults.
	if cfg.Formatter.KeepBlankLines != 2 {
		t.Errorf("KeepBlankLines: got %d, want 2 (default)", cfg.Formatter.KeepBlankLines)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"invalid yaml", "{{{{not valid yaml", "parsing config file"},
		{"unknown enum member", "formatter:\n  declaration_body_on_the_same_line: sometimes\n", "declaration_body_on_the_same_line"},
		{"indent below minimum", "formatter:\n  indent_size: 0\n", "indent_size"},
		{"unknown key", "formatter:\n  indent_szie: 2\n", "field indent_szie not found"},
		{"unknown section", "editor:\n  tabs: true\n", "parsing config file"},
		{"bad exclude pattern", "files:\n  exclude:\n    - \"(unclosed\"\n", "files.exclude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	if err == nil {
		t.Error("expected error for missing explicit path, got nil")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yml")

	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	// Empty file should result in all defaults.
	want := DefaultConfig()
	if cfg.Formatter != want.Formatter {
		t.Errorf("expected default config for empty file, got %+v", cfg.Formatter)
	}
}

func TestSnapshot(t *testing.T) {
	f := DefaultConfig().Formatter
	f.SpaceBeforeColon = true
	f.MaxLineLength = 80

	s, err := f.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if !s.Bool(settings.SpaceBeforeColon) || s.Int(settings.MaxLineLength) != 80 {
		t.Errorf("snapshot does not hold the configured values")
	}

	f.KeepBlankLines = -1
	if _, err := f.Snapshot(); err == nil {
		t.Error("expected error for negative keep_blank_lines")
	}
}

func TestFilesExclude(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fsfmt.yml")

	yaml := `files:
  exclude:
    - "^obj/"
    - "Generated\\.fs$"
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	ex, err := cfg.Files.Excluder()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"obj/Debug/App.fs", true},
		{"src/AssemblyInfo.Generated.fs", true},
		{"src/obj/App.fs", false},
		{"src/Program.fs", false},
	}
	for _, tt := range tests {
		if got := ex.Excluded(tt.path); got != tt.want {
			t.Errorf("Excluded(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	var none *Excluder
	if none.Excluded("obj/App.fs") {
		t.Error("nil Excluder excluded a path")
	}
}
