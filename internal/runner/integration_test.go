package runner_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// binaryPath builds the fsfmt binary and returns its path.
func binaryPath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "fsfmt")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}

	cmd := exec.CommandContext(t.Context(), "go", "build",
		"-ldflags", "-X main.version=1.0.0-test",
		"-o", bin, "../../cmd/fsfmt")
	cmd.Dir = filepath.Join(projectRoot(t), "internal", "runner")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, out)
	}
	return bin
}

func projectRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("unexpected error: %v", err)
	}
	return exitErr.ExitCode()
}

func TestIntegrationStdinFormat(t *testing.T) {
	bin := binaryPath(t)

	cmd := exec.CommandContext(t.Context(), bin)
	cmd.Stdin = strings.NewReader("let u = ( )\n")
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "let u = ()\n" {
		t.Errorf("stdin format: got %q, want %q", string(out), "let u = ()\n")
	}
}

func TestIntegrationCheck(t *testing.T) {
	bin := binaryPath(t)

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"formatted", "let u = ()\n", 0},
		{"unformatted", "let u = ( )\n", 1},
		{"parse error", "let x =", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.CommandContext(t.Context(), bin, "--check")
			cmd.Stdin = strings.NewReader(tt.input)
			if got := exitCode(t, cmd.Run()); got != tt.want {
				t.Errorf("exit code: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIntegrationDiff(t *testing.T) {
	bin := binaryPath(t)

	cmd := exec.CommandContext(t.Context(), bin, "--diff")
	cmd.Stdin = strings.NewReader("let x =\n  1\n")
	out, err := cmd.Output()
	if got := exitCode(t, err); got != 1 {
		t.Errorf("diff with changes: expected exit 1, got %d", got)
	}

	output := string(out)
	if !strings.Contains(output, "-  1\n") {
		t.Errorf("diff missing old line: %s", output)
	}
	if !strings.Contains(output, "+    1\n") {
		t.Errorf("diff missing new line: %s", output)
	}
}

func TestIntegrationWrite(t *testing.T) {
	bin := binaryPath(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "a.fs")

	if err := os.WriteFile(path, []byte("let u = ( )\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.CommandContext(t.Context(), bin, "-w", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("write: %v\n%s", err, out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "let u = ()\n" {
		t.Errorf("file after write: got %q", string(data))
	}
}

func TestIntegrationVersion(t *testing.T) {
	bin := binaryPath(t)

	cmd := exec.CommandContext(t.Context(), bin, "version")
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(string(out), "fsfmt version=1.0.0-test ") {
		t.Errorf("version: got %q", string(out))
	}
}

func TestIntegrationMissingFile(t *testing.T) {
	bin := binaryPath(t)

	cmd := exec.CommandContext(t.Context(), bin, "/nonexistent/file.fs")
	out, err := cmd.CombinedOutput()
	if got := exitCode(t, err); got != 2 {
		t.Errorf("missing file: expected exit 2, got %d", got)
	}
	if !strings.HasPrefix(string(out), "fsfmt: ") {
		t.Errorf("missing file: got %q", out)
	}
}

func TestIntegrationExplicitConfig(t *testing.T) {
	bin := binaryPath(t)
	dir := t.TempDir()

	configPath := filepath.Join(dir, "custom.yml")
	cfg := "formatter:\n  indent_size: 2\n"
	if err := os.WriteFile(configPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.CommandContext(t.Context(), bin, "--config", configPath)
	cmd.Stdin = strings.NewReader("let x =\n      1\n")
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if string(out) != "let x =\n  1\n" {
		t.Errorf("config indent_size 2: got %q, want %q", string(out), "let x =\n  1\n")
	}
}

func TestIntegrationDiscoveredConfig(t *testing.T) {
	bin := binaryPath(t)
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, ".fsfmt.yml"), []byte("formatter:\n  space_before_colon: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.CommandContext(t.Context(), bin)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader("let f (x: int) = x\n")
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("discovered config: %v", err)
	}
	if string(out) != "let f (x : int) = x\n" {
		t.Errorf("discovered config: got %q", out)
	}
}

func TestIntegrationMultipleFiles(t *testing.T) {
	bin := binaryPath(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.fs")
	bad := filepath.Join(dir, "bad.fs")
	if err := os.WriteFile(good, []byte("let u = ()\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("let u = ( )\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.CommandContext(t.Context(), bin, "--check", good, bad)
	out, err := cmd.CombinedOutput()
	if got := exitCode(t, err); got != 1 {
		t.Errorf("check mixed: expected exit 1, got %d", got)
	}
	if strings.TrimSpace(string(out)) != bad {
		t.Errorf("check mixed: should name only %s, got %q", bad, out)
	}
}

func TestIntegrationRules(t *testing.T) {
	bin := binaryPath(t)

	out, err := exec.CommandContext(t.Context(), bin, "rules", "TopBindingIndent").Output()
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	if !strings.HasPrefix(string(out), "- name: TopBindingIndent\n") {
		t.Errorf("rules: got %q", out)
	}
}
