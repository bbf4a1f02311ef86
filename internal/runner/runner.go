// Package runner orchestrates the parse -> format -> output pipeline.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/coregx/coregex"
	"golang.org/x/term"

	"github.com/donaldgifford/fsfmt/internal/config"
	"github.com/donaldgifford/fsfmt/internal/formatter"
	"github.com/donaldgifford/fsfmt/internal/fsharp"
	"github.com/donaldgifford/fsfmt/internal/rules"
	"github.com/donaldgifford/fsfmt/internal/settings"
	"github.com/donaldgifford/fsfmt/pkg/diff"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFormatDiff = 1
	ExitError      = 2
)

// ErrTerminal is returned when stdin is an interactive terminal.
var ErrTerminal = errors.New("refusing to read source from a terminal; pass files or pipe input")

// Options configures the runner behavior.
type Options struct {
	Files      []string
	Check      bool
	Diff       bool
	Write      bool
	ConfigPath string
	Quiet      bool
	Verbose    bool
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// Formatter formats F# source with one configuration.
type Formatter struct {
	engine   *formatter.Engine
	settings *settings.Snapshot
	exclude  *config.Excluder
}

// NewFormatter builds a formatter for cfg.
func NewFormatter(cfg *config.Config) (*Formatter, error) {
	engine, err := rules.Engine()
	if err != nil {
		return nil, err
	}
	s, err := cfg.Formatter.Snapshot()
	if err != nil {
		return nil, err
	}
	ex, err := cfg.Files.Excluder()
	if err != nil {
		return nil, err
	}
	return &Formatter{engine: engine, settings: s, exclude: ex}, nil
}

// Format parses src and returns its formatted text.
func (f *Formatter) Format(ctx context.Context, src string) (string, error) {
	root, err := fsharp.Parse(src)
	if err != nil {
		return "", err
	}
	return f.engine.Format(ctx, root, f.settings)
}

// Explain parses src and returns the rule decisions made for it.
func (f *Formatter) Explain(ctx context.Context, src string) ([]formatter.Decision, error) {
	root, err := fsharp.Parse(src)
	if err != nil {
		return nil, err
	}
	return f.engine.Explain(ctx, root, f.settings)
}

// Excluded reports whether path matches the configured exclude patterns.
func (f *Formatter) Excluded(path string) bool { return f.exclude.Excluded(path) }

var sectionPattern = func() *coregex.Regexp {
	re, err := coregex.Compile(`^(let|type|module|namespace|exception|and)\s`)
	if err != nil {
		panic(err)
	}
	return re
}()

// diffOptions heads each hunk with the nearest top-level declaration.
var diffOptions = diff.Options{
	Context: diff.Default.Context,
	Section: sectionPattern.MatchString,
}

type session struct {
	opts *Options
	f    *Formatter
	log  *log.Logger
}

// Run executes the format pipeline and returns an exit code.
func Run(ctx context.Context, opts *Options) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	logger := log.New(opts.Stderr, "fsfmt: ", 0)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		logger.Print(err)
		return ExitError
	}
	f, err := NewFormatter(cfg)
	if err != nil {
		logger.Print(err)
		return ExitError
	}
	r := &session{opts: opts, f: f, log: logger}

	// stdin mode: no files given.
	if len(opts.Files) == 0 {
		return r.stdin(ctx)
	}

	exitCode := ExitOK
	for _, path := range opts.Files {
		if err := ctx.Err(); err != nil {
			logger.Print(err)
			return ExitError
		}
		exitCode = max(exitCode, r.file(ctx, path))
	}
	return exitCode
}

func (r *session) stdin(ctx context.Context) int {
	if r.opts.Write {
		r.log.Print("cannot use -w with standard input")
		return ExitError
	}
	if f, ok := r.opts.Stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.log.Print(ErrTerminal)
		return ExitError
	}
	src, err := io.ReadAll(r.opts.Stdin)
	if err != nil {
		r.log.Printf("reading stdin: %v", err)
		return ExitError
	}
	return r.emit(ctx, "<stdin>", string(src), false)
}

func (r *session) file(ctx context.Context, path string) int {
	if r.f.Excluded(path) {
		if r.opts.Verbose {
			r.log.Printf("skipping excluded %s", path)
		}
		return ExitOK
	}
	src, err := os.ReadFile(path)
	if err != nil {
		r.log.Print(err)
		return ExitError
	}
	if r.opts.Verbose {
		r.log.Print(path)
	}
	return r.emit(ctx, path, string(src), true)
}

// emit formats input and reports it according to the mode. File
// results name the file in check mode; only files are written in place.
func (r *session) emit(ctx context.Context, name, input string, isFile bool) int {
	output, err := r.f.Format(ctx, input)
	if err != nil {
		r.log.Printf("%s: %v", name, err)
		return ExitError
	}

	switch {
	case r.opts.Check:
		if input == output {
			return ExitOK
		}
		if isFile && !r.opts.Quiet {
			fmt.Fprintln(r.opts.Stderr, name)
		}
		return ExitFormatDiff

	case r.opts.Diff:
		d := diffOptions.Unified(name, input, output)
		if d == "" {
			return ExitOK
		}
		fmt.Fprint(r.opts.Stdout, d)
		return ExitFormatDiff

	case r.opts.Write && isFile:
		if input == output {
			return ExitOK
		}
		if err := writeFile(name, output); err != nil {
			r.log.Printf("writing %s: %v", name, err)
			return ExitError
		}
		return ExitOK
	}

	fmt.Fprint(r.opts.Stdout, output)
	return ExitOK
}

// writeFile replaces path's contents, keeping its permissions.
func writeFile(path, text string) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(path, []byte(text), perm)
}
