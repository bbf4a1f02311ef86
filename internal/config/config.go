// Package config defines the configuration types and defaults for fsfmt.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/coregx/coregex"

	"github.com/donaldgifford/fsfmt/internal/settings"
)

// Config is the top-level configuration.
type Config struct {
	Formatter FormatterConfig `yaml:"formatter"`
	Files     FilesConfig     `yaml:"files"`
}

// FormatterConfig holds all formatter settings. Field names follow the
// settings keys.
type FormatterConfig struct {
	IndentSize                                 int    `yaml:"indent_size"`
	MaxLineLength                              int    `yaml:"max_line_length"`
	KeepBlankLines                             int    `yaml:"keep_blank_lines"`
	IndentOnTryWith                            bool   `yaml:"indent_on_try_with"`
	OutdentBinaryOperators                     bool   `yaml:"outdent_binary_operators"`
	NeverOutdentPipeOperators                  bool   `yaml:"never_outdent_pipe_operators"`
	SpaceBeforeColon                           bool   `yaml:"space_before_colon"`
	LineBreakAfterTypeReprAccessModifier       bool   `yaml:"line_break_after_type_repr_access_modifier"`
	DeclarationBodyOnTheSameLine               string `yaml:"declaration_body_on_the_same_line"`
	KeepExistingLineBreakBeforeDeclarationBody bool   `yaml:"keep_existing_line_break_before_declaration_body"`
	InsertFinalNewline                         bool   `yaml:"insert_final_newline"`
}

// FilesConfig selects the files the runner touches.
type FilesConfig struct {
	// Exclude holds regular expressions matched against slash-separated
	// file paths.
	Exclude []string `yaml:"exclude"`
}

// DefaultConfig returns a Config holding the default of every setting.
func DefaultConfig() *Config {
	return &Config{
		Formatter: FormatterConfig{
			IndentSize:                                 4,
			MaxLineLength:                              120,
			KeepBlankLines:                             2,
			IndentOnTryWith:                            false,
			OutdentBinaryOperators:                     true,
			NeverOutdentPipeOperators:                  true,
			SpaceBeforeColon:                           false,
			LineBreakAfterTypeReprAccessModifier:       true,
			DeclarationBodyOnTheSameLine:               settings.SameLineIfOwnerIsSingleLine,
			KeepExistingLineBreakBeforeDeclarationBody: true,
			InsertFinalNewline:                         true,
		},
	}
}

// Snapshot converts the formatter settings into a settings snapshot. It
// fails on values outside a setting's domain.
func (f *FormatterConfig) Snapshot() (*settings.Snapshot, error) {
	values := []struct {
		key settings.Key
		v   settings.Value
	}{
		{settings.IndentSize, settings.Int(f.IndentSize)},
		{settings.MaxLineLength, settings.Int(f.MaxLineLength)},
		{settings.KeepBlankLines, settings.Int(f.KeepBlankLines)},
		{settings.IndentOnTryWith, settings.Bool(f.IndentOnTryWith)},
		{settings.OutdentBinaryOperators, settings.Bool(f.OutdentBinaryOperators)},
		{settings.NeverOutdentPipeOperators, settings.Bool(f.NeverOutdentPipeOperators)},
		{settings.SpaceBeforeColon, settings.Bool(f.SpaceBeforeColon)},
		{settings.LineBreakAfterTypeReprAccessModifier, settings.Bool(f.LineBreakAfterTypeReprAccessModifier)},
		{settings.DeclarationBodyOnTheSameLine, settings.Enum(f.DeclarationBodyOnTheSameLine)},
		{settings.KeepExistingLineBreakBeforeDeclarationBody, settings.Bool(f.KeepExistingLineBreakBeforeDeclarationBody)},
		{settings.InsertFinalNewline, settings.Bool(f.InsertFinalNewline)},
	}

	s := settings.FSharp().Defaults()
	for _, kv := range values {
		next, err := s.With(kv.key, kv.v)
		if err != nil {
			return nil, fmt.Errorf("formatter: %w", err)
		}
		s = next
	}
	return s, nil
}

// Excluder reports whether a path is excluded from formatting.
type Excluder struct {
	patterns []*coregex.Regexp
}

// Excluder compiles the exclude patterns.
func (f *FilesConfig) Excluder() (*Excluder, error) {
	ex := &Excluder{}
	for _, p := range f.Exclude {
		re, err := coregex.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("files.exclude: pattern %q: %w", p, err)
		}
		ex.patterns = append(ex.patterns, re)
	}
	return ex, nil
}

// Excluded reports whether path matches any exclude pattern. A nil
// Excluder excludes nothing.
func (e *Excluder) Excluded(path string) bool {
	if e == nil {
		return false
	}
	path = filepath.ToSlash(path)
	for _, re := range e.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Validate checks every setting and exclude pattern.
func (c *Config) Validate() error {
	if _, err := c.Formatter.Snapshot(); err != nil {
		return err
	}
	_, err := c.Files.Excluder()
	return err
}
