// Package settings declares the formatter's options and resolves their
// values from an immutable snapshot.
package settings

import (
	"errors"
	"fmt"
	"slices"
)

// Key names a formatter option. Keys double as YAML field names in the
// config file.
type Key string

const (
	IndentSize                                 Key = "indent_size"
	MaxLineLength                              Key = "max_line_length"
	KeepBlankLines                             Key = "keep_blank_lines"
	IndentOnTryWith                            Key = "indent_on_try_with"
	OutdentBinaryOperators                     Key = "outdent_binary_operators"
	NeverOutdentPipeOperators                  Key = "never_outdent_pipe_operators"
	SpaceBeforeColon                           Key = "space_before_colon"
	LineBreakAfterTypeReprAccessModifier       Key = "line_break_after_type_repr_access_modifier"
	DeclarationBodyOnTheSameLine               Key = "declaration_body_on_the_same_line"
	KeepExistingLineBreakBeforeDeclarationBody Key = "keep_existing_line_break_before_declaration_body"
	InsertFinalNewline                         Key = "insert_final_newline"
)

// Members of the DeclarationBodyOnTheSameLine enum.
const (
	SameLineNever               = "never"
	SameLineAlways              = "always"
	SameLineIfOwnerIsSingleLine = "if_owner_is_single_line"
)

var (
	// ErrUnknownKey is returned for a key the schema does not declare.
	ErrUnknownKey = errors.New("unknown settings key")

	// ErrInvalidValue is returned for a value outside the key's domain.
	ErrInvalidValue = errors.New("invalid settings value")

	// ErrUnboundedDomain is returned when enumerating an integer option.
	ErrUnboundedDomain = errors.New("settings key has an unbounded domain")
)

// Option declares one setting.
type Option struct {
	Key         Key
	Kind        Kind
	Default     Value
	Members     []string // Enum members, in declaration order.
	Min         int      // Lower bound for integer options.
	Description string
}

// Schema is an ordered, immutable set of option declarations.
type Schema struct {
	options []Option
	index   map[Key]int
}

// NewSchema builds a schema. It fails on duplicate keys or defaults that
// are outside their own domain.
func NewSchema(options ...Option) (*Schema, error) {
	s := &Schema{
		options: slices.Clone(options),
		index:   make(map[Key]int, len(options)),
	}
	for i, opt := range s.options {
		if _, dup := s.index[opt.Key]; dup {
			return nil, fmt.Errorf("duplicate settings key %q", opt.Key)
		}
		s.index[opt.Key] = i
		if err := opt.check(opt.Default); err != nil {
			return nil, fmt.Errorf("default for %q: %w", opt.Key, err)
		}
	}
	return s, nil
}

var fsharp = mustSchema(
	Option{Key: IndentSize, Kind: KindInt, Default: Int(4), Min: 1,
		Description: "columns per indentation level"},
	Option{Key: MaxLineLength, Kind: KindInt, Default: Int(120), Min: 1,
		Description: "line length used when deciding whether to break a declaration body"},
	Option{Key: KeepBlankLines, Kind: KindInt, Default: Int(2),
		Description: "maximum number of consecutive blank lines kept"},
	Option{Key: IndentOnTryWith, Kind: KindBool, Default: Bool(false),
		Description: "indent match clauses after try ... with"},
	Option{Key: OutdentBinaryOperators, Kind: KindBool, Default: Bool(true),
		Description: "outdent a binary operator that starts a line"},
	Option{Key: NeverOutdentPipeOperators, Kind: KindBool, Default: Bool(true),
		Description: "keep pipe operators aligned with their operand"},
	Option{Key: SpaceBeforeColon, Kind: KindBool, Default: Bool(false),
		Description: "put a space before a type annotation colon"},
	Option{Key: LineBreakAfterTypeReprAccessModifier, Kind: KindBool, Default: Bool(true),
		Description: "break the line after a type representation's access modifier"},
	Option{Key: DeclarationBodyOnTheSameLine, Kind: KindEnum, Default: Enum(SameLineIfOwnerIsSingleLine),
		Members:     []string{SameLineNever, SameLineAlways, SameLineIfOwnerIsSingleLine},
		Description: "placement of a type declaration body relative to its '='"},
	Option{Key: KeepExistingLineBreakBeforeDeclarationBody, Kind: KindBool, Default: Bool(true),
		Description: "keep a user line break before a declaration body"},
	Option{Key: InsertFinalNewline, Kind: KindBool, Default: Bool(true),
		Description: "end non-empty output with a line break"},
)

// FSharp returns the schema of the F# formatter options.
func FSharp() *Schema { return fsharp }

func mustSchema(options ...Option) *Schema {
	s, err := NewSchema(options...)
	if err != nil {
		panic(err)
	}
	return s
}

// Options returns the declared options in order.
func (s *Schema) Options() []Option {
	return slices.Clone(s.options)
}

// Lookup returns the declaration of key.
func (s *Schema) Lookup(key Key) (Option, bool) {
	i, ok := s.index[key]
	if !ok {
		return Option{}, false
	}
	return s.options[i], true
}

// Domain enumerates every value key can take. Integer options have no
// finite domain and return ErrUnboundedDomain.
func (s *Schema) Domain(key Key) ([]Value, error) {
	opt, ok := s.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	switch opt.Kind {
	case KindBool:
		return []Value{Bool(false), Bool(true)}, nil
	case KindEnum:
		out := make([]Value, len(opt.Members))
		for i, m := range opt.Members {
			out[i] = Enum(m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnboundedDomain, key)
	}
}

// Check reports whether v is a legal value for key.
func (s *Schema) Check(key Key, v Value) error {
	opt, ok := s.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err := opt.check(v); err != nil {
		return fmt.Errorf("%q: %w", key, err)
	}
	return nil
}

func (o Option) check(v Value) error {
	if v.Kind() != o.Kind {
		return fmt.Errorf("%w: want %s, got %s %q", ErrInvalidValue, o.Kind, v.Kind(), v)
	}
	switch o.Kind {
	case KindEnum:
		if !slices.Contains(o.Members, v.AsEnum()) {
			return fmt.Errorf("%w: %q is not one of %v", ErrInvalidValue, v.AsEnum(), o.Members)
		}
	case KindInt:
		if v.AsInt() < o.Min {
			return fmt.Errorf("%w: %d is below the minimum %d", ErrInvalidValue, v.AsInt(), o.Min)
		}
	}
	return nil
}
