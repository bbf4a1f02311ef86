package settings

import (
	"fmt"
	"maps"
)

// Snapshot is an immutable view of option values for one formatting
// pass. It is safe for concurrent use.
type Snapshot struct {
	schema *Schema
	values map[Key]Value
}

// Defaults returns a snapshot holding every option's default.
func (s *Schema) Defaults() *Snapshot {
	values := make(map[Key]Value, len(s.options))
	for _, opt := range s.options {
		values[opt.Key] = opt.Default
	}
	return &Snapshot{schema: s, values: values}
}

// Schema returns the schema the snapshot was built from.
func (s *Snapshot) Schema() *Schema { return s.schema }

// ValueOf returns the value of key. Unknown keys are an error.
func (s *Snapshot) ValueOf(key Key) (Value, error) {
	v, ok := s.values[key]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return v, nil
}

// With returns a copy of s with key set to v. s itself is unchanged.
func (s *Snapshot) With(key Key, v Value) (*Snapshot, error) {
	if err := s.schema.Check(key, v); err != nil {
		return nil, err
	}
	values := maps.Clone(s.values)
	values[key] = v
	return &Snapshot{schema: s.schema, values: values}, nil
}

// MustWith is With for values known to be valid, such as in tests and
// static tables. It panics on error.
func (s *Snapshot) MustWith(key Key, v Value) *Snapshot {
	out, err := s.With(key, v)
	if err != nil {
		panic(err)
	}
	return out
}

// Int returns the integer value of key, or 0 when key is unknown or not
// an integer option.
func (s *Snapshot) Int(key Key) int {
	return s.values[key].AsInt()
}

// Bool returns the boolean value of key, or false when key is unknown or
// not a boolean option.
func (s *Snapshot) Bool(key Key) bool {
	return s.values[key].AsBool()
}
