package settings

import "strconv"

// Kind is the type of a settings value.
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindEnum
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindInt:
		return "int"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a typed settings value. The zero Value is invalid.
type Value struct {
	kind Kind
	b    bool
	i    int
	s    string
}

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value.
func Int(i int) Value { return Value{kind: KindInt, i: i} }

// Enum returns an enum value holding the given member name.
func Enum(name string) Value { return Value{kind: KindEnum, s: name} }

// Kind returns the value's kind, or zero for the invalid value.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v was built by one of the constructors.
func (v Value) IsValid() bool { return v.kind != 0 }

// AsBool returns the boolean held by v; false for other kinds.
func (v Value) AsBool() bool { return v.kind == KindBool && v.b }

// AsInt returns the integer held by v; 0 for other kinds.
func (v Value) AsInt() int {
	if v.kind != KindInt {
		return 0
	}
	return v.i
}

// AsEnum returns the enum member held by v; "" for other kinds.
func (v Value) AsEnum() string {
	if v.kind != KindEnum {
		return ""
	}
	return v.s
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.Itoa(v.i)
	case KindEnum:
		return v.s
	default:
		return "<invalid>"
	}
}
