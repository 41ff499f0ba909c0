package optspec

import (
	"strconv"
	"strings"
)

// Kind tags the shape of a decoded YAML value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a tagged YAML value. The zero Value is absent.
type Value struct {
	Kind Kind
	// Scalar holds the scalar text as written in the document for int, float
	// and string values.
	Scalar string
	Bool   bool
	Items  []Value
	Fields []Field
}

// Field is one entry of a mapping Value, kept in document order.
type Field struct {
	Key   string
	Value Value
}

// Present reports whether the attribute appeared in the source document.
func (v Value) Present() bool {
	return v.Kind != KindAbsent
}

// IsScalar reports whether v holds a single non-structured value.
func (v Value) IsScalar() bool {
	switch v.Kind {
	case KindNull, KindBool, KindInt, KindFloat, KindString:
		return true
	}
	return false
}

// String renders v as plain text. Booleans are lower-cased, other scalars are
// returned as written, sequences and mappings use YAML flow style.
func (v Value) String() string {
	switch v.Kind {
	case KindAbsent:
		return ""
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt, KindFloat, KindString:
		return v.Scalar
	case KindSequence:
		parts := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			parts = append(parts, item.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMapping:
		parts := make([]string, 0, len(v.Fields))
		for _, field := range v.Fields {
			parts = append(parts, field.Key+": "+field.Value.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

// Strings returns the element texts of a sequence, or a single-element slice
// for a scalar. Absent values yield nil.
func (v Value) Strings() []string {
	switch {
	case v.Kind == KindSequence:
		out := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			out = append(out, item.String())
		}
		return out
	case v.Present():
		return []string{v.String()}
	default:
		return nil
	}
}

// Lookup returns the value stored under key for mapping values.
func (v Value) Lookup(key string) (Value, bool) {
	if v.Kind != KindMapping {
		return Value{}, false
	}
	for _, field := range v.Fields {
		if field.Key == key {
			return field.Value, true
		}
	}
	return Value{}, false
}

// NullValue returns an explicit null.
func NullValue() Value {
	return Value{Kind: KindNull}
}

// StringValue wraps s as a string scalar.
func StringValue(s string) Value {
	return Value{Kind: KindString, Scalar: s}
}

// BoolValue wraps b as a boolean scalar.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// IntValue wraps n as an integer scalar.
func IntValue(n int64) Value {
	return Value{Kind: KindInt, Scalar: strconv.FormatInt(n, 10)}
}

// FloatValue wraps the literal text of a float scalar.
func FloatValue(raw string) Value {
	return Value{Kind: KindFloat, Scalar: raw}
}

// SequenceValue wraps items as a sequence.
func SequenceValue(items ...Value) Value {
	return Value{Kind: KindSequence, Items: append([]Value(nil), items...)}
}

// MappingValue wraps fields as a mapping.
func MappingValue(fields ...Field) Value {
	return Value{Kind: KindMapping, Fields: append([]Field(nil), fields...)}
}

// StringsValue is shorthand for a sequence of string scalars.
func StringsValue(items ...string) Value {
	values := make([]Value, 0, len(items))
	for _, item := range items {
		values = append(values, StringValue(item))
	}
	return Value{Kind: KindSequence, Items: values}
}
