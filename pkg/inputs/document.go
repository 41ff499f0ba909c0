package inputs

import (
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-argdoc/pkg/optspec"
	"github.com/goliatone/go-argdoc/pkg/render/template"
)

// Mapping is a decoded YAML mapping that remembers its key order, so template
// loops over metadata come out in the order the file lists them.
type Mapping struct {
	keys   []string
	values map[string]any
}

var _ template.OrderedMapping = (*Mapping)(nil)

// NewMapping builds a Mapping from fields, keeping their order.
func NewMapping(fields ...MappingField) *Mapping {
	m := &Mapping{values: make(map[string]any, len(fields))}
	for _, f := range fields {
		m.Set(f.Key, f.Value)
	}
	return m
}

// MappingField is one key/value pair passed to NewMapping.
type MappingField struct {
	Key   string
	Value any
}

// Set adds or replaces key. New keys go to the end.
func (m *Mapping) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Keys returns the keys in document order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Len reports the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Float is a YAML float. It prints the way Ansible's Python tooling prints
// floats: 2.9 stays 2.9 and whole numbers keep a trailing ".0".
type Float float64

func (f Float) String() string {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// templateData converts a decoded Value into template data: mappings become
// *Mapping, sequences []any, and scalars their Go counterparts. Numbers that
// do not fit int or float64 stay as their source text.
func templateData(v optspec.Value) any {
	switch v.Kind {
	case optspec.KindAbsent, optspec.KindNull:
		return nil
	case optspec.KindBool:
		return v.Bool
	case optspec.KindInt:
		var n int
		if err := yaml.Unmarshal([]byte(v.Scalar), &n); err != nil {
			return v.Scalar
		}
		return n
	case optspec.KindFloat:
		var f float64
		if err := yaml.Unmarshal([]byte(v.Scalar), &f); err != nil {
			return v.Scalar
		}
		return Float(f)
	case optspec.KindSequence:
		items := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			items = append(items, templateData(item))
		}
		return items
	case optspec.KindMapping:
		m := &Mapping{
			keys:   make([]string, 0, len(v.Fields)),
			values: make(map[string]any, len(v.Fields)),
		}
		for _, field := range v.Fields {
			m.Set(field.Key, templateData(field.Value))
		}
		return m
	default:
		return v.Scalar
	}
}
