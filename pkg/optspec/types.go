package optspec

// Shape records how a structural attribute appeared in the source document.
type Shape uint8

const (
	// ShapeAbsent means the attribute was not written (or was null).
	ShapeAbsent Shape = iota
	// ShapeMapping means the attribute held a well-formed mapping.
	ShapeMapping
	// ShapeMalformed means the attribute held something other than a mapping.
	ShapeMalformed
)

func (s Shape) String() string {
	switch s {
	case ShapeAbsent:
		return "absent"
	case ShapeMapping:
		return "mapping"
	case ShapeMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// OptionSpec describes one configurable parameter and, through Options, its
// nested children.
type OptionSpec struct {
	Name        string
	Type        Value
	Required    Value
	Choices     Value
	Default     Value
	Description Value

	// Body is ShapeMalformed when the option itself was not a mapping (for
	// example `name: "text"`); such options keep every attribute absent.
	Body Shape

	Options      OptionMap
	OptionsShape Shape
}

// OptionMap is an ordered set of sibling options. Names are unique.
type OptionMap []OptionSpec

// Get returns the option with the given name.
func (m OptionMap) Get(name string) (OptionSpec, bool) {
	for _, opt := range m {
		if opt.Name == name {
			return opt, true
		}
	}
	return OptionSpec{}, false
}

// Names lists option names in document order.
func (m OptionMap) Names() []string {
	out := make([]string, 0, len(m))
	for _, opt := range m {
		out = append(out, opt.Name)
	}
	return out
}

// Count returns the number of options reachable from m through well-formed
// `options` mappings, m's own entries included.
func (m OptionMap) Count() int {
	total := 0
	for _, opt := range m {
		total++
		if opt.OptionsShape == ShapeMapping {
			total += opt.Options.Count()
		}
	}
	return total
}

// Category is a named group of top-level options rendered as one table.
type Category struct {
	Name         string
	Options      OptionMap
	OptionsShape Shape
}

// CategorySpec lists categories in document order.
type CategorySpec []Category

// Names lists category names in document order.
func (c CategorySpec) Names() []string {
	out := make([]string, 0, len(c))
	for _, cat := range c {
		out = append(out, cat.Name)
	}
	return out
}
