package optspec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultRootKey is the top-level key holding the category mapping.
	DefaultRootKey = "argument_specs"

	// DefaultMaxNesting bounds how deep the decoder descends into YAML
	// collections before giving up with ErrDepthExceeded.
	DefaultMaxNesting = 256
)

// Recognised option attributes.
const (
	keyType        = "type"
	keyRequired    = "required"
	keyChoices     = "choices"
	keyDefault     = "default"
	keyDescription = "description"
	keyOptions     = "options"
)

// DecodeOptions configures the YAML ingestion boundary.
type DecodeOptions struct {
	// RootKey names the top-level key whose value is the category mapping.
	RootKey string

	// MaxNesting caps collection nesting, counted in YAML nodes.
	MaxNesting int
}

// DecodeOption mutates DecodeOptions prior to decoding.
type DecodeOption func(*DecodeOptions)

// WithRootKey overrides DefaultRootKey.
func WithRootKey(key string) DecodeOption {
	return func(opts *DecodeOptions) {
		if key != "" {
			opts.RootKey = key
		}
	}
}

// WithMaxNesting overrides DefaultMaxNesting. Non-positive values are ignored.
func WithMaxNesting(n int) DecodeOption {
	return func(opts *DecodeOptions) {
		if n > 0 {
			opts.MaxNesting = n
		}
	}
}

// NewDecodeOptions applies the supplied options over the defaults.
func NewDecodeOptions(options ...DecodeOption) DecodeOptions {
	cfg := DecodeOptions{
		RootKey:    DefaultRootKey,
		MaxNesting: DefaultMaxNesting,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Decode parses an argument specification document and returns the categories
// found under the root key. A missing or null root key yields an empty spec.
func Decode(data []byte, options ...DecodeOption) (CategorySpec, error) {
	cfg := NewDecodeOptions(options...)
	d := newDecoder(cfg)

	root, err := parseRoot(data)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return CategorySpec{}, nil
	}

	root, leave, err := d.enter(root, 0)
	if err != nil {
		return nil, err
	}
	defer leave()

	switch root.Kind {
	case yaml.MappingNode:
	case yaml.ScalarNode:
		if isNull(root) {
			return CategorySpec{}, nil
		}
		fallthrough
	default:
		return nil, fmt.Errorf("%w: document root is %s, want mapping", ErrMalformedYAML, nodeKind(root))
	}

	pairs, err := d.pairs(root, 1)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		if p.key == cfg.RootKey {
			return d.categories(p.value, 1)
		}
	}
	return CategorySpec{}, nil
}

// DecodeOptionMap parses a document whose root is a bare option mapping, the
// shape found under a category's `options` key.
func DecodeOptionMap(data []byte, options ...DecodeOption) (OptionMap, error) {
	d := newDecoder(NewDecodeOptions(options...))

	root, err := parseRoot(data)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return OptionMap{}, nil
	}

	opts, shape, err := d.optionsOf(root, 0)
	if err != nil {
		return nil, err
	}
	if shape == ShapeMalformed {
		return nil, fmt.Errorf("%w: document root", ErrMalformedOptions)
	}
	return opts, nil
}

// DecodeValue parses an arbitrary YAML document into a tagged Value.
func DecodeValue(data []byte, options ...DecodeOption) (Value, error) {
	d := newDecoder(NewDecodeOptions(options...))

	root, err := parseRoot(data)
	if err != nil {
		return Value{}, err
	}
	if root == nil {
		return NullValue(), nil
	}
	return d.value(root, 0)
}

func parseRoot(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedYAML, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	return doc.Content[0], nil
}

type decoder struct {
	maxNesting int
	active     map[*yaml.Node]struct{}
}

func newDecoder(cfg DecodeOptions) *decoder {
	return &decoder{
		maxNesting: cfg.MaxNesting,
		active:     make(map[*yaml.Node]struct{}),
	}
}

type pair struct {
	key   string
	value *yaml.Node
}

// enter resolves aliases and marks n as being on the current path. The
// returned func must be called once the caller is done with the subtree.
func (d *decoder) enter(n *yaml.Node, depth int) (*yaml.Node, func(), error) {
	if depth > d.maxNesting {
		return nil, nil, fmt.Errorf("%w (limit %d, line %d)", ErrDepthExceeded, d.maxNesting, n.Line)
	}
	for n.Kind == yaml.AliasNode {
		if n.Alias == nil {
			return nil, nil, fmt.Errorf("%w: unresolved alias *%s (line %d)", ErrMalformedYAML, n.Value, n.Line)
		}
		n = n.Alias
	}
	if _, busy := d.active[n]; busy {
		return nil, nil, fmt.Errorf("%w (line %d)", ErrCycle, n.Line)
	}
	d.active[n] = struct{}{}
	return n, func() { delete(d.active, n) }, nil
}

func (d *decoder) categories(n *yaml.Node, depth int) (CategorySpec, error) {
	n, leave, err := d.enter(n, depth)
	if err != nil {
		return nil, err
	}
	defer leave()

	if isNull(n) {
		return CategorySpec{}, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: categories are %s, want mapping (line %d)", ErrMalformedYAML, nodeKind(n), n.Line)
	}

	pairs, err := d.pairs(n, depth+1)
	if err != nil {
		return nil, err
	}

	out := make(CategorySpec, 0, len(pairs))
	for _, p := range pairs {
		cat, err := d.category(p.key, p.value, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}

func (d *decoder) category(name string, n *yaml.Node, depth int) (Category, error) {
	cat := Category{Name: name}

	n, leave, err := d.enter(n, depth)
	if err != nil {
		return cat, err
	}
	defer leave()

	switch {
	case isNull(n):
		return cat, nil
	case n.Kind != yaml.MappingNode:
		cat.OptionsShape = ShapeMalformed
		return cat, nil
	}

	pairs, err := d.pairs(n, depth+1)
	if err != nil {
		return cat, err
	}
	for _, p := range pairs {
		if p.key != keyOptions {
			continue
		}
		cat.Options, cat.OptionsShape, err = d.optionsOf(p.value, depth+1)
		if err != nil {
			return cat, fmt.Errorf("category %q: %w", name, err)
		}
	}
	return cat, nil
}

func (d *decoder) optionsOf(n *yaml.Node, depth int) (OptionMap, Shape, error) {
	n, leave, err := d.enter(n, depth)
	if err != nil {
		return nil, ShapeAbsent, err
	}
	defer leave()

	switch {
	case isNull(n):
		return nil, ShapeAbsent, nil
	case n.Kind != yaml.MappingNode:
		return nil, ShapeMalformed, nil
	}

	pairs, err := d.pairs(n, depth+1)
	if err != nil {
		return nil, ShapeMalformed, err
	}

	out := make(OptionMap, 0, len(pairs))
	for _, p := range pairs {
		opt, err := d.option(p.key, p.value, depth+1)
		if err != nil {
			return nil, ShapeMapping, err
		}
		out = append(out, opt)
	}
	return out, ShapeMapping, nil
}

func (d *decoder) option(name string, n *yaml.Node, depth int) (OptionSpec, error) {
	opt := OptionSpec{Name: name}

	n, leave, err := d.enter(n, depth)
	if err != nil {
		return opt, err
	}
	defer leave()

	switch {
	case isNull(n):
		return opt, nil
	case n.Kind != yaml.MappingNode:
		opt.Body = ShapeMalformed
		return opt, nil
	}
	opt.Body = ShapeMapping

	pairs, err := d.pairs(n, depth+1)
	if err != nil {
		return opt, err
	}

	for _, p := range pairs {
		var target *Value
		switch p.key {
		case keyType:
			target = &opt.Type
		case keyRequired:
			target = &opt.Required
		case keyChoices:
			target = &opt.Choices
		case keyDefault:
			target = &opt.Default
		case keyDescription:
			target = &opt.Description
		case keyOptions:
			opt.Options, opt.OptionsShape, err = d.optionsOf(p.value, depth+1)
			if err != nil {
				return opt, fmt.Errorf("option %q: %w", name, err)
			}
			continue
		default:
			continue
		}

		v, err := d.value(p.value, depth+1)
		if err != nil {
			return opt, fmt.Errorf("option %q %s: %w", name, p.key, err)
		}
		*target = v
	}
	return opt, nil
}

func (d *decoder) value(n *yaml.Node, depth int) (Value, error) {
	n, leave, err := d.enter(n, depth)
	if err != nil {
		return Value{}, err
	}
	defer leave()

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return NullValue(), nil
		}
		return d.value(n.Content[0], depth+1)
	case yaml.ScalarNode:
		return scalar(n)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := d.value(child, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Value{Kind: KindSequence, Items: items}, nil
	case yaml.MappingNode:
		pairs, err := d.pairs(n, depth+1)
		if err != nil {
			return Value{}, err
		}
		fields := make([]Field, 0, len(pairs))
		for _, p := range pairs {
			v, err := d.value(p.value, depth+1)
			if err != nil {
				return Value{}, err
			}
			fields = append(fields, Field{Key: p.key, Value: v})
		}
		return Value{Kind: KindMapping, Fields: fields}, nil
	default:
		return Value{}, fmt.Errorf("%w: unexpected %s node (line %d)", ErrMalformedYAML, nodeKind(n), n.Line)
	}
}

// pairs lists the entries of mapping n in document order, expanding `<<`
// merge keys. Explicit keys win over merged ones; repeated explicit keys are
// rejected.
func (d *decoder) pairs(n *yaml.Node, depth int) ([]pair, error) {
	explicit := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if isMergeKey(k) {
			continue
		}
		key, err := keyString(k)
		if err != nil {
			return nil, err
		}
		if _, dup := explicit[key]; dup {
			return nil, fmt.Errorf("%w: %q (line %d)", ErrDuplicateKey, key, k.Line)
		}
		explicit[key] = struct{}{}
	}

	out := make([]pair, 0, len(n.Content)/2)
	seen := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if isMergeKey(k) {
			merged, err := d.merged(v, depth)
			if err != nil {
				return nil, err
			}
			for _, p := range merged {
				if _, ok := explicit[p.key]; ok {
					continue
				}
				if _, ok := seen[p.key]; ok {
					continue
				}
				seen[p.key] = struct{}{}
				out = append(out, p)
			}
			continue
		}
		key, _ := keyString(k)
		seen[key] = struct{}{}
		out = append(out, pair{key: key, value: v})
	}
	return out, nil
}

func (d *decoder) merged(n *yaml.Node, depth int) ([]pair, error) {
	n, leave, err := d.enter(n, depth)
	if err != nil {
		return nil, err
	}
	defer leave()

	switch n.Kind {
	case yaml.MappingNode:
		return d.pairs(n, depth+1)
	case yaml.SequenceNode:
		var out []pair
		for _, child := range n.Content {
			ps, err := d.merged(child, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, ps...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: merge value is %s, want mapping (line %d)", ErrMalformedYAML, nodeKind(n), n.Line)
	}
}

func scalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return NullValue(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrMalformedYAML, err)
		}
		return BoolValue(b), nil
	case "!!int":
		return Value{Kind: KindInt, Scalar: n.Value}, nil
	case "!!float":
		return Value{Kind: KindFloat, Scalar: n.Value}, nil
	case "!!str":
		if b, ok := legacyBool(n); ok {
			return BoolValue(b), nil
		}
		return StringValue(n.Value), nil
	default:
		return StringValue(n.Value), nil
	}
}

// legacyBool reports YAML 1.1 boolean words (yes/no/on/off and the
// true/false spellings) written as plain scalars. Ansible reads these files
// with a YAML 1.1 parser, so `required: yes` means true there.
func legacyBool(n *yaml.Node) (bool, bool) {
	if n.Style != 0 {
		return false, false
	}
	switch n.Value {
	case "yes", "Yes", "YES", "on", "On", "ON", "true", "True", "TRUE":
		return true, true
	case "no", "No", "NO", "off", "Off", "OFF", "false", "False", "FALSE":
		return false, true
	}
	return false, false
}

func keyString(k *yaml.Node) (string, error) {
	for k.Kind == yaml.AliasNode && k.Alias != nil {
		k = k.Alias
	}
	if k.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%w: %s used as mapping key (line %d)", ErrMalformedYAML, nodeKind(k), k.Line)
	}
	return k.Value, nil
}

func isMergeKey(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.Value == "<<" && k.ShortTag() == "!!merge"
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar " + n.ShortTag()
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
