package pongo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-argdoc/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir string
}

// WithBaseDir resolves {% include %} and {% extends %} paths against dir,
// normally the directory the README template was loaded from. dir must exist.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// Engine satisfies template.TemplateRenderer using a pongo2 template set.
// pongo2 speaks the Django template dialect, which covers the subset of
// Jinja2 README templates usually rely on.
type Engine struct {
	templateSet *pongo2.TemplateSet
}

var _ template.TemplateRenderer = (*Engine)(nil)

var (
	setupOnce sync.Once
	setupErr  error
)

// New constructs an Engine. Without WithBaseDir, includes resolve against the
// working directory.
//
// The first call configures pongo2 for the whole process: autoescaping is
// turned off so Markdown tables and inline HTML pass through untouched, the
// for tag is replaced with one that iterates maps deterministically, and the
// trim and to_yaml filters are registered. Later calls leave that state alone,
// so a host that calls pongo2.SetAutoescape afterwards keeps its choice.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	setupOnce.Do(setup)
	if setupErr != nil {
		return nil, fmt.Errorf("pongo: setup: %w", setupErr)
	}

	loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
	if err != nil {
		return nil, fmt.Errorf("pongo: create local loader: %w", err)
	}

	return &Engine{
		templateSet: pongo2.NewSet("argdoc", loader),
	}, nil
}

func setup() {
	pongo2.SetAutoescape(false)

	if err := pongo2.ReplaceTag("for", parseFor); err != nil {
		setupErr = err
		return
	}
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("to_yaml") {
		_ = pongo2.RegisterFilter("to_yaml", filterToYAML)
	}
}

// RenderString compiles templateContent and renders it once, copying the
// result to every writer in out.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("pongo: engine is nil")
	}

	tmpl, err := e.templateSet.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("pongo: parse template string: %w", err)
	}
	return e.execute(tmpl, data, out)
}

func (e *Engine) execute(tmpl *pongo2.Template, data any, out []io.Writer) (string, error) {
	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("pongo: convert data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(viewContext, &buf); err != nil {
		return "", fmt.Errorf("pongo: execute template string: %w", err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// converter turns render data into values pongo2 can resolve attributes on,
// remembering the key order of every ordered mapping it flattens to a map.
type converter struct {
	order keyOrder
}

func convertToContext(data any) (pongo2.Context, error) {
	c := &converter{order: keyOrder{}}

	var in map[string]any
	switch v := data.(type) {
	case nil:
		in = map[string]any{}
	case pongo2.Context:
		in = v
	case map[string]any:
		in = v
	default:
		converted, err := c.value(v)
		if err != nil {
			return nil, err
		}
		m, ok := converted.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("pongo: render data must be a mapping, got %T", data)
		}
		in = m
	}

	out := make(pongo2.Context, len(in)+1)
	for key, value := range in {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		converted, err := c.value(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	out[keyOrderContextKey] = c.order
	return out, nil
}

func (c *converter) value(value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	switch v := value.(type) {
	case template.OrderedMapping:
		return c.ordered(v)
	case pongo2.Context:
		return c.mapping(v)
	case map[string]any:
		return c.mapping(v)
	case map[any]any:
		m := make(map[string]any, len(v))
		for key, item := range v {
			m[fmt.Sprint(key)] = item
		}
		return c.mapping(m)
	case []any:
		return c.slice(v)
	}

	switch reflect.ValueOf(value).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Func:
		// Named scalars keep their type so a String method still formats them.
		return value, nil
	}

	raw, err := jsonToAny(value)
	if err != nil {
		return nil, err
	}
	return c.value(raw)
}

func (c *converter) ordered(in template.OrderedMapping) (map[string]any, error) {
	if v := reflect.ValueOf(in); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, nil
	}

	keys := in.Keys()
	out := make(map[string]any, len(keys))
	for _, key := range keys {
		item, _ := in.Get(key)
		converted, err := c.value(item)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	c.order[reflect.ValueOf(out).Pointer()] = slices.Clone(keys)
	return out, nil
}

func (c *converter) mapping(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		converted, err := c.value(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func (c *converter) slice(in []any) ([]any, error) {
	out := make([]any, 0, len(in))
	for _, value := range in {
		converted, err := c.value(value)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

// jsonToAny reduces arbitrary Go values (structs, typed slices and maps) to
// the generic map/slice/scalar shapes pongo2 resolves attributes on. Numbers
// stay json.Number so they print as written.
func jsonToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterToYAML renders structured values (badges, metadata) back as YAML.
// Mapping keys come out sorted.
func filterToYAML(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	out, err := yaml.Marshal(in.Interface())
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:to_yaml", OrigError: err}
	}
	return pongo2.AsValue(strings.TrimSuffix(string(out), "\n")), nil
}
