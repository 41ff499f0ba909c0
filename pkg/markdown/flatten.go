package markdown

import (
	"fmt"

	"github.com/goliatone/go-argdoc/pkg/optspec"
)

// DefaultMaxDepth bounds option nesting during flattening. Top-level options
// sit at depth 1.
const DefaultMaxDepth = 64

// MalformedFunc is notified when a subtree is skipped because its `options`
// value (or the option body itself) is not a mapping.
type MalformedFunc func(path string, err error)

// Options configures Flatten and Assemble.
type Options struct {
	// MaxDepth caps option nesting; deeper trees fail with
	// optspec.ErrDepthExceeded.
	MaxDepth int

	// ParentDepth is the nesting level of the parent the flattened options
	// live under. Zero means the options are top level, whatever prefix
	// the parent path carries.
	ParentDepth int

	// Strict turns malformed shapes into errors instead of skipping them.
	Strict bool

	// OnMalformed receives skipped subtrees when Strict is false.
	OnMalformed MalformedFunc
}

// Option mutates Options.
type Option func(*Options)

// WithMaxDepth overrides DefaultMaxDepth. Non-positive values are ignored.
func WithMaxDepth(depth int) Option {
	return func(opts *Options) {
		if depth > 0 {
			opts.MaxDepth = depth
		}
	}
}

// WithParentDepth tells Flatten how deep the parent path already is when a
// subtree is flattened on its own. Negative values are ignored.
func WithParentDepth(depth int) Option {
	return func(opts *Options) {
		if depth >= 0 {
			opts.ParentDepth = depth
		}
	}
}

// WithStrict rejects malformed `options` values with
// optspec.ErrMalformedOptions.
func WithStrict(strict bool) Option {
	return func(opts *Options) {
		opts.Strict = strict
	}
}

// WithMalformedHandler registers a callback for skipped subtrees.
func WithMalformedHandler(fn MalformedFunc) Option {
	return func(opts *Options) {
		opts.OnMalformed = fn
	}
}

// NewOptions applies the supplied options over the defaults.
func NewOptions(options ...Option) Options {
	cfg := Options{MaxDepth: DefaultMaxDepth}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Flatten walks options depth-first in document order and returns one Row per
// option, each immediately followed by the rows of its children. parent is the
// dotted path the options live under ("" for top-level options). It is only
// used as a row prefix: option names may contain dots themselves, so depth
// comes from WithParentDepth.
func Flatten(options optspec.OptionMap, parent string, opts ...Option) ([]Row, error) {
	cfg := NewOptions(opts...)
	f := flattener{cfg: cfg}

	if err := f.walk(options, parent, cfg.ParentDepth+1); err != nil {
		return nil, err
	}
	return f.rows, nil
}

type flattener struct {
	cfg  Options
	rows []Row
}

func (f *flattener) walk(options optspec.OptionMap, parent string, depth int) error {
	if len(options) == 0 {
		return nil
	}
	if depth > f.cfg.MaxDepth {
		return fmt.Errorf("markdown: %q: %w (limit %d)", parent, optspec.ErrDepthExceeded, f.cfg.MaxDepth)
	}

	for _, opt := range options {
		path := JoinPath(parent, opt.Name)
		f.rows = append(f.rows, NewRow(path, opt))

		if opt.Body == optspec.ShapeMalformed {
			if err := f.malformed(path, "option body"); err != nil {
				return err
			}
			continue
		}

		switch opt.OptionsShape {
		case optspec.ShapeMapping:
			if err := f.walk(opt.Options, path, depth+1); err != nil {
				return err
			}
		case optspec.ShapeMalformed:
			if err := f.malformed(path, "options"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *flattener) malformed(path, what string) error {
	err := fmt.Errorf("markdown: %s of %q: %w", what, path, optspec.ErrMalformedOptions)
	if f.cfg.Strict {
		return err
	}
	if f.cfg.OnMalformed != nil {
		f.cfg.OnMalformed(path, err)
	}
	return nil
}
