package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goliatone/go-argdoc/internal/source/resolver"
	"github.com/goliatone/go-argdoc/pkg/inputs"
	"github.com/goliatone/go-argdoc/pkg/markdown"
	"github.com/goliatone/go-argdoc/pkg/optspec"
	"github.com/goliatone/go-argdoc/pkg/render/template"
	"github.com/goliatone/go-argdoc/pkg/render/template/pongo"
	"github.com/goliatone/go-argdoc/pkg/source"
)

// DefaultOutputPath is where the rendered README is written.
const DefaultOutputPath = "README.md"

// Paths groups the files read and written during a run.
type Paths struct {
	ArgumentSpecs string
	Metadata      string
	Badges        string
	Output        string
}

// DefaultPaths returns the conventional role layout.
func DefaultPaths() Paths {
	return Paths{
		ArgumentSpecs: inputs.DefaultArgumentSpecsPath,
		Metadata:      inputs.DefaultMetadataPath,
		Badges:        inputs.DefaultBadgesPath,
		Output:        DefaultOutputPath,
	}
}

// Option customises the orchestrator.
type Option func(*Orchestrator)

// Orchestrator resolves the template, loads the role inputs, assembles the
// option tables and renders the README.
type Orchestrator struct {
	resolver        source.Resolver
	resolverOptions []source.ResolverOption
	renderer        template.TemplateRenderer
	paths           Paths
	logger          *slog.Logger
	markdownOptions []markdown.Option
	decodeOptions   []optspec.DecodeOption
	transformers    []Transformer
}

// Request describes a single generation run.
type Request struct {
	// Mode selects how the template is acquired. Empty means source.ModeRemote.
	Mode source.Mode
}

// Result reports what a run produced.
type Result struct {
	OutputPath string
	Template   source.Template
	Context    RenderContext

	// Written is true once the output file holds the rendered text.
	Written bool

	// RenderErr records a render or write failure. Such failures are logged
	// and do not make Generate return an error.
	RenderErr error
}

// New constructs an Orchestrator with the provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{paths: DefaultPaths()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// WithResolver overrides the mode-based resolver construction. When set, the
// request mode is ignored.
func WithResolver(r source.Resolver) Option {
	return func(o *Orchestrator) {
		o.resolver = r
	}
}

// WithResolverOptions configures the resolver built for each request.
func WithResolverOptions(options ...source.ResolverOption) Option {
	return func(o *Orchestrator) {
		o.resolverOptions = append(o.resolverOptions, options...)
	}
}

// WithRenderer swaps the template engine. Without it every run builds a pongo
// engine whose includes resolve against the template's own directory.
func WithRenderer(r template.TemplateRenderer) Option {
	return func(o *Orchestrator) {
		o.renderer = r
	}
}

// WithPaths overrides the input and output locations. Empty fields keep their
// defaults.
func WithPaths(paths Paths) Option {
	return func(o *Orchestrator) {
		if paths.ArgumentSpecs != "" {
			o.paths.ArgumentSpecs = paths.ArgumentSpecs
		}
		if paths.Metadata != "" {
			o.paths.Metadata = paths.Metadata
		}
		if paths.Badges != "" {
			o.paths.Badges = paths.Badges
		}
		if paths.Output != "" {
			o.paths.Output = paths.Output
		}
	}
}

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithMarkdownOptions configures table assembly.
func WithMarkdownOptions(options ...markdown.Option) Option {
	return func(o *Orchestrator) {
		o.markdownOptions = append(o.markdownOptions, options...)
	}
}

// WithDecodeOptions configures how argument_specs.yml is decoded.
func WithDecodeOptions(options ...optspec.DecodeOption) Option {
	return func(o *Orchestrator) {
		o.decodeOptions = append(o.decodeOptions, options...)
	}
}

// WithContextTransformer registers a hook run on the render context before
// the template executes. Transformers run in registration order.
func WithContextTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.Default()
	}
}

// Generate runs the pipeline. Errors are returned when the template cannot be
// acquired or an input file is missing or malformed; in both cases the output
// file is left untouched. Render and write failures are logged and reported
// through Result.RenderErr.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is nil")
	}
	result := Result{OutputPath: o.paths.Output}

	r, err := o.resolverFor(req)
	if err != nil {
		return result, err
	}
	tmpl, err := r.Resolve(ctx)
	if err != nil {
		return result, fmt.Errorf("orchestrator: resolve template: %w", err)
	}
	result.Template = tmpl

	rc, err := o.buildContext(ctx)
	if err != nil {
		return result, err
	}
	result.Context = rc

	renderer, err := o.rendererFor(tmpl)
	if err != nil {
		return result, err
	}
	if err := o.render(renderer, tmpl, rc); err != nil {
		o.logger.Error("error rendering template or writing file", "output", o.paths.Output, "error", err)
		result.RenderErr = err
		return result, nil
	}

	result.Written = true
	o.logger.Info("successfully rendered and wrote README", "output", o.paths.Output)
	return result, nil
}

func (o *Orchestrator) resolverFor(req Request) (source.Resolver, error) {
	if o.resolver != nil {
		return o.resolver, nil
	}

	mode := req.Mode
	if mode == "" {
		mode = source.ModeRemote
	}

	opts := append([]source.ResolverOption{source.WithLogger(o.logger)}, o.resolverOptions...)
	r, err := resolver.New(mode, source.NewResolverOptions(opts...))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return r, nil
}

func (o *Orchestrator) buildContext(ctx context.Context) (RenderContext, error) {
	spec, err := inputs.LoadArgumentSpecs(o.paths.ArgumentSpecs, o.decodeOptions...)
	if err != nil {
		return RenderContext{}, fmt.Errorf("orchestrator: %w", err)
	}

	mdOptions := append([]markdown.Option{
		markdown.WithMalformedHandler(func(path string, err error) {
			o.logger.Warn("skipping malformed option subtree", "path", path, "error", err)
		}),
	}, o.markdownOptions...)

	table, err := markdown.Assemble(spec, mdOptions...)
	if err != nil {
		return RenderContext{}, fmt.Errorf("orchestrator: assemble tables: %w", err)
	}

	meta, err := inputs.LoadDocument(o.paths.Metadata)
	if err != nil {
		return RenderContext{}, fmt.Errorf("orchestrator: %w", err)
	}

	badges, err := inputs.LoadOptionalDocument(o.paths.Badges)
	if err != nil {
		return RenderContext{}, fmt.Errorf("orchestrator: %w", err)
	}

	rc := RenderContext{ArgSpecs: table, Badges: badges, Meta: meta}
	for _, t := range o.transformers {
		if err := t.Transform(ctx, &rc); err != nil {
			return RenderContext{}, fmt.Errorf("orchestrator: transform context: %w", err)
		}
	}
	return rc, nil
}

// rendererFor returns the injected renderer, or a pongo engine rooted at the
// directory holding the template (or its cache file) so that
// {% include "partials/x.j2" %} in .ci/README.md.j2 finds .ci/partials/x.j2.
func (o *Orchestrator) rendererFor(tmpl source.Template) (template.TemplateRenderer, error) {
	if o.renderer != nil {
		return o.renderer, nil
	}

	var engineOptions []pongo.Option
	if dir := o.templateDir(tmpl); dir != "" {
		engineOptions = append(engineOptions, pongo.WithBaseDir(dir))
	}
	engine, err := pongo.New(engineOptions...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: create renderer: %w", err)
	}
	return engine, nil
}

func (o *Orchestrator) templateDir(tmpl source.Template) string {
	var path string
	switch src := tmpl.Source(); {
	case src == nil:
		return ""
	case src.Kind() == source.SourceKindFile:
		path = src.Location()
	default:
		path = source.NewResolverOptions(o.resolverOptions...).CachePath
	}

	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return ""
	}
	return dir
}

func (o *Orchestrator) render(renderer template.TemplateRenderer, tmpl source.Template, rc RenderContext) error {
	out, err := renderer.RenderString(tmpl.Text(), rc.Map())
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}
	if err := os.WriteFile(o.paths.Output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", o.paths.Output, err)
	}
	return nil
}
