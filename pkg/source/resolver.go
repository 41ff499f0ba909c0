package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Default locations used by the README generator.
const (
	DefaultLocalPath = ".ci/README.md.j2"
	DefaultCachePath = DefaultLocalPath
	DefaultRemoteURL = "https://raw.githubusercontent.com/Xenion1987/argument-specs-to-readme/main/.ci/README.md.j2"
)

// Mode selects the acquisition strategy.
type Mode string

const (
	// ModeLocal reads the local template file and nothing else.
	ModeLocal Mode = "local"
	// ModeRemote reads the cache file when present and otherwise downloads
	// the remote template once, persisting it to the cache path.
	ModeRemote Mode = "remote"
)

// Valid reports whether m names a supported strategy.
func (m Mode) Valid() bool {
	return m == ModeLocal || m == ModeRemote
}

// Resolver produces template text for a single run.
type Resolver interface {
	Resolve(ctx context.Context) (Template, error)
}

// Template is resolved template text together with its origin.
type Template struct {
	source Source
	text   string
	cached bool
}

// NewTemplate validates and wraps template text. Empty text is rejected with
// ErrTemplateUnavailable.
func NewTemplate(src Source, text string, cached bool) (Template, error) {
	if src == nil {
		return Template{}, errors.New("source: source is required")
	}
	if text == "" {
		return Template{}, fmt.Errorf("%w: %s is empty", ErrTemplateUnavailable, src.Location())
	}
	return Template{source: src, text: text, cached: cached}, nil
}

// Source returns where the text came from.
func (t Template) Source() Source {
	return t.source
}

// Text returns the raw template text.
func (t Template) Text() string {
	return t.text
}

// Cached reports whether the text was read from the cache file rather than
// downloaded or read from the local template path.
func (t Template) Cached() bool {
	return t.cached
}

// ResolverOptions configures how a Resolver locates template text.
type ResolverOptions struct {
	// LocalPath is the template read in ModeLocal.
	LocalPath string

	// CachePath is checked first in ModeRemote and receives downloaded text.
	CachePath string

	// RemoteURL is fetched in ModeRemote when the cache file is absent.
	RemoteURL string

	// HTTPClient overrides the default non-pooled client.
	HTTPClient *http.Client

	// RequestTimeout caps the remote fetch. Zero leaves the transport
	// defaults in charge.
	RequestTimeout time.Duration

	// Logger receives progress and cache-write diagnostics.
	Logger *slog.Logger
}

// ResolverOption mutates ResolverOptions prior to construction.
type ResolverOption func(*ResolverOptions)

// WithLocalPath overrides DefaultLocalPath.
func WithLocalPath(path string) ResolverOption {
	return func(opts *ResolverOptions) {
		opts.LocalPath = path
	}
}

// WithCachePath overrides DefaultCachePath.
func WithCachePath(path string) ResolverOption {
	return func(opts *ResolverOptions) {
		opts.CachePath = path
	}
}

// WithRemoteURL overrides DefaultRemoteURL.
func WithRemoteURL(raw string) ResolverOption {
	return func(opts *ResolverOptions) {
		opts.RemoteURL = raw
	}
}

// WithHTTPClient injects a custom HTTP client for the remote fetch.
func WithHTTPClient(client *http.Client) ResolverOption {
	return func(opts *ResolverOptions) {
		opts.HTTPClient = client
	}
}

// WithRequestTimeout bounds the remote fetch duration.
func WithRequestTimeout(timeout time.Duration) ResolverOption {
	return func(opts *ResolverOptions) {
		opts.RequestTimeout = timeout
	}
}

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(opts *ResolverOptions) {
		opts.Logger = logger
	}
}

// NewResolverOptions applies the supplied options over the defaults.
func NewResolverOptions(options ...ResolverOption) ResolverOptions {
	cfg := ResolverOptions{
		LocalPath: DefaultLocalPath,
		CachePath: DefaultCachePath,
		RemoteURL: DefaultRemoteURL,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}
