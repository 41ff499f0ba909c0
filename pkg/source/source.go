package source

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Source identifies where a template originated.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the acquisition modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindURL  SourceKind = "url"
)

// fileSource identifies on-disk templates.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// Local returns a Source pointing to a file path.
func Local(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// urlSource references an HTTP/HTTPS endpoint.
type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// Remote parses the supplied URL string and returns a Source. It panics if the
// URL is invalid to surface configuration mistakes early.
func Remote(raw string) Source {
	if raw == "" {
		panic("source: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("source: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}
