package resolver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	pkgsource "github.com/goliatone/go-argdoc/pkg/source"
)

// Remote prefers the cache file and otherwise downloads the template once,
// saving it for later runs. A stale cache is never refreshed.
type Remote struct {
	cache   pkgsource.Source
	remote  pkgsource.Source
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

var _ pkgsource.Resolver = (*Remote)(nil)

// Resolve returns the cached template when present. Otherwise it performs a
// single GET against the remote URL; failures surface as
// ErrTemplateUnavailable and leave the cache untouched.
func (r *Remote) Resolve(ctx context.Context) (pkgsource.Template, error) {
	data, err := loadFile(ctx, r.cache.Location())
	switch {
	case err == nil:
		r.logger.Debug("using cached template", "path", r.cache.Location())
		return pkgsource.NewTemplate(r.cache, string(data), true)
	case !errors.Is(err, fs.ErrNotExist):
		return pkgsource.Template{}, fmt.Errorf("%w: read cache: %w", pkgsource.ErrTemplateUnavailable, err)
	}

	data, err = loadHTTP(ctx, r.http, r.remote.Location(), r.timeout)
	if err != nil {
		r.logger.Error("error downloading template", "url", r.remote.Location(), "error", err)
		return pkgsource.Template{}, fmt.Errorf("%w: %w", pkgsource.ErrTemplateUnavailable, err)
	}
	r.logger.Info("successfully fetched template", "url", r.remote.Location())

	tmpl, err := pkgsource.NewTemplate(r.remote, string(data), false)
	if err != nil {
		return pkgsource.Template{}, err
	}

	if err := writeFile(r.cache.Location(), data); err != nil {
		r.logger.Warn("error saving template", "path", r.cache.Location(), "error", err)
	} else {
		r.logger.Info("successfully saved template", "path", r.cache.Location())
	}
	return tmpl, nil
}
