package resolver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	pkgsource "github.com/goliatone/go-argdoc/pkg/source"
)

// Local reads a single template file and never touches the network.
type Local struct {
	src    pkgsource.Source
	logger *slog.Logger
}

var _ pkgsource.Resolver = (*Local)(nil)

// Resolve returns the local template text or ErrTemplateNotFound when the file
// does not exist.
func (l *Local) Resolve(ctx context.Context) (pkgsource.Template, error) {
	data, err := loadFile(ctx, l.src.Location())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return pkgsource.Template{}, fmt.Errorf("%w: %s", pkgsource.ErrTemplateNotFound, l.src.Location())
	case err != nil:
		return pkgsource.Template{}, fmt.Errorf("%w: %w", pkgsource.ErrTemplateUnavailable, err)
	}

	l.logger.Debug("loaded local template", "path", l.src.Location())
	return pkgsource.NewTemplate(l.src, string(data), false)
}
