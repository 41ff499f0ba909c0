package argdoc

import (
	internalResolver "github.com/goliatone/go-argdoc/internal/source/resolver"
	"github.com/goliatone/go-argdoc/pkg/render/template/pongo"
	"github.com/goliatone/go-argdoc/pkg/source"
)

// NewResolver constructs the template resolver for mode using the internal
// implementation while keeping the concrete type hidden from consumers.
func NewResolver(mode source.Mode, options ...source.ResolverOption) (source.Resolver, error) {
	cfg := source.NewResolverOptions(options...)
	return internalResolver.New(mode, cfg)
}

// NewEngine constructs the pongo2-backed template renderer.
func NewEngine(options ...pongo.Option) (*pongo.Engine, error) {
	return pongo.New(options...)
}
