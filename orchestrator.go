package argdoc

import (
	"context"

	"github.com/goliatone/go-argdoc/pkg/orchestrator"
	"github.com/goliatone/go-argdoc/pkg/source"
)

// RenderContext aliases orchestrator.RenderContext for callers writing
// context transformers against the root package.
type RenderContext = orchestrator.RenderContext

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// Paths aliases orchestrator.Paths.
type Paths = orchestrator.Paths

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateReadme runs the full pipeline once with the template acquired per
// mode. It is the simplest entry point for callers that just want README.md
// regenerated in the working directory.
func GenerateReadme(ctx context.Context, mode source.Mode, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{Mode: mode})
}
