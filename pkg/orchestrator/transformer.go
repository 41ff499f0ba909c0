package orchestrator

import "context"

// Transformer adjusts the render context after the inputs are loaded and
// before the template runs. Implementations may rewrite the assembled table or
// patch metadata; the context keys themselves are fixed.
type Transformer interface {
	Transform(ctx context.Context, rc *RenderContext) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, rc *RenderContext) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, rc *RenderContext) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, rc)
}
