package orchestrator

// Render context keys exposed to templates.
const (
	KeyArgSpecs = "arg_specs"
	KeyBadges   = "badges"
	KeyMeta     = "meta"
)

// RenderContext carries the values substituted into the template. It is built
// once per run and never mutated afterwards.
type RenderContext struct {
	// ArgSpecs is the assembled Markdown for every category.
	ArgSpecs string
	// Badges holds the parsed badges document, or "" when the file is absent.
	Badges any
	// Meta holds the parsed metadata document.
	Meta any
}

// Map returns the three-key mapping handed to the template engine.
func (c RenderContext) Map() map[string]any {
	return map[string]any{
		KeyArgSpecs: c.ArgSpecs,
		KeyBadges:   c.Badges,
		KeyMeta:     c.Meta,
	}
}
