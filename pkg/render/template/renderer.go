package template

import (
	"io"
)

// TemplateRenderer is the seam between the orchestrator and a concrete
// template engine. The README template always arrives as text, either read
// from disk or downloaded, so rendering a string is the whole contract.
type TemplateRenderer interface {
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}

// OrderedMapping is template data whose keys have a meaningful order, such as
// a decoded YAML mapping. Engines iterate it in Keys order.
type OrderedMapping interface {
	Keys() []string
	Get(key string) (any, bool)
}
