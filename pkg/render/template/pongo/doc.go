// Package pongo adapts github.com/flosch/pongo2 to the template.TemplateRenderer
// contract. Templates use pongo2's Django dialect, not full Jinja2: filters
// with arguments use a colon (`default:"x"`) and method calls such as
// `.items()` are not available. Map iteration in {% for %} follows document
// order for decoded YAML mappings.
package pongo
