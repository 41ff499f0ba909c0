// Package template defines the renderer-agnostic contract the README generator
// renders through. The pongo subpackage provides the Jinja-compatible engine.
package template
