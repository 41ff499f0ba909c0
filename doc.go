// Package argdoc generates a role README from meta/argument_specs.yml. The
// option tree of every category is flattened into a Markdown table and the
// tables, role metadata and badges are rendered through a Jinja-style template
// that is read locally or downloaded once and cached.
//
// The root package exposes construction helpers; implementations live under
// pkg/ and internal/.
package argdoc
