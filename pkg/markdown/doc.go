// Package markdown turns decoded option specifications into Markdown reference
// tables. Flatten walks an option tree in pre-order and yields one six-column
// Row per option, keyed by its dotted path; Assemble groups those rows into one
// table per category.
package markdown
