// Package inputs reads the YAML files that feed a README render: the argument
// specification, the role metadata and the optional badges document.
package inputs
