// Package orchestrator wires the template resolver → input loaders → table
// assembler → renderer pipeline behind a single Generate call. Defaults match
// the conventional role layout (meta/*.yml, .ci/README.md.j2, README.md) and
// every stage can be replaced through options.
package orchestrator
