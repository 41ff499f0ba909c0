// Package optspec defines the option-argument specification model and the YAML
// ingestion boundary that produces it. Documents are decoded through yaml.v3
// nodes so that mapping order survives, and every optional attribute is kept
// as a tagged Value so renderers can tell an absent field from an empty one.
// Malformed shapes are recorded on the decoded tree rather than rejected, which
// leaves the skip-or-fail decision to the consumer.
package optspec
