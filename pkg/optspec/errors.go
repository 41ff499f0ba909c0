package optspec

import "errors"

var (
	// ErrMalformedYAML wraps parser failures and documents whose top-level
	// shape cannot hold an argument specification.
	ErrMalformedYAML = errors.New("optspec: malformed yaml")

	// ErrMalformedOptions reports an `options` value (or option body) that is
	// present but not a mapping. Consumers running in strict mode return it;
	// everyone else skips the subtree.
	ErrMalformedOptions = errors.New("optspec: options is not a mapping")

	// ErrDuplicateKey reports two sibling options sharing a name.
	ErrDuplicateKey = errors.New("optspec: duplicate option name")

	// ErrDepthExceeded reports a tree nested deeper than the configured limit.
	ErrDepthExceeded = errors.New("optspec: maximum nesting depth exceeded")

	// ErrCycle reports a YAML alias that refers back to one of its ancestors.
	ErrCycle = errors.New("optspec: cyclic alias")
)
