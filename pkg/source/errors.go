package source

import "errors"

var (
	// ErrTemplateNotFound is returned in local mode when the template file does
	// not exist. Local mode never falls back to the network.
	ErrTemplateNotFound = errors.New("source: template not found")

	// ErrTemplateUnavailable is returned when no usable template text could be
	// produced: the fetch failed, the server answered with a non-2xx status,
	// or the resolved text was empty.
	ErrTemplateUnavailable = errors.New("source: could not load template")
)
