package processor

import "errors"

var (
	// ErrUnknownMode reports an unrecognized enum value in configuration.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrBadPattern reports a rule or split pattern that cannot be compiled.
	ErrBadPattern = errors.New("invalid pattern")
)
