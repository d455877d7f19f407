package controller

import "errors"

var (
	// ErrMissingHandle is returned by New when a required UI handle is nil.
	ErrMissingHandle = errors.New("controller: missing ui handle")
	// ErrUnknownField is returned when a field name is not in the field set.
	ErrUnknownField = errors.New("controller: unknown field")
	// ErrUnknownKind is returned by New for an unsupported form kind.
	ErrUnknownKind = errors.New("controller: unknown form kind")
)
