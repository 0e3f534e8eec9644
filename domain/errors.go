package domain

import "errors"

var (
	// ErrEmptyImage indicates Build was called without an id-list image.
	ErrEmptyImage = errors.New("domain: nil id-list image")
	// ErrUnknownNode indicates a flat offset outside the partitioned grid.
	ErrUnknownNode = errors.New("domain: node outside partition")
	// ErrUnknownLevelSet indicates a negative level-set identifier.
	ErrUnknownLevelSet = errors.New("domain: level-set id must be non-negative")
)
