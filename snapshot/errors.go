package snapshot

import "errors"

var (
	// ErrCorrupt indicates a truncated or inconsistent frame.
	ErrCorrupt = errors.New("snapshot: corrupt frame")
	// ErrUnknownLevelSet indicates a level-set id missing from a frame.
	ErrUnknownLevelSet = errors.New("snapshot: unknown level set")
	// ErrBadLevel indicates a zstd level outside [1, 22].
	ErrBadLevel = errors.New("snapshot: compression level must lie in [1, 22]")
)
