package levelset

import "errors"

var (
	// ErrNilLevelSet indicates a nil LevelSet passed to Container.Add.
	ErrNilLevelSet = errors.New("levelset: nil level set")
	// ErrDuplicateID indicates an id registered twice in one Container.
	ErrDuplicateID = errors.New("levelset: duplicate level-set id")
	// ErrUnknownLevelSet indicates a lookup of an id the Container does not hold.
	ErrUnknownLevelSet = errors.New("levelset: unknown level-set id")
	// ErrGeometryMismatch indicates a level set or partition over a different grid.
	ErrGeometryMismatch = errors.New("levelset: geometry mismatch")
)
