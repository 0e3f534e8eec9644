package sparse

import "errors"

var (
	// ErrBadKind indicates a Kind outside Whitaker, Shi and Malcolm.
	ErrBadKind = errors.New("sparse: unknown representation kind")
	// ErrNilMask indicates FromBinary was called without a mask.
	ErrNilMask = errors.New("sparse: nil mask")
	// ErrUnknownLayer indicates a status that is not a live layer of the representation.
	ErrUnknownLayer = errors.New("sparse: status is not a layer of this representation")
	// ErrBufferMismatch indicates an update buffer that does not match the band.
	ErrBufferMismatch = errors.New("sparse: update buffer does not match band")
	// ErrGeometryMismatch indicates two level sets over different grids.
	ErrGeometryMismatch = errors.New("sparse: geometry mismatch")
	// ErrInconsistent indicates a backing image that disagrees with the layers.
	ErrInconsistent = errors.New("sparse: backing image and layers disagree")
)
