// Package snapshot records evolution iterations as compact binary frames
// for debugging and offline inspection.
//
// What:
//
//   - Frame: iteration, time step, grid shape and, per level set, its kind,
//     RMS change, optional region means and the full status/value images.
//   - Encode / Decode: one frame on an io.Writer / io.Reader.
//   - Recorder: an evolution.Observer that encodes every n-th iteration.
//
// Wire format (all integers little-endian int64):
//
//	len(header) header            JSON, segmentio/encoding/json
//	per level set, in header order:
//	  len(block) block            zstd(statuses as bytes)
//	  len(block) block            zstd(values as float64 bits)
//
// Errors:
//
//   - ErrCorrupt for truncated or inconsistent input; Decode returns io.EOF
//     at a clean end of stream.
//   - ErrUnknownLevelSet when a frame has no level set with the given id.
package snapshot
