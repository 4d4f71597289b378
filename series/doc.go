// Package series implements the sample and series storage core.
//
// Key types:
//   - Sample: a closed variant over Zero, Reset, and Point observations
//   - RawSeries: an append-only, timestamp-ordered unaligned series
//   - AlignedSeries: a fixed-interval series addressed by grid index
//   - Sequence: the ordered-sample-sequence capability both series
//     kinds expose to the windowing layer
//
// Series are single-owner data structures: appends must be serialized by
// the caller, and cursors or range views must not be used across a
// concurrent mutation of their source.
package series
