// Package window carves contiguous time windows out of a series and derives
// per-window aggregates.
//
// Key types:
//   - Window: a half-open [Start, End) view over a series
//   - Iterator: a lazy, single-pass cursor producing successive windows
//   - AggregateIterator: a lazy cursor emitting one aggregate per window
//   - Op: an aggregation operator (Max, Min, Mean, Sum, Oldest, ...)
//
// Iterators borrow their source sequence for their lifetime; mutating the
// underlying series while an iterator is live is not supported.
package window
