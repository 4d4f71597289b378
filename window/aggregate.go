package window

import "github.com/xtxerr/sup/series"

// AggregateIterator wraps a window iterator and an operator, lazily emitting
// one derived element per window. Like its source it is single-pass: each
// Next pulls exactly one window, computes its aggregate, and returns or
// skips, never buffering more than one window's subsequence.
type AggregateIterator[T, R series.Value] struct {
	src *Iterator[T]
	op  Op[T, R]
}

// Aggregate creates an aggregation iterator over the given window iterator.
// This is a free function rather than a method because the result payload
// type R is independent of the source payload type T.
func Aggregate[T, R series.Value](src *Iterator[T], op Op[T, R]) *AggregateIterator[T, R] {
	return &AggregateIterator[T, R]{src: src, op: op}
}

// Next produces the aggregate for the next non-empty window, stamped with
// that window's start timestamp. Windows whose aggregable subsequence is
// empty after reset segmentation are skipped without emitting a result.
// Returns false once the source iterator is exhausted.
func (it *AggregateIterator[T, R]) Next() (series.Element[R], bool) {
	for {
		win, ok := it.src.Next()
		if !ok {
			return series.Element[R]{}, false
		}

		items := afterLastReset(win.Elements())
		if len(items) == 0 {
			continue
		}

		res, ok := it.op(items)
		if !ok {
			continue
		}
		return series.Element[R]{Ts: win.Start, Sample: res.Sample}, true
	}
}

// Collect drains the iterator into a slice. Intended for callers that want
// the whole result at once; large series should consume Next directly.
func (it *AggregateIterator[T, R]) Collect() []series.Element[R] {
	var out []series.Element[R]
	for {
		el, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, el)
	}
}

// afterLastReset truncates a window's samples to those after the most recent
// Reset, so a counter restart cannot leak a pre-restart value into the
// aggregate. With no Reset present the input is returned unchanged.
func afterLastReset[T series.Value](items []series.Element[T]) []series.Element[T] {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Sample.IsReset() {
			return items[i+1:]
		}
	}
	return items
}
