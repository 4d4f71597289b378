package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/xtxerr/sup/series"
	"github.com/xtxerr/sup/timing"
)

// ErrInvalidWindowSpec is returned when constructing a window iterator with
// a non-positive length or step.
var ErrInvalidWindowSpec = errors.New("invalid window spec")

// Window is a half-open time range [Start, End) over a source sequence.
// It does not own or copy samples; membership is computed on demand.
type Window[T series.Value] struct {
	Start timing.TimeStamp
	End   timing.TimeStamp

	seq series.Sequence[T]
}

// Elements returns the ordered subsequence of the source whose timestamps
// satisfy Start <= ts < End.
func (w Window[T]) Elements() []series.Element[T] {
	return w.seq.Between(w.Start, w.End)
}

// IsEmpty returns true if the window covers no stored samples.
func (w Window[T]) IsEmpty() bool {
	return len(w.Elements()) == 0
}

// Iterator is a lazy, single-pass cursor producing successive windows over a
// sequence. step == length gives tumbling windows, step < length sliding
// ones, and step > length sampled windows with gaps. A fresh iterator must
// be constructed to re-traverse.
type Iterator[T series.Value] struct {
	seq    series.Sequence[T]
	length timing.Duration
	step   timing.Duration

	cursor    timing.TimeStamp
	last      timing.TimeStamp
	exhausted bool
}

// New creates a window iterator starting at the sequence's first timestamp.
func New[T series.Value](seq series.Sequence[T], length, step timing.Duration) (*Iterator[T], error) {
	// An empty sequence yields an immediately exhausted iterator.
	first, _ := seq.First()
	return From(seq, first, length, step)
}

// From creates a window iterator starting at an explicit timestamp instead
// of the sequence's first. Windows whose start precedes the first stored
// sample are still produced (and may be empty); iteration stops once the
// window start would exceed the last stored timestamp.
func From[T series.Value](seq series.Sequence[T], start timing.TimeStamp, length, step timing.Duration) (*Iterator[T], error) {
	if length <= 0 {
		return nil, fmt.Errorf("length %d: %w", length.Millis(), ErrInvalidWindowSpec)
	}
	if step <= 0 {
		return nil, fmt.Errorf("step %d: %w", step.Millis(), ErrInvalidWindowSpec)
	}

	it := &Iterator[T]{
		seq:    seq,
		length: length,
		step:   step,
		cursor: start,
	}

	last, ok := seq.Last()
	if !ok || last < start {
		it.exhausted = true
	}
	it.last = last
	return it, nil
}

// Next produces the next window, or false once the iterator is exhausted.
func (it *Iterator[T]) Next() (Window[T], bool) {
	if it.exhausted {
		return Window[T]{}, false
	}

	end, err := it.cursor.Add(it.length)
	if err != nil {
		// The window end saturates at the representable maximum.
		end = timing.FromMillis(math.MaxInt64)
	}
	win := Window[T]{Start: it.cursor, End: end, seq: it.seq}

	next, err := it.cursor.Add(it.step)
	if err != nil || next > it.last {
		it.exhausted = true
	} else {
		it.cursor = next
	}

	return win, true
}
