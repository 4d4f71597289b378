package series

import (
	"fmt"
	"sort"

	"github.com/xtxerr/sup/timing"
)

// RawSeries is an append-only sequence of timestamped samples with no fixed
// spacing. Timestamps are non-decreasing in storage order; equal timestamps
// accumulate in arrival order.
type RawSeries[T Value] struct {
	elems []Element[T]
}

var _ Sequence[float64] = (*RawSeries[float64])(nil)

// NewRaw creates a new empty unaligned series.
func NewRaw[T Value]() *RawSeries[T] {
	return &RawSeries[T]{}
}

// Append adds a sample at the given timestamp. The timestamp must not be
// earlier than the last stored one; equal timestamps are accepted.
func (s *RawSeries[T]) Append(ts timing.TimeStamp, sample Sample[T]) error {
	if last, ok := s.Last(); ok && ts < last {
		return fmt.Errorf("append at %d: last timestamp is %d: %w",
			ts.Millis(), last.Millis(), ErrOutOfOrderSample)
	}
	s.elems = append(s.elems, Element[T]{Ts: ts, Sample: sample})
	return nil
}

// Push appends a Point sample with the given value.
func (s *RawSeries[T]) Push(ts timing.TimeStamp, value T) error {
	return s.Append(ts, Point(value))
}

// Len returns the number of stored samples.
func (s *RawSeries[T]) Len() int {
	return len(s.elems)
}

// IsEmpty returns true if the series holds no samples.
func (s *RawSeries[T]) IsEmpty() bool {
	return len(s.elems) == 0
}

// First returns the earliest stored timestamp, or false if empty.
func (s *RawSeries[T]) First() (timing.TimeStamp, bool) {
	if len(s.elems) == 0 {
		return 0, false
	}
	return s.elems[0].Ts, true
}

// Last returns the latest stored timestamp, or false if empty.
func (s *RawSeries[T]) Last() (timing.TimeStamp, bool) {
	if len(s.elems) == 0 {
		return 0, false
	}
	return s.elems[len(s.elems)-1].Ts, true
}

// LastValue returns the value of the newest sample, or the zero value if the
// series is empty or the newest sample is a Reset.
func (s *RawSeries[T]) LastValue() T {
	var zero T
	if len(s.elems) == 0 {
		return zero
	}
	v, _ := s.elems[len(s.elems)-1].Sample.Value()
	return v
}

// At returns the element at the given storage index.
func (s *RawSeries[T]) At(i int) (Element[T], bool) {
	if i < 0 || i >= len(s.elems) {
		return Element[T]{}, false
	}
	return s.elems[i], true
}

// Lookup returns the first stored sample with exactly the given timestamp.
func (s *RawSeries[T]) Lookup(ts timing.TimeStamp) (Sample[T], bool) {
	i := s.lowerBound(ts)
	if i < len(s.elems) && s.elems[i].Ts == ts {
		return s.elems[i].Sample, true
	}
	return Sample[T]{}, false
}

// AtOrAfter returns the first element with a timestamp >= ts.
func (s *RawSeries[T]) AtOrAfter(ts timing.TimeStamp) (Element[T], bool) {
	i := s.lowerBound(ts)
	if i < len(s.elems) {
		return s.elems[i], true
	}
	return Element[T]{}, false
}

// Between returns the elements with start <= ts < end in storage order.
// The result is a view into the series, valid until the next Append.
func (s *RawSeries[T]) Between(start, end timing.TimeStamp) []Element[T] {
	if start >= end {
		return nil
	}
	i := s.lowerBound(start)
	j := s.lowerBound(end)
	return s.elems[i:j]
}

// lowerBound returns the index of the first element with timestamp >= ts.
func (s *RawSeries[T]) lowerBound(ts timing.TimeStamp) int {
	return sort.Search(len(s.elems), func(i int) bool {
		return s.elems[i].Ts >= ts
	})
}

// Iter returns a fresh ascending cursor over the series. The cursor is
// invalidated by a concurrent Append.
func (s *RawSeries[T]) Iter() *RawCursor[T] {
	return &RawCursor[T]{s: s}
}

// RawCursor is a single-pass cursor over a RawSeries.
type RawCursor[T Value] struct {
	s *RawSeries[T]
	i int
}

// Next returns the next element, or false when the cursor is exhausted.
func (c *RawCursor[T]) Next() (Element[T], bool) {
	if c.i >= len(c.s.elems) {
		return Element[T]{}, false
	}
	e := c.s.elems[c.i]
	c.i++
	return e, true
}
