package series

import (
	"fmt"

	"github.com/xtxerr/sup/timing"
)

// AlignedSeries is a fixed-interval series addressed by grid index from an
// origin timestamp. Every stored timestamp lies exactly on the grid; grid
// positions that were never written report no sample. Writing to an occupied
// position overwrites it (last write wins).
type AlignedSeries[T Value] struct {
	origin   timing.TimeStamp
	interval timing.Duration

	slots []slot[T]
	count int
	// Lowest and highest occupied indices; valid only when count > 0.
	minSet int
	maxSet int
}

type slot[T Value] struct {
	sample Sample[T]
	set    bool
}

var _ Sequence[float64] = (*AlignedSeries[float64])(nil)

// NewAligned creates an empty aligned series on the grid defined by origin
// and interval. The interval must be positive.
func NewAligned[T Value](origin timing.TimeStamp, interval timing.Duration) (*AlignedSeries[T], error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval %d: %w", interval.Millis(), ErrInvalidInterval)
	}
	return &AlignedSeries[T]{origin: origin, interval: interval}, nil
}

// Origin returns the grid origin.
func (s *AlignedSeries[T]) Origin() timing.TimeStamp {
	return s.origin
}

// Interval returns the grid interval.
func (s *AlignedSeries[T]) Interval() timing.Duration {
	return s.interval
}

// index returns the grid index for ts, or false if ts is off the grid or
// before the origin.
func (s *AlignedSeries[T]) index(ts timing.TimeStamp) (int, bool) {
	off := ts.Millis() - s.origin.Millis()
	if off < 0 || off%s.interval.Millis() != 0 {
		return 0, false
	}
	return int(off / s.interval.Millis()), true
}

// timestampAt returns the grid timestamp for the given index.
func (s *AlignedSeries[T]) timestampAt(i int) timing.TimeStamp {
	return timing.FromMillis(s.origin.Millis() + int64(i)*s.interval.Millis())
}

// Append stores a sample at the grid position for ts, overwriting any prior
// value there. Fails if ts does not lie exactly on the grid; timestamps
// before the origin are off the grid by definition.
func (s *AlignedSeries[T]) Append(ts timing.TimeStamp, sample Sample[T]) error {
	i, ok := s.index(ts)
	if !ok {
		return fmt.Errorf("timestamp %d not on grid (origin %d, interval %d): %w",
			ts.Millis(), s.origin.Millis(), s.interval.Millis(), ErrMisalignedTimestamp)
	}

	for i >= len(s.slots) {
		s.slots = append(s.slots, slot[T]{})
	}

	if !s.slots[i].set {
		if s.count == 0 || i < s.minSet {
			s.minSet = i
		}
		if s.count == 0 || i > s.maxSet {
			s.maxSet = i
		}
		s.count++
	}
	s.slots[i] = slot[T]{sample: sample, set: true}
	return nil
}

// Push stores a Point sample with the given value at the grid position for ts.
func (s *AlignedSeries[T]) Push(ts timing.TimeStamp, value T) error {
	return s.Append(ts, Point(value))
}

// Len returns the number of occupied grid positions.
func (s *AlignedSeries[T]) Len() int {
	return s.count
}

// IsEmpty returns true if no grid position is occupied.
func (s *AlignedSeries[T]) IsEmpty() bool {
	return s.count == 0
}

// First returns the earliest occupied grid timestamp, or false if empty.
func (s *AlignedSeries[T]) First() (timing.TimeStamp, bool) {
	if s.count == 0 {
		return 0, false
	}
	return s.timestampAt(s.minSet), true
}

// Last returns the latest occupied grid timestamp, or false if empty.
func (s *AlignedSeries[T]) Last() (timing.TimeStamp, bool) {
	if s.count == 0 {
		return 0, false
	}
	return s.timestampAt(s.maxSet), true
}

// Lookup returns the sample stored at the grid position for ts. It reports
// false for unset positions and for timestamps off the grid.
func (s *AlignedSeries[T]) Lookup(ts timing.TimeStamp) (Sample[T], bool) {
	i, ok := s.index(ts)
	if !ok || i >= len(s.slots) || !s.slots[i].set {
		return Sample[T]{}, false
	}
	return s.slots[i].sample, true
}

// SampleAt returns the sample at the given grid index.
func (s *AlignedSeries[T]) SampleAt(i int) (Sample[T], bool) {
	if i < 0 || i >= len(s.slots) || !s.slots[i].set {
		return Sample[T]{}, false
	}
	return s.slots[i].sample, true
}

// AtOrAfter returns the first occupied element with a grid timestamp >= ts.
func (s *AlignedSeries[T]) AtOrAfter(ts timing.TimeStamp) (Element[T], bool) {
	if s.count == 0 {
		return Element[T]{}, false
	}
	start := 0
	if ts > s.origin {
		start = int(ceilDiv(ts.Millis()-s.origin.Millis(), s.interval.Millis()))
	}
	for i := max(start, s.minSet); i <= s.maxSet; i++ {
		if s.slots[i].set {
			return Element[T]{Ts: s.timestampAt(i), Sample: s.slots[i].sample}, true
		}
	}
	return Element[T]{}, false
}

// Between returns the occupied elements with start <= ts < end in grid order.
func (s *AlignedSeries[T]) Between(start, end timing.TimeStamp) []Element[T] {
	if s.count == 0 || start >= end {
		return nil
	}

	lo := 0
	if start > s.origin {
		lo = int(ceilDiv(start.Millis()-s.origin.Millis(), s.interval.Millis()))
	}
	hi := int(ceilDiv(end.Millis()-s.origin.Millis(), s.interval.Millis())) // exclusive

	lo = max(lo, s.minSet)
	hi = min(hi, s.maxSet+1)

	var out []Element[T]
	for i := lo; i < hi; i++ {
		if s.slots[i].set {
			out = append(out, Element[T]{Ts: s.timestampAt(i), Sample: s.slots[i].sample})
		}
	}
	return out
}

// Iter returns a fresh ascending cursor over the occupied grid positions.
// The cursor is invalidated by a concurrent Append.
func (s *AlignedSeries[T]) Iter() *AlignedCursor[T] {
	return &AlignedCursor[T]{s: s}
}

// AlignedCursor is a single-pass cursor over an AlignedSeries.
type AlignedCursor[T Value] struct {
	s *AlignedSeries[T]
	i int
}

// Next returns the next occupied element, or false when exhausted.
func (c *AlignedCursor[T]) Next() (Element[T], bool) {
	for ; c.i < len(c.s.slots); c.i++ {
		if c.s.slots[c.i].set {
			e := Element[T]{Ts: c.s.timestampAt(c.i), Sample: c.s.slots[c.i].sample}
			c.i++
			return e, true
		}
	}
	return Element[T]{}, false
}

// ceilDiv returns ceil(a/b) for positive b.
func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}
