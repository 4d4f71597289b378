package series

import (
	"fmt"

	"github.com/xtxerr/sup/timing"
)

// Element is a single timestamped sample: one entry of a series.
type Element[T Value] struct {
	Ts     timing.TimeStamp
	Sample Sample[T]
}

func (e Element[T]) String() string {
	return fmt.Sprintf("%v %v", e.Ts, e.Sample)
}

// Sequence is the ordered-sample-sequence capability the windowing layer
// depends on. Both series kinds implement it independently; there is no
// shared storage representation behind it.
type Sequence[T Value] interface {
	// First returns the earliest stored timestamp, or false if empty.
	First() (timing.TimeStamp, bool)
	// Last returns the latest stored timestamp, or false if empty.
	Last() (timing.TimeStamp, bool)
	// Between returns the stored elements with start <= ts < end, in
	// ascending timestamp order.
	Between(start, end timing.TimeStamp) []Element[T]
}
