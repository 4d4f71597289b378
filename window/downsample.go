package window

import (
	"fmt"

	"github.com/xtxerr/sup/series"
	"github.com/xtxerr/sup/timing"
)

// Downsample aggregates a raw series into an aligned series with the given
// origin and interval, applying op over tumbling windows of one interval
// each. Windows that produce no aggregate leave their grid position absent.
func Downsample[T, R series.Value](src *series.RawSeries[T], origin timing.TimeStamp, interval timing.Duration, op Op[T, R]) (*series.AlignedSeries[R], error) {
	out, err := series.NewAligned[R](origin, interval)
	if err != nil {
		return nil, err
	}

	it, err := From(src, origin, interval, interval)
	if err != nil {
		return nil, err
	}

	agg := Aggregate(it, op)
	for {
		el, ok := agg.Next()
		if !ok {
			return out, nil
		}
		// Aggregates are stamped with the window start, which lies on the
		// grid by construction.
		if err := out.Append(el.Ts, el.Sample); err != nil {
			return nil, fmt.Errorf("downsample at %d: %w", el.Ts.Millis(), err)
		}
	}
}
