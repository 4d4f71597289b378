package window

import (
	"github.com/xtxerr/sup/series"
	"github.com/xtxerr/sup/timing"
)

// Op is an aggregation operator. It receives a window's aggregable
// subsequence (never containing Reset samples; segmentation happens before
// the operator runs) and returns the derived element, or false when the
// operator has no defined result for the input. The returned element's
// timestamp identifies the representative source sample where one exists
// (the chosen extreme, the first or last sample); purely synthetic results
// carry the subsequence's first timestamp.
type Op[T, R series.Value] func(items []series.Element[T]) (series.Element[R], bool)

// Max returns the largest observed value. Zero samples contribute the zero
// value. Ties break toward the earliest timestamp.
func Max[T series.Value](items []series.Element[T]) (series.Element[T], bool) {
	return extreme(items, func(v, best T) bool { return v > best })
}

// Min returns the smallest observed value. Zero samples contribute the zero
// value. Ties break toward the earliest timestamp.
func Min[T series.Value](items []series.Element[T]) (series.Element[T], bool) {
	return extreme(items, func(v, best T) bool { return v < best })
}

func extreme[T series.Value](items []series.Element[T], better func(v, best T) bool) (series.Element[T], bool) {
	var best series.Element[T]
	var bestVal T
	found := false

	for _, el := range items {
		switch el.Sample.Kind() {
		case series.KindPoint, series.KindZero:
			v, _ := el.Sample.Value()
			// Strict comparison keeps the earliest of equal extremes.
			if !found || better(v, bestVal) {
				best = series.Element[T]{Ts: el.Ts, Sample: series.Point(v)}
				bestVal = v
				found = true
			}
		case series.KindReset:
			// Excluded by segmentation; contributes nothing regardless.
		}
	}

	return best, found
}

// Mean returns the arithmetic mean of the observed values, computed in
// float64 regardless of the payload type to avoid truncation bias. Zero
// samples count as observations of 0.
func Mean[T series.Value](items []series.Element[T]) (series.Element[float64], bool) {
	var sum float64
	var count int
	var firstTs = firstTimestamp(items)

	for _, el := range items {
		switch el.Sample.Kind() {
		case series.KindPoint, series.KindZero:
			v, _ := el.Sample.Value()
			sum += float64(v)
			count++
		case series.KindReset:
		}
	}

	if count == 0 {
		return series.Element[float64]{}, false
	}
	return series.Element[float64]{
		Ts:     firstTs,
		Sample: series.Point(sum / float64(count)),
	}, true
}

// Sum returns the sum of the observed values.
func Sum[T series.Value](items []series.Element[T]) (series.Element[T], bool) {
	var sum T
	var count int
	var firstTs = firstTimestamp(items)

	for _, el := range items {
		switch el.Sample.Kind() {
		case series.KindPoint, series.KindZero:
			v, _ := el.Sample.Value()
			sum += v
			count++
		case series.KindReset:
		}
	}

	if count == 0 {
		return series.Element[T]{}, false
	}
	return series.Element[T]{Ts: firstTs, Sample: series.Point(sum)}, true
}

// Count returns the number of observations in the window.
func Count[T series.Value](items []series.Element[T]) (series.Element[int64], bool) {
	var count int64
	for _, el := range items {
		switch el.Sample.Kind() {
		case series.KindPoint, series.KindZero:
			count++
		case series.KindReset:
		}
	}
	if count == 0 {
		return series.Element[int64]{}, false
	}
	return series.Element[int64]{
		Ts:     firstTimestamp(items),
		Sample: series.Point(count),
	}, true
}

// Oldest returns the first sample of the window verbatim, preserving its
// original kind and value.
func Oldest[T series.Value](items []series.Element[T]) (series.Element[T], bool) {
	if len(items) == 0 {
		return series.Element[T]{}, false
	}
	return items[0], true
}

// Youngest returns the last sample of the window verbatim.
func Youngest[T series.Value](items []series.Element[T]) (series.Element[T], bool) {
	if len(items) == 0 {
		return series.Element[T]{}, false
	}
	return items[len(items)-1], true
}

// Delta returns the increase of a cumulative counter across the window: the
// last observed value minus the first. If the counter went backwards the
// last value alone is reported, on the assumption that the counter restarted
// from zero inside the window. Requires at least two observations.
func Delta[T series.Value](items []series.Element[T]) (series.Element[T], bool) {
	var first, last T
	lastTs := firstTimestamp(items)
	count := 0

	for _, el := range items {
		switch el.Sample.Kind() {
		case series.KindPoint, series.KindZero:
			v, _ := el.Sample.Value()
			if count == 0 {
				first = v
			}
			last = v
			lastTs = el.Ts
			count++
		case series.KindReset:
		}
	}

	if count < 2 {
		return series.Element[T]{}, false
	}
	if last >= first {
		return series.Element[T]{Ts: lastTs, Sample: series.Point(last - first)}, true
	}
	return series.Element[T]{Ts: lastTs, Sample: series.Point(last)}, true
}

func firstTimestamp[T series.Value](items []series.Element[T]) timing.TimeStamp {
	if len(items) > 0 {
		return items[0].Ts
	}
	return 0
}

// ByName returns the float64 operator with the given name, used when an
// operator is selected by configuration. Recognized names: max, min, mean,
// sum, oldest, youngest, delta, p50, p90, p95, p99.
func ByName(name string) (Op[float64, float64], bool) {
	switch name {
	case "max":
		return Max[float64], true
	case "min":
		return Min[float64], true
	case "mean":
		return Mean[float64], true
	case "sum":
		return Sum[float64], true
	case "oldest":
		return Oldest[float64], true
	case "youngest":
		return Youngest[float64], true
	case "delta":
		return Delta[float64], true
	case "p50":
		return Quantile[float64](0.50), true
	case "p90":
		return Quantile[float64](0.90), true
	case "p95":
		return Quantile[float64](0.95), true
	case "p99":
		return Quantile[float64](0.99), true
	default:
		return nil, false
	}
}
