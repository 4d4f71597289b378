package window

import (
	"github.com/DataDog/sketches-go/ddsketch"

	"github.com/xtxerr/sup/series"
)

// Relative accuracy for quantile sketches, matching the default used for
// streaming percentiles elsewhere in the ecosystem.
const sketchAccuracy = 0.01

// Quantile returns an operator estimating the q-quantile (0 < q < 1) of the
// observed values with a DDSketch. Zero samples contribute 0. The estimate
// is within sketchAccuracy relative error of the exact quantile.
func Quantile[T series.Value](q float64) Op[T, float64] {
	return func(items []series.Element[T]) (series.Element[float64], bool) {
		sketch, err := ddsketch.NewDefaultDDSketch(sketchAccuracy)
		if err != nil {
			return series.Element[float64]{}, false
		}

		count := 0
		for _, el := range items {
			switch el.Sample.Kind() {
			case series.KindPoint, series.KindZero:
				v, _ := el.Sample.Value()
				if err := sketch.Add(float64(v)); err != nil {
					return series.Element[float64]{}, false
				}
				count++
			case series.KindReset:
			}
		}

		if count == 0 {
			return series.Element[float64]{}, false
		}

		val, err := sketch.GetValueAtQuantile(q)
		if err != nil {
			return series.Element[float64]{}, false
		}
		return series.Element[float64]{
			Ts:     firstTimestamp(items),
			Sample: series.Point(val),
		}, true
	}
}
