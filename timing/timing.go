// Package timing provides the time primitives for the series core.
//
// Both TimeStamp and Duration are signed 64-bit millisecond counts. All
// arithmetic is checked: operations that would leave the int64 range fail
// with ErrDurationOverflow instead of wrapping.
package timing

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrDurationOverflow is returned when time arithmetic exceeds the signed
// 64-bit millisecond range.
var ErrDurationOverflow = errors.New("duration overflow")

// TimeStamp is an absolute instant: milliseconds since the unix epoch.
type TimeStamp int64

// Duration is a signed span of milliseconds.
type Duration int64

// Common spans.
const (
	Millisecond Duration = 1
	Second               = 1000 * Millisecond
	Minute               = 60 * Second
	Hour                 = 60 * Minute
	Day                  = 24 * Hour
	Week                 = 7 * Day
)

// FromMillis returns the timestamp for the given unix-millisecond count.
func FromMillis(ms int64) TimeStamp {
	return TimeStamp(ms)
}

// FromTime returns the timestamp for the given wall-clock time.
func FromTime(t time.Time) TimeStamp {
	return TimeStamp(t.UnixMilli())
}

// Now returns the current wall-clock time as a timestamp.
func Now() TimeStamp {
	return FromTime(time.Now())
}

// Millis returns the timestamp as a unix-millisecond count.
func (t TimeStamp) Millis() int64 {
	return int64(t)
}

// Time returns the timestamp as a time.Time in UTC.
func (t TimeStamp) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

func (t TimeStamp) String() string {
	return t.Time().Format(time.RFC3339Nano)
}

// Add returns t shifted by d, or ErrDurationOverflow.
func (t TimeStamp) Add(d Duration) (TimeStamp, error) {
	s, err := addInt64(int64(t), int64(d))
	if err != nil {
		return 0, fmt.Errorf("%v + %v: %w", t.Millis(), d.Millis(), err)
	}
	return TimeStamp(s), nil
}

// Sub returns the span from o to t, or ErrDurationOverflow.
func (t TimeStamp) Sub(o TimeStamp) (Duration, error) {
	s, err := subInt64(int64(t), int64(o))
	if err != nil {
		return 0, fmt.Errorf("%v - %v: %w", t.Millis(), o.Millis(), err)
	}
	return Duration(s), nil
}

// AlignDown returns the largest grid point origin+k*interval that is <= t,
// for a grid anchored at the epoch. interval must be positive.
func (t TimeStamp) AlignDown(interval Duration) TimeStamp {
	r := int64(t) % int64(interval)
	if r < 0 {
		r += int64(interval)
	}
	return TimeStamp(int64(t) - r)
}

// FromSeconds returns a duration of the given number of seconds.
func FromSeconds(s int64) Duration {
	return Duration(s) * Second
}

// FromMinutes returns a duration of the given number of minutes.
func FromMinutes(m int64) Duration {
	return Duration(m) * Minute
}

// Millis returns the duration as a millisecond count.
func (d Duration) Millis() int64 {
	return int64(d)
}

func (d Duration) String() string {
	secs := int64(d) / 1000
	ms := int64(d) % 1000
	if ms < 0 {
		ms = -ms
	}
	return fmt.Sprintf("%d.%03ds", secs, ms)
}

// Add returns d+o, or ErrDurationOverflow.
func (d Duration) Add(o Duration) (Duration, error) {
	s, err := addInt64(int64(d), int64(o))
	if err != nil {
		return 0, fmt.Errorf("%v + %v: %w", d.Millis(), o.Millis(), err)
	}
	return Duration(s), nil
}

// Sub returns d-o, or ErrDurationOverflow.
func (d Duration) Sub(o Duration) (Duration, error) {
	s, err := subInt64(int64(d), int64(o))
	if err != nil {
		return 0, fmt.Errorf("%v - %v: %w", d.Millis(), o.Millis(), err)
	}
	return Duration(s), nil
}

// Mul returns d*n, or ErrDurationOverflow.
func (d Duration) Mul(n int64) (Duration, error) {
	if d == 0 || n == 0 {
		return 0, nil
	}
	p := int64(d) * n
	if p/n != int64(d) || (int64(d) == math.MinInt64 && n == -1) {
		return 0, fmt.Errorf("%v * %v: %w", d.Millis(), n, ErrDurationOverflow)
	}
	return Duration(p), nil
}

// Div returns d/n, or ErrDurationOverflow for the single overflowing case
// (MinInt64 / -1). Division by zero panics, as integer division does.
func (d Duration) Div(n int64) (Duration, error) {
	if int64(d) == math.MinInt64 && n == -1 {
		return 0, fmt.Errorf("%v / %v: %w", d.Millis(), n, ErrDurationOverflow)
	}
	return Duration(int64(d) / n), nil
}

func addInt64(a, b int64) (int64, error) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, ErrDurationOverflow
	}
	return s, nil
}

func subInt64(a, b int64) (int64, error) {
	s := a - b
	if (b < 0 && s < a) || (b > 0 && s > a) {
		return 0, ErrDurationOverflow
	}
	return s, nil
}
