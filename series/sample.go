package series

import "fmt"

// Value is the set of payload types a sample can carry. All of them support
// ordering and summation, which the numeric window operators rely on.
type Value interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Kind discriminates the three observation kinds a Sample can hold.
type Kind int

const (
	// KindZero is an explicit observation of the payload's zero value.
	// Distinct from "no sample was recorded here".
	KindZero Kind = iota
	// KindReset marks that the underlying instrument discontinued and
	// restarted (e.g. a monotonic counter). It carries no payload.
	KindReset
	// KindPoint is a concrete observed value.
	KindPoint
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindZero:
		return "zero"
	case KindReset:
		return "reset"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Sample is a single observation: exactly one of Zero, Reset, or Point.
// The sample is agnostic of its own timestamp; the containing series entry
// owns that. The zero value of Sample is a Zero observation.
type Sample[T Value] struct {
	kind  Kind
	value T
}

// Point returns a sample holding a concrete observed value.
func Point[T Value](v T) Sample[T] {
	return Sample[T]{kind: KindPoint, value: v}
}

// Zero returns an explicit zero observation.
func Zero[T Value]() Sample[T] {
	return Sample[T]{kind: KindZero}
}

// Reset returns a counter-discontinuity marker.
func Reset[T Value]() Sample[T] {
	return Sample[T]{kind: KindReset}
}

// Kind returns the observation kind. Consumers must handle all three kinds.
func (s Sample[T]) Kind() Kind {
	return s.kind
}

// Value returns the observed value and true for Point and Zero samples.
// For Reset samples it returns the zero value and false: a reset is a
// structural marker, not a numeric observation.
func (s Sample[T]) Value() (T, bool) {
	switch s.kind {
	case KindPoint:
		return s.value, true
	case KindZero:
		var zero T
		return zero, true
	case KindReset:
		var zero T
		return zero, false
	default:
		var zero T
		return zero, false
	}
}

// IsReset returns true for a Reset sample.
func (s Sample[T]) IsReset() bool {
	return s.kind == KindReset
}

func (s Sample[T]) String() string {
	switch s.kind {
	case KindZero:
		var zero T
		return fmt.Sprintf("Zero(%v)", zero)
	case KindReset:
		return "Reset"
	case KindPoint:
		return fmt.Sprintf("Point(%v)", s.value)
	default:
		return "Unknown"
	}
}
