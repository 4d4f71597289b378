package series

import "errors"

var (
	// ErrOutOfOrderSample is returned when appending to an unaligned series
	// with a timestamp earlier than the last stored one.
	ErrOutOfOrderSample = errors.New("out of order sample")

	// ErrMisalignedTimestamp is returned when appending to an aligned series
	// with a timestamp off the grid defined by its origin and interval.
	ErrMisalignedTimestamp = errors.New("misaligned timestamp")

	// ErrInvalidInterval is returned when constructing an aligned series with
	// a non-positive interval.
	ErrInvalidInterval = errors.New("invalid interval")
)
