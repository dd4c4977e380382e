package vecmath

import "errors"

var (
	// ErrDivisionByZero indicates an attempt to normalize a zero-length vector.
	ErrDivisionByZero = errors.New("vecmath: attempted to normalize a vector of length 0")

	// ErrInvalidLength indicates a slice that does not hold exactly three components.
	ErrInvalidLength = errors.New("vecmath: vector must have exactly 3 components")
)
