package zcash

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingPrefix is returned when a hex string lacks the 0x prefix.
	ErrMissingPrefix = errors.New("zcash: hex string is missing the 0x prefix")

	// ErrNotCompressed is returned when the compression flag bit is not set.
	ErrNotCompressed = errors.New("zcash: point encoding is not compressed")

	// ErrInvalidInfinity is returned when the infinity flag is set on an
	// encoding that carries a non-zero payload, or together with the sign flag.
	ErrInvalidInfinity = errors.New("zcash: malformed point at infinity")

	// ErrInvalidXField is returned when the x coordinate is not a canonical
	// field element (or canonical pair of field elements for G2).
	ErrInvalidXField = errors.New("zcash: x coordinate exceeds the field modulus")

	// ErrInvalidXCoordinate is returned when the x coordinate does not lie on
	// the curve, including the zero coordinate outside the infinity encoding.
	ErrInvalidXCoordinate = errors.New("zcash: x coordinate is not on the curve")

	// ErrInvalidSubgroup is returned when the decoded point is on the curve
	// but outside the r-order subgroup.
	ErrInvalidSubgroup = errors.New("zcash: point is not in the prime order subgroup")
)

// InvalidLengthError reports an encoding whose byte length does not match the
// group's compressed size.
type InvalidLengthError struct {
	Expected int
	Actual   int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("zcash: invalid encoding length, expected %d bytes, got %d", e.Expected, e.Actual)
}
