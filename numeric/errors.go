// SPDX-License-Identifier: MIT

package numeric

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue is returned when a value is NaN, ±Inf or otherwise not a number.
	ErrInvalidValue = errors.New("numeric: invalid value")

	// ErrDivideByZero is returned by Quo when the divisor is zero.
	ErrDivideByZero = errors.New("numeric: division by zero")

	// ErrExponentOverflow is returned when an exponential exceeds the big.Float range.
	ErrExponentOverflow = errors.New("numeric: exponent overflow")

	// ErrInvalidSignificantFigures is returned for a significant-figure count
	// outside [MinSignificantFigures, MaxSignificantFigures].
	ErrInvalidSignificantFigures = errors.New("numeric: significant figures out of range")
)

// numericErrorf tags err with the failing operation.
func numericErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
