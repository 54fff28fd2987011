// SPDX-License-Identifier: MIT

package units

import "errors"

var (
	// ErrUnknownUnit is returned for a unit symbol that is not in the table
	// of the requested quantity.
	ErrUnknownUnit = errors.New("units: unknown unit")

	// ErrZeroDecayConstant is returned when converting between activity and
	// atom count for a stable nuclide.
	ErrZeroDecayConstant = errors.New("units: decay constant is zero")

	// ErrInvalidYearLength is returned for a non-positive year length.
	ErrInvalidYearLength = errors.New("units: year length must be positive")

	// ErrInvalidAtomicMass is returned for a non-positive atomic mass.
	ErrInvalidAtomicMass = errors.New("units: atomic mass must be positive")
)
