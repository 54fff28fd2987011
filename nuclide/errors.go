// SPDX-License-Identifier: MIT

package nuclide

import "errors"

var (
	// ErrInvalidNuclide is returned when an identifier cannot be parsed
	// into element, mass number and state.
	ErrInvalidNuclide = errors.New("nuclide: invalid nuclide identifier")

	// ErrUnknownNuclide is returned when a well-formed identifier is not
	// present in the dataset it is resolved against.
	ErrUnknownNuclide = errors.New("nuclide: unknown nuclide")
)
