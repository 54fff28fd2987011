// SPDX-License-Identifier: MIT

package engine

import "errors"

var (
	// ErrNilDataset is returned when no dataset is supplied.
	ErrNilDataset = errors.New("engine: nil dataset")

	// ErrStableNuclideActivity is returned when a stable nuclide (decay
	// constant 0) is seeded with nonzero activity.
	ErrStableNuclideActivity = errors.New("engine: stable nuclide with nonzero activity")

	// ErrPrecisionUnavailable is returned by EvolveExact when the dataset
	// carries no exact counterpart.
	ErrPrecisionUnavailable = errors.New("engine: exact data unavailable")

	// ErrInvalidSignificantFigures is returned for a significant-figure count
	// outside [1, 300].
	ErrInvalidSignificantFigures = errors.New("engine: invalid significant figures")

	// ErrInvalidTime is returned for a NaN, infinite or missing elapsed time.
	ErrInvalidTime = errors.New("engine: invalid elapsed time")

	// ErrInvalidQuantity is returned for a NaN, infinite or missing seed quantity.
	ErrInvalidQuantity = errors.New("engine: invalid quantity")

	// ErrExponentOverflow is returned when evolving backwards in time grows a
	// quantity beyond the representable range.
	ErrExponentOverflow = errors.New("engine: exponential overflow")
)
