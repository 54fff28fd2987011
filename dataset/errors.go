// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrDatasetLoad wraps every failure to build, compile, decode or load a
	// dataset: missing parts, malformed fields, inconsistent dimensions.
	ErrDatasetLoad = errors.New("dataset: load failed")

	// ErrDegenerateChain is returned by Compile when two nuclides of one
	// chain share a half-life, which makes the eigenvector matrix singular.
	ErrDegenerateChain = errors.New("dataset: equal half-lives within one decay chain")

	// ErrIndexOutOfRange is returned by accessors given an index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("dataset: index out of range")
)

// loadErrorf tags err with a stage and marks it as ErrDatasetLoad.
func loadErrorf(stage string, err error) error {
	if errors.Is(err, ErrDatasetLoad) {
		return fmt.Errorf("%s: %w", stage, err)
	}

	return fmt.Errorf("%w: %s: %w", ErrDatasetLoad, stage, err)
}

// loadError builds an ErrDatasetLoad with a formatted reason.
func loadError(stage, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrDatasetLoad, stage, fmt.Sprintf(format, args...))
}
