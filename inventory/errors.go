// SPDX-License-Identifier: MIT

package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDataset is returned when an inventory is built without a dataset.
	ErrNilDataset = errors.New("inventory: nil dataset")

	// ErrNilInventory is returned when a nil inventory is combined with another.
	ErrNilInventory = errors.New("inventory: nil inventory")

	// ErrInvalidActivity is returned for a NaN, infinite or malformed quantity.
	ErrInvalidActivity = errors.New("inventory: invalid activity")

	// ErrDatasetMismatch is returned when combining inventories of different datasets.
	ErrDatasetMismatch = errors.New("inventory: dataset mismatch")

	// ErrNuclideNotPresent is returned when a nuclide is not in the inventory.
	ErrNuclideNotPresent = errors.New("inventory: nuclide not present")

	// ErrDuplicateNuclide is returned when two references name the same nuclide.
	ErrDuplicateNuclide = errors.New("inventory: duplicate nuclide")
)

// inventoryErrorf prefixes err with the failing operation.
func inventoryErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
